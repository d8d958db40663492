package service

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/shopspring/decimal"
)

var daysPerYear = decimal.NewFromFloat(365.25)

// GoalService manages savings goals and derives their progress and
// interest projection at read time.
type GoalService struct {
	store repository.Store
}

func NewGoalService(store repository.Store) *GoalService {
	return &GoalService{store: store}
}

// GoalProgress is the derived view of one goal.
type GoalProgress struct {
	ProgressPercentage decimal.Decimal `json:"progress_percentage"`
	RemainingAmount    decimal.Decimal `json:"remaining_amount"`
	DaysRemaining      int             `json:"days_remaining"`
	ProjectedAmount    decimal.Decimal `json:"projected_amount"`
	ProjectedProgress  decimal.Decimal `json:"projected_progress"`
	IsOnTrack          bool            `json:"is_on_track"`
}

// GoalWithProgress pairs a goal with its computed progress.
type GoalWithProgress struct {
	models.Goal
	Progress GoalProgress `json:"progress"`
}

// CreateGoalInput is the validated creation payload.
type CreateGoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Deadline      time.Time
	InterestRate  decimal.Decimal
}

// UpdateGoalInput carries optional field updates; nil means keep.
type UpdateGoalInput struct {
	Name          *string
	TargetAmount  *decimal.Decimal
	CurrentAmount *decimal.Decimal
	Deadline      *time.Time
	InterestRate  *decimal.Decimal
}

// computeProgress derives the read-time view. The projection applies
// compound annual growth over the remaining fraction of a year; the
// rate field is named "interest" but the formula compounds, and that
// behavior is kept as shipped.
func computeProgress(goal models.Goal, now time.Time) GoalProgress {
	p := GoalProgress{}

	if goal.TargetAmount.IsPositive() {
		p.ProgressPercentage = minPct(goal.CurrentAmount.Div(goal.TargetAmount).Mul(oneHundred)).Round(2)
	} else {
		p.ProgressPercentage = decimal.Zero
	}

	remaining := goal.TargetAmount.Sub(goal.CurrentAmount)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	p.RemainingAmount = remaining.Round(2)

	p.DaysRemaining = int(math.Ceil(goal.Deadline.Sub(now).Hours() / 24))

	projected := goal.CurrentAmount
	if goal.InterestRate.IsPositive() && p.DaysRemaining > 0 {
		growth := decimal.NewFromInt(1).Add(goal.InterestRate.Div(oneHundred))
		years := decimal.NewFromInt(int64(p.DaysRemaining)).Div(daysPerYear)
		if grown, err := growth.PowWithPrecision(years, 12); err == nil {
			projected = goal.CurrentAmount.Mul(grown)
		}
	}
	p.ProjectedAmount = projected.Round(2)

	if goal.TargetAmount.IsPositive() {
		p.ProjectedProgress = minPct(projected.Div(goal.TargetAmount).Mul(oneHundred)).Round(2)
	} else {
		p.ProjectedProgress = decimal.Zero
	}

	p.IsOnTrack = projected.GreaterThanOrEqual(goal.TargetAmount)
	return p
}

func minPct(pct decimal.Decimal) decimal.Decimal {
	if pct.GreaterThan(oneHundred) {
		return oneHundred
	}
	return pct
}

func validateGoalFields(name string, target, current decimal.Decimal, deadline time.Time, rate decimal.Decimal, now time.Time) error {
	if strings.TrimSpace(name) == "" {
		return Invalid("goal name is required")
	}
	if !target.IsPositive() {
		return Invalid("target amount must be positive, got " + target.String())
	}
	if current.IsNegative() {
		return Invalid("current amount cannot be negative, got " + current.String())
	}
	if current.GreaterThan(target) {
		return Invalid("current amount " + current.String() + " exceeds target amount " + target.String())
	}
	if !deadline.After(now) {
		return Invalid("deadline must be in the future")
	}
	if rate.IsNegative() {
		return Invalid("interest rate cannot be negative, got " + rate.String())
	}
	return nil
}

func (s *GoalService) Create(ctx context.Context, userID string, in CreateGoalInput) (*models.Goal, error) {
	if err := validateGoalFields(in.Name, in.TargetAmount, in.CurrentAmount, in.Deadline, in.InterestRate, timeNow()); err != nil {
		return nil, err
	}
	g := &models.Goal{
		UserID:        userID,
		Name:          strings.TrimSpace(in.Name),
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
		InterestRate:  in.InterestRate,
	}
	if err := s.store.Goals().Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GoalService) List(ctx context.Context, userID string) ([]GoalWithProgress, error) {
	goals, err := s.store.Goals().FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := timeNow()
	out := make([]GoalWithProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, GoalWithProgress{Goal: g, Progress: computeProgress(g, now)})
	}
	return out, nil
}

func (s *GoalService) Get(ctx context.Context, userID, goalID string) (*GoalWithProgress, error) {
	g, err := s.findOwned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	return &GoalWithProgress{Goal: *g, Progress: computeProgress(*g, timeNow())}, nil
}

func (s *GoalService) Update(ctx context.Context, userID, goalID string, in UpdateGoalInput) (*models.Goal, error) {
	g, err := s.findOwned(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		g.Name = strings.TrimSpace(*in.Name)
	}
	if in.TargetAmount != nil {
		g.TargetAmount = *in.TargetAmount
	}
	if in.CurrentAmount != nil {
		g.CurrentAmount = *in.CurrentAmount
	}
	if in.Deadline != nil {
		g.Deadline = *in.Deadline
	}
	if in.InterestRate != nil {
		g.InterestRate = *in.InterestRate
	}
	if err := validateGoalFields(g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.InterestRate, timeNow()); err != nil {
		return nil, err
	}
	if err := s.store.Goals().Save(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *GoalService) Delete(ctx context.Context, userID, goalID string) error {
	g, err := s.findOwned(ctx, userID, goalID)
	if err != nil {
		return err
	}
	return s.store.Goals().Delete(ctx, g)
}

func (s *GoalService) findOwned(ctx context.Context, userID, goalID string) (*models.Goal, error) {
	g, err := s.store.Goals().FindByID(ctx, goalID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if g.UserID != userID {
		return nil, ErrForbidden
	}
	return g, nil
}
