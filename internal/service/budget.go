package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/shopspring/decimal"
)

// timeNow is swapped in tests to pin the active period window.
var timeNow = time.Now

var oneHundred = decimal.NewFromInt(100)

// BudgetService manages budgets and derives their usage at read time.
type BudgetService struct {
	store repository.Store
}

func NewBudgetService(store repository.Store) *BudgetService {
	return &BudgetService{store: store}
}

// BudgetUsage is the derived view of one budget in its active period.
type BudgetUsage struct {
	Used            decimal.Decimal `json:"used"`
	Remaining       decimal.Decimal `json:"remaining"`
	UsagePercentage decimal.Decimal `json:"usage_percentage"`
}

// BudgetWithUsage pairs a budget with its computed usage.
type BudgetWithUsage struct {
	models.Budget
	Usage BudgetUsage `json:"usage"`
}

// CreateBudgetInput is the validated creation payload.
type CreateBudgetInput struct {
	Category string
	Limit    decimal.Decimal
	Period   string
}

// UpdateBudgetInput carries optional field updates; nil means keep.
type UpdateBudgetInput struct {
	Category *string
	Limit    *decimal.Decimal
	Period   *string
}

// periodWindow returns the inclusive [start, end] window of the
// budget period containing now. Weeks start on Monday.
func periodWindow(period string, now time.Time) (time.Time, time.Time) {
	y, m, d := now.Date()
	loc := now.Location()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	endOfDay := func(t time.Time) time.Time {
		return t.Add(24*time.Hour - time.Millisecond)
	}
	switch period {
	case models.PeriodDaily:
		return dayStart, endOfDay(dayStart)
	case models.PeriodWeekly:
		offset := (int(now.Weekday()) + 6) % 7 // Monday = 0
		start := dayStart.AddDate(0, 0, -offset)
		return start, endOfDay(start.AddDate(0, 0, 6))
	case models.PeriodYearly:
		start := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		return start, endOfDay(time.Date(y, time.December, 31, 0, 0, 0, 0, loc))
	default: // monthly
		start := time.Date(y, m, 1, 0, 0, 0, 0, loc)
		return start, endOfDay(start.AddDate(0, 1, -1))
	}
}

// computeUsage sums the matching expense amounts and derives
// remaining and percentage. Pure; callers supply the transactions.
func computeUsage(budget models.Budget, expenses []models.Transaction) BudgetUsage {
	used := decimal.Zero
	for _, t := range expenses {
		used = used.Add(t.Amount)
	}
	remaining := budget.Limit.Sub(used)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	pct := decimal.Zero
	if budget.Limit.IsPositive() {
		pct = used.Div(budget.Limit).Mul(oneHundred).Round(2)
	}
	return BudgetUsage{Used: used, Remaining: remaining, UsagePercentage: pct}
}

func validateBudgetFields(category string, limit decimal.Decimal, period string) error {
	if strings.TrimSpace(category) == "" {
		return Invalid("category is required")
	}
	if !limit.IsPositive() {
		return Invalid("limit must be positive, got " + limit.String())
	}
	if !models.ValidBudgetPeriod(period) {
		return Invalid("period must be one of daily, weekly, monthly, yearly; got " + period)
	}
	return nil
}

func (s *BudgetService) Create(ctx context.Context, userID string, in CreateBudgetInput) (*models.Budget, error) {
	period := strings.ToLower(strings.TrimSpace(in.Period))
	if period == "" {
		period = models.PeriodMonthly
	}
	if err := validateBudgetFields(in.Category, in.Limit, period); err != nil {
		return nil, err
	}
	b := &models.Budget{
		UserID:   userID,
		Category: strings.TrimSpace(in.Category),
		Limit:    in.Limit,
		Period:   period,
	}
	if err := s.store.Budgets().Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns all budgets with usage computed over each budget's
// active period window.
func (s *BudgetService) List(ctx context.Context, userID string) ([]BudgetWithUsage, error) {
	budgets, err := s.store.Budgets().FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]BudgetWithUsage, 0, len(budgets))
	for _, b := range budgets {
		usage, err := s.usage(ctx, userID, b)
		if err != nil {
			return nil, err
		}
		out = append(out, BudgetWithUsage{Budget: b, Usage: usage})
	}
	return out, nil
}

func (s *BudgetService) Get(ctx context.Context, userID, budgetID string) (*BudgetWithUsage, error) {
	b, err := s.findOwned(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	usage, err := s.usage(ctx, userID, *b)
	if err != nil {
		return nil, err
	}
	return &BudgetWithUsage{Budget: *b, Usage: usage}, nil
}

func (s *BudgetService) Update(ctx context.Context, userID, budgetID string, in UpdateBudgetInput) (*models.Budget, error) {
	b, err := s.findOwned(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	if in.Category != nil {
		b.Category = strings.TrimSpace(*in.Category)
	}
	if in.Limit != nil {
		b.Limit = *in.Limit
	}
	if in.Period != nil {
		b.Period = strings.ToLower(strings.TrimSpace(*in.Period))
	}
	if err := validateBudgetFields(b.Category, b.Limit, b.Period); err != nil {
		return nil, err
	}
	if err := s.store.Budgets().Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BudgetService) Delete(ctx context.Context, userID, budgetID string) error {
	b, err := s.findOwned(ctx, userID, budgetID)
	if err != nil {
		return err
	}
	return s.store.Budgets().Delete(ctx, b)
}

func (s *BudgetService) usage(ctx context.Context, userID string, b models.Budget) (BudgetUsage, error) {
	start, end := periodWindow(b.Period, timeNow())
	txs, _, err := s.store.Transactions().FindByUser(ctx, userID, repository.TransactionFilter{
		Type:     models.TypeExpense,
		Category: b.Category,
		Start:    &start,
		End:      &end,
	})
	if err != nil {
		return BudgetUsage{}, err
	}
	return computeUsage(b, txs), nil
}

func (s *BudgetService) findOwned(ctx context.Context, userID, budgetID string) (*models.Budget, error) {
	b, err := s.store.Budgets().FindByID(ctx, budgetID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrForbidden
	}
	return b, nil
}
