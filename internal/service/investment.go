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

// InvestmentService manages holdings and derives per-holding and
// portfolio metrics at read time.
type InvestmentService struct {
	store repository.Store
}

func NewInvestmentService(store repository.Store) *InvestmentService {
	return &InvestmentService{store: store}
}

// InvestmentMetrics is the derived view of one holding.
type InvestmentMetrics struct {
	TotalCost            decimal.Decimal `json:"total_cost"`
	TotalValue           decimal.Decimal `json:"total_value"`
	ProfitLoss           decimal.Decimal `json:"profit_loss"`
	ProfitLossPercentage decimal.Decimal `json:"profit_loss_percentage"`
}

// InvestmentWithMetrics pairs a holding with its computed metrics.
type InvestmentWithMetrics struct {
	models.Investment
	Metrics InvestmentMetrics `json:"metrics"`
}

// PortfolioSummary aggregates all holdings. The percentage is
// recomputed from the summed cost and value, not averaged.
type PortfolioSummary struct {
	TotalCost            decimal.Decimal `json:"total_cost"`
	TotalValue           decimal.Decimal `json:"total_value"`
	ProfitLoss           decimal.Decimal `json:"profit_loss"`
	ProfitLossPercentage decimal.Decimal `json:"profit_loss_percentage"`
	Holdings             int             `json:"holdings"`
}

// CreateInvestmentInput is the validated creation payload.
type CreateInvestmentInput struct {
	AssetName     string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	CurrentPrice  decimal.Decimal
	PurchaseDate  time.Time
}

// UpdateInvestmentInput carries optional field updates; nil means keep.
type UpdateInvestmentInput struct {
	AssetName     *string
	Quantity      *decimal.Decimal
	PurchasePrice *decimal.Decimal
	CurrentPrice  *decimal.Decimal
	PurchaseDate  *time.Time
}

func computeMetrics(inv models.Investment) InvestmentMetrics {
	cost := inv.Quantity.Mul(inv.PurchasePrice)
	value := inv.Quantity.Mul(inv.CurrentPrice)
	pl := value.Sub(cost)
	pct := decimal.Zero
	if cost.IsPositive() {
		pct = pl.Div(cost).Mul(oneHundred)
	}
	return InvestmentMetrics{
		TotalCost:            cost.Round(2),
		TotalValue:           value.Round(2),
		ProfitLoss:           pl.Round(2),
		ProfitLossPercentage: pct.Round(2),
	}
}

func computePortfolio(invs []models.Investment) PortfolioSummary {
	cost := decimal.Zero
	value := decimal.Zero
	for _, inv := range invs {
		cost = cost.Add(inv.Quantity.Mul(inv.PurchasePrice))
		value = value.Add(inv.Quantity.Mul(inv.CurrentPrice))
	}
	pl := value.Sub(cost)
	pct := decimal.Zero
	if cost.IsPositive() {
		pct = pl.Div(cost).Mul(oneHundred)
	}
	return PortfolioSummary{
		TotalCost:            cost.Round(2),
		TotalValue:           value.Round(2),
		ProfitLoss:           pl.Round(2),
		ProfitLossPercentage: pct.Round(2),
		Holdings:             len(invs),
	}
}

func validateInvestmentFields(name string, quantity, purchase, current decimal.Decimal) error {
	if strings.TrimSpace(name) == "" {
		return Invalid("asset name is required")
	}
	if !quantity.IsPositive() {
		return Invalid("quantity must be positive, got " + quantity.String())
	}
	if !purchase.IsPositive() {
		return Invalid("purchase price must be positive, got " + purchase.String())
	}
	if !current.IsPositive() {
		return Invalid("current price must be positive, got " + current.String())
	}
	return nil
}

func (s *InvestmentService) Create(ctx context.Context, userID string, in CreateInvestmentInput) (*models.Investment, error) {
	if err := validateInvestmentFields(in.AssetName, in.Quantity, in.PurchasePrice, in.CurrentPrice); err != nil {
		return nil, err
	}
	if in.PurchaseDate.IsZero() {
		return nil, Invalid("purchase date is required")
	}
	inv := &models.Investment{
		UserID:        userID,
		AssetName:     strings.TrimSpace(in.AssetName),
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
		CurrentPrice:  in.CurrentPrice,
		PurchaseDate:  in.PurchaseDate,
	}
	if err := s.store.Investments().Create(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvestmentService) List(ctx context.Context, userID string) ([]InvestmentWithMetrics, error) {
	invs, err := s.store.Investments().FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]InvestmentWithMetrics, 0, len(invs))
	for _, inv := range invs {
		out = append(out, InvestmentWithMetrics{Investment: inv, Metrics: computeMetrics(inv)})
	}
	return out, nil
}

func (s *InvestmentService) Get(ctx context.Context, userID, invID string) (*InvestmentWithMetrics, error) {
	inv, err := s.findOwned(ctx, userID, invID)
	if err != nil {
		return nil, err
	}
	return &InvestmentWithMetrics{Investment: *inv, Metrics: computeMetrics(*inv)}, nil
}

// Portfolio aggregates every holding of the user.
func (s *InvestmentService) Portfolio(ctx context.Context, userID string) (*PortfolioSummary, error) {
	invs, err := s.store.Investments().FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := computePortfolio(invs)
	return &summary, nil
}

func (s *InvestmentService) Update(ctx context.Context, userID, invID string, in UpdateInvestmentInput) (*models.Investment, error) {
	inv, err := s.findOwned(ctx, userID, invID)
	if err != nil {
		return nil, err
	}
	if in.AssetName != nil {
		inv.AssetName = strings.TrimSpace(*in.AssetName)
	}
	if in.Quantity != nil {
		inv.Quantity = *in.Quantity
	}
	if in.PurchasePrice != nil {
		inv.PurchasePrice = *in.PurchasePrice
	}
	if in.CurrentPrice != nil {
		inv.CurrentPrice = *in.CurrentPrice
	}
	if in.PurchaseDate != nil {
		inv.PurchaseDate = *in.PurchaseDate
	}
	if err := validateInvestmentFields(inv.AssetName, inv.Quantity, inv.PurchasePrice, inv.CurrentPrice); err != nil {
		return nil, err
	}
	if err := s.store.Investments().Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *InvestmentService) Delete(ctx context.Context, userID, invID string) error {
	inv, err := s.findOwned(ctx, userID, invID)
	if err != nil {
		return err
	}
	return s.store.Investments().Delete(ctx, inv)
}

func (s *InvestmentService) findOwned(ctx context.Context, userID, invID string) (*models.Investment, error) {
	inv, err := s.store.Investments().FindByID(ctx, invID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if inv.UserID != userID {
		return nil, ErrForbidden
	}
	return inv, nil
}
