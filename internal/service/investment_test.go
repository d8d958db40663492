package service

import (
	"context"
	"testing"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvestmentMetrics(t *testing.T) {
	inv := models.Investment{
		Quantity:      dec("10"),
		PurchasePrice: dec("100"),
		CurrentPrice:  dec("125"),
	}
	m := computeMetrics(inv)
	assert.Equal(t, "1000.00", m.TotalCost.StringFixed(2))
	assert.Equal(t, "1250.00", m.TotalValue.StringFixed(2))
	assert.Equal(t, "250.00", m.ProfitLoss.StringFixed(2))
	assert.Equal(t, "25.00", m.ProfitLossPercentage.StringFixed(2))
}

func TestPortfolioAggregatesFromSums(t *testing.T) {
	invs := []models.Investment{
		{Quantity: dec("1"), PurchasePrice: dec("100"), CurrentPrice: dec("200")},  // +100%
		{Quantity: dec("1"), PurchasePrice: dec("900"), CurrentPrice: dec("900")},  // 0%
	}
	p := computePortfolio(invs)

	assert.Equal(t, "1000.00", p.TotalCost.StringFixed(2))
	assert.Equal(t, "1100.00", p.TotalValue.StringFixed(2))
	assert.Equal(t, "100.00", p.ProfitLoss.StringFixed(2))
	// 100/1000 = 10%, not the 50% a per-holding average would give
	assert.Equal(t, "10.00", p.ProfitLossPercentage.StringFixed(2))
	assert.Equal(t, 2, p.Holdings)

	// value equals the sum of quantity*currentPrice
	sum := decimal.Zero
	for _, inv := range invs {
		sum = sum.Add(inv.Quantity.Mul(inv.CurrentPrice))
	}
	assert.True(t, p.TotalValue.Equal(sum))
}

func TestPortfolioEmpty(t *testing.T) {
	p := computePortfolio(nil)
	assert.True(t, p.ProfitLossPercentage.IsZero())
	assert.Equal(t, 0, p.Holdings)
}

func TestInvestmentCRUD(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewInvestmentService(store)

	_, err := svc.Create(ctx, "u1", CreateInvestmentInput{
		AssetName: "GOLD", Quantity: dec("0"), PurchasePrice: dec("1"), CurrentPrice: dec("1"),
		PurchaseDate: time.Now(),
	})
	assert.True(t, IsValidation(err), "zero quantity must fail")

	inv, err := svc.Create(ctx, "u1", CreateInvestmentInput{
		AssetName: "GOLD", Quantity: dec("2"), PurchasePrice: dec("50"), CurrentPrice: dec("60"),
		PurchaseDate: time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "intruder", inv.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.Get(ctx, "u1", inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "120.00", got.Metrics.TotalValue.StringFixed(2))

	newPrice := dec("40")
	updated, err := svc.Update(ctx, "u1", inv.ID, UpdateInvestmentInput{CurrentPrice: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.CurrentPrice.Equal(dec("40")))

	require.NoError(t, svc.Delete(ctx, "u1", inv.ID))
	_, err = svc.Get(ctx, "u1", inv.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
