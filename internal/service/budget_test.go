package service

import (
	"context"
	"testing"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFrozenTime(t *testing.T, now time.Time) {
	t.Helper()
	prev := timeNow
	timeNow = func() time.Time { return now }
	t.Cleanup(func() { timeNow = prev })
}

func TestBudgetUsageScenario(t *testing.T) {
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	withFrozenTime(t, now)

	ctx := context.Background()
	store := repository.NewMemoryStore()
	txSvc := NewTransactionService(store)
	svc := NewBudgetService(store)
	w := seedWallet(t, store, "u1", "10000")

	b, err := svc.Create(ctx, "u1", CreateBudgetInput{
		Category: "Food",
		Limit:    dec("1000"),
		Period:   models.PeriodMonthly,
	})
	require.NoError(t, err)

	for _, amount := range []string{"120", "180"} {
		_, err := txSvc.Create(ctx, "u1", CreateTransactionInput{
			WalletID: w.ID,
			Amount:   dec(amount),
			Type:     models.TypeExpense,
			Category: "Food",
			Date:     now.AddDate(0, 0, -3),
		})
		require.NoError(t, err)
	}
	// different category and income must not count
	_, err = txSvc.Create(ctx, "u1", CreateTransactionInput{
		WalletID: w.ID, Amount: dec("999"), Type: models.TypeExpense, Category: "Travel", Date: now,
	})
	require.NoError(t, err)
	_, err = txSvc.Create(ctx, "u1", CreateTransactionInput{
		WalletID: w.ID, Amount: dec("500"), Type: models.TypeIncome, Category: "Food", Date: now,
	})
	require.NoError(t, err)
	// outside the month
	_, err = txSvc.Create(ctx, "u1", CreateTransactionInput{
		WalletID: w.ID, Amount: dec("70"), Type: models.TypeExpense, Category: "Food", Date: now.AddDate(0, -1, 0),
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "u1", b.ID)
	require.NoError(t, err)
	assert.True(t, got.Usage.Used.Equal(dec("300")), "used: %s", got.Usage.Used)
	assert.True(t, got.Usage.Remaining.Equal(dec("700")), "remaining: %s", got.Usage.Remaining)
	assert.True(t, got.Usage.UsagePercentage.Equal(dec("30")), "pct: %s", got.Usage.UsagePercentage)
}

func TestBudgetRemainingNeverNegative(t *testing.T) {
	b := models.Budget{Limit: dec("100"), Period: models.PeriodMonthly}
	usage := computeUsage(b, []models.Transaction{
		{Amount: dec("80")},
		{Amount: dec("70")},
	})
	assert.True(t, usage.Used.Equal(dec("150")))
	assert.True(t, usage.Remaining.Equal(dec("0")))
	assert.True(t, usage.UsagePercentage.Equal(dec("150")))
}

func TestPeriodWindows(t *testing.T) {
	// Wednesday mid-month
	now := time.Date(2026, 3, 18, 15, 30, 0, 0, time.UTC)

	start, end := periodWindow(models.PeriodDaily, now)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 18, 23, 59, 59, 999000000, time.UTC), end)

	start, end = periodWindow(models.PeriodWeekly, now)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start, "Monday start")
	assert.Equal(t, time.Date(2026, 3, 22, 23, 59, 59, 999000000, time.UTC), end, "Sunday end")

	start, end = periodWindow(models.PeriodMonthly, now)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 31, 23, 59, 59, 999000000, time.UTC), end)

	start, end = periodWindow(models.PeriodYearly, now)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 12, 31, 23, 59, 59, 999000000, time.UTC), end)
}

func TestPeriodWindowWeekOnSunday(t *testing.T) {
	// Sunday belongs to the week that started the previous Monday
	now := time.Date(2026, 3, 22, 8, 0, 0, 0, time.UTC)
	start, end := periodWindow(models.PeriodWeekly, now)
	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 22, 23, 59, 59, 999000000, time.UTC), end)
}

func TestBudgetValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewBudgetService(repository.NewMemoryStore())

	_, err := svc.Create(ctx, "u1", CreateBudgetInput{Category: "Food", Limit: dec("0"), Period: "monthly"})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, "u1", CreateBudgetInput{Category: "Food", Limit: dec("10"), Period: "fortnightly"})
	assert.True(t, IsValidation(err))

	// empty period defaults to monthly
	b, err := svc.Create(ctx, "u1", CreateBudgetInput{Category: "Food", Limit: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, models.PeriodMonthly, b.Period)
}
