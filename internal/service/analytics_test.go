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

func seedAnalytics(t *testing.T, store *repository.MemoryStore) string {
	t.Helper()
	ctx := context.Background()
	svc := NewTransactionService(store)
	w := seedWallet(t, store, "u1", "0")

	day := time.Date(2026, 2, 2, 12, 0, 0, 0, time.UTC) // a Monday
	rows := []struct {
		amount   string
		txType   string
		category string
		offset   int
	}{
		{"1000", models.TypeIncome, "Salary", 0},
		{"300", models.TypeExpense, "Food", 0},
		{"100", models.TypeExpense, "Food", 1},
		{"100", models.TypeExpense, "Travel", 7},
		{"500", models.TypeIncome, "Bonus", 35},
	}
	for _, r := range rows {
		_, err := svc.Create(ctx, "u1", CreateTransactionInput{
			WalletID: w.ID,
			Amount:   dec(r.amount),
			Type:     r.txType,
			Category: r.category,
			Date:     day.AddDate(0, 0, r.offset),
		})
		require.NoError(t, err)
	}
	return w.ID
}

func TestOverview(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAnalytics(t, store)
	svc := NewAnalyticsService(store)

	o, err := svc.Overview(context.Background(), "u1")
	require.NoError(t, err)
	assert.True(t, o.TotalIncome.Equal(dec("1500")))
	assert.True(t, o.TotalExpense.Equal(dec("500")))
	assert.True(t, o.Net.Equal(dec("1000")))
	assert.True(t, o.TotalBalance.Equal(dec("1000")), "wallet balance tracks the workflow")
	assert.Equal(t, 1, o.WalletCount)
	assert.Equal(t, 2, o.IncomeCount)
	assert.Equal(t, 3, o.ExpenseCount)
	assert.Equal(t, 5, o.TransactionCount)
}

func TestByCategoryPercentageClosure(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAnalytics(t, store)
	svc := NewAnalyticsService(store)

	rows, err := svc.ByCategory(context.Background(), "u1", models.TypeExpense, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// sorted descending by total
	assert.Equal(t, "Food", rows[0].Category)
	assert.True(t, rows[0].Total.Equal(dec("400")))
	assert.Equal(t, 2, rows[0].Count)
	assert.Equal(t, "80.00", rows[0].Percentage.StringFixed(2))
	assert.Equal(t, "Travel", rows[1].Category)
	assert.Equal(t, "20.00", rows[1].Percentage.StringFixed(2))

	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Percentage)
	}
	assert.True(t, sum.Sub(dec("100")).Abs().LessThan(dec("0.02")), "percentages close to 100, got %s", sum)
}

func TestByCategoryNormalizesAgainstFilteredSet(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAnalytics(t, store)
	svc := NewAnalyticsService(store)

	// income only: Salary 1000 of 1500 = 66.67
	rows, err := svc.ByCategory(context.Background(), "u1", models.TypeIncome, nil, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Salary", rows[0].Category)
	assert.Equal(t, "66.67", rows[0].Percentage.StringFixed(2))
}

func TestTrendsByDayWeekMonth(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAnalytics(t, store)
	svc := NewAnalyticsService(store)
	ctx := context.Background()

	days, err := svc.Trends(ctx, "u1", nil, nil, "day")
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, "2026-02-02", days[0].Bucket, "ascending bucket order")
	assert.True(t, days[0].Income.Equal(dec("1000")))
	assert.True(t, days[0].Expense.Equal(dec("300")))
	assert.True(t, days[0].Net.Equal(dec("700")))

	weeks, err := svc.Trends(ctx, "u1", nil, nil, "week")
	require.NoError(t, err)
	require.Len(t, weeks, 3)
	assert.Equal(t, "2026-02-02", weeks[0].Bucket, "weeks keyed by their Monday")
	assert.Equal(t, "2026-02-09", weeks[1].Bucket)
	assert.True(t, weeks[0].Expense.Equal(dec("400")))

	months, err := svc.Trends(ctx, "u1", nil, nil, "month")
	require.NoError(t, err)
	require.Len(t, months, 2)
	assert.Equal(t, "2026-02", months[0].Bucket)
	assert.Equal(t, "2026-03", months[1].Bucket)
	assert.True(t, months[1].Income.Equal(dec("500")))

	_, err = svc.Trends(ctx, "u1", nil, nil, "quarter")
	assert.True(t, IsValidation(err))
}

func TestIncomeExpenseRange(t *testing.T) {
	store := repository.NewMemoryStore()
	seedAnalytics(t, store)
	svc := NewAnalyticsService(store)

	start := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 2, 28, 23, 59, 59, 0, time.UTC)
	got, err := svc.IncomeExpense(context.Background(), "u1", &start, &end)
	require.NoError(t, err)
	assert.True(t, got.Income.Equal(dec("1000")), "March bonus excluded")
	assert.True(t, got.Expense.Equal(dec("500")))
	assert.True(t, got.Net.Equal(dec("500")))
}
