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

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedWallet(t *testing.T, store *repository.MemoryStore, userID, balance string) *models.Wallet {
	t.Helper()
	w := &models.Wallet{UserID: userID, Name: "Main", Currency: "RUB", Balance: dec(balance)}
	require.NoError(t, store.Wallets().Create(context.Background(), w))
	return w
}

func TestTransactionBalanceRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewTransactionService(store)
	w := seedWallet(t, store, "u1", "1000")

	tx, err := svc.Create(ctx, "u1", CreateTransactionInput{
		WalletID: w.ID,
		Amount:   dec("200"),
		Type:     models.TypeExpense,
		Category: "Food",
		Date:     time.Now(),
	})
	require.NoError(t, err)

	got, err := store.Wallets().FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("800")), "after create: %s", got.Balance)

	newAmount := dec("50")
	_, err = svc.Update(ctx, "u1", tx.ID, UpdateTransactionInput{Amount: &newAmount})
	require.NoError(t, err)

	got, err = store.Wallets().FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("950")), "after update: %s", got.Balance)

	require.NoError(t, svc.Delete(ctx, "u1", tx.ID))

	got, err = store.Wallets().FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("1000")), "after delete: %s", got.Balance)
}

func TestTransactionIncomeIncreasesBalance(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewTransactionService(store)
	w := seedWallet(t, store, "u1", "100")

	_, err := svc.Create(ctx, "u1", CreateTransactionInput{
		WalletID: w.ID,
		Amount:   dec("42.50"),
		Type:     models.TypeIncome,
		Category: "Salary",
		Date:     time.Now(),
	})
	require.NoError(t, err)

	got, err := store.Wallets().FindByID(ctx, w.ID)
	require.NoError(t, err)
	assert.True(t, got.Balance.Equal(dec("142.50")))
}

func TestTransactionUpdateMovesBetweenWallets(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewTransactionService(store)
	w1 := seedWallet(t, store, "u1", "500")
	w2 := seedWallet(t, store, "u1", "500")

	tx, err := svc.Create(ctx, "u1", CreateTransactionInput{
		WalletID: w1.ID,
		Amount:   dec("100"),
		Type:     models.TypeExpense,
		Category: "Travel",
		Date:     time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u1", tx.ID, UpdateTransactionInput{WalletID: &w2.ID})
	require.NoError(t, err)

	got1, _ := store.Wallets().FindByID(ctx, w1.ID)
	got2, _ := store.Wallets().FindByID(ctx, w2.ID)
	assert.True(t, got1.Balance.Equal(dec("500")), "source restored: %s", got1.Balance)
	assert.True(t, got2.Balance.Equal(dec("400")), "target charged: %s", got2.Balance)
}

func TestTransactionValidation(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewTransactionService(store)
	w := seedWallet(t, store, "u1", "100")

	base := CreateTransactionInput{
		WalletID: w.ID,
		Amount:   dec("10"),
		Type:     models.TypeExpense,
		Category: "Food",
		Date:     time.Now(),
	}

	negative := base
	negative.Amount = dec("-5")
	_, err := svc.Create(ctx, "u1", negative)
	assert.True(t, IsValidation(err))

	badType := base
	badType.Type = "transfer"
	_, err = svc.Create(ctx, "u1", badType)
	assert.True(t, IsValidation(err))

	noCategory := base
	noCategory.Category = "  "
	_, err = svc.Create(ctx, "u1", noCategory)
	assert.True(t, IsValidation(err))
}

func TestTransactionOwnership(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewTransactionService(store)
	w := seedWallet(t, store, "u1", "100")

	tx, err := svc.Create(ctx, "u1", CreateTransactionInput{
		WalletID: w.ID,
		Amount:   dec("10"),
		Type:     models.TypeExpense,
		Category: "Food",
		Date:     time.Now(),
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "intruder", tx.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Create(ctx, "intruder", CreateTransactionInput{
		WalletID: w.ID,
		Amount:   dec("10"),
		Type:     models.TypeExpense,
		Category: "Food",
		Date:     time.Now(),
	})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, "u1", "missing-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTransactionListFilterAndPaging(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewTransactionService(store)
	w := seedWallet(t, store, "u1", "1000")

	day := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := svc.Create(ctx, "u1", CreateTransactionInput{
			WalletID: w.ID,
			Amount:   dec("10"),
			Type:     models.TypeExpense,
			Category: "Food",
			Tags:     []string{"weekly"},
			Date:     day.AddDate(0, 0, i),
		})
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, "u1", repository.TransactionFilter{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.Total)
	require.Len(t, page.Data, 2)
	// newest first
	assert.Equal(t, day.AddDate(0, 0, 4), page.Data[0].Date)

	tagged, err := svc.List(ctx, "u1", repository.TransactionFilter{Tag: "weekly"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), tagged.Total)

	none, err := svc.List(ctx, "u1", repository.TransactionFilter{Tag: "missing"})
	require.NoError(t, err)
	assert.Equal(t, int64(0), none.Total)
}
