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

func TestWalletCreateDefaults(t *testing.T) {
	ctx := context.Background()
	svc := NewWalletService(repository.NewMemoryStore())

	w, err := svc.Create(ctx, "u1", CreateWalletInput{Name: " Main ", Currency: "usd", Balance: dec("10")})
	require.NoError(t, err)
	assert.Equal(t, "Main", w.Name)
	assert.Equal(t, "USD", w.Currency)

	w2, err := svc.Create(ctx, "u1", CreateWalletInput{Name: "Cash"})
	require.NoError(t, err)
	assert.Equal(t, "RUB", w2.Currency, "default currency")

	_, err = svc.Create(ctx, "u1", CreateWalletInput{Name: "Bad", Currency: "RUBLES"})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, "u1", CreateWalletInput{Name: "", Currency: "USD"})
	assert.True(t, IsValidation(err))

	_, err = svc.Create(ctx, "u1", CreateWalletInput{Name: "Neg", Balance: dec("-1")})
	assert.True(t, IsValidation(err))
}

func TestWalletOwnership(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewWalletService(store)

	w, err := svc.Create(ctx, "u1", CreateWalletInput{Name: "Main"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "intruder", w.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.Delete(ctx, "intruder", w.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Get(ctx, "u1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWalletDeleteCascadesTransactions(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := NewWalletService(store)
	txSvc := NewTransactionService(store)

	w, err := svc.Create(ctx, "u1", CreateWalletInput{Name: "Main", Balance: dec("100")})
	require.NoError(t, err)
	_, err = txSvc.Create(ctx, "u1", CreateTransactionInput{
		WalletID: w.ID, Amount: dec("5"), Type: models.TypeExpense, Category: "Food", Date: time.Now(),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", w.ID))

	txs, total, err := store.Transactions().FindByUser(ctx, "u1", repository.TransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, txs)
	assert.Equal(t, int64(0), total)
}
