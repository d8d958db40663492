package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/shopspring/decimal"
)

// WalletService manages a user's wallets. Balances are never set
// directly here except at creation; afterwards only the transaction
// workflow touches them.
type WalletService struct {
	store repository.Store
}

func NewWalletService(store repository.Store) *WalletService {
	return &WalletService{store: store}
}

// CreateWalletInput is the validated creation payload.
type CreateWalletInput struct {
	Name     string
	Currency string
	Balance  decimal.Decimal
}

// UpdateWalletInput carries optional field updates; nil means keep.
type UpdateWalletInput struct {
	Name     *string
	Currency *string
}

func validCurrencyCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func (s *WalletService) Create(ctx context.Context, userID string, in CreateWalletInput) (*models.Wallet, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, Invalid("wallet name is required")
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "RUB"
	}
	if !validCurrencyCode(currency) {
		return nil, Invalid("currency must be a 3-letter code, got " + in.Currency)
	}
	if in.Balance.IsNegative() {
		return nil, Invalid("initial balance cannot be negative")
	}
	w := &models.Wallet{
		UserID:   userID,
		Name:     strings.TrimSpace(in.Name),
		Currency: currency,
		Balance:  in.Balance,
	}
	if err := s.store.Wallets().Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *WalletService) List(ctx context.Context, userID string) ([]models.Wallet, error) {
	return s.store.Wallets().FindByUser(ctx, userID)
}

func (s *WalletService) Get(ctx context.Context, userID, walletID string) (*models.Wallet, error) {
	return findOwnedWallet(ctx, s.store, userID, walletID)
}

func (s *WalletService) Update(ctx context.Context, userID, walletID string, in UpdateWalletInput) (*models.Wallet, error) {
	w, err := findOwnedWallet(ctx, s.store, userID, walletID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, Invalid("wallet name is required")
		}
		w.Name = strings.TrimSpace(*in.Name)
	}
	if in.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*in.Currency))
		if !validCurrencyCode(currency) {
			return nil, Invalid("currency must be a 3-letter code, got " + *in.Currency)
		}
		w.Currency = currency
	}
	if err := s.store.Wallets().Save(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Delete removes the wallet and cascades its transactions.
func (s *WalletService) Delete(ctx context.Context, userID, walletID string) error {
	w, err := findOwnedWallet(ctx, s.store, userID, walletID)
	if err != nil {
		return err
	}
	return s.store.Wallets().Delete(ctx, w)
}

// findOwnedWallet is shared with the transaction workflow.
func findOwnedWallet(ctx context.Context, store repository.Store, userID, walletID string) (*models.Wallet, error) {
	w, err := store.Wallets().FindByID(ctx, walletID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if w.UserID != userID {
		return nil, ErrForbidden
	}
	return w, nil
}
