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

// TransactionService owns the wallet-balance workflow: every create,
// update and delete adjusts the affected wallet inside one storage
// transaction so a balance write can never land without its
// transaction write.
type TransactionService struct {
	store repository.Store
}

func NewTransactionService(store repository.Store) *TransactionService {
	return &TransactionService{store: store}
}

// CreateTransactionInput is the validated creation payload.
type CreateTransactionInput struct {
	WalletID    string
	Amount      decimal.Decimal
	Type        string
	Category    string
	Tags        []string
	Description string
	Date        time.Time
}

// UpdateTransactionInput carries optional field updates; nil means keep.
type UpdateTransactionInput struct {
	WalletID    *string
	Amount      *decimal.Decimal
	Type        *string
	Category    *string
	Tags        *[]string
	Description *string
	Date        *time.Time
}

// balanceEffect is the signed change a transaction applies to its
// wallet: +amount for income, -amount for expense.
func balanceEffect(txType string, amount decimal.Decimal) decimal.Decimal {
	if txType == models.TypeExpense {
		return amount.Neg()
	}
	return amount
}

func validateTransactionFields(amount decimal.Decimal, txType, category string) error {
	if !amount.IsPositive() {
		return Invalid("amount must be positive, got " + amount.String())
	}
	if !models.ValidTransactionType(txType) {
		return Invalid("type must be income or expense, got " + txType)
	}
	if strings.TrimSpace(category) == "" {
		return Invalid("category is required")
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (s *TransactionService) Create(ctx context.Context, userID string, in CreateTransactionInput) (*models.Transaction, error) {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if err := validateTransactionFields(in.Amount, in.Type, in.Category); err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, Invalid("date is required")
	}

	var created *models.Transaction
	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		w, err := findOwnedWallet(ctx, tx, userID, in.WalletID)
		if err != nil {
			return err
		}
		t := &models.Transaction{
			UserID:      userID,
			WalletID:    w.ID,
			Amount:      in.Amount,
			Type:        in.Type,
			Category:    strings.TrimSpace(in.Category),
			Tags:        cleanTags(in.Tags),
			Description: in.Description,
			Date:        in.Date,
		}
		if err := tx.Transactions().Create(ctx, t); err != nil {
			return err
		}
		w.Balance = w.Balance.Add(balanceEffect(t.Type, t.Amount))
		if err := tx.Wallets().Save(ctx, w); err != nil {
			return err
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ListResult is a paginated transaction page.
type ListResult struct {
	Data  []models.Transaction `json:"data"`
	Total int64                `json:"total"`
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
}

func (s *TransactionService) List(ctx context.Context, userID string, filter repository.TransactionFilter) (*ListResult, error) {
	txs, total, err := s.store.Transactions().FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	return &ListResult{Data: txs, Total: total, Page: page, Limit: filter.Limit}, nil
}

func (s *TransactionService) Get(ctx context.Context, userID, txID string) (*models.Transaction, error) {
	return s.findOwned(ctx, s.store, userID, txID)
}

// Update reverts the stored transaction's effect on its original
// wallet, then applies the new effect on the (possibly different)
// target wallet. The revert uses the exact stored amount and type,
// read before any mutation, so repeated edits cannot drift balances.
func (s *TransactionService) Update(ctx context.Context, userID, txID string, in UpdateTransactionInput) (*models.Transaction, error) {
	var updated *models.Transaction
	err := s.store.InTransaction(ctx, func(tx repository.Store) error {
		t, err := s.findOwned(ctx, tx, userID, txID)
		if err != nil {
			return err
		}

		oldEffect := balanceEffect(t.Type, t.Amount)
		oldWalletID := t.WalletID

		if in.WalletID != nil {
			t.WalletID = *in.WalletID
		}
		if in.Amount != nil {
			t.Amount = *in.Amount
		}
		if in.Type != nil {
			t.Type = strings.ToLower(strings.TrimSpace(*in.Type))
		}
		if in.Category != nil {
			t.Category = strings.TrimSpace(*in.Category)
		}
		if in.Tags != nil {
			t.Tags = cleanTags(*in.Tags)
		}
		if in.Description != nil {
			t.Description = *in.Description
		}
		if in.Date != nil {
			t.Date = *in.Date
		}
		if err := validateTransactionFields(t.Amount, t.Type, t.Category); err != nil {
			return err
		}

		oldWallet, err := findOwnedWallet(ctx, tx, userID, oldWalletID)
		if err != nil {
			return err
		}
		oldWallet.Balance = oldWallet.Balance.Sub(oldEffect)
		if err := tx.Wallets().Save(ctx, oldWallet); err != nil {
			return err
		}

		newWallet := oldWallet
		if t.WalletID != oldWalletID {
			newWallet, err = findOwnedWallet(ctx, tx, userID, t.WalletID)
			if err != nil {
				return err
			}
		}
		newWallet.Balance = newWallet.Balance.Add(balanceEffect(t.Type, t.Amount))
		if err := tx.Wallets().Save(ctx, newWallet); err != nil {
			return err
		}

		if err := tx.Transactions().Save(ctx, t); err != nil {
			return err
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete reverts the transaction's balance effect and removes it.
func (s *TransactionService) Delete(ctx context.Context, userID, txID string) error {
	return s.store.InTransaction(ctx, func(tx repository.Store) error {
		t, err := s.findOwned(ctx, tx, userID, txID)
		if err != nil {
			return err
		}
		w, err := findOwnedWallet(ctx, tx, userID, t.WalletID)
		if err != nil {
			return err
		}
		w.Balance = w.Balance.Sub(balanceEffect(t.Type, t.Amount))
		if err := tx.Wallets().Save(ctx, w); err != nil {
			return err
		}
		return tx.Transactions().Delete(ctx, t)
	})
}

func (s *TransactionService) findOwned(ctx context.Context, store repository.Store, userID, txID string) (*models.Transaction, error) {
	t, err := store.Transactions().FindByID(ctx, txID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrForbidden
	}
	return t, nil
}
