// Package repository defines narrow persistence contracts for each
// entity, so services can be tested against an in-memory fake.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
)

// ErrRecordNotFound is returned by lookups when no row matches.
var ErrRecordNotFound = errors.New("record not found")

// Store bundles the per-entity repositories and provides a
// transactional boundary for multi-write workflows.
type Store interface {
	Users() UserRepository
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Budgets() BudgetRepository
	Goals() GoalRepository
	Investments() InvestmentRepository
	CurrencyRates() CurrencyRateRepository
	Articles() ArticleRepository

	// InTransaction runs fn against a store whose writes either all
	// commit or all roll back. The wallet-balance workflow depends on
	// this: a wallet update must never land without its transaction
	// write and vice versa.
	InTransaction(ctx context.Context, fn func(Store) error) error
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type WalletRepository interface {
	FindByID(ctx context.Context, id string) (*models.Wallet, error)
	FindByUser(ctx context.Context, userID string) ([]models.Wallet, error)
	Create(ctx context.Context, wallet *models.Wallet) error
	Save(ctx context.Context, wallet *models.Wallet) error
	Delete(ctx context.Context, wallet *models.Wallet) error
}

// TransactionFilter narrows FindByUser results. Zero values mean
// "no constraint"; Limit == 0 disables pagination.
type TransactionFilter struct {
	WalletID string
	Type     string
	Category string
	Tag      string
	Start    *time.Time
	End      *time.Time
	Page     int
	Limit    int
}

type TransactionRepository interface {
	FindByID(ctx context.Context, id string) (*models.Transaction, error)
	// FindByUser returns the matching page ordered by date descending,
	// along with the total match count before pagination.
	FindByUser(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, int64, error)
	Create(ctx context.Context, tx *models.Transaction) error
	Save(ctx context.Context, tx *models.Transaction) error
	Delete(ctx context.Context, tx *models.Transaction) error
}

type BudgetRepository interface {
	FindByID(ctx context.Context, id string) (*models.Budget, error)
	FindByUser(ctx context.Context, userID string) ([]models.Budget, error)
	Create(ctx context.Context, budget *models.Budget) error
	Save(ctx context.Context, budget *models.Budget) error
	Delete(ctx context.Context, budget *models.Budget) error
}

type GoalRepository interface {
	FindByID(ctx context.Context, id string) (*models.Goal, error)
	FindByUser(ctx context.Context, userID string) ([]models.Goal, error)
	Create(ctx context.Context, goal *models.Goal) error
	Save(ctx context.Context, goal *models.Goal) error
	Delete(ctx context.Context, goal *models.Goal) error
}

type InvestmentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Investment, error)
	FindByUser(ctx context.Context, userID string) ([]models.Investment, error)
	Create(ctx context.Context, inv *models.Investment) error
	Save(ctx context.Context, inv *models.Investment) error
	Delete(ctx context.Context, inv *models.Investment) error
}

type CurrencyRateRepository interface {
	// Find returns the stored rate for the exact (from, to) pair.
	Find(ctx context.Context, from, to string) (*models.CurrencyRate, error)
	All(ctx context.Context) ([]models.CurrencyRate, error)
	ByBase(ctx context.Context, base string) ([]models.CurrencyRate, error)
	// Upsert creates the pair if absent, otherwise overwrites rate and
	// updated timestamp. Pairs are never deleted.
	Upsert(ctx context.Context, rate *models.CurrencyRate) error
}

type ArticleRepository interface {
	FindByID(ctx context.Context, id string) (*models.Article, error)
	// All returns articles newest first, optionally filtered by category.
	All(ctx context.Context, category string) ([]models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Save(ctx context.Context, article *models.Article) error
}
