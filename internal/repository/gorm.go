package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/ausare-dev/personal-finance-manager/internal/models"

	"gorm.io/gorm"
)

// NewGormStore wraps a gorm database as a Store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

type gormStore struct {
	db *gorm.DB
}

func (s *gormStore) Users() UserRepository                 { return gormUsers{s.db} }
func (s *gormStore) Wallets() WalletRepository             { return gormWallets{s.db} }
func (s *gormStore) Transactions() TransactionRepository   { return gormTransactions{s.db} }
func (s *gormStore) Budgets() BudgetRepository             { return gormBudgets{s.db} }
func (s *gormStore) Goals() GoalRepository                 { return gormGoals{s.db} }
func (s *gormStore) Investments() InvestmentRepository     { return gormInvestments{s.db} }
func (s *gormStore) CurrencyRates() CurrencyRateRepository { return gormRates{s.db} }
func (s *gormStore) Articles() ArticleRepository           { return gormArticles{s.db} }

func (s *gormStore) InTransaction(ctx context.Context, fn func(Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// translate maps gorm's not-found to the repository sentinel.
func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRecordNotFound
	}
	return err
}

// ---------- users ----------

type gormUsers struct{ db *gorm.DB }

func (r gormUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r gormUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "LOWER(email) = LOWER(?)", email).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r gormUsers) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// ---------- wallets ----------

type gormWallets struct{ db *gorm.DB }

func (r gormWallets) FindByID(ctx context.Context, id string) (*models.Wallet, error) {
	var w models.Wallet
	if err := r.db.WithContext(ctx).First(&w, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

func (r gormWallets) FindByUser(ctx context.Context, userID string) ([]models.Wallet, error) {
	var ws []models.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&ws).Error
	return ws, err
}

func (r gormWallets) Create(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Create(wallet).Error
}

func (r gormWallets) Save(ctx context.Context, wallet *models.Wallet) error {
	return r.db.WithContext(ctx).Save(wallet).Error
}

func (r gormWallets) Delete(ctx context.Context, wallet *models.Wallet) error {
	// wallet's transactions go with it
	if err := r.db.WithContext(ctx).
		Where("wallet_id = ?", wallet.ID).
		Delete(&models.Transaction{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(wallet).Error
}

// ---------- transactions ----------

type gormTransactions struct{ db *gorm.DB }

func (r gormTransactions) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	var t models.Transaction
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r gormTransactions) FindByUser(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)

	if filter.WalletID != "" {
		q = q.Where("wallet_id = ?", filter.WalletID)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Start != nil {
		q = q.Where("date >= ?", *filter.Start)
	}
	if filter.End != nil {
		q = q.Where("date <= ?", *filter.End)
	}

	var txs []models.Transaction
	if err := q.Order("date DESC, created_at DESC").Find(&txs).Error; err != nil {
		return nil, 0, err
	}

	// tags are stored serialized, so the tag filter runs in memory
	if filter.Tag != "" {
		filtered := txs[:0]
		for _, t := range txs {
			for _, tag := range t.Tags {
				if strings.EqualFold(tag, filter.Tag) {
					filtered = append(filtered, t)
					break
				}
			}
		}
		txs = filtered
	}

	total := int64(len(txs))
	if filter.Limit > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		offset := (page - 1) * filter.Limit
		if offset >= len(txs) {
			return []models.Transaction{}, total, nil
		}
		end := offset + filter.Limit
		if end > len(txs) {
			end = len(txs)
		}
		txs = txs[offset:end]
	}

	return txs, total, nil
}

func (r gormTransactions) Create(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

func (r gormTransactions) Save(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Save(tx).Error
}

func (r gormTransactions) Delete(ctx context.Context, tx *models.Transaction) error {
	return r.db.WithContext(ctx).Delete(tx).Error
}

// ---------- budgets ----------

type gormBudgets struct{ db *gorm.DB }

func (r gormBudgets) FindByID(ctx context.Context, id string) (*models.Budget, error) {
	var b models.Budget
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &b, nil
}

func (r gormBudgets) FindByUser(ctx context.Context, userID string) ([]models.Budget, error) {
	var bs []models.Budget
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&bs).Error
	return bs, err
}

func (r gormBudgets) Create(ctx context.Context, budget *models.Budget) error {
	return r.db.WithContext(ctx).Create(budget).Error
}

func (r gormBudgets) Save(ctx context.Context, budget *models.Budget) error {
	return r.db.WithContext(ctx).Save(budget).Error
}

func (r gormBudgets) Delete(ctx context.Context, budget *models.Budget) error {
	return r.db.WithContext(ctx).Delete(budget).Error
}

// ---------- goals ----------

type gormGoals struct{ db *gorm.DB }

func (r gormGoals) FindByID(ctx context.Context, id string) (*models.Goal, error) {
	var g models.Goal
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &g, nil
}

func (r gormGoals) FindByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	var gs []models.Goal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("deadline ASC").
		Find(&gs).Error
	return gs, err
}

func (r gormGoals) Create(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Create(goal).Error
}

func (r gormGoals) Save(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Save(goal).Error
}

func (r gormGoals) Delete(ctx context.Context, goal *models.Goal) error {
	return r.db.WithContext(ctx).Delete(goal).Error
}

// ---------- investments ----------

type gormInvestments struct{ db *gorm.DB }

func (r gormInvestments) FindByID(ctx context.Context, id string) (*models.Investment, error) {
	var inv models.Investment
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &inv, nil
}

func (r gormInvestments) FindByUser(ctx context.Context, userID string) ([]models.Investment, error) {
	var invs []models.Investment
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("purchase_date DESC").
		Find(&invs).Error
	return invs, err
}

func (r gormInvestments) Create(ctx context.Context, inv *models.Investment) error {
	return r.db.WithContext(ctx).Create(inv).Error
}

func (r gormInvestments) Save(ctx context.Context, inv *models.Investment) error {
	return r.db.WithContext(ctx).Save(inv).Error
}

func (r gormInvestments) Delete(ctx context.Context, inv *models.Investment) error {
	return r.db.WithContext(ctx).Delete(inv).Error
}

// ---------- currency rates ----------

type gormRates struct{ db *gorm.DB }

func (r gormRates) Find(ctx context.Context, from, to string) (*models.CurrencyRate, error) {
	var cr models.CurrencyRate
	err := r.db.WithContext(ctx).
		First(&cr, "from_currency = ? AND to_currency = ?", from, to).Error
	if err != nil {
		return nil, translate(err)
	}
	return &cr, nil
}

func (r gormRates) All(ctx context.Context) ([]models.CurrencyRate, error) {
	var crs []models.CurrencyRate
	err := r.db.WithContext(ctx).
		Order("from_currency ASC, to_currency ASC").
		Find(&crs).Error
	return crs, err
}

func (r gormRates) ByBase(ctx context.Context, base string) ([]models.CurrencyRate, error) {
	var crs []models.CurrencyRate
	err := r.db.WithContext(ctx).
		Where("from_currency = ?", base).
		Order("to_currency ASC").
		Find(&crs).Error
	return crs, err
}

func (r gormRates) Upsert(ctx context.Context, rate *models.CurrencyRate) error {
	existing, err := r.Find(ctx, rate.FromCurrency, rate.ToCurrency)
	if err == nil {
		existing.Rate = rate.Rate
		return r.db.WithContext(ctx).Save(existing).Error
	}
	if !errors.Is(err, ErrRecordNotFound) {
		return err
	}
	return r.db.WithContext(ctx).Create(rate).Error
}

// ---------- articles ----------

type gormArticles struct{ db *gorm.DB }

func (r gormArticles) FindByID(ctx context.Context, id string) (*models.Article, error) {
	var a models.Article
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r gormArticles) All(ctx context.Context, category string) ([]models.Article, error) {
	q := r.db.WithContext(ctx).Model(&models.Article{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var as []models.Article
	err := q.Order("created_at DESC").Find(&as).Error
	return as, err
}

func (r gormArticles) Create(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Create(article).Error
}

func (r gormArticles) Save(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}
