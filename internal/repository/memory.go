package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store used by service tests and by the
// samples in cmd/seed when no database is wanted. It mirrors the
// ordering guarantees of the gorm store.
type MemoryStore struct {
	mu           sync.Mutex
	users        map[string]models.User
	wallets      map[string]models.Wallet
	transactions map[string]models.Transaction
	budgets      map[string]models.Budget
	goals        map[string]models.Goal
	investments  map[string]models.Investment
	rates        map[string]models.CurrencyRate // keyed FROM->TO
	articles     map[string]models.Article
	seq          int // tie-break for identical timestamps
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:        make(map[string]models.User),
		wallets:      make(map[string]models.Wallet),
		transactions: make(map[string]models.Transaction),
		budgets:      make(map[string]models.Budget),
		goals:        make(map[string]models.Goal),
		investments:  make(map[string]models.Investment),
		rates:        make(map[string]models.CurrencyRate),
		articles:     make(map[string]models.Article),
	}
}

func (m *MemoryStore) Users() UserRepository                 { return memUsers{m} }
func (m *MemoryStore) Wallets() WalletRepository             { return memWallets{m} }
func (m *MemoryStore) Transactions() TransactionRepository   { return memTransactions{m} }
func (m *MemoryStore) Budgets() BudgetRepository             { return memBudgets{m} }
func (m *MemoryStore) Goals() GoalRepository                 { return memGoals{m} }
func (m *MemoryStore) Investments() InvestmentRepository     { return memInvestments{m} }
func (m *MemoryStore) CurrencyRates() CurrencyRateRepository { return memRates{m} }
func (m *MemoryStore) Articles() ArticleRepository           { return memArticles{m} }

// InTransaction runs fn directly; the in-memory store has no rollback.
func (m *MemoryStore) InTransaction(ctx context.Context, fn func(Store) error) error {
	return fn(m)
}

func newID(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}

// ---------- users ----------

type memUsers struct{ s *MemoryStore }

func (r memUsers) FindByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &u, nil
}

func (r memUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, ErrRecordNotFound
}

func (r memUsers) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	user.ID = newID(user.ID)
	user.CreatedAt = time.Now()
	r.s.users[user.ID] = *user
	return nil
}

// ---------- wallets ----------

type memWallets struct{ s *MemoryStore }

func (r memWallets) FindByID(ctx context.Context, id string) (*models.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.wallets[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &w, nil
}

func (r memWallets) FindByUser(ctx context.Context, userID string) ([]models.Wallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var ws []models.Wallet
	for _, w := range r.s.wallets {
		if w.UserID == userID {
			ws = append(ws, w)
		}
	}
	sort.Slice(ws, func(i, j int) bool { return ws[i].CreatedAt.After(ws[j].CreatedAt) })
	return ws, nil
}

func (r memWallets) Create(ctx context.Context, wallet *models.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wallet.ID = newID(wallet.ID)
	wallet.CreatedAt = time.Now()
	r.s.wallets[wallet.ID] = *wallet
	return nil
}

func (r memWallets) Save(ctx context.Context, wallet *models.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	wallet.UpdatedAt = time.Now()
	r.s.wallets[wallet.ID] = *wallet
	return nil
}

func (r memWallets) Delete(ctx context.Context, wallet *models.Wallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.wallets, wallet.ID)
	for id, t := range r.s.transactions {
		if t.WalletID == wallet.ID {
			delete(r.s.transactions, id)
		}
	}
	return nil
}

// ---------- transactions ----------

type memTransactions struct{ s *MemoryStore }

func (r memTransactions) FindByID(ctx context.Context, id string) (*models.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &t, nil
}

func (r memTransactions) FindByUser(ctx context.Context, userID string, filter TransactionFilter) ([]models.Transaction, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var txs []models.Transaction
	for _, t := range r.s.transactions {
		if t.UserID != userID {
			continue
		}
		if filter.WalletID != "" && t.WalletID != filter.WalletID {
			continue
		}
		if filter.Type != "" && t.Type != filter.Type {
			continue
		}
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Start != nil && t.Date.Before(*filter.Start) {
			continue
		}
		if filter.End != nil && t.Date.After(*filter.End) {
			continue
		}
		if filter.Tag != "" {
			found := false
			for _, tag := range t.Tags {
				if strings.EqualFold(tag, filter.Tag) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		txs = append(txs, t)
	}

	sort.Slice(txs, func(i, j int) bool {
		if !txs[i].Date.Equal(txs[j].Date) {
			return txs[i].Date.After(txs[j].Date)
		}
		return txs[i].CreatedAt.After(txs[j].CreatedAt)
	})

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

func (r memTransactions) Create(ctx context.Context, tx *models.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	tx.ID = newID(tx.ID)
	r.s.seq++
	tx.CreatedAt = time.Now().Add(time.Duration(r.s.seq) * time.Microsecond)
	r.s.transactions[tx.ID] = *tx
	return nil
}

func (r memTransactions) Save(ctx context.Context, tx *models.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[tx.ID] = *tx
	return nil
}

func (r memTransactions) Delete(ctx context.Context, tx *models.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.transactions, tx.ID)
	return nil
}

// ---------- budgets ----------

type memBudgets struct{ s *MemoryStore }

func (r memBudgets) FindByID(ctx context.Context, id string) (*models.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.budgets[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &b, nil
}

func (r memBudgets) FindByUser(ctx context.Context, userID string) ([]models.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var bs []models.Budget
	for _, b := range r.s.budgets {
		if b.UserID == userID {
			bs = append(bs, b)
		}
	}
	sort.Slice(bs, func(i, j int) bool { return bs[i].CreatedAt.After(bs[j].CreatedAt) })
	return bs, nil
}

func (r memBudgets) Create(ctx context.Context, budget *models.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	budget.ID = newID(budget.ID)
	budget.CreatedAt = time.Now()
	r.s.budgets[budget.ID] = *budget
	return nil
}

func (r memBudgets) Save(ctx context.Context, budget *models.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	budget.UpdatedAt = time.Now()
	r.s.budgets[budget.ID] = *budget
	return nil
}

func (r memBudgets) Delete(ctx context.Context, budget *models.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.budgets, budget.ID)
	return nil
}

// ---------- goals ----------

type memGoals struct{ s *MemoryStore }

func (r memGoals) FindByID(ctx context.Context, id string) (*models.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &g, nil
}

func (r memGoals) FindByUser(ctx context.Context, userID string) ([]models.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var gs []models.Goal
	for _, g := range r.s.goals {
		if g.UserID == userID {
			gs = append(gs, g)
		}
	}
	sort.Slice(gs, func(i, j int) bool { return gs[i].Deadline.Before(gs[j].Deadline) })
	return gs, nil
}

func (r memGoals) Create(ctx context.Context, goal *models.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	goal.ID = newID(goal.ID)
	goal.CreatedAt = time.Now()
	r.s.goals[goal.ID] = *goal
	return nil
}

func (r memGoals) Save(ctx context.Context, goal *models.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	goal.UpdatedAt = time.Now()
	r.s.goals[goal.ID] = *goal
	return nil
}

func (r memGoals) Delete(ctx context.Context, goal *models.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.goals, goal.ID)
	return nil
}

// ---------- investments ----------

type memInvestments struct{ s *MemoryStore }

func (r memInvestments) FindByID(ctx context.Context, id string) (*models.Investment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.investments[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &inv, nil
}

func (r memInvestments) FindByUser(ctx context.Context, userID string) ([]models.Investment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var invs []models.Investment
	for _, inv := range r.s.investments {
		if inv.UserID == userID {
			invs = append(invs, inv)
		}
	}
	sort.Slice(invs, func(i, j int) bool { return invs[i].PurchaseDate.After(invs[j].PurchaseDate) })
	return invs, nil
}

func (r memInvestments) Create(ctx context.Context, inv *models.Investment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv.ID = newID(inv.ID)
	inv.CreatedAt = time.Now()
	r.s.investments[inv.ID] = *inv
	return nil
}

func (r memInvestments) Save(ctx context.Context, inv *models.Investment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv.UpdatedAt = time.Now()
	r.s.investments[inv.ID] = *inv
	return nil
}

func (r memInvestments) Delete(ctx context.Context, inv *models.Investment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.investments, inv.ID)
	return nil
}

// ---------- currency rates ----------

type memRates struct{ s *MemoryStore }

func pairKey(from, to string) string { return from + "->" + to }

func (r memRates) Find(ctx context.Context, from, to string) (*models.CurrencyRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cr, ok := r.s.rates[pairKey(from, to)]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &cr, nil
}

func (r memRates) All(ctx context.Context) ([]models.CurrencyRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var crs []models.CurrencyRate
	for _, cr := range r.s.rates {
		crs = append(crs, cr)
	}
	sort.Slice(crs, func(i, j int) bool {
		if crs[i].FromCurrency != crs[j].FromCurrency {
			return crs[i].FromCurrency < crs[j].FromCurrency
		}
		return crs[i].ToCurrency < crs[j].ToCurrency
	})
	return crs, nil
}

func (r memRates) ByBase(ctx context.Context, base string) ([]models.CurrencyRate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var crs []models.CurrencyRate
	for _, cr := range r.s.rates {
		if cr.FromCurrency == base {
			crs = append(crs, cr)
		}
	}
	sort.Slice(crs, func(i, j int) bool { return crs[i].ToCurrency < crs[j].ToCurrency })
	return crs, nil
}

func (r memRates) Upsert(ctx context.Context, rate *models.CurrencyRate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := pairKey(rate.FromCurrency, rate.ToCurrency)
	if existing, ok := r.s.rates[key]; ok {
		existing.Rate = rate.Rate
		existing.UpdatedAt = time.Now()
		r.s.rates[key] = existing
		return nil
	}
	rate.ID = newID(rate.ID)
	rate.CreatedAt = time.Now()
	rate.UpdatedAt = rate.CreatedAt
	r.s.rates[key] = *rate
	return nil
}

// ---------- articles ----------

type memArticles struct{ s *MemoryStore }

func (r memArticles) FindByID(ctx context.Context, id string) (*models.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.articles[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	return &a, nil
}

func (r memArticles) All(ctx context.Context, category string) ([]models.Article, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var as []models.Article
	for _, a := range r.s.articles {
		if category == "" || a.Category == category {
			as = append(as, a)
		}
	}
	sort.Slice(as, func(i, j int) bool { return as[i].CreatedAt.After(as[j].CreatedAt) })
	return as, nil
}

func (r memArticles) Create(ctx context.Context, article *models.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	article.ID = newID(article.ID)
	r.s.seq++
	article.CreatedAt = time.Now().Add(time.Duration(r.s.seq) * time.Microsecond)
	r.s.articles[article.ID] = *article
	return nil
}

func (r memArticles) Save(ctx context.Context, article *models.Article) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	article.UpdatedAt = time.Now()
	r.s.articles[article.ID] = *article
	return nil
}
