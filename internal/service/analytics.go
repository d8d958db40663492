package service

import (
	"context"
	"sort"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"

	"github.com/shopspring/decimal"
)

// AnalyticsService computes aggregate views over a user's
// transactions. Everything is recomputed from storage per call.
type AnalyticsService struct {
	store repository.Store
}

func NewAnalyticsService(store repository.Store) *AnalyticsService {
	return &AnalyticsService{store: store}
}

// Overview is the all-time summary of a user's finances.
type Overview struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpense     decimal.Decimal `json:"total_expense"`
	Net              decimal.Decimal `json:"net"`
	TotalBalance     decimal.Decimal `json:"total_balance"`
	WalletCount      int             `json:"wallet_count"`
	IncomeCount      int             `json:"income_count"`
	ExpenseCount     int             `json:"expense_count"`
	TransactionCount int             `json:"transaction_count"`
}

// IncomeExpense is a summary over an optional date range.
type IncomeExpense struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// CategoryBreakdown is one row of the by-category view. Percentage is
// of the filtered group total, not the user's grand total.
type CategoryBreakdown struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// TrendPoint is one time bucket of the trends view.
type TrendPoint struct {
	Bucket  string          `json:"bucket"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

func (s *AnalyticsService) Overview(ctx context.Context, userID string) (*Overview, error) {
	txs, _, err := s.store.Transactions().FindByUser(ctx, userID, repository.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	wallets, err := s.store.Wallets().FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	o := &Overview{
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		TotalBalance: decimal.Zero,
		WalletCount:  len(wallets),
	}
	for _, t := range txs {
		if t.Type == models.TypeIncome {
			o.TotalIncome = o.TotalIncome.Add(t.Amount)
			o.IncomeCount++
		} else {
			o.TotalExpense = o.TotalExpense.Add(t.Amount)
			o.ExpenseCount++
		}
	}
	o.Net = o.TotalIncome.Sub(o.TotalExpense)
	o.TransactionCount = len(txs)
	for _, w := range wallets {
		o.TotalBalance = o.TotalBalance.Add(w.Balance)
	}
	return o, nil
}

func (s *AnalyticsService) IncomeExpense(ctx context.Context, userID string, start, end *time.Time) (*IncomeExpense, error) {
	txs, _, err := s.store.Transactions().FindByUser(ctx, userID, repository.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	out := &IncomeExpense{Income: decimal.Zero, Expense: decimal.Zero}
	for _, t := range txs {
		if t.Type == models.TypeIncome {
			out.Income = out.Income.Add(t.Amount)
		} else {
			out.Expense = out.Expense.Add(t.Amount)
		}
	}
	out.Net = out.Income.Sub(out.Expense)
	return out, nil
}

// ByCategory groups matching transactions by category, sorted by
// total descending. txType and the date range are optional filters.
func (s *AnalyticsService) ByCategory(ctx context.Context, userID, txType string, start, end *time.Time) ([]CategoryBreakdown, error) {
	txs, _, err := s.store.Transactions().FindByUser(ctx, userID, repository.TransactionFilter{
		Type:  txType,
		Start: start,
		End:   end,
	})
	if err != nil {
		return nil, err
	}
	return groupByCategory(txs), nil
}

func groupByCategory(txs []models.Transaction) []CategoryBreakdown {
	totals := make(map[string]*CategoryBreakdown)
	grand := decimal.Zero
	for _, t := range txs {
		row, ok := totals[t.Category]
		if !ok {
			row = &CategoryBreakdown{Category: t.Category, Total: decimal.Zero}
			totals[t.Category] = row
		}
		row.Total = row.Total.Add(t.Amount)
		row.Count++
		grand = grand.Add(t.Amount)
	}

	out := make([]CategoryBreakdown, 0, len(totals))
	for _, row := range totals {
		if grand.IsPositive() {
			row.Percentage = row.Total.Div(grand).Mul(oneHundred).Round(2)
		} else {
			row.Percentage = decimal.Zero
		}
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Trends buckets transactions by day, ISO week start or month.
// Bucket keys are zero-padded ISO date strings, so lexicographic
// order is chronological order.
func (s *AnalyticsService) Trends(ctx context.Context, userID string, start, end *time.Time, groupBy string) ([]TrendPoint, error) {
	switch groupBy {
	case "day", "week", "month":
	default:
		return nil, Invalid("group_by must be one of day, week, month; got " + groupBy)
	}
	txs, _, err := s.store.Transactions().FindByUser(ctx, userID, repository.TransactionFilter{Start: start, End: end})
	if err != nil {
		return nil, err
	}
	return bucketTrends(txs, groupBy), nil
}

func trendBucket(date time.Time, groupBy string) string {
	switch groupBy {
	case "week":
		offset := (int(date.Weekday()) + 6) % 7 // back to Monday
		return date.AddDate(0, 0, -offset).Format("2006-01-02")
	case "month":
		return date.Format("2006-01")
	default:
		return date.Format("2006-01-02")
	}
}

func bucketTrends(txs []models.Transaction, groupBy string) []TrendPoint {
	buckets := make(map[string]*TrendPoint)
	for _, t := range txs {
		key := trendBucket(t.Date, groupBy)
		p, ok := buckets[key]
		if !ok {
			p = &TrendPoint{Bucket: key, Income: decimal.Zero, Expense: decimal.Zero}
			buckets[key] = p
		}
		if t.Type == models.TypeIncome {
			p.Income = p.Income.Add(t.Amount)
		} else {
			p.Expense = p.Expense.Add(t.Amount)
		}
	}

	out := make([]TrendPoint, 0, len(buckets))
	for _, p := range buckets {
		p.Net = p.Income.Sub(p.Expense)
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}
