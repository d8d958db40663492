// Command seed populates the database with a demo user, sample
// finance data and the education article library.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/config"
	"github.com/ausare-dev/personal-finance-manager/internal/database"
	"github.com/ausare-dev/personal-finance-manager/internal/logger"
	"github.com/ausare-dev/personal-finance-manager/internal/models"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"
	"github.com/ausare-dev/personal-finance-manager/internal/service"

	"github.com/shopspring/decimal"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "demo1234secret"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: config.yaml)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level)

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("init database")
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	ctx := context.Background()
	store := repository.NewGormStore(db)

	auth := service.NewAuthService(store, cfg.Security.BcryptCost)
	user, err := auth.Register(ctx, demoEmail, demoPassword, "Demo User")
	if err != nil {
		log.Fatal().Err(err).Msg("seed user (already seeded?)")
	}

	wallets := service.NewWalletService(store)
	mainWallet, err := wallets.Create(ctx, user.ID, service.CreateWalletInput{
		Name: "Main", Currency: "RUB", Balance: decimal.NewFromInt(50000),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed wallet")
	}
	if _, err := wallets.Create(ctx, user.ID, service.CreateWalletInput{
		Name: "Savings", Currency: "USD", Balance: decimal.NewFromInt(1200),
	}); err != nil {
		log.Fatal().Err(err).Msg("seed wallet")
	}

	transactions := service.NewTransactionService(store)
	now := time.Now()
	sample := []service.CreateTransactionInput{
		{WalletID: mainWallet.ID, Amount: decimal.NewFromInt(85000), Type: models.TypeIncome, Category: "Salary", Date: now.AddDate(0, 0, -20)},
		{WalletID: mainWallet.ID, Amount: decimal.NewFromInt(2500), Type: models.TypeExpense, Category: "Food", Tags: []string{"groceries"}, Date: now.AddDate(0, 0, -18)},
		{WalletID: mainWallet.ID, Amount: decimal.NewFromInt(1200), Type: models.TypeExpense, Category: "Transport", Date: now.AddDate(0, 0, -15)},
		{WalletID: mainWallet.ID, Amount: decimal.NewFromInt(4300), Type: models.TypeExpense, Category: "Food", Tags: []string{"restaurant"}, Date: now.AddDate(0, 0, -7)},
		{WalletID: mainWallet.ID, Amount: decimal.NewFromInt(15000), Type: models.TypeExpense, Category: "Rent", Date: now.AddDate(0, 0, -5)},
	}
	for _, in := range sample {
		if _, err := transactions.Create(ctx, user.ID, in); err != nil {
			log.Fatal().Err(err).Msg("seed transaction")
		}
	}

	budgets := service.NewBudgetService(store)
	if _, err := budgets.Create(ctx, user.ID, service.CreateBudgetInput{
		Category: "Food", Limit: decimal.NewFromInt(10000), Period: models.PeriodMonthly,
	}); err != nil {
		log.Fatal().Err(err).Msg("seed budget")
	}

	goals := service.NewGoalService(store)
	if _, err := goals.Create(ctx, user.ID, service.CreateGoalInput{
		Name:          "Vacation",
		TargetAmount:  decimal.NewFromInt(120000),
		CurrentAmount: decimal.NewFromInt(35000),
		Deadline:      now.AddDate(0, 8, 0),
		InterestRate:  decimal.NewFromInt(7),
	}); err != nil {
		log.Fatal().Err(err).Msg("seed goal")
	}

	investments := service.NewInvestmentService(store)
	if _, err := investments.Create(ctx, user.ID, service.CreateInvestmentInput{
		AssetName:     "S&P 500 ETF",
		Quantity:      decimal.NewFromInt(12),
		PurchasePrice: decimal.NewFromFloat(410.50),
		CurrentPrice:  decimal.NewFromFloat(455.20),
		PurchaseDate:  now.AddDate(-1, 0, 0),
	}); err != nil {
		log.Fatal().Err(err).Msg("seed investment")
	}

	articles := []models.Article{
		{Title: "Building Your First Budget", Category: "budgeting", Summary: "Start tracking where your money goes.", Content: "A budget is a plan for every ruble you earn..."},
		{Title: "Emergency Funds Explained", Category: "saving", Summary: "Why three months of expenses matters.", Content: "Before investing, build a cash buffer..."},
		{Title: "Index Funds for Beginners", Category: "investing", Summary: "Low-cost diversification in one purchase.", Content: "An index fund tracks a market index..."},
	}
	for i := range articles {
		if err := store.Articles().Create(ctx, &articles[i]); err != nil {
			log.Fatal().Err(err).Msg("seed article")
		}
	}

	log.Info().Str("email", demoEmail).Str("password", demoPassword).Msg("demo data seeded")
}
