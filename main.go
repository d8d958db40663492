package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ausare-dev/personal-finance-manager/internal/client/exchangerate"
	"github.com/ausare-dev/personal-finance-manager/internal/config"
	"github.com/ausare-dev/personal-finance-manager/internal/database"
	"github.com/ausare-dev/personal-finance-manager/internal/logger"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"
	"github.com/ausare-dev/personal-finance-manager/internal/router"
	"github.com/ausare-dev/personal-finance-manager/internal/scheduler"
	"github.com/ausare-dev/personal-finance-manager/internal/service"
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

	store := repository.NewGormStore(db)

	timeout, err := time.ParseDuration(cfg.Exchange.Timeout)
	if err != nil {
		timeout = 10 * time.Second
	}
	rateClient := exchangerate.New(
		exchangerate.WithBaseURL(cfg.Exchange.BaseURL),
		exchangerate.WithTimeout(timeout),
		exchangerate.WithRateLimit(cfg.Exchange.RateLimit),
	)

	transactions := service.NewTransactionService(store)
	currencies := service.NewCurrencyService(store, rateClient, log)
	svcs := router.Services{
		Auth:         service.NewAuthService(store, cfg.Security.BcryptCost),
		Wallets:      service.NewWalletService(store),
		Transactions: transactions,
		Budgets:      service.NewBudgetService(store),
		Goals:        service.NewGoalService(store),
		Investments:  service.NewInvestmentService(store),
		Currencies:   currencies,
		Analytics:    service.NewAnalyticsService(store),
		Education:    service.NewEducationService(store),
		ImportExport: service.NewImportExportService(store, transactions),
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	refresher := scheduler.NewRateRefresher(
		currencies,
		time.Duration(cfg.Exchange.RefreshHours)*time.Hour,
		cfg.Exchange.RefreshOnBoot,
		log,
	)
	go refresher.Run(ctx)

	r := router.New(cfg, store, svcs)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.Info().Str("addr", addr).Msg("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
