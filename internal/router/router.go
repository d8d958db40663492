// Package router wires the HTTP routes.
package router

import (
	"net/http"

	"github.com/ausare-dev/personal-finance-manager/internal/config"
	"github.com/ausare-dev/personal-finance-manager/internal/handler"
	"github.com/ausare-dev/personal-finance-manager/internal/middleware"
	"github.com/ausare-dev/personal-finance-manager/internal/repository"
	"github.com/ausare-dev/personal-finance-manager/internal/service"

	"github.com/gin-gonic/gin"
)

// Services bundles everything the routes need.
type Services struct {
	Auth         *service.AuthService
	Wallets      *service.WalletService
	Transactions *service.TransactionService
	Budgets      *service.BudgetService
	Goals        *service.GoalService
	Investments  *service.InvestmentService
	Currencies   *service.CurrencyService
	Analytics    *service.AnalyticsService
	Education    *service.EducationService
	ImportExport *service.ImportExportService
}

func New(cfg *config.Config, store repository.Store, svcs Services) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authH := handler.NewAuthHandler(svcs.Auth, cfg.JWT)
	walletH := handler.NewWalletHandler(svcs.Wallets)
	txH := handler.NewTransactionHandler(svcs.Transactions, cfg.App.PageSize)
	budgetH := handler.NewBudgetHandler(svcs.Budgets)
	goalH := handler.NewGoalHandler(svcs.Goals)
	invH := handler.NewInvestmentHandler(svcs.Investments)
	curH := handler.NewCurrencyHandler(svcs.Currencies)
	anH := handler.NewAnalyticsHandler(svcs.Analytics)
	eduH := handler.NewEducationHandler(svcs.Education)
	ioH := handler.NewImportExportHandler(svcs.ImportExport)

	api := r.Group("/api")

	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)

	authed := api.Group("")
	authed.Use(middleware.Auth(cfg.JWT.Secret, store))
	{
		authed.GET("/me", authH.Me)

		authed.POST("/wallets", walletH.Create)
		authed.GET("/wallets", walletH.List)
		authed.GET("/wallets/:id", walletH.Get)
		authed.PUT("/wallets/:id", walletH.Update)
		authed.DELETE("/wallets/:id", walletH.Delete)

		authed.POST("/transactions", txH.Create)
		authed.GET("/transactions", txH.List)
		authed.GET("/transactions/:id", txH.Get)
		authed.PUT("/transactions/:id", txH.Update)
		authed.DELETE("/transactions/:id", txH.Delete)

		authed.POST("/budgets", budgetH.Create)
		authed.GET("/budgets", budgetH.List)
		authed.GET("/budgets/:id", budgetH.Get)
		authed.PUT("/budgets/:id", budgetH.Update)
		authed.DELETE("/budgets/:id", budgetH.Delete)

		authed.POST("/goals", goalH.Create)
		authed.GET("/goals", goalH.List)
		authed.GET("/goals/:id", goalH.Get)
		authed.PUT("/goals/:id", goalH.Update)
		authed.DELETE("/goals/:id", goalH.Delete)

		authed.POST("/investments", invH.Create)
		authed.GET("/investments", invH.List)
		authed.GET("/investments/portfolio", invH.Portfolio)
		authed.GET("/investments/:id", invH.Get)
		authed.PUT("/investments/:id", invH.Update)
		authed.DELETE("/investments/:id", invH.Delete)

		authed.GET("/currencies/rates", curH.Rates)
		authed.GET("/currencies/rates/:base", curH.RatesByBase)
		authed.GET("/currencies/rate", curH.Rate)
		authed.POST("/currencies/convert", curH.Convert)
		authed.POST("/currencies/refresh", curH.Refresh)

		authed.GET("/analytics/overview", anH.Overview)
		authed.GET("/analytics/income-expense", anH.IncomeExpense)
		authed.GET("/analytics/by-category", anH.ByCategory)
		authed.GET("/analytics/trends", anH.Trends)

		authed.POST("/import/csv", ioH.ImportCSV)
		authed.POST("/import/excel", ioH.ImportExcel)
		authed.GET("/export/csv", ioH.ExportCSV)
		authed.GET("/export/excel", ioH.ExportExcel)

		authed.GET("/education/articles", eduH.Articles)
		authed.GET("/education/articles/:id", eduH.Article)
		authed.GET("/education/categories", eduH.Categories)
	}

	return r
}
