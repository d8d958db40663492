package database

import (
	"fmt"

	"github.com/ausare-dev/personal-finance-manager/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Transaction{},
		&models.Budget{},
		&models.Goal{},
		&models.Investment{},
		&models.CurrencyRate{},
		&models.Article{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
