package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget periods.
const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodYearly  = "yearly"
)

// ValidBudgetPeriod reports whether p is a known budget period.
func ValidBudgetPeriod(p string) bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// Budget is a spending limit for one category over a recurring period.
// Usage (used/remaining/percentage) is a derived view, never stored.
type Budget struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	UserID    string          `gorm:"index;size:36;not null" json:"user_id"`
	Category  string          `gorm:"size:64;not null" json:"category"`
	Limit     decimal.Decimal `gorm:"column:limit_amount;type:decimal(15,2);not null" json:"limit"`
	Period    string          `gorm:"size:16;not null;default:monthly" json:"period"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

func (b *Budget) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
