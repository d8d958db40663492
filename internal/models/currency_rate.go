package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CurrencyRate stores one exchange rate between two currency codes.
// The (from, to) pair is unique; rows are upserted by the daily
// refresh and never deleted.
type CurrencyRate struct {
	ID           string          `gorm:"primaryKey;size:36" json:"id"`
	FromCurrency string          `gorm:"size:3;not null;uniqueIndex:idx_currency_pair" json:"from_currency"`
	ToCurrency   string          `gorm:"size:3;not null;uniqueIndex:idx_currency_pair" json:"to_currency"`
	Rate         decimal.Decimal `gorm:"type:decimal(15,6);not null" json:"rate"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (r *CurrencyRate) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
