package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Investment is a holding of some asset. Cost basis, market value and
// profit/loss are derived at read time from the stored fields.
type Investment struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	UserID        string          `gorm:"index;size:36;not null" json:"user_id"`
	AssetName     string          `gorm:"size:128;not null" json:"asset_name"`
	Quantity      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"quantity"`
	PurchasePrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"purchase_price"`
	CurrentPrice  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"current_price"`
	PurchaseDate  time.Time       `gorm:"not null" json:"purchase_date"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (i *Investment) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
