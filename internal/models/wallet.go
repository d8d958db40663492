package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Wallet is a user's money account in a single currency.
// Balance is only ever changed through the transaction workflow:
// creating, updating or deleting a transaction adjusts it inside
// the same database transaction.
type Wallet struct {
	ID        string          `gorm:"primaryKey;size:36" json:"id"`
	UserID    string          `gorm:"index;size:36;not null" json:"user_id"`
	Name      string          `gorm:"size:64;not null" json:"name"`
	Currency  string          `gorm:"size:3;not null;default:RUB" json:"currency"`
	Balance   decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`

	Transactions []Transaction `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}
