package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ValidTransactionType reports whether t is a known transaction type.
func ValidTransactionType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}

// Transaction is a single income or expense against a wallet.
// Amount is always positive; Type determines the sign of the
// wallet balance effect.
type Transaction struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	UserID      string          `gorm:"index;size:36;not null" json:"user_id"`
	WalletID    string          `gorm:"index;size:36;not null" json:"wallet_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Type        string          `gorm:"size:16;index;not null" json:"type"` // income / expense
	Category    string          `gorm:"size:64;index;not null" json:"category"`
	Tags        []string        `gorm:"serializer:json" json:"tags"`
	Description string          `gorm:"type:text" json:"description"`
	Date        time.Time       `gorm:"index;not null" json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
