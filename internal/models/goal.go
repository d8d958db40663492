package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Goal is a savings goal with an optional annual interest rate used
// to project growth of the current amount until the deadline.
type Goal struct {
	ID            string          `gorm:"primaryKey;size:36" json:"id"`
	UserID        string          `gorm:"index;size:36;not null" json:"user_id"`
	Name          string          `gorm:"size:128;not null" json:"name"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"current_amount"`
	Deadline      time.Time       `gorm:"not null" json:"deadline"`
	InterestRate  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"interest_rate"` // % per year
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}
