package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Article is an education article. Articles are global, not owned by
// any user; ReadCount only ever grows.
type Article struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Category  string    `gorm:"size:64;index;not null" json:"category"`
	Summary   string    `gorm:"size:512" json:"summary"`
	ReadCount int       `gorm:"not null;default:0" json:"read_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Article) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
