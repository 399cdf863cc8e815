package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlockedTime is a date-specific interval removed from a provider's
// availability, e.g. a lunch break or a personal errand. It overrides the
// weekly schedule for that date only and is created and deleted
// independently of it.
type BlockedTime struct {
	gorm.Model
	Ref        string `json:"ref" gorm:"type:uuid;uniqueIndex"` // public reference
	ProviderID uint   `json:"provider_id" gorm:"index"`
	Provider   User   `json:"provider" gorm:"foreignKey:ProviderID"`
	Date       string `json:"date"`       // Format "YYYY-MM-DD"
	StartTime  string `json:"start_time"` // Format "HH:MM" in 24h
	EndTime    string `json:"end_time"`   // Format "HH:MM" in 24h
	Reason     string `json:"reason"`
}

func (b *BlockedTime) BeforeCreate(tx *gorm.DB) error {
	if b.Ref == "" {
		b.Ref = uuid.New().String()
	}
	return nil
}

func (BlockedTime) TableName() string {
	return "blocked_times"
}
