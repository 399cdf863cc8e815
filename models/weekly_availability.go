package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// WeeklyAvailability is one weekday of a provider's recurring schedule.
// Exactly one row exists per provider per weekday; the whole weekly set is
// replaced in one save, never patched row by row. Date-specific exceptions
// (breaks, errands) live in BlockedTime instead.
type WeeklyAvailability struct {
	gorm.Model
	ProviderID      uint      `json:"provider_id" gorm:"index:idx_provider_day,unique"`
	Provider        User      `json:"provider" gorm:"foreignKey:ProviderID"`
	DayOfWeek       DayOfWeek `json:"day_of_week" gorm:"index:idx_provider_day,unique"`
	StartTime       string    `json:"start_time"` // Format "HH:MM" in 24h
	EndTime         string    `json:"end_time"`   // Format "HH:MM" in 24h
	IsAvailable     bool      `json:"is_available" gorm:"default:true"`
	IntervalMinutes int       `json:"interval_minutes" gorm:"default:30"` // slot granularity
}
