package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusExecuting AppointmentStatus = "executing"
	StatusCompleted AppointmentStatus = "completed"
	StatusCanceled  AppointmentStatus = "canceled"
	StatusNoShow    AppointmentStatus = "no_show"
)

type Recurrence struct {
	gorm.Model
	AppointmentID uint      `json:"appointment_id"`
	NextRun       time.Time `json:"next_run"`
	Frequency     string    `json:"frequency"` // "daily", "weekly", "monthly"
	EndAfter      uint      `json:"end_after"` // Number of occurrences
}

type Appointment struct {
	gorm.Model
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	StartTime    time.Time         `json:"start_time"`
	EndTime      time.Time         `json:"end_time"`
	Status       AppointmentStatus `json:"status"`
	IsRecurring  bool              `json:"is_recurring"`
	RecurrenceID uint              `json:"recur_pattern_id"`
	RecurPattern Recurrence        `json:"recur_pattern"`
	ServiceID    uint              `json:"service_id"`
	Service      Service           `json:"service" gorm:"foreignKey:ServiceID"`
	ProviderID   uint              `json:"provider_id"`
	Provider     User              `json:"provider" gorm:"foreignKey:ProviderID"`
	CustomerID   uint              `json:"customer_id"`
	Customer     User              `json:"customer" gorm:"foreignKey:CustomerID"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// allowedTransitions is the appointment state machine. Completed, canceled
// and no_show are terminal.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCanceled},
	StatusConfirmed: {StatusExecuting, StatusCompleted, StatusCanceled, StatusNoShow},
	StatusExecuting: {StatusCompleted, StatusCanceled},
}

// CanTransition reports whether an appointment may move from one status to
// another.
func CanTransition(from, to AppointmentStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// UpdateStatus moves the appointment through the state machine and persists
// it. Completing a recurring appointment schedules the next occurrence.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	if !CanTransition(a.Status, newStatus) {
		return fmt.Errorf("invalid transition from %s to %s", a.Status, newStatus)
	}

	a.Status = newStatus
	if err := tx.Save(a).Error; err != nil {
		return err
	}

	if newStatus == StatusCompleted && a.IsRecurring {
		if err := tx.Preload("RecurPattern").First(a, a.ID).Error; err != nil {
			return fmt.Errorf("failed to load recurrence pattern: %v", err)
		}
		return a.ScheduleNextRecurrence(tx)
	}

	return nil
}

// ScheduleNextRecurrence creates the follow-up appointment for a recurring
// booking, decrementing the remaining occurrence budget.
func (a *Appointment) ScheduleNextRecurrence(tx *gorm.DB) error {
	if a.RecurPattern.ID == 0 {
		return fmt.Errorf("no recurrence pattern found for appointment")
	}

	var nextTime time.Time
	switch a.RecurPattern.Frequency {
	case "daily":
		nextTime = a.StartTime.AddDate(0, 0, 1)
	case "weekly":
		nextTime = a.StartTime.AddDate(0, 0, 7)
	case "monthly":
		nextTime = a.StartTime.AddDate(0, 1, 0)
	default:
		return fmt.Errorf("invalid recurrence frequency: %s", a.RecurPattern.Frequency)
	}

	if a.RecurPattern.EndAfter > 0 {
		a.RecurPattern.EndAfter--
		if a.RecurPattern.EndAfter == 0 {
			return nil // occurrences exhausted
		}
		if err := tx.Save(&a.RecurPattern).Error; err != nil {
			return fmt.Errorf("failed to update recurrence: %v", err)
		}
	}

	next := Appointment{
		Title:        a.Title,
		Description:  a.Description,
		StartTime:    nextTime,
		EndTime:      nextTime.Add(a.EndTime.Sub(a.StartTime)),
		Status:       StatusPending,
		IsRecurring:  true,
		RecurrenceID: a.RecurPattern.ID,
		ServiceID:    a.ServiceID,
		ProviderID:   a.ProviderID,
		CustomerID:   a.CustomerID,
	}
	if err := tx.Create(&next).Error; err != nil {
		return fmt.Errorf("failed to create next recurrence: %v", err)
	}

	return nil
}
