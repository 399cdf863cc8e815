package utils

import (
	"fmt"
	"time"

	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
)

// CheckAvailability checks if a provider is free for a given time slot.
// Conflicting rows are locked so a concurrent booking of the same slot
// serializes on the database.
func CheckAvailability(providerID uint, startTime time.Time, duration time.Duration) (bool, error) {
	endTime := startTime.Add(duration)

	var existingAppointment models.Appointment
	err := db.DB.Raw(`
		SELECT *
		FROM appointments
		WHERE provider_id = ? AND status != ? AND (
			(start_time < ? AND end_time > ?) OR
			(start_time >= ? AND start_time < ?)
		) FOR UPDATE
		LIMIT 1
	`, providerID, models.StatusCanceled, endTime, startTime, startTime, endTime).
		Scan(&existingAppointment).Error

	if err == nil && existingAppointment.ID != 0 {
		return false, nil
	}

	return true, nil
}

// CheckWithinSchedule verifies that a requested booking falls inside the
// provider's weekly availability for that weekday and does not touch a
// blocked time on that date. This guards the write path; the read-side slot
// grid is produced by the availability package.
func CheckWithinSchedule(providerID uint, start time.Time, duration time.Duration) (bool, error) {
	var rule models.WeeklyAvailability
	err := db.DB.Where("provider_id = ? AND day_of_week = ?",
		providerID, models.DayOfWeek(start.Weekday())).First(&rule).Error
	if err != nil {
		// No rule for the weekday means the provider is closed that day.
		return false, nil
	}
	if !rule.IsAvailable {
		return false, nil
	}

	layout := "15:04"
	dayStart, err := time.Parse(layout, rule.StartTime)
	if err != nil {
		return false, fmt.Errorf("invalid schedule start time format")
	}
	dayEnd, err := time.Parse(layout, rule.EndTime)
	if err != nil {
		return false, fmt.Errorf("invalid schedule end time format")
	}

	startMinute := start.Hour()*60 + start.Minute()
	endMinute := startMinute + int(duration.Minutes())
	openMinute := dayStart.Hour()*60 + dayStart.Minute()
	closeMinute := dayEnd.Hour()*60 + dayEnd.Minute()

	if startMinute < openMinute || endMinute > closeMinute {
		return false, nil
	}

	// Blocked times override the weekly schedule for their date.
	var blocks []models.BlockedTime
	date := start.Format("2006-01-02")
	if err := db.DB.Where("provider_id = ? AND date = ?", providerID, date).Find(&blocks).Error; err != nil {
		return false, fmt.Errorf("failed to load blocked times")
	}
	for _, b := range blocks {
		bs, err1 := time.Parse(layout, b.StartTime)
		be, err2 := time.Parse(layout, b.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		blockStart := bs.Hour()*60 + bs.Minute()
		blockEnd := be.Hour()*60 + be.Minute()
		if startMinute < blockEnd && blockStart < endMinute {
			return false, nil
		}
	}

	return true, nil
}
