package controllers

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/availability"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
	"github.com/slotwise/booking-api/redis"
	"github.com/slotwise/booking-api/utils"
	"gorm.io/gorm"
)

var validate = validator.New()

// slotCacheTTL bounds how stale a cached day grid can get between the
// explicit invalidations on schedule and booking writes.
const slotCacheTTL = 60 * time.Second

// WeeklyRuleInput is one weekday of a wholesale schedule replace.
type WeeklyRuleInput struct {
	DayOfWeek       int    `json:"day_of_week" validate:"min=0,max=6"`
	StartTime       string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string `json:"end_time" validate:"required,datetime=15:04"`
	IsAvailable     bool   `json:"is_available"`
	IntervalMinutes int    `json:"interval_minutes" validate:"required,min=5,max=480"`
}

// BlockedTimeInput creates one date-specific unavailability window.
type BlockedTimeInput struct {
	Date      string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	Reason    string `json:"reason" validate:"max=500"`
}

// GetProviderWeeklySchedule returns all weekly availability rules for a provider
func GetProviderWeeklySchedule(c *fiber.Ctx) error {
	id := c.Params("id")
	var rules []models.WeeklyAvailability
	if err := db.DB.Where("provider_id = ?", id).Order("day_of_week asc").Find(&rules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch weekly schedule",
			Error:   err.Error(),
		})
	}
	return c.JSON(rules)
}

// ReplaceWeeklySchedule replaces the caller's entire weekly schedule in one
// transaction. Rules are never patched individually; the client always saves
// the full week.
func ReplaceWeeklySchedule(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input []WeeklyRuleInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if len(input) > 7 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "A weekly schedule has at most 7 entries",
		})
	}

	seen := map[int]bool{}
	for i, rule := range input {
		if err := validate.Struct(rule); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
				Message: fmt.Sprintf("Invalid rule at index %d", i),
				Error:   err.Error(),
			})
		}
		if seen[rule.DayOfWeek] {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Duplicate rule for day_of_week %d", rule.DayOfWeek),
			})
		}
		seen[rule.DayOfWeek] = true
		if rule.IsAvailable && rule.StartTime >= rule.EndTime {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("start_time must precede end_time for day_of_week %d", rule.DayOfWeek),
			})
		}
	}

	rules := make([]models.WeeklyAvailability, 0, len(input))
	for _, in := range input {
		rules = append(rules, models.WeeklyAvailability{
			ProviderID:      userID,
			DayOfWeek:       models.DayOfWeek(in.DayOfWeek),
			StartTime:       in.StartTime,
			EndTime:         in.EndTime,
			IsAvailable:     in.IsAvailable,
			IntervalMinutes: in.IntervalMinutes,
		})
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		return replaceWeeklyRules(tx, userID, rules)
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to save weekly schedule",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProviderSlots(fmt.Sprint(userID))

	return c.JSON(fiber.Map{
		"message":  "Weekly schedule saved",
		"schedule": rules,
	})
}

// replaceWeeklyRules swaps a provider's entire weekly rule set inside one
// transaction. The old rows are removed for real, not soft-deleted:
// idx_provider_day still covers soft-deleted rows, so re-inserting a rule
// for the same weekday would hit a duplicate-key error.
func replaceWeeklyRules(tx *gorm.DB, providerID uint, rules []models.WeeklyAvailability) error {
	if err := tx.Unscoped().Where("provider_id = ?", providerID).Delete(&models.WeeklyAvailability{}).Error; err != nil {
		return err
	}
	if len(rules) == 0 {
		return nil
	}
	return tx.Create(&rules).Error
}

// GetProviderBlockedTimes returns all blocked intervals for a provider
func GetProviderBlockedTimes(c *fiber.Ctx) error {
	id := c.Params("id")
	query := db.DB.Where("provider_id = ?", id)
	if date := c.Query("date"); date != "" {
		query = query.Where("date = ?", date)
	}

	var blocked []models.BlockedTime
	if err := query.Order("date asc, start_time asc").Find(&blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch blocked times",
			Error:   err.Error(),
		})
	}
	return c.JSON(blocked)
}

// CreateBlockedTime blocks a time range on a specific date for the caller
func CreateBlockedTime(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var input BlockedTimeInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Invalid blocked time",
			Error:   err.Error(),
		})
	}
	if input.StartTime >= input.EndTime {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "start_time must precede end_time",
		})
	}

	blocked := models.BlockedTime{
		ProviderID: userID,
		Date:       input.Date,
		StartTime:  input.StartTime,
		EndTime:    input.EndTime,
		Reason:     input.Reason,
	}
	if err := db.DB.Create(&blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to create blocked time",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProviderSlots(fmt.Sprint(userID))

	return c.Status(fiber.StatusCreated).JSON(blocked)
}

// DeleteBlockedTime removes one of the caller's blocked intervals
func DeleteBlockedTime(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var blocked models.BlockedTime
	if err := db.DB.Where("id = ? AND provider_id = ?", id, userID).First(&blocked).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Blocked time not found",
		})
	}
	if err := db.DB.Delete(&blocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to delete blocked time",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProviderSlots(fmt.Sprint(userID))

	return c.SendStatus(fiber.StatusNoContent)
}

// GetDaySlots returns the slot grid for a provider on one date: every slot
// of the weekly window, each flagged available or not, occupied slots
// carrying the appointment's status. Computed by the availability resolver
// over the provider's schedule, blocked times and appointments.
func GetDaySlots(c *fiber.Ctx) error {
	providerID := c.Params("provider_id")
	dateStr := c.Query("date")

	loc := utils.BusinessLocation()
	date, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid date format, use YYYY-MM-DD",
		})
	}

	cacheKey := redis.SlotCacheKey(providerID, dateStr)
	if payload, ok := redis.GetCachedSlots(cacheKey); ok {
		c.Set("Content-Type", "application/json")
		return c.Send(payload)
	}

	var dbRules []models.WeeklyAvailability
	if err := db.DB.Where("provider_id = ?", providerID).Find(&dbRules).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch weekly schedule",
		})
	}

	var dbBlocked []models.BlockedTime
	if err := db.DB.Where("provider_id = ? AND date = ?", providerID, dateStr).Find(&dbBlocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch blocked times",
		})
	}

	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	endOfDay := startOfDay.Add(24 * time.Hour)
	var dbAppointments []models.Appointment
	if err := db.DB.Where("provider_id = ? AND start_time >= ? AND start_time < ?",
		providerID, startOfDay, endOfDay).Order("start_time asc").Find(&dbAppointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch appointments",
		})
	}

	rules := make([]availability.WeeklyRule, 0, len(dbRules))
	for _, r := range dbRules {
		rules = append(rules, availability.WeeklyRule{
			DayOfWeek:       int(r.DayOfWeek),
			StartTime:       r.StartTime,
			EndTime:         r.EndTime,
			IsAvailable:     r.IsAvailable,
			IntervalMinutes: r.IntervalMinutes,
		})
	}
	blocked := make([]availability.BlockedInterval, 0, len(dbBlocked))
	for _, b := range dbBlocked {
		blocked = append(blocked, availability.BlockedInterval{
			Date:      b.Date,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Reason:    b.Reason,
		})
	}
	appointments := make([]availability.AppointmentWindow, 0, len(dbAppointments))
	for _, a := range dbAppointments {
		appointments = append(appointments, availability.AppointmentWindow{
			Date:      a.StartTime.In(loc).Format("2006-01-02"),
			StartTime: a.StartTime.In(loc).Format("15:04"),
			EndTime:   a.EndTime.In(loc).Format("15:04"),
			Status:    string(a.Status),
		})
	}

	slots := availability.ResolveDay(date, rules, blocked, appointments)
	if slots == nil {
		slots = []availability.TimeSlot{}
	}

	response := fiber.Map{
		"provider_id": providerID,
		"date":        dateStr,
		"slots":       slots,
	}
	if payload, err := json.Marshal(response); err == nil {
		redis.CacheSlots(cacheKey, payload, slotCacheTTL)
	}

	return c.JSON(response)
}
