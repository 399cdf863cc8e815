package service

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
	"github.com/slotwise/booking-api/redis"
)

// requireProvider pulls the authenticated provider out of the request
// context; admins pass as well.
func requireProvider(c *fiber.Ctx) (uint, string, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return 0, "", c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}
	role, ok := c.Locals("role").(string)
	if !ok {
		return 0, "", c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User role not found in context",
		})
	}
	if role != "provider" && role != "admin" {
		return 0, "", c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "Access denied. Only providers can access this endpoint.",
		})
	}
	return userID, role, nil
}

// GetProviderUpcomingAppointments returns upcoming appointments for the logged-in provider
func GetProviderUpcomingAppointments(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	limit := 10
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	now := time.Now()
	startDate := now
	endDate := now.AddDate(0, 0, 30)

	dateFilter := c.Query("filter", "month")
	switch dateFilter {
	case "today":
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
	case "tomorrow":
		tomorrow := now.AddDate(0, 0, 1)
		startDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 0, 0, 0, 0, now.Location())
		endDate = time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 23, 59, 59, 0, now.Location())
	case "week":
		endDate = now.AddDate(0, 0, 7)
	case "month":
		endDate = now.AddDate(0, 1, 0)
	}

	var appointments []models.Appointment
	query := db.DB.
		Preload("Service").
		Preload("Customer").
		Where("provider_id = ?", userID).
		Where("start_time >= ?", startDate).
		Where("start_time <= ?", endDate).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed, models.StatusExecuting}).
		Order("start_time asc").
		Limit(limit)

	if err := query.Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
		"filter":       dateFilter,
		"start_date":   startDate.Format("2006-01-02"),
		"end_date":     endDate.Format("2006-01-02"),
	})
}

// GetProviderAppointmentHistory returns past appointments for the logged-in provider
func GetProviderAppointmentHistory(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	page := 1
	limit := 10
	if c.Query("page") != "" {
		if parsedPage := c.QueryInt("page"); parsedPage > 0 {
			page = parsedPage
		}
	}
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}
	offset := (page - 1) * limit

	terminal := []models.AppointmentStatus{models.StatusCompleted, models.StatusCanceled, models.StatusNoShow}
	var statuses []models.AppointmentStatus
	status := c.Query("status")
	switch models.AppointmentStatus(status) {
	case models.StatusCompleted:
		statuses = []models.AppointmentStatus{models.StatusCompleted}
	case models.StatusCanceled:
		statuses = []models.AppointmentStatus{models.StatusCanceled}
	case models.StatusNoShow:
		statuses = []models.AppointmentStatus{models.StatusNoShow}
	default:
		statuses = terminal
	}

	now := time.Now()
	startDate := now.AddDate(0, -1, 0)
	endDate := now

	dateRange := c.Query("range", "month")
	switch dateRange {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "year":
		startDate = now.AddDate(-1, 0, 0)
	case "all":
		startDate = time.Time{}
	}

	var appointments []models.Appointment
	var total int64

	countQuery := db.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", userID).
		Where("status IN ?", statuses)
	if dateRange != "all" {
		countQuery = countQuery.Where("end_time >= ? AND end_time <= ?", startDate, endDate)
	}
	countQuery.Count(&total)

	query := db.DB.
		Preload("Service").
		Preload("Customer").
		Where("provider_id = ?", userID).
		Where("status IN ?", statuses)
	if dateRange != "all" {
		query = query.Where("end_time >= ? AND end_time <= ?", startDate, endDate)
	}

	if err := query.
		Order("end_time desc").
		Offset(offset).
		Limit(limit).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"total":        total,
		"page":         page,
		"limit":        limit,
		"pages":        (total + int64(limit) - 1) / int64(limit),
		"range":        dateRange,
		"status":       status,
	})
}

// UpdateAppointmentStatus moves an appointment through its state machine:
// confirm or cancel a pending booking, start (executing), complete, cancel,
// or mark a no-show on a confirmed one.
func UpdateAppointmentStatus(c *fiber.Ctx) error {
	userID, role, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	var updateData struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&updateData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	newStatus := models.AppointmentStatus(updateData.Status)
	switch newStatus {
	case models.StatusConfirmed, models.StatusExecuting, models.StatusCompleted,
		models.StatusCanceled, models.StatusNoShow:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid status. Must be 'confirmed', 'executing', 'completed', 'canceled', or 'no_show'.",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.ProviderID != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own appointments",
		})
	}

	if err := appointment.UpdateStatus(db.DB, newStatus); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	redis.InvalidateProviderSlots(fmt.Sprint(appointment.ProviderID))

	return c.JSON(fiber.Map{
		"message":     "Appointment status updated successfully",
		"appointment": appointment,
	})
}

// RescheduleAppointment reschedules an existing appointment
func RescheduleAppointment(c *fiber.Ctx) error {
	userID, role, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	appointmentID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid appointment ID",
		})
	}

	var rescheduleData struct {
		StartTime string `json:"start_time"`
		EndTime   string `json:"end_time"`
	}
	if err := c.BodyParser(&rescheduleData); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	startTime, err := time.Parse(time.RFC3339, rescheduleData.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid start time format. Please use RFC3339 format.",
		})
	}
	endTime, err := time.Parse(time.RFC3339, rescheduleData.EndTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid end time format. Please use RFC3339 format.",
		})
	}

	if endTime.Before(startTime) || endTime.Equal(startTime) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "End time must be after start time",
		})
	}
	if startTime.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot schedule an appointment in the past",
		})
	}

	var appointment models.Appointment
	if err := db.DB.First(&appointment, appointmentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}

	if appointment.ProviderID != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only reschedule your own appointments",
		})
	}

	if appointment.Status != models.StatusPending && appointment.Status != models.StatusConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only pending or confirmed appointments can be rescheduled",
		})
	}

	var conflictCount int64
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ? AND id != ?", appointment.ProviderID, appointmentID).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed, models.StatusExecuting}).
		Where("(start_time < ? AND end_time > ?) OR (start_time >= ? AND start_time < ?)",
			endTime, startTime, startTime, endTime).
		Count(&conflictCount)

	if conflictCount > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "The requested time slot conflicts with existing appointments",
		})
	}

	appointment.StartTime = startTime
	appointment.EndTime = endTime

	if err := db.DB.Save(&appointment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to reschedule appointment",
		})
	}

	redis.InvalidateProviderSlots(fmt.Sprint(appointment.ProviderID))

	return c.JSON(fiber.Map{
		"message":     "Appointment rescheduled successfully",
		"appointment": appointment,
	})
}
