package service

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
)

// GetDashboardOverview returns summary statistics for the provider dashboard
func GetDashboardOverview(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	statusCounts := fiber.Map{}
	for _, status := range []models.AppointmentStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusExecuting,
		models.StatusCompleted, models.StatusCanceled, models.StatusNoShow,
	} {
		var count int64
		db.DB.Model(&models.Appointment{}).
			Where("provider_id = ? AND status = ?", userID, status).
			Count(&count)
		statusCounts[string(status)] = count
	}

	var todayCount int64
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", userID).
		Where("start_time >= ? AND start_time < ?", todayStart, todayEnd).
		Where("status NOT IN ?", []models.AppointmentStatus{models.StatusCanceled}).
		Count(&todayCount)

	var monthlyRevenue float64
	db.DB.Model(&models.Appointment{}).
		Joins("JOIN services ON appointments.service_id = services.id").
		Where("appointments.provider_id = ?", userID).
		Where("appointments.status = ?", models.StatusCompleted).
		Where("appointments.end_time >= ?", monthStart).
		Select("COALESCE(SUM(services.cost), 0)").
		Scan(&monthlyRevenue)

	var serviceCount int64
	db.DB.Model(&models.Service{}).
		Where("provider_id = ?", userID).
		Count(&serviceCount)

	var avgRating float64
	db.DB.Model(&models.Review{}).
		Where("provider_id = ?", userID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating)

	return c.JSON(fiber.Map{
		"status_counts":      statusCounts,
		"today_appointments": todayCount,
		"monthly_revenue":    monthlyRevenue,
		"service_count":      serviceCount,
		"average_rating":     avgRating,
	})
}

// GetRecentAppointments returns the most recently created appointments
func GetRecentAppointments(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	limit := 5
	if c.Query("limit") != "" {
		if parsedLimit := c.QueryInt("limit"); parsedLimit > 0 {
			limit = parsedLimit
		}
	}

	var appointments []models.Appointment
	if err := db.DB.
		Preload("Service").
		Preload("Customer").
		Where("provider_id = ?", userID).
		Order("created_at desc").
		Limit(limit).
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"appointments": appointments,
		"count":        len(appointments),
	})
}

// GetRevenueSummary returns completed-appointment revenue bucketed by period
func GetRevenueSummary(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	now := time.Now()
	period := c.Query("period", "month")

	var startDate time.Time
	switch period {
	case "week":
		startDate = now.AddDate(0, 0, -7)
	case "month":
		startDate = now.AddDate(0, -1, 0)
	case "quarter":
		startDate = now.AddDate(0, -3, 0)
	case "year":
		startDate = now.AddDate(-1, 0, 0)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid period. Must be 'week', 'month', 'quarter', or 'year'.",
		})
	}

	var total float64
	db.DB.Model(&models.Appointment{}).
		Joins("JOIN services ON appointments.service_id = services.id").
		Where("appointments.provider_id = ?", userID).
		Where("appointments.status = ?", models.StatusCompleted).
		Where("appointments.end_time >= ?", startDate).
		Select("COALESCE(SUM(services.cost), 0)").
		Scan(&total)

	var completedCount int64
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", userID).
		Where("status = ?", models.StatusCompleted).
		Where("end_time >= ?", startDate).
		Count(&completedCount)

	type serviceRevenue struct {
		ServiceID   uint    `json:"service_id"`
		ServiceName string  `json:"service_name"`
		Revenue     float64 `json:"revenue"`
		Count       int64   `json:"count"`
	}
	var byService []serviceRevenue
	db.DB.Model(&models.Appointment{}).
		Joins("JOIN services ON appointments.service_id = services.id").
		Where("appointments.provider_id = ?", userID).
		Where("appointments.status = ?", models.StatusCompleted).
		Where("appointments.end_time >= ?", startDate).
		Select("services.id as service_id, services.name as service_name, COALESCE(SUM(services.cost), 0) as revenue, COUNT(appointments.id) as count").
		Group("services.id, services.name").
		Order("revenue desc").
		Scan(&byService)

	return c.JSON(fiber.Map{
		"period":          period,
		"start_date":      startDate.Format("2006-01-02"),
		"total_revenue":   total,
		"completed_count": completedCount,
		"by_service":      byService,
	})
}

// GetQuickActions returns counts the dashboard surfaces as action items
func GetQuickActions(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	now := time.Now()

	var pendingCount int64
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ? AND status = ?", userID, models.StatusPending).
		Count(&pendingCount)

	// Confirmed appointments whose window has passed still need a
	// completed or no_show decision.
	var awaitingOutcome int64
	db.DB.Model(&models.Appointment{}).
		Where("provider_id = ?", userID).
		Where("status IN ?", []models.AppointmentStatus{models.StatusConfirmed, models.StatusExecuting}).
		Where("end_time < ?", now).
		Count(&awaitingOutcome)

	var nextAppointment models.Appointment
	hasNext := db.DB.
		Preload("Service").
		Preload("Customer").
		Where("provider_id = ?", userID).
		Where("start_time > ?", now).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed}).
		Order("start_time asc").
		First(&nextAppointment).Error == nil

	response := fiber.Map{
		"pending_approvals": pendingCount,
		"awaiting_outcome":  awaitingOutcome,
	}
	if hasNext {
		response["next_appointment"] = nextAppointment
	}

	return c.JSON(response)
}
