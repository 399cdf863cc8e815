package consumer

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
	"github.com/slotwise/booking-api/redis"
	"github.com/slotwise/booking-api/utils"
	"gorm.io/gorm"
)

// GetMyAppointments returns the logged-in client's appointments
func GetMyAppointments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var appointments []models.Appointment
	if err := db.DB.Preload("Service").Preload("Provider").
		Where("customer_id = ?", userID).
		Order("start_time asc").
		Find(&appointments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Failed to fetch appointments",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointments)
}

// GetAppointment returns one appointment with its relations
func GetAppointment(c *fiber.Ctx) error {
	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.Preload("Service").Preload("Provider").Preload("Customer").First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Appointment not found",
			Error:   err.Error(),
		})
	}
	return c.JSON(appointment)
}

// CreateAppointment books a slot for the logged-in client. The request must
// land inside the provider's weekly schedule, clear of blocked times, and
// free of conflicting appointments; the conflict check runs again inside the
// transaction so two clients racing for the same slot cannot both win.
func CreateAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var appointment models.Appointment
	if err := c.BodyParser(&appointment); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}
	appointment.CustomerID = userID

	var service models.Service
	if err := db.DB.First(&service, appointment.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(utils.ErrorResponse{
			Message: "Service not found",
			Error:   err.Error(),
		})
	}
	duration := service.Duration

	appointment.StartTime = utils.ToBusinessTime(appointment.StartTime)
	if appointment.StartTime.Before(time.Now()) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Cannot book an appointment in the past",
		})
	}

	withinSchedule, err := utils.CheckWithinSchedule(appointment.ProviderID, appointment.StartTime, duration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error checking provider schedule",
			Error:   err.Error(),
		})
	}
	if !withinSchedule {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Appointment is outside working hours or during a blocked time",
		})
	}

	available, err := utils.CheckAvailability(appointment.ProviderID, appointment.StartTime, duration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error checking availability",
			Error:   err.Error(),
		})
	}
	if !available {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot not available",
		})
	}

	appointment.EndTime = appointment.StartTime.Add(duration)
	appointment.Status = models.StatusPending

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		// Re-check inside the transaction to close the race window.
		available, err := utils.CheckAvailability(appointment.ProviderID, appointment.StartTime, duration)
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("time slot not available")
		}

		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}

		if appointment.IsRecurring {
			recurrence := models.Recurrence{
				AppointmentID: appointment.ID,
				NextRun:       appointment.StartTime,
				Frequency:     appointment.RecurPattern.Frequency,
				EndAfter:      appointment.RecurPattern.EndAfter,
			}
			if err := tx.Create(&recurrence).Error; err != nil {
				return fmt.Errorf("failed to create recurrence: %v", err)
			}
			if err := tx.Model(&appointment).Update("recurrence_id", recurrence.ID).Error; err != nil {
				return fmt.Errorf("failed to update appointment with recurrence_id: %v", err)
			}
		}

		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Time slot not available or failed to create appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProviderSlots(fmt.Sprint(appointment.ProviderID))

	var customer, provider models.User
	if err := db.DB.First(&customer, appointment.CustomerID).Error; err == nil {
		if err := db.DB.First(&provider, appointment.ProviderID).Error; err == nil {
			sendBookingEmails(&appointment, &service, &customer, &provider)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(appointment)
}

// RescheduleAppointment moves one of the client's own bookings to a new
// start time, re-running the schedule and conflict checks.
func RescheduleAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var input struct {
		StartTime string `json:"start_time"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(utils.ErrorResponse{
			Message: "Failed to parse request body",
			Error:   err.Error(),
		})
	}

	startTime, err := time.Parse(time.RFC3339, input.StartTime)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid start time format. Please use RFC3339 format.",
		})
	}
	startTime = utils.ToBusinessTime(startTime)

	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.CustomerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only reschedule your own appointments",
		})
	}
	if appointment.Status != models.StatusPending && appointment.Status != models.StatusConfirmed {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only pending or confirmed appointments can be rescheduled",
		})
	}

	var service models.Service
	if err := db.DB.First(&service, appointment.ServiceID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	duration := service.Duration

	withinSchedule, err := utils.CheckWithinSchedule(appointment.ProviderID, startTime, duration)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(utils.ErrorResponse{
			Message: "Error checking provider schedule",
			Error:   err.Error(),
		})
	}
	if !withinSchedule {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Appointment is outside working hours or during a blocked time",
		})
	}

	err = db.DB.Transaction(func(tx *gorm.DB) error {
		available, err := utils.CheckAvailability(appointment.ProviderID, startTime, duration)
		if err != nil {
			return err
		}
		if !available {
			return fmt.Errorf("time slot not available")
		}

		appointment.StartTime = startTime
		appointment.EndTime = startTime.Add(duration)
		return tx.Save(&appointment).Error
	})
	if err != nil {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Message: "Failed to reschedule appointment",
			Error:   err.Error(),
		})
	}

	redis.InvalidateProviderSlots(fmt.Sprint(appointment.ProviderID))

	return c.JSON(fiber.Map{
		"message":     "Appointment rescheduled successfully",
		"appointment": appointment,
	})
}

// CancelAppointment cancels one of the client's own bookings
func CancelAppointment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var appointment models.Appointment
	if err := db.DB.First(&appointment, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Appointment not found",
		})
	}
	if appointment.CustomerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only cancel your own appointments",
		})
	}

	if err := appointment.UpdateStatus(db.DB, models.StatusCanceled); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	redis.InvalidateProviderSlots(fmt.Sprint(appointment.ProviderID))

	return c.JSON(fiber.Map{
		"message":     "Appointment canceled",
		"appointment": appointment,
	})
}

// sendBookingEmails notifies both parties about a new booking. Failures are
// logged by the mailer path but never fail the booking itself.
func sendBookingEmails(appointment *models.Appointment, service *models.Service, customer, provider *models.User) {
	customerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your appointment has been successfully created.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Thank you for choosing our service!</p>
		<p>Best regards,</p>
		<p>Your Appointment Team</p>
	`, customer.Name, service.Name, provider.Name,
		appointment.StartTime.Format("2006-01-02 15:04:05"),
		appointment.EndTime.Format("2006-01-02 15:04:05"),
		appointment.Status)
	if err := utils.SendEmail(customer.Email, "Appointment Confirmation", customerBody); err != nil {
		fmt.Println("Failed to send confirmation email to customer:", err)
	}

	providerBody := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have a new appointment scheduled.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Customer:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Best regards,</p>
		<p>Your Appointment Team</p>
	`, provider.Name, service.Name, customer.Name,
		appointment.StartTime.Format("2006-01-02 15:04:05"),
		appointment.EndTime.Format("2006-01-02 15:04:05"),
		appointment.Status)
	if err := utils.SendEmail(provider.Email, "New Appointment Scheduled", providerBody); err != nil {
		fmt.Println("Failed to send notification email to provider:", err)
	}
}
