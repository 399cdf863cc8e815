package cron

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
	"github.com/slotwise/booking-api/utils"
)

// StartCronJobs initializes and starts the cron scheduler for appointment
// reminders and the no-show sweep.
func StartCronJobs() {
	fmt.Println("Starting cron job scheduler...")
	c := cron.New()

	// Run every minute to check for appointments in the next hour
	if _, err := c.AddFunc("* * * * *", sendAppointmentReminders); err != nil {
		log.Fatalf("Failed to add reminder cron job: %v", err)
	}

	// Sweep overdue confirmed appointments every 15 minutes
	if _, err := c.AddFunc("*/15 * * * *", markOverdueNoShows); err != nil {
		log.Fatalf("Failed to add no-show cron job: %v", err)
	}

	c.Start()
	log.Println("Cron job scheduler started")
}

// sendAppointmentReminders checks for appointments and sends reminders
func sendAppointmentReminders() {
	var appointments []models.Appointment
	now := time.Now()
	// Look for appointments starting in the next hour
	startWindow := now.Add(55 * time.Minute)
	endWindow := now.Add(65 * time.Minute)

	err := db.DB.Preload("Customer").Preload("Service").Preload("Provider").
		Where("status = ? AND start_time BETWEEN ? AND ?", models.StatusConfirmed, startWindow, endWindow).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching appointments for reminders: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := sendReminderEmail(&appointment); err != nil {
			log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
			continue
		}
		log.Printf("Sent reminder for appointment %d to %s", appointment.ID, appointment.Customer.Email)
	}
}

// markOverdueNoShows flips confirmed appointments whose window ended more
// than an hour ago, without the provider ever starting them, to no_show.
func markOverdueNoShows() {
	cutoff := time.Now().Add(-1 * time.Hour)

	var appointments []models.Appointment
	err := db.DB.
		Where("status = ? AND end_time < ?", models.StatusConfirmed, cutoff).
		Find(&appointments).Error
	if err != nil {
		log.Printf("Error fetching overdue appointments: %v", err)
		return
	}

	for _, appointment := range appointments {
		if err := appointment.UpdateStatus(db.DB, models.StatusNoShow); err != nil {
			log.Printf("Failed to mark appointment %d as no-show: %v", appointment.ID, err)
			continue
		}
		log.Printf("Marked appointment %d as no-show", appointment.ID)
	}
}

// sendReminderEmail constructs and sends the reminder email
func sendReminderEmail(appointment *models.Appointment) error {
	subject := fmt.Sprintf("Reminder: Upcoming Appointment - %s", appointment.Service.Name)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>This is a reminder for your upcoming appointment scheduled in one hour.</p>
		<p><strong>Details:</strong></p>
		<ul>
			<li><strong>Service:</strong> %s</li>
			<li><strong>Provider:</strong> %s</li>
			<li><strong>Start Time:</strong> %s</li>
			<li><strong>End Time:</strong> %s</li>
			<li><strong>Status:</strong> %s</li>
		</ul>
		<p>Please arrive on time. If you need to reschedule or cancel, contact us as soon as possible.</p>
		<p>Best regards,</p>
		<p>Your Appointment Team</p>
	`, appointment.Customer.Name, appointment.Service.Name, appointment.Provider.Name,
		appointment.StartTime.Format("2006-01-02 15:04:05"),
		appointment.EndTime.Format("2006-01-02 15:04:05"),
		appointment.Status)

	return utils.SendEmail(appointment.Customer.Email, subject, body)
}
