package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/controllers/service"
	"github.com/slotwise/booking-api/middleware"
)

// SetupProviderRoutes configures the provider dashboard and management routes
func SetupProviderRoutes(app *fiber.App) {
	provider := app.Group("/provider", middleware.Protected())

	// Dashboard
	provider.Get("/dashboard/overview", service.GetDashboardOverview)
	provider.Get("/dashboard/recent", service.GetRecentAppointments)
	provider.Get("/dashboard/revenue", service.GetRevenueSummary)
	provider.Get("/dashboard/quick-actions", service.GetQuickActions)

	// Appointments
	provider.Get("/appointments/upcoming", service.GetProviderUpcomingAppointments)
	provider.Get("/appointments/history", service.GetProviderAppointmentHistory)
	provider.Patch("/appointments/:id/status", service.UpdateAppointmentStatus)
	provider.Patch("/appointments/:id/reschedule", service.RescheduleAppointment)

	// Services
	provider.Get("/services", service.GetMyServices)
	provider.Post("/services", service.CreateMyService)
	provider.Put("/services/:id", service.UpdateMyService)
	provider.Delete("/services/:id", service.DeleteMyService)

	// Profile and business details
	provider.Get("/profile", service.GetProviderProfile)
	provider.Patch("/profile", service.UpdateProviderProfile)
	provider.Get("/business", service.GetBusinessDetails)
	provider.Put("/business", service.UpdateBusinessDetails)
	provider.Post("/business/media", service.UploadBusinessMedia)

	// Settings and receptionists
	provider.Get("/settings", service.GetProviderSettings)
	provider.Put("/settings", service.UpdateProviderSettings)
	provider.Get("/receptionists", service.GetReceptionists)
	provider.Post("/receptionists", service.AddReceptionist)
	provider.Delete("/receptionists/:id", service.RemoveReceptionist)
}
