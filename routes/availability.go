package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/controllers"
	"github.com/slotwise/booking-api/middleware"
)

// SetupAvailabilityRoutes configures weekly schedules, blocked times and the
// slot listing used by the booking screen.
func SetupAvailabilityRoutes(app *fiber.App) {
	availability := app.Group("/availability")

	// Public reads for the booking screen
	availability.Get("/provider/:id", controllers.GetProviderWeeklySchedule)
	availability.Get("/blocked-times/provider/:id", controllers.GetProviderBlockedTimes)
	availability.Get("/slots/:provider_id", controllers.GetDaySlots)

	// Providers manage their own schedule
	availability.Post("/weekly", middleware.Protected(), controllers.ReplaceWeeklySchedule)
	availability.Post("/blocked-times", middleware.Protected(), controllers.CreateBlockedTime)
	availability.Delete("/blocked-times/:id", middleware.Protected(), controllers.DeleteBlockedTime)
}
