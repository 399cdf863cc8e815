package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/controllers/consumer"
	"github.com/slotwise/booking-api/middleware"
)

// SetupConsumerRoutes configures all consumer related routes
func SetupConsumerRoutes(app *fiber.App) {
	consumerGroup := app.Group("/consumer")

	// Public browsing
	consumerGroup.Get("/providers", consumer.GetAllProviders)
	consumerGroup.Get("/providers/search", consumer.SearchProviders)
	consumerGroup.Get("/providers/featured", consumer.GetFeaturedProviders)
	consumerGroup.Get("/providers/:id", consumer.GetProviderDetails)
	consumerGroup.Get("/providers/:id/services", consumer.GetProviderServices)
	consumerGroup.Get("/providers/:id/reviews", consumer.GetProviderReviews)
	consumerGroup.Get("/providers/:id/reviews/stats", consumer.GetProviderReviewStats)

	// Profile
	consumerGroup.Get("/profile", middleware.Protected(), consumer.GetUserProfile)
	consumerGroup.Post("/profile", middleware.Protected(), consumer.CreateUserProfile)
	consumerGroup.Patch("/profile", middleware.Protected(), consumer.UpdateUserProfile)
	consumerGroup.Post("/profile/picture", middleware.Protected(), consumer.UpdateUserProfilePicture)
	consumerGroup.Delete("/profile", middleware.Protected(), consumer.DeleteUserProfile)

	// Bookings
	consumerGroup.Get("/appointments", middleware.Protected(), consumer.GetMyAppointments)
	consumerGroup.Get("/appointments/:id", middleware.Protected(), consumer.GetAppointment)
	consumerGroup.Post("/appointments", middleware.Protected(), consumer.CreateAppointment)
	consumerGroup.Patch("/appointments/:id/reschedule", middleware.Protected(), consumer.RescheduleAppointment)
	consumerGroup.Patch("/appointments/:id/cancel", middleware.Protected(), consumer.CancelAppointment)

	// Reviews
	consumerGroup.Post("/reviews", middleware.Protected(), consumer.CreateReview)
	consumerGroup.Patch("/reviews/:id", middleware.Protected(), consumer.UpdateReview)
	consumerGroup.Delete("/reviews/:id", middleware.Protected(), consumer.DeleteReview)
}
