package consumer

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
)

// CreateReview adds a new review for a provider
func CreateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	review := new(models.Review)
	if err := c.BodyParser(review); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	review.CustomerID = userID

	var provider models.User
	if err := db.DB.Preload("Role").First(&provider, review.ProviderID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}
	if provider.Role.Name != "provider" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "User is not a service provider",
		})
	}

	exists, err := review.HasExistingReview(db.DB)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check existing reviews",
		})
	}
	if exists {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "You have already reviewed this provider for this service",
		})
	}

	// Reviews backed by a completed appointment are marked verified.
	if review.AppointmentID != nil {
		var appointment models.Appointment
		if err := db.DB.First(&appointment, *review.AppointmentID).Error; err == nil {
			if appointment.CustomerID == userID && appointment.Status == models.StatusCompleted {
				review.IsVerified = true
			}
		}
	}

	if err := db.DB.Create(review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create review",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetProviderReviews retrieves all reviews for a specific provider
func GetProviderReviews(c *fiber.Ctx) error {
	id := c.Params("id")

	var reviews []models.Review
	if err := db.DB.Preload("Customer").Preload("Service").
		Where("provider_id = ?", id).
		Order("created_at desc").
		Find(&reviews).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch reviews",
		})
	}

	for i := range reviews {
		reviews[i].Customer.Password = ""
		if reviews[i].IsAnonymous {
			reviews[i].Customer.Name = "Anonymous"
			reviews[i].Customer.Email = ""
		}
	}

	return c.JSON(fiber.Map{
		"reviews": reviews,
		"count":   len(reviews),
	})
}

// UpdateReview updates an existing review
func UpdateReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}
	if review.CustomerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own reviews",
		})
	}

	var input struct {
		Rating      *float64 `json:"rating"`
		Comment     *string  `json:"comment"`
		IsAnonymous *bool    `json:"is_anonymous"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if input.Rating != nil {
		review.Rating = *input.Rating
		if review.Rating < 1.0 {
			review.Rating = 1.0
		} else if review.Rating > 5.0 {
			review.Rating = 5.0
		}
	}
	if input.Comment != nil {
		review.Comment = *input.Comment
	}
	if input.IsAnonymous != nil {
		review.IsAnonymous = *input.IsAnonymous
	}

	if err := db.DB.Save(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update review",
		})
	}
	return c.JSON(review)
}

// DeleteReview removes a review
func DeleteReview(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	id := c.Params("id")
	var review models.Review
	if err := db.DB.First(&review, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Review not found",
		})
	}
	if review.CustomerID != userID {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only delete your own reviews",
		})
	}

	if err := db.DB.Delete(&review).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete review",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetProviderReviewStats retrieves review statistics for a provider
func GetProviderReviewStats(c *fiber.Ctx) error {
	id := c.Params("id")

	var stats struct {
		AverageRating float64 `json:"average_rating"`
		TotalReviews  int64   `json:"total_reviews"`
		VerifiedCount int64   `json:"verified_count"`
	}

	db.DB.Model(&models.Review{}).
		Where("provider_id = ?", id).
		Count(&stats.TotalReviews)
	db.DB.Model(&models.Review{}).
		Where("provider_id = ? AND is_verified = ?", id, true).
		Count(&stats.VerifiedCount)
	db.DB.Model(&models.Review{}).
		Where("provider_id = ?", id).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&stats.AverageRating)

	// Rating distribution, 1 through 5
	distribution := map[string]int64{}
	for rating := 1; rating <= 5; rating++ {
		var count int64
		db.DB.Model(&models.Review{}).
			Where("provider_id = ? AND rating >= ? AND rating < ?", id, rating, rating+1).
			Count(&count)
		distribution[fmt.Sprint(rating)] = count
	}

	return c.JSON(fiber.Map{
		"stats":        stats,
		"distribution": distribution,
	})
}
