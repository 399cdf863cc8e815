package consumer

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
)

// GetAllProviders returns all service providers
func GetAllProviders(c *fiber.Ctx) error {
	var providers []models.User

	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	offset := (page - 1) * limit

	if err := db.DB.Preload("Role").
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ?", "provider").
		Limit(limit).
		Offset(offset).
		Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch providers",
		})
	}

	var count int64
	db.DB.Model(&models.User{}).
		Joins("JOIN roles ON users.role_id = roles.id").
		Where("roles.name = ?", "provider").
		Count(&count)

	for i := range providers {
		providers[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"providers": providers,
		"total":     count,
		"page":      page,
		"limit":     limit,
		"pages":     (int(count) + limit - 1) / limit,
	})
}

// GetProviderDetails returns details for a specific provider, including the
// weekly schedule the booking screen renders.
func GetProviderDetails(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.User
	if err := db.DB.Preload("Role").
		Preload("WeeklyAvailabilities").
		First(&provider, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	if provider.Role.Name != "provider" {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "User is not a service provider",
		})
	}

	var businessDetails models.BusinessDetails
	db.DB.Where("provider_id = ?", id).First(&businessDetails)

	provider.Password = ""

	return c.JSON(fiber.Map{
		"provider":         provider,
		"business_details": businessDetails,
	})
}

// GetProviderServices returns services offered by a specific provider
func GetProviderServices(c *fiber.Ctx) error {
	id := c.Params("id")

	var provider models.User
	if err := db.DB.First(&provider, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	var services []models.Service
	if err := db.DB.Where("provider_id = ?", id).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch provider services",
		})
	}

	return c.JSON(services)
}

// SearchProviders searches for providers by name or business name
func SearchProviders(c *fiber.Ctx) error {
	query := c.Query("q")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Search query is required",
		})
	}

	var providers []models.User
	searchQuery := fmt.Sprintf("%%%s%%", query)

	if err := db.DB.Preload("Role").
		Joins("JOIN roles ON users.role_id = roles.id").
		Joins("LEFT JOIN business_details ON users.id = business_details.provider_id").
		Where("roles.name = ? AND (users.name LIKE ? OR business_details.business_name LIKE ?)",
			"provider", searchQuery, searchQuery).
		Group("users.id").
		Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to search providers",
		})
	}

	for i := range providers {
		providers[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"providers": providers,
		"count":     len(providers),
	})
}

// GetFeaturedProviders returns top-rated providers for the landing screen
func GetFeaturedProviders(c *fiber.Ctx) error {
	var providers []models.User

	if err := db.DB.Preload("Role").
		Joins("JOIN roles ON users.role_id = roles.id").
		Joins("LEFT JOIN reviews ON users.id = reviews.provider_id").
		Where("roles.name = ?", "provider").
		Group("users.id").
		Order("AVG(COALESCE(reviews.rating, 0)) DESC").
		Limit(10).
		Find(&providers).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch featured providers",
		})
	}

	for i := range providers {
		providers[i].Password = ""
	}

	return c.JSON(fiber.Map{
		"providers": providers,
	})
}
