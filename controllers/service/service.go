package service

import (
	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
)

// GetMyServices lists the logged-in provider's services
func GetMyServices(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	var services []models.Service
	if err := db.DB.Where("provider_id = ?", userID).Find(&services).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch services",
		})
	}
	return c.JSON(services)
}

// serviceInput is the wire format for creating or updating a service.
// Durations arrive as {hours, minutes} objects.
type serviceInput struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Duration    models.Duration `json:"duration"`
	BufferTime  models.Duration `json:"buffer_time"`
	Cost        float64         `json:"cost"`
	Discount    float64         `json:"discount"`
}

// CreateMyService creates a new service owned by the logged-in provider
func CreateMyService(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	var input serviceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if input.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Service name is required",
		})
	}
	if input.Duration.ToDuration() <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Service duration must be positive",
		})
	}

	service := models.Service{
		Name:        input.Name,
		Description: input.Description,
		Duration:    input.Duration.ToDuration(),
		BufferTime:  input.BufferTime.ToDuration(),
		Cost:        input.Cost,
		Discount:    input.Discount,
		ProviderID:  userID,
	}

	if err := db.DB.Create(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create service",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(service)
}

// UpdateMyService updates one of the provider's services
func UpdateMyService(c *fiber.Ctx) error {
	userID, role, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	id := c.Params("id")
	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if service.ProviderID != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only update your own services",
		})
	}

	var input serviceInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if input.Name != "" {
		service.Name = input.Name
	}
	if input.Description != "" {
		service.Description = input.Description
	}
	if d := input.Duration.ToDuration(); d > 0 {
		service.Duration = d
	}
	if b := input.BufferTime.ToDuration(); b > 0 {
		service.BufferTime = b
	}
	if input.Cost > 0 {
		service.Cost = input.Cost
	}
	if input.Discount >= 0 {
		service.Discount = input.Discount
	}

	if err := db.DB.Save(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update service",
		})
	}
	return c.JSON(service)
}

// DeleteMyService removes one of the provider's services
func DeleteMyService(c *fiber.Ctx) error {
	userID, role, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	id := c.Params("id")
	var service models.Service
	if err := db.DB.First(&service, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Service not found",
		})
	}
	if service.ProviderID != userID && role != "admin" {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You can only delete your own services",
		})
	}

	var upcoming int64
	db.DB.Model(&models.Appointment{}).
		Where("service_id = ?", service.ID).
		Where("status IN ?", []models.AppointmentStatus{models.StatusPending, models.StatusConfirmed, models.StatusExecuting}).
		Count(&upcoming)
	if upcoming > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Cannot delete a service with upcoming appointments",
		})
	}

	if err := db.DB.Delete(&service).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete service",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
