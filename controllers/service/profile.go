package service

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
	"github.com/slotwise/booking-api/utils"
)

// GetProviderProfile returns the logged-in provider's account and business info
func GetProviderProfile(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	var provider models.User
	if err := db.DB.Preload("Role").
		Preload("ProvidedServices").
		Preload("WeeklyAvailabilities").
		First(&provider, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}
	provider.Password = ""

	var businessDetails models.BusinessDetails
	db.DB.Where("provider_id = ?", userID).First(&businessDetails)

	return c.JSON(fiber.Map{
		"provider":         provider,
		"business_details": businessDetails,
	})
}

// UpdateProviderProfile updates the provider's name and email
func UpdateProviderProfile(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	var input struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var provider models.User
	if err := db.DB.First(&provider, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Provider not found",
		})
	}

	if input.Name != "" {
		provider.Name = input.Name
	}
	if input.Email != "" && input.Email != provider.Email {
		var count int64
		db.DB.Model(&models.User{}).
			Where("email = ? AND id != ?", input.Email, userID).
			Count(&count)
		if count > 0 {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Email already in use",
			})
		}
		provider.Email = input.Email
	}

	if err := db.DB.Save(&provider).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}

	provider.Password = ""
	return c.JSON(provider)
}

// GetBusinessDetails returns the provider's business details
func GetBusinessDetails(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	var details models.BusinessDetails
	if err := db.DB.Where("provider_id = ?", userID).First(&details).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Business details not found",
		})
	}
	return c.JSON(details)
}

// UpdateBusinessDetails creates or updates the provider's business details
func UpdateBusinessDetails(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	input := new(models.BusinessDetails)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var details models.BusinessDetails
	if err := db.DB.Where("provider_id = ?", userID).First(&details).Error; err != nil {
		input.ProviderID = userID
		if err := db.DB.Create(input).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create business details",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(input)
	}

	input.ID = details.ID
	input.ProviderID = userID
	if err := db.DB.Save(input).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update business details",
		})
	}
	return c.JSON(input)
}

// UploadBusinessMedia uploads a business logo to Cloudinary
func UploadBusinessMedia(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	file, err := c.FormFile("logo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No logo uploaded",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	publicID := fmt.Sprintf("provider_%d_logo", userID)
	url, err := utils.UploadToCloudinary(src, publicID, "business_media")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload logo",
		})
	}

	var details models.BusinessDetails
	if err := db.DB.Where("provider_id = ?", userID).First(&details).Error; err != nil {
		details = models.BusinessDetails{ProviderID: userID}
	}
	details.LogoURL = url
	if err := db.DB.Save(&details).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save logo",
		})
	}

	return c.JSON(fiber.Map{
		"message":  "Logo uploaded successfully",
		"logo_url": url,
	})
}

// GetProviderSettings returns the provider's booking preferences
func GetProviderSettings(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	var settings models.ProviderSettings
	if err := db.DB.Where("provider_id = ?", userID).First(&settings).Error; err != nil {
		// Defaults for providers who never saved settings.
		settings = models.ProviderSettings{
			ProviderID:           userID,
			NotificationsEnabled: true,
			AdvanceBookingDays:   30,
			Currency:             "USD",
		}
	}
	return c.JSON(settings)
}

// UpdateProviderSettings creates or updates the provider's booking preferences
func UpdateProviderSettings(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	input := new(models.ProviderSettings)
	if err := c.BodyParser(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var settings models.ProviderSettings
	if err := db.DB.Where("provider_id = ?", userID).First(&settings).Error; err != nil {
		input.ProviderID = userID
		if err := db.DB.Create(input).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to create settings",
			})
		}
		return c.Status(fiber.StatusCreated).JSON(input)
	}

	input.ID = settings.ID
	input.ProviderID = userID
	if err := db.DB.Save(input).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update settings",
		})
	}
	return c.JSON(input)
}

// AddReceptionist links a receptionist account to the provider
func AddReceptionist(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	var input struct {
		ReceptionistEmail string `json:"receptionist_email"`
	}
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	var receptionist models.User
	if err := db.DB.Where("email = ?", input.ReceptionistEmail).First(&receptionist).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "No user found with that email",
		})
	}

	var existing models.ReceptionistSettings
	if db.DB.Where("provider_id = ? AND receptionist_id = ?", userID, receptionist.ID).
		First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Receptionist already linked",
		})
	}

	link := models.ReceptionistSettings{
		ProviderID:     userID,
		ReceptionistID: receptionist.ID,
	}
	if err := db.DB.Create(&link).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add receptionist",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(link)
}

// GetReceptionists lists receptionists linked to the provider
func GetReceptionists(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	var links []models.ReceptionistSettings
	if err := db.DB.Preload("Receptionist").
		Where("provider_id = ?", userID).
		Find(&links).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch receptionists",
		})
	}

	for i := range links {
		links[i].Receptionist.Password = ""
	}
	return c.JSON(links)
}

// RemoveReceptionist unlinks a receptionist from the provider
func RemoveReceptionist(c *fiber.Ctx) error {
	userID, _, errResp := requireProvider(c)
	if errResp != nil {
		return errResp
	}

	id := c.Params("id")
	var link models.ReceptionistSettings
	if err := db.DB.Where("id = ? AND provider_id = ?", id, userID).First(&link).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Receptionist link not found",
		})
	}
	if err := db.DB.Delete(&link).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to remove receptionist",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
