package consumer

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/slotwise/booking-api/db"
	"github.com/slotwise/booking-api/models"
	"github.com/slotwise/booking-api/utils"
)

// GetUserProfile returns the profile of the logged-in user
func GetUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var details models.UserDetails
	if err := db.DB.Preload("User").Preload("FavoriteServices").
		Where("user_id = ?", userID).First(&details).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	details.User.Password = ""

	return c.JSON(details)
}

// CreateUserProfile creates the profile record for the logged-in user
func CreateUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var existing models.UserDetails
	if db.DB.Where("user_id = ?", userID).First(&existing).RowsAffected > 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Profile already exists",
		})
	}

	details := new(models.UserDetails)
	if err := c.BodyParser(details); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	details.UserID = userID

	if err := db.DB.Create(details).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create profile",
		})
	}
	return c.Status(fiber.StatusCreated).JSON(details)
}

// UpdateUserProfile updates the logged-in user's profile
func UpdateUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var details models.UserDetails
	if err := db.DB.Where("user_id = ?", userID).First(&details).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}

	if err := c.BodyParser(&details); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	details.UserID = userID

	if err := db.DB.Save(&details).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update profile",
		})
	}
	return c.JSON(details)
}

// UpdateUserProfilePicture uploads a new profile picture to Cloudinary and
// stores the returned URL.
func UpdateUserProfilePicture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No picture uploaded",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to read uploaded file",
		})
	}
	defer src.Close()

	publicID := fmt.Sprintf("user_%d_profile", userID)
	url, err := utils.UploadToCloudinary(src, publicID, "profile_pictures")
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to upload picture",
		})
	}

	var details models.UserDetails
	if err := db.DB.Where("user_id = ?", userID).First(&details).Error; err != nil {
		details = models.UserDetails{UserID: userID}
	}
	details.ProfilePicture = url
	if err := db.DB.Save(&details).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save profile picture",
		})
	}

	return c.JSON(fiber.Map{
		"message":         "Profile picture updated",
		"profile_picture": url,
	})
}

// DeleteUserProfile removes the logged-in user's profile record
func DeleteUserProfile(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "User ID not found in context",
		})
	}

	var details models.UserDetails
	if err := db.DB.Where("user_id = ?", userID).First(&details).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Profile not found",
		})
	}
	if err := db.DB.Delete(&details).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete profile",
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
