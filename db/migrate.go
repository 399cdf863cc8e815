package db

import (
	"fmt"
	"log"

	"github.com/slotwise/booking-api/models"
)

func Migrate() {
	// Initialize DB connection
	Init()

	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Permission{},
		&models.Recurrence{},
		&models.Appointment{},
		&models.Service{},
		&models.WeeklyAvailability{},
		&models.BlockedTime{},
		&models.Review{},
		&models.BusinessDetails{},
		&models.ProviderSettings{},
		&models.ReceptionistSettings{},
		&models.UserDetails{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
