package controllers

import (
	"testing"

	"github.com/slotwise/booking-api/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openScheduleDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(&models.WeeklyAvailability{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func weekRules(providerID uint, days ...models.DayOfWeek) []models.WeeklyAvailability {
	rules := make([]models.WeeklyAvailability, 0, len(days))
	for _, day := range days {
		rules = append(rules, models.WeeklyAvailability{
			ProviderID:      providerID,
			DayOfWeek:       day,
			StartTime:       "09:00",
			EndTime:         "17:00",
			IsAvailable:     true,
			IntervalMinutes: 30,
		})
	}
	return rules
}

func saveSchedule(t *testing.T, conn *gorm.DB, providerID uint, rules []models.WeeklyAvailability) error {
	t.Helper()
	return conn.Transaction(func(tx *gorm.DB) error {
		return replaceWeeklyRules(tx, providerID, rules)
	})
}

// A provider saves the full week every time; the second save must replace the
// first outright. Soft-deleting the old rows would leave them under the
// (provider_id, day_of_week) unique index and fail the re-insert.
func TestReplaceWeeklyRules_SecondSaveReplacesFirst(t *testing.T) {
	conn := openScheduleDB(t)

	if err := saveSchedule(t, conn, 1, weekRules(1, models.Monday, models.Tuesday)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := weekRules(1, models.Monday, models.Wednesday)
	second[0].StartTime = "10:00"
	if err := saveSchedule(t, conn, 1, second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	var rows []models.WeeklyAvailability
	if err := conn.Where("provider_id = ?", 1).Order("day_of_week asc").Find(&rows).Error; err != nil {
		t.Fatalf("failed to load rules: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rules after second save, want 2", len(rows))
	}
	if rows[0].DayOfWeek != models.Monday || rows[0].StartTime != "10:00" {
		t.Errorf("first rule = day %d start %s, want Monday 10:00", rows[0].DayOfWeek, rows[0].StartTime)
	}
	if rows[1].DayOfWeek != models.Wednesday {
		t.Errorf("second rule = day %d, want Wednesday", rows[1].DayOfWeek)
	}

	// Replaced rows must be gone for real, not hidden behind deleted_at.
	var total int64
	conn.Unscoped().Model(&models.WeeklyAvailability{}).Where("provider_id = ?", 1).Count(&total)
	if total != 2 {
		t.Errorf("got %d rows including soft-deleted, want 2", total)
	}
}

func TestReplaceWeeklyRules_RepeatedSavesStayStable(t *testing.T) {
	conn := openScheduleDB(t)

	week := weekRules(1,
		models.Sunday, models.Monday, models.Tuesday, models.Wednesday,
		models.Thursday, models.Friday, models.Saturday)
	for i := 0; i < 3; i++ {
		if err := saveSchedule(t, conn, 1, week); err != nil {
			t.Fatalf("save %d failed: %v", i+1, err)
		}
	}

	var count int64
	conn.Model(&models.WeeklyAvailability{}).Where("provider_id = ?", 1).Count(&count)
	if count != 7 {
		t.Fatalf("got %d rules after repeated saves, want 7", count)
	}
}

func TestReplaceWeeklyRules_EmptySaveClearsSchedule(t *testing.T) {
	conn := openScheduleDB(t)

	if err := saveSchedule(t, conn, 1, weekRules(1, models.Monday)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}
	if err := saveSchedule(t, conn, 1, nil); err != nil {
		t.Fatalf("empty save failed: %v", err)
	}

	var count int64
	conn.Model(&models.WeeklyAvailability{}).Where("provider_id = ?", 1).Count(&count)
	if count != 0 {
		t.Fatalf("got %d rules after empty save, want 0", count)
	}
}

func TestReplaceWeeklyRules_OtherProvidersUntouched(t *testing.T) {
	conn := openScheduleDB(t)

	if err := saveSchedule(t, conn, 1, weekRules(1, models.Monday)); err != nil {
		t.Fatalf("provider 1 save failed: %v", err)
	}
	if err := saveSchedule(t, conn, 2, weekRules(2, models.Monday, models.Tuesday)); err != nil {
		t.Fatalf("provider 2 save failed: %v", err)
	}
	if err := saveSchedule(t, conn, 1, weekRules(1, models.Friday)); err != nil {
		t.Fatalf("provider 1 resave failed: %v", err)
	}

	var count int64
	conn.Model(&models.WeeklyAvailability{}).Where("provider_id = ?", 2).Count(&count)
	if count != 2 {
		t.Fatalf("provider 2 has %d rules, want 2", count)
	}
}
