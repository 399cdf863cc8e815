package utils

import (
	"os"
	"time"
)

// BusinessLocation resolves the marketplace's operating timezone from the
// BUSINESS_TIMEZONE env var, falling back to UTC. Schedule dates and HH:MM
// wall-clock values are interpreted in this location.
func BusinessLocation() *time.Location {
	name := os.Getenv("BUSINESS_TIMEZONE")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ToBusinessTime converts a timestamp into the marketplace timezone.
func ToBusinessTime(t time.Time) time.Time {
	return t.In(BusinessLocation())
}
