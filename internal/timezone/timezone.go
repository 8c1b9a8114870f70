// Package timezone resolves the configured zone used to pick "today".
package timezone

import (
	"time"

	"github.com/BruksfildServices01/visit-tracker/internal/domain/visit"
)

const DefaultTimezone = "Asia/Seoul"

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location falls back to DefaultTimezone, then UTC when tzdata is missing.
func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); tz != "" && err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Today is the day partition for the current date in tz.
func Today(tz string) visit.Day {
	return visit.DayOf(NowIn(tz))
}
