package timezone

import (
	"fmt"
	"sync/atomic"
	"time"
)

const DefaultTimezone = "America/Sao_Paulo"

// fallback is the location used for empty or unknown provider timezones.
var fallback atomic.Pointer[time.Location]

// SetDefault replaces the fallback location, normally with the configured
// DEFAULT_TIMEZONE at startup.
func SetDefault(tz string) error {
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		return fmt.Errorf("timezone: unknown default %q", tz)
	}
	fallback.Store(loc)
	return nil
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// Location resolves a provider timezone, falling back to the SetDefault
// location, then DefaultTimezone, and finally to UTC when tzdata is
// unavailable.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	if loc := fallback.Load(); loc != nil {
		return loc
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// ParseDate reads "YYYY-MM-DD" as local midnight in tz.
func ParseDate(tz, date string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", date, Location(tz))
}

// ParseDateTime combines "YYYY-MM-DD" and "HH:MM" into one instant in tz.
func ParseDateTime(tz, date, hm string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+hm, Location(tz))
}

// ParseInstant accepts an RFC 3339 instant. Values without an offset are
// read as wall-clock time in tz.
func ParseInstant(tz, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(Location(tz)), nil
	}
	return time.ParseInLocation("2006-01-02T15:04:05", value, Location(tz))
}
