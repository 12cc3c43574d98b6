package timezone

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func TestLocationFallback(t *testing.T) {
	if Location("Not/AZone").String() != DefaultTimezone && Location("Not/AZone") != time.UTC {
		t.Fatalf("expected fallback to the default timezone")
	}
	if !IsValid("UTC") || IsValid("") {
		t.Fatalf("unexpected IsValid results")
	}
}

func TestSetDefault(t *testing.T) {
	t.Cleanup(func() { fallback.Store(nil) })

	if err := SetDefault("Mars/Olympus"); err == nil {
		t.Fatalf("expected an unknown zone to be rejected")
	}
	if err := SetDefault(""); err == nil {
		t.Fatalf("expected an empty zone to be rejected")
	}

	if err := SetDefault("America/Manaus"); err != nil {
		t.Fatalf("set default: %v", err)
	}
	if got := Location("").String(); got != "America/Manaus" {
		t.Fatalf("empty timezone should use the configured default, got %s", got)
	}
	if got := Location("Not/AZone").String(); got != "America/Manaus" {
		t.Fatalf("unknown timezone should use the configured default, got %s", got)
	}
	if got := Location("UTC"); got != time.UTC {
		t.Fatalf("valid timezones are unaffected, got %s", got)
	}

	got, err := ParseDateTime("", "2026-03-03", "10:00")
	if err != nil || !got.Equal(time.Date(2026, 3, 3, 14, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected 10:00 Manaus to be 14:00Z, got %s %v", got, err)
	}
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("UTC", "2026-03-03", "10:15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !got.Equal(time.Date(2026, 3, 3, 10, 15, 0, 0, time.UTC)) {
		t.Fatalf("unexpected instant %s", got)
	}

	if _, err := ParseDateTime("UTC", "2026-02-30", "10:15"); err == nil {
		t.Fatalf("expected invalid calendar date to fail")
	}
	if _, err := ParseDateTime("UTC", "2026-03-03", "25:00"); err == nil {
		t.Fatalf("expected invalid time to fail")
	}
}

func TestParseInstant(t *testing.T) {
	got, err := ParseInstant("UTC", "2026-03-03T13:15:00Z")
	if err != nil || got.Hour() != 13 {
		t.Fatalf("unexpected %s %v", got, err)
	}

	local, err := ParseInstant("UTC", "2026-03-03T10:15:00")
	if err != nil || local.Hour() != 10 || local.Location() != time.UTC {
		t.Fatalf("unexpected %s %v", local, err)
	}
}
