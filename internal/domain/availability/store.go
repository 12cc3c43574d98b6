package availability

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

var (
	ErrProviderNotFound = httperr.ErrBusiness("provider_not_found")
	ErrEmployeeNotFound = httperr.ErrBusiness("employee_not_found")
	ErrInvalidInput     = httperr.ErrBusiness("invalid_input")
)

// ProviderConfig is the read-only snapshot of a provider's schedule.
type ProviderConfig struct {
	ProviderID        uint
	WorkingHoursStart int
	WorkingHoursEnd   int
	WorkingDays       []int
	Location          *time.Location
}

// Exclusion is a recurring blocked interval, e.g. a lunch break.
// A nil Weekday applies to every day.
type Exclusion struct {
	Name      string
	StartTime string
	EndTime   string
	Weekday   *int
}

// Booking is a live (pending or confirmed) appointment as seen by the
// conflict scan.
type Booking struct {
	ID         uint
	EmployeeID *uint
	Start      time.Time
	End        time.Time

	// ServiceDuration is only consulted when End is missing; zero means the
	// referenced service no longer exists.
	ServiceDuration int
}

// EmployeeBreak is the personal lunch break of a company employee.
type EmployeeBreak struct {
	EmployeeID uint
	LunchStart string
	LunchEnd   string
}

// Store is everything the resolver reads. Implementations return
// ErrProviderNotFound / ErrEmployeeNotFound for missing rows.
type Store interface {
	ProviderConfig(ctx context.Context, providerID uint) (*ProviderConfig, error)

	// ActiveExclusions returns active exclusions that apply on weekday
	// (ISO, 1..7), including those without a weekday.
	ActiveExclusions(ctx context.Context, providerID uint, weekday int) ([]Exclusion, error)

	IsCompanyAccount(ctx context.Context, providerID uint) (bool, error)

	// LiveBookings returns pending/confirmed appointments starting in
	// [from, to). excludeID, when non-zero, is left out.
	LiveBookings(ctx context.Context, providerID uint, from, to time.Time, excludeID uint) ([]Booking, error)

	EmployeeBreak(ctx context.Context, providerID, employeeID uint) (*EmployeeBreak, error)
}
