package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
)

// AvailabilityGormStore is the resolver's read side. Inside a transaction it
// is built without a cache so every read sees the locked state.
type AvailabilityGormStore struct {
	db    *gorm.DB
	cache *ProviderCache
}

func NewAvailabilityGormStore(db *gorm.DB, cache *ProviderCache) *AvailabilityGormStore {
	return &AvailabilityGormStore{db: db, cache: cache}
}

type providerSnapshot struct {
	ProviderID        uint   `json:"provider_id"`
	UserID            uint   `json:"user_id"`
	WorkingHoursStart int    `json:"working_hours_start"`
	WorkingHoursEnd   int    `json:"working_hours_end"`
	WorkingDays       string `json:"working_days"`
	Timezone          string `json:"timezone"`
	AccountType       string `json:"account_type"`
}

func (s *AvailabilityGormStore) snapshot(ctx context.Context, providerID uint) (*providerSnapshot, error) {
	if snap, ok := s.cache.get(ctx, providerID); ok {
		return snap, nil
	}

	var snap providerSnapshot
	res := s.db.WithContext(ctx).
		Table("providers").
		Select(`providers.id AS provider_id, providers.user_id,
			providers.working_hours_start, providers.working_hours_end,
			providers.working_days, providers.timezone, users.account_type`).
		Joins("JOIN users ON users.id = providers.user_id").
		Where("providers.id = ?", providerID).
		Scan(&snap)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, availability.ErrProviderNotFound
	}

	s.cache.set(ctx, &snap)
	return &snap, nil
}

func (s *AvailabilityGormStore) ProviderConfig(ctx context.Context, providerID uint) (*availability.ProviderConfig, error) {
	snap, err := s.snapshot(ctx, providerID)
	if err != nil {
		return nil, err
	}

	return &availability.ProviderConfig{
		ProviderID:        snap.ProviderID,
		WorkingHoursStart: snap.WorkingHoursStart,
		WorkingHoursEnd:   snap.WorkingHoursEnd,
		WorkingDays:       availability.ParseWorkingDays(snap.WorkingDays),
		Location:          timezone.Location(snap.Timezone),
	}, nil
}

func (s *AvailabilityGormStore) ActiveExclusions(ctx context.Context, providerID uint, weekday int) ([]availability.Exclusion, error) {
	var rows []models.TimeExclusion
	if err := s.db.WithContext(ctx).
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Where("(day_of_week IS NULL OR day_of_week = ?)", weekday).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]availability.Exclusion, 0, len(rows))
	for _, r := range rows {
		out = append(out, availability.Exclusion{
			Name:      r.Name,
			StartTime: r.StartTime,
			EndTime:   r.EndTime,
			Weekday:   r.DayOfWeek,
		})
	}
	return out, nil
}

func (s *AvailabilityGormStore) IsCompanyAccount(ctx context.Context, providerID uint) (bool, error) {
	snap, err := s.snapshot(ctx, providerID)
	if err != nil {
		return false, err
	}
	return snap.AccountType == models.AccountCompany, nil
}

type bookingRow struct {
	ID         uint
	EmployeeID *uint
	StartTime  time.Time
	EndTime    time.Time
	Duration   *int
}

func (s *AvailabilityGormStore) LiveBookings(
	ctx context.Context,
	providerID uint,
	from time.Time,
	to time.Time,
	excludeID uint,
) ([]availability.Booking, error) {

	q := s.db.WithContext(ctx).
		Table("appointments").
		Select(`appointments.id, appointments.employee_id,
			appointments.start_time, appointments.end_time, services.duration`).
		Joins("LEFT JOIN services ON services.id = appointments.service_id").
		Where("appointments.provider_id = ?", providerID).
		Where("appointments.status IN ?", domain.LiveStatuses).
		Where("appointments.start_time >= ? AND appointments.start_time < ?", from.UTC(), to.UTC())

	if excludeID != 0 {
		q = q.Where("appointments.id <> ?", excludeID)
	}

	var rows []bookingRow
	if err := q.Order("appointments.start_time ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]availability.Booking, 0, len(rows))
	for _, r := range rows {
		b := availability.Booking{
			ID:         r.ID,
			EmployeeID: r.EmployeeID,
			Start:      r.StartTime,
			End:        r.EndTime,
		}
		if r.Duration != nil {
			b.ServiceDuration = *r.Duration
		}
		out = append(out, b)
	}
	return out, nil
}

func (s *AvailabilityGormStore) EmployeeBreak(ctx context.Context, providerID, employeeID uint) (*availability.EmployeeBreak, error) {
	snap, err := s.snapshot(ctx, providerID)
	if err != nil {
		return nil, err
	}

	var emp models.Employee
	res := s.db.WithContext(ctx).
		Where("id = ? AND company_user_id = ?", employeeID, snap.UserID).
		Limit(1).
		Find(&emp)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, availability.ErrEmployeeNotFound
	}

	return &availability.EmployeeBreak{
		EmployeeID: emp.ID,
		LunchStart: emp.LunchBreakStart,
		LunchEnd:   emp.LunchBreakEnd,
	}, nil
}

var _ availability.Store = (*AvailabilityGormStore)(nil)
