package availability

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Query asks whether a single candidate slot can be booked.
type Query struct {
	ProviderID      uint
	Start           time.Time
	DurationMinutes int
	EmployeeID      *uint

	// ExcludeAppointmentID leaves one appointment out of the conflict scan,
	// used when rescheduling it.
	ExcludeAppointmentID uint
}

type Reason string

const (
	ReasonNone                Reason = ""
	ReasonNonWorkingDay       Reason = "non_working_day"
	ReasonOutsideWorkingHours Reason = "outside_working_hours"
	ReasonTimeExclusion       Reason = "time_exclusion"
	ReasonConflict            Reason = "conflict"

	// ReasonEmployeeBreak is set by callers that apply the employee's lunch
	// break on top of Check.
	ReasonEmployeeBreak Reason = "employee_break"
)

// Decision is the outcome of Check. Start and End are expressed in the
// provider's location.
type Decision struct {
	Available    bool
	Reason       Reason
	Start        time.Time
	End          time.Time
	Weekday      int
	Location     *time.Location
	ConflictWith uint
}

type Option func(*Resolver)

// WithClock overrides the clock used to hide past slots in day grids.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// WithSlotMinutes sets the default day grid step.
func WithSlotMinutes(minutes int) Option {
	return func(r *Resolver) {
		if minutes > 0 {
			r.slotMinutes = minutes
		}
	}
}

type Resolver struct {
	store       Store
	log         *zap.Logger
	now         func() time.Time
	slotMinutes int
}

func NewResolver(store Store, log *zap.Logger, opts ...Option) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}

	r := &Resolver{
		store:       store,
		log:         log,
		now:         time.Now,
		slotMinutes: 30,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// IsAvailable reports whether the candidate can be booked. Ordinary
// unavailability is (false, nil); a missing provider is
// (false, ErrProviderNotFound).
func (r *Resolver) IsAvailable(ctx context.Context, q Query) (bool, error) {
	d, err := r.Check(ctx, q)
	if err != nil {
		return false, err
	}
	return d.Available, nil
}

// Check runs the availability rules in order and stops at the first one
// that rejects the candidate.
func (r *Resolver) Check(ctx context.Context, q Query) (Decision, error) {
	if q.Start.IsZero() || q.DurationMinutes <= 0 {
		return Decision{}, ErrInvalidInput
	}

	cfg, err := r.store.ProviderConfig(ctx, q.ProviderID)
	if err != nil {
		return Decision{}, err
	}
	loc := locationOf(cfg)

	start := q.Start.In(loc)
	end := start.Add(time.Duration(q.DurationMinutes) * time.Minute)

	d := Decision{
		Start:    start,
		End:      end,
		Weekday:  ISOWeekday(start),
		Location: loc,
	}

	// 1. weekday
	if !isWorkingDay(cfg.WorkingDays, d.Weekday) {
		d.Reason = ReasonNonWorkingDay
		return d, nil
	}

	// 2. working hours
	startMin := clockMinutes(start)
	endMin := endClockMinutes(start, end)
	if startMin < cfg.WorkingHoursStart*60 || endMin > cfg.WorkingHoursEnd*60 {
		d.Reason = ReasonOutsideWorkingHours
		return d, nil
	}

	// 3. time exclusions
	exclusions, err := r.exclusionsFor(ctx, cfg.ProviderID, d.Weekday)
	if err != nil {
		return Decision{}, err
	}
	for _, ex := range exclusions {
		if clockOverlaps(startMin, endMin, ex.start, ex.end) {
			d.Reason = ReasonTimeExclusion
			return d, nil
		}
	}

	// 4. account type
	company, err := r.store.IsCompanyAccount(ctx, cfg.ProviderID)
	if err != nil {
		return Decision{}, err
	}

	// 5. conflicts within the candidate's calendar day
	bookings, err := r.bookingsOn(ctx, cfg.ProviderID, start, q.ExcludeAppointmentID)
	if err != nil {
		return Decision{}, err
	}
	for _, b := range bookings {
		if !Overlaps(start, end, b.Start, b.End) {
			continue
		}
		if Conflicts(company, q.EmployeeID, b) {
			d.Reason = ReasonConflict
			d.ConflictWith = b.ID
			return d, nil
		}
	}

	d.Available = true
	return d, nil
}

type clockRange struct {
	name  string
	start int
	end   int
}

func (r *Resolver) exclusionsFor(ctx context.Context, providerID uint, weekday int) ([]clockRange, error) {
	rows, err := r.store.ActiveExclusions(ctx, providerID, weekday)
	if err != nil {
		return nil, err
	}

	out := make([]clockRange, 0, len(rows))
	for _, ex := range rows {
		if ex.Weekday != nil && *ex.Weekday != weekday {
			continue
		}

		start, errStart := ParseClock(ex.StartTime)
		end, errEnd := ParseClock(ex.EndTime)
		if errStart != nil || errEnd != nil || end <= start {
			r.log.Warn("skipping malformed time exclusion",
				zap.Uint("provider_id", providerID),
				zap.String("name", ex.Name),
				zap.String("start_time", ex.StartTime),
				zap.String("end_time", ex.EndTime),
			)
			continue
		}
		out = append(out, clockRange{name: ex.Name, start: start, end: end})
	}
	return out, nil
}

// bookingsOn loads the live bookings of day's calendar date and resolves
// their end instants. Rows that cannot be resolved are logged and skipped.
func (r *Resolver) bookingsOn(ctx context.Context, providerID uint, day time.Time, excludeID uint) ([]Booking, error) {
	from := startOfDay(day)
	to := from.AddDate(0, 0, 1)

	rows, err := r.store.LiveBookings(ctx, providerID, from, to, excludeID)
	if err != nil {
		return nil, err
	}

	out := make([]Booking, 0, len(rows))
	for _, b := range rows {
		if !b.End.After(b.Start) {
			if b.ServiceDuration <= 0 {
				r.log.Warn("skipping appointment without end time or service",
					zap.Uint("provider_id", providerID),
					zap.Uint("appointment_id", b.ID),
				)
				continue
			}
			b.End = b.Start.Add(time.Duration(b.ServiceDuration) * time.Minute)
		}
		out = append(out, b)
	}
	return out, nil
}

func locationOf(cfg *ProviderConfig) *time.Location {
	if cfg.Location == nil {
		return time.UTC
	}
	return cfg.Location
}
