package availability

import (
	"context"
	"iter"
	"slices"
	"time"
)

// DayQuery asks for the slot grid of one calendar day. Only the date
// components of Date are used; the day is built in the provider's location.
type DayQuery struct {
	ProviderID uint
	Date       time.Time
	EmployeeID *uint

	// DurationMinutes is the length each slot must stay free for. Zero
	// checks the slot itself.
	DurationMinutes int

	// SlotMinutes overrides the resolver's grid step.
	SlotMinutes int

	ExcludeAppointmentID uint
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// DayGrid is a snapshot of everything needed to evaluate one day. Slots can
// be iterated any number of times and always yields the same sequence.
type DayGrid struct {
	Date     time.Time
	Weekday  int
	Closed   bool
	Location *time.Location

	step     int
	span     int
	openMin  int
	closeMin int
	now      time.Time

	company    bool
	employeeID *uint
	lunch      *EmployeeBreak
	exclusions []clockRange
	bookings   []Booking
}

// DayGrid loads the provider's data for q.Date. A non-working weekday
// produces a closed grid with no slots.
func (r *Resolver) DayGrid(ctx context.Context, q DayQuery) (*DayGrid, error) {
	if q.Date.IsZero() || q.DurationMinutes < 0 || q.SlotMinutes < 0 {
		return nil, ErrInvalidInput
	}

	cfg, err := r.store.ProviderConfig(ctx, q.ProviderID)
	if err != nil {
		return nil, err
	}
	loc := locationOf(cfg)

	day := time.Date(q.Date.Year(), q.Date.Month(), q.Date.Day(), 0, 0, 0, 0, loc)

	step := q.SlotMinutes
	if step == 0 {
		step = r.slotMinutes
	}
	span := q.DurationMinutes
	if span == 0 {
		span = step
	}

	g := &DayGrid{
		Date:       day,
		Weekday:    ISOWeekday(day),
		Location:   loc,
		step:       step,
		span:       span,
		openMin:    cfg.WorkingHoursStart * 60,
		closeMin:   cfg.WorkingHoursEnd * 60,
		now:        r.now().In(loc),
		employeeID: q.EmployeeID,
	}

	if !isWorkingDay(cfg.WorkingDays, g.Weekday) {
		g.Closed = true
		return g, nil
	}

	if q.EmployeeID != nil {
		g.lunch, err = r.store.EmployeeBreak(ctx, cfg.ProviderID, *q.EmployeeID)
		if err != nil {
			return nil, err
		}
	}

	if g.exclusions, err = r.exclusionsFor(ctx, cfg.ProviderID, g.Weekday); err != nil {
		return nil, err
	}
	if g.company, err = r.store.IsCompanyAccount(ctx, cfg.ProviderID); err != nil {
		return nil, err
	}
	if g.bookings, err = r.bookingsOn(ctx, cfg.ProviderID, day, q.ExcludeAppointmentID); err != nil {
		return nil, err
	}

	return g, nil
}

// Slots yields one record per grid step from opening (inclusive) to closing
// (exclusive).
func (g *DayGrid) Slots() iter.Seq[Slot] {
	return func(yield func(Slot) bool) {
		if g.Closed || g.step <= 0 {
			return
		}
		for m := g.openMin; m < g.closeMin; m += g.step {
			if !yield(Slot{Time: FormatClock(m), Available: g.available(m)}) {
				return
			}
		}
	}
}

// List materializes Slots.
func (g *DayGrid) List() []Slot {
	out := slices.Collect(g.Slots())
	if out == nil {
		return []Slot{}
	}
	return out
}

func (g *DayGrid) available(m int) bool {
	start := time.Date(g.Date.Year(), g.Date.Month(), g.Date.Day(), 0, m, 0, 0, g.Location)
	end := start.Add(time.Duration(g.span) * time.Minute)

	if sameDate(start, g.now) && !start.After(g.now) {
		return false
	}

	if InLunchBreak(g.lunch, m) {
		return false
	}

	if m+g.span > g.closeMin {
		return false
	}

	for _, ex := range g.exclusions {
		if clockOverlaps(m, m+g.span, ex.start, ex.end) {
			return false
		}
	}

	for _, b := range g.bookings {
		if Overlaps(start, end, b.Start, b.End) && Conflicts(g.company, g.employeeID, b) {
			return false
		}
	}

	return true
}
