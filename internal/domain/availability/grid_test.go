package availability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func slotMap(slots []Slot) map[string]bool {
	out := make(map[string]bool, len(slots))
	for _, s := range slots {
		out[s.Time] = s.Available
	}
	return out
}

func fixedClock(t time.Time) Option {
	return WithClock(func() time.Time { return t })
}

func TestDayGrid_SpansWorkingHours(t *testing.T) {
	r := NewResolver(&fakeStore{cfg: baseConfig()}, nil, fixedClock(at("2026-03-01", "09:00")))

	g, err := r.DayGrid(context.Background(), DayQuery{ProviderID: 1, Date: at(tuesday, "00:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	slots := g.List()
	if len(slots) != 20 {
		t.Fatalf("expected 20 half-hour slots between 08:00 and 18:00, got %d", len(slots))
	}
	if slots[0].Time != "08:00" || slots[len(slots)-1].Time != "17:30" {
		t.Fatalf("unexpected bounds %s..%s", slots[0].Time, slots[len(slots)-1].Time)
	}
	for _, s := range slots {
		if !s.Available {
			t.Fatalf("expected every slot free, %s was not", s.Time)
		}
	}
}

func TestDayGrid_IsRestartable(t *testing.T) {
	r := NewResolver(&fakeStore{cfg: baseConfig()}, nil, fixedClock(at("2026-03-01", "09:00")))

	g, err := r.DayGrid(context.Background(), DayQuery{ProviderID: 1, Date: at(tuesday, "00:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := 0
	for s := range g.Slots() {
		first++
		if s.Time == "09:00" {
			break
		}
	}
	if first != 3 {
		t.Fatalf("expected early stop after 3 slots, got %d", first)
	}

	if n := len(g.List()); n != 20 {
		t.Fatalf("expected a fresh full iteration, got %d slots", n)
	}
}

func TestDayGrid_ClosedDay(t *testing.T) {
	store := &fakeStore{cfg: baseConfig()}
	r := NewResolver(store, nil)

	g, err := r.DayGrid(context.Background(), DayQuery{ProviderID: 1, Date: at("2026-03-08", "00:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !g.Closed || len(g.List()) != 0 {
		t.Fatalf("expected closed sunday with no slots")
	}
	if store.bookingCalls != 0 {
		t.Fatalf("closed days should not load bookings")
	}
}

func TestDayGrid_PastSlotsToday(t *testing.T) {
	r := NewResolver(&fakeStore{cfg: baseConfig()}, nil, fixedClock(at(tuesday, "10:00")))

	g, err := r.DayGrid(context.Background(), DayQuery{ProviderID: 1, Date: at(tuesday, "00:00")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := slotMap(g.List())
	for _, past := range []string{"08:00", "09:30", "10:00"} {
		if m[past] {
			t.Errorf("%s should be in the past", past)
		}
	}
	if !m["10:30"] {
		t.Errorf("10:30 should still be bookable")
	}
}

func TestDayGrid_EmployeeLunchAndConflicts(t *testing.T) {
	const employeeA, employeeB = 10, 20

	store := &fakeStore{
		cfg:     baseConfig(),
		company: true,
		breaks: map[uint]*EmployeeBreak{
			employeeA: {EmployeeID: employeeA, LunchStart: "12:00", LunchEnd: "13:00"},
		},
		bookings: []Booking{
			{ID: 1, EmployeeID: uintPtr(employeeA), Start: at(tuesday, "09:00"), End: at(tuesday, "10:00")},
			{ID: 2, EmployeeID: uintPtr(employeeB), Start: at(tuesday, "14:00"), End: at(tuesday, "15:00")},
			{ID: 3, Start: at(tuesday, "16:00"), End: at(tuesday, "16:30")},
		},
	}
	r := NewResolver(store, nil, fixedClock(at("2026-03-01", "09:00")))

	g, err := r.DayGrid(context.Background(), DayQuery{ProviderID: 1, Date: at(tuesday, "00:00"), EmployeeID: uintPtr(employeeA)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := slotMap(g.List())

	want := map[string]bool{
		"08:30": true,
		"09:00": false,
		"09:30": false,
		"10:00": true,
		"11:30": true,
		"12:00": false,
		"12:30": false,
		"13:00": true,
		"14:00": true,
		"16:00": false,
		"16:30": true,
	}
	for slot, available := range want {
		if m[slot] != available {
			t.Errorf("%s: got %v, want %v", slot, m[slot], available)
		}
	}
}

func TestDayGrid_DurationAndExclusions(t *testing.T) {
	store := &fakeStore{
		cfg:        baseConfig(),
		exclusions: []Exclusion{{Name: "Almoço", StartTime: "12:00", EndTime: "13:00"}},
	}
	r := NewResolver(store, nil, fixedClock(at("2026-03-01", "09:00")))

	g, err := r.DayGrid(context.Background(), DayQuery{ProviderID: 1, Date: at(tuesday, "00:00"), DurationMinutes: 60})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m := slotMap(g.List())

	if m["11:30"] {
		t.Errorf("a 60 minute service at 11:30 runs into lunch")
	}
	if !m["11:00"] || !m["13:00"] {
		t.Errorf("slots around lunch should be open")
	}
	if m["17:30"] {
		t.Errorf("a 60 minute service at 17:30 ends after closing")
	}
	if !m["17:00"] {
		t.Errorf("17:00 + 60min ends exactly at closing")
	}
}

func TestDayGrid_UnknownEmployee(t *testing.T) {
	r := NewResolver(&fakeStore{cfg: baseConfig()}, nil)

	_, err := r.DayGrid(context.Background(), DayQuery{ProviderID: 1, Date: at(tuesday, "00:00"), EmployeeID: uintPtr(5)})
	if !errors.Is(err, ErrEmployeeNotFound) {
		t.Fatalf("expected employee_not_found, got %v", err)
	}
}
