package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/testutil"
)

func utc(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func uintPtr(v uint) *uint { return &v }
func intPtr(v int) *int    { return &v }

func TestAvailabilityStore_ProviderConfig(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{
		AccountType: models.AccountCompany,
		WorkingDays: "2,4",
		Timezone:    "America/Sao_Paulo",
	})

	store := NewAvailabilityGormStore(gdb, nil)
	ctx := context.Background()

	cfg, err := store.ProviderConfig(ctx, p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkingHoursStart != 8 || cfg.WorkingHoursEnd != 18 {
		t.Fatalf("unexpected hours %d-%d", cfg.WorkingHoursStart, cfg.WorkingHoursEnd)
	}
	if len(cfg.WorkingDays) != 2 || cfg.WorkingDays[0] != 2 || cfg.WorkingDays[1] != 4 {
		t.Fatalf("unexpected days %v", cfg.WorkingDays)
	}
	if cfg.Location.String() != "America/Sao_Paulo" {
		t.Fatalf("unexpected location %s", cfg.Location)
	}

	company, err := store.IsCompanyAccount(ctx, p.ID)
	if err != nil || !company {
		t.Fatalf("expected company account, got %v (%v)", company, err)
	}

	if _, err := store.ProviderConfig(ctx, 9999); !errors.Is(err, availability.ErrProviderNotFound) {
		t.Fatalf("expected provider_not_found, got %v", err)
	}
	if _, err := store.IsCompanyAccount(ctx, 9999); !errors.Is(err, availability.ErrProviderNotFound) {
		t.Fatalf("expected provider_not_found, got %v", err)
	}
}

func TestAvailabilityStore_ActiveExclusions(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{})

	rows := []models.TimeExclusion{
		{ProviderID: p.ID, Name: "Almoço", StartTime: "12:00", EndTime: "13:00", IsActive: true},
		{ProviderID: p.ID, Name: "Reunião", StartTime: "09:00", EndTime: "10:00", DayOfWeek: intPtr(2), IsActive: true},
		{ProviderID: p.ID, Name: "Sexta", StartTime: "16:00", EndTime: "18:00", DayOfWeek: intPtr(5), IsActive: true},
		{ProviderID: p.ID, Name: "Antigo", StartTime: "15:00", EndTime: "16:00", IsActive: true},
	}
	if err := gdb.Create(&rows).Error; err != nil {
		t.Fatalf("seed exclusions: %v", err)
	}
	if err := gdb.Model(&rows[3]).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	got, err := NewAvailabilityGormStore(gdb, nil).ActiveExclusions(context.Background(), p.ID, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := map[string]bool{}
	for _, ex := range got {
		names[ex.Name] = true
	}
	if len(got) != 2 || !names["Almoço"] || !names["Reunião"] {
		t.Fatalf("expected every-day and tuesday exclusions, got %+v", got)
	}
}

func TestAvailabilityStore_LiveBookings(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{})
	other := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{})
	svc := testutil.SeedService(t, gdb, p.ID, 45, 5000)

	keep := testutil.SeedAppointment(t, gdb, models.Appointment{
		ProviderID: p.ID, ServiceID: svc.ID, Status: "pending",
		StartTime: utc("2026-03-03 10:00"), EndTime: utc("2026-03-03 10:45"),
	})
	excluded := testutil.SeedAppointment(t, gdb, models.Appointment{
		ProviderID: p.ID, ServiceID: svc.ID, Status: "confirmed",
		StartTime: utc("2026-03-03 11:00"), EndTime: utc("2026-03-03 11:45"),
	})
	for _, status := range []string{"cancelled", "completed"} {
		testutil.SeedAppointment(t, gdb, models.Appointment{
			ProviderID: p.ID, ServiceID: svc.ID, Status: status,
			StartTime: utc("2026-03-03 14:00"), EndTime: utc("2026-03-03 14:45"),
		})
	}
	testutil.SeedAppointment(t, gdb, models.Appointment{
		ProviderID: p.ID, ServiceID: svc.ID,
		StartTime: utc("2026-03-04 10:00"), EndTime: utc("2026-03-04 10:45"),
	})
	testutil.SeedAppointment(t, gdb, models.Appointment{
		ProviderID: other.ID, ServiceID: svc.ID,
		StartTime: utc("2026-03-03 10:00"), EndTime: utc("2026-03-03 10:45"),
	})

	got, err := NewAvailabilityGormStore(gdb, nil).LiveBookings(
		context.Background(), p.ID,
		utc("2026-03-03 00:00"), utc("2026-03-04 00:00"),
		excluded.ID,
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("expected one live booking, got %+v", got)
	}
	b := got[0]
	if b.ID != keep.ID || !b.Start.Equal(keep.StartTime) || !b.End.Equal(keep.EndTime) {
		t.Fatalf("unexpected booking %+v", b)
	}
	if b.ServiceDuration != 45 {
		t.Fatalf("expected service duration 45, got %d", b.ServiceDuration)
	}
}

func TestAvailabilityStore_EmployeeBreak(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{AccountType: models.AccountCompany})
	other := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{AccountType: models.AccountCompany})

	emp := testutil.SeedEmployee(t, gdb, p.UserID, "12:00", "13:00")
	foreign := testutil.SeedEmployee(t, gdb, other.UserID, "", "")

	store := NewAvailabilityGormStore(gdb, nil)
	ctx := context.Background()

	b, err := store.EmployeeBreak(ctx, p.ID, emp.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.LunchStart != "12:00" || b.LunchEnd != "13:00" {
		t.Fatalf("unexpected break %+v", b)
	}

	if _, err := store.EmployeeBreak(ctx, p.ID, foreign.ID); !errors.Is(err, availability.ErrEmployeeNotFound) {
		t.Fatalf("employee of another company must not resolve, got %v", err)
	}
}

func TestAvailabilityStore_ProviderCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{})

	cache := NewProviderCache(rdb, nil)
	store := NewAvailabilityGormStore(gdb, cache)
	ctx := context.Background()

	if _, err := store.ProviderConfig(ctx, p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !mr.Exists(providerKey(p.ID)) {
		t.Fatalf("expected snapshot to be cached")
	}

	if err := gdb.Model(&models.Provider{}).Where("id = ?", p.ID).Update("working_hours_end", 20).Error; err != nil {
		t.Fatalf("update: %v", err)
	}

	cfg, _ := store.ProviderConfig(ctx, p.ID)
	if cfg.WorkingHoursEnd != 18 {
		t.Fatalf("expected cached end 18, got %d", cfg.WorkingHoursEnd)
	}

	cache.Invalidate(ctx, p.ID)

	cfg, _ = store.ProviderConfig(ctx, p.ID)
	if cfg.WorkingHoursEnd != 20 {
		t.Fatalf("expected fresh end 20 after invalidation, got %d", cfg.WorkingHoursEnd)
	}
}

func TestAvailabilityStore_ResolverEndToEnd(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{AccountType: models.AccountCompany})
	svc := testutil.SeedService(t, gdb, p.ID, 60, 5000)
	a := testutil.SeedEmployee(t, gdb, p.UserID, "", "")
	b := testutil.SeedEmployee(t, gdb, p.UserID, "", "")

	testutil.SeedAppointment(t, gdb, models.Appointment{
		ProviderID: p.ID, ServiceID: svc.ID, EmployeeID: uintPtr(a.ID),
		StartTime: utc("2026-03-03 10:00"), EndTime: utc("2026-03-03 11:00"),
	})

	r := availability.NewResolver(NewAvailabilityGormStore(gdb, nil), nil)
	ctx := context.Background()

	sameEmployee, err := r.IsAvailable(ctx, availability.Query{
		ProviderID: p.ID, Start: utc("2026-03-03 10:30"), DurationMinutes: 60, EmployeeID: uintPtr(a.ID),
	})
	if err != nil || sameEmployee {
		t.Fatalf("same employee must conflict, got %v (%v)", sameEmployee, err)
	}

	otherEmployee, err := r.IsAvailable(ctx, availability.Query{
		ProviderID: p.ID, Start: utc("2026-03-03 10:30"), DurationMinutes: 60, EmployeeID: uintPtr(b.ID),
	})
	if err != nil || !otherEmployee {
		t.Fatalf("different employee should be free, got %v (%v)", otherEmployee, err)
	}

	touching, err := r.IsAvailable(ctx, availability.Query{
		ProviderID: p.ID, Start: utc("2026-03-03 11:00"), DurationMinutes: 60, EmployeeID: uintPtr(a.ID),
	})
	if err != nil || !touching {
		t.Fatalf("touching booking should be free, got %v (%v)", touching, err)
	}
}
