package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/testutil"
)

func TestAppointmentRepository_GetOrCreateClient(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{})
	repo := NewAppointmentGormRepository(gdb, nil, nil)
	ctx := context.Background()

	first, err := repo.GetOrCreateClient(ctx, p.ID, "Ana", "11999990000", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := repo.GetOrCreateClient(ctx, p.ID, "Ana Maria", "11999990000", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.ID != again.ID {
		t.Fatalf("expected the same client for the same phone")
	}
}

func TestAppointmentRepository_NotFoundCodes(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{AccountType: models.AccountCompany})
	other := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{AccountType: models.AccountCompany})
	foreign := testutil.SeedEmployee(t, gdb, other.UserID, "", "")
	repo := NewAppointmentGormRepository(gdb, nil, nil)
	ctx := context.Background()

	if _, err := repo.GetProvider(ctx, 999); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("expected provider_not_found, got %v", err)
	}
	if _, err := repo.GetProviderByLink(ctx, "missing"); !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("expected provider_not_found, got %v", err)
	}
	if _, err := repo.GetService(ctx, p.ID, 999); !errors.Is(err, domain.ErrServiceNotFound) {
		t.Fatalf("expected service_not_found, got %v", err)
	}
	if _, err := repo.GetEmployee(ctx, p.ID, foreign.ID); !errors.Is(err, domain.ErrEmployeeNotFound) {
		t.Fatalf("expected employee_not_found, got %v", err)
	}
	if _, err := repo.GetAppointment(ctx, p.ID, 999); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Fatalf("expected appointment_not_found, got %v", err)
	}
}

func TestAppointmentRepository_CreateStoresUTC(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{Timezone: "America/Sao_Paulo"})
	svc := testutil.SeedService(t, gdb, p.ID, 30, 3000)
	repo := NewAppointmentGormRepository(gdb, nil, nil)
	ctx := context.Background()

	client, err := repo.GetOrCreateClient(ctx, p.ID, "Ana", "11999990000", "")
	if err != nil {
		t.Fatalf("client: %v", err)
	}

	start := utc("2026-03-03 13:00")
	ap := &models.Appointment{
		ProviderID:  p.ID,
		ClientID:    client.ID,
		ServiceID:   svc.ID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		Status:      string(domain.StatusPending),
		PublicToken: "tok-1",
	}
	if err := repo.CreateAppointment(ctx, ap); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetAppointmentByToken(ctx, p.ID, "tok-1")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if !got.StartTime.Equal(start) {
		t.Fatalf("expected %v, got %v", start, got.StartTime)
	}
	if got.Client.Name != "Ana" || got.Service == nil || got.Service.Duration != 30 {
		t.Fatalf("expected relations to be preloaded, got %+v", got)
	}

	list, err := repo.ListAppointmentsForPeriod(ctx, p.ID, utc("2026-03-03 00:00"), utc("2026-03-04 00:00"))
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one appointment in period, got %d (%v)", len(list), err)
	}
}

func TestAppointmentRepository_WithProviderLock(t *testing.T) {
	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, testutil.ProviderSeed{})
	repo := NewAppointmentGormRepository(gdb, nil, nil)
	ctx := context.Background()

	boom := errors.New("boom")
	err := repo.WithProviderLock(ctx, p.ID, func(tx domain.Repository) error {
		if _, err := tx.GetOrCreateClient(ctx, p.ID, "Ana", "11999990000", ""); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error, got %v", err)
	}

	var count int64
	gdb.Model(&models.Client{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected rollback, found %d clients", count)
	}

	err = repo.WithProviderLock(ctx, 999, func(domain.Repository) error { return nil })
	if !errors.Is(err, domain.ErrProviderNotFound) {
		t.Fatalf("expected provider_not_found, got %v", err)
	}
}
