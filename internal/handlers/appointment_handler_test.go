package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/testutil"
)

type staffAppointment struct {
	ID          uint      `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ServiceName string    `json:"service_name"`
}

type appointmentList struct {
	Data  []staffAppointment `json:"data"`
	Total int                `json:"total"`
}

func TestAppointments_StaffLifecycle(t *testing.T) {
	app := newApp(t)
	p := testutil.SeedProvider(t, app.db, testutil.ProviderSeed{MinAdvanceMinutes: 24 * 60})
	svc := testutil.SeedService(t, app.db, p.ID, 45, 7000)
	tok := app.token(p)

	// staff bookings skip the minimum advance
	rec := app.do(http.MethodPost, "/api/me/appointments", tok, map[string]any{
		"service_id":   svc.ID,
		"date":         "2026-03-02",
		"time":         "09:00",
		"client_name":  "Joana",
		"client_phone": "11988887777",
	})
	expectStatus(t, rec, http.StatusCreated)
	ap := decode[staffAppointment](t, rec)
	if ap.Status != "confirmed" || ap.ServiceName != "Corte" || ap.ClientName != "Joana" {
		t.Fatalf("unexpected appointment %+v", ap)
	}
	if ap.EndTime.Sub(ap.StartTime) != 45*time.Minute {
		t.Fatalf("end should follow the service duration, got %s", ap.EndTime.Sub(ap.StartTime))
	}

	path := fmt.Sprintf("/api/me/appointments/%d", ap.ID)

	expectError(t, app.do(http.MethodPatch, path+"/confirm", tok, nil), http.StatusConflict, "invalid_state")

	rec = app.do(http.MethodPatch, path+"/reschedule", tok, map[string]string{"date": "2026-03-02", "time": "15:00"})
	expectStatus(t, rec, http.StatusOK)
	if moved := decode[staffAppointment](t, rec); moved.StartTime.UTC().Hour() != 15 {
		t.Fatalf("unexpected reschedule %+v", moved)
	}

	rec = app.do(http.MethodPatch, path+"/complete", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if done := decode[staffAppointment](t, rec); done.Status != "completed" {
		t.Fatalf("expected completed, got %q", done.Status)
	}

	expectError(t, app.do(http.MethodPatch, path+"/cancel", tok, nil), http.StatusConflict, "invalid_state")
	expectError(t, app.do(http.MethodPatch, "/api/me/appointments/abc/cancel", tok, nil), http.StatusBadRequest, "invalid_id")
	expectError(t, app.do(http.MethodPatch, "/api/me/appointments/999/cancel", tok, nil), http.StatusNotFound, "appointment_not_found")

	var stored models.Appointment
	if err := app.db.First(&stored, ap.ID).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.CompletedAt == nil || stored.RescheduleCount != 1 {
		t.Fatalf("unexpected stored row %+v", stored)
	}
}

func TestAppointments_CancelFreesSlot(t *testing.T) {
	app := newApp(t)
	p := testutil.SeedProvider(t, app.db, testutil.ProviderSeed{})
	svc := testutil.SeedService(t, app.db, p.ID, 60, 5000)
	tok := app.token(p)

	body := map[string]any{
		"service_id":   svc.ID,
		"date":         tuesday,
		"time":         "10:00",
		"client_name":  "Joana",
		"client_phone": "11988887777",
	}

	rec := app.do(http.MethodPost, "/api/me/appointments", tok, body)
	expectStatus(t, rec, http.StatusCreated)
	ap := decode[staffAppointment](t, rec)

	expectError(t, app.do(http.MethodPost, "/api/me/appointments", tok, body), http.StatusConflict, "time_conflict")

	rec = app.do(http.MethodPatch, fmt.Sprintf("/api/me/appointments/%d/cancel", ap.ID), tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[staffAppointment](t, rec); got.Status != "cancelled" {
		t.Fatalf("expected cancelled, got %q", got.Status)
	}

	expectStatus(t, app.do(http.MethodPost, "/api/me/appointments", tok, body), http.StatusCreated)
}

func TestAppointments_Lists(t *testing.T) {
	app := newApp(t)
	p := testutil.SeedProvider(t, app.db, testutil.ProviderSeed{Timezone: "America/Sao_Paulo"})
	other := testutil.SeedProvider(t, app.db, testutil.ProviderSeed{})
	svc := testutil.SeedService(t, app.db, p.ID, 30, 5000)
	client := models.Client{ProviderID: p.ID, Name: "Ana", Phone: "1"}
	app.db.Create(&client)

	sp := time.FixedZone("BRT", -3*3600)
	for _, start := range []time.Time{
		time.Date(2026, 3, 3, 9, 0, 0, 0, sp),
		time.Date(2026, 3, 3, 22, 30, 0, 0, sp), // 01:30 UTC on the 4th
		time.Date(2026, 3, 20, 9, 0, 0, 0, sp),
		time.Date(2026, 4, 1, 9, 0, 0, 0, sp),
	} {
		testutil.SeedAppointment(t, app.db, models.Appointment{
			ProviderID: p.ID, ClientID: client.ID, ServiceID: svc.ID,
			StartTime: start, EndTime: start.Add(30 * time.Minute),
		})
	}
	testutil.SeedAppointment(t, app.db, models.Appointment{
		ProviderID: other.ID, ClientID: client.ID, ServiceID: svc.ID,
		StartTime: time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC), EndTime: time.Date(2026, 3, 3, 13, 0, 0, 0, time.UTC),
	})

	tok := app.token(p)

	rec := app.do(http.MethodGet, "/api/me/appointments?date="+tuesday, tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if day := decode[appointmentList](t, rec); day.Total != 2 {
		t.Fatalf("expected both bookings of the local day, got %+v", day)
	}

	rec = app.do(http.MethodGet, "/api/me/appointments/month?year=2026&month=3", tok, nil)
	expectStatus(t, rec, http.StatusOK)
	if month := decode[appointmentList](t, rec); month.Total != 3 {
		t.Fatalf("expected 3 bookings in march, got %d", month.Total)
	}

	expectError(t, app.do(http.MethodGet, "/api/me/appointments/month?year=2026&month=13", tok, nil),
		http.StatusBadRequest, "invalid_date_or_time")
	expectError(t, app.do(http.MethodGet, "/api/me/appointments/month?year=x&month=3", tok, nil),
		http.StatusBadRequest, "invalid_date_or_time")
	expectError(t, app.do(http.MethodGet, "/api/me/appointments?date=2026-13-01", tok, nil),
		http.StatusBadRequest, "invalid_date_or_time")
}
