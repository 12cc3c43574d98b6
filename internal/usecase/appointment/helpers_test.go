package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/testutil"
)

const tuesday = "2026-03-03"

// sunday before tuesday
var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	repo     *repository.AppointmentGormRepository
	deps     Deps
	provider *models.Provider
	service  *models.Service
}

func newFixture(t *testing.T, seed testutil.ProviderSeed) *fixture {
	t.Helper()

	gdb := testutil.NewDB(t)
	p := testutil.SeedProvider(t, gdb, seed)

	return &fixture{
		db:       gdb,
		repo:     repository.NewAppointmentGormRepository(gdb, nil, nil),
		deps:     Deps{Now: func() time.Time { return fixedNow }},
		provider: p,
		service:  testutil.SeedService(t, gdb, p.ID, 60, 5000),
	}
}

func (f *fixture) create(t *testing.T, in CreateAppointmentInput) (*models.Appointment, error) {
	t.Helper()

	if in.ProviderID == 0 {
		in.ProviderID = f.provider.ID
	}
	if in.ServiceID == 0 {
		in.ServiceID = f.service.ID
	}
	if in.ClientPhone == "" {
		in.ClientName, in.ClientPhone = "Ana", "11999990000"
	}
	return NewCreateAppointment(f.repo, f.deps, nil).Execute(context.Background(), in)
}

func utc(value string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		panic(err)
	}
	return t
}

func uintPtr(v uint) *uint { return &v }

type fakeGateway struct {
	mu       sync.Mutex
	created  []payment.PixRequest
	statuses map[string]string
	failWith error
}

func (g *fakeGateway) CreatePix(_ context.Context, req payment.PixRequest) (*payment.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.failWith != nil {
		return nil, g.failWith
	}
	g.created = append(g.created, req)
	return &payment.Charge{
		ID:           "mp-1",
		Status:       "pending",
		QRCode:       "000201PIX",
		QRCodeBase64: "iVBOR",
		TicketURL:    "https://pix.example.com/mp-1",
	}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, id string) (*payment.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &payment.Charge{ID: id, Status: g.statuses[id]}, nil
}
