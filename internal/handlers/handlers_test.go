package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/config"
	"github.com/BruksfildServices01/agenda-scheduler/internal/middleware"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/routes"
	"github.com/BruksfildServices01/agenda-scheduler/internal/testutil"
	"github.com/BruksfildServices01/agenda-scheduler/internal/validators"
)

const (
	tuesday = "2026-03-03"
	sunday  = "2026-03-08"
	secret  = "test-secret"
)

// sunday before tuesday
var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validators.Register(); err != nil {
		panic(err)
	}
}

type testApp struct {
	t      *testing.T
	db     *gorm.DB
	engine *gin.Engine
}

func newApp(t *testing.T, opts ...func(*routes.Deps)) *testApp {
	t.Helper()

	gdb := testutil.NewDB(t)

	deps := routes.Deps{
		DB: gdb,
		Config: &config.Config{
			JWTSecret:            secret,
			DefaultTimezone:      "UTC",
			SlotMinutes:          30,
			PixExpirationMinutes: 30,
		},
		Log:          zap.NewNop(),
		EmailChecker: func(context.Context, string) bool { return true },
		Now:          func() time.Time { return fixedNow },
	}
	for _, opt := range opts {
		opt(&deps)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	routes.RegisterRoutes(r, deps)

	return &testApp{t: t, db: gdb, engine: r}
}

func (a *testApp) token(p *models.Provider) string {
	a.t.Helper()

	var user models.User
	if err := a.db.First(&user, p.UserID).Error; err != nil {
		a.t.Fatalf("load user: %v", err)
	}

	tok, err := middleware.IssueToken(secret, middleware.Principal{
		UserID:      user.ID,
		ProviderID:  p.ID,
		AccountType: user.AccountType,
	}, time.Now())
	if err != nil {
		a.t.Fatalf("issue token: %v", err)
	}
	return tok
}

func (a *testApp) do(method, path, token string, body any) *httptest.ResponseRecorder {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

type errorBody struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected %d %s, got %d: %s", status, code, rec.Code, rec.Body.String())
	}
	if got := decode[errorBody](t, rec); got.Code != code {
		t.Fatalf("expected error_code %q, got %q", code, got.Code)
	}
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()

	if rec.Code != status {
		t.Fatalf("expected %d, got %d: %s", status, rec.Code, rec.Body.String())
	}
}

type fakeGateway struct {
	mu       sync.Mutex
	statuses map[string]string
}

func (g *fakeGateway) CreatePix(_ context.Context, req payment.PixRequest) (*payment.Charge, error) {
	return &payment.Charge{
		ID:                "mp-" + req.ExternalReference,
		Status:            "pending",
		ExternalReference: req.ExternalReference,
		QRCode:            "000201PIX",
		QRCodeBase64:      "iVBOR",
		TicketURL:         "https://pix.example.com/" + req.ExternalReference,
	}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, id string) (*payment.Charge, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return &payment.Charge{ID: id, Status: g.statuses[id]}, nil
}
