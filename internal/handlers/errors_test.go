package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

func TestMapBusinessError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found suffix", httperr.ErrBusiness("service_not_found"), http.StatusNotFound, "service_not_found"},
		{"wrapped conflict", fmt.Errorf("create: %w", httperr.ErrBusiness("time_conflict")), http.StatusConflict, "time_conflict"},
		{"slot unavailable", httperr.ErrBusiness("slot_unavailable"), http.StatusConflict, "slot_unavailable"},
		{"reschedule limit", httperr.ErrBusiness("reschedule_limit_reached"), http.StatusConflict, "reschedule_limit_reached"},
		{"invalid state", httperr.ErrBusiness("invalid_state"), http.StatusConflict, "invalid_state"},
		{"gateway", httperr.ErrBusiness("payment_gateway_error"), http.StatusBadGateway, "payment_gateway_error"},
		{"too soon", httperr.ErrBusiness("too_soon"), http.StatusBadRequest, "too_soon"},
		{"unknown code", httperr.ErrBusiness("something_new"), http.StatusBadRequest, "something_new"},
		{"exclusion constraint", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23P01"}), http.StatusConflict, "time_conflict"},
		{"unique violation", &pgconn.PgError{Code: "23505"}, http.StatusInternalServerError, "internal_error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			mapBusinessError(c, zap.NewNop(), tc.err)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			if want := `"error_code":"` + tc.code + `"`; !strings.Contains(rec.Body.String(), want) {
				t.Fatalf("expected %s in %s", want, rec.Body.String())
			}
		})
	}
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for raw, ok := range map[string]bool{"7": true, "0": false, "-1": false, "abc": false, "": false} {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Params = gin.Params{{Key: "id", Value: raw}}

		id, got := parseIDParam(c, "id")
		if got != ok {
			t.Fatalf("%q: expected ok=%v, got %v", raw, ok, got)
		}
		if ok && id != 7 {
			t.Fatalf("%q: expected 7, got %d", raw, id)
		}
		if !ok && rec.Code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", raw, rec.Code)
		}
	}
}
