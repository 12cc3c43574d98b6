package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/middleware"
)

// ======================================================
// BUSINESS ERRORS → HTTP
// ======================================================

var businessMessages = map[string]string{
	"provider_not_found":       "Prestador não encontrado.",
	"service_not_found":        "Serviço não encontrado.",
	"employee_not_found":       "Profissional não encontrado.",
	"appointment_not_found":    "Agendamento não encontrado.",
	"time_conflict":            "Conflito de horário.",
	"slot_unavailable":         "Horário indisponível.",
	"too_soon":                 "Horário com antecedência insuficiente.",
	"invalid_date_or_time":     "Data ou hora inválida.",
	"invalid_input":            "Dados inválidos.",
	"invalid_state":            "Operação não permitida para o status atual.",
	"reschedule_limit_reached": "Este agendamento já foi remarcado.",
	"pix_unavailable":          "Pagamento via PIX indisponível.",
	"payment_gateway_error":    "Falha ao comunicar com o meio de pagamento.",
}

func statusForCode(code string) int {
	switch {
	case strings.HasSuffix(code, "_not_found"):
		return http.StatusNotFound
	case code == "time_conflict", code == "slot_unavailable",
		code == "reschedule_limit_reached", code == "invalid_state":
		return http.StatusConflict
	case code == "payment_gateway_error":
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

// mapBusinessError writes the response for err. Errors without a business
// code are logged and reported as 500.
func mapBusinessError(c *gin.Context, log *zap.Logger, err error) {
	if code, ok := httperr.Code(err); ok {
		msg, known := businessMessages[code]
		if !known {
			msg = "Requisição inválida."
		}
		httperr.Write(c, statusForCode(code), code, msg)
		return
	}

	if httperr.IsExclusionConflict(err) {
		httperr.Conflict(c, "time_conflict", businessMessages["time_conflict"])
		return
	}

	log.Error("unexpected error",
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	httperr.Internal(c, "internal_error", "Erro interno.")
}

// ======================================================
// HELPERS
// ======================================================

func principal(c *gin.Context) middleware.Principal {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		panic("handlers: route registered without AuthMiddleware")
	}
	return p
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
