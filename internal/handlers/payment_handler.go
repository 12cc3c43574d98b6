package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
)

// PaymentHandler receives Mercado Pago notifications.
type PaymentHandler struct {
	uc  *AppointmentUseCases
	log *zap.Logger
}

func NewPaymentHandler(uc *AppointmentUseCases, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{uc: uc, log: nopIfNil(log)}
}

type MercadoPagoNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// MercadoPagoWebhook answers 2xx for anything that should not be retried.
// Mercado Pago may also send the fields as query parameters.
func (h *PaymentHandler) MercadoPagoWebhook(c *gin.Context) {
	var n MercadoPagoNotification
	_ = c.ShouldBindJSON(&n)

	if n.Type == "" {
		n.Type = c.Query("type")
	}
	if n.Data.ID == "" {
		n.Data.ID = c.Query("data.id")
	}

	if n.Type != "payment" || n.Data.ID == "" {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	ap, err := h.uc.ProcessPayment.Execute(c.Request.Context(), n.Data.ID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"status":         "processed",
			"appointment_id": ap.ID,
			"payment_status": ap.PaymentStatus,
		})
	case errors.Is(err, domain.ErrAppointmentNotFound):
		h.log.Warn("payment notification for unknown appointment", zap.String("payment_id", n.Data.ID))
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
	case errors.Is(err, payment.ErrPixUnavailable):
		httperr.Write(c, http.StatusServiceUnavailable, "pix_unavailable", "Pagamento via PIX indisponível.")
	default:
		mapBusinessError(c, h.log, err)
	}
}
