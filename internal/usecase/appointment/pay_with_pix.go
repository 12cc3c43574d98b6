package appointment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
)

const defaultPixExpiration = 30 * time.Minute

// PayWithPix attaches a PIX charge to a freshly created booking. A nil
// gateway disables PIX.
type PayWithPix struct {
	repo       domain.Repository
	gateway    payment.Gateway
	deps       Deps
	expiration time.Duration
}

func NewPayWithPix(
	repo domain.Repository,
	gateway payment.Gateway,
	deps Deps,
	expiration time.Duration,
) *PayWithPix {
	if expiration <= 0 {
		expiration = defaultPixExpiration
	}
	return &PayWithPix{
		repo:       repo,
		gateway:    gateway,
		deps:       deps,
		expiration: expiration,
	}
}

func (uc *PayWithPix) Enabled() bool {
	return uc != nil && uc.gateway != nil
}

func (uc *PayWithPix) Execute(
	ctx context.Context,
	provider *models.Provider,
	ap *models.Appointment,
) error {

	if !uc.Enabled() {
		return payment.ErrPixUnavailable
	}
	if ap.Service == nil {
		return domain.ErrServiceNotFound
	}

	ap.PaymentMethod = domain.PaymentMethodPix

	charge, err := uc.gateway.CreatePix(ctx, payment.PixRequest{
		AmountCents:       ap.Service.Price,
		Description:       fmt.Sprintf("Agendamento: %s", ap.Service.Name),
		PayerName:         ap.Client.Name,
		PayerEmail:        ap.Client.Email,
		ExternalReference: strconv.FormatUint(uint64(ap.ID), 10),
		ExpiresAt:         uc.deps.now().Add(uc.expiration),
	})
	if err != nil {
		ap.PaymentStatus = string(domain.PaymentFailed)
		if uerr := uc.repo.UpdateAppointment(ctx, ap); uerr != nil {
			uc.deps.logger().Error("failed to record pix failure",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(uerr),
			)
		}
		return err
	}

	ap.PaymentStatus = string(domain.PaymentPending)
	ap.PaymentID = charge.ID
	ap.PixQRCode = charge.QRCode
	ap.PixQRCodeBase64 = charge.QRCodeBase64
	ap.PixTicketURL = charge.TicketURL

	return uc.repo.UpdateAppointment(ctx, ap)
}
