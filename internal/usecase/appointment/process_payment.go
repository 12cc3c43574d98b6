package appointment

import (
	"context"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
)

// ProcessPaymentNotification reconciles a booking with the gateway after a
// webhook. The notification body is never trusted; the payment is fetched.
type ProcessPaymentNotification struct {
	repo    domain.Repository
	gateway payment.Gateway
	deps    Deps
}

func NewProcessPaymentNotification(
	repo domain.Repository,
	gateway payment.Gateway,
	deps Deps,
) *ProcessPaymentNotification {
	return &ProcessPaymentNotification{
		repo:    repo,
		gateway: gateway,
		deps:    deps,
	}
}

func (uc *ProcessPaymentNotification) Execute(
	ctx context.Context,
	paymentID string,
) (*models.Appointment, error) {

	if uc.gateway == nil {
		return nil, payment.ErrPixUnavailable
	}

	charge, err := uc.gateway.GetPayment(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByPaymentID(ctx, charge.ID)
	if err != nil {
		return nil, err
	}

	status, final := domain.PaymentStatusFromGateway(charge.Status)
	if !final || ap.PaymentStatus == string(status) {
		return ap, nil
	}

	domain.ApplyPayment(ap, status)

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.deps.dispatch(audit.Event{
		ProviderID: ap.ProviderID,
		Action:     "payment_" + string(status),
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]string{
			"payment_id":     charge.ID,
			"gateway_status": charge.Status,
		},
	})

	return ap, nil
}
