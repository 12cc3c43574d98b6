package appointment

import (
	"context"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// changeStatus loads the booking, applies action and persists it.
func changeStatus(
	ctx context.Context,
	repo domain.Repository,
	deps Deps,
	providerID uint,
	userID *uint,
	appointmentID uint,
	auditAction string,
	action func(ap *models.Appointment) error,
) (*models.Appointment, error) {

	ap, err := repo.GetAppointment(ctx, providerID, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := action(ap); err != nil {
		return nil, err
	}

	if err := repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	deps.dispatch(audit.Event{
		ProviderID: providerID,
		UserID:     userID,
		Action:     auditAction,
		Entity:     "appointment",
		EntityID:   &ap.ID,
	})

	return ap, nil
}

// ======================================================
// CONFIRM
// ======================================================

type ConfirmAppointment struct {
	repo domain.Repository
	deps Deps
}

func NewConfirmAppointment(repo domain.Repository, deps Deps) *ConfirmAppointment {
	return &ConfirmAppointment{repo: repo, deps: deps}
}

func (uc *ConfirmAppointment) Execute(
	ctx context.Context,
	providerID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return changeStatus(ctx, uc.repo, uc.deps, providerID, userID, appointmentID,
		"appointment_confirmed", domain.Confirm)
}

// ======================================================
// CANCEL
// ======================================================

type CancelAppointment struct {
	repo domain.Repository
	deps Deps
}

func NewCancelAppointment(repo domain.Repository, deps Deps) *CancelAppointment {
	return &CancelAppointment{repo: repo, deps: deps}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	providerID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return changeStatus(ctx, uc.repo, uc.deps, providerID, userID, appointmentID,
		"appointment_cancelled", func(ap *models.Appointment) error {
			return domain.Cancel(ap, uc.deps.now().UTC())
		})
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteAppointment struct {
	repo domain.Repository
	deps Deps
}

func NewCompleteAppointment(repo domain.Repository, deps Deps) *CompleteAppointment {
	return &CompleteAppointment{repo: repo, deps: deps}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	providerID uint,
	userID *uint,
	appointmentID uint,
) (*models.Appointment, error) {
	return changeStatus(ctx, uc.repo, uc.deps, providerID, userID, appointmentID,
		"appointment_completed", func(ap *models.Appointment) error {
			return domain.Complete(ap, uc.deps.now().UTC())
		})
}
