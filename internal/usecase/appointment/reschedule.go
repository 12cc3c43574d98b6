package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type RescheduleAppointmentInput struct {
	ProviderID uint
	UserID     *uint

	// Exactly one of AppointmentID (staff) or Token (client) identifies the
	// booking.
	AppointmentID uint
	Token         string

	Date  string
	Time  string
	Start string
}

type RescheduleAppointment struct {
	repo domain.Repository
	deps Deps
}

func NewRescheduleAppointment(repo domain.Repository, deps Deps) *RescheduleAppointment {
	return &RescheduleAppointment{repo: repo, deps: deps}
}

func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	start, err := resolveStart(provider, in.Date, in.Time, in.Start)
	if err != nil {
		return nil, domain.ErrInvalidDateTime
	}

	// clients moving their own booking respect the minimum advance
	if in.Token != "" {
		minAdvance := time.Duration(provider.MinAdvanceMinutes) * time.Minute
		if start.Before(uc.deps.now().Add(minAdvance)) {
			return nil, domain.ErrTooSoon
		}
	}

	var (
		ap       *models.Appointment
		previous time.Time
	)

	err = uc.repo.WithProviderLock(ctx, provider.ID, func(tx domain.Repository) error {
		var err error
		if in.Token != "" {
			ap, err = tx.GetAppointmentByToken(ctx, provider.ID, in.Token)
		} else {
			ap, err = tx.GetAppointment(ctx, provider.ID, in.AppointmentID)
		}
		if err != nil {
			return err
		}

		if err := domain.CanReschedule(domain.Status(ap.Status), ap.RescheduleCount); err != nil {
			return err
		}

		duration := int(ap.EndTime.Sub(ap.StartTime) / time.Minute)
		if ap.Service != nil && ap.Service.Duration > 0 {
			duration = ap.Service.Duration
		}

		decision, err := uc.deps.resolver(tx.Availability()).Check(ctx, availability.Query{
			ProviderID:           provider.ID,
			Start:                start,
			DurationMinutes:      duration,
			EmployeeID:           ap.EmployeeID,
			ExcludeAppointmentID: ap.ID,
		})
		if err != nil {
			return err
		}
		decision, err = applyEmployeeBreak(ctx, tx.Availability(), provider.ID, ap.EmployeeID, decision)
		if err != nil {
			return err
		}
		if !decision.Available {
			uc.deps.logger().Info("reschedule rejected",
				zap.Uint("appointment_id", ap.ID),
				zap.String("reason", string(decision.Reason)),
			)
			return unavailableError(decision)
		}

		previous = ap.StartTime
		if err := domain.Reschedule(ap, decision.Start, decision.End); err != nil {
			return err
		}
		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, err
	}

	uc.deps.dispatch(audit.Event{
		ProviderID: provider.ID,
		UserID:     in.UserID,
		Action:     "appointment_rescheduled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   ap.StartTime,
		},
	})

	return ap, nil
}
