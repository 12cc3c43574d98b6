package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProviderID uint
	// UserID is the staff member creating the booking; nil for public
	// bookings.
	UserID *uint
	Public bool

	ServiceID  uint
	EmployeeID *uint

	Date  string
	Time  string
	Start string

	ClientName  string
	ClientPhone string
	ClientEmail string
	Notes       string

	PaymentMethod string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo domain.Repository
	deps Deps
	pix  *PayWithPix
}

func NewCreateAppointment(
	repo domain.Repository,
	deps Deps,
	pix *PayWithPix,
) *CreateAppointment {
	return &CreateAppointment{
		repo: repo,
		deps: deps,
		pix:  pix,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Prestador
	// --------------------------------------------------
	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	wantsPix := in.PaymentMethod == domain.PaymentMethodPix
	if wantsPix && (!provider.PixEnabled || !uc.pix.Enabled()) {
		return nil, payment.ErrPixUnavailable
	}

	// --------------------------------------------------
	// 2️⃣ Data / hora no timezone do prestador
	// --------------------------------------------------
	start, err := resolveStart(provider, in.Date, in.Time, in.Start)
	if err != nil {
		return nil, domain.ErrInvalidDateTime
	}

	// --------------------------------------------------
	// 3️⃣ Antecedência mínima (só reservas públicas)
	// --------------------------------------------------
	if in.Public {
		now := uc.deps.now()
		minAdvance := time.Duration(provider.MinAdvanceMinutes) * time.Minute
		if start.Before(now.Add(minAdvance)) {
			return nil, domain.ErrTooSoon
		}
	}

	// --------------------------------------------------
	// 4️⃣ Serviço e profissional
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, provider.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if in.EmployeeID != nil {
		if _, err := uc.repo.GetEmployee(ctx, provider.ID, *in.EmployeeID); err != nil {
			return nil, err
		}
	}

	// --------------------------------------------------
	// 5️⃣ Verificação + criação atômicas por prestador
	// --------------------------------------------------
	var ap *models.Appointment

	err = uc.repo.WithProviderLock(ctx, provider.ID, func(tx domain.Repository) error {
		decision, err := uc.deps.resolver(tx.Availability()).Check(ctx, availability.Query{
			ProviderID:      provider.ID,
			Start:           start,
			DurationMinutes: service.Duration,
			EmployeeID:      in.EmployeeID,
		})
		if err != nil {
			return err
		}
		decision, err = applyEmployeeBreak(ctx, tx.Availability(), provider.ID, in.EmployeeID, decision)
		if err != nil {
			return err
		}
		if !decision.Available {
			uc.deps.logger().Info("booking rejected",
				zap.Uint("provider_id", provider.ID),
				zap.Time("start", decision.Start),
				zap.String("reason", string(decision.Reason)),
				zap.Uint("conflict_with", decision.ConflictWith),
			)
			return unavailableError(decision)
		}

		client, err := tx.GetOrCreateClient(ctx, provider.ID, in.ClientName, in.ClientPhone, in.ClientEmail)
		if err != nil {
			return err
		}

		ap = &models.Appointment{
			ProviderID:  provider.ID,
			EmployeeID:  in.EmployeeID,
			ClientID:    client.ID,
			ServiceID:   service.ID,
			StartTime:   decision.Start,
			EndTime:     decision.End,
			Status:      string(domain.InitialStatus(in.Public)),
			Notes:       in.Notes,
			PublicToken: uuid.NewString(),
		}
		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		ap.Client = *client
		ap.Service = service
		return nil
	})
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6️⃣ PIX
	// --------------------------------------------------
	if wantsPix {
		if err := uc.pix.Execute(ctx, provider, ap); err != nil {
			uc.deps.logger().Warn("pix charge failed",
				zap.Uint("appointment_id", ap.ID),
				zap.Error(err),
			)
		}
	}

	// --------------------------------------------------
	// 7️⃣ Auditoria
	// --------------------------------------------------
	uc.deps.dispatch(audit.Event{
		ProviderID: provider.ID,
		UserID:     in.UserID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"public":      in.Public,
			"employee_id": in.EmployeeID,
			"start":       ap.StartTime,
		},
	})

	return ap, nil
}

// PixEnabled reports whether PIX charges can be issued at all.
func (uc *CreateAppointment) PixEnabled() bool {
	return uc.pix.Enabled()
}
