package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type CheckAvailabilityInput struct {
	ProviderID uint
	ServiceID  uint
	EmployeeID *uint

	Date  string
	Time  string
	Start string

	ExcludeAppointmentID uint
}

type CheckAvailabilityOutput struct {
	Provider *models.Provider
	Service  *models.Service
	Decision availability.Decision
}

// CheckAvailability answers an ad hoc "can this slot be booked" question
// without writing anything.
type CheckAvailability struct {
	repo domain.Repository
	deps Deps
}

func NewCheckAvailability(repo domain.Repository, deps Deps) *CheckAvailability {
	return &CheckAvailability{repo: repo, deps: deps}
}

func (uc *CheckAvailability) Execute(
	ctx context.Context,
	in CheckAvailabilityInput,
) (*CheckAvailabilityOutput, error) {

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	start, err := resolveStart(provider, in.Date, in.Time, in.Start)
	if err != nil {
		return nil, domain.ErrInvalidDateTime
	}

	service, err := uc.repo.GetService(ctx, provider.ID, in.ServiceID)
	if err != nil {
		return nil, err
	}

	if in.EmployeeID != nil {
		if _, err := uc.repo.GetEmployee(ctx, provider.ID, *in.EmployeeID); err != nil {
			return nil, err
		}
	}

	decision, err := uc.deps.resolver(uc.repo.Availability()).Check(ctx, availability.Query{
		ProviderID:           provider.ID,
		Start:                start,
		DurationMinutes:      service.Duration,
		EmployeeID:           in.EmployeeID,
		ExcludeAppointmentID: in.ExcludeAppointmentID,
	})
	if err != nil {
		return nil, err
	}
	decision, err = applyEmployeeBreak(ctx, uc.repo.Availability(), provider.ID, in.EmployeeID, decision)
	if err != nil {
		return nil, err
	}

	return &CheckAvailabilityOutput{
		Provider: provider,
		Service:  service,
		Decision: decision,
	}, nil
}
