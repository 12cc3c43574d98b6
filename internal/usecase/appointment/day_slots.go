package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
)

type DaySlotsInput struct {
	ProviderID uint
	Date       string

	// ServiceID, when set, makes every slot check the service duration.
	ServiceID  *uint
	EmployeeID *uint
}

type DaySlotsOutput struct {
	Provider *models.Provider
	Service  *models.Service
	Grid     *availability.DayGrid
}

type GetDaySlots struct {
	repo domain.Repository
	deps Deps
}

func NewGetDaySlots(repo domain.Repository, deps Deps) *GetDaySlots {
	return &GetDaySlots{repo: repo, deps: deps}
}

func (uc *GetDaySlots) Execute(ctx context.Context, in DaySlotsInput) (*DaySlotsOutput, error) {
	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	date, err := timezone.ParseDate(provider.Timezone, in.Date)
	if err != nil {
		return nil, domain.ErrInvalidDateTime
	}

	out := &DaySlotsOutput{Provider: provider}

	q := availability.DayQuery{
		ProviderID: provider.ID,
		Date:       date,
		EmployeeID: in.EmployeeID,
	}

	if in.ServiceID != nil {
		out.Service, err = uc.repo.GetService(ctx, provider.ID, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		q.DurationMinutes = out.Service.Duration
	}

	out.Grid, err = uc.deps.resolver(uc.repo.Availability()).DayGrid(ctx, q)
	if err != nil {
		return nil, err
	}

	return out, nil
}
