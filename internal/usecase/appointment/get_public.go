package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/dto"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
)

// GetPublicAppointment lets a client look up their booking by the token
// returned at creation.
type GetPublicAppointment struct {
	repo domain.Repository
}

func NewGetPublicAppointment(repo domain.Repository) *GetPublicAppointment {
	return &GetPublicAppointment{repo: repo}
}

func (uc *GetPublicAppointment) Execute(
	ctx context.Context,
	providerID uint,
	token string,
) (*dto.PublicAppointmentDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointmentByToken(ctx, providerID, token)
	if err != nil {
		return nil, err
	}

	out := dto.PublicAppointment(ap, timezone.Location(provider.Timezone))
	return &out, nil
}
