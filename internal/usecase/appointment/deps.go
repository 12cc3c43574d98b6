package appointment

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
)

// Deps is shared by every scheduling use case.
type Deps struct {
	Audit       *audit.Dispatcher
	Log         *zap.Logger
	Now         func() time.Time
	SlotMinutes int
}

func (d Deps) logger() *zap.Logger {
	if d.Log == nil {
		return zap.NewNop()
	}
	return d.Log
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// resolver builds a Resolver over store, which is the transaction-bound
// store when called from inside WithProviderLock.
func (d Deps) resolver(store availability.Store) *availability.Resolver {
	return availability.NewResolver(store, d.logger(),
		availability.WithClock(d.now),
		availability.WithSlotMinutes(d.SlotMinutes),
	)
}

func (d Deps) dispatch(ev audit.Event) {
	d.Audit.Dispatch(ev)
}

// resolveStart reads either an ISO instant or a date + HH:MM pair in the
// provider's timezone.
func resolveStart(provider *models.Provider, date, hm, iso string) (time.Time, error) {
	if iso != "" {
		return timezone.ParseInstant(provider.Timezone, iso)
	}
	return timezone.ParseDateTime(provider.Timezone, date, hm)
}

// applyEmployeeBreak marks an available decision unavailable when its start
// falls inside the assigned employee's lunch break, the same rule the day
// grid applies to its slots.
func applyEmployeeBreak(
	ctx context.Context,
	store availability.Store,
	providerID uint,
	employeeID *uint,
	d availability.Decision,
) (availability.Decision, error) {
	if !d.Available || employeeID == nil {
		return d, nil
	}

	lunch, err := store.EmployeeBreak(ctx, providerID, *employeeID)
	if err != nil {
		return d, err
	}

	local := d.Start
	if d.Location != nil {
		local = local.In(d.Location)
	}
	if availability.InLunchBreak(lunch, local.Hour()*60+local.Minute()) {
		d.Available = false
		d.Reason = availability.ReasonEmployeeBreak
	}
	return d, nil
}

// unavailableError maps a negative decision to the error returned to callers.
func unavailableError(d availability.Decision) error {
	if d.Reason == availability.ReasonConflict {
		return domain.ErrTimeConflict
	}
	return domain.ErrSlotUnavailable
}
