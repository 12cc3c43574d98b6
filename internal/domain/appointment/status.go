package appointment

import "github.com/BruksfildServices01/agenda-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// LiveStatuses are the statuses that occupy the calendar.
var LiveStatuses = []string{string(StatusPending), string(StatusConfirmed)}

func (s Status) IsLive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// MaxReschedules is how many times a booking may be moved.
const MaxReschedules = 1

var (
	ErrInvalidState           = httperr.ErrBusiness("invalid_state")
	ErrRescheduleLimitReached = httperr.ErrBusiness("reschedule_limit_reached")
)

// ===============================
// Validations
// ===============================

// CanConfirm: só agendamentos pendentes
func CanConfirm(current Status) error {
	if current != StatusPending {
		return ErrInvalidState
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if !current.IsLive() {
		return ErrInvalidState
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if !current.IsLive() {
		return ErrInvalidState
	}
	return nil
}

func CanReschedule(current Status, count int) error {
	if !current.IsLive() {
		return ErrInvalidState
	}
	if count >= MaxReschedules {
		return ErrRescheduleLimitReached
	}
	return nil
}

// InitialStatus: reservas públicas aguardam confirmação, as do painel já
// nascem confirmadas.
func InitialStatus(public bool) Status {
	if public {
		return StatusPending
	}
	return StatusConfirmed
}
