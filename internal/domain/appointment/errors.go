package appointment

import (
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

var (
	ErrProviderNotFound    = availability.ErrProviderNotFound
	ErrEmployeeNotFound    = availability.ErrEmployeeNotFound
	ErrServiceNotFound     = httperr.ErrBusiness("service_not_found")
	ErrAppointmentNotFound = httperr.ErrBusiness("appointment_not_found")
	ErrTimeConflict        = httperr.ErrBusiness("time_conflict")
	ErrSlotUnavailable     = httperr.ErrBusiness("slot_unavailable")
	ErrTooSoon             = httperr.ErrBusiness("too_soon")
	ErrInvalidDateTime     = httperr.ErrBusiness("invalid_date_or_time")
)
