package handlers

import (
	"time"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/payment"
	ucAppointment "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/appointment"
)

// AppointmentUseCases groups the scheduling use cases shared by the staff,
// public and webhook handlers.
type AppointmentUseCases struct {
	Repo domain.Repository

	Create         *ucAppointment.CreateAppointment
	Confirm        *ucAppointment.ConfirmAppointment
	Cancel         *ucAppointment.CancelAppointment
	Complete       *ucAppointment.CompleteAppointment
	Reschedule     *ucAppointment.RescheduleAppointment
	ListByDate     *ucAppointment.ListAppointmentsByDate
	ListByMonth    *ucAppointment.ListAppointmentsByMonth
	GetPublic      *ucAppointment.GetPublicAppointment
	Check          *ucAppointment.CheckAvailability
	DaySlots       *ucAppointment.GetDaySlots
	ProcessPayment *ucAppointment.ProcessPaymentNotification
}

// NewAppointmentUseCases wires every use case over repo. gateway may be nil,
// which disables PIX.
func NewAppointmentUseCases(
	repo domain.Repository,
	deps ucAppointment.Deps,
	gateway payment.Gateway,
	pixExpiration time.Duration,
) *AppointmentUseCases {
	var pix *ucAppointment.PayWithPix
	if gateway != nil {
		pix = ucAppointment.NewPayWithPix(repo, gateway, deps, pixExpiration)
	}

	return &AppointmentUseCases{
		Repo:           repo,
		Create:         ucAppointment.NewCreateAppointment(repo, deps, pix),
		Confirm:        ucAppointment.NewConfirmAppointment(repo, deps),
		Cancel:         ucAppointment.NewCancelAppointment(repo, deps),
		Complete:       ucAppointment.NewCompleteAppointment(repo, deps),
		Reschedule:     ucAppointment.NewRescheduleAppointment(repo, deps),
		ListByDate:     ucAppointment.NewListAppointmentsByDate(repo),
		ListByMonth:    ucAppointment.NewListAppointmentsByMonth(repo),
		GetPublic:      ucAppointment.NewGetPublicAppointment(repo),
		Check:          ucAppointment.NewCheckAvailability(repo, deps),
		DaySlots:       ucAppointment.NewGetDaySlots(repo, deps),
		ProcessPayment: ucAppointment.NewProcessPaymentNotification(repo, gateway, deps),
	}
}
