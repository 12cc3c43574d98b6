package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type Repository interface {
	// -------- Provider --------
	GetProvider(ctx context.Context, id uint) (*models.Provider, error)
	GetProviderByLink(ctx context.Context, linkID string) (*models.Provider, error)

	// -------- Service / Employee --------
	GetService(ctx context.Context, providerID, serviceID uint) (*models.Service, error)
	GetEmployee(ctx context.Context, providerID, employeeID uint) (*models.Employee, error)

	// -------- Client --------
	GetOrCreateClient(
		ctx context.Context,
		providerID uint,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	// -------- Appointment --------
	CreateAppointment(ctx context.Context, ap *models.Appointment) error
	GetAppointment(ctx context.Context, providerID, appointmentID uint) (*models.Appointment, error)
	GetAppointmentByToken(ctx context.Context, providerID uint, token string) (*models.Appointment, error)
	GetAppointmentByPaymentID(ctx context.Context, paymentID string) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, ap *models.Appointment) error

	ListAppointmentsForPeriod(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Availability --------
	Availability() availability.Store

	// WithProviderLock runs fn in a transaction holding the provider row
	// lock. Every read fn does must go through the Repository it receives.
	WithProviderLock(ctx context.Context, providerID uint, fn func(tx Repository) error) error
}
