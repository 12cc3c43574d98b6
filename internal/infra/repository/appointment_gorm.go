package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/agenda-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db    *gorm.DB
	cache *ProviderCache
	log   *zap.Logger
}

func NewAppointmentGormRepository(db *gorm.DB, cache *ProviderCache, log *zap.Logger) *AppointmentGormRepository {
	if log == nil {
		log = zap.NewNop()
	}
	return &AppointmentGormRepository{db: db, cache: cache, log: log}
}

// --------------------------------------------------
// Provider
// --------------------------------------------------

func (r *AppointmentGormRepository) GetProvider(ctx context.Context, id uint) (*models.Provider, error) {
	var p models.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, notFound(err, domain.ErrProviderNotFound)
	}
	return &p, nil
}

func (r *AppointmentGormRepository) GetProviderByLink(ctx context.Context, linkID string) (*models.Provider, error) {
	var p models.Provider
	if err := r.db.WithContext(ctx).
		Where("link_id = ?", linkID).
		First(&p).Error; err != nil {
		return nil, notFound(err, domain.ErrProviderNotFound)
	}
	return &p, nil
}

// --------------------------------------------------
// Service / Employee
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(ctx context.Context, providerID, serviceID uint) (*models.Service, error) {
	var s models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ? AND provider_id = ? AND active = ?", serviceID, providerID, true).
		First(&s).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &s, nil
}

// GetEmployee only finds active employees of the provider owner's company.
func (r *AppointmentGormRepository) GetEmployee(ctx context.Context, providerID, employeeID uint) (*models.Employee, error) {
	var emp models.Employee
	if err := r.db.WithContext(ctx).
		Select("employees.*").
		Joins("JOIN providers ON providers.user_id = employees.company_user_id").
		Where("providers.id = ? AND employees.id = ? AND employees.active = ?", providerID, employeeID, true).
		First(&emp).Error; err != nil {
		return nil, notFound(err, domain.ErrEmployeeNotFound)
	}
	return &emp, nil
}

// --------------------------------------------------
// Client
// --------------------------------------------------

func (r *AppointmentGormRepository) GetOrCreateClient(
	ctx context.Context,
	providerID uint,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	var client models.Client
	err := r.db.WithContext(ctx).
		Where("provider_id = ? AND phone = ?", providerID, phone).
		First(&client).Error

	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client = models.Client{
		ProviderID: providerID,
		Name:       name,
		Phone:      phone,
		Email:      email,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *AppointmentGormRepository) GetAppointment(ctx context.Context, providerID, appointmentID uint) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.withRelations(ctx).
		Where("id = ? AND provider_id = ?", appointmentID, providerID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByToken(ctx context.Context, providerID uint, token string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.withRelations(ctx).
		Where("public_token = ? AND provider_id = ?", token, providerID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByPaymentID(ctx context.Context, paymentID string) (*models.Appointment, error) {
	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("payment_id = ?", paymentID).
		First(&ap).Error; err != nil {
		return nil, notFound(err, domain.ErrAppointmentNotFound)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	ap.StartTime = ap.StartTime.UTC()
	ap.EndTime = ap.EndTime.UTC()

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error; err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	providerID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var apps []models.Appointment

	err := r.withRelations(ctx).
		Where(
			"provider_id = ? AND start_time >= ? AND start_time < ?",
			providerID,
			start.UTC(),
			end.UTC(),
		).
		Order("start_time ASC").
		Find(&apps).Error

	if err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Availability / transactions
// --------------------------------------------------

func (r *AppointmentGormRepository) Availability() availability.Store {
	return NewAvailabilityGormStore(r.db, r.cache)
}

// WithProviderLock serializes check-and-write per provider. The repository
// handed to fn is bound to the transaction and bypasses the cache.
func (r *AppointmentGormRepository) WithProviderLock(
	ctx context.Context,
	providerID uint,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Provider
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&p, providerID).Error; err != nil {
			return notFound(err, domain.ErrProviderNotFound)
		}

		return fn(&AppointmentGormRepository{db: tx, log: r.log})
	})
}

func (r *AppointmentGormRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Employee")
}

func notFound(err, target error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return target
	}
	return err
}

// mapWriteError turns the overlap exclusion constraint into a business
// conflict.
func mapWriteError(err error) error {
	if httperr.IsExclusionConflict(err) {
		return domain.ErrTimeConflict
	}
	return err
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
