package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/dto"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves the booking link shared with clients. Providers are
// addressed by their LinkID, appointments by their public token.
type PublicHandler struct {
	db  *gorm.DB
	uc  *AppointmentUseCases
	log *zap.Logger
}

func NewPublicHandler(db *gorm.DB, uc *AppointmentUseCases, log *zap.Logger) *PublicHandler {
	return &PublicHandler{db: db, uc: uc, log: nopIfNil(log)}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`

	ServiceID  uint  `json:"service_id" binding:"required"`
	EmployeeID *uint `json:"employee_id"`

	Date  string `json:"date" binding:"required_without=Start,omitempty,ymd"`  // YYYY-MM-DD
	Time  string `json:"time" binding:"required_without=Start,omitempty,hhmm"` // HH:mm
	Start string `json:"start"`

	PaymentMethod string `json:"payment_method" binding:"omitempty,oneof=pix"`
	Notes         string `json:"notes" binding:"max=255"`
}

type publicProviderBody struct {
	Name              string           `json:"name"`
	Phone             string           `json:"phone"`
	Timezone          string           `json:"timezone"`
	WorkingHoursStart int              `json:"working_hours_start"`
	WorkingHoursEnd   int              `json:"working_hours_end"`
	WorkingDays       []int            `json:"working_days"`
	MinAdvanceMinutes int              `json:"min_advance_minutes"`
	PixEnabled        bool             `json:"pix_enabled"`
	Services          []serviceBody    `json:"services"`
	Employees         []publicEmployee `json:"employees,omitempty"`
}

type publicEmployee struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

////////////////////////////////////////////////////////
// PROVIDER
////////////////////////////////////////////////////////

func (h *PublicHandler) provider(c *gin.Context) (*models.Provider, bool) {
	provider, err := h.uc.Repo.GetProviderByLink(c.Request.Context(), c.Param("link"))
	if err != nil {
		mapBusinessError(c, h.log, err)
		return nil, false
	}
	return provider, true
}

func (h *PublicHandler) GetProvider(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	var services []models.Service
	if err := h.db.WithContext(ctx).
		Where("provider_id = ? AND active = ?", provider.ID, true).
		Order("name ASC").
		Find(&services).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	body := publicProviderBody{
		Name:              provider.Name,
		Phone:             provider.Phone,
		Timezone:          timezone.Location(provider.Timezone).String(),
		WorkingHoursStart: provider.WorkingHoursStart,
		WorkingHoursEnd:   provider.WorkingHoursEnd,
		WorkingDays:       availability.ParseWorkingDays(provider.WorkingDays),
		MinAdvanceMinutes: provider.MinAdvanceMinutes,
		PixEnabled:        provider.PixEnabled && h.uc.Create.PixEnabled(),
		Services:          make([]serviceBody, 0, len(services)),
	}
	for i := range services {
		body.Services = append(body.Services, newServiceBody(&services[i]))
	}

	var employees []models.Employee
	if err := h.db.WithContext(ctx).
		Select("employees.*").
		Joins("JOIN users ON users.id = employees.company_user_id").
		Where("employees.company_user_id = ? AND employees.active = ? AND users.account_type = ?",
			provider.UserID, true, models.AccountCompany).
		Order("employees.name ASC").
		Find(&employees).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}
	for _, e := range employees {
		body.Employees = append(body.Employees, publicEmployee{ID: e.ID, Name: e.Name, Specialty: e.Specialty})
	}

	c.JSON(http.StatusOK, body)
}

////////////////////////////////////////////////////////
// SLOTS
////////////////////////////////////////////////////////

func (h *PublicHandler) Slots(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	var q DaySlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetros de consulta inválidos.")
		return
	}

	out, err := h.uc.DaySlots.Execute(c.Request.Context(), ucAppointment.DaySlotsInput{
		ProviderID: provider.ID,
		Date:       q.Date,
		ServiceID:  q.ServiceID,
		EmployeeID: q.EmployeeID,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newDaySlotsResponse(out))
}

////////////////////////////////////////////////////////
// APPOINTMENTS
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do agendamento inválidos.")
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ProviderID:    provider.ID,
		Public:        true,
		ServiceID:     req.ServiceID,
		EmployeeID:    req.EmployeeID,
		Date:          req.Date,
		Time:          req.Time,
		Start:         req.Start,
		ClientName:    req.ClientName,
		ClientPhone:   req.ClientPhone,
		ClientEmail:   req.ClientEmail,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, dto.PublicAppointment(ap, timezone.Location(provider.Timezone)))
}

func (h *PublicHandler) GetAppointment(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	out, err := h.uc.GetPublic.Execute(c.Request.Context(), provider.ID, c.Param("token"))
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, out)
}

func (h *PublicHandler) RescheduleAppointment(c *gin.Context) {
	provider, ok := h.provider(c)
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nova data ou horário inválidos.")
		return
	}

	ap, err := h.uc.Reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		ProviderID: provider.ID,
		Token:      c.Param("token"),
		Date:       req.Date,
		Time:       req.Time,
		Start:      req.Start,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, dto.PublicAppointment(ap, timezone.Location(provider.Timezone)))
}
