package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-scheduler/internal/dto"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	uc  *AppointmentUseCases
	log *zap.Logger
}

func NewAppointmentHandler(uc *AppointmentUseCases, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{uc: uc, log: nopIfNil(log)}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email" binding:"omitempty,email"`

	ServiceID  uint  `json:"service_id" binding:"required"`
	EmployeeID *uint `json:"employee_id"`

	Date  string `json:"date" binding:"required_without=Start,omitempty,ymd"`
	Time  string `json:"time" binding:"required_without=Start,omitempty,hhmm"`
	Start string `json:"start"`

	Notes string `json:"notes" binding:"max=255"`
}

type RescheduleAppointmentRequest struct {
	Date  string `json:"date" binding:"required_without=Start,omitempty,ymd"`
	Time  string `json:"time" binding:"required_without=Start,omitempty,hhmm"`
	Start string `json:"start"`
}

// ======================================================
// HELPERS
// ======================================================

func (h *AppointmentHandler) location(ctx context.Context, providerID uint) *time.Location {
	provider, err := h.uc.Repo.GetProvider(ctx, providerID)
	if err != nil {
		return timezone.Location("")
	}
	return timezone.Location(provider.Timezone)
}

func (h *AppointmentHandler) respond(c *gin.Context, status int, ap *models.Appointment) {
	out := dto.AppointmentList(*ap, h.location(c.Request.Context(), ap.ProviderID))
	c.JSON(status, out)
}

// ======================================================
// CREATE (STAFF)
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	p := principal(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do agendamento inválidos.")
		return
	}

	ap, err := h.uc.Create.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ProviderID:  p.ProviderID,
		UserID:      &p.UserID,
		ServiceID:   req.ServiceID,
		EmployeeID:  req.EmployeeID,
		Date:        req.Date,
		Time:        req.Time,
		Start:       req.Start,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		Notes:       req.Notes,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	h.respond(c, http.StatusCreated, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	p := principal(c)

	date := c.Query("date")
	if date == "" {
		date = time.Now().In(h.location(c.Request.Context(), p.ProviderID)).Format("2006-01-02")
	}

	list, err := h.uc.ListByDate.Execute(c.Request.Context(), p.ProviderID, date)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) ListByMonth(c *gin.Context) {
	p := principal(c)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil {
		httperr.BadRequest(c, "invalid_date_or_time", "Informe ano e mês válidos.")
		return
	}

	list, err := h.uc.ListByMonth.Execute(c.Request.Context(), p.ProviderID, year, month)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

// ======================================================
// STATUS
// ======================================================

type statusChange func(ctx context.Context, providerID uint, userID *uint, appointmentID uint) (*models.Appointment, error)

func (h *AppointmentHandler) changeStatus(c *gin.Context, run statusChange) {
	p := principal(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), p.ProviderID, &p.UserID, id)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	h.respond(c, http.StatusOK, ap)
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.changeStatus(c, h.uc.Confirm.Execute)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.changeStatus(c, h.uc.Cancel.Execute)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.changeStatus(c, h.uc.Complete.Execute)
}

// ======================================================
// RESCHEDULE (STAFF)
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	p := principal(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Nova data ou horário inválidos.")
		return
	}

	ap, err := h.uc.Reschedule.Execute(c.Request.Context(), ucAppointment.RescheduleAppointmentInput{
		ProviderID:    p.ProviderID,
		UserID:        &p.UserID,
		AppointmentID: id,
		Date:          req.Date,
		Time:          req.Time,
		Start:         req.Start,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	h.respond(c, http.StatusOK, ap)
}
