package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/agenda-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	uc  *AppointmentUseCases
	log *zap.Logger
}

func NewAvailabilityHandler(uc *AppointmentUseCases, log *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc, log: nopIfNil(log)}
}

type CheckAvailabilityQuery struct {
	ServiceID  uint   `form:"service_id" binding:"required"`
	EmployeeID *uint  `form:"employee_id"`
	Date       string `form:"date" binding:"required_without=Start,omitempty,ymd"`
	Time       string `form:"time" binding:"required_without=Start,omitempty,hhmm"`
	Start      string `form:"start"`

	ExcludeAppointmentID uint `form:"exclude_appointment_id"`
}

type DaySlotsQuery struct {
	Date       string `form:"date" binding:"required,ymd"`
	ServiceID  *uint  `form:"service_id"`
	EmployeeID *uint  `form:"employee_id"`
}

// ------------------------------
// Response bodies
// ------------------------------

type providerBody struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type serviceBody struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Price    int    `json:"price"`
}

type AvailabilityResponse struct {
	Available    bool         `json:"available"`
	Reason       string       `json:"reason,omitempty"`
	ConflictWith uint         `json:"conflict_with,omitempty"`
	Provider     providerBody `json:"provider"`
	Service      serviceBody  `json:"service"`
	Date         string       `json:"date"`
	Start        string       `json:"start"`
	End          string       `json:"end"`
	Weekday      int          `json:"weekday"`
	Timezone     string       `json:"timezone"`
}

type DaySlotsResponse struct {
	Provider providerBody        `json:"provider"`
	Service  *serviceBody        `json:"service,omitempty"`
	Date     string              `json:"date"`
	Weekday  int                 `json:"weekday"`
	Timezone string              `json:"timezone"`
	Closed   bool                `json:"closed"`
	Slots    []availability.Slot `json:"slots"`
}

func newProviderBody(p *models.Provider) providerBody {
	return providerBody{ID: p.ID, Name: p.Name}
}

func newServiceBody(s *models.Service) serviceBody {
	return serviceBody{ID: s.ID, Name: s.Name, Duration: s.Duration, Price: s.Price}
}

func newAvailabilityResponse(out *ucAppointment.CheckAvailabilityOutput) AvailabilityResponse {
	d := out.Decision
	return AvailabilityResponse{
		Available:    d.Available,
		Reason:       string(d.Reason),
		ConflictWith: d.ConflictWith,
		Provider:     newProviderBody(out.Provider),
		Service:      newServiceBody(out.Service),
		Date:         d.Start.Format("2006-01-02"),
		Start:        d.Start.Format(time.RFC3339),
		End:          d.End.Format(time.RFC3339),
		Weekday:      d.Weekday,
		Timezone:     d.Location.String(),
	}
}

func newDaySlotsResponse(out *ucAppointment.DaySlotsOutput) DaySlotsResponse {
	g := out.Grid
	resp := DaySlotsResponse{
		Provider: newProviderBody(out.Provider),
		Date:     g.Date.Format("2006-01-02"),
		Weekday:  g.Weekday,
		Timezone: g.Location.String(),
		Closed:   g.Closed,
		Slots:    g.List(),
	}
	if out.Service != nil {
		s := newServiceBody(out.Service)
		resp.Service = &s
	}
	return resp
}

// ======================================================
// STAFF
// ======================================================

func (h *AvailabilityHandler) Check(c *gin.Context) {
	var q CheckAvailabilityQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetros de consulta inválidos.")
		return
	}

	out, err := h.uc.Check.Execute(c.Request.Context(), ucAppointment.CheckAvailabilityInput{
		ProviderID:           principal(c).ProviderID,
		ServiceID:            q.ServiceID,
		EmployeeID:           q.EmployeeID,
		Date:                 q.Date,
		Time:                 q.Time,
		Start:                q.Start,
		ExcludeAppointmentID: q.ExcludeAppointmentID,
	})
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, newAvailabilityResponse(out))
}

func (h *AvailabilityHandler) Slots(c *gin.Context) {
	var q DaySlotsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httperr.BadRequest(c, "invalid_request", "Parâmetros de consulta inválidos.")
		return
	}

	out, err := h.uc.DaySlots.Execute(c.Request.Context(), ucAppointment.DaySlotsInput{
		ProviderID: principal(c).ProviderID,
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
