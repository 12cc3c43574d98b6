package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

// EmployeeHandler manages the staff of company accounts.
type EmployeeHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewEmployeeHandler(db *gorm.DB, log *zap.Logger) *EmployeeHandler {
	return &EmployeeHandler{db: db, log: nopIfNil(log)}
}

type CreateEmployeeRequest struct {
	Name            string `json:"name" binding:"required"`
	Specialty       string `json:"specialty"`
	LunchBreakStart string `json:"lunch_break_start" binding:"omitempty,hhmm"`
	LunchBreakEnd   string `json:"lunch_break_end" binding:"omitempty,hhmm"`
}

type UpdateEmployeeRequest struct {
	Name            *string `json:"name,omitempty"`
	Specialty       *string `json:"specialty,omitempty"`
	LunchBreakStart *string `json:"lunch_break_start,omitempty" binding:"omitempty,hhmm"`
	LunchBreakEnd   *string `json:"lunch_break_end,omitempty" binding:"omitempty,hhmm"`
	Active          *bool   `json:"active,omitempty"`
}

// companyOnly aborts with 403 for individual accounts.
func companyOnly(c *gin.Context) bool {
	if principal(c).AccountType != models.AccountCompany {
		httperr.Forbidden(c, "company_account_required", "Disponível apenas para contas empresa.")
		return false
	}
	return true
}

func validLunch(start, end string) bool {
	if start == "" && end == "" {
		return true
	}
	s, errS := availability.ParseClock(start)
	e, errE := availability.ParseClock(end)
	return errS == nil && errE == nil && e > s
}

func (h *EmployeeHandler) List(c *gin.Context) {
	if !companyOnly(c) {
		return
	}

	var employees []models.Employee
	err := h.db.WithContext(c.Request.Context()).
		Where("company_user_id = ?", principal(c).UserID).
		Order("name ASC").
		Find(&employees).Error
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	if !companyOnly(c) {
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do profissional inválidos.")
		return
	}
	if !validLunch(req.LunchBreakStart, req.LunchBreakEnd) {
		httperr.BadRequest(c, "invalid_lunch_break", "Intervalo de almoço inválido.")
		return
	}

	employee := models.Employee{
		CompanyUserID:   principal(c).UserID,
		Name:            req.Name,
		Specialty:       req.Specialty,
		LunchBreakStart: req.LunchBreakStart,
		LunchBreakEnd:   req.LunchBreakEnd,
		Active:          true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&employee).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.Created(c, employee)
}

func (h *EmployeeHandler) Update(c *gin.Context) {
	if !companyOnly(c) {
		return
	}
	employee, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do profissional inválidos.")
		return
	}

	start, end := employee.LunchBreakStart, employee.LunchBreakEnd
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Specialty != nil {
		updates["specialty"] = *req.Specialty
	}
	if req.LunchBreakStart != nil {
		start = *req.LunchBreakStart
		updates["lunch_break_start"] = start
	}
	if req.LunchBreakEnd != nil {
		end = *req.LunchBreakEnd
		updates["lunch_break_end"] = end
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if !validLunch(start, end) {
		httperr.BadRequest(c, "invalid_lunch_break", "Intervalo de almoço inválido.")
		return
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).Model(employee).Updates(updates).Error; err != nil {
			mapBusinessError(c, h.log, err)
			return
		}
	}

	c.JSON(http.StatusOK, employee)
}

func (h *EmployeeHandler) Delete(c *gin.Context) {
	if !companyOnly(c) {
		return
	}
	employee, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Model(employee).Update("active", false).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *EmployeeHandler) find(c *gin.Context) (*models.Employee, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	var employee models.Employee
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND company_user_id = ?", id, principal(c).UserID).
		First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "employee_not_found", "Profissional não encontrado.")
			return nil, false
		}
		mapBusinessError(c, h.log, err)
		return nil, false
	}
	return &employee, true
}
