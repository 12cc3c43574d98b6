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

// TimeExclusionHandler manages recurring blocked intervals such as lunch.
type TimeExclusionHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewTimeExclusionHandler(db *gorm.DB, log *zap.Logger) *TimeExclusionHandler {
	return &TimeExclusionHandler{db: db, log: nopIfNil(log)}
}

type TimeExclusionRequest struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time" binding:"required,hhmm"`
	EndTime   string `json:"end_time" binding:"required,hhmm"`
	DayOfWeek *int   `json:"day_of_week" binding:"omitempty,weekday"`
	IsActive  *bool  `json:"is_active"`
}

func (r TimeExclusionRequest) valid() bool {
	s, errS := availability.ParseClock(r.StartTime)
	e, errE := availability.ParseClock(r.EndTime)
	return errS == nil && errE == nil && e > s
}

func (h *TimeExclusionHandler) List(c *gin.Context) {
	var rows []models.TimeExclusion
	err := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ?", principal(c).ProviderID).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *TimeExclusionHandler) Create(c *gin.Context) {
	var req TimeExclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do bloqueio inválidos.")
		return
	}
	if !req.valid() {
		httperr.BadRequest(c, "invalid_time_range", "O horário final deve ser posterior ao inicial.")
		return
	}

	ex := models.TimeExclusion{
		ProviderID: principal(c).ProviderID,
		Name:       req.Name,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		DayOfWeek:  req.DayOfWeek,
		IsActive:   true,
	}

	db := h.db.WithContext(c.Request.Context())
	if err := db.Create(&ex).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}
	// default:true swallows a false on insert
	if req.IsActive != nil && !*req.IsActive {
		if err := db.Model(&ex).Update("is_active", false).Error; err != nil {
			mapBusinessError(c, h.log, err)
			return
		}
	}

	httpresp.Created(c, ex)
}

func (h *TimeExclusionHandler) Update(c *gin.Context) {
	ex, ok := h.find(c)
	if !ok {
		return
	}

	var req TimeExclusionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do bloqueio inválidos.")
		return
	}
	if !req.valid() {
		httperr.BadRequest(c, "invalid_time_range", "O horário final deve ser posterior ao inicial.")
		return
	}

	updates := map[string]any{
		"name":        req.Name,
		"start_time":  req.StartTime,
		"end_time":    req.EndTime,
		"day_of_week": req.DayOfWeek,
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if err := h.db.WithContext(c.Request.Context()).Model(ex).Updates(updates).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, ex)
}

func (h *TimeExclusionHandler) Delete(c *gin.Context) {
	ex, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(ex).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *TimeExclusionHandler) find(c *gin.Context) (*models.TimeExclusion, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	var ex models.TimeExclusion
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND provider_id = ?", id, principal(c).ProviderID).
		First(&ex).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "time_exclusion_not_found", "Bloqueio de horário não encontrado.")
			return nil, false
		}
		mapBusinessError(c, h.log, err)
		return nil, false
	}
	return &ex, true
}
