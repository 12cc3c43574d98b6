package handlers

import (
	"errors"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/audit"
	"github.com/BruksfildServices01/agenda-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type ProviderHandler struct {
	db    *gorm.DB
	cache *repository.ProviderCache
	audit *audit.Dispatcher
	log   *zap.Logger
}

func NewProviderHandler(
	db *gorm.DB,
	cache *repository.ProviderCache,
	dispatcher *audit.Dispatcher,
	log *zap.Logger,
) *ProviderHandler {
	return &ProviderHandler{db: db, cache: cache, audit: dispatcher, log: nopIfNil(log)}
}

type UpdateProviderConfigRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	WorkingHoursStart *int    `json:"working_hours_start" binding:"omitempty,min=0,max=23"`
	WorkingHoursEnd   *int    `json:"working_hours_end" binding:"omitempty,min=1,max=24"`
	WorkingDays       []int   `json:"working_days" binding:"omitempty,dive,weekday"`
	Timezone          *string `json:"timezone" binding:"omitempty,tz"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
	PixEnabled        *bool   `json:"pix_enabled"`
}

func (h *ProviderHandler) load(c *gin.Context) (*models.Provider, bool) {
	p := principal(c)

	var provider models.Provider
	if err := h.db.WithContext(c.Request.Context()).First(&provider, p.ProviderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
			return nil, false
		}
		mapBusinessError(c, h.log, err)
		return nil, false
	}
	return &provider, true
}

func (h *ProviderHandler) GetConfig(c *gin.Context) {
	provider, ok := h.load(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"provider":     provider,
		"working_days": availability.ParseWorkingDays(provider.WorkingDays),
	})
}

func (h *ProviderHandler) UpdateConfig(c *gin.Context) {
	provider, ok := h.load(c)
	if !ok {
		return
	}

	var req UpdateProviderConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	updates := map[string]any{}

	if req.Name != nil {
		if *req.Name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ser vazio.")
			return
		}
		updates["name"] = *req.Name
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}

	start, end := provider.WorkingHoursStart, provider.WorkingHoursEnd
	if req.WorkingHoursStart != nil {
		start = *req.WorkingHoursStart
		updates["working_hours_start"] = start
	}
	if req.WorkingHoursEnd != nil {
		end = *req.WorkingHoursEnd
		updates["working_hours_end"] = end
	}
	if end <= start {
		httperr.BadRequest(c, "invalid_working_hours", "O horário de fechamento deve ser posterior ao de abertura.")
		return
	}

	if req.WorkingDays != nil {
		if len(req.WorkingDays) == 0 {
			httperr.BadRequest(c, "invalid_working_days", "Informe ao menos um dia de atendimento.")
			return
		}
		days := slices.Clone(req.WorkingDays)
		slices.Sort(days)
		updates["working_days"] = availability.FormatWorkingDays(slices.Compact(days))
	}

	if req.Timezone != nil {
		updates["timezone"] = *req.Timezone
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		updates["min_advance_minutes"] = *req.MinAdvanceMinutes
	}

	if req.PixEnabled != nil {
		updates["pix_enabled"] = *req.PixEnabled
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, provider)
		return
	}

	ctx := c.Request.Context()
	if err := h.db.WithContext(ctx).Model(provider).Updates(updates).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}
	h.cache.Invalidate(ctx, provider.ID)

	p := principal(c)
	h.audit.Dispatch(audit.Event{
		ProviderID: provider.ID,
		UserID:     &p.UserID,
		Action:     "provider_config_updated",
		Entity:     "provider",
		EntityID:   &provider.ID,
		Metadata:   updates,
	})

	if err := h.db.WithContext(ctx).First(provider, provider.ID).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}
