package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type ServiceHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewServiceHandler(db *gorm.DB, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, log: nopIfNil(log)}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Duration    int    `json:"duration" binding:"required,min=1,max=1440"`
	Price       int    `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Duration    *int    `json:"duration,omitempty" binding:"omitempty,min=1,max=1440"`
	Price       *int    `json:"price,omitempty" binding:"omitempty,min=0"`
	Active      *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	p := principal(c)

	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).Where("provider_id = ?", p.ProviderID)

	switch activeStr {
	case "true":
		q = q.Where("active = ?", true)
	case "false":
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	p := principal(c)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do serviço inválidos.")
		return
	}

	service := models.Service{
		ProviderID:  p.ProviderID,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Active:      true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados do serviço inválidos.")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Duration != nil {
		updates["duration"] = *req.Duration
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}

	if len(updates) > 0 {
		if err := h.db.WithContext(c.Request.Context()).Model(service).Updates(updates).Error; err != nil {
			mapBusinessError(c, h.log, err)
			return
		}
	}

	c.JSON(http.StatusOK, service)
}

// Delete deactivates the service; past appointments keep pointing at it.
func (h *ServiceHandler) Delete(c *gin.Context) {
	service, ok := h.find(c)
	if !ok {
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Model(service).Update("active", false).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ServiceHandler) find(c *gin.Context) (*models.Service, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	var service models.Service
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND provider_id = ?", id, principal(c).ProviderID).
		First(&service).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return nil, false
		}
		mapBusinessError(c, h.log, err)
		return nil, false
	}
	return &service, true
}
