package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/dto"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/timezone"
)

type ClientHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewClientHandler(db *gorm.DB, log *zap.Logger) *ClientHandler {
	return &ClientHandler{db: db, log: nopIfNil(log)}
}

// ======================================================
// LIST CLIENTS (PRESTADOR)
// ======================================================
func (h *ClientHandler) List(c *gin.Context) {
	search := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.WithContext(c.Request.Context()).
		Where("provider_id = ?", principal(c).ProviderID)

	if search != "" {
		like := "%" + search + "%"
		q = q.Where("(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?)", like, like, like)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	httpresp.List(c, clients)
}

// ======================================================
// CLIENT HISTORY
// ======================================================

// History lists every booking of one client, newest first, in the
// provider's timezone.
func (h *ClientHandler) History(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	providerID := principal(c).ProviderID

	var client models.Client
	err := h.db.WithContext(ctx).
		Where("id = ? AND provider_id = ?", id, providerID).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "client_not_found", "Cliente não encontrado.")
			return
		}
		mapBusinessError(c, h.log, err)
		return
	}

	var provider models.Provider
	if err := h.db.WithContext(ctx).Select("timezone").First(&provider, providerID).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}
	loc := timezone.Location(provider.Timezone)

	var rows []models.Appointment
	err = h.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		Preload("Employee").
		Where("provider_id = ? AND client_id = ?", providerID, client.ID).
		Order("start_time DESC").
		Find(&rows).Error
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	list := make([]dto.AppointmentListDTO, 0, len(rows))
	for _, ap := range rows {
		list = append(list, dto.AppointmentList(ap, loc))
	}

	httpresp.OK(c, gin.H{
		"client":       client,
		"appointments": list,
		"total":        len(list),
	})
}
