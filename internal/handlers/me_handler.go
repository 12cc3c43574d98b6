package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
)

type MeHandler struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewMeHandler(db *gorm.DB, log *zap.Logger) *MeHandler {
	return &MeHandler{db: db, log: nopIfNil(log)}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	p := principal(c)

	var provider models.Provider
	err := h.db.WithContext(c.Request.Context()).
		Preload("User").
		Where("id = ? AND user_id = ?", p.ProviderID, p.UserID).
		First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
			return
		}
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userBody(&provider.User),
		"provider": &provider,
	})
}
