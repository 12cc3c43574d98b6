package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/agenda-scheduler/internal/config"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
	"github.com/BruksfildServices01/agenda-scheduler/internal/middleware"
	"github.com/BruksfildServices01/agenda-scheduler/internal/models"
	"github.com/BruksfildServices01/agenda-scheduler/internal/validators"
)

// EmailChecker reports whether an e-mail address looks deliverable.
type EmailChecker func(ctx context.Context, email string) bool

type AuthHandler struct {
	db         *gorm.DB
	config     *config.Config
	log        *zap.Logger
	checkEmail EmailChecker
	now        func() time.Time
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger, checkEmail EmailChecker) *AuthHandler {
	if checkEmail == nil {
		checkEmail = validators.IsEmailDomainValid
	}
	return &AuthHandler{
		db:         db,
		config:     cfg,
		log:        nopIfNil(log),
		checkEmail: checkEmail,
		now:        time.Now,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`

	AccountType  string `json:"account_type" binding:"omitempty,oneof=individual company"`
	ProviderName string `json:"provider_name"`
	Timezone     string `json:"timezone" binding:"omitempty,tz"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados de cadastro inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if !h.checkEmail(c.Request.Context(), email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	if err := h.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		mapBusinessError(c, h.log, err)
		return
	}
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "Este e-mail já está cadastrado.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	accountType := req.AccountType
	if accountType == "" {
		accountType = models.AccountIndividual
	}
	providerName := strings.TrimSpace(req.ProviderName)
	if providerName == "" {
		providerName = req.Name
	}
	tz := req.Timezone
	if tz == "" {
		tz = h.config.DefaultTimezone
	}

	user := models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: string(hashed),
		Phone:        req.Phone,
		AccountType:  accountType,
	}
	provider := models.Provider{
		Name:        providerName,
		Phone:       req.Phone,
		LinkID:      uuid.NewString(),
		WorkingDays: "1,2,3,4,5",
		Timezone:    tz,
	}

	err = h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		provider.UserID = user.ID
		return tx.Create(&provider).Error
	})
	if err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "Este e-mail já está cadastrado.")
			return
		}
		mapBusinessError(c, h.log, err)
		return
	}

	token, err := h.issue(&user, &provider)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	h.log.Info("provider registered",
		zap.Uint("user_id", user.ID),
		zap.Uint("provider_id", provider.ID),
		zap.String("account_type", accountType),
	)

	c.JSON(http.StatusCreated, gin.H{
		"user":     userBody(&user),
		"provider": &provider,
		"token":    token,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados de login inválidos.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
			return
		}
		mapBusinessError(c, h.log, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha incorretos.")
		return
	}

	var provider models.Provider
	if err := h.db.Where("user_id = ?", user.ID).First(&provider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "provider_not_found", "Prestador não encontrado.")
			return
		}
		mapBusinessError(c, h.log, err)
		return
	}

	token, err := h.issue(&user, &provider)
	if err != nil {
		mapBusinessError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     userBody(&user),
		"provider": &provider,
		"token":    token,
	})
}

// --------- JWT ---------

func (h *AuthHandler) issue(user *models.User, provider *models.Provider) (string, error) {
	return middleware.IssueToken(h.config.JWTSecret, middleware.Principal{
		UserID:      user.ID,
		ProviderID:  provider.ID,
		AccountType: user.AccountType,
	}, h.now())
}

func userBody(u *models.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"phone":        u.Phone,
		"account_type": u.AccountType,
	}
}
