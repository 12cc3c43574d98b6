package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/agenda-scheduler/internal/config"
	"github.com/BruksfildServices01/agenda-scheduler/internal/httperr"
)

const contextPrincipal = "principal"

const tokenTTL = 24 * time.Hour

// Principal is the authenticated staff member behind a request.
type Principal struct {
	UserID      uint
	ProviderID  uint
	AccountType string
}

func IssueToken(secret string, p Principal, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":         p.UserID,
		"providerId":  p.ProviderID,
		"accountType": p.AccountType,
		"exp":         now.Add(tokenTTL).Unix(),
		"iat":         now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func parseToken(secret, raw string) (Principal, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Principal{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, jwt.ErrTokenInvalidClaims
	}

	userID, ok1 := claims["sub"].(float64)
	providerID, ok2 := claims["providerId"].(float64)
	accountType, _ := claims["accountType"].(string)
	if !ok1 || !ok2 {
		return Principal{}, jwt.ErrTokenInvalidClaims
	}

	return Principal{
		UserID:      uint(userID),
		ProviderID:  uint(providerID),
		AccountType: accountType,
	}, nil
}

func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Autenticação necessária.")
			return
		}

		scheme, raw, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") {
			httperr.Unauthorized(c, "invalid_authorization_header", "Cabeçalho de autenticação inválido.")
			return
		}

		p, err := parseToken(cfg.JWTSecret, strings.TrimSpace(raw))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Sessão inválida ou expirada.")
			return
		}

		c.Set(contextPrincipal, p)
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by AuthMiddleware.
func CurrentPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(contextPrincipal)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// SetPrincipal is used by tests and internal callers that authenticate by
// other means.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(contextPrincipal, p)
}
