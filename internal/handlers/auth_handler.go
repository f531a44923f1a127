package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/receptionist/internal/config"
	"github.com/BruksfildServices01/receptionist/internal/dto"
	"github.com/BruksfildServices01/receptionist/internal/httperr"
	"github.com/BruksfildServices01/receptionist/internal/middleware"
)

const tokenTTL = 24 * time.Hour

// AuthHandler authenticates the single configured administrator.
type AuthHandler struct {
	config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{config: cfg}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if h.config.AdminPasswordHash == "" ||
		email != strings.ToLower(h.config.AdminEmail) ||
		bcrypt.CompareHashAndPassword([]byte(h.config.AdminPasswordHash), []byte(req.Password)) != nil {
		httperr.FromDomain(c, httperr.ErrBusinessStatus(http.StatusUnauthorized, "invalid_credentials"))
		return
	}

	token, err := middleware.GenerateToken(h.config.JWTSecret, email, middleware.RoleAdmin, tokenTTL)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"role":       middleware.RoleAdmin,
		"expires_in": int(tokenTTL.Seconds()),
	})
}
