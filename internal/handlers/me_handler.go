package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/receptionist/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	subject := c.GetString(middleware.ContextSubject)
	if subject == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error_code": "user_not_in_context"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": subject,
		"role":    c.GetString(middleware.ContextUserRole),
	})
}
