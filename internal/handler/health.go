package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/richardcmg7/dao-voting-platform/internal/handler/response"
	"github.com/richardcmg7/dao-voting-platform/internal/ledger"
)

type HealthHandler struct {
	session *ledger.Session
}

func NewHealthHandler(session *ledger.Session) *HealthHandler {
	return &HealthHandler{session: session}
}

// HealthCheck godoc
// @Summary Check system health
// @Description Reports which ledger capabilities are configured. Never calls the ledger.
// @Tags system
// @Accept  json
// @Produce  json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "UP",
		"version": "1.0.0",
		"service": "dao-server",
		"relay":   h.session.CanRelay(),
		"execute": h.session.CanExecute(),
		"read":    h.session.CanRead(),
	})
}
