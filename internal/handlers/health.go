package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"staging-console-backend/internal/models"
)

type HealthHandler struct {
	storeBackend string
}

func NewHealthHandler(storeBackend string) *HealthHandler {
	return &HealthHandler{storeBackend: storeBackend}
}

// Health godoc
// @Summary     Health check
// @Description Returns the health status of the API and the configured store backend
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status: "ok",
		Store:  h.storeBackend,
	})
}
