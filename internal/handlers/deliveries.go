package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
)

const maxDeliveryBytes = 32 << 20

type DeliveriesHandler struct {
	delivery *services.DeliveryService
	logger   *zap.Logger
}

func NewDeliveriesHandler(delivery *services.DeliveryService, logger *zap.Logger) *DeliveriesHandler {
	return &DeliveriesHandler{delivery: delivery, logger: logger}
}

// Deliver godoc
// @Summary     Deliver a stage result
// @Description Uploads an edited image for one stage and records it on the submission.
// @Description Dual-stage plans take `remove` and `add` deliveries in any order and move to review once both exist; other plans take `single`.
// @Description A failed upload leaves the submission unchanged and can be retried.
// @Tags        deliveries
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       file formData file true "Result image"
// @Param       stage formData string false "remove, add or single (default single)"
// @Success     200 {object} models.Submission
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /submissions/{id}/deliveries [post]
func (h *DeliveriesHandler) Deliver(c *gin.Context) {
	stage := models.Stage(c.DefaultPostForm("stage", string(models.StageSingle)))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "file is required", err)
		return
	}
	if fileHeader.Size > maxDeliveryBytes {
		badRequest(c, "file too large", fmt.Errorf("limit is %d bytes", maxDeliveryBytes))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(c, "failed to open file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(c, "failed to read file", err)
		return
	}

	sub, err := h.delivery.Deliver(c.Request.Context(), c.Param("id"), stage, data, middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}
