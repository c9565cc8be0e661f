package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
)

type ReviewHandler struct {
	review  *services.ReviewService
	editors *services.EditorService
	export  *services.ExportService
	logger  *zap.Logger
}

func NewReviewHandler(review *services.ReviewService, editors *services.EditorService, export *services.ExportService, logger *zap.Logger) *ReviewHandler {
	return &ReviewHandler{review: review, editors: editors, export: export, logger: logger}
}

// Approve godoc
// @Summary     Approve a submission
// @Description Moves a reviewing submission to completed.
// @Tags        review
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Success     200 {object} models.Submission
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /submissions/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	sub, err := h.review.Approve(c.Request.Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// Reject godoc
// @Summary     Reject a submission
// @Description Sends a reviewing submission back to processing. A non-empty note is posted to the submission's chat.
// @Tags        review
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       request body models.RejectRequest false "Rejection note"
// @Success     200 {object} models.Submission
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     409 {object} models.ErrorResponse
// @Router      /submissions/{id}/reject [post]
func (h *ReviewHandler) Reject(c *gin.Context) {
	var req models.RejectRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "invalid request body", err)
			return
		}
	}

	sub, err := h.review.Reject(c.Request.Context(), c.Param("id"), middleware.GetActor(c), req.Note)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// AssignEditor godoc
// @Summary     Assign an editor
// @Description Assigns an editor from the roster. A pending submission moves to processing.
// @Tags        review
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       request body models.AssignEditorRequest true "Editor"
// @Success     200 {object} models.Submission
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /submissions/{id}/editor [put]
func (h *ReviewHandler) AssignEditor(c *gin.Context) {
	var req models.AssignEditorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	sub, err := h.editors.AssignEditor(c.Request.Context(), c.Param("id"), req.EditorID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

// ListEditors godoc
// @Summary     List editors
// @Tags        review
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.EditorListResponse
// @Router      /editors [get]
func (h *ReviewHandler) ListEditors(c *gin.Context) {
	editors, err := h.editors.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if editors == nil {
		editors = []models.Editor{}
	}
	c.JSON(http.StatusOK, models.EditorListResponse{Editors: editors})
}

// Export godoc
// @Summary     Export the review queue
// @Description Downloads the review queue as an Excel workbook.
// @Tags        review
// @Produce     application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security    Bearer
// @Success     200 {file} file
// @Failure     500 {object} models.ErrorResponse
// @Router      /admin/export [get]
func (h *ReviewHandler) Export(c *gin.Context) {
	f, filename, err := h.export.ExportQueue(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("failed to write export", zap.Error(err))
	}
}
