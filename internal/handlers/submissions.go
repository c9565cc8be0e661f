package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
)

type SubmissionsHandler struct {
	submissions *services.SubmissionService
	logger      *zap.Logger
}

func NewSubmissionsHandler(submissions *services.SubmissionService, logger *zap.Logger) *SubmissionsHandler {
	return &SubmissionsHandler{submissions: submissions, logger: logger}
}

// List godoc
// @Summary     List submissions
// @Description Admins get the review queue (paid and free submissions, newest first). Editors get their assignments and users their own submissions.
// @Tags        submissions
// @Produce     json
// @Security    Bearer
// @Success     200 {object} models.SubmissionListResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /submissions [get]
func (h *SubmissionsHandler) List(c *gin.Context) {
	views, err := h.submissions.Views(c.Request.Context(), middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if views == nil {
		views = []models.SubmissionView{}
	}
	c.JSON(http.StatusOK, models.SubmissionListResponse{Submissions: views})
}

// Get godoc
// @Summary     Get a submission
// @Tags        submissions
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Success     200 {object} models.SubmissionView
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /submissions/{id} [get]
func (h *SubmissionsHandler) Get(c *gin.Context) {
	view, err := h.submissions.View(c.Request.Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
