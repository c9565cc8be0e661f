package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
	"staging-console-backend/internal/viewer"
)

type ResultsHandler struct {
	submissions *services.SubmissionService
	downloader  *viewer.Downloader
	logger      *zap.Logger
}

func NewResultsHandler(submissions *services.SubmissionService, downloader *viewer.Downloader, logger *zap.Logger) *ResultsHandler {
	return &ResultsHandler{submissions: submissions, downloader: downloader, logger: logger}
}

// Download godoc
// @Summary     Download a result
// @Description Downloads the delivered image for a stage as a file. Without `stage` the viewer's default artifact is used.
// @Description If the image cannot be fetched the response redirects to its URL instead.
// @Tags        results
// @Produce     octet-stream
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       stage query string false "remove, add or single"
// @Success     200 {file} file
// @Success     302
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /submissions/{id}/result [get]
func (h *ResultsHandler) Download(c *gin.Context) {
	sub, err := h.submissions.Get(c.Request.Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	stage := viewer.DefaultStage(sub)
	if raw := c.Query("stage"); raw != "" {
		stage = models.Stage(raw)
		if err := lifecycle.ValidateStage(sub.Plan, stage); err != nil {
			respondError(c, h.logger, err)
			return
		}
	}

	url := viewer.AfterURL(sub, stage)
	if url == "" {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "result not delivered",
			Message: fmt.Sprintf("no %s result for submission %s", stage, sub.ID),
		})
		return
	}

	data, contentType, err := h.downloader.Fetch(c.Request.Context(), url)
	if err != nil {
		h.logger.Warn("result fetch failed, redirecting",
			zap.String("submission_id", sub.ID),
			zap.String("stage", string(stage)),
			zap.Error(err))
		c.Redirect(http.StatusFound, url)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", viewer.DownloadName(sub, stage, url)))
	c.Data(http.StatusOK, contentType, data)
}
