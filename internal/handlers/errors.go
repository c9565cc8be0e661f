package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
	"staging-console-backend/internal/store"
)

// respondError maps a service error onto its HTTP status.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	if schemaErr, ok := lifecycle.AsSchemaError(err); ok {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:       "schema not ready",
			Message:     schemaErr.Error(),
			Remediation: schemaErr.Migration,
		})
		return
	}

	switch {
	case lifecycle.IsValidation(err):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found", Message: err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "forbidden", Message: err.Error()})
	case lifecycle.IsInvalidTransition(err):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: "invalid transition", Message: err.Error()})
	case lifecycle.IsUpload(err):
		logger.Error("upload failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "upload failed", Message: err.Error()})
	default:
		logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error", Message: err.Error()})
	}
}

func badRequest(c *gin.Context, errMsg string, err error) {
	resp := models.ErrorResponse{Error: errMsg}
	if err != nil {
		resp.Message = err.Error()
	}
	c.JSON(http.StatusBadRequest, resp)
}
