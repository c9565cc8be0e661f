package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
)

type MessagesHandler struct {
	chat   *services.ChatTracker
	logger *zap.Logger
}

func NewMessagesHandler(chat *services.ChatTracker, logger *zap.Logger) *MessagesHandler {
	return &MessagesHandler{chat: chat, logger: logger}
}

// List godoc
// @Summary     List a submission's messages
// @Tags        messages
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Success     200 {object} models.MessageListResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /submissions/{id}/messages [get]
func (h *MessagesHandler) List(c *gin.Context) {
	messages, err := h.chat.Messages(c.Request.Context(), c.Param("id"), middleware.GetActor(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, models.MessageListResponse{Messages: messages})
}

// Post godoc
// @Summary     Post a message
// @Tags        messages
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Param       request body models.PostMessageRequest true "Message"
// @Success     201 {object} models.Message
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /submissions/{id}/messages [post]
func (h *MessagesHandler) Post(c *gin.Context) {
	var req models.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body", err)
		return
	}

	msg, err := h.chat.Post(c.Request.Context(), c.Param("id"), middleware.GetActor(c), req.Body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// MarkRead godoc
// @Summary     Mark a chat read
// @Description Records that the caller has read the submission's chat up to now and refreshes their badges.
// @Tags        messages
// @Produce     json
// @Security    Bearer
// @Param       id path string true "Submission ID"
// @Success     200 {object} models.MarkReadResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /submissions/{id}/messages/read [post]
func (h *MessagesHandler) MarkRead(c *gin.Context) {
	id := c.Param("id")
	lastRead, err := h.chat.MarkRead(c.Request.Context(), middleware.GetActor(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, models.MarkReadResponse{SubmissionID: id, LastRead: lastRead})
}
