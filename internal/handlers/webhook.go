package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/config"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
)

const eventCheckoutCompleted = "checkout.completed"

type WebhookHandler struct {
	config *config.Config
	quotes *services.QuoteService
	logger *zap.Logger
}

func NewWebhookHandler(cfg *config.Config, quotes *services.QuoteService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{config: cfg, quotes: quotes, logger: logger}
}

// HandlePayment godoc
// @Summary     Payment provider webhook
// @Description Receives checkout completion from the payment provider and marks the submission paid. Repeated notifications are accepted.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       Authorization header string true "Webhook token"
// @Param       request body models.PaymentWebhookPayload true "Event"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /webhooks/payment [post]
func (h *WebhookHandler) HandlePayment(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "missing authorization token"})
		return
	}

	// Either "Bearer <token>" or the bare token
	token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
	if h.config.PaymentWebhookToken == "" || token != h.config.PaymentWebhookToken {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "invalid authorization token"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		badRequest(c, "failed to read request body", err)
		return
	}

	var event models.PaymentWebhookPayload
	if err := json.Unmarshal(body, &event); err != nil {
		badRequest(c, "failed to parse event", err)
		return
	}

	if event.Event != eventCheckoutCompleted {
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}
	if event.OrderID == "" {
		badRequest(c, "order_id is required", nil)
		return
	}

	if _, err := h.quotes.MarkPaid(c.Request.Context(), event.OrderID); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
