package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"staging-console-backend/internal/config"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
	"staging-console-backend/internal/sse"
	"staging-console-backend/internal/viewer"
)

type Handlers struct {
	Health      *HealthHandler
	Submissions *SubmissionsHandler
	Deliveries  *DeliveriesHandler
	Quotes      *QuotesHandler
	Review      *ReviewHandler
	Messages    *MessagesHandler
	Results     *ResultsHandler
	Stream      *StreamHandler
	Webhook     *WebhookHandler
}

func New(cfg *config.Config, svc *services.Services, hub *sse.Hub, m *metrics.Metrics, downloader *viewer.Downloader, logger *zap.Logger) *Handlers {
	pollInterval := cfg.ChatPollInterval
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	return &Handlers{
		Health:      NewHealthHandler(cfg.StoreBackend),
		Submissions: NewSubmissionsHandler(svc.Submissions, logger),
		Deliveries:  NewDeliveriesHandler(svc.Delivery, logger),
		Quotes:      NewQuotesHandler(svc.Quotes, logger),
		Review:      NewReviewHandler(svc.Review, svc.Editors, svc.Export, logger),
		Messages:    NewMessagesHandler(svc.Chat, logger),
		Results:     NewResultsHandler(svc.Submissions, downloader, logger),
		Stream:      NewStreamHandler(hub, svc.Submissions, svc.Chat, m, pollInterval, logger),
		Webhook:     NewWebhookHandler(cfg, svc.Quotes, logger),
	}
}

// Register mounts the health check, the payment webhook and the
// authenticated /api/v1 routes.
func (h *Handlers) Register(router *gin.Engine, cfg *config.Config) {
	router.GET("/health", h.Health.Health)

	// Webhook (no JWT, uses the shared token)
	router.POST("/api/v1/webhooks/payment", h.Webhook.HandlePayment)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	staff := middleware.RequireRole(models.RoleAdmin, models.RoleEditor)
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api.GET("/submissions", h.Submissions.List)
	api.GET("/submissions/:id", h.Submissions.Get)
	api.GET("/submissions/:id/result", h.Results.Download)
	api.POST("/submissions/:id/checkout", h.Quotes.Checkout)

	api.POST("/submissions/:id/deliveries", staff, h.Deliveries.Deliver)

	api.PUT("/submissions/:id/quote", adminOnly, h.Quotes.SetQuote)
	api.POST("/submissions/:id/approve", adminOnly, h.Review.Approve)
	api.POST("/submissions/:id/reject", adminOnly, h.Review.Reject)
	api.PUT("/submissions/:id/editor", adminOnly, h.Review.AssignEditor)
	api.GET("/editors", adminOnly, h.Review.ListEditors)
	api.GET("/admin/export", adminOnly, h.Review.Export)

	api.GET("/submissions/:id/messages", h.Messages.List)
	api.POST("/submissions/:id/messages", h.Messages.Post)
	api.POST("/submissions/:id/messages/read", h.Messages.MarkRead)

	api.GET("/stream", h.Stream.Stream)
}
