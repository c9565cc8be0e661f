package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/middleware"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
	"staging-console-backend/internal/sse"
)

const heartbeatInterval = 30 * time.Second

type StreamHandler struct {
	hub          *sse.Hub
	submissions  *services.SubmissionService
	chat         *services.ChatTracker
	metrics      *metrics.Metrics
	pollInterval time.Duration
	logger       *zap.Logger
}

func NewStreamHandler(hub *sse.Hub, submissions *services.SubmissionService, chat *services.ChatTracker, m *metrics.Metrics, pollInterval time.Duration, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		hub:          hub,
		submissions:  submissions,
		chat:         chat,
		metrics:      m,
		pollInterval: pollInterval,
		logger:       logger,
	}
}

// Stream godoc
// @Summary     Live console events
// @Description Server-Sent Events. `chat_badges` carries the caller's unread badges per submission and is sent on connect, every poll interval and after the caller marks a chat read.
// @Description `submission_update` is sent when a visible submission changes status. EventSource clients may pass the token as `?token=`.
// @Tags        stream
// @Produce     text/event-stream
// @Security    Bearer
// @Param       token query string false "Access token"
// @Success     200 {string} string "event stream"
// @Router      /stream [get]
func (h *StreamHandler) Stream(c *gin.Context) {
	actor := middleware.GetActor(c)
	client := &sse.Client{
		ID:     uuid.New().String(),
		UserID: actor.ID,
		Role:   actor.Role,
		Events: make(chan sse.Event, 64),
	}
	h.hub.Register(client)
	h.metrics.SSEClients.Inc()

	ctx, cancel := context.WithCancel(c.Request.Context())
	watchDone := make(chan struct{})
	defer func() {
		cancel()
		<-watchDone
		h.hub.Unregister(client.ID)
		h.metrics.SSEClients.Dec()
	}()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	c.SSEvent(sse.EventConnected, `{"client_id":"`+client.ID+`"}`)
	c.Writer.Flush()

	go func() {
		defer close(watchDone)
		h.chat.Watch(ctx, actor, h.pollInterval,
			func(ctx context.Context) ([]models.Submission, error) {
				return h.submissions.List(ctx, actor)
			},
			func(badges map[string]models.ChatBadge) {
				event, err := sse.NewEvent(sse.EventChatBadges, badges)
				if err != nil {
					h.logger.Error("failed to encode badges", zap.Error(err))
					return
				}
				h.hub.SendToClient(client.ID, event)
			})
	}()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-client.Events:
			if !ok {
				return
			}
			c.SSEvent(event.EventType, event.Data)
			c.Writer.Flush()
		case <-heartbeat.C:
			_, _ = io.WriteString(c.Writer, ": keepalive\n\n")
			c.Writer.Flush()
		}
	}
}
