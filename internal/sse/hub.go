// Package sse fans lifecycle and chat events out to connected console clients.
package sse

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
	"staging-console-backend/internal/models"
)

const (
	EventConnected        = "connected"
	EventChatBadges       = "chat_badges"
	EventSubmissionUpdate = "submission_update"
)

// Event represents a Server-Sent Event
type Event struct {
	EventType string `json:"event"`
	Data      string `json:"data"`
}

// Client represents a connected SSE client
type Client struct {
	ID     string
	UserID string
	Role   models.Role
	Events chan Event
}

// Hub manages all SSE client connections
type Hub struct {
	mu      sync.RWMutex
	clients map[string]*Client
	logger  *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		logger:  logger,
	}
}

func (h *Hub) Register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client.ID] = client
	h.logger.Debug("sse client registered",
		zap.String("client_id", client.ID),
		zap.String("user_id", client.UserID),
		zap.Int("total", len(h.clients)))
}

func (h *Hub) Unregister(clientID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if client, ok := h.clients[clientID]; ok {
		close(client.Events)
		delete(h.clients, clientID)
		h.logger.Debug("sse client unregistered",
			zap.String("client_id", clientID),
			zap.Int("total", len(h.clients)))
	}
}

// Len returns the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SendToClient sends an event to a single connection.
func (h *Hub) SendToClient(clientID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if client, ok := h.clients[clientID]; ok {
		h.deliver(client, event)
	}
}

func (h *Hub) deliver(client *Client, event Event) {
	select {
	case client.Events <- event:
	default:
		h.logger.Warn("sse client buffer full, skipping event",
			zap.String("client_id", client.ID),
			zap.String("event", event.EventType))
	}
}

type submissionUpdate struct {
	SubmissionID string        `json:"submission_id"`
	Status       models.Status `json:"status"`
	Action       string        `json:"action"`
}

// PublishSubmissionUpdate tells the owner and all staff connections that a
// submission changed.
func (h *Hub) PublishSubmissionUpdate(sub *models.Submission, action string) {
	event, err := NewEvent(EventSubmissionUpdate, submissionUpdate{
		SubmissionID: sub.ID,
		Status:       sub.Status,
		Action:       action,
	})
	if err != nil {
		h.logger.Error("failed to encode submission update", zap.Error(err))
		return
	}

	h.sendWhere(event, func(client *Client) bool {
		return client.Role.IsStaff() || client.UserID == sub.UserID
	})
}

// sendWhere delivers event to every client matching keep. Clients whose
// buffer is full miss the event.
func (h *Hub) sendWhere(event Event, keep func(*Client) bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, client := range h.clients {
		if keep(client) {
			h.deliver(client, event)
		}
	}
}

// NewEvent encodes v as the event payload.
func NewEvent(eventType string, v interface{}) (Event, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Event{}, err
	}
	return Event{EventType: eventType, Data: string(data)}, nil
}
