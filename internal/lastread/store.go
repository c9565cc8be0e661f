// Package lastread persists per-viewer chat read markers. A marker is the
// millisecond timestamp at which a viewer last closed a submission's chat.
package lastread

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

const keyPrefix = "chat_last_read_"

type Store interface {
	Set(ctx context.Context, viewerID, submissionID string, millis int64) error
	// All returns every marker of a viewer keyed by submission id. Chats
	// the viewer never closed are absent.
	All(ctx context.Context, viewerID string) (map[string]int64, error)
}

// Key is the marker name for a submission.
func Key(submissionID string) string {
	return keyPrefix + submissionID
}

// SubmissionID reverses Key. ok is false for names that are not markers.
func SubmissionID(key string) (string, bool) {
	if !strings.HasPrefix(key, keyPrefix) || len(key) == len(keyPrefix) {
		return "", false
	}
	return strings.TrimPrefix(key, keyPrefix), true
}

type MemoryStore struct {
	mu      sync.RWMutex
	markers map[string]map[string]int64
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{markers: make(map[string]map[string]int64)}
}

func (m *MemoryStore) Set(ctx context.Context, viewerID, submissionID string, millis int64) error {
	if viewerID == "" {
		return fmt.Errorf("viewer id is required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	viewer, ok := m.markers[viewerID]
	if !ok {
		viewer = make(map[string]int64)
		m.markers[viewerID] = viewer
	}
	viewer[Key(submissionID)] = millis
	return nil
}

func (m *MemoryStore) All(ctx context.Context, viewerID string) (map[string]int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]int64, len(m.markers[viewerID]))
	for key, millis := range m.markers[viewerID] {
		if id, ok := SubmissionID(key); ok {
			out[id] = millis
		}
	}
	return out, nil
}
