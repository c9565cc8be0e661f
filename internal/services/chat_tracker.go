package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"staging-console-backend/internal/lastread"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

// DefaultPollInterval is how often Watch recomputes badges.
const DefaultPollInterval = 5 * time.Second

const maxMessageLength = 4000

// ComputeBadges derives each submission's chat badge for one viewer from the
// message log and the viewer's last-read markers. Staff are alerted by user
// messages and users by staff messages. Of messages with equal timestamps the
// later one in the log counts as latest.
func ComputeBadges(messages []models.Message, submissions []models.Submission, lastRead map[string]int64, viewerRole models.Role) map[string]models.ChatBadge {
	badges := make(map[string]models.ChatBadge, len(submissions))
	for _, sub := range submissions {
		badges[sub.ID] = models.ChatBadge{}
	}

	latest := make(map[string]*models.Message, len(submissions))
	for i := range messages {
		msg := &messages[i]
		badge, ok := badges[msg.SubmissionID]
		if !ok {
			continue
		}
		badge.Count++
		badges[msg.SubmissionID] = badge

		if cur, ok := latest[msg.SubmissionID]; !ok || msg.Millis() >= cur.Millis() {
			latest[msg.SubmissionID] = msg
		}
	}

	for id, msg := range latest {
		badge := badges[id]
		badge.LatestAt = msg.Millis()
		badge.LatestSender = msg.SenderRole
		fromUser := msg.SenderRole == models.RoleUser
		alerts := fromUser
		if !viewerRole.IsStaff() {
			alerts = !fromUser
		}
		badge.HasUnread = alerts && msg.Millis() > lastRead[id]
		badges[id] = badge
	}
	return badges
}

// ChatTracker serves submission chats and keeps viewers' unread badges
// current.
type ChatTracker struct {
	store   store.Store
	markers lastread.Store
	logger  *zap.Logger
	now     func() time.Time

	mu       sync.Mutex
	watchers map[string]map[chan struct{}]struct{}
}

func NewChatTracker(s store.Store, markers lastread.Store, logger *zap.Logger, now func() time.Time) *ChatTracker {
	if markers == nil {
		markers = lastread.NewMemoryStore()
	}
	return &ChatTracker{
		store:    s,
		markers:  markers,
		logger:   logger,
		now:      now,
		watchers: make(map[string]map[chan struct{}]struct{}),
	}
}

// Badges computes badges for the given submissions as seen by viewer.
func (t *ChatTracker) Badges(ctx context.Context, viewer models.Actor, submissions []models.Submission) (map[string]models.ChatBadge, error) {
	messages, err := t.store.ListMessages(ctx)
	if err != nil {
		return nil, err
	}
	lastRead, err := t.markers.All(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	return ComputeBadges(messages, submissions, lastRead, viewer.Role), nil
}

// Messages returns a submission's chat in order.
func (t *ChatTracker) Messages(ctx context.Context, submissionID string, viewer models.Actor) ([]models.Message, error) {
	if err := t.checkVisible(ctx, submissionID, viewer); err != nil {
		return nil, err
	}
	return t.store.ListSubmissionMessages(ctx, submissionID)
}

// Post appends a message from viewer and refreshes every watcher.
func (t *ChatTracker) Post(ctx context.Context, submissionID string, viewer models.Actor, body string) (*models.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, &lifecycle.ValidationError{Field: "body", Reason: "message is empty"}
	}
	if utf8.RuneCountInString(body) > maxMessageLength {
		return nil, &lifecycle.ValidationError{Field: "body", Reason: fmt.Sprintf("message exceeds %d characters", maxMessageLength)}
	}
	if err := t.checkVisible(ctx, submissionID, viewer); err != nil {
		return nil, err
	}

	msg := &models.Message{
		ID:           uuid.New().String(),
		SubmissionID: submissionID,
		SenderRole:   viewer.Role,
		SenderID:     viewer.ID,
		Body:         body,
		Timestamp:    t.now(),
	}
	if err := t.store.AppendMessage(ctx, msg); err != nil {
		return nil, err
	}
	t.RefreshAll()
	return msg, nil
}

// MarkRead records that viewer closed the submission's chat now and triggers
// an immediate recompute for that viewer.
func (t *ChatTracker) MarkRead(ctx context.Context, viewer models.Actor, submissionID string) (int64, error) {
	if err := t.checkVisible(ctx, submissionID, viewer); err != nil {
		return 0, err
	}
	millis := t.now().UnixMilli()
	if err := t.markers.Set(ctx, viewer.ID, submissionID, millis); err != nil {
		return 0, err
	}
	t.Refresh(viewer.ID)
	return millis, nil
}

// Refresh asks every Watch of viewerID to recompute now.
func (t *ChatTracker) Refresh(viewerID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for ch := range t.watchers[viewerID] {
		signal(ch)
	}
}

func (t *ChatTracker) RefreshAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, chans := range t.watchers {
		for ch := range chans {
			signal(ch)
		}
	}
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (t *ChatTracker) subscribe(viewerID string) chan struct{} {
	ch := make(chan struct{}, 1)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.watchers[viewerID] == nil {
		t.watchers[viewerID] = make(map[chan struct{}]struct{})
	}
	t.watchers[viewerID][ch] = struct{}{}
	return ch
}

func (t *ChatTracker) unsubscribe(viewerID string, ch chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.watchers[viewerID], ch)
	if len(t.watchers[viewerID]) == 0 {
		delete(t.watchers, viewerID)
	}
}

// Watch emits viewer's badges immediately, then every interval and whenever
// Refresh is called for the viewer, until ctx is cancelled. list supplies the
// submissions to badge on each round. Errors in a round are logged and the
// round skipped.
func (t *ChatTracker) Watch(ctx context.Context, viewer models.Actor, interval time.Duration, list func(context.Context) ([]models.Submission, error), emit func(map[string]models.ChatBadge)) {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	refresh := t.subscribe(viewer.ID)
	defer t.unsubscribe(viewer.ID, refresh)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	round := func() {
		subs, err := list(ctx)
		if err != nil {
			t.logger.Warn("badge round skipped", zap.String("viewer_id", viewer.ID), zap.Error(err))
			return
		}
		badges, err := t.Badges(ctx, viewer, subs)
		if err != nil {
			t.logger.Warn("badge round skipped", zap.String("viewer_id", viewer.ID), zap.Error(err))
			return
		}
		emit(badges)
	}

	round()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			round()
		case <-refresh:
			round()
		}
	}
}

func (t *ChatTracker) checkVisible(ctx context.Context, submissionID string, viewer models.Actor) error {
	sub, err := t.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return err
	}
	if !CanView(sub, viewer) {
		return fmt.Errorf("submission %s: %w", submissionID, ErrForbidden)
	}
	return nil
}
