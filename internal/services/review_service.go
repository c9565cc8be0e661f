package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

type ReviewService struct {
	store     store.Store
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
	now       func() time.Time
}

func NewReviewService(s store.Store, publisher Publisher, m *metrics.Metrics, logger *zap.Logger, now func() time.Time) *ReviewService {
	return &ReviewService{store: s, publisher: publisher, metrics: m, logger: logger, now: now}
}

// Queue lists the submissions admins can act on. Unpaid submissions are
// never included.
func (s *ReviewService) Queue(ctx context.Context) ([]models.Submission, error) {
	return s.store.ListSubmissions(ctx, store.SubmissionFilter{
		PaymentStatuses: []models.PaymentStatus{models.PaymentPaid, models.PaymentQuotePending},
	})
}

func (s *ReviewService) Approve(ctx context.Context, id string, actor models.Actor) (*models.Submission, error) {
	return s.transition(ctx, id, actor, lifecycle.ActionApprove, lifecycle.Approve)
}

// Reject returns a submission to its editor. A non-empty note is posted to
// the chat as an admin message; failing to post it does not undo the
// rejection.
func (s *ReviewService) Reject(ctx context.Context, id string, actor models.Actor, note string) (*models.Submission, error) {
	updated, err := s.transition(ctx, id, actor, lifecycle.ActionReject, lifecycle.Reject)
	if err != nil {
		return nil, err
	}

	note = strings.TrimSpace(note)
	if note == "" {
		return updated, nil
	}
	msg := &models.Message{
		ID:           uuid.New().String(),
		SubmissionID: id,
		SenderRole:   models.RoleAdmin,
		SenderID:     actor.ID,
		Body:         note,
		Timestamp:    s.now(),
	}
	if err := s.store.AppendMessage(ctx, msg); err != nil {
		s.logger.Warn("failed to post rejection note",
			zap.String("submission_id", id),
			zap.Error(err))
	}
	return updated, nil
}

type decideFunc func(*models.Submission, models.Role) (models.Status, error)

func (s *ReviewService) transition(ctx context.Context, id string, actor models.Actor, action string, decide decideFunc) (*models.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	to, err := decide(sub, actor.Role)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.TransitionStatus(ctx, id, sub.Status, to)
	if errors.Is(err, store.ErrConflict) {
		current, getErr := s.store.GetSubmission(ctx, id)
		if getErr != nil {
			return nil, getErr
		}
		return nil, &lifecycle.InvalidTransitionError{From: current.Status, Action: action, Reason: "status changed concurrently"}
	}
	if err != nil {
		return nil, err
	}

	countTransition(s.metrics, to)
	s.logger.Info("review decision",
		zap.String("submission_id", id),
		zap.String("action", action),
		zap.String("admin_id", actor.ID),
		zap.String("status", string(to)))
	s.publisher.PublishSubmissionUpdate(updated, action)
	return updated, nil
}
