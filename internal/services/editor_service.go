package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

type EditorService struct {
	store     store.Store
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewEditorService(s store.Store, publisher Publisher, m *metrics.Metrics, logger *zap.Logger) *EditorService {
	return &EditorService{store: s, publisher: publisher, metrics: m, logger: logger}
}

func (s *EditorService) List(ctx context.Context) ([]models.Editor, error) {
	return s.store.ListEditors(ctx)
}

// AssignEditor sets the editor of a submission. A pending submission starts
// processing once it has an editor.
func (s *EditorService) AssignEditor(ctx context.Context, id, editorID string) (*models.Submission, error) {
	if editorID == "" {
		return nil, &lifecycle.ValidationError{Field: "editor_id", Reason: "editor id is required"}
	}
	if _, err := s.store.GetEditor(ctx, editorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &lifecycle.ValidationError{Field: "editor_id", Reason: "unknown editor " + editorID}
		}
		return nil, err
	}

	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.Status == models.StatusCompleted {
		return nil, &lifecycle.InvalidTransitionError{From: sub.Status, Action: "assign", Reason: "submission is already completed"}
	}

	updated, err := s.store.UpdateSubmission(ctx, id, store.Fields{models.ColAssignedEditorID: editorID})
	if err != nil {
		return nil, err
	}

	if updated.Status == models.StatusPending {
		started, err := s.store.TransitionStatus(ctx, id, models.StatusPending, models.StatusProcessing)
		switch {
		case err == nil:
			updated = started
			countTransition(s.metrics, models.StatusProcessing)
		case errors.Is(err, store.ErrConflict):
			// someone else moved it on
			if updated, err = s.store.GetSubmission(ctx, id); err != nil {
				return nil, err
			}
		default:
			return nil, err
		}
	}

	s.logger.Info("editor assigned",
		zap.String("submission_id", id),
		zap.String("editor_id", editorID),
		zap.String("status", string(updated.Status)))
	s.publisher.PublishSubmissionUpdate(updated, "assigned")
	return updated, nil
}
