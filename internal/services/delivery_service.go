package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

type DeliveryService struct {
	store     store.SubmissionStore
	blobs     BlobStorage
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewDeliveryService(s store.SubmissionStore, blobs BlobStorage, publisher Publisher, m *metrics.Metrics, logger *zap.Logger) *DeliveryService {
	return &DeliveryService{store: s, blobs: blobs, publisher: publisher, metrics: m, logger: logger}
}

// Deliver uploads an editor's result for one stage and records it on the
// submission. A failed upload leaves the submission untouched.
func (s *DeliveryService) Deliver(ctx context.Context, submissionID string, stage models.Stage, data []byte, actor models.Actor) (*models.Submission, error) {
	if !actor.Role.IsStaff() {
		return nil, fmt.Errorf("deliver: %w", ErrForbidden)
	}

	sub, err := s.store.GetSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleEditor && sub.AssignedEditorID != actor.ID {
		return nil, fmt.Errorf("submission %s is not assigned to %s: %w", submissionID, actor.ID, ErrForbidden)
	}
	if err := lifecycle.CheckDeliverable(sub, stage); err != nil {
		return nil, err
	}

	contentType, err := sniffImage(data)
	if err != nil {
		return nil, err
	}

	path := lifecycle.ResultPath(submissionID, stage)
	url, err := s.blobs.Upload(ctx, path, data, contentType)
	if err != nil {
		s.metrics.Deliveries.WithLabelValues(string(stage), "upload_failed").Inc()
		s.logger.Warn("delivery upload failed",
			zap.String("submission_id", submissionID),
			zap.String("stage", string(stage)),
			zap.Error(err))
		return nil, &lifecycle.UploadError{Path: path, Err: err}
	}

	updated, err := s.store.ApplyDelivery(ctx, submissionID, stage, url)
	if err != nil {
		return nil, fmt.Errorf("failed to record delivery: %w", err)
	}

	s.metrics.Deliveries.WithLabelValues(string(stage), "ok").Inc()
	if updated.Status != sub.Status {
		countTransition(s.metrics, updated.Status)
	}
	s.logger.Info("delivery recorded",
		zap.String("submission_id", submissionID),
		zap.String("stage", string(stage)),
		zap.String("status", string(updated.Status)))
	s.publisher.PublishSubmissionUpdate(updated, "delivered")
	return updated, nil
}

func sniffImage(data []byte) (string, error) {
	if len(data) == 0 {
		return "", &lifecycle.ValidationError{Field: "file", Reason: "file is empty"}
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", &lifecycle.ValidationError{Field: "file", Reason: "expected an image, got " + mtype.String()}
	}
	return mtype.String(), nil
}
