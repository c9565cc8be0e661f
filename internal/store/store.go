// Package store defines the persistence contract the console consumes.
// Implementations live in internal/supabase (Postgres and PostgREST) and in
// this package (in-memory).
package store

import (
	"context"
	"errors"

	"staging-console-backend/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned by TransitionStatus when the record is no
	// longer in the expected status.
	ErrConflict = errors.New("status changed concurrently")
)

// Fields is a partial update keyed by column name. Columns not present are
// left untouched.
type Fields map[string]interface{}

type SubmissionFilter struct {
	PaymentStatuses  []models.PaymentStatus
	AssignedEditorID string
	UserID           string
}

func (f SubmissionFilter) Match(sub *models.Submission) bool {
	if f.AssignedEditorID != "" && sub.AssignedEditorID != f.AssignedEditorID {
		return false
	}
	if f.UserID != "" && sub.UserID != f.UserID {
		return false
	}
	if len(f.PaymentStatuses) == 0 {
		return true
	}
	for _, ps := range f.PaymentStatuses {
		if sub.PaymentStatus == ps {
			return true
		}
	}
	return false
}

type SubmissionStore interface {
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error)
	UpdateSubmission(ctx context.Context, id string, fields Fields) (*models.Submission, error)

	// ApplyDelivery writes the stage result and recomputes status against
	// the freshest record, as one operation.
	ApplyDelivery(ctx context.Context, id string, stage models.Stage, url string) (*models.Submission, error)

	// TransitionStatus moves a submission from one status to another only
	// if it is still in the from status. Otherwise it returns ErrConflict.
	TransitionStatus(ctx context.Context, id string, from, to models.Status) (*models.Submission, error)
}

type MessageStore interface {
	ListMessages(ctx context.Context) ([]models.Message, error)
	ListSubmissionMessages(ctx context.Context, submissionID string) ([]models.Message, error)
	AppendMessage(ctx context.Context, msg *models.Message) error
}

type EditorStore interface {
	ListEditors(ctx context.Context) ([]models.Editor, error)
	GetEditor(ctx context.Context, id string) (*models.Editor, error)
}

// Store bundles the three record families.
type Store interface {
	SubmissionStore
	MessageStore
	EditorStore
}
