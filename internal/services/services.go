// Package services implements the console's operations on top of the store,
// blob storage and checkout collaborators.
package services

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"staging-console-backend/internal/checkout"
	"staging-console-backend/internal/lastread"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

// ErrForbidden is returned when the caller may not see or act on a record.
var ErrForbidden = errors.New("forbidden")

// BlobStorage stores delivered artifacts and returns their public URL.
type BlobStorage interface {
	Upload(ctx context.Context, path string, data []byte, contentType string) (string, error)
}

type CheckoutTrigger interface {
	TriggerCheckout(ctx context.Context, orderID, planTitle string, amountCents int64) (*checkout.Session, error)
}

// Publisher is told about lifecycle changes.
type Publisher interface {
	PublishSubmissionUpdate(sub *models.Submission, action string)
}

type nopPublisher struct{}

func (nopPublisher) PublishSubmissionUpdate(*models.Submission, string) {}

// NopPublisher discards every event.
var NopPublisher Publisher = nopPublisher{}

type Deps struct {
	Store     store.Store
	Blobs     BlobStorage
	Checkout  CheckoutTrigger
	Markers   lastread.Store
	Publisher Publisher
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

type Services struct {
	Submissions *SubmissionService
	Delivery    *DeliveryService
	Quotes      *QuoteService
	Review      *ReviewService
	Editors     *EditorService
	Chat        *ChatTracker
	Export      *ExportService
}

func New(d Deps) *Services {
	if d.Publisher == nil {
		d.Publisher = NopPublisher
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	chat := NewChatTracker(d.Store, d.Markers, d.Logger, d.Now)
	review := NewReviewService(d.Store, d.Publisher, d.Metrics, d.Logger, d.Now)
	return &Services{
		Submissions: NewSubmissionService(d.Store, chat, review),
		Delivery:    NewDeliveryService(d.Store, d.Blobs, d.Publisher, d.Metrics, d.Logger),
		Quotes:      NewQuoteService(d.Store, d.Checkout, d.Publisher, d.Metrics, d.Logger),
		Review:      review,
		Editors:     NewEditorService(d.Store, d.Publisher, d.Metrics, d.Logger),
		Chat:        chat,
		Export:      NewExportService(review),
	}
}

// CanView reports whether actor may see sub: admins see everything, editors
// their assignments, users their own submissions.
func CanView(sub *models.Submission, actor models.Actor) bool {
	switch actor.Role {
	case models.RoleAdmin:
		return true
	case models.RoleEditor:
		return sub.AssignedEditorID == actor.ID
	default:
		return sub.UserID == actor.ID
	}
}

func countTransition(m *metrics.Metrics, to models.Status) {
	m.Transitions.WithLabelValues(string(to)).Inc()
}
