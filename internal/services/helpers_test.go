package services_test

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"staging-console-backend/internal/checkout"
	"staging-console-backend/internal/lastread"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
	"staging-console-backend/internal/store"
)

var (
	pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
	baseTime = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	admin  = models.Actor{ID: "admin-1", Role: models.RoleAdmin}
	editor = models.Actor{ID: "ed-1", Role: models.RoleEditor}
	owner  = models.Actor{ID: "u1", Role: models.RoleUser}
)

type fakeBlobs struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
	// during runs while the upload is in flight.
	during func()
}

func (f *fakeBlobs) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if f.during != nil {
		f.during()
	}
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploads == nil {
		f.uploads = make(map[string][]byte)
	}
	f.uploads[path] = data
	return "https://cdn.example/" + path, nil
}

type checkoutCall struct {
	OrderID string
	Title   string
	Amount  int64
}

type fakeCheckout struct {
	calls []checkoutCall
	err   error
}

func (f *fakeCheckout) TriggerCheckout(ctx context.Context, orderID, planTitle string, amountCents int64) (*checkout.Session, error) {
	f.calls = append(f.calls, checkoutCall{OrderID: orderID, Title: planTitle, Amount: amountCents})
	if f.err != nil {
		return nil, f.err
	}
	return &checkout.Session{SessionID: "cs_" + orderID, OrderID: orderID, CheckoutURL: "https://pay.example/" + orderID}, nil
}

type recordingPublisher struct {
	mu      sync.Mutex
	actions []string
}

func (p *recordingPublisher) PublishSubmissionUpdate(sub *models.Submission, action string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.actions = append(p.actions, sub.ID+":"+action)
}

// schemaLessStore rejects quoted_amount writes like an unmigrated database.
type schemaLessStore struct {
	*store.MemoryStore
}

func (s schemaLessStore) UpdateSubmission(ctx context.Context, id string, fields store.Fields) (*models.Submission, error) {
	if _, ok := fields[models.ColQuotedAmount]; ok {
		return nil, &lifecycle.SchemaError{
			Column:    models.ColQuotedAmount,
			Migration: lifecycle.QuotedAmountMigration,
			Err:       errors.New(`pq: column "quoted_amount" of relation "submissions" does not exist`),
		}
	}
	return s.MemoryStore.UpdateSubmission(ctx, id, fields)
}

// mutedStore cannot append messages.
type mutedStore struct {
	*store.MemoryStore
}

func (mutedStore) AppendMessage(ctx context.Context, msg *models.Message) error {
	return errors.New("messages table unavailable")
}

type fixture struct {
	store     *store.MemoryStore
	blobs     *fakeBlobs
	checkout  *fakeCheckout
	publisher *recordingPublisher
	metrics   *metrics.Metrics
	markers   *lastread.MemoryStore
	clock     *clock
	svc       *services.Services
}

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newFixture(subs ...models.Submission) *fixture {
	mem := store.NewMemoryStore()
	for _, sub := range subs {
		mem.PutSubmission(sub)
	}
	mem.PutEditor(models.Editor{ID: "ed-1", Name: "Ana", Specialty: "staging"})

	return newFixtureWith(mem, mem)
}

func newFixtureWith(mem *store.MemoryStore, s store.Store) *fixture {
	f := &fixture{
		store:     mem,
		blobs:     &fakeBlobs{},
		checkout:  &fakeCheckout{},
		publisher: &recordingPublisher{},
		metrics:   metrics.New(),
		markers:   lastread.NewMemoryStore(),
		clock:     &clock{now: baseTime.Add(time.Hour)},
	}
	f.svc = services.New(services.Deps{
		Store:     s,
		Blobs:     f.blobs,
		Checkout:  f.checkout,
		Markers:   f.markers,
		Publisher: f.publisher,
		Metrics:   f.metrics,
		Logger:    zap.NewNop(),
		Now:       f.clock.Now,
	})
	return f
}

func submission(id string, plan models.Plan, status models.Status, payment models.PaymentStatus) models.Submission {
	return models.Submission{
		ID:            id,
		UserID:        "u1",
		Plan:          plan,
		Status:        status,
		PaymentStatus: payment,
		Timestamp:     baseTime,
	}
}

func int64Ptr(v int64) *int64 {
	return &v
}
