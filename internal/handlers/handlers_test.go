package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"staging-console-backend/internal/checkout"
	"staging-console-backend/internal/config"
	"staging-console-backend/internal/handlers"
	"staging-console-backend/internal/lastread"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/services"
	"staging-console-backend/internal/sse"
	"staging-console-backend/internal/store"
	"staging-console-backend/internal/viewer"
)

const (
	testSecret       = "test-secret-key-for-jwt-signing-must-be-long-enough"
	testWebhookToken = "whk-token"
)

var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

type fakeBlobs struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func (f *fakeBlobs) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
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

type fakeCheckout struct{}

func (fakeCheckout) TriggerCheckout(ctx context.Context, orderID, planTitle string, amountCents int64) (*checkout.Session, error) {
	return &checkout.Session{SessionID: "cs_" + orderID, OrderID: orderID, CheckoutURL: "https://pay.example/" + orderID}, nil
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
			Err:       errors.New("PGRST204: Could not find the 'quoted_amount' column"),
		}
	}
	return s.MemoryStore.UpdateSubmission(ctx, id, fields)
}

type testEnv struct {
	router *gin.Engine
	store  *store.MemoryStore
	blobs  *fakeBlobs
	hub    *sse.Hub
}

func newEnv(t *testing.T, subs ...models.Submission) *testEnv {
	mem := store.NewMemoryStore()
	return newEnvWith(t, mem, mem, subs...)
}

func newEnvWith(t *testing.T, mem *store.MemoryStore, s store.Store, subs ...models.Submission) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	for _, sub := range subs {
		mem.PutSubmission(sub)
	}
	mem.PutEditor(models.Editor{ID: "ed-1", Name: "Ana", Specialty: "staging"})

	cfg := &config.Config{
		SupabaseJWTSecret:   testSecret,
		StoreBackend:        config.StoreMemory,
		PaymentWebhookToken: testWebhookToken,
		ChatPollInterval:    time.Hour,
	}
	logger := zap.NewNop()
	m := metrics.New()
	hub := sse.NewHub(logger)
	blobs := &fakeBlobs{}
	svc := services.New(services.Deps{
		Store:     s,
		Blobs:     blobs,
		Checkout:  fakeCheckout{},
		Markers:   lastread.NewMemoryStore(),
		Publisher: hub,
		Metrics:   m,
		Logger:    logger,
	})

	router := gin.New()
	handlers.New(cfg, svc, hub, m, viewer.NewDownloader(nil), logger).Register(router, cfg)
	return &testEnv{router: router, store: mem, blobs: blobs, hub: hub}
}

func token(t *testing.T, sub string, role models.Role) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": sub,
		"exp": time.Now().Add(time.Hour).Unix(),
		"app_metadata": map[string]interface{}{
			"role": string(role),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func (e *testEnv) do(t *testing.T, method, path, bearer string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, body)
	require.NoError(t, err)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doJSON(t *testing.T, method, path, bearer string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	return e.do(t, method, path, bearer, body, "application/json")
}

func multipartDelivery(t *testing.T, stage string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	if stage != "" {
		require.NoError(t, w.WriteField("stage", stage))
	}
	part, err := w.CreateFormFile("file", "result.png")
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v))
}

func submission(id string, plan models.Plan, status models.Status, payment models.PaymentStatus) models.Submission {
	return models.Submission{
		ID:               id,
		UserID:           "u1",
		Plan:             plan,
		Status:           status,
		PaymentStatus:    payment,
		AssignedEditorID: "ed-1",
		Timestamp:        time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}
