package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"staging-console-backend/internal/models"
)

func postWebhook(t *testing.T, env *testEnv, auth, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, "/api/v1/webhooks/payment", strings.NewReader(body))
	require.NoError(t, err)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)
	return w
}

func TestPaymentWebhook(t *testing.T) {
	env := newEnv(t, submission("S1", models.PlanFurnitureRemove, models.StatusPending, models.PaymentUnpaid))
	completed := `{"event":"checkout.completed","order_id":"S1","session_id":"cs_S1"}`

	assert.Equal(t, http.StatusUnauthorized, postWebhook(t, env, "", completed).Code)
	assert.Equal(t, http.StatusUnauthorized, postWebhook(t, env, "Bearer wrong", completed).Code)
	assert.Equal(t, http.StatusBadRequest, postWebhook(t, env, testWebhookToken, "{").Code)

	w := postWebhook(t, env, "Bearer "+testWebhookToken, `{"event":"checkout.expired","order_id":"S1"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	sub, err := env.store.GetSubmission(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentUnpaid, sub.PaymentStatus)

	for i := 0; i < 2; i++ {
		w = postWebhook(t, env, "Bearer "+testWebhookToken, completed)
		assert.Equal(t, http.StatusOK, w.Code)
	}
	sub, err = env.store.GetSubmission(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentPaid, sub.PaymentStatus)

	w = postWebhook(t, env, testWebhookToken, `{"event":"checkout.completed","order_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
