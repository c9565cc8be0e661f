package checkout_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"staging-console-backend/internal/checkout"
)

func TestTriggerCheckout(t *testing.T) {
	var got checkout.SessionIn
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "checkout-S2-5000", r.Header.Get("Idempotency-Key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(checkout.Session{SessionID: "cs_1", OrderID: got.OrderID, CheckoutURL: "https://pay/cs_1"})
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "test-key", checkout.WithBackoffs())
	session, err := client.TriggerCheckout(context.Background(), "S2", "Floor Plan CG", 5000)
	require.NoError(t, err)

	assert.Equal(t, "cs_1", session.SessionID)
	assert.Equal(t, "https://pay/cs_1", session.CheckoutURL)
	assert.Equal(t, int64(5000), got.AmountCents)
	assert.Equal(t, "Floor Plan CG", got.Title)
}

func TestTriggerCheckout_RequoteChangesIdempotencyKey(t *testing.T) {
	var keys []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys = append(keys, r.Header.Get("Idempotency-Key"))
		_ = json.NewEncoder(w).Encode(checkout.Session{SessionID: "cs_1"})
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "k", checkout.WithBackoffs())
	for _, amount := range []int64{5000, 7500, 7500} {
		_, err := client.TriggerCheckout(context.Background(), "S2", "Floor Plan CG", amount)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"checkout-S2-5000", "checkout-S2-7500", "checkout-S2-7500"}, keys)
}

func TestTriggerCheckout_RetriesServerErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_ = json.NewEncoder(w).Encode(checkout.Session{SessionID: "cs_2"})
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "k", checkout.WithBackoffs(0, 0, 0))
	session, err := client.TriggerCheckout(context.Background(), "S1", "Furniture Removal", 3000)
	require.NoError(t, err)
	assert.Equal(t, "cs_2", session.SessionID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestTriggerCheckout_DoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"error":"bad amount"}`))
	}))
	defer server.Close()

	client := checkout.NewClient(server.URL, "k", checkout.WithBackoffs(0, 0, 0))
	_, err := client.TriggerCheckout(context.Background(), "S1", "Furniture Removal", 3000)

	var statusErr *checkout.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnprocessableEntity, statusErr.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestTriggerCheckout_RejectsNonPositiveAmount(t *testing.T) {
	client := checkout.NewClient("http://unused", "k")
	_, err := client.TriggerCheckout(context.Background(), "S1", "Floor Plan CG", 0)
	assert.Error(t, err)
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	client := checkout.NewClient("http://unused", "k", checkout.WithBackoffs(0, 0))
	calls := 0
	err := client.RetryWithBackoff(context.Background(), func() error {
		calls++
		return assert.AnError
	}, 3)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "failed after 3 retries")
	assert.Equal(t, 3, calls)
}
