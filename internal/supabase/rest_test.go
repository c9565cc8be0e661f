package supabase_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	supa "github.com/supabase-community/supabase-go"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
	"staging-console-backend/internal/supabase"
)

// fakePostgrest serves just enough of /rest/v1/submissions for the store.
type fakePostgrest struct {
	mu            sync.Mutex
	rows          map[string]map[string]interface{}
	missingColumn string
	// beforeStatusPatch runs once, before the first conditional status update.
	beforeStatusPatch func(rows map[string]map[string]interface{})
}

func (f *fakePostgrest) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !strings.HasSuffix(r.URL.Path, "/rest/v1/submissions") {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	id := strings.TrimPrefix(q.Get("id"), "eq.")

	switch r.Method {
	case http.MethodGet:
		writeRows(w, f.rows[id])
	case http.MethodPatch:
		var body map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if _, ok := body[f.missingColumn]; ok && f.missingColumn != "" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{
				"code":    "PGRST204",
				"message": "Could not find the '" + f.missingColumn + "' column of 'submissions' in the schema cache",
			})
			return
		}
		status := q.Get("status")
		if strings.HasPrefix(status, "eq.") && f.beforeStatusPatch != nil {
			hook := f.beforeStatusPatch
			f.beforeStatusPatch = nil
			hook(f.rows)
		}
		row, ok := f.rows[id]
		if !ok {
			writeRows(w, nil)
			return
		}
		if want, ok := strings.CutPrefix(status, "eq."); ok && row["status"] != want {
			writeRows(w, nil)
			return
		}
		if skip, ok := strings.CutPrefix(status, "neq."); ok && row["status"] == skip {
			writeRows(w, nil)
			return
		}
		for k, v := range body {
			row[k] = v
		}
		writeRows(w, row)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeRows(w http.ResponseWriter, row map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	rows := []map[string]interface{}{}
	if row != nil {
		rows = append(rows, row)
	}
	_ = json.NewEncoder(w).Encode(rows)
}

func newRestStore(t *testing.T, fake *fakePostgrest) *supabase.RestClient {
	t.Helper()
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	client, err := supa.NewClient(server.URL, "test-key", nil)
	require.NoError(t, err)
	return supabase.NewRestClient(client)
}

func dualStageRow(removeURL interface{}) map[string]interface{} {
	return map[string]interface{}{
		"id":                "S1",
		"user_id":           "u1",
		"plan":              "FURNITURE_BOTH",
		"status":            "processing",
		"payment_status":    "paid",
		"quoted_amount":     nil,
		"result_remove_url": removeURL,
		"result_add_url":    nil,
		"result_data_url":   nil,
		"created_at":        "2026-03-01T09:00:00Z",
	}
}

func TestRestClient_ApplyDeliverySeesSiblingStage(t *testing.T) {
	fake := &fakePostgrest{rows: map[string]map[string]interface{}{"S1": dualStageRow("https://cdn/r.jpg")}}
	rest := newRestStore(t, fake)

	sub, err := rest.ApplyDelivery(context.Background(), "S1", models.StageAdd, "https://cdn/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReviewing, sub.Status)
	assert.Equal(t, "https://cdn/a.jpg", sub.ResultDataURL)
	assert.Equal(t, "reviewing", fake.rows["S1"]["status"])
}

func TestRestClient_ApplyDeliveryFirstStageKeepsStatus(t *testing.T) {
	fake := &fakePostgrest{rows: map[string]map[string]interface{}{"S1": dualStageRow(nil)}}
	rest := newRestStore(t, fake)

	sub, err := rest.ApplyDelivery(context.Background(), "S1", models.StageRemove, "https://cdn/r.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, sub.Status)
}

func TestRestClient_ApplyDeliveryRereadsOnStatusConflict(t *testing.T) {
	fake := &fakePostgrest{rows: map[string]map[string]interface{}{"S1": dualStageRow("https://cdn/r.jpg")}}
	fake.beforeStatusPatch = func(rows map[string]map[string]interface{}) {
		// the sibling delivery advanced the status first
		rows["S1"]["status"] = "reviewing"
	}
	rest := newRestStore(t, fake)

	sub, err := rest.ApplyDelivery(context.Background(), "S1", models.StageAdd, "https://cdn/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.StatusReviewing, sub.Status)
}

func TestRestClient_ApplyDeliveryLeavesCompletedUntouched(t *testing.T) {
	row := dualStageRow("https://cdn/r.jpg")
	row["result_add_url"] = "https://cdn/a.jpg"
	row["result_data_url"] = "https://cdn/a.jpg"
	row["status"] = "completed"
	fake := &fakePostgrest{rows: map[string]map[string]interface{}{"S1": row}}
	rest := newRestStore(t, fake)

	_, err := rest.ApplyDelivery(context.Background(), "S1", models.StageAdd, "https://cdn/a2.jpg")
	var transitionErr *lifecycle.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, "completed", fake.rows["S1"]["status"])
	assert.Equal(t, "https://cdn/a.jpg", fake.rows["S1"]["result_add_url"])
}

func TestRestClient_MissingQuoteColumnIsSchemaError(t *testing.T) {
	fake := &fakePostgrest{
		rows:          map[string]map[string]interface{}{"S1": dualStageRow(nil)},
		missingColumn: models.ColQuotedAmount,
	}
	rest := newRestStore(t, fake)

	_, err := rest.UpdateSubmission(context.Background(), "S1", store.Fields{models.ColQuotedAmount: int64(5000)})
	schemaErr, ok := lifecycle.AsSchemaError(err)
	require.True(t, ok, "expected schema error, got %v", err)
	assert.Equal(t, lifecycle.QuotedAmountMigration, schemaErr.Migration)
}

func TestRestClient_GetSubmissionNotFound(t *testing.T) {
	rest := newRestStore(t, &fakePostgrest{rows: map[string]map[string]interface{}{}})

	_, err := rest.GetSubmission(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestRestClient_MessagesOrderByTimeThenSequence(t *testing.T) {
	var order string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.True(t, strings.HasSuffix(r.URL.Path, "/rest/v1/messages"), r.URL.Path)
		order = r.URL.Query().Get("order")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"m1","submission_id":"S1","sender_role":"user","sender_id":"u1","body":"first","created_at":"2026-03-01T09:00:00Z"},
			{"id":"m2","submission_id":"S1","sender_role":"admin","sender_id":null,"body":"second","created_at":"2026-03-01T09:00:00Z"}
		]`))
	}))
	defer server.Close()

	client, err := supa.NewClient(server.URL, "test-key", nil)
	require.NoError(t, err)
	rest := supabase.NewRestClient(client)

	messages, err := rest.ListSubmissionMessages(context.Background(), "S1")
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "m2", messages[1].ID)

	timeAt := strings.Index(order, "created_at.asc")
	seqAt := strings.Index(order, "seq.asc")
	require.GreaterOrEqual(t, timeAt, 0, order)
	assert.Greater(t, seqAt, timeAt, order)
}
