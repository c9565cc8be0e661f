package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"staging-console-backend/internal/models"
)

func TestDownloadResult(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer cdn.Close()

	sub := submission("S1", models.PlanFurnitureBoth, models.StatusReviewing, models.PaymentPaid)
	sub.ResultRemoveURL = cdn.URL + "/results/S1_remove.jpg"
	env := newEnv(t, sub)
	ownerToken := token(t, "u1", models.RoleUser)

	// only the remove stage exists, so it is the default
	w := env.do(t, http.MethodGet, "/api/v1/submissions/S1/result", ownerToken, nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "jpeg-bytes", w.Body.String())
	assert.Equal(t, `attachment; filename="S1_remove.jpg"`, w.Header().Get("Content-Disposition"))

	w = env.do(t, http.MethodGet, "/api/v1/submissions/S1/result?stage=add", ownerToken, nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/submissions/S1/result?stage=single", ownerToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadResult_RedirectsWhenFetchFails(t *testing.T) {
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer cdn.Close()

	sub := submission("S1", models.PlanFurnitureRemove, models.StatusCompleted, models.PaymentPaid)
	sub.ResultDataURL = cdn.URL + "/results/S1_single.jpg"
	env := newEnv(t, sub)

	w := env.do(t, http.MethodGet, "/api/v1/submissions/S1/result", token(t, "u1", models.RoleUser), nil, "")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, sub.ResultDataURL, w.Header().Get("Location"))
}
