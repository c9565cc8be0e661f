package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"staging-console-backend/internal/models"
)

func TestDeliver_DualStageReachesReviewAfterBoth(t *testing.T) {
	env := newEnv(t, submission("S1", models.PlanFurnitureBoth, models.StatusProcessing, models.PaymentPaid))
	editorToken := token(t, "ed-1", models.RoleEditor)

	body, ct := multipartDelivery(t, "remove", pngBytes)
	w := env.do(t, http.MethodPost, "/api/v1/submissions/S1/deliveries", editorToken, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var sub models.Submission
	decode(t, w, &sub)
	assert.Equal(t, models.StatusProcessing, sub.Status)
	assert.Equal(t, "https://cdn.example/results/S1_remove.jpg", sub.ResultRemoveURL)

	body, ct = multipartDelivery(t, "add", pngBytes)
	w = env.do(t, http.MethodPost, "/api/v1/submissions/S1/deliveries", editorToken, body, ct)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &sub)
	assert.Equal(t, models.StatusReviewing, sub.Status)
	assert.Equal(t, sub.ResultAddURL, sub.ResultDataURL)
}

func TestDeliver_Errors(t *testing.T) {
	env := newEnv(t,
		submission("S1", models.PlanFurnitureRemove, models.StatusProcessing, models.PaymentPaid),
		submission("S2", models.PlanFurnitureRemove, models.StatusCompleted, models.PaymentPaid),
	)
	adminToken := token(t, "admin-1", models.RoleAdmin)

	body, ct := multipartDelivery(t, "single", []byte("not an image"))
	w := env.do(t, http.MethodPost, "/api/v1/submissions/S1/deliveries", adminToken, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	body, ct = multipartDelivery(t, "add", pngBytes)
	w = env.do(t, http.MethodPost, "/api/v1/submissions/S1/deliveries", adminToken, body, ct)
	assert.Equal(t, http.StatusBadRequest, w.Code, "wrong stage for plan")

	body, ct = multipartDelivery(t, "", pngBytes)
	w = env.do(t, http.MethodPost, "/api/v1/submissions/S2/deliveries", adminToken, body, ct)
	assert.Equal(t, http.StatusConflict, w.Code)

	body, ct = multipartDelivery(t, "single", pngBytes)
	w = env.do(t, http.MethodPost, "/api/v1/submissions/S1/deliveries", token(t, "u1", models.RoleUser), body, ct)
	assert.Equal(t, http.StatusForbidden, w.Code)

	body, ct = multipartDelivery(t, "single", pngBytes)
	w = env.do(t, http.MethodPost, "/api/v1/submissions/S1/deliveries", token(t, "ed-2", models.RoleEditor), body, ct)
	assert.Equal(t, http.StatusForbidden, w.Code, "editor not assigned")

	w = env.do(t, http.MethodPost, "/api/v1/submissions/S1/deliveries", adminToken, nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "missing file")
}

func TestDeliver_UploadFailureLeavesSubmission(t *testing.T) {
	env := newEnv(t, submission("S1", models.PlanFurnitureRemove, models.StatusProcessing, models.PaymentPaid))
	env.blobs.err = errors.New("bucket unavailable")

	body, ct := multipartDelivery(t, "single", pngBytes)
	w := env.do(t, http.MethodPost, "/api/v1/submissions/S1/deliveries", token(t, "ed-1", models.RoleEditor), body, ct)
	assert.Equal(t, http.StatusBadGateway, w.Code)

	sub, err := env.store.GetSubmission(context.Background(), "S1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, sub.Status)
	assert.Empty(t, sub.ResultDataURL)
}
