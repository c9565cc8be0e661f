package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"staging-console-backend/internal/models"
)

func TestHealth(t *testing.T) {
	env := newEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.HealthResponse
	decode(t, w, &resp)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "memory", resp.Store)
}

func TestListSubmissions_RoleScoped(t *testing.T) {
	env := newEnv(t,
		submission("S1", models.PlanFurnitureRemove, models.StatusProcessing, models.PaymentPaid),
		submission("S2", models.PlanFurnitureRemove, models.StatusPending, models.PaymentUnpaid),
		submission("S3", models.PlanFloorPlanCG, models.StatusPending, models.PaymentQuotePending),
	)

	w := env.do(t, http.MethodGet, "/api/v1/submissions", token(t, "admin-1", models.RoleAdmin), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var queue models.SubmissionListResponse
	decode(t, w, &queue)
	ids := []string{}
	for _, v := range queue.Submissions {
		ids = append(ids, v.ID)
		if v.ID == "S3" {
			assert.Equal(t, models.StatusQuoteRequest, v.DisplayStatus)
		}
	}
	assert.ElementsMatch(t, []string{"S1", "S3"}, ids)

	w = env.do(t, http.MethodGet, "/api/v1/submissions", token(t, "u1", models.RoleUser), nil, "")
	var own models.SubmissionListResponse
	decode(t, w, &own)
	assert.Len(t, own.Submissions, 3)

	w = env.do(t, http.MethodGet, "/api/v1/submissions", token(t, "u2", models.RoleUser), nil, "")
	var none models.SubmissionListResponse
	decode(t, w, &none)
	assert.NotNil(t, none.Submissions)
	assert.Empty(t, none.Submissions)
}

func TestGetSubmission(t *testing.T) {
	env := newEnv(t, submission("S1", models.PlanFurnitureRemove, models.StatusProcessing, models.PaymentPaid))

	w := env.do(t, http.MethodGet, "/api/v1/submissions/S1", token(t, "u1", models.RoleUser), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	var view models.SubmissionView
	decode(t, w, &view)
	assert.Equal(t, "Furniture Removal", view.PlanTitle)

	w = env.do(t, http.MethodGet, "/api/v1/submissions/S1", token(t, "u2", models.RoleUser), nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/submissions/nope", token(t, "admin-1", models.RoleAdmin), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/submissions/S1", "", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
