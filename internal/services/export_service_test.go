package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"staging-console-backend/internal/models"
)

func TestExportQueue(t *testing.T) {
	quoted := submission("S2", models.PlanFloorPlanCG, models.StatusPending, models.PaymentQuotePending)
	quoted.QuotedAmount = int64Ptr(5000)
	f := newFixture(
		quoted,
		submission("S3", models.PlanFurnitureAdd, models.StatusPending, models.PaymentUnpaid),
	)

	file, name, err := f.svc.Export.ExportQueue(context.Background(), time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, "review_queue_20260302_103000.xlsx", name)

	rows, err := file.GetRows("Review Queue")
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus the one paid-or-quoted submission")
	assert.Equal(t, "Submission", rows[0][0])
	assert.Equal(t, "S2", rows[1][0])
	assert.Equal(t, "Floor Plan CG", rows[1][2])
	assert.Equal(t, "pending", rows[1][3])
	assert.Equal(t, "50", rows[1][5])
	assert.Equal(t, "2026-03-03T09:00:00Z", rows[1][8])
}
