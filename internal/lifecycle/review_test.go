package lifecycle_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/models"
)

func reviewing() *models.Submission {
	return &models.Submission{
		Plan:          models.PlanFurnitureAdd,
		Status:        models.StatusReviewing,
		PaymentStatus: models.PaymentPaid,
	}
}

func TestApprove(t *testing.T) {
	next, err := lifecycle.Approve(reviewing(), models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, next)
}

func TestApprove_RepeatedIsInvalidTransition(t *testing.T) {
	sub := reviewing()
	sub.Status = models.StatusCompleted

	_, err := lifecycle.Approve(sub, models.RoleAdmin)
	assert.True(t, lifecycle.IsInvalidTransition(err))
}

func TestApprove_RequiresAdmin(t *testing.T) {
	for _, role := range []models.Role{models.RoleEditor, models.RoleUser} {
		_, err := lifecycle.Approve(reviewing(), role)
		assert.True(t, lifecycle.IsInvalidTransition(err), role)
	}
}

func TestReviewGate_WrongStatus(t *testing.T) {
	for _, status := range []models.Status{models.StatusPending, models.StatusProcessing, models.StatusCompleted} {
		sub := reviewing()
		sub.Status = status

		_, err := lifecycle.Approve(sub, models.RoleAdmin)
		assert.True(t, lifecycle.IsInvalidTransition(err), status)

		_, err = lifecycle.Reject(sub, models.RoleAdmin)
		assert.True(t, lifecycle.IsInvalidTransition(err), status)
	}
}

func TestReviewGate_UnpaidNotVisible(t *testing.T) {
	sub := reviewing()
	sub.PaymentStatus = models.PaymentUnpaid

	_, err := lifecycle.Approve(sub, models.RoleAdmin)
	assert.True(t, lifecycle.IsInvalidTransition(err))
	assert.False(t, lifecycle.ReviewVisible(sub))
}

func TestReject(t *testing.T) {
	next, err := lifecycle.Reject(reviewing(), models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, next)
}

func TestParseQuoteAmount(t *testing.T) {
	amount, err := lifecycle.ParseQuoteAmount(" 5000 ")
	require.NoError(t, err)
	assert.Equal(t, int64(5000), amount)

	amount, err = lifecycle.ParseQuoteAmount("2147483647")
	require.NoError(t, err)
	assert.Equal(t, int64(lifecycle.MaxQuoteAmount), amount)

	for _, raw := range []string{"", "0", "-10", "abc", "50.5", "1e3", "2147483648", "9000000000"} {
		_, err := lifecycle.ParseQuoteAmount(raw)
		assert.True(t, lifecycle.IsValidation(err), raw)
	}
}

func TestCanCheckout_QuoteGated(t *testing.T) {
	sub := &models.Submission{Plan: models.PlanFloorPlanCG, PaymentStatus: models.PaymentQuotePending}

	_, ok := lifecycle.CanCheckout(sub)
	assert.False(t, ok)

	amount := int64(5000)
	sub.QuotedAmount = &amount
	got, ok := lifecycle.CanCheckout(sub)
	assert.True(t, ok)
	assert.Equal(t, int64(5000), got)

	sub.PaymentStatus = models.PaymentPaid
	_, ok = lifecycle.CanCheckout(sub)
	assert.False(t, ok)
}

func TestCanCheckout_FixedPrice(t *testing.T) {
	sub := &models.Submission{Plan: models.PlanFurnitureBoth, PaymentStatus: models.PaymentUnpaid}
	got, ok := lifecycle.CanCheckout(sub)
	assert.True(t, ok)
	assert.Equal(t, models.PlanFurnitureBoth.PriceCents(), got)
}

func TestCheckQuotable(t *testing.T) {
	assert.True(t, lifecycle.IsValidation(lifecycle.CheckQuotable(&models.Submission{Plan: models.PlanFurnitureAdd})))
	assert.NoError(t, lifecycle.CheckQuotable(&models.Submission{Plan: models.PlanFloorPlanCG, PaymentStatus: models.PaymentQuotePending}))
	assert.True(t, lifecycle.IsInvalidTransition(lifecycle.CheckQuotable(&models.Submission{Plan: models.PlanFloorPlanCG, PaymentStatus: models.PaymentPaid})))
}
