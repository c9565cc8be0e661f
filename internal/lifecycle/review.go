package lifecycle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"staging-console-backend/internal/models"
)

const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Approve returns the target status of an admin approval. A submission that is
// already completed is rejected rather than treated as a no-op.
func Approve(sub *models.Submission, role models.Role) (models.Status, error) {
	if err := checkReviewable(sub, role, ActionApprove); err != nil {
		return sub.Status, err
	}
	return models.StatusCompleted, nil
}

// Reject sends a submission in review back to the editor.
func Reject(sub *models.Submission, role models.Role) (models.Status, error) {
	if err := checkReviewable(sub, role, ActionReject); err != nil {
		return sub.Status, err
	}
	return models.StatusProcessing, nil
}

func checkReviewable(sub *models.Submission, role models.Role, action string) error {
	if role != models.RoleAdmin {
		return &InvalidTransitionError{From: sub.Status, Action: action, Reason: "admin role required"}
	}
	if !ReviewVisible(sub) {
		return &InvalidTransitionError{From: sub.Status, Action: action, Reason: "submission has not been checked out"}
	}
	if sub.Status != models.StatusReviewing {
		return &InvalidTransitionError{From: sub.Status, Action: action}
	}
	return nil
}

// ParseQuoteAmount parses an amount in cents. Only positive integers pass.
func ParseQuoteAmount(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, &ValidationError{Field: "amount", Reason: "amount is required"}
	}
	amount, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Reason: "amount must be a whole number of cents"}
	}
	if err := ValidateQuoteAmount(amount); err != nil {
		return 0, err
	}
	return amount, nil
}

// MaxQuoteAmount is the largest quote the integer quoted_amount column holds.
const MaxQuoteAmount = math.MaxInt32

func ValidateQuoteAmount(amount int64) error {
	if amount <= 0 {
		return &ValidationError{Field: "amount", Reason: "amount must be positive"}
	}
	if amount > MaxQuoteAmount {
		return &ValidationError{Field: "amount", Reason: fmt.Sprintf("amount must not exceed %d cents", MaxQuoteAmount)}
	}
	return nil
}

// CheckQuotable rejects quotes for plans that are not quote-gated or that are
// already paid.
func CheckQuotable(sub *models.Submission) error {
	if !sub.Plan.IsQuoteGated() {
		return &ValidationError{Field: "plan", Reason: "plan " + string(sub.Plan) + " has a fixed price"}
	}
	if sub.PaymentStatus == models.PaymentPaid {
		return &InvalidTransitionError{From: sub.Status, Action: "quote", Reason: "submission is already paid"}
	}
	return nil
}

// CanCheckout reports whether checkout may be triggered and for what amount.
func CanCheckout(sub *models.Submission) (int64, bool) {
	if sub.Plan.IsQuoteGated() {
		if sub.PaymentStatus != models.PaymentQuotePending || sub.QuotedAmount == nil {
			return 0, false
		}
		return *sub.QuotedAmount, true
	}
	if sub.PaymentStatus != models.PaymentUnpaid {
		return 0, false
	}
	return sub.Plan.PriceCents(), true
}
