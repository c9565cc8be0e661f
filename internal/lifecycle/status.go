// Package lifecycle holds the submission state machine. Everything here is a
// pure function of its arguments; stores and services call into it so the
// rules live in one place.
package lifecycle

import (
	"fmt"
	"time"

	"staging-console-backend/internal/models"
)

// Turnaround is the fixed offset between order time and due date.
const Turnaround = 48 * time.Hour

// NextStatus is the status a submission should have after a delivery write.
// A completed submission stays completed.
func NextStatus(plan models.Plan, current models.Status, results models.Results) models.Status {
	if current == models.StatusCompleted {
		return current
	}
	if plan.IsDualStage() {
		if results.Remove != "" && results.Add != "" {
			return models.StatusReviewing
		}
		return current
	}
	return models.StatusReviewing
}

// ValidateStage checks that the stage belongs to the plan.
func ValidateStage(plan models.Plan, stage models.Stage) error {
	switch stage {
	case models.StageRemove, models.StageAdd:
		if !plan.IsDualStage() {
			return &ValidationError{Field: "stage", Reason: fmt.Sprintf("plan %s only accepts the %q stage", plan, models.StageSingle)}
		}
	case models.StageSingle:
		if plan.IsDualStage() {
			return &ValidationError{Field: "stage", Reason: fmt.Sprintf("plan %s needs %q or %q", plan, models.StageRemove, models.StageAdd)}
		}
	default:
		return &ValidationError{Field: "stage", Reason: fmt.Sprintf("unknown stage %q", stage)}
	}
	return nil
}

// ApplyStage writes a delivered URL into the submission and recomputes its
// status. Callers must hold the freshest copy of the record.
func ApplyStage(sub *models.Submission, stage models.Stage, url string) {
	switch stage {
	case models.StageRemove:
		sub.ResultRemoveURL = url
	case models.StageAdd:
		sub.ResultAddURL = url
		sub.ResultDataURL = url
	case models.StageSingle:
		sub.ResultDataURL = url
	}
	sub.Status = NextStatus(sub.Plan, sub.Status, sub.Results())
}

// StageFields lists the columns a stage delivery writes.
func StageFields(stage models.Stage, url string) map[string]interface{} {
	switch stage {
	case models.StageRemove:
		return map[string]interface{}{models.ColResultRemoveURL: url}
	case models.StageAdd:
		return map[string]interface{}{models.ColResultAddURL: url, models.ColResultDataURL: url}
	default:
		return map[string]interface{}{models.ColResultDataURL: url}
	}
}

// CheckDeliverable rejects deliveries the lifecycle can no longer accept.
func CheckDeliverable(sub *models.Submission, stage models.Stage) error {
	if err := ValidateStage(sub.Plan, stage); err != nil {
		return err
	}
	if sub.Status == models.StatusCompleted {
		return &InvalidTransitionError{From: sub.Status, Action: "deliver", Reason: "submission is already completed"}
	}
	return nil
}

// DisplayStatus is the status shown in listings.
func DisplayStatus(sub *models.Submission) models.Status {
	if sub.Plan.IsQuoteGated() && sub.PaymentStatus == models.PaymentQuotePending && sub.QuotedAmount == nil {
		return models.StatusQuoteRequest
	}
	return sub.Status
}

func DueDate(sub *models.Submission) time.Time {
	return sub.Timestamp.Add(Turnaround)
}

// ReviewVisible reports whether the submission belongs in the admin queue.
// Unpaid submissions are pre-checkout and not yet actionable.
func ReviewVisible(sub *models.Submission) bool {
	return sub.PaymentStatus == models.PaymentPaid || sub.PaymentStatus == models.PaymentQuotePending
}

// ResultPath is the object path of a delivered stage. Re-delivering a stage
// overwrites the same object.
func ResultPath(submissionID string, stage models.Stage) string {
	return fmt.Sprintf("results/%s_%s.jpg", submissionID, stage)
}
