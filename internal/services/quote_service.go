package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"staging-console-backend/internal/checkout"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/metrics"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

type QuoteService struct {
	store     store.SubmissionStore
	checkout  CheckoutTrigger
	publisher Publisher
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewQuoteService(s store.SubmissionStore, trigger CheckoutTrigger, publisher Publisher, m *metrics.Metrics, logger *zap.Logger) *QuoteService {
	return &QuoteService{store: s, checkout: trigger, publisher: publisher, metrics: m, logger: logger}
}

// SetQuote stores the price of a quote-gated submission. The payment status
// is left as it is; checkout becomes possible once an amount is present.
func (s *QuoteService) SetQuote(ctx context.Context, id string, amountCents int64) (*models.Submission, error) {
	if err := lifecycle.ValidateQuoteAmount(amountCents); err != nil {
		return nil, err
	}

	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.CheckQuotable(sub); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateSubmission(ctx, id, store.Fields{models.ColQuotedAmount: amountCents})
	if err != nil {
		if schemaErr, ok := lifecycle.AsSchemaError(err); ok {
			s.metrics.SchemaErrors.Inc()
			s.logger.Error("quote column missing, migration required",
				zap.String("submission_id", id),
				zap.String("migration", schemaErr.Migration))
			return nil, schemaErr
		}
		return nil, err
	}

	s.metrics.QuotesSet.Inc()
	s.logger.Info("quote set", zap.String("submission_id", id), zap.Int64("amount_cents", amountCents))
	s.publisher.PublishSubmissionUpdate(updated, "quoted")
	return updated, nil
}

// Checkout starts payment for the owner of a submission.
func (s *QuoteService) Checkout(ctx context.Context, id string, actor models.Actor) (*checkout.Session, int64, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if actor.Role != models.RoleAdmin && sub.UserID != actor.ID {
		return nil, 0, fmt.Errorf("checkout %s: %w", id, ErrForbidden)
	}

	amount, ok := lifecycle.CanCheckout(sub)
	if !ok {
		reason := "payment is not pending"
		if sub.Plan.IsQuoteGated() && sub.QuotedAmount == nil {
			reason = "quote has not been set"
		}
		return nil, 0, &lifecycle.InvalidTransitionError{From: sub.Status, Action: "checkout", Reason: reason}
	}
	if s.checkout == nil {
		return nil, 0, fmt.Errorf("checkout is not configured")
	}

	session, err := s.checkout.TriggerCheckout(ctx, sub.ID, sub.Plan.Title(), amount)
	if err != nil {
		s.metrics.CheckoutsFailed.Inc()
		return nil, 0, fmt.Errorf("failed to trigger checkout: %w", err)
	}

	s.logger.Info("checkout triggered",
		zap.String("submission_id", id),
		zap.String("session_id", session.SessionID),
		zap.Int64("amount_cents", amount))
	return session, amount, nil
}

// MarkPaid records payment completion. Repeated notifications are no-ops.
func (s *QuoteService) MarkPaid(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if sub.PaymentStatus == models.PaymentPaid {
		return sub, nil
	}

	updated, err := s.store.UpdateSubmission(ctx, id, store.Fields{models.ColPaymentStatus: string(models.PaymentPaid)})
	if err != nil {
		return nil, err
	}
	s.logger.Info("payment completed", zap.String("submission_id", id))
	s.publisher.PublishSubmissionUpdate(updated, "paid")
	return updated, nil
}
