package services

import (
	"context"
	"fmt"

	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

type SubmissionService struct {
	store  store.SubmissionStore
	chat   *ChatTracker
	review *ReviewService
}

func NewSubmissionService(s store.SubmissionStore, chat *ChatTracker, review *ReviewService) *SubmissionService {
	return &SubmissionService{store: s, chat: chat, review: review}
}

// List returns the submissions an actor works with: the review queue for
// admins, assignments for editors, own orders for users.
func (s *SubmissionService) List(ctx context.Context, actor models.Actor) ([]models.Submission, error) {
	switch actor.Role {
	case models.RoleAdmin:
		return s.review.Queue(ctx)
	case models.RoleEditor:
		return s.store.ListSubmissions(ctx, store.SubmissionFilter{AssignedEditorID: actor.ID})
	default:
		return s.store.ListSubmissions(ctx, store.SubmissionFilter{UserID: actor.ID})
	}
}

// Get loads a submission the actor is allowed to see.
func (s *SubmissionService) Get(ctx context.Context, id string, actor models.Actor) (*models.Submission, error) {
	sub, err := s.store.GetSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanView(sub, actor) {
		return nil, fmt.Errorf("submission %s: %w", id, ErrForbidden)
	}
	return sub, nil
}

// Views lists the actor's submissions with derived fields and chat badges.
func (s *SubmissionService) Views(ctx context.Context, actor models.Actor) ([]models.SubmissionView, error) {
	subs, err := s.List(ctx, actor)
	if err != nil {
		return nil, err
	}
	badges, err := s.chat.Badges(ctx, actor, subs)
	if err != nil {
		return nil, err
	}

	views := make([]models.SubmissionView, len(subs))
	for i := range subs {
		views[i] = NewView(&subs[i], badges[subs[i].ID])
	}
	return views, nil
}

// View returns one submission with derived fields.
func (s *SubmissionService) View(ctx context.Context, id string, actor models.Actor) (*models.SubmissionView, error) {
	sub, err := s.Get(ctx, id, actor)
	if err != nil {
		return nil, err
	}
	badges, err := s.chat.Badges(ctx, actor, []models.Submission{*sub})
	if err != nil {
		return nil, err
	}
	view := NewView(sub, badges[sub.ID])
	return &view, nil
}

func NewView(sub *models.Submission, badge models.ChatBadge) models.SubmissionView {
	_, canCheckout := lifecycle.CanCheckout(sub)
	return models.SubmissionView{
		Submission:    *sub,
		DisplayStatus: lifecycle.DisplayStatus(sub),
		PlanTitle:     sub.Plan.Title(),
		DueDate:       lifecycle.DueDate(sub),
		CanCheckout:   canCheckout,
		Chat:          badge,
	}
}
