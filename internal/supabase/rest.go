package supabase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/supabase-community/postgrest-go"
	"github.com/supabase-community/supabase-go"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

// maxStatusAttempts bounds the re-read loop in ApplyDelivery.
const maxStatusAttempts = 3

const submissionSelect = "id,user_id,plan,status,payment_status,quoted_amount,result_remove_url,result_add_url,result_data_url,assigned_editor_id,original_url,notes,created_at"

// RestClient talks to the submissions tables through PostgREST. It is used
// when no direct database connection is configured.
type RestClient struct {
	client *supabase.Client
}

var _ store.Store = (*RestClient)(nil)

func NewRestClient(client *supabase.Client) *RestClient {
	return &RestClient{client: client}
}

type submissionRow struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	Plan             string    `json:"plan"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	QuotedAmount     *int64    `json:"quoted_amount"`
	ResultRemoveURL  *string   `json:"result_remove_url"`
	ResultAddURL     *string   `json:"result_add_url"`
	ResultDataURL    *string   `json:"result_data_url"`
	AssignedEditorID *string   `json:"assigned_editor_id"`
	OriginalURL      *string   `json:"original_url"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

func (r submissionRow) toModel() *models.Submission {
	return &models.Submission{
		ID:               r.ID,
		UserID:           r.UserID,
		Plan:             models.Plan(r.Plan),
		Status:           models.Status(r.Status),
		PaymentStatus:    models.PaymentStatus(r.PaymentStatus),
		QuotedAmount:     r.QuotedAmount,
		ResultRemoveURL:  deref(r.ResultRemoveURL),
		ResultAddURL:     deref(r.ResultAddURL),
		ResultDataURL:    deref(r.ResultDataURL),
		AssignedEditorID: deref(r.AssignedEditorID),
		OriginalURL:      deref(r.OriginalURL),
		Notes:            deref(r.Notes),
		Timestamp:        r.CreatedAt,
	}
}

type messageRow struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"`
	SenderRole   string    `json:"sender_role"`
	SenderID     *string   `json:"sender_id,omitempty"`
	Body         string    `json:"body"`
	CreatedAt    time.Time `json:"created_at"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *RestClient) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	var rows []submissionRow
	_, err := r.client.From("submissions").
		Select(submissionSelect, "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, classifyRestError(err, "get submission")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("submission %s: %w", id, store.ErrNotFound)
	}
	return rows[0].toModel(), nil
}

func (r *RestClient) ListSubmissions(ctx context.Context, filter store.SubmissionFilter) ([]models.Submission, error) {
	q := r.client.From("submissions").Select(submissionSelect, "", false)
	if filter.UserID != "" {
		q = q.Eq("user_id", filter.UserID)
	}
	if filter.AssignedEditorID != "" {
		q = q.Eq("assigned_editor_id", filter.AssignedEditorID)
	}
	if len(filter.PaymentStatuses) > 0 {
		statuses := make([]string, len(filter.PaymentStatuses))
		for i, ps := range filter.PaymentStatuses {
			statuses[i] = string(ps)
		}
		q = q.In("payment_status", statuses)
	}

	var rows []submissionRow
	if _, err := q.Order("created_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&rows); err != nil {
		return nil, classifyRestError(err, "list submissions")
	}

	subs := make([]models.Submission, len(rows))
	for i, row := range rows {
		subs[i] = *row.toModel()
	}
	return subs, nil
}

func (r *RestClient) UpdateSubmission(ctx context.Context, id string, fields store.Fields) (*models.Submission, error) {
	var rows []submissionRow
	_, err := r.client.From("submissions").
		Update(map[string]interface{}(fields), "representation", "").
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return nil, classifyRestError(err, "update submission")
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("submission %s: %w", id, store.ErrNotFound)
	}
	return rows[0].toModel(), nil
}

// ApplyDelivery writes the stage columns and reads back the post-write row,
// which already contains any sibling stage committed before it. Completed
// rows are excluded from the write. The status is then advanced with a
// compare-and-set; if another writer moved the status in between, the
// record is re-read and the rule applied again.
func (r *RestClient) ApplyDelivery(ctx context.Context, id string, stage models.Stage, url string) (*models.Submission, error) {
	var rows []submissionRow
	_, err := r.client.From("submissions").
		Update(lifecycle.StageFields(stage, url), "representation", "").
		Eq("id", id).
		Neq("status", string(models.StatusCompleted)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, classifyRestError(err, "update submission")
	}
	if len(rows) == 0 {
		current, err := r.GetSubmission(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := lifecycle.CheckDeliverable(current, stage); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("submission %s: %w", id, store.ErrConflict)
	}
	sub := rows[0].toModel()

	for attempt := 0; attempt < maxStatusAttempts; attempt++ {
		next := lifecycle.NextStatus(sub.Plan, sub.Status, sub.Results())
		if next == sub.Status {
			return sub, nil
		}

		updated, err := r.TransitionStatus(ctx, id, sub.Status, next)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, store.ErrConflict) {
			return nil, err
		}

		sub, err = r.GetSubmission(ctx, id)
		if err != nil {
			return nil, err
		}
	}
	return nil, fmt.Errorf("submission %s: status did not settle after %d attempts: %w", id, maxStatusAttempts, store.ErrConflict)
}

func (r *RestClient) TransitionStatus(ctx context.Context, id string, from, to models.Status) (*models.Submission, error) {
	var rows []submissionRow
	_, err := r.client.From("submissions").
		Update(map[string]interface{}{models.ColStatus: string(to)}, "representation", "").
		Eq("id", id).
		Eq("status", string(from)).
		ExecuteTo(&rows)
	if err != nil {
		return nil, classifyRestError(err, "update submission")
	}
	if len(rows) == 0 {
		if _, err := r.GetSubmission(ctx, id); err != nil {
			return nil, err
		}
		return nil, store.ErrConflict
	}
	return rows[0].toModel(), nil
}

func (r *RestClient) ListMessages(ctx context.Context) ([]models.Message, error) {
	return r.queryMessages("")
}

func (r *RestClient) ListSubmissionMessages(ctx context.Context, submissionID string) ([]models.Message, error) {
	return r.queryMessages(submissionID)
}

func (r *RestClient) queryMessages(submissionID string) ([]models.Message, error) {
	q := r.client.From("messages").Select("id,submission_id,sender_role,sender_id,body,created_at", "", false)
	if submissionID != "" {
		q = q.Eq("submission_id", submissionID)
	}

	var rows []messageRow
	q = q.Order("created_at", &postgrest.OrderOpts{Ascending: true}).
		Order("seq", &postgrest.OrderOpts{Ascending: true})
	if _, err := q.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]models.Message, len(rows))
	for i, row := range rows {
		messages[i] = models.Message{
			ID:           row.ID,
			SubmissionID: row.SubmissionID,
			SenderRole:   models.Role(row.SenderRole),
			SenderID:     deref(row.SenderID),
			Body:         row.Body,
			Timestamp:    row.CreatedAt,
		}
	}
	return messages, nil
}

func (r *RestClient) AppendMessage(ctx context.Context, msg *models.Message) error {
	row := messageRow{
		ID:           msg.ID,
		SubmissionID: msg.SubmissionID,
		SenderRole:   string(msg.SenderRole),
		Body:         msg.Body,
		CreatedAt:    msg.Timestamp,
	}
	if msg.SenderID != "" {
		row.SenderID = &msg.SenderID
	}
	if _, _, err := r.client.From("messages").Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (r *RestClient) ListEditors(ctx context.Context) ([]models.Editor, error) {
	var editors []models.Editor
	_, err := r.client.From("editors").
		Select("id,name,specialty,email", "", false).
		Order("name", &postgrest.OrderOpts{Ascending: true}).
		ExecuteTo(&editors)
	if err != nil {
		return nil, fmt.Errorf("failed to list editors: %w", err)
	}
	return editors, nil
}

func (r *RestClient) GetEditor(ctx context.Context, id string) (*models.Editor, error) {
	var editors []models.Editor
	_, err := r.client.From("editors").
		Select("id,name,specialty,email", "", false).
		Eq("id", id).
		ExecuteTo(&editors)
	if err != nil {
		return nil, fmt.Errorf("failed to get editor: %w", err)
	}
	if len(editors) == 0 {
		return nil, fmt.Errorf("editor %s: %w", id, store.ErrNotFound)
	}
	return &editors[0], nil
}

// classifyRestError recognises PostgREST's "column not in schema cache"
// rejection for quoted_amount.
func classifyRestError(err error, action string) error {
	msg := err.Error()
	missingColumn := strings.Contains(msg, "PGRST204") || strings.Contains(msg, "42703") || strings.Contains(msg, "schema cache")
	if missingColumn && strings.Contains(msg, models.ColQuotedAmount) {
		return &lifecycle.SchemaError{
			Column:    models.ColQuotedAmount,
			Migration: lifecycle.QuotedAmountMigration,
			Err:       err,
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
