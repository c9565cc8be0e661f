package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lib/pq"
	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/models"
	"staging-console-backend/internal/store"
)

// undefinedColumn is the Postgres SQLSTATE for a missing column.
const undefinedColumn = "42703"

const submissionColumns = `id, user_id, plan, status, payment_status, quoted_amount,
	result_remove_url, result_add_url, result_data_url, assigned_editor_id,
	original_url, notes, created_at`

type DatabaseClient struct {
	db *sql.DB
}

var _ store.Store = (*DatabaseClient)(nil)

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubmission(row rowScanner) (*models.Submission, error) {
	var (
		sub                             models.Submission
		plan, status, paymentStatus     string
		quoted                          sql.NullInt64
		removeURL, addURL, dataURL      sql.NullString
		editorID, originalURL, notesCol sql.NullString
	)
	err := row.Scan(
		&sub.ID, &sub.UserID, &plan, &status, &paymentStatus, &quoted,
		&removeURL, &addURL, &dataURL, &editorID,
		&originalURL, &notesCol, &sub.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	sub.Plan = models.Plan(plan)
	sub.Status = models.Status(status)
	sub.PaymentStatus = models.PaymentStatus(paymentStatus)
	if quoted.Valid {
		amount := quoted.Int64
		sub.QuotedAmount = &amount
	}
	sub.ResultRemoveURL = removeURL.String
	sub.ResultAddURL = addURL.String
	sub.ResultDataURL = dataURL.String
	sub.AssignedEditorID = editorID.String
	sub.OriginalURL = originalURL.String
	sub.Notes = notesCol.String
	return &sub, nil
}

func (d *DatabaseClient) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	row := d.db.QueryRowContext(ctx, `SELECT `+submissionColumns+` FROM submissions WHERE id = $1`, id)
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, classifyError(err, "get submission")
	}
	return sub, nil
}

func (d *DatabaseClient) ListSubmissions(ctx context.Context, filter store.SubmissionFilter) ([]models.Submission, error) {
	var (
		where []string
		args  []interface{}
	)
	if filter.UserID != "" {
		args = append(args, filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.AssignedEditorID != "" {
		args = append(args, filter.AssignedEditorID)
		where = append(where, fmt.Sprintf("assigned_editor_id = $%d", len(args)))
	}
	if len(filter.PaymentStatuses) > 0 {
		statuses := make([]string, len(filter.PaymentStatuses))
		for i, ps := range filter.PaymentStatuses {
			statuses[i] = string(ps)
		}
		args = append(args, pq.Array(statuses))
		where = append(where, fmt.Sprintf("payment_status = ANY($%d)", len(args)))
	}

	query := `SELECT ` + submissionColumns + ` FROM submissions`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY created_at DESC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err, "list submissions")
	}
	defer rows.Close()

	var subs []models.Submission
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

func (d *DatabaseClient) UpdateSubmission(ctx context.Context, id string, fields store.Fields) (*models.Submission, error) {
	if len(fields) == 0 {
		return d.GetSubmission(ctx, id)
	}

	cols := make([]string, 0, len(fields))
	for col := range fields {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	sets := make([]string, len(cols))
	args := make([]interface{}, 0, len(cols)+1)
	for i, col := range cols {
		args = append(args, fields[col])
		sets[i] = fmt.Sprintf("%s = $%d", pq.QuoteIdentifier(col), i+1)
	}
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE submissions SET %s, updated_at = NOW() WHERE id = $%d RETURNING `+submissionColumns,
		strings.Join(sets, ", "), len(args))
	sub, err := scanSubmission(d.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, classifyError(err, "update submission")
	}
	return sub, nil
}

// ApplyDelivery locks the row, applies the stage on the locked copy and
// writes the result back in the same transaction, so a sibling stage that
// committed first is always seen.
func (d *DatabaseClient) ApplyDelivery(ctx context.Context, id string, stage models.Stage, url string) (*models.Submission, error) {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sub, err := scanSubmission(tx.QueryRowContext(ctx,
		`SELECT `+submissionColumns+` FROM submissions WHERE id = $1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("submission %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, classifyError(err, "lock submission")
	}
	if err := lifecycle.CheckDeliverable(sub, stage); err != nil {
		return nil, err
	}

	lifecycle.ApplyStage(sub, stage, url)

	_, err = tx.ExecContext(ctx, `
		UPDATE submissions
		SET result_remove_url = NULLIF($1, ''), result_add_url = NULLIF($2, ''),
			result_data_url = NULLIF($3, ''), status = $4, updated_at = NOW()
		WHERE id = $5
	`, sub.ResultRemoveURL, sub.ResultAddURL, sub.ResultDataURL, string(sub.Status), id)
	if err != nil {
		return nil, classifyError(err, "update submission")
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit delivery: %w", err)
	}
	return sub, nil
}

func (d *DatabaseClient) TransitionStatus(ctx context.Context, id string, from, to models.Status) (*models.Submission, error) {
	row := d.db.QueryRowContext(ctx, `
		UPDATE submissions SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING `+submissionColumns, string(to), id, string(from))
	sub, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		if _, getErr := d.GetSubmission(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, store.ErrConflict
	}
	if err != nil {
		return nil, classifyError(err, "update submission")
	}
	return sub, nil
}

func (d *DatabaseClient) ListMessages(ctx context.Context) ([]models.Message, error) {
	return d.queryMessages(ctx, `
		SELECT id, submission_id, sender_role, sender_id, body, created_at
		FROM messages
		ORDER BY created_at ASC, seq ASC
	`)
}

func (d *DatabaseClient) ListSubmissionMessages(ctx context.Context, submissionID string) ([]models.Message, error) {
	return d.queryMessages(ctx, `
		SELECT id, submission_id, sender_role, sender_id, body, created_at
		FROM messages
		WHERE submission_id = $1
		ORDER BY created_at ASC, seq ASC
	`, submissionID)
}

func (d *DatabaseClient) queryMessages(ctx context.Context, query string, args ...interface{}) ([]models.Message, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var (
			msg      models.Message
			role     string
			senderID sql.NullString
		)
		if err := rows.Scan(&msg.ID, &msg.SubmissionID, &role, &senderID, &msg.Body, &msg.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		msg.SenderRole = models.Role(role)
		msg.SenderID = senderID.String
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (d *DatabaseClient) AppendMessage(ctx context.Context, msg *models.Message) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO messages (id, submission_id, sender_role, sender_id, body, created_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6)
	`, msg.ID, msg.SubmissionID, string(msg.SenderRole), msg.SenderID, msg.Body, msg.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to append message: %w", err)
	}
	return nil
}

func (d *DatabaseClient) ListEditors(ctx context.Context) ([]models.Editor, error) {
	rows, err := d.db.QueryContext(ctx, `SELECT id, name, specialty, email FROM editors ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list editors: %w", err)
	}
	defer rows.Close()

	var editors []models.Editor
	for rows.Next() {
		var (
			e     models.Editor
			email sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &e.Specialty, &email); err != nil {
			return nil, fmt.Errorf("failed to scan editor: %w", err)
		}
		e.Email = email.String
		editors = append(editors, e)
	}
	return editors, rows.Err()
}

func (d *DatabaseClient) GetEditor(ctx context.Context, id string) (*models.Editor, error) {
	var (
		e     models.Editor
		email sql.NullString
	)
	err := d.db.QueryRowContext(ctx, `SELECT id, name, specialty, email FROM editors WHERE id = $1`, id).
		Scan(&e.ID, &e.Name, &e.Specialty, &email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("editor %s: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get editor: %w", err)
	}
	e.Email = email.String
	return &e, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

// classifyError turns a missing quoted_amount column into a SchemaError.
func classifyError(err error, action string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == undefinedColumn && strings.Contains(pqErr.Message, models.ColQuotedAmount) {
		return &lifecycle.SchemaError{
			Column:    models.ColQuotedAmount,
			Migration: lifecycle.QuotedAmountMigration,
			Err:       err,
		}
	}
	return fmt.Errorf("failed to %s: %w", action, err)
}
