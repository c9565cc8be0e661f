package lifecycle

import (
	"errors"
	"fmt"

	"staging-console-backend/internal/models"
)

// QuotedAmountMigration is the statement that adds the column SetQuote writes.
const QuotedAmountMigration = "ALTER TABLE submissions ADD COLUMN IF NOT EXISTS quoted_amount integer;"

// ValidationError rejects input before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// SchemaError is returned when the database rejects a write because a column
// is missing. Migration holds the statement that fixes it.
type SchemaError struct {
	Column    string
	Migration string
	Err       error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema not ready: column %q is missing", e.Column)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// InvalidTransitionError is returned for a status change the review gate does
// not allow, or for a caller without the required role.
type InvalidTransitionError struct {
	From   models.Status
	Action string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("cannot %s submission in status %q: %s", e.Action, e.From, e.Reason)
	}
	return fmt.Sprintf("cannot %s submission in status %q", e.Action, e.From)
}

// UploadError wraps a blob storage failure. The submission is left unchanged
// and the same delivery can be retried.
type UploadError struct {
	Path string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload to %s failed: %v", e.Path, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsInvalidTransition(err error) bool {
	var t *InvalidTransitionError
	return errors.As(err, &t)
}

func AsSchemaError(err error) (*SchemaError, bool) {
	var s *SchemaError
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}

func IsUpload(err error) bool {
	var u *UploadError
	return errors.As(err, &u)
}
