package supabase

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"staging-console-backend/internal/lifecycle"
)

func TestClassifyError_UndefinedQuoteColumn(t *testing.T) {
	err := classifyError(&pq.Error{Code: "42703", Message: `column "quoted_amount" of relation "submissions" does not exist`}, "update submission")

	schemaErr, ok := lifecycle.AsSchemaError(err)
	require.True(t, ok)
	assert.Equal(t, "quoted_amount", schemaErr.Column)
	assert.Equal(t, lifecycle.QuotedAmountMigration, schemaErr.Migration)
}

func TestClassifyError_OtherErrorsStayGeneric(t *testing.T) {
	base := errors.New("connection reset")
	err := classifyError(base, "update submission")

	_, ok := lifecycle.AsSchemaError(err)
	assert.False(t, ok)
	assert.ErrorIs(t, err, base)

	err = classifyError(&pq.Error{Code: "23505", Message: "duplicate key"}, "update submission")
	_, ok = lifecycle.AsSchemaError(err)
	assert.False(t, ok)
}

func TestClassifyRestError(t *testing.T) {
	err := classifyRestError(errors.New("(PGRST204) Could not find the 'quoted_amount' column of 'submissions' in the schema cache"), "update submission")
	_, ok := lifecycle.AsSchemaError(err)
	assert.True(t, ok)

	err = classifyRestError(errors.New("(PGRST204) Could not find the 'notes' column of 'submissions' in the schema cache"), "update submission")
	_, ok = lifecycle.AsSchemaError(err)
	assert.False(t, ok)
}
