package supabase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"staging-console-backend/internal/supabase"
)

func TestPublicURL(t *testing.T) {
	got := supabase.PublicURL("https://proj.supabase.co/", "results-bucket", "results/S1_add.jpg")
	assert.Equal(t, "https://proj.supabase.co/storage/v1/object/public/results-bucket/results/S1_add.jpg", got)
}

func TestNewStorageClient_RequiresURL(t *testing.T) {
	_, err := supabase.NewStorageClient("", "key", "bucket")
	assert.Error(t, err)
}
