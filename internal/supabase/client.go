package supabase

import (
	"fmt"

	"github.com/supabase-community/supabase-go"
	"staging-console-backend/internal/config"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// Rest returns the PostgREST-backed store for this project.
func (c *Client) Rest() *RestClient {
	return NewRestClient(c.Supabase)
}
