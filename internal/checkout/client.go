// Package checkout starts payment sessions with the hosted checkout provider.
package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultMaxRetries = 3

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	backoffs   []time.Duration
	maxRetries int
}

// SessionIn is the request body for creating a checkout session
type SessionIn struct {
	OrderID     string `json:"order_id"`
	Title       string `json:"title"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
}

// Session is the provider's view of a checkout
type Session struct {
	SessionID   string `json:"session_id"`
	OrderID     string `json:"order_id"`
	CheckoutURL string `json:"checkout_url"`
	Status      string `json:"status"`
}

// StatusError is a non-2xx reply from the provider.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d, body: %s", e.StatusCode, e.Body)
}

// Temporary reports whether retrying the call can succeed.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

type Option func(*Client)

// WithBackoffs replaces the sleep schedule between attempts.
func WithBackoffs(backoffs ...time.Duration) Option {
	return func(c *Client) {
		c.backoffs = backoffs
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		backoffs:   []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
		maxRetries: defaultMaxRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TriggerCheckout creates a checkout session for an order, retrying
// transient provider failures.
func (c *Client) TriggerCheckout(ctx context.Context, orderID, planTitle string, amountCents int64) (*Session, error) {
	if amountCents <= 0 {
		return nil, fmt.Errorf("checkout amount must be positive, got %d", amountCents)
	}

	var session *Session
	err := c.RetryWithBackoff(ctx, func() error {
		var err error
		session, err = c.CreateSession(ctx, SessionIn{
			OrderID:     orderID,
			Title:       planTitle,
			AmountCents: amountCents,
			Currency:    "usd",
		})
		return err
	}, c.maxRetries)
	if err != nil {
		return nil, err
	}
	return session, nil
}

// CreateSession makes a single create call.
func (c *Client) CreateSession(ctx context.Context, in SessionIn) (*Session, error) {
	jsonData, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout/sessions", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", fmt.Sprintf("checkout-%s-%d", in.OrderID, in.AmountCents))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create checkout session: %w", &StatusError{StatusCode: resp.StatusCode, Body: string(body)})
	}

	var result Session
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w, body: %s", err, string(body))
	}

	return &result, nil
}

// RetryWithBackoff executes a function with exponential backoff retry logic.
// Client errors from the provider are not retried.
func (c *Client) RetryWithBackoff(ctx context.Context, fn func() error, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.Temporary() {
			return err
		}

		if i < len(c.backoffs) && i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry cancelled: %w", ctx.Err())
			case <-time.After(c.backoffs[i]):
			}
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
