package models

import "time"

// ChatBadge summarizes a submission's chat for one viewer.
type ChatBadge struct {
	Count        int   `json:"count"`
	LatestAt     int64 `json:"latest_at,omitempty"`
	LatestSender Role  `json:"latest_sender,omitempty"`
	HasUnread    bool  `json:"has_unread"`
}

// SubmissionView is a submission with the fields the console derives from it.
type SubmissionView struct {
	Submission
	DisplayStatus Status    `json:"display_status"`
	PlanTitle     string    `json:"plan_title"`
	DueDate       time.Time `json:"due_date"`
	CanCheckout   bool      `json:"can_checkout"`
	Chat          ChatBadge `json:"chat"`
}

type SubmissionListResponse struct {
	Submissions []SubmissionView `json:"submissions"`
}

type MessageListResponse struct {
	Messages []Message `json:"messages"`
}

type EditorListResponse struct {
	Editors []Editor `json:"editors"`
}

type MarkReadResponse struct {
	SubmissionID string `json:"submission_id"`
	LastRead     int64  `json:"last_read"`
}

type CheckoutResponse struct {
	SubmissionID string `json:"submission_id"`
	SessionID    string `json:"session_id"`
	CheckoutURL  string `json:"checkout_url"`
	AmountCents  int64  `json:"amount_cents"`
}

type HealthResponse struct {
	Status string `json:"status"`
	Store  string `json:"store,omitempty"`
}
