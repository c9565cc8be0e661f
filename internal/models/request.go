package models

import "encoding/json"

type SetQuoteRequest struct {
	// Amount in cents. Sent as a number or a numeric string.
	Amount json.Number `json:"amount" binding:"required" swaggertype:"integer" example:"5000"`
}

type RejectRequest struct {
	// Note is posted to the submission's chat as an admin message.
	Note string `json:"note,omitempty" example:"Please brighten the living room"`
}

type AssignEditorRequest struct {
	EditorID string `json:"editor_id" binding:"required" example:"ed_01"`
}

type PostMessageRequest struct {
	Body string `json:"body" binding:"required" example:"Can you add a rug?"`
}

// PaymentWebhookPayload is what the checkout provider posts on completion.
type PaymentWebhookPayload struct {
	Event     string `json:"event" example:"checkout.completed"`
	OrderID   string `json:"order_id" example:"S2"`
	SessionID string `json:"session_id,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	// Remediation is the SQL that fixes a schema error.
	Remediation string `json:"remediation,omitempty"`
}
