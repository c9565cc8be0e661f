package models

import "time"

type Role string

const (
	RoleUser   Role = "user"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
)

func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleEditor
}

type Message struct {
	ID           string    `json:"id"`
	SubmissionID string    `json:"submission_id"`
	SenderRole   Role      `json:"sender_role"`
	SenderID     string    `json:"sender_id,omitempty"`
	Body         string    `json:"body"`
	Timestamp    time.Time `json:"timestamp"`
}

// Millis is the message time as compared against last-read markers.
func (m *Message) Millis() int64 {
	return m.Timestamp.UnixMilli()
}

type Editor struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Email     string `json:"email,omitempty"`
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	ID   string
	Role Role
}
