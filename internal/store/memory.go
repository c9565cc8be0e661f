package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"staging-console-backend/internal/lifecycle"
	"staging-console-backend/internal/models"
)

// MemoryStore keeps everything in process. It backs local development and
// tests.
type MemoryStore struct {
	mu          sync.Mutex
	submissions map[string]*models.Submission
	messages    []models.Message
	editors     map[string]models.Editor
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		submissions: make(map[string]*models.Submission),
		editors:     make(map[string]models.Editor),
	}
}

func (m *MemoryStore) PutSubmission(sub models.Submission) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submissions[sub.ID] = &sub
}

func (m *MemoryStore) PutEditor(editor models.Editor) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.editors[editor.ID] = editor
}

func (m *MemoryStore) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	out := *sub
	return &out, nil
}

func (m *MemoryStore) ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	subs := make([]models.Submission, 0, len(m.submissions))
	for _, sub := range m.submissions {
		if filter.Match(sub) {
			subs = append(subs, *sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool {
		return subs[i].Timestamp.After(subs[j].Timestamp)
	})
	return subs, nil
}

func (m *MemoryStore) UpdateSubmission(ctx context.Context, id string, fields Fields) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	updated := *sub
	if err := applyFields(&updated, fields); err != nil {
		return nil, err
	}
	m.submissions[id] = &updated
	out := updated
	return &out, nil
}

func (m *MemoryStore) ApplyDelivery(ctx context.Context, id string, stage models.Stage, url string) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	if err := lifecycle.CheckDeliverable(sub, stage); err != nil {
		return nil, err
	}
	updated := *sub
	lifecycle.ApplyStage(&updated, stage, url)
	m.submissions[id] = &updated
	out := updated
	return &out, nil
}

func (m *MemoryStore) TransitionStatus(ctx context.Context, id string, from, to models.Status) (*models.Submission, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, ok := m.submissions[id]
	if !ok {
		return nil, fmt.Errorf("submission %s: %w", id, ErrNotFound)
	}
	if sub.Status != from {
		return nil, ErrConflict
	}
	updated := *sub
	updated.Status = to
	m.submissions[id] = &updated
	out := updated
	return &out, nil
}

func (m *MemoryStore) ListMessages(ctx context.Context) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Message, len(m.messages))
	copy(out, m.messages)
	return out, nil
}

func (m *MemoryStore) ListSubmissionMessages(ctx context.Context, submissionID string) ([]models.Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []models.Message
	for _, msg := range m.messages {
		if msg.SubmissionID == submissionID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (m *MemoryStore) AppendMessage(ctx context.Context, msg *models.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *MemoryStore) ListEditors(ctx context.Context) ([]models.Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	editors := make([]models.Editor, 0, len(m.editors))
	for _, e := range m.editors {
		editors = append(editors, e)
	}
	sort.Slice(editors, func(i, j int) bool { return editors[i].Name < editors[j].Name })
	return editors, nil
}

func (m *MemoryStore) GetEditor(ctx context.Context, id string) (*models.Editor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.editors[id]
	if !ok {
		return nil, fmt.Errorf("editor %s: %w", id, ErrNotFound)
	}
	return &e, nil
}

func applyFields(sub *models.Submission, fields Fields) error {
	for col, v := range fields {
		switch col {
		case models.ColStatus:
			sub.Status = models.Status(asString(v))
		case models.ColPaymentStatus:
			sub.PaymentStatus = models.PaymentStatus(asString(v))
		case models.ColQuotedAmount:
			switch amount := v.(type) {
			case int64:
				sub.QuotedAmount = &amount
			case nil:
				sub.QuotedAmount = nil
			default:
				return fmt.Errorf("quoted_amount: unexpected type %T", v)
			}
		case models.ColResultRemoveURL:
			sub.ResultRemoveURL = asString(v)
		case models.ColResultAddURL:
			sub.ResultAddURL = asString(v)
		case models.ColResultDataURL:
			sub.ResultDataURL = asString(v)
		case models.ColAssignedEditorID:
			sub.AssignedEditorID = asString(v)
		default:
			return fmt.Errorf("unknown column %q", col)
		}
	}
	return nil
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case models.Status:
		return string(s)
	case models.PaymentStatus:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}
