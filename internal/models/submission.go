package models

import "time"

type Plan string

const (
	PlanFurnitureRemove Plan = "FURNITURE_REMOVE"
	PlanFurnitureAdd    Plan = "FURNITURE_ADD"
	PlanFurnitureBoth   Plan = "FURNITURE_BOTH"
	PlanFloorPlanCG     Plan = "FLOOR_PLAN_CG"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusReviewing  Status = "reviewing"
	StatusCompleted  Status = "completed"

	// StatusQuoteRequest is never persisted. It is shown for quote-gated
	// submissions that are still waiting for a quote.
	StatusQuoteRequest Status = "quote_request"
)

type PaymentStatus string

const (
	PaymentUnpaid       PaymentStatus = "unpaid"
	PaymentQuotePending PaymentStatus = "quote_pending"
	PaymentPaid         PaymentStatus = "paid"
)

type Stage string

const (
	StageRemove Stage = "remove"
	StageAdd    Stage = "add"
	StageSingle Stage = "single"
)

// Column names shared by the SQL and PostgREST stores.
const (
	ColStatus           = "status"
	ColPaymentStatus    = "payment_status"
	ColQuotedAmount     = "quoted_amount"
	ColResultRemoveURL  = "result_remove_url"
	ColResultAddURL     = "result_add_url"
	ColResultDataURL    = "result_data_url"
	ColAssignedEditorID = "assigned_editor_id"
)

type Submission struct {
	ID               string        `json:"id"`
	UserID           string        `json:"user_id"`
	Plan             Plan          `json:"plan"`
	Status           Status        `json:"status"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	QuotedAmount     *int64        `json:"quoted_amount,omitempty"`
	ResultRemoveURL  string        `json:"result_remove_url,omitempty"`
	ResultAddURL     string        `json:"result_add_url,omitempty"`
	ResultDataURL    string        `json:"result_data_url,omitempty"`
	AssignedEditorID string        `json:"assigned_editor_id,omitempty"`
	OriginalURL      string        `json:"original_url,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	Timestamp        time.Time     `json:"timestamp"`
}

// Results is the delivery state the status rule looks at.
type Results struct {
	Remove string
	Add    string
	Data   string
}

func (s *Submission) Results() Results {
	return Results{
		Remove: s.ResultRemoveURL,
		Add:    s.ResultAddURL,
		Data:   s.ResultDataURL,
	}
}

type planInfo struct {
	title      string
	priceCents int64
}

var plans = map[Plan]planInfo{
	PlanFurnitureRemove: {title: "Furniture Removal", priceCents: 3000},
	PlanFurnitureAdd:    {title: "Virtual Staging", priceCents: 4000},
	PlanFurnitureBoth:   {title: "Removal + Virtual Staging", priceCents: 6000},
	PlanFloorPlanCG:     {title: "Floor Plan CG", priceCents: 0},
}

func (p Plan) Valid() bool {
	_, ok := plans[p]
	return ok
}

func (p Plan) Title() string {
	if info, ok := plans[p]; ok {
		return info.title
	}
	return string(p)
}

// PriceCents is the fixed list price. Quote-gated plans return 0.
func (p Plan) PriceCents() int64 {
	return plans[p].priceCents
}

func (p Plan) IsDualStage() bool {
	return p == PlanFurnitureBoth
}

func (p Plan) IsQuoteGated() bool {
	return p == PlanFloorPlanCG
}
