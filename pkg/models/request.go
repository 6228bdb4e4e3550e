package models

// RequestType distinguishes a store asking for staff from a store offering
// its surplus staff to another store's opening.
type RequestType string

const (
	RequestTypeRecruiting RequestType = "recruiting"
	RequestTypeDispatch   RequestType = "dispatch"
)

// RequestStatus is the lifecycle state of a request. Pending transitions
// exactly once to approved, rejected, or invalid; all three are terminal.
// Invalid means a sibling request for the same shift was approved first.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
	RequestStatusInvalid  RequestStatus = "invalid"
)

// Terminal reports whether the status can no longer change.
func (s RequestStatus) Terminal() bool {
	return s != RequestStatusPending
}

// Request is a targeted ask from one store to another regarding a specific
// shift, distinct from the broadcast publishing postings.
type Request struct {
	ID            string        `json:"id"         validate:"required"`
	From          string        `json:"from"       validate:"required"`
	To            string        `json:"to"         validate:"required"`
	Type          RequestType   `json:"type"       validate:"required,oneof=recruiting dispatch"`
	TargetIDs     []string      `json:"target_ids" validate:"required,min=1"` // worker ids or publishing ids
	ShiftID       string        `json:"shift_id"   validate:"required"`
	TargetShiftID string        `json:"target_shift_id,omitempty"`
	Status        RequestStatus `json:"status"     validate:"required,oneof=pending approved rejected invalid"`
	CreatedAt     int64         `json:"created_at"`
	ApprovedAt    *int64        `json:"approved_at,omitempty"`
	Message       string        `json:"message"`
	TravelMinutes int           `json:"estimated_travel_minutes"`
}

// RequestPatch carries a partial request update. Nil fields are untouched.
type RequestPatch struct {
	Status     *RequestStatus `json:"status,omitempty"`
	ApprovedAt *int64         `json:"approved_at,omitempty"`
}

// Apply copies the patch onto a request.
func (p RequestPatch) Apply(request *Request) {
	if p.Status != nil {
		request.Status = *p.Status
	}

	if p.ApprovedAt != nil {
		request.ApprovedAt = p.ApprovedAt
	}
}
