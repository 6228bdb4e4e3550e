package models

import "github.com/shiftmash/shiftmash/pkg/timeutil"

// ShiftStatus classifies a shift's staffing level.
type ShiftStatus string

const (
	ShiftStatusNormal   ShiftStatus = "normal"
	ShiftStatusShortage ShiftStatus = "shortage"
	ShiftStatusSurplus  ShiftStatus = "surplus"
)

// Shift is one staffed (or unstaffed) slot on a store's daily timeline.
// SupportWorkerID is filled when another store's worker covers the slot;
// it and the status/notes fields are mutated only by approval cascades.
type Shift struct {
	ID              string      `json:"id"                validate:"required"`
	StoreID         string      `json:"store_id"          validate:"required"`
	WorkerID        string      `json:"worker_id"`
	Role            string      `json:"role"              validate:"required"`
	Start           string      `json:"start"             validate:"required"`
	End             string      `json:"end"               validate:"required"`
	Status          ShiftStatus `json:"status"            validate:"required,oneof=normal shortage surplus"`
	Date            string      `json:"date"              validate:"required"`
	SupportWorkerID string      `json:"support_worker_id"`
	Notes           string      `json:"notes"`
}

// Window returns the shift's time range.
func (s *Shift) Window() timeutil.Range {
	return timeutil.Range{Start: s.Start, End: s.End}
}

// ShiftPatch carries a partial shift update. Nil fields are left untouched.
type ShiftPatch struct {
	Status          *ShiftStatus `json:"status,omitempty"`
	SupportWorkerID *string      `json:"support_worker_id,omitempty"`
	Notes           *string      `json:"notes,omitempty"`
}

// Apply copies the patch onto a shift.
func (p ShiftPatch) Apply(shift *Shift) {
	if p.Status != nil {
		shift.Status = *p.Status
	}

	if p.SupportWorkerID != nil {
		shift.SupportWorkerID = *p.SupportWorkerID
	}

	if p.Notes != nil {
		shift.Notes = *p.Notes
	}
}

// ShiftSummary aggregates one store's day for the overview header.
type ShiftSummary struct {
	TotalShifts     int `json:"total_shifts"`
	ShortageCount   int `json:"shortage_count"`
	SurplusCount    int `json:"surplus_count"`
	NormalCount     int `json:"normal_count"`
	PendingRequests int `json:"pending_requests"`
}
