// Package web provides the HTTP surface of the exchange dashboard backend.
package web

import "github.com/shiftmash/shiftmash/pkg/models"

// CreateRequestBody is the request body for opening an inter-store request.
type CreateRequestBody struct {
	From          string   `json:"from"            validate:"required"`
	To            string   `json:"to"              validate:"required"`
	Type          string   `json:"type"            validate:"required,oneof=recruiting dispatch"`
	TargetIDs     []string `json:"target_ids"      validate:"required,min=1"`
	ShiftID       string   `json:"shift_id"        validate:"required"`
	TargetShiftID string   `json:"target_shift_id"`
	Message       string   `json:"message"`
}

// PublishRecruitingBody opens a help-wanted posting for a shift.
type PublishRecruitingBody struct {
	ShiftID string `json:"shift_id" validate:"required"`
	Message string `json:"message"`
}

// PublishAvailableBody opens a staff-for-loan posting for a shift.
type PublishAvailableBody struct {
	ShiftID  string `json:"shift_id"  validate:"required"`
	WorkerID string `json:"worker_id" validate:"required"`
	Message  string `json:"message"`
}

// ApprovePublishingBody names the store accepting a posting.
type ApprovePublishingBody struct {
	StoreID string `json:"store_id" validate:"required"`
}

// UpdateShiftBody is a partial shift update. All fields optional.
type UpdateShiftBody struct {
	Status          *string `json:"status,omitempty" validate:"omitempty,oneof=normal shortage surplus"`
	SupportWorkerID *string `json:"support_worker_id,omitempty"`
	Notes           *string `json:"notes,omitempty"`
}

// Patch converts the body into a model patch.
func (b UpdateShiftBody) Patch() models.ShiftPatch {
	patch := models.ShiftPatch{
		SupportWorkerID: b.SupportWorkerID,
		Notes:           b.Notes,
	}

	if b.Status != nil {
		status := models.ShiftStatus(*b.Status)
		patch.Status = &status
	}

	return patch
}
