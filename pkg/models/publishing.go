package models

import "github.com/shiftmash/shiftmash/pkg/timeutil"

// PublishingKind discriminates the two posting collections.
type PublishingKind string

const (
	KindRecruiting PublishingKind = "recruiting"
	KindAvailable  PublishingKind = "available"
)

// Valid reports whether the kind is one of the two known collections.
func (k PublishingKind) Valid() bool {
	return k == KindRecruiting || k == KindAvailable
}

// Recruiting is an open posting by a store that needs help for a slot.
// Open is terminal once false; ApprovedAt is set exactly once, at the same
// transition that closes the posting.
type Recruiting struct {
	ID                     string `json:"id"       validate:"required"`
	StoreID                string `json:"store_id" validate:"required"`
	ShiftID                string `json:"shift_id" validate:"required"`
	Role                   string `json:"role"     validate:"required"`
	Start                  string `json:"start"    validate:"required"`
	End                    string `json:"end"      validate:"required"`
	Date                   string `json:"date"     validate:"required"`
	Open                   bool   `json:"open"`
	CreatedAt              int64  `json:"created_at"`
	Message                string `json:"message"`
	ApprovedAt             *int64 `json:"approved_at,omitempty"`
	MatchedFromAvailableID string `json:"matched_from_available_id,omitempty"`
}

// Window returns the posting's time range.
func (r *Recruiting) Window() timeutil.Range {
	return timeutil.Range{Start: r.Start, End: r.End}
}

// Available is an open posting by a store offering one of its workers to
// cover another store's slot. Same open/approvedAt semantics as Recruiting.
type Available struct {
	ID                      string `json:"id"        validate:"required"`
	StoreID                 string `json:"store_id"  validate:"required"`
	WorkerID                string `json:"worker_id" validate:"required"`
	ShiftID                 string `json:"shift_id"  validate:"required"`
	Role                    string `json:"role"      validate:"required"`
	Start                   string `json:"start"     validate:"required"`
	End                     string `json:"end"       validate:"required"`
	Date                    string `json:"date"      validate:"required"`
	Open                    bool   `json:"open"`
	CreatedAt               int64  `json:"created_at"`
	Message                 string `json:"message"`
	ApprovedAt              *int64 `json:"approved_at,omitempty"`
	MatchedFromRecruitingID string `json:"matched_from_recruiting_id,omitempty"`
}

// Window returns the posting's time range.
func (a *Available) Window() timeutil.Range {
	return timeutil.Range{Start: a.Start, End: a.End}
}

// Publishing is the shared exchange surface between stores: the paired
// collections of all recruiting and available postings. It is persisted and
// rewritten wholesale.
type Publishing struct {
	Recruitings []*Recruiting `json:"recruitings"`
	Availables  []*Available  `json:"availables"`
}

// FindRecruiting returns the recruiting posting with the given id, or nil.
func (p *Publishing) FindRecruiting(id string) *Recruiting {
	for _, r := range p.Recruitings {
		if r.ID == id {
			return r
		}
	}

	return nil
}

// FindAvailable returns the available posting with the given id, or nil.
func (p *Publishing) FindAvailable(id string) *Available {
	for _, a := range p.Availables {
		if a.ID == id {
			return a
		}
	}

	return nil
}
