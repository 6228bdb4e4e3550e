package models

import "github.com/shiftmash/shiftmash/pkg/geo"

// CandidateKind tags a match result with its backing posting type.
type CandidateKind string

const (
	CandidateWorker     CandidateKind = "worker"     // backed by an Available posting
	CandidateRecruiting CandidateKind = "recruiting" // backed by a Recruiting posting
)

// Candidate is one ranked match returned to a manager evaluating options for
// a shift. Worker fields are only set for availability-backed candidates.
type Candidate struct {
	ID         string           `json:"id"`
	Kind       CandidateKind    `json:"kind"`
	WorkerID   string           `json:"worker_id,omitempty"`
	WorkerName string           `json:"worker_name,omitempty"`
	StoreID    string           `json:"store_id"`
	StoreName  string           `json:"store_name"`
	Role       string           `json:"role"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	Rating     float64          `json:"rating,omitempty"`
	Experience int              `json:"experience,omitempty"`
	Avatar     string           `json:"avatar,omitempty"`
	Distance   geo.DistanceInfo `json:"distance"`
	Message    string           `json:"message,omitempty"`
	CreatedAt  int64            `json:"created_at"`
}
