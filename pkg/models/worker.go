package models

import "slices"

// Worker is reference data describing a member of staff. Rating and
// experience feed candidate ranking only.
type Worker struct {
	ID         string   `json:"id"         validate:"required"`
	Name       string   `json:"name"       validate:"required"`
	StoreID    string   `json:"store_id"   validate:"required"`
	Roles      []string `json:"roles"      validate:"required,min=1"`
	Rating     float64  `json:"rating"     validate:"min=0,max=5"`
	Experience int      `json:"experience" validate:"min=0"` // months worked
	Avatar     string   `json:"avatar"`
}

// HasRole reports whether the worker is qualified for a role.
func (w *Worker) HasRole(role string) bool {
	return slices.Contains(w.Roles, role)
}
