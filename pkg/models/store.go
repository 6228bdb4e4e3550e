// Package models defines the domain records for cross-store shift exchange.
package models

import "github.com/shiftmash/shiftmash/pkg/geo"

// Store is immutable reference data describing one shop in the chain.
type Store struct {
	ID      string  `json:"id"      validate:"required"`
	Name    string  `json:"name"    validate:"required"`
	Lat     float64 `json:"lat"     validate:"required"`
	Lng     float64 `json:"lng"     validate:"required"`
	Address string  `json:"address"`
	Phone   string  `json:"phone"`
}

// Location returns the store coordinates as a geo point.
func (s *Store) Location() geo.Point {
	return geo.Point{Lat: s.Lat, Lng: s.Lng}
}
