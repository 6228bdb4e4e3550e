// Package geo estimates inter-store distances and travel times. Distances use
// a flat-earth approximation scaled by 111 km per degree, which is only valid
// for the short hops between stores in one region; nothing here is geodesic.
package geo

import "math"

const (
	// KmPerDegree converts a lat/lng delta to kilometres.
	KmPerDegree = 111.0

	// DefaultWalkSpeedKmh is the assumed staff travel speed on foot.
	DefaultWalkSpeedKmh = 4.0

	// DefaultBufferMinutes is added to every travel estimate to cover
	// preparation and handover time.
	DefaultBufferMinutes = 5
)

// Point is a store location.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Config holds the travel estimation parameters.
type Config struct {
	WalkSpeedKmh  float64
	BufferMinutes int
}

// DefaultConfig returns the walking-speed defaults.
func DefaultConfig() Config {
	return Config{
		WalkSpeedKmh:  DefaultWalkSpeedKmh,
		BufferMinutes: DefaultBufferMinutes,
	}
}

// DistanceInfo pairs a distance with its travel-time estimate.
type DistanceInfo struct {
	DistanceKm       float64 `json:"distance_km"`
	EstimatedMinutes int     `json:"estimated_minutes"`
}

// Distance returns the approximate distance between two points in kilometres,
// rounded to one decimal place.
func Distance(a, b Point) float64 {
	latDiff := a.Lat - b.Lat
	lngDiff := a.Lng - b.Lng
	km := math.Sqrt(latDiff*latDiff+lngDiff*lngDiff) * KmPerDegree

	return math.Round(km*10) / 10
}

// TravelMinutes estimates the walking time for a distance, including the
// fixed buffer.
func TravelMinutes(distanceKm float64, cfg Config) int {
	if cfg.WalkSpeedKmh <= 0 {
		cfg.WalkSpeedKmh = DefaultWalkSpeedKmh
	}

	return int(math.Ceil(distanceKm/cfg.WalkSpeedKmh*60)) + cfg.BufferMinutes
}

// Estimate computes distance and travel time between two points.
func Estimate(a, b Point, cfg Config) DistanceInfo {
	km := Distance(a, b)

	return DistanceInfo{
		DistanceKm:       km,
		EstimatedMinutes: TravelMinutes(km, cfg),
	}
}
