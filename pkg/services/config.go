package services

import "github.com/shiftmash/shiftmash/pkg/geo"

const (
	// DefaultMaxDistanceKm excludes candidates beyond this distance; it is
	// an eligibility bound, not a ranking penalty.
	DefaultMaxDistanceKm = 15.0

	// DefaultMaxCandidates caps the ranked result list.
	DefaultMaxCandidates = 20
)

// MatchConfig tunes candidate eligibility and travel estimation.
type MatchConfig struct {
	MaxDistanceKm float64
	MaxCandidates int
	Travel        geo.Config
}

// DefaultMatchConfig returns the demo-calibrated defaults.
func DefaultMatchConfig() MatchConfig {
	return MatchConfig{
		MaxDistanceKm: DefaultMaxDistanceKm,
		MaxCandidates: DefaultMaxCandidates,
		Travel:        geo.DefaultConfig(),
	}
}

func (c MatchConfig) withDefaults() MatchConfig {
	if c.MaxDistanceKm <= 0 {
		c.MaxDistanceKm = DefaultMaxDistanceKm
	}

	if c.MaxCandidates <= 0 {
		c.MaxCandidates = DefaultMaxCandidates
	}

	if c.Travel.WalkSpeedKmh <= 0 {
		c.Travel = geo.DefaultConfig()
	}

	return c
}
