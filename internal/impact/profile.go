package impact

import (
	"math"

	"github.com/propai/catalyst-cli/internal/model"
)

// defaultRadiusMiles is assumed when a stored record has no usable radius.
const defaultRadiusMiles = 10.0

// Profile holds the spatial decay parameters for one catalyst.
// Invariant: MaxMiles > PeakMiles >= 0 and DecayK > 0.
type Profile struct {
	PeakMiles    float64
	MaxMiles     float64
	DecayK       float64
	BaseStrength float64
}

// DeriveProfile recomputes the full decay profile from a stored record.
// The stored radius is the durable attribute; peak, max, and decay are
// shaped from it here so the shaping constants can change without
// re-ingesting data. Strength comes from economic evidence: log-scaled
// capex when known, jobs otherwise, floored at 0.5.
func DeriveProfile(c model.Catalyst) Profile {
	radius := c.RadiusMiles
	if radius <= 0 {
		radius = defaultRadiusMiles
	}

	strength := 1.0
	switch {
	case c.CapexUSD != nil && *c.CapexUSD > 0:
		strength = math.Max(0.5, math.Log10(*c.CapexUSD))
	case c.JobsEstimated != nil && *c.JobsEstimated > 0:
		strength = math.Max(0.5, float64(*c.JobsEstimated)/500)
	}

	return Profile{
		PeakMiles:    radius,
		MaxMiles:     radius * 2.5,
		DecayK:       math.Max(1.0, radius/3),
		BaseStrength: strength,
	}
}
