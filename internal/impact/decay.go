// Package impact converts catalyst records into distance-decayed influence
// scores for parcel queries.
package impact

import "math"

// decayFloor guards the exponential against a non-positive decay constant
// slipping in from bad stored data.
const decayFloor = 1e-6

// Weight maps a distance to a [0,1] multiplier for a catalyst's strength:
// a flat plateau inside peakMiles, an exponential tail between peakMiles
// and maxMiles, and a hard cutoff beyond maxMiles. The cutoff is
// intentional so distant catalysts are excluded regardless of tail length.
func Weight(distanceMiles, peakMiles, maxMiles, decayK float64) float64 {
	if distanceMiles <= peakMiles {
		return 1.0
	}
	if distanceMiles >= maxMiles {
		return 0.0
	}
	return math.Exp(-(distanceMiles - peakMiles) / math.Max(decayK, decayFloor))
}
