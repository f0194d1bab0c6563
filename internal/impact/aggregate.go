package impact

import (
	"github.com/twpayne/go-geom"

	"github.com/propai/catalyst-cli/internal/geo"
	"github.com/propai/catalyst-cli/internal/model"
)

// DefaultCeiling bounds the aggregated score. Values above 1.0 signal
// overlapping high-strength catalysts compounding.
const DefaultCeiling = 1.5

// entry pairs a catalyst with its derived profile and a bounding box
// covering its maximum influence radius.
type entry struct {
	lat, lng float64
	profile  Profile
	bounds   *geom.Bounds
}

// Snapshot is an immutable view of the catalyst set prepared for scoring.
// It is safe for concurrent use by many parcel queries; re-ingestion
// produces a new Snapshot rather than mutating this one.
type Snapshot struct {
	entries []entry
	ceiling float64
}

// NewSnapshot derives decay profiles for the given records and returns a
// scoring snapshot with the default ceiling. Records without a valid
// position are skipped.
func NewSnapshot(catalysts []model.Catalyst) *Snapshot {
	return NewSnapshotWithCeiling(catalysts, DefaultCeiling)
}

// NewSnapshotWithCeiling is NewSnapshot with a custom score ceiling.
func NewSnapshotWithCeiling(catalysts []model.Catalyst, ceiling float64) *Snapshot {
	if ceiling <= 0 {
		ceiling = DefaultCeiling
	}

	s := &Snapshot{ceiling: ceiling}
	for _, c := range catalysts {
		if !c.HasValidPosition() {
			continue
		}
		p := DeriveProfile(c)
		s.entries = append(s.entries, entry{
			lat:     c.Lat,
			lng:     c.Lng,
			profile: p,
			bounds:  geo.BoundsAround(c.Lat, c.Lng, p.MaxMiles),
		})
	}
	return s
}

// Len returns the number of scoreable catalysts in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Score computes the normalized catalyst influence at a query point:
// the strength-weighted mean of decay weights across all catalysts that
// reach the point, clamped to [0, ceiling]. An empty snapshot, or a point
// no catalyst reaches, scores exactly 0.
func (s *Snapshot) Score(lat, lng float64) float64 {
	var total, strengthSum float64

	for _, e := range s.entries {
		// Box check first so distant catalysts skip the haversine.
		if !geo.ContainsPoint(e.bounds, lat, lng) {
			continue
		}

		d := geo.HaversineMiles(lat, lng, e.lat, e.lng)
		w := Weight(d, e.profile.PeakMiles, e.profile.MaxMiles, e.profile.DecayK)
		if w <= 0 {
			continue
		}

		total += w * e.profile.BaseStrength
		strengthSum += e.profile.BaseStrength
	}

	if strengthSum == 0 {
		return 0.0
	}

	score := total / strengthSum
	if score < 0 {
		return 0.0
	}
	if score > s.ceiling {
		return s.ceiling
	}
	return score
}
