// Package model defines the catalyst data model shared by ingestion,
// scoring, and the store.
package model

import "time"

// CatalystType classifies a development project by its economic character.
// The classifier emits a fixed set of types; curated rows may carry
// additional legacy types, so the store treats this as an open string.
type CatalystType string

const (
	TypeEVGigafactory     CatalystType = "ev_gigafactory"
	TypeAutoAssembly      CatalystType = "auto_assembly"
	TypeSemiconductorFab  CatalystType = "semiconductor_fab"
	TypeLogisticsHub      CatalystType = "logistics_hub"
	TypeDataCenterCluster CatalystType = "data_center_cluster"
	TypeEnergyCluster     CatalystType = "energy_cluster"

	// TypeIndustrialMegaproject is the fallback when a source row carries
	// no sector signal the classifier recognizes.
	TypeIndustrialMegaproject CatalystType = "industrial_megaproject"

	// Curated seed types.
	TypeFulfillmentCenter CatalystType = "fulfillment_center"
	TypeRailTerminal      CatalystType = "rail_terminal"
	TypeAirport           CatalystType = "airport"
	TypePowerPlant        CatalystType = "power_plant"
)

// RecencyTier is a coarse age bucket derived from the announcement year.
// Tier A is the freshest; an empty tier means the year is unknown.
type RecencyTier string

const (
	TierA       RecencyTier = "A"
	TierB       RecencyTier = "B"
	TierC       RecencyTier = "C"
	TierD       RecencyTier = "D"
	TierUnknown RecencyTier = ""
)

// Key is the business identity of a catalyst across ingestion runs.
// Matching is case-sensitive and exact.
type Key struct {
	Name  string
	State string
	Type  CatalystType
}

// Catalyst is a located, typed, parameterized economic development.
// Before persistence ID is empty and identity is the (name, state, type)
// key; after a store round trip ID is the store-assigned identifier.
//
// Scoring never mutates a Catalyst; changes flow through re-ingestion.
type Catalyst struct {
	ID    string       `json:"id,omitempty"`
	Name  string       `json:"name"`
	State string       `json:"state"`
	Type  CatalystType `json:"type"`

	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	// RadiusMiles is the durable influence radius inferred at ingestion
	// time. The full decay profile is recomputed from it at load time.
	RadiusMiles float64 `json:"radius_miles"`

	CapexUSD      *float64    `json:"capex_usd,omitempty"`
	JobsEstimated *int        `json:"jobs_estimated,omitempty"`
	RecencyTier   RecencyTier `json:"recency_tier,omitempty"`
	AnnouncedAt   *time.Time  `json:"announced_at,omitempty"`
}

// Key returns the composite business key for this catalyst.
func (c Catalyst) Key() Key {
	return Key{Name: c.Name, State: c.State, Type: c.Type}
}

// HasValidPosition reports whether the coordinates are inside the valid
// lat/lng ranges.
func (c Catalyst) HasValidPosition() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// AnnouncedYear returns the announcement year, or 0 when unknown.
func (c Catalyst) AnnouncedYear() int {
	if c.AnnouncedAt == nil {
		return 0
	}
	return c.AnnouncedAt.Year()
}
