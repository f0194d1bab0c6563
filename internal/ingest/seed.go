package ingest

import (
	"time"

	"github.com/propai/catalyst-cli/internal/model"
)

// seedRow is the compact form of a curated catalyst.
type seedRow struct {
	name        string
	state       string
	catType     model.CatalystType
	lat, lng    float64
	radiusMiles float64
	capexUSD    float64
	jobs        int
	year        int
}

// Curated megaprojects kept alongside the automated sources. These cover
// categories the state feeds under-report (ports, airports, energy hubs).
var seedRows = []seedRow{
	{"GM Ultium Lansing", "MI", model.TypeEVGigafactory, 42.708, -84.668, 10, 2_100_000_000, 1700, 2022},
	{"Honda LG EV Battery Ohio", "OH", model.TypeEVGigafactory, 40.236, -83.367, 12, 4_400_000_000, 2200, 2022},
	{"Panasonic EV Battery Kansas", "KS", model.TypeEVGigafactory, 38.964, -94.97, 15, 4_000_000_000, 4000, 2022},
	{"Intel New Albany Fab", "OH", model.TypeSemiconductorFab, 40.083, -82.808, 20, 20_000_000_000, 3000, 2022},
	{"Amazon Fulfillment Center - Columbus", "OH", model.TypeFulfillmentCenter, 39.99, -82.88, 8, 300_000_000, 1500, 2020},
	{"Kansas City Intermodal Facility", "KS", model.TypeRailTerminal, 38.82, -94.97, 15, 500_000_000, 800, 2018},
	{"Chicago O'Hare Cargo Cluster", "IL", model.TypeAirport, 41.98, -87.9, 20, 1_000_000_000, 2000, 2019},
	{"Midwest Clean Hydrogen Hub - Example Node", "IL", model.TypePowerPlant, 41.88, -87.63, 30, 3_000_000_000, 1200, 2023},
}

// SeedCatalysts returns the curated seed rows with recency tiers computed
// relative to now.
func SeedCatalysts(now time.Time) []model.Catalyst {
	out := make([]model.Catalyst, 0, len(seedRows))
	for _, r := range seedRows {
		capex := r.capexUSD
		jobs := r.jobs
		year := r.year
		announced := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)

		out = append(out, model.Catalyst{
			Name:          r.name,
			State:         r.state,
			Type:          r.catType,
			Lat:           r.lat,
			Lng:           r.lng,
			RadiusMiles:   r.radiusMiles,
			CapexUSD:      &capex,
			JobsEstimated: &jobs,
			RecencyTier:   RecencyTierFromYear(&year, now),
			AnnouncedAt:   &announced,
		})
	}
	return out
}
