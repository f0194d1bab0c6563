package ingest

import (
	"math"
	"strings"
	"time"

	"github.com/propai/catalyst-cli/internal/model"
)

// Rules holds the business thresholds deciding which source rows qualify
// as catalysts. All values are tunable via config; the zero value is not
// usable, use DefaultRules.
type Rules struct {
	MinCapexUSD float64
	MinJobs     int
	MaxAgeYears int
}

// DefaultRules returns the reference thresholds: $50M capex or 200 jobs,
// within the last 7 years.
func DefaultRules() Rules {
	return Rules{
		MinCapexUSD: 50_000_000,
		MinJobs:     200,
		MaxAgeYears: 7,
	}
}

// Qualifies reports whether a row should become a catalyst candidate: it
// must not exceed the age window (rows with no year are never rejected on
// age) and must clear the capex or the jobs threshold.
func (r Rules) Qualifies(capexUSD *float64, jobs *int, year *int, now time.Time) bool {
	if year != nil && now.UTC().Year()-*year > r.MaxAgeYears {
		return false
	}

	capexGood := capexUSD != nil && *capexUSD >= r.MinCapexUSD
	jobsGood := jobs != nil && *jobs >= r.MinJobs
	return capexGood || jobsGood
}

// typeRule pairs sector keywords with the category they imply. The chain
// is evaluated top to bottom, first match wins, so ordering is part of
// the contract ("battery" outranks "auto", for example).
type typeRule struct {
	keywords []string
	t        model.CatalystType
}

var typeRules = []typeRule{
	{[]string{"battery", "ev"}, model.TypeEVGigafactory},
	{[]string{"auto"}, model.TypeAutoAssembly},
	{[]string{"semi", "chip"}, model.TypeSemiconductorFab},
	{[]string{"logistic", "distribution", "fulfillment"}, model.TypeLogisticsHub},
	{[]string{"data center"}, model.TypeDataCenterCluster},
	{[]string{"hydrogen", "solar", "wind"}, model.TypeEnergyCluster},
}

// ClassifyType maps a free-text sector string to a catalyst category by
// case-insensitive substring matching. Empty or unmatched sector text
// falls back to the source's configured default.
func ClassifyType(sector string, fallback model.CatalystType) model.CatalystType {
	sector = strings.ToLower(strings.TrimSpace(sector))
	if sector == "" {
		return fallback
	}

	for _, rule := range typeRules {
		for _, kw := range rule.keywords {
			if strings.Contains(sector, kw) {
				return rule.t
			}
		}
	}
	return fallback
}

// baseRadiusMiles holds the per-category base influence radius.
var baseRadiusMiles = map[model.CatalystType]float64{
	model.TypeEVGigafactory:     15,
	model.TypeSemiconductorFab:  20,
	model.TypeLogisticsHub:      8,
	model.TypeDataCenterCluster: 20,
	model.TypeEnergyCluster:     25,
}

const fallbackRadiusMiles = 10

// InferRadiusMiles derives the durable influence radius for a candidate:
// the category base, scaled by capital size when known. The scale factor
// log10(capex)-5 is clamped to [0.7, 1.5] so big projects grow the radius
// without unbounded sprawl.
func InferRadiusMiles(t model.CatalystType, capexUSD *float64) float64 {
	base, ok := baseRadiusMiles[t]
	if !ok {
		base = fallbackRadiusMiles
	}

	if capexUSD == nil || *capexUSD <= 0 {
		return base
	}

	scale := math.Log10(*capexUSD) - 5
	if scale < 0.7 {
		scale = 0.7
	}
	if scale > 1.5 {
		scale = 1.5
	}
	return base * scale
}

// RecencyTierFromYear buckets a project's age into tiers A (freshest)
// through D. Unknown years produce the empty tier.
func RecencyTierFromYear(year *int, now time.Time) model.RecencyTier {
	if year == nil {
		return model.TierUnknown
	}

	age := now.UTC().Year() - *year
	switch {
	case age <= 1:
		return model.TierA
	case age <= 3:
		return model.TierB
	case age <= 5:
		return model.TierC
	default:
		return model.TierD
	}
}
