package impact

import "math"

// ParcelInput carries a parcel's position plus the pre-computed sub-scores
// the caller supplies. Everything except lat/lng is an opaque business
// input; only the catalyst influence term is computed in this package.
type ParcelInput struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	PriceAnomaly     float64 `json:"price_anomaly"`
	ReplacementDelta float64 `json:"replacement_delta"`
	HistoricalDelta  float64 `json:"historical_delta"`
	DOMScore         float64 `json:"dom_score"`

	DistanceScore     float64 `json:"distance_score"`
	CapexScore        float64 `json:"capex_score"`
	JobsScore         float64 `json:"jobs_score"`
	SectorRel         float64 `json:"sector_rel"`
	Cluster           float64 `json:"cluster"`
	MediaTone         float64 `json:"media_tone"`
	RecencyMultiplier float64 `json:"recency_multiplier"`

	ZoningFlex float64 `json:"zoning_flex"`
	Utilities  float64 `json:"utilities"`
	TopoIndex  float64 `json:"topo_index"`

	JobGrowth   float64 `json:"job_growth"`
	Permits     float64 `json:"permits"`
	Population  float64 `json:"population"`
	Traffic     float64 `json:"traffic"`
	MacroCycle  float64 `json:"macro_cycle"`
	InstCluster float64 `json:"inst_cluster"`

	OZ  float64 `json:"oz"`
	Hub float64 `json:"hub"`
	TIF float64 `json:"tif"`

	Crime    float64 `json:"crime"`
	Flood    float64 `json:"flood"`
	Wildfire float64 `json:"wildfire"`
	EPA      float64 `json:"epa"`
}

// ParcelScore is the blended parcel opportunity result.
type ParcelScore struct {
	POI  int    `json:"poi"`
	Tier string `json:"tier"`

	ValueAnomaly        float64 `json:"value_anomaly"`
	CatalystAdj         float64 `json:"catalyst_adj"`
	CatalystDecayImpact float64 `json:"catalyst_decay_impact"`
	AssetUpside         float64 `json:"asset_upside"`
	MarketMomentum      float64 `json:"market_momentum"`
	IncentiveScore      float64 `json:"incentive_score"`
	RiskPenalty         float64 `json:"risk_penalty"`
}

// ScoreParcel blends the caller-provided sub-scores with the catalyst
// influence from the snapshot into a 0-100 POI and a tier label. The
// weights are business-tunable constants, not engineering contracts.
func ScoreParcel(in ParcelInput, snap *Snapshot) ParcelScore {
	decayImpact := snap.Score(in.Lat, in.Lng)

	valueAnomaly := 0.50*in.PriceAnomaly +
		0.30*in.ReplacementDelta +
		0.15*in.HistoricalDelta +
		0.05*in.DOMScore

	catalystBase := 0.40*in.DistanceScore +
		0.25*in.CapexScore +
		0.20*in.JobsScore +
		0.10*in.SectorRel +
		0.03*in.Cluster +
		0.02*in.MediaTone

	catalystAdj := catalystBase * (1 + in.RecencyMultiplier)

	assetUpside := 0.45*in.ZoningFlex +
		0.35*in.Utilities +
		0.20*in.TopoIndex

	marketMomentum := 0.30*in.JobGrowth +
		0.25*in.Permits +
		0.20*in.Population +
		0.15*in.Traffic +
		0.05*in.MacroCycle +
		0.05*in.InstCluster

	incentiveScore := 0.45*in.OZ +
		0.30*in.Hub +
		0.25*in.TIF

	riskPenalty := 0.40*in.Crime +
		0.35*in.Flood +
		0.15*in.Wildfire +
		0.10*in.EPA

	raw := 0.25*valueAnomaly +
		0.20*catalystAdj +
		0.15*assetUpside +
		0.15*marketMomentum +
		0.10*incentiveScore -
		0.15*riskPenalty

	poi := int(math.Round(100 * raw))

	tier := "Bronze"
	switch {
	case poi >= 75:
		tier = "Gold"
	case poi >= 50:
		tier = "Silver"
	}

	return ParcelScore{
		POI:                 poi,
		Tier:                tier,
		ValueAnomaly:        valueAnomaly,
		CatalystAdj:         catalystAdj,
		CatalystDecayImpact: decayImpact,
		AssetUpside:         assetUpside,
		MarketMomentum:      marketMomentum,
		IncentiveScore:      incentiveScore,
		RiskPenalty:         riskPenalty,
	}
}
