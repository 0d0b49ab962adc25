package models

import "time"

// InstrumentRecord is the normalized market snapshot for one tradeable
// instrument. Providers map their own field names onto this shape; records
// with a non-positive price are dropped at normalization and never enter the
// pipeline.
type InstrumentRecord struct {
	ID             string  `json:"id"`
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	CurrentPrice   float64 `json:"current_price"`
	PriceChange24h float64 `json:"price_change_24h"`
	PriceChange7d  float64 `json:"price_change_7d"`
	Volume24h      float64 `json:"volume_24h"`
	MarketCap      float64 `json:"market_cap"`

	// Crypto only.
	MarketCapRank int `json:"market_cap_rank,omitempty"`

	// Bonds only.
	Yield    float64 `json:"yield,omitempty"`
	Rating   string  `json:"rating,omitempty"`
	Maturity string  `json:"maturity,omitempty"`
	Type     string  `json:"type,omitempty"` // "Government" | "Corporate"

	// Set by the scoring engine; zero until then, never mutated downstream
	// except by sort.
	InvestmentScore float64 `json:"investment_score"`
}

// Origin tags where an acquisition result came from.
type Origin string

const (
	OriginLive  Origin = "live"
	OriginCache Origin = "cache"
	OriginSeed  Origin = "seed"
)

// AcquisitionResult is the tagged outcome of one acquisition run. Origin=seed
// means every provider failed and the fixed last-resort dataset was returned;
// consumers must treat it as degraded output, not live data.
type AcquisitionResult struct {
	Records  []InstrumentRecord `json:"records"`
	Origin   Origin             `json:"origin"`
	Provider string             `json:"provider,omitempty"`
}

// Recommendation pairs one selected instrument with its rationale.
type Recommendation struct {
	Instrument InstrumentRecord `json:"instrument"`
	Reasons    []string         `json:"reasons"`
	Risks      []string         `json:"risks,omitempty"`
}

// RecommendationSet is what the pipeline hands to delivery collaborators:
// up to 3 ranked recommendations for one asset class.
type RecommendationSet struct {
	Class       string           `json:"class"`
	GeneratedAt time.Time        `json:"generated_at"`
	Origin      Origin           `json:"origin"`
	Items       []Recommendation `json:"items"`
	// Note carries the explanatory text for empty or degraded results.
	Note string `json:"note,omitempty"`
}
