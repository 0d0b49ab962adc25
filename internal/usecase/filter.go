package usecase

import (
	"sort"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/config"
)

const minEligible = 3

// CriteriaTier is one admission rule set. Tiers are evaluated strictest
// first, each independently against the full input set; the filter stops at
// the first tier producing at least minEligible instruments.
type CriteriaTier struct {
	Name  string
	Match func(models.InstrumentRecord) bool
	// Sort orders the tier output when set; nil keeps input order so that
	// ranking stays purely score-driven downstream.
	Sort func([]models.InstrumentRecord)
}

// Filter applies class-specific eligibility criteria with tier relaxation.
type Filter struct {
	tiers map[drepo.AssetClass][]CriteriaTier
}

// NewFilter builds the tier tables from configured criteria.
func NewFilter(cfg *config.Config) *Filter {
	cr := cfg.Criteria
	return &Filter{
		tiers: map[drepo.AssetClass][]CriteriaTier{
			drepo.ClassCrypto: {
				{
					Name: "strict",
					Match: func(r models.InstrumentRecord) bool {
						return r.CurrentPrice > 0.01 &&
							r.CurrentPrice <= cr.MaxPrice &&
							r.Volume24h >= cr.MinVolume24h &&
							r.MarketCap >= cr.MinMarketCap
					},
				},
				{
					Name: "relaxed",
					Match: func(r models.InstrumentRecord) bool {
						return r.CurrentPrice > 0.01 &&
							r.CurrentPrice <= cr.MaxPrice &&
							r.Volume24h >= 5_000_000
					},
					Sort: sortByRankAsc,
				},
			},
			drepo.ClassStocks: {
				{
					Name: "strict",
					Match: func(r models.InstrumentRecord) bool {
						return r.CurrentPrice > 0 &&
							r.CurrentPrice <= cr.MaxPrice &&
							r.Volume24h >= cr.MinVolume24h &&
							r.MarketCap >= cr.MinMarketCap
					},
				},
				{
					Name: "relaxed",
					Match: func(r models.InstrumentRecord) bool {
						return r.CurrentPrice > 0 &&
							r.CurrentPrice <= 2*cr.MaxPrice &&
							r.Volume24h >= 5_000_000
					},
					Sort: sortByMarketCapDesc,
				},
			},
			drepo.ClassBonds: {
				{
					Name: "strict",
					Match: func(r models.InstrumentRecord) bool {
						return r.CurrentPrice > 50 &&
							r.CurrentPrice <= 100 &&
							r.Yield >= 3 &&
							r.Volume24h >= 100_000_000
					},
				},
				{
					Name: "relaxed",
					Match: func(r models.InstrumentRecord) bool {
						return r.CurrentPrice > 50 &&
							r.CurrentPrice <= 100 &&
							r.Yield >= 3
					},
				},
			},
		},
	}
}

// Eligible returns the instruments admitted by the first satisfied tier. The
// input is never mutated. An empty result means every tier came up empty.
func (f *Filter) Eligible(class drepo.AssetClass, records []models.InstrumentRecord) []models.InstrumentRecord {
	var last []models.InstrumentRecord
	for _, tier := range f.tiers[class] {
		matched := make([]models.InstrumentRecord, 0, len(records))
		for _, r := range records {
			if tier.Match(r) {
				matched = append(matched, r)
			}
		}
		if tier.Sort != nil {
			tier.Sort(matched)
		}
		if len(matched) >= minEligible {
			return matched
		}
		if len(matched) > 0 {
			last = matched
		}
	}
	return last
}

func sortByRankAsc(records []models.InstrumentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := records[i].MarketCapRank, records[j].MarketCapRank
		// Unranked records sink to the bottom.
		if ri == 0 {
			return false
		}
		if rj == 0 {
			return true
		}
		return ri < rj
	})
}

func sortByMarketCapDesc(records []models.InstrumentRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].MarketCap > records[j].MarketCap
	})
}
