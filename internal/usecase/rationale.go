package usecase

import (
	"fmt"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/config"
)

const (
	maxReasons    = 3
	genericReason = "Balanced metrics across the board"
)

// rung is one (threshold, statement) rule. Within a dimension the first
// matching rung wins and the rest are skipped.
type rung struct {
	when func(models.InstrumentRecord) bool
	text func(models.InstrumentRecord) string
}

// dimension is an ordered ladder of rungs over one metric.
type dimension struct {
	name  string
	rungs []rung
}

// Rationale derives human-readable purchase reasons and risk warnings from
// raw metrics. Dimensions are walked in a fixed priority order and at most
// maxReasons statements survive; the risk ladder is evaluated separately and
// attaches every triggered warning.
type Rationale struct {
	budget  float64
	byClass map[drepo.AssetClass][]dimension
	risks   []dimension
}

func NewRationale(cfg *config.Config) *Rationale {
	r := &Rationale{budget: cfg.Criteria.DailyBudget}
	r.byClass = map[drepo.AssetClass][]dimension{
		drepo.ClassCrypto: r.cryptoDimensions(),
		drepo.ClassStocks: r.stockDimensions(),
		drepo.ClassBonds:  r.bondDimensions(),
	}
	r.risks = riskDimensions()
	return r
}

// Reasons returns up to maxReasons statements in dimension-priority order,
// falling back to a single generic statement when nothing triggers.
func (g *Rationale) Reasons(class drepo.AssetClass, r models.InstrumentRecord) []string {
	var reasons []string
	for _, dim := range g.byClass[class] {
		if len(reasons) >= maxReasons {
			break
		}
		for _, rg := range dim.rungs {
			if rg.when(r) {
				reasons = append(reasons, rg.text(r))
				break
			}
		}
	}
	if len(reasons) == 0 {
		return []string{genericReason}
	}
	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}
	return reasons
}

// Risks returns every triggered risk warning, possibly none.
func (g *Rationale) Risks(class drepo.AssetClass, r models.InstrumentRecord) []string {
	var risks []string
	for _, dim := range g.risks {
		for _, rg := range dim.rungs {
			if rg.when(r) {
				risks = append(risks, rg.text(r))
				break
			}
		}
	}
	return risks
}

func (g *Rationale) unitsFor(price float64) int {
	if price <= 0 {
		return 0
	}
	return int(g.budget / price)
}

func (g *Rationale) cryptoDimensions() []dimension {
	priceText := func(label string) func(models.InstrumentRecord) string {
		return func(r models.InstrumentRecord) string {
			return fmt.Sprintf("%s - $%.0f buys %d coins", label, g.budget, g.unitsFor(r.CurrentPrice))
		}
	}
	return []dimension{
		{name: "price", rungs: []rung{
			{when: priceAtMost(0.1), text: priceText("Very affordable price")},
			{when: priceAtMost(0.5), text: priceText("Affordable price")},
			{when: priceAtMost(1), text: priceText("Accessible price")},
			{when: priceAtMost(2), text: priceText("Moderate price")},
		}},
		{name: "momentum_24h", rungs: []rung{
			{when: changeAtMost(-15), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Significant drop (-%.1f%%) - good entry point", -r.PriceChange24h)
			}},
			{when: changeAtMost(-8), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Notable dip (-%.1f%%) - decent entry", -r.PriceChange24h)
			}},
			{when: changeAtMost(-3), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Small correction (-%.1f%%) - reasonable timing", -r.PriceChange24h)
			}},
			{when: changeAtLeast(15), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Strong rally (+%.1f%%) - positive trend", r.PriceChange24h)
			}},
			{when: changeAtLeast(5), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Positive trend (+%.1f%%) - gaining strength", r.PriceChange24h)
			}},
		}},
		{name: "momentum_7d", rungs: []rung{
			{when: func(r models.InstrumentRecord) bool { return r.PriceChange7d <= -20 },
				text: func(r models.InstrumentRecord) string {
					return fmt.Sprintf("Weekly drawdown of -%.1f%% - possible bottom", -r.PriceChange7d)
				}},
			{when: func(r models.InstrumentRecord) bool { return r.PriceChange7d >= 20 },
				text: func(r models.InstrumentRecord) string {
					return fmt.Sprintf("Weekly gain of +%.1f%% - strong trend", r.PriceChange7d)
				}},
		}},
		{name: "rank", rungs: []rung{
			{when: rankAtMost(50), text: constText("Top-50 project - high stability")},
			{when: rankAtMost(100), text: constText("Top-100 project - good balance")},
			{when: rankAtMost(200), text: constText("Top-200 project - promising growth")},
			{when: rankAtMost(500), text: constText("Top-500 project - high upside")},
		}},
		{name: "liquidity", rungs: []rung{
			{when: volumeAtLeast(100_000_000), text: constText("Very high liquidity")},
			{when: volumeAtLeast(50_000_000), text: constText("High liquidity")},
			{when: volumeAtLeast(10_000_000), text: constText("Good liquidity")},
			{when: volumeAtLeast(5_000_000), text: constText("Moderate liquidity")},
		}},
		{name: "capitalization", rungs: []rung{
			{when: capAtLeast(1_000_000_000), text: constText("Large market cap - lower risk")},
			{when: capAtLeast(100_000_000), text: constText("Mid market cap - good potential")},
			{when: capAtLeast(10_000_000), text: constText("Small project - high risk, high upside")},
		}},
	}
}

func (g *Rationale) stockDimensions() []dimension {
	priceText := func(label string) func(models.InstrumentRecord) string {
		return func(r models.InstrumentRecord) string {
			return fmt.Sprintf("%s - $%.0f buys %d shares", label, g.budget, g.unitsFor(r.CurrentPrice))
		}
	}
	return []dimension{
		{name: "price", rungs: []rung{
			{when: priceAtMost(1), text: priceText("Very affordable price")},
			{when: priceAtMost(5), text: priceText("Affordable price")},
			{when: priceAtMost(10), text: priceText("Moderate price")},
		}},
		{name: "momentum_24h", rungs: []rung{
			{when: changeAtMost(-10), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Significant drop (-%.1f%%) - good entry point", -r.PriceChange24h)
			}},
			{when: changeAtMost(-5), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Notable dip (-%.1f%%) - decent entry", -r.PriceChange24h)
			}},
			{when: changeAtMost(-2), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Small correction (-%.1f%%) - reasonable timing", -r.PriceChange24h)
			}},
		}},
		{name: "liquidity", rungs: []rung{
			{when: volumeAtLeast(100_000_000), text: constText("High liquidity")},
		}},
		{name: "capitalization", rungs: []rung{
			{when: capAtLeast(10_000_000_000), text: constText("Large company - high stability")},
			{when: capAtLeast(1_000_000_000), text: constText("Mid-size company - good balance")},
		}},
	}
}

func (g *Rationale) bondDimensions() []dimension {
	return []dimension{
		{name: "yield", rungs: []rung{
			{when: func(r models.InstrumentRecord) bool { return r.Yield >= 5 },
				text: func(r models.InstrumentRecord) string {
					return fmt.Sprintf("High yield (%.2f%%)", r.Yield)
				}},
			{when: func(r models.InstrumentRecord) bool { return r.Yield >= 4 },
				text: func(r models.InstrumentRecord) string {
					return fmt.Sprintf("Good yield (%.2f%%)", r.Yield)
				}},
		}},
		{name: "rating", rungs: []rung{
			{when: ratingIn("AAA", "AA", "AA+", "AA-"), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("High credit rating (%s) - low risk", r.Rating)
			}},
			{when: ratingIn("A", "A+", "A-"), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Good credit rating (%s)", r.Rating)
			}},
			{when: ratingIn("BBB", "BBB+", "BBB-"), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("Investment grade rating (%s)", r.Rating)
			}},
		}},
		{name: "type", rungs: []rung{
			{when: typeIs("Government"), text: constText("Government bond - maximum safety")},
			{when: typeIs("Corporate"), text: constText("Corporate bond - balanced risk and yield")},
		}},
		{name: "par", rungs: []rung{
			{when: func(r models.InstrumentRecord) bool {
				d := r.CurrentPrice - 100
				return d >= -2 && d <= 2
			}, text: constText("Price close to par - stability")},
		}},
	}
}

func riskDimensions() []dimension {
	return []dimension{
		{name: "volatility", rungs: []rung{
			{when: changeAtMost(-20), text: func(r models.InstrumentRecord) string {
				return fmt.Sprintf("High volatility: dropped %.1f%% in 24h", -r.PriceChange24h)
			}},
		}},
		{name: "liquidity", rungs: []rung{
			{when: func(r models.InstrumentRecord) bool { return r.Volume24h > 0 && r.Volume24h < 1_000_000 },
				text: constText("Low liquidity: exiting a position may be slow")},
		}},
		{name: "rank", rungs: []rung{
			{when: func(r models.InstrumentRecord) bool { return r.MarketCapRank > 1000 },
				text: constText("Small project: ranked outside the top 1000")},
		}},
	}
}

func priceAtMost(max float64) func(models.InstrumentRecord) bool {
	return func(r models.InstrumentRecord) bool { return r.CurrentPrice > 0 && r.CurrentPrice <= max }
}

func changeAtMost(max float64) func(models.InstrumentRecord) bool {
	return func(r models.InstrumentRecord) bool { return r.PriceChange24h <= max }
}

func changeAtLeast(min float64) func(models.InstrumentRecord) bool {
	return func(r models.InstrumentRecord) bool { return r.PriceChange24h >= min }
}

func rankAtMost(max int) func(models.InstrumentRecord) bool {
	return func(r models.InstrumentRecord) bool { return r.MarketCapRank > 0 && r.MarketCapRank <= max }
}

func volumeAtLeast(min float64) func(models.InstrumentRecord) bool {
	return func(r models.InstrumentRecord) bool { return r.Volume24h >= min }
}

func capAtLeast(min float64) func(models.InstrumentRecord) bool {
	return func(r models.InstrumentRecord) bool { return r.MarketCap >= min }
}

func ratingIn(ratings ...string) func(models.InstrumentRecord) bool {
	return func(r models.InstrumentRecord) bool {
		for _, rt := range ratings {
			if r.Rating == rt {
				return true
			}
		}
		return false
	}
}

func typeIs(t string) func(models.InstrumentRecord) bool {
	return func(r models.InstrumentRecord) bool { return r.Type == t }
}

func constText(s string) func(models.InstrumentRecord) string {
	return func(models.InstrumentRecord) string { return s }
}
