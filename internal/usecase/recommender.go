package usecase

import (
	"context"
	"sort"
	"time"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	xlogger "InvestScout/pkg/logger"
)

const maxRecommendations = 3

// Recommender is the pipeline facade: acquisition, eligibility filtering,
// scoring, ranking and rationale derivation for one asset class. It never
// fails for "no results"; an empty set carries an explanatory note instead.
type Recommender struct {
	acquirer  *Acquirer
	filter    *Filter
	scorer    *Scorer
	rationale *Rationale
	metrics   drepo.Metrics
	logger    *xlogger.Logger
}

func NewRecommender(
	acquirer *Acquirer,
	filter *Filter,
	scorer *Scorer,
	rationale *Rationale,
	metrics drepo.Metrics,
	lgr *xlogger.Logger,
) *Recommender {
	return &Recommender{
		acquirer:  acquirer,
		filter:    filter,
		scorer:    scorer,
		rationale: rationale,
		metrics:   metrics,
		logger:    lgr,
	}
}

// TopRecommendations produces up to 3 ranked recommendations for the class.
func (rc *Recommender) TopRecommendations(ctx context.Context, class drepo.AssetClass, limit int) *models.RecommendationSet {
	started := time.Now()
	if limit <= 0 || limit > maxRecommendations {
		limit = maxRecommendations
	}

	acquired := rc.acquirer.Fetch(ctx, class, 0)

	eligible := rc.filter.Eligible(class, acquired.Records)
	scored := rc.scorer.ScoreAll(class, eligible)

	// Stable sort keeps filter ordering as the deterministic tie-break.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].InvestmentScore > scored[j].InvestmentScore
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	set := &models.RecommendationSet{
		Class:       string(class),
		GeneratedAt: time.Now().UTC(),
		Origin:      acquired.Origin,
		Items:       make([]models.Recommendation, 0, len(scored)),
	}
	for _, r := range scored {
		set.Items = append(set.Items, models.Recommendation{
			Instrument: r,
			Reasons:    rc.rationale.Reasons(class, r),
			Risks:      rc.rationale.Risks(class, r),
		})
	}

	switch {
	case len(set.Items) == 0:
		set.Note = "No instruments matched the eligibility criteria. Try again later."
	case acquired.Origin == models.OriginSeed:
		set.Note = "Live market data was unavailable; figures come from a static snapshot."
	}

	rc.metrics.RecordPipelineLatency(string(class), time.Since(started).Seconds())
	rc.metrics.RecordRecommendations(string(class), string(acquired.Origin), len(set.Items))
	rc.logger.Info("recommendations produced",
		xlogger.String("class", string(class)),
		xlogger.String("origin", string(acquired.Origin)),
		xlogger.Int("count", len(set.Items)),
		xlogger.Duration("elapsed", time.Since(started)))
	return set
}
