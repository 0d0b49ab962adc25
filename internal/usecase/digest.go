package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"InvestScout/internal/domain/models"
	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/config"
	xlogger "InvestScout/pkg/logger"
)

// Digest renders recommendation sets into the daily text digest, delivers
// it through the configured notifier and stores each set in the sinks.
// Sink and delivery failures are logged, never propagated: the digest is a
// best-effort broadcast, not a transaction.
type Digest struct {
	recommender *Recommender
	notifier    drepo.Notifier
	sinks       []drepo.RecommendationSink
	budget      float64
	timezone    string
	metrics     drepo.Metrics
	logger      *xlogger.Logger
}

func NewDigest(
	recommender *Recommender,
	notifier drepo.Notifier,
	sinks []drepo.RecommendationSink,
	cfg *config.Config,
	metrics drepo.Metrics,
	lgr *xlogger.Logger,
) *Digest {
	return &Digest{
		recommender: recommender,
		notifier:    notifier,
		sinks:       sinks,
		budget:      cfg.Criteria.DailyBudget,
		timezone:    cfg.Schedule.Timezone,
		metrics:     metrics,
		logger:      lgr,
	}
}

// Run builds and delivers the digest for the given classes. It returns an
// error only when delivery itself fails; empty recommendation sets still
// produce a (shorter) digest.
func (d *Digest) Run(ctx context.Context, classes []drepo.AssetClass) error {
	sets := make([]*models.RecommendationSet, 0, len(classes))
	for _, class := range classes {
		set := d.recommender.TopRecommendations(ctx, class, maxRecommendations)
		sets = append(sets, set)
		d.store(ctx, set)
	}

	text := d.Render(sets)
	if d.notifier == nil {
		d.logger.Info("no notifier configured, digest rendered only",
			xlogger.Int("classes", len(sets)))
		return nil
	}
	if err := d.notifier.Send(ctx, text); err != nil {
		d.metrics.RecordDelivery("telegram", "error")
		return fmt.Errorf("deliver digest: %w", err)
	}
	d.metrics.RecordDelivery("telegram", "success")
	return nil
}

func (d *Digest) store(ctx context.Context, set *models.RecommendationSet) {
	for _, sink := range d.sinks {
		if err := sink.Store(ctx, set); err != nil {
			d.metrics.RecordError("sink_store")
			d.logger.Warn("sink store failed",
				xlogger.String("class", set.Class), xlogger.Error(err))
		}
	}
}

// Render produces the digest text. Presentation only; all selection logic
// lives upstream.
func (d *Digest) Render(sets []*models.RecommendationSet) string {
	now := time.Now()
	if loc, err := time.LoadLocation(d.timezone); err == nil {
		now = now.In(loc)
	}

	var b strings.Builder
	b.WriteString("<b>DAILY INVESTMENT DIGEST</b>\n")
	fmt.Fprintf(&b, "Date: %s\n", now.Format("02.01.2006"))
	fmt.Fprintf(&b, "Daily budget: $%.0f\n", d.budget)
	fmt.Fprintf(&b, "Generated at: %s\n\n", now.Format("15:04"))

	for _, set := range sets {
		fmt.Fprintf(&b, "<b>TOP %s PICKS</b>\n", strings.ToUpper(set.Class))
		if set.Note != "" {
			b.WriteString(set.Note + "\n")
		}
		for i, item := range set.Items {
			r := item.Instrument
			fmt.Fprintf(&b, "\n<b>%d. %s (%s)</b>\n", i+1, r.Name, r.Symbol)
			fmt.Fprintf(&b, "Price: $%s\n", formatPrice(r.CurrentPrice))
			if set.Class == string(drepo.ClassBonds) {
				fmt.Fprintf(&b, "Yield: %.2f%% | Rating: %s | Maturity: %s\n", r.Yield, r.Rating, r.Maturity)
			} else {
				fmt.Fprintf(&b, "24h change: %.1f%%\n", r.PriceChange24h)
				fmt.Fprintf(&b, "Volume: $%.1fM\n", r.Volume24h/1_000_000)
			}
			fmt.Fprintf(&b, "Score: %.1f/10\n", r.InvestmentScore)
			if len(item.Reasons) > 0 {
				fmt.Fprintf(&b, "Why buy: %s\n", strings.Join(item.Reasons, "; "))
			}
			if len(item.Risks) > 0 {
				fmt.Fprintf(&b, "Risks: %s\n", strings.Join(item.Risks, "; "))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("This is not financial advice. Always do your own research.")
	return b.String()
}

func formatPrice(p float64) string {
	if p < 1 {
		return fmt.Sprintf("%.4f", p)
	}
	return fmt.Sprintf("%.2f", p)
}
