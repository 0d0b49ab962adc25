package usecase

import (
	"context"
	"fmt"

	xlogger "InvestScout/pkg/logger"
	"InvestScout/pkg/queue"
)

const LogFlushJobType = "logs.flush"

// LogFlushJob consumes batches from the log collector and re-emits each
// aggregated entry as one summary line, so a repeated provider failure shows
// up as a single counted entry instead of flooding the stream.
type LogFlushJob struct {
	logger *xlogger.Logger
}

func NewLogFlushJob(lgr *xlogger.Logger) *LogFlushJob {
	return &LogFlushJob{logger: lgr}
}

func (j *LogFlushJob) Name() string { return "log-flusher" }
func (j *LogFlushJob) Type() string { return LogFlushJobType }

func (j *LogFlushJob) Handle(_ context.Context, payload interface{}) error {
	entries, err := queue.ParsePayload[[]xlogger.AggregatedLogEntry](payload)
	if err != nil {
		return fmt.Errorf("parse aggregated logs: %w", err)
	}

	for _, e := range *entries {
		j.logger.Info("aggregated log summary",
			xlogger.String("level", e.Level),
			xlogger.String("message", e.Message),
			xlogger.String("caller", e.Caller),
			xlogger.Int("count", e.Count),
			xlogger.String("first_seen", e.FirstSeen.Format("15:04:05")),
			xlogger.String("last_seen", e.LastSeen.Format("15:04:05")))
	}
	return nil
}
