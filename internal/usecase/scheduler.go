package usecase

import (
	"context"
	"fmt"
	"time"

	drepo "InvestScout/internal/domain/repository"
	"InvestScout/pkg/cache"
	"InvestScout/pkg/config"
	xlogger "InvestScout/pkg/logger"
	"InvestScout/pkg/queue"
	"InvestScout/pkg/util"
)

const schedulerLockKey = "scheduler:digest:lock"

// Scheduler fires the daily digest at the configured local time. When a
// queue is available the run is enqueued so a worker picks it up with retry
// semantics; otherwise it runs inline. A short-lived distributed lock keeps
// multiple replicas from double-sending the same digest.
type Scheduler struct {
	digest    *Digest
	publisher queue.QueueService
	cache     cache.Service
	at        string
	timezone  string
	classes   []string
	logger    *xlogger.Logger

	stopCh chan struct{}
	doneCh chan struct{}
}

func NewScheduler(
	digest *Digest,
	publisher queue.QueueService,
	cacheSvc cache.Service,
	cfg *config.Config,
	lgr *xlogger.Logger,
) *Scheduler {
	return &Scheduler{
		digest:    digest,
		publisher: publisher,
		cache:     cacheSvc,
		at:        cfg.Schedule.Time,
		timezone:  cfg.Schedule.Timezone,
		classes:   cfg.Schedule.Classes,
		logger:    lgr,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start launches the scheduling loop in its own goroutine.
func (s *Scheduler) Start() error {
	loc, err := time.LoadLocation(s.timezone)
	if err != nil {
		return fmt.Errorf("load timezone %s: %w", s.timezone, err)
	}
	hour, minute, err := util.ParseClock(s.at)
	if err != nil {
		return fmt.Errorf("parse schedule time: %w", err)
	}

	go s.loop(loc, hour, minute)
	s.logger.Info("scheduler started",
		xlogger.String("at", s.at), xlogger.String("timezone", s.timezone))
	return nil
}

// Stop signals the loop to exit and waits for it.
func (s *Scheduler) Stop(ctx context.Context) error {
	close(s.stopCh)
	select {
	case <-s.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) loop(loc *time.Location, hour, minute int) {
	defer close(s.doneCh)
	for {
		wait := time.Until(nextRun(time.Now().In(loc), hour, minute))
		select {
		case <-s.stopCh:
			return
		case <-time.After(wait):
			s.fire()
		}
	}
}

func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Scheduler) fire() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// One digest per scheduled slot across all replicas.
	locked, err := s.cache.TryLock(ctx, schedulerLockKey, time.Minute)
	if err != nil {
		s.logger.Warn("scheduler lock check failed, running anyway", xlogger.Error(err))
	} else if !locked {
		s.logger.Info("digest already claimed by another replica")
		return
	}

	if s.publisher != nil {
		payload := DigestPayload{Classes: s.classes}
		if err := s.publisher.PublishMessage(ctx, DigestJobType, payload); err == nil {
			s.logger.Info("digest enqueued", xlogger.Strings("classes", s.classes))
			return
		} else {
			s.logger.Warn("digest enqueue failed, running inline", xlogger.Error(err))
		}
	}

	classes := make([]drepo.AssetClass, 0, len(s.classes))
	for _, c := range s.classes {
		if norm := drepo.NormalizeClass(c); norm != "" {
			classes = append(classes, norm)
		}
	}
	if err := s.digest.Run(ctx, classes); err != nil {
		s.logger.Error("scheduled digest failed", xlogger.Error(err))
	}
}
