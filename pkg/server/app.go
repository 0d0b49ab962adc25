package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	drepo "InvestScout/internal/domain/repository"
	"InvestScout/internal/usecase"
	"InvestScout/pkg/config"
	xhttp "InvestScout/pkg/http"
	applogger "InvestScout/pkg/logger"
	"InvestScout/pkg/queue"
)

// App encapsulates the entire application lifecycle: HTTP surface, daily
// scheduler, queue workers and sink teardown.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    xhttp.Handler
	scheduler  *usecase.Scheduler
	consumer   *queue.RedisQueue
	sinks      []drepo.RecommendationSink
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies. Scheduler and
// consumer may be nil when the corresponding feature is disabled.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	scheduler *usecase.Scheduler,
	consumer *queue.RedisQueue,
	sinks []drepo.RecommendationSink,
) *App {
	return &App{
		cfg:       cfg,
		logger:    logger,
		handler:   handler,
		scheduler: scheduler,
		consumer:  consumer,
		sinks:     sinks,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.consumer != nil {
		if err := a.consumer.Start(); err != nil {
			a.logger.Error("queue start error", applogger.Error(err))
			return err
		}
	}

	if a.scheduler != nil && a.cfg.Schedule.Enabled {
		if err := a.scheduler.Start(); err != nil {
			a.logger.Error("scheduler start error", applogger.Error(err))
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("investscout started",
		applogger.Int("port", a.cfg.Server.Port),
		applogger.String("environment", a.cfg.Environment))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown()
}

// shutdown gracefully stops all services in reverse start order.
func (a *App) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	if a.scheduler != nil && a.cfg.Schedule.Enabled {
		if err := a.scheduler.Stop(ctx); err != nil {
			a.logger.Warn("scheduler stop error", applogger.Error(err))
		}
	}

	if a.httpServer != nil {
		if err := a.httpServer.Stop(ctx); err != nil {
			a.logger.Error("http shutdown error", applogger.Error(err))
		}
	}

	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			a.logger.Warn("queue stop error", applogger.Error(err))
		}
	}

	for _, sink := range a.sinks {
		if err := sink.Close(); err != nil {
			a.logger.Warn("sink close error", applogger.Error(err))
		}
	}

	a.logger.RemoveCollector()
	a.logger.Info("shutdown complete")
	return nil
}
