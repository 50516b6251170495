package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// scheduler runs periodic link checks.
type scheduler struct {
	scheduler gocron.Scheduler
	server    *Server
}

func newScheduler(s *Server, interval time.Duration) (*scheduler, error) {
	gs, err := gocron.NewScheduler()
	if err != nil {
		return nil, errors.InternalError("failed to create scheduler").WithCause(err).Build()
	}
	sc := &scheduler{scheduler: gs, server: s}
	_, err = gs.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sc.runCheck),
		gocron.WithName("link-check"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = gs.Shutdown()
		return nil, errors.ConfigError("failed to schedule link checks").WithCause(err).WithContext("interval", interval.String()).Build()
	}
	return sc, nil
}

func (sc *scheduler) Start() {
	slog.Info("Starting link check scheduler")
	sc.scheduler.Start()
}

func (sc *scheduler) Stop() {
	slog.Info("Stopping link check scheduler")
	if err := sc.scheduler.Shutdown(); err != nil {
		slog.Warn("Scheduler shutdown failed", logfields.Error(err))
	}
}

func (sc *scheduler) runCheck() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	report, err := sc.server.CheckLinks(ctx)
	if err != nil {
		slog.Error("Scheduled link check failed", logfields.Error(err))
		return
	}
	if !report.OK() {
		slog.Warn("Scheduled link check found broken links", slog.Int("broken", len(report.Broken)))
	}
}
