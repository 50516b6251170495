// Package server serves the current navigation tree over HTTP and keeps it
// fresh: it reloads the source file when it changes, records snapshots,
// publishes events and runs scheduled link checks.
package server

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/codec"
	"git.home.luguber.info/inful/docnav/internal/events"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/render"
	"git.home.luguber.info/inful/docnav/internal/snapshot"
	"git.home.luguber.info/inful/docnav/internal/watch"
)

// Options configures a Server. Only Addr is required; every collaborator is
// optional.
type Options struct {
	Addr string
	// SourcePath is reloaded by Reload and watched when Watch is set. Empty
	// means the initial tree is fixed.
	SourcePath   string
	SourceFormat codec.Format
	Watch        bool
	Debounce     time.Duration

	// CheckInterval schedules link checks when a Checker is set.
	CheckInterval time.Duration
	Checker       *linkcheck.Checker

	HTML render.HTML

	Store     *snapshot.Store
	Publisher events.Publisher

	Recorder    metrics.Recorder
	Registry    *prom.Registry
	MetricsPath string

	Logger *slog.Logger
}

// Server holds the current tree and its pre-rendered representations.
type Server struct {
	opts      Options
	logger    *slog.Logger
	recorder  metrics.Recorder
	publisher events.Publisher
	adapter   *errors.HTTPErrorAdapter
	started   time.Time

	current atomic.Pointer[state]
	reports atomic.Pointer[linkcheck.Report]

	// reloadMu serialises Reload so snapshots and events follow load order.
	reloadMu sync.Mutex
}

// New creates a server that initially serves root.
func New(root *menu.Node, opts Options) (*Server, error) {
	if opts.Addr == "" {
		return nil, errors.ConfigError("server address is required").Build()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MetricsPath == "" {
		opts.MetricsPath = "/metrics"
	}
	if opts.HTML.ID == "" {
		opts.HTML.ID = "main-menu"
	}
	s := &Server{
		opts:      opts,
		logger:    opts.Logger,
		recorder:  metrics.OrNoop(opts.Recorder),
		publisher: opts.Publisher,
		adapter:   errors.NewHTTPErrorAdapter(opts.Logger),
		started:   time.Now(),
	}
	if s.publisher == nil {
		s.publisher = events.NoopPublisher{}
	}

	source := opts.SourcePath
	if source == "" {
		source = "embedded"
	}
	st, err := s.build(root, source)
	if err != nil {
		return nil, err
	}
	s.current.Store(st)
	s.recorder.SetTreeNodes(st.stats.Nodes)
	if err := s.record(context.Background(), nil, st); err != nil {
		s.logger.Warn("Failed to record initial snapshot", logfields.Error(err))
	}
	return s, nil
}

// Tree returns a copy of the tree currently served.
func (s *Server) Tree() *menu.Node {
	return s.current.Load().root.Clone()
}

// Reload reads SourcePath and, if it decodes and validates, swaps it in.
// On failure the previous tree keeps being served.
func (s *Server) Reload(ctx context.Context) error {
	if s.opts.SourcePath == "" {
		return errors.ConfigError("no source file to reload").Build()
	}
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	start := time.Now()
	root, err := codec.ReadFile(s.opts.SourcePath, s.opts.SourceFormat)
	if err != nil {
		s.recorder.IncReload(false)
		return err
	}
	s.recorder.ObserveLoadDuration(string(s.opts.SourceFormat), time.Since(start))

	next, err := s.build(root, s.opts.SourcePath)
	if err != nil {
		s.recorder.IncReload(false)
		return err
	}
	prev := s.current.Swap(next)
	s.recorder.IncReload(true)
	s.recorder.SetTreeNodes(next.stats.Nodes)
	s.logger.Info("Navigation tree reloaded",
		logfields.Path(s.opts.SourcePath),
		logfields.Nodes(next.stats.Nodes),
		logfields.DurationMS(float64(time.Since(start).Milliseconds())))

	return s.record(ctx, prev, next)
}

// record stores a snapshot of next when it differs from the latest one and
// announces the reload.
func (s *Server) record(ctx context.Context, prev, next *state) error {
	event := events.ReloadEvent{Source: next.source, Nodes: next.stats.Nodes}
	if prev != nil {
		if prev.etag == next.etag {
			return nil
		}
		changes, err := snapshot.Diff(prev.root, next.root)
		if err != nil {
			return err
		}
		event.Changes = len(changes)
	}

	if s.opts.Store != nil {
		snap, saved, err := s.opts.Store.SaveIfChanged(ctx, next.source, next.root)
		if err != nil {
			return err
		}
		event.SnapshotID = snap.ID
		if saved {
			s.logger.Info("Recorded navigation snapshot", logfields.SnapshotID(snap.ID))
		}
	}
	if prev == nil {
		return nil
	}
	return s.publisher.PublishReload(ctx, event)
}

// CheckLinks runs the configured link checker against the current tree and
// keeps the report for /links.json.
func (s *Server) CheckLinks(ctx context.Context) (*linkcheck.Report, error) {
	if s.opts.Checker == nil {
		return nil, errors.ConfigError("link checking is not configured").Build()
	}
	report, err := s.opts.Checker.Check(ctx, s.current.Load().root)
	if err != nil {
		return nil, err
	}
	s.reports.Store(report)
	if !report.OK() {
		event := events.LinkReportEvent{Checked: report.Checked}
		for _, b := range report.Broken {
			event.Broken = append(event.Broken, events.BrokenLink{Label: b.Label, Path: b.Path, URL: b.URL, Reason: b.Reason})
		}
		if err := s.publisher.PublishLinkReport(ctx, event); err != nil {
			s.logger.Warn("Failed to publish link report", logfields.Error(err))
		}
	}
	return report, nil
}

// Run serves HTTP until ctx is cancelled, with the watcher and link check
// schedule running alongside.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.opts.Watch && s.opts.SourcePath != "" {
		w, err := watch.New(s.opts.SourcePath, s.opts.Debounce, func(ctx context.Context) {
			if err := s.Reload(ctx); err != nil {
				s.logger.Error("Reload failed, keeping previous tree", logfields.Error(err))
			}
		})
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			_ = w.Stop()
			return err
		}
		defer func() { _ = w.Stop() }()
	}

	if s.opts.Checker != nil && s.opts.CheckInterval > 0 {
		sched, err := newScheduler(s, s.opts.CheckInterval)
		if err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Navigation server listening", logfields.Addr(s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.NetworkError("HTTP server failed").WithCause(err).WithContext("addr", s.opts.Addr).Build()
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), 5*time.Second)
	defer stop()
	s.logger.Info("Shutting down navigation server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.NetworkError("HTTP server shutdown failed").WithCause(err).Build()
	}
	return nil
}
