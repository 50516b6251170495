package commands

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/docnav/internal/codec"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/events"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/render"
	"git.home.luguber.info/inful/docnav/internal/server"
	"git.home.luguber.info/inful/docnav/internal/snapshot"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	SourceFlags

	Addr          string        `help:"Listen address (default: server.addr)"`
	Watch         bool          `help:"Reload the source file when it changes"`
	CheckInterval time.Duration `name:"check-interval" help:"Run link checks at this interval (needs a site directory)"`
	Site          string        `short:"s" help:"Generated HTML site directory for link checks" type:"path"`
	History       bool          `help:"Record a snapshot of every served tree"`
}

// Run executes the serve command until interrupted.
func (cmd *ServeCmd) Run(g *Global, cli *CLI) error {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}
	root, source, err := cmd.Load(cli)
	if err != nil {
		return err
	}

	opts := server.Options{
		Addr:          firstNonEmpty(cmd.Addr, cfg.Server.Addr),
		Watch:         cmd.Watch || cfg.Server.Watch,
		Debounce:      cfg.Server.Debounce,
		CheckInterval: cmd.CheckInterval,
		HTML:          render.HTML{ID: "main-menu", Class: cfg.Server.HTMLClass},
		MetricsPath:   cfg.Metrics.Path,
		Logger:        g.Logger,
	}
	if source != "embedded" {
		opts.SourcePath = source
		if from := firstNonEmpty(cmd.From, formatOrEmpty(cfg.Source.Format)); from != "" {
			if opts.SourceFormat, err = codec.ParseFormat(from); err != nil {
				return err
			}
		}
	}
	if opts.CheckInterval == 0 {
		opts.CheckInterval = cfg.Server.CheckInterval
	}

	if cfg.Metrics.Enabled {
		reg := prom.NewRegistry()
		opts.Registry = reg
		opts.Recorder = metrics.NewPrometheusRecorder(reg)
	}

	if site := firstNonEmpty(cmd.Site, cfg.Site.Directory); site != "" {
		checker, err := linkcheck.New(linkcheck.Options{
			SiteDir:       site,
			CheckExternal: cfg.Site.CheckExternal,
			MaxConcurrent: cfg.Site.Concurrency,
			Retry:         retryPolicy(cfg.Site.Retries),
			Recorder:      opts.Recorder,
		})
		if err != nil {
			return err
		}
		opts.Checker = checker
	}

	if cmd.History {
		store, err := snapshot.Open(cfg.Snapshots.Database)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts.Store = store
	}

	if cfg.Events.Enabled() {
		pub, err := events.Connect(cfg.Events.NATSURL, cfg.Events.Subject)
		if err != nil {
			return err
		}
		defer pub.Close()
		opts.Publisher = pub
	}

	srv, err := server.New(root, opts)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return srv.Run(ctx)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func formatOrEmpty(f string) string {
	if f == config.FormatAuto {
		return ""
	}
	return f
}
