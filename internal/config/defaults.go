package config

import (
	"strings"
	"time"
)

// DefaultApplier applies defaults for one configuration section.
type DefaultApplier interface {
	ApplyDefaults(cfg *Config) error
	Domain() string
}

func defaultAppliers() []DefaultApplier {
	return []DefaultApplier{
		&SourceDefaultApplier{},
		&OutputDefaultApplier{},
		&SiteDefaultApplier{},
		&ServerDefaultApplier{},
		&SnapshotsDefaultApplier{},
		&EventsDefaultApplier{},
		&MetricsDefaultApplier{},
	}
}

func applyDefaults(cfg *Config) error {
	for _, a := range defaultAppliers() {
		if err := a.ApplyDefaults(cfg); err != nil {
			return err
		}
	}
	return nil
}

// SourceDefaultApplier handles source defaults.
type SourceDefaultApplier struct{}

func (SourceDefaultApplier) Domain() string { return "source" }

func (SourceDefaultApplier) ApplyDefaults(cfg *Config) error {
	cfg.Source.Format = strings.ToLower(strings.TrimSpace(cfg.Source.Format))
	if cfg.Source.Format == "" {
		cfg.Source.Format = FormatAuto
	}
	return nil
}

// OutputDefaultApplier handles output defaults.
type OutputDefaultApplier struct{}

func (OutputDefaultApplier) Domain() string { return "output" }

func (OutputDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Output.Directory == "" {
		cfg.Output.Directory = "."
	}
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.Output.Format == "" {
		cfg.Output.Format = "json"
	}
	return nil
}

// SiteDefaultApplier handles link check defaults.
type SiteDefaultApplier struct{}

func (SiteDefaultApplier) Domain() string { return "site" }

func (SiteDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Site.Concurrency <= 0 {
		cfg.Site.Concurrency = 4
	}
	switch {
	case cfg.Site.Retries == 0:
		cfg.Site.Retries = 2
	case cfg.Site.Retries < 0:
		cfg.Site.Retries = 0
	}
	return nil
}

// ServerDefaultApplier handles HTTP server defaults.
type ServerDefaultApplier struct{}

func (ServerDefaultApplier) Domain() string { return "server" }

func (ServerDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Server.Debounce <= 0 {
		cfg.Server.Debounce = 250 * time.Millisecond
	}
	if cfg.Server.HTMLClass == "" {
		cfg.Server.HTMLClass = "sm sm-dox"
	}
	return nil
}

// SnapshotsDefaultApplier handles snapshot store defaults.
type SnapshotsDefaultApplier struct{}

func (SnapshotsDefaultApplier) Domain() string { return "snapshots" }

func (SnapshotsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Snapshots.Database == "" {
		cfg.Snapshots.Database = "docnav-snapshots.db"
	}
	return nil
}

// EventsDefaultApplier handles NATS defaults. The subject is only defaulted
// when a server URL is configured.
type EventsDefaultApplier struct{}

func (EventsDefaultApplier) Domain() string { return "events" }

func (EventsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Events.NATSURL != "" && cfg.Events.Subject == "" {
		cfg.Events.Subject = "docnav.menu"
	}
	return nil
}

// MetricsDefaultApplier handles metrics endpoint defaults.
type MetricsDefaultApplier struct{}

func (MetricsDefaultApplier) Domain() string { return "metrics" }

func (MetricsDefaultApplier) ApplyDefaults(cfg *Config) error {
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	return nil
}
