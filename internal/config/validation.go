package config

import (
	"slices"
	"strings"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// FormatAuto selects the source codec from the file extension.
const FormatAuto = "auto"

var (
	sourceFormats = []string{FormatAuto, "json", "yaml", "js", "markdown"}
	outputFormats = []string{"json", "yaml", "js", "markdown", "go"}
)

// Validate checks a configuration after defaults have been applied.
func Validate(cfg *Config) error {
	v := &configurationValidator{config: cfg}
	for _, check := range []func() error{
		v.validateSource,
		v.validateOutput,
		v.validateServer,
		v.validateEvents,
		v.validateMetrics,
	} {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

type configurationValidator struct {
	config *Config
}

func (cv *configurationValidator) validateSource() error {
	if !slices.Contains(sourceFormats, cv.config.Source.Format) {
		return invalid("source.format", cv.config.Source.Format, "unsupported source format")
	}
	return nil
}

func (cv *configurationValidator) validateOutput() error {
	if !slices.Contains(outputFormats, cv.config.Output.Format) {
		return invalid("output.format", cv.config.Output.Format, "unsupported output format")
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	s := cv.config.Server
	if !strings.Contains(s.Addr, ":") {
		return invalid("server.addr", s.Addr, "listen address must be host:port")
	}
	if s.CheckInterval < 0 {
		return invalid("server.check_interval", s.CheckInterval.String(), "check interval cannot be negative")
	}
	if s.CheckInterval > 0 && cv.config.Site.Directory == "" {
		return invalid("server.check_interval", s.CheckInterval.String(), "scheduled link checks require site.directory")
	}
	return nil
}

func (cv *configurationValidator) validateEvents() error {
	e := cv.config.Events
	if e.NATSURL == "" {
		return nil
	}
	if !strings.HasPrefix(e.NATSURL, "nats://") && !strings.HasPrefix(e.NATSURL, "tls://") {
		return invalid("events.nats_url", e.NATSURL, "NATS URL must use nats:// or tls://")
	}
	if strings.ContainsAny(e.Subject, " *>") {
		return invalid("events.subject", e.Subject, "subject must be a concrete NATS subject")
	}
	return nil
}

func (cv *configurationValidator) validateMetrics() error {
	if !strings.HasPrefix(cv.config.Metrics.Path, "/") {
		return invalid("metrics.path", cv.config.Metrics.Path, "metrics path must start with /")
	}
	return nil
}

func invalid(field, value, msg string) error {
	return errors.ConfigError(msg).
		WithContext("field", field).
		WithContext("value", value).
		Build()
}
