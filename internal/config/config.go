// Package config loads docnav configuration from YAML with environment
// expansion, applies defaults per section and validates the result.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = "docnav.yaml"

// Config represents the application configuration.
type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Output    OutputConfig    `yaml:"output"`
	Site      SiteConfig      `yaml:"site"`
	Server    ServerConfig    `yaml:"server"`
	Snapshots SnapshotsConfig `yaml:"snapshots"`
	Events    EventsConfig    `yaml:"events"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// SourceConfig locates the navigation tree. An empty path selects the
// embedded tree.
type SourceConfig struct {
	Path   string `yaml:"path,omitempty"`
	Format string `yaml:"format,omitempty"` // auto, json, yaml, js, markdown
}

// OutputConfig controls conversions.
type OutputConfig struct {
	Directory string `yaml:"directory,omitempty"`
	Format    string `yaml:"format,omitempty"`
	Indent    string `yaml:"indent,omitempty"`
}

// SiteConfig points at the generated HTML site used for link checks.
type SiteConfig struct {
	Directory     string `yaml:"directory,omitempty"`
	CheckExternal bool   `yaml:"check_external,omitempty"`
	Concurrency   int    `yaml:"concurrency,omitempty"`
	// Retries for external links failing transiently; negative disables.
	Retries int `yaml:"retries,omitempty"`
}

// ServerConfig configures the navigation HTTP server.
type ServerConfig struct {
	Addr          string        `yaml:"addr,omitempty"`
	Watch         bool          `yaml:"watch,omitempty"`
	Debounce      time.Duration `yaml:"debounce,omitempty"`
	CheckInterval time.Duration `yaml:"check_interval,omitempty"`
	HTMLClass     string        `yaml:"html_class,omitempty"`
}

// SnapshotsConfig locates the snapshot history database.
type SnapshotsConfig struct {
	Database string `yaml:"database,omitempty"`
}

// EventsConfig enables reload and link notifications over NATS.
type EventsConfig struct {
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// Enabled reports whether event publishing is configured.
func (e EventsConfig) Enabled() bool { return e.NATSURL != "" }

// MetricsConfig exposes Prometheus metrics on the server.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled,omitempty"`
	Path    string `yaml:"path,omitempty"`
}

// Load reads the configuration at path. A missing file at DefaultPath is not
// an error: the defaults are returned instead.
func Load(path string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
		return Defaults()
	case os.IsNotExist(err):
		return nil, errors.ConfigError("configuration file not found").WithContext("path", path).Build()
	default:
		return nil, errors.WrapError(err, errors.CategoryFileSystem, "failed to read config file").WithContext("path", path).Build()
	}

	cfg, err := Parse(data)
	if err != nil {
		if ce, ok := errors.AsClassified(err); ok {
			return nil, ce.WithContext("path", path)
		}
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration, expanding ${VAR} references first.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to parse config file").Fatal().Build()
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Defaults returns a configuration with every default applied.
func Defaults() (*Config, error) {
	var cfg Config
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
