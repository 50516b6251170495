package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docnav/internal/codec"
	"git.home.luguber.info/inful/docnav/internal/config"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/menudata"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	// Out receives command output (stdout when nil).
	Out io.Writer
}

func (g *Global) out() io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (docnav.yaml when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Show       ShowCmd       `cmd:"" help:"Print the navigation tree"`
	Convert    ConvertCmd    `cmd:"" help:"Convert a navigation tree between formats"`
	Validate   ValidateCmd   `cmd:"" help:"Validate a navigation tree and print statistics"`
	CheckLinks CheckLinksCmd `cmd:"" name:"check-links" help:"Verify every menu link against a generated site"`
	Serve      ServeCmd      `cmd:"" help:"Serve the navigation tree over HTTP"`
	Snapshot   SnapshotCmd   `cmd:"" help:"Record and compare navigation tree snapshots"`

	cfg *config.Config
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configuration once per invocation.
func (c *CLI) LoadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// SourceFlags selects the tree a command operates on.
type SourceFlags struct {
	Source string `arg:"" optional:"" help:"Navigation tree file (embedded tree when omitted)" type:"path"`
	From   string `help:"Source format: json, yaml, js, markdown (default: from extension)"`
}

// Load resolves the tree from the flags, then the configuration, then the
// embedded tree. It returns the tree and a name for its origin.
func (s SourceFlags) Load(cli *CLI) (*menu.Node, string, error) {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return nil, "", err
	}
	path, from := s.Source, s.From
	if path == "" {
		path = cfg.Source.Path
	}
	if from == "" && cfg.Source.Format != config.FormatAuto {
		from = cfg.Source.Format
	}
	if path == "" {
		slog.Debug("Using embedded navigation tree")
		return menudata.Root(), "embedded", nil
	}

	var f codec.Format
	if from != "" {
		if f, err = codec.ParseFormat(from); err != nil {
			return nil, "", err
		}
	}
	root, err := codec.ReadFile(path, f)
	if err != nil {
		return nil, "", err
	}
	slog.Debug("Loaded navigation tree", logfields.Path(path))
	return root, path, nil
}
