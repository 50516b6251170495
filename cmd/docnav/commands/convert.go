package commands

import (
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/docnav/internal/codec"
	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// ConvertCmd implements the 'convert' command.
type ConvertCmd struct {
	SourceFlags

	To          string `short:"t" help:"Target format: json, yaml, js, markdown, go (default: from --output extension, then config)"`
	Output      string `short:"o" help:"Output file, relative to output.directory (stdout when omitted)"`
	Indent      string `help:"JSON indent; '-' for compact output"`
	OmitLicense bool   `name:"omit-license" help:"Drop the license banner from menudata.js output"`
	VarName     string `name:"var" help:"JavaScript variable name" default:"menudata"`
	Package     string `help:"Go package name" default:"menudata"`
	GoVar       string `name:"go-var" help:"Go variable name" default:"site"`
}

// Run executes the convert command.
func (cmd *ConvertCmd) Run(g *Global, cli *CLI) error {
	root, _, err := cmd.Load(cli)
	if err != nil {
		return err
	}
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	to, err := cmd.targetFormat(cfg.Output.Format)
	if err != nil {
		return err
	}
	indent := cmd.Indent
	if indent == "" {
		indent = cfg.Output.Indent
	}
	opts := codec.Options{
		Indent:      indent,
		OmitLicense: cmd.OmitLicense,
		VarName:     cmd.VarName,
		Package:     cmd.Package,
		GoVar:       cmd.GoVar,
	}

	if cmd.Output == "" {
		return codec.Encode(g.out(), root, to, opts)
	}
	path := outputPath(cfg.Output.Directory, cmd.Output)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "create output directory").
			WithContext("path", path).Build()
	}
	if err := codec.WriteFile(path, root, to, opts); err != nil {
		return err
	}
	slog.Info("Navigation tree written", logfields.Path(path), logfields.Format(string(to)))
	return nil
}

// outputPath places relative output files under the configured directory.
func outputPath(dir, out string) string {
	if filepath.IsAbs(out) || dir == "" {
		return out
	}
	return filepath.Join(dir, out)
}

func (cmd *ConvertCmd) targetFormat(configured string) (codec.Format, error) {
	if cmd.To != "" {
		return codec.ParseFormat(cmd.To)
	}
	if cmd.Output != "" {
		if f, err := codec.Detect(cmd.Output); err == nil {
			return f, nil
		}
	}
	return codec.ParseFormat(configured)
}
