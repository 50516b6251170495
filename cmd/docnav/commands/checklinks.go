package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/retry"
)

// CheckLinksCmd implements the 'check-links' command.
type CheckLinksCmd struct {
	SourceFlags

	Site        string `short:"s" help:"Generated HTML site directory (default: site.directory)" type:"path"`
	External    bool   `help:"Also send HEAD requests to external links"`
	Concurrency int    `help:"Pages loaded in parallel (default: site.concurrency)"`
	JSON        bool   `help:"Print the report as JSON"`
}

// Run executes the check-links command. Broken links are reported and make
// the command fail with a validation exit code.
func (cmd *CheckLinksCmd) Run(g *Global, cli *CLI) error {
	root, _, err := cmd.Load(cli)
	if err != nil {
		return err
	}
	cfg, err := cli.LoadConfig()
	if err != nil {
		return err
	}

	opts := linkcheck.Options{
		SiteDir:       cmd.Site,
		CheckExternal: cmd.External || cfg.Site.CheckExternal,
		MaxConcurrent: cmd.Concurrency,
		Retry:         retryPolicy(cfg.Site.Retries),
	}
	if opts.SiteDir == "" {
		opts.SiteDir = cfg.Site.Directory
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = cfg.Site.Concurrency
	}
	checker, err := linkcheck.New(opts)
	if err != nil {
		return err
	}
	report, err := checker.Check(context.Background(), root)
	if err != nil {
		return err
	}

	out := g.out()
	if cmd.JSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		for _, b := range report.Broken {
			_, _ = fmt.Fprintf(out, "%s [%s]: %s\n", strings.Join(b.Path, " > "), b.URL, b.Reason)
		}
		_, _ = fmt.Fprintf(out, "%d checked, %d skipped, %d broken\n", report.Checked, report.Skipped, len(report.Broken))
	}

	if !report.OK() {
		return errors.ValidationError(fmt.Sprintf("%d broken menu links", len(report.Broken))).Build()
	}
	return nil
}

func retryPolicy(retries int) *retry.Policy {
	p := retry.NewPolicy(retry.BackoffExponential, 500*time.Millisecond, 5*time.Second, retries)
	return &p
}
