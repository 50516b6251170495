// Package linkcheck verifies that every entry of a navigation tree points at
// a page that exists in the generated site and, for anchor links, that the
// page defines the anchor.
package linkcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/retry"
)

// Options configures a Checker.
type Options struct {
	// SiteDir is the root of the generated HTML site.
	SiteDir string
	// CheckExternal enables HEAD requests for absolute http(s) links.
	CheckExternal bool
	HTTPClient    *http.Client
	// MaxConcurrent bounds parallel page loads (default 4).
	MaxConcurrent int
	// Retry governs external requests that fail with a transport error or a
	// 5xx status. Nil means a single attempt.
	Retry    *retry.Policy
	Recorder metrics.Recorder
}

// Broken describes one entry whose target could not be resolved.
type Broken struct {
	Label  string   `json:"label"`
	Path   []string `json:"path"`
	URL    string   `json:"url"`
	Reason string   `json:"reason"`
	Status int      `json:"status,omitempty"`
}

// Report is the outcome of a full check.
type Report struct {
	Checked  int           `json:"checked"`
	Skipped  int           `json:"skipped"`
	Broken   []Broken      `json:"broken"`
	Duration time.Duration `json:"duration"`
}

// OK reports whether every checked link resolved.
func (r *Report) OK() bool { return len(r.Broken) == 0 }

// Checker resolves menu links against a site directory.
type Checker struct {
	opts     Options
	recorder metrics.Recorder
}

// New creates a Checker.
func New(opts Options) (*Checker, error) {
	if opts.SiteDir == "" {
		return nil, errors.ConfigError("site directory is required for link checks").Build()
	}
	info, err := os.Stat(opts.SiteDir)
	if err != nil || !info.IsDir() {
		return nil, errors.ConfigError("site directory does not exist").WithContext("path", opts.SiteDir).Build()
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Checker{opts: opts, recorder: metrics.OrNoop(opts.Recorder)}, nil
}

type page struct {
	exists  bool
	anchors map[string]struct{}
	err     error
}

type target struct {
	entry menu.Entry
	menu.Target
}

// Check walks root and resolves every entry. Results are reported in walk
// order regardless of how pages were loaded.
func (c *Checker) Check(ctx context.Context, root *menu.Node) (*Report, error) {
	start := time.Now()
	report := &Report{}

	var targets []target
	pagesNeeded := map[string]bool{}
	for e, err := range menu.Walk(root) {
		if err != nil {
			return nil, err
		}
		t := target{entry: e, Target: e.Node.Target()}
		targets = append(targets, t)
		if !t.IsExternal() && t.Page != "" {
			pagesNeeded[t.Page] = pagesNeeded[t.Page] || t.HasFragment()
		}
	}

	pages, err := c.loadPages(ctx, pagesNeeded)
	if err != nil {
		return nil, err
	}

	external := map[string]Broken{}
	for _, t := range targets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var broken *Broken
		switch {
		case t.IsExternal():
			if !c.opts.CheckExternal {
				report.Skipped++
				c.recorder.IncLinkResult(metrics.LinkSkipped)
				continue
			}
			broken = c.checkExternal(ctx, t, external)
		case t.Page == "":
			broken = newBroken(t, "no page in link")
		default:
			broken = resolve(t, pages[t.Page])
		}

		report.Checked++
		if broken != nil {
			report.Broken = append(report.Broken, *broken)
			c.recorder.IncLinkResult(metrics.LinkBroken)
			slog.Debug("Broken menu link", logfields.Label(t.entry.Label), logfields.URL(t.entry.URL), slog.String("reason", broken.Reason))
			continue
		}
		c.recorder.IncLinkResult(metrics.LinkOK)
	}

	report.Duration = time.Since(start)
	c.recorder.ObserveLinkCheckDuration(report.Duration)
	slog.Info("Link check completed",
		slog.Int("checked", report.Checked),
		slog.Int("skipped", report.Skipped),
		slog.Int("broken", len(report.Broken)),
		logfields.DurationMS(float64(report.Duration.Milliseconds())))
	return report, nil
}

func resolve(t target, p *page) *Broken {
	switch {
	case p == nil || !p.exists:
		return newBroken(t, "page not found")
	case p.err != nil:
		return newBroken(t, "page unreadable: "+p.err.Error())
	case t.HasFragment():
		if _, ok := p.anchors[t.Fragment]; !ok {
			return newBroken(t, "anchor not found")
		}
	}
	return nil
}

func newBroken(t target, reason string) *Broken {
	return &Broken{Label: t.entry.Label, Path: t.entry.Path, URL: t.entry.URL, Reason: reason}
}

// loadPages stats every page and parses those that need anchor lookups,
// at most MaxConcurrent at a time.
func (c *Checker) loadPages(ctx context.Context, needed map[string]bool) (map[string]*page, error) {
	var (
		mu    sync.Mutex
		wg    sync.WaitGroup
		sem   = make(chan struct{}, c.opts.MaxConcurrent)
		pages = make(map[string]*page, len(needed))
	)
	for name, wantAnchors := range needed {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(name string, wantAnchors bool) {
			defer wg.Done()
			defer func() { <-sem }()
			p := c.loadPage(name, wantAnchors)
			mu.Lock()
			pages[name] = p
			mu.Unlock()
		}(name, wantAnchors)
	}
	wg.Wait()
	return pages, nil
}

func (c *Checker) loadPage(name string, wantAnchors bool) *page {
	path, ok := c.sitePath(name)
	if !ok {
		return &page{}
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &page{}
	}
	p := &page{exists: true}
	if !wantAnchors {
		return p
	}
	p.anchors, p.err = Anchors(path)
	return p
}

// sitePath maps a link page onto the site directory, refusing paths that
// escape it.
func (c *Checker) sitePath(name string) (string, bool) {
	name = strings.SplitN(name, "?", 2)[0]
	full := filepath.Join(c.opts.SiteDir, filepath.FromSlash(strings.TrimPrefix(name, "/")))
	rel, err := filepath.Rel(c.opts.SiteDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

func (c *Checker) checkExternal(ctx context.Context, t target, seen map[string]Broken) *Broken {
	if b, ok := seen[t.Page]; ok {
		if b.Reason == "" {
			return nil
		}
		b.Label, b.Path, b.URL = t.entry.Label, t.entry.Path, t.entry.URL
		return &b
	}

	var result Broken
	policy := retry.NewPolicy(retry.BackoffFixed, time.Millisecond, time.Millisecond, 0)
	if c.opts.Retry != nil {
		policy = *c.opts.Retry
	}
	err := policy.Do(ctx, func(ctx context.Context) error {
		status, err := c.head(ctx, t.Page)
		switch {
		case err != nil:
			return errors.NetworkError("request failed").WithCause(err).Build()
		case status >= 500:
			result = Broken{Reason: fmt.Sprintf("http status %d", status), Status: status}
			return errors.NetworkError("server error").WithContext("status", status).Build()
		case status >= 400:
			result = Broken{Reason: fmt.Sprintf("http status %d", status), Status: status}
		default:
			result = Broken{}
		}
		return nil
	})
	if err != nil && result.Status == 0 {
		result = Broken{Reason: "request failed: " + rootCause(err).Error()}
	}
	seen[t.Page] = result
	if result.Reason == "" {
		return nil
	}
	result.Label, result.Path, result.URL = t.entry.Label, t.entry.Path, t.entry.URL
	return &result
}

func (c *Checker) head(ctx context.Context, target string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, target, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.opts.HTTPClient.Do(req)
	if err != nil {
		return 0, err
	}
	_ = resp.Body.Close()
	return resp.StatusCode, nil
}

func rootCause(err error) error {
	if ce, ok := errors.AsClassified(err); ok && ce.Cause() != nil {
		return ce.Cause()
	}
	return err
}
