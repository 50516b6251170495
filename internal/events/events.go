// Package events publishes navigation tree notifications to NATS.
package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
)

// Subject suffixes appended to the configured base subject.
const (
	SuffixReloaded    = "reloaded"
	SuffixLinksBroken = "links.broken"
)

// ReloadEvent is emitted whenever the served tree is replaced.
type ReloadEvent struct {
	Source     string    `json:"source"`
	SnapshotID string    `json:"snapshot_id,omitempty"`
	Nodes      int       `json:"nodes"`
	Changes    int       `json:"changes"`
	Timestamp  time.Time `json:"timestamp"`
}

// BrokenLink is one unresolved menu link.
type BrokenLink struct {
	Label  string   `json:"label"`
	Path   []string `json:"path"`
	URL    string   `json:"url"`
	Reason string   `json:"reason"`
}

// LinkReportEvent is emitted after a link check that found broken links.
type LinkReportEvent struct {
	Checked   int          `json:"checked"`
	Broken    []BrokenLink `json:"broken"`
	Timestamp time.Time    `json:"timestamp"`
}

// Publisher delivers navigation events.
type Publisher interface {
	PublishReload(ctx context.Context, event ReloadEvent) error
	PublishLinkReport(ctx context.Context, event LinkReportEvent) error
	Close()
}

// NoopPublisher discards every event (default when no NATS URL is configured).
type NoopPublisher struct{}

func (NoopPublisher) PublishReload(context.Context, ReloadEvent) error         { return nil }
func (NoopPublisher) PublishLinkReport(context.Context, LinkReportEvent) error { return nil }
func (NoopPublisher) Close()                                                   {}

// conn is the subset of *nats.Conn used by NATSPublisher.
type conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// NATSPublisher publishes JSON events on core NATS subjects.
type NATSPublisher struct {
	conn    conn
	subject string
}

// Connect dials the NATS server and returns a publisher rooted at subject.
func Connect(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("docnav"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, errors.NetworkError("failed to connect to NATS").WithCause(err).WithContext("url", url).Build()
	}
	slog.Info("NATS publisher connected", slog.String("url", url), logfields.Subject(subject))
	return newPublisher(nc, subject), nil
}

func newPublisher(c conn, subject string) *NATSPublisher {
	return &NATSPublisher{conn: c, subject: subject}
}

// PublishReload publishes on <subject>.reloaded.
func (p *NATSPublisher) PublishReload(ctx context.Context, event ReloadEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return p.publish(ctx, SuffixReloaded, event)
}

// PublishLinkReport publishes on <subject>.links.broken.
func (p *NATSPublisher) PublishLinkReport(ctx context.Context, event LinkReportEvent) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return p.publish(ctx, SuffixLinksBroken, event)
}

func (p *NATSPublisher) publish(ctx context.Context, suffix string, event any) error {
	subject := p.subject + "." + suffix
	data, err := json.Marshal(event)
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to marshal event").Build()
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return errors.NetworkError("failed to publish event").WithCause(err).WithContext("subject", subject).Build()
	}
	if err := p.conn.FlushWithContext(ctx); err != nil {
		return errors.NetworkError("failed to flush event").WithCause(err).WithContext("subject", subject).Build()
	}
	slog.Debug("Published event", logfields.Subject(subject))
	return nil
}

// Close closes the NATS connection.
func (p *NATSPublisher) Close() {
	p.conn.Close()
}
