package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docnav/internal/codec"
	"git.home.luguber.info/inful/docnav/internal/events"
	"git.home.luguber.info/inful/docnav/internal/linkcheck"
	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/menudata"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/snapshot"
)

type capturePublisher struct {
	mu      sync.Mutex
	reloads []events.ReloadEvent
	reports []events.LinkReportEvent
}

func (c *capturePublisher) PublishReload(_ context.Context, e events.ReloadEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reloads = append(c.reloads, e)
	return nil
}

func (c *capturePublisher) PublishLinkReport(_ context.Context, e events.LinkReportEvent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, e)
	return nil
}

func (c *capturePublisher) Close() {}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func get(t *testing.T, h http.Handler, target string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func post(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, nil))
	return w
}

func TestServer_ServesEmbeddedTree(t *testing.T) {
	srv, err := New(menudata.Root(), Options{Addr: ":0", Logger: quietLogger()})
	require.NoError(t, err)
	h := srv.Handler()

	w := get(t, h, "/menu.json")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var root menu.Node
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &root))
	assert.True(t, menu.Equal(menudata.Root(), &root))

	w = get(t, h, "/menudata.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, string(menudata.Source), w.Body.String())

	w = get(t, h, "/menu.html")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), `<ul id="main-menu">`))
	assert.Contains(t, w.Body.String(), `<a href="index.xhtml">Main Page</a>`)
}

func TestServer_ETag(t *testing.T) {
	srv, err := New(menudata.Root(), Options{Addr: ":0", Logger: quietLogger()})
	require.NoError(t, err)
	h := srv.Handler()

	etag := get(t, h, "/menu.json").Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, etag, get(t, h, "/menudata.js").Header().Get("ETag"))

	w := get(t, h, "/menu.json", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestServer_StatsFindHealth(t *testing.T) {
	srv, err := New(menudata.Root(), Options{Addr: ":0", Logger: quietLogger()})
	require.NoError(t, err)
	h := srv.Handler()

	var stats StatsResponse
	require.NoError(t, json.Unmarshal(get(t, h, "/stats.json").Body.Bytes(), &stats))
	assert.Equal(t, StatsResponse{Nodes: 150, Leaves: 137, MaxDepth: 4, Pages: 79, Anchors: 122}, stats)

	w := get(t, h, "/find?label=namespaces&label=Namespace+List")
	require.Equal(t, http.StatusOK, w.Code)
	var node menu.Node
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &node))
	assert.Equal(t, "Namespace List", node.Text)
	assert.Equal(t, "namespaces.xhtml", node.URL)

	assert.Equal(t, http.StatusNotFound, get(t, h, "/find?label=Nope").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/find").Code)

	var health HealthResponse
	w = get(t, h, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "embedded", health.Source)
	assert.Equal(t, 150, health.Nodes)
}

func TestServer_ReloadSwapsTreeAndRecords(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "menu.json")
	require.NoError(t, codec.WriteFile(source, menudata.Root(), codec.FormatJSON, codec.Options{}))

	store, err := snapshot.Open(filepath.Join(dir, "snapshots.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	pub := &capturePublisher{}

	srv, err := New(menudata.Root(), Options{
		Addr:       ":0",
		SourcePath: source,
		Store:      store,
		Publisher:  pub,
		Logger:     quietLogger(),
	})
	require.NoError(t, err)
	h := srv.Handler()

	list, err := store.List(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, list, 1)

	// Unchanged content: no new snapshot, no event.
	require.Equal(t, http.StatusOK, post(t, h, "/reload").Code)
	assert.Empty(t, pub.reloads)

	edited := menudata.Root()
	edited.Children[0].Text = "Home"
	require.NoError(t, codec.WriteFile(source, edited, codec.FormatJSON, codec.Options{}))
	require.Equal(t, http.StatusOK, post(t, h, "/reload").Code)

	assert.Equal(t, "Home", srv.Tree().Children[0].Text)
	require.Len(t, pub.reloads, 1)
	assert.Equal(t, 2, pub.reloads[0].Changes)
	assert.NotEmpty(t, pub.reloads[0].SnapshotID)

	list, err = store.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestServer_ReloadFailureKeepsPreviousTree(t *testing.T) {
	source := filepath.Join(t.TempDir(), "menu.json")
	require.NoError(t, os.WriteFile(source, []byte(`{"children":[{"text":"No URL"}]}`), 0o600))

	srv, err := New(menudata.Root(), Options{Addr: ":0", SourcePath: source, Logger: quietLogger()})
	require.NoError(t, err)

	w := post(t, srv.Handler(), "/reload")
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Error, `/children/0 ("No URL"): missing url`)
	assert.Equal(t, "Main Page", srv.Tree().Children[0].Text)
}

func TestServer_ReloadWithoutSource(t *testing.T) {
	srv, err := New(menudata.Root(), Options{Addr: ":0", Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, post(t, srv.Handler(), "/reload").Code)
}

func TestServer_CheckLinks(t *testing.T) {
	site := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.xhtml"), []byte("<p></p>"), 0o600))
	checker, err := linkcheck.New(linkcheck.Options{SiteDir: site})
	require.NoError(t, err)
	pub := &capturePublisher{}

	root := &menu.Node{Children: []*menu.Node{
		{Text: "Main Page", URL: "index.xhtml"},
		{Text: "Files", URL: "files.xhtml"},
	}}
	srv, err := New(root, Options{Addr: ":0", Checker: checker, Publisher: pub, Logger: quietLogger()})
	require.NoError(t, err)
	h := srv.Handler()

	assert.Equal(t, http.StatusNotFound, get(t, h, "/links.json").Code)

	w := post(t, h, "/check")
	require.Equal(t, http.StatusOK, w.Code)
	var report linkcheck.Report
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, 2, report.Checked)
	require.Len(t, report.Broken, 1)
	assert.Equal(t, "Files", report.Broken[0].Label)

	assert.Equal(t, http.StatusOK, get(t, h, "/links.json").Code)
	require.Len(t, pub.reports, 1)
	assert.Equal(t, "files.xhtml", pub.reports[0].Broken[0].URL)
}

func TestServer_Metrics(t *testing.T) {
	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)
	srv, err := New(menudata.Root(), Options{Addr: ":0", Recorder: rec, Registry: reg, Logger: quietLogger()})
	require.NoError(t, err)
	h := srv.Handler()

	get(t, h, "/menu.json")
	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "docnav_tree_nodes 150")
	assert.Contains(t, body, `docnav_http_requests_total{code="200",route="GET /menu.json"} 1`)
}

func TestNew_RejectsInvalidTree(t *testing.T) {
	_, err := New(&menu.Node{Children: []*menu.Node{{Text: "x"}}}, Options{Addr: ":0", Logger: quietLogger()})
	require.Error(t, err)
	var loadErr *menu.LoadError
	assert.ErrorAs(t, err, &loadErr)

	_, err = New(menudata.Root(), Options{})
	assert.Error(t, err)
}

func TestScheduler_RunsLinkCheck(t *testing.T) {
	site := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(site, "index.xhtml"), []byte("<p></p>"), 0o600))
	checker, err := linkcheck.New(linkcheck.Options{SiteDir: site})
	require.NoError(t, err)
	pub := &capturePublisher{}

	root := &menu.Node{Children: []*menu.Node{{Text: "Main Page", URL: "index.xhtml"}}}
	srv, err := New(root, Options{Addr: ":0", Checker: checker, Publisher: pub, Logger: quietLogger()})
	require.NoError(t, err)

	sc, err := newScheduler(srv, 20*time.Millisecond)
	require.NoError(t, err)
	h := srv.Handler()
	sc.Start()
	defer sc.Stop()

	require.Eventually(t, func() bool {
		return get(t, h, "/links.json").Code == http.StatusOK
	}, 5*time.Second, 10*time.Millisecond)
}

func TestScheduler_RejectsZeroInterval(t *testing.T) {
	srv, err := New(menudata.Root(), Options{Addr: ":0", Logger: quietLogger()})
	require.NoError(t, err)
	_, err = newScheduler(srv, 0)
	require.Error(t, err)
}
