package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder(t *testing.T) {
	r := OrNoop(nil)
	_, ok := r.(NoopRecorder)
	assert.True(t, ok)
	// All methods are callable without setup.
	r.ObserveLoadDuration("js", time.Millisecond)
	r.SetTreeNodes(3)
	r.IncReload(true)
	r.IncLinkResult(LinkBroken)
	r.ObserveLinkCheckDuration(time.Second)
	r.IncHTTPRequest("/menu.json", 200)
}

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveLoadDuration("js", 15*time.Millisecond)
	pr.SetTreeNodes(150)
	pr.IncReload(true)
	pr.IncReload(false)
	pr.IncLinkResult(LinkOK)
	pr.IncLinkResult(LinkOK)
	pr.IncLinkResult(LinkBroken)
	pr.IncHTTPRequest("/menu.json", 200)

	assert.Equal(t, 150.0, testutil.ToFloat64(pr.treeNodes))
	assert.Equal(t, 2.0, testutil.ToFloat64(pr.linkResults.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.reloads.WithLabelValues("failed")))

	mfs, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestNilPrometheusRecorder(t *testing.T) {
	var pr *PrometheusRecorder
	pr.SetTreeNodes(1)
	pr.IncHTTPRequest("/", 500)
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).SetTreeNodes(7)

	srv := httptest.NewServer(HTTPHandler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "docnav_tree_nodes 7"), string(body))
}
