package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	loadDuration      *prom.HistogramVec
	treeNodes         prom.Gauge
	reloads           *prom.CounterVec
	linkResults       *prom.CounterVec
	linkCheckDuration prom.Histogram
	httpRequests      *prom.CounterVec
}

// NewPrometheusRecorder constructs the collectors and registers them on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		loadDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "load_duration_seconds",
			Help:      "Time spent decoding and validating a navigation tree",
			Buckets:   prom.DefBuckets,
		}, []string{"format"}),
		treeNodes: prom.NewGauge(prom.GaugeOpts{
			Namespace: "docnav",
			Name:      "tree_nodes",
			Help:      "Number of entries in the currently served tree",
		}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "reloads_total",
			Help:      "Tree reloads by result",
		}, []string{"result"}),
		linkResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "link_results_total",
			Help:      "Checked menu links by outcome",
		}, []string{"result"}),
		linkCheckDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docnav",
			Name:      "link_check_duration_seconds",
			Help:      "Duration of a full link check",
			Buckets:   prom.DefBuckets,
		}),
		httpRequests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docnav",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code",
		}, []string{"route", "code"}),
	}
	reg.MustRegister(pr.loadDuration, pr.treeNodes, pr.reloads, pr.linkResults, pr.linkCheckDuration, pr.httpRequests)
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(format string, d time.Duration) {
	if p == nil {
		return
	}
	p.loadDuration.WithLabelValues(format).Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetTreeNodes(n int) {
	if p == nil {
		return
	}
	p.treeNodes.Set(float64(n))
}

func (p *PrometheusRecorder) IncReload(success bool) {
	if p == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.reloads.WithLabelValues(res).Inc()
}

func (p *PrometheusRecorder) IncLinkResult(result LinkResult) {
	if p == nil {
		return
	}
	p.linkResults.WithLabelValues(string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveLinkCheckDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.linkCheckDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncHTTPRequest(route string, status int) {
	if p == nil {
		return
	}
	p.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

// HTTPHandler returns an http.Handler that serves the metrics of reg.
func HTTPHandler(reg *prom.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
