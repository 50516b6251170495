// Package metrics provides observability hooks for docnav.
//
// Components receive a Recorder through their options and default to
// NoopRecorder, so nothing has to nil-check. The serve command swaps in a
// PrometheusRecorder and exposes it through HTTPHandler.
package metrics
