package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/menu"
	"git.home.luguber.info/inful/docnav/internal/metrics"
	"git.home.luguber.info/inful/docnav/internal/server/middleware"
	"git.home.luguber.info/inful/docnav/internal/version"
)

// Handler returns the server's routes wrapped in logging, metrics and panic
// recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /menu.json", s.serveTree("application/json", func(st *state) []byte { return st.json }))
	mux.HandleFunc("GET /menudata.js", s.serveTree("text/javascript; charset=utf-8", func(st *state) []byte { return st.js }))
	mux.HandleFunc("GET /menu.html", s.serveTree("text/html; charset=utf-8", func(st *state) []byte { return st.html }))
	mux.HandleFunc("GET /stats.json", s.handleStats)
	mux.HandleFunc("GET /find", s.handleFind)
	mux.HandleFunc("GET /links.json", s.handleLinks)
	mux.HandleFunc("POST /reload", s.handleReload)
	mux.HandleFunc("POST /check", s.handleCheck)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	if s.opts.Registry != nil {
		mux.Handle("GET "+s.opts.MetricsPath, metrics.HTTPHandler(s.opts.Registry))
	}
	return middleware.Chain(s.logger, s.adapter, s.recorder)(mux)
}

func (s *Server) serveTree(contentType string, body func(*state) []byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := s.current.Load()
		w.Header().Set("ETag", st.etag)
		w.Header().Set("Last-Modified", st.loadedAt.Format(http.TimeFormat))
		w.Header().Set("Cache-Control", "no-cache")
		if match := r.Header.Get("If-None-Match"); match != "" && match == st.etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body(st))
	}
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	st := s.current.Load().stats
	writeJSON(w, http.StatusOK, StatsResponse{
		Nodes:    st.Nodes,
		Leaves:   st.Leaves,
		MaxDepth: st.MaxDepth,
		Pages:    st.Pages,
		Anchors:  st.Anchors,
	})
}

// handleFind resolves a label path given as repeated "label" parameters,
// e.g. /find?label=Namespaces&label=Namespace%20List.
func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	labels := r.URL.Query()["label"]
	if len(labels) == 0 {
		s.adapter.WriteErrorResponse(w, r, errors.ValidationError("at least one label parameter is required").Build())
		return
	}
	node, ok := menu.Find(s.current.Load().root, labels...)
	if !ok {
		s.adapter.WriteErrorResponse(w, r, errors.NotFoundError("no entry at label path").WithContext("labels", labels).Build())
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleLinks(w http.ResponseWriter, r *http.Request) {
	report := s.reports.Load()
	if report == nil {
		s.adapter.WriteErrorResponse(w, r, errors.NotFoundError("no link check has completed").Build())
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.Reload(r.Context()); err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	st := s.current.Load()
	writeJSON(w, http.StatusOK, map[string]any{"status": "reloaded", "nodes": st.stats.Nodes, "etag": st.etag})
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	report, err := s.CheckLinks(r.Context())
	if err != nil {
		s.adapter.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	st := s.current.Load()
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   version.Version,
		Commit:    version.GitCommit,
		Uptime:    time.Since(s.started).Seconds(),
		Source:    st.source,
		Nodes:     st.stats.Nodes,
		ETag:      st.etag,
		LoadedAt:  st.loadedAt,
		Timestamp: time.Now().UTC(),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", logfields.Error(err))
	}
}
