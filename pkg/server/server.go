// Package server serves chart definitions over HTTP.
//
// Routes:
//
//	GET /healthz                  liveness
//	GET /metrics                  Prometheus metrics
//	GET /charts                   list of definitions
//	GET /charts/{name}            rendered chart, SVG unless ?format= says otherwise
//	GET /charts/{name}/layout     layout document (pipeline.Document)
//	GET /charts/{name}/graph      reactive dependency graph in DOT
//
// Chart routes accept width, height and refresh query parameters. Every
// request runs the pipeline in its own reactive runtime.
package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/chartistry/pkg/config"
	"github.com/matzehuels/chartistry/pkg/errors"
	"github.com/matzehuels/chartistry/pkg/pipeline"
)

// Defaults.
const (
	DefaultAddr    = ":8080"
	DefaultTimeout = 30 * time.Second
)

// RequestIDHeader carries the request id on requests and responses.
const RequestIDHeader = "X-Request-ID"

// Config configures a Server.
type Config struct {
	// Dir holds the chart definitions.
	Dir    string
	Runner *pipeline.Runner
	Logger *log.Logger
	// Gatherer backs /metrics. Nil uses prometheus.DefaultGatherer.
	Gatherer prometheus.Gatherer
	// Timeout bounds each chart request. Zero uses DefaultTimeout.
	Timeout time.Duration
}

// Server is the chart render server.
type Server struct {
	cfg    Config
	router chi.Router
}

// New builds the router.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	s := &Server{cfg: cfg}
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(middleware.RealIP)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/charts", func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Timeout))
		r.Get("/", s.listCharts)
		r.Get("/{name}", s.renderChart)
		r.Get("/{name}/layout", s.renderFormat(pipeline.FormatJSON))
		r.Get("/{name}/graph", s.renderFormat(pipeline.FormatDOT))
	})
	s.router = r
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.cfg.Logger.Info("listening", "addr", addr, "charts", s.cfg.Dir)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ChartInfo is one entry of the /charts listing.
type ChartInfo struct {
	Name   string `json:"name"`
	Title  string `json:"title,omitempty"`
	Source string `json:"source"`
	Hash   string `json:"hash"`
}

func (s *Server) listCharts(w http.ResponseWriter, r *http.Request) {
	defs, err := config.LoadDir(s.cfg.Dir)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	out := make([]ChartInfo, len(defs))
	for i, d := range defs {
		out[i] = ChartInfo{Name: d.Name, Title: d.Title, Source: d.Source.Kind, Hash: d.Hash}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) renderChart(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	s.render(w, r, format)
}

func (s *Server) renderFormat(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) { s.render(w, r, format) }
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, format string) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateChartName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	def, err := config.Load(filepath.Join(s.cfg.Dir, name+config.Extension))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	width, err := floatParam(q.Get("width"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	height, err := floatParam(q.Get("height"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	refresh, _ := strconv.ParseBool(q.Get("refresh"))

	res, err := s.cfg.Runner.Execute(r.Context(), pipeline.Options{
		Definition: def,
		Width:      width,
		Height:     height,
		Formats:    []string{format},
		Refresh:    refresh,
		Logger:     loggerFrom(r, s.cfg.Logger),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", pipeline.ContentTypes[format])
	w.Header().Set("X-Data-Hash", res.DataHash)
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func floatParam(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidDimensions, err, "invalid dimension %q", s)
	}
	return v, nil
}

func cacheStatus(info pipeline.CacheInfo) string {
	switch {
	case info.RenderHit:
		return "hit"
	case info.LoadHit:
		return "data"
	}
	return "miss"
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	if stderrors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	logger := loggerFrom(r, s.cfg.Logger)
	if status >= 500 {
		logger.Error("request failed", "err", err)
	} else {
		logger.Debug("request rejected", "status", status, "err", err)
	}
	code := string(errors.GetCode(err))
	if code == "" {
		code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, status, errorBody{
		Error:     errors.UserMessage(err),
		Code:      code,
		RequestID: w.Header().Get(RequestIDHeader),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
