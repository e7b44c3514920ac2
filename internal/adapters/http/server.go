package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/launchdash/internal/app"
	"github.com/bft-labs/launchdash/internal/domain"
	"github.com/bft-labs/launchdash/internal/ports"
)

// ServerConfig holds the settings of the dashboard HTTP server.
type ServerConfig struct {
	Addr        string
	Title       string
	PayloadStep float64
	ReadTimeout time.Duration
}

// Server serves the dashboard page, htmx event endpoints and a JSON API.
type Server struct {
	cfg      ServerConfig
	shell    *app.Shell
	renderer ports.ChartRenderer
	logger   ports.Logger

	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a server. Listen must be called before Serve.
func NewServer(cfg ServerConfig, shell *app.Shell, renderer ports.ChartRenderer, logger ports.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		shell:    shell,
		renderer: renderer,
		logger:   logger,
	}
	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
	}
	return s
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handlePage)
	mux.HandleFunc("POST /events/{event}", s.handleEvent)
	mux.HandleFunc("GET /api/proportion", s.handleProportion)
	mux.HandleFunc("GET /api/correlation", s.handleCorrelation)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Listen binds the listen address.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.Addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Addr
}

// Serve accepts connections until Shutdown is called.
func (s *Server) Serve() error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}
	s.logger.Info("dashboard listening", ports.String("addr", s.Addr()))
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	u := s.shell.Reset()

	prop, err := s.renderer.RenderProportion(*u.Proportion)
	if err != nil {
		s.renderError(w, err)
		return
	}
	corr, err := s.renderer.RenderCorrelation(*u.Correlation)
	if err != nil {
		s.renderError(w, err)
		return
	}

	render(w, r, pageView(pageData{
		Title:       s.cfg.Title,
		Options:     siteOptions(s.shell.Sites(), u.Filter.Site),
		Bounds:      s.shell.Dataset().PayloadBounds(),
		Step:        s.cfg.PayloadStep,
		Filter:      u.Filter,
		Proportion:  chartRegion{SVG: inlineSVG(prop)},
		Correlation: chartRegion{SVG: inlineSVG(corr)},
		RangeLabel:  rangeLabel{Range: u.Filter.Payload},
	}))
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := parseEvent(app.EventName(r.PathValue("event")), r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	u, err := s.shell.Dispatch(ev)
	if errors.Is(err, domain.ErrUnknownEvent) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		s.renderError(w, err)
		return
	}

	var frags fragmentData
	if u.Proportion != nil {
		svg, err := s.renderer.RenderProportion(*u.Proportion)
		if err != nil {
			s.renderError(w, err)
			return
		}
		frags.Proportion = &chartRegion{SVG: inlineSVG(svg), OOB: true}
	}
	if u.Correlation != nil {
		svg, err := s.renderer.RenderCorrelation(*u.Correlation)
		if err != nil {
			s.renderError(w, err)
			return
		}
		frags.Correlation = &chartRegion{SVG: inlineSVG(svg), OOB: true}
	}
	if ev.Name == app.EventPayloadChanged {
		frags.RangeLabel = &rangeLabel{Range: u.Filter.Payload, OOB: true}
	}

	render(w, r, fragmentsView(frags))
}

// parseEvent reads the event payload from the request form. Events it does
// not know are passed through for the shell to reject.
func parseEvent(name app.EventName, r *http.Request) (app.Event, error) {
	ev := app.Event{Name: name}
	switch name {
	case app.EventSiteChanged:
		site := strings.TrimSpace(r.FormValue("site"))
		if site == "" {
			return ev, errors.New("missing site")
		}
		ev.Site = domain.Site(site)
	case app.EventPayloadChanged:
		low, err := parseFloat(r.FormValue("low"), "low")
		if err != nil {
			return ev, err
		}
		high, err := parseFloat(r.FormValue("high"), "high")
		if err != nil {
			return ev, err
		}
		ev.Payload = domain.PayloadRange{Low: low, High: high}
	}
	return ev, nil
}

func (s *Server) handleProportion(w http.ResponseWriter, r *http.Request) {
	site := siteParam(r)
	writeJSON(w, app.ProportionChart(s.shell.Dataset(), site))
}

func (s *Server) handleCorrelation(w http.ResponseWriter, r *http.Request) {
	ds := s.shell.Dataset()
	payload := ds.PayloadBounds()

	q := r.URL.Query()
	if v := q.Get("low"); v != "" {
		low, err := parseFloat(v, "low")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		payload.Low = low
	}
	if v := q.Get("high"); v != "" {
		high, err := parseFloat(v, "high")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		payload.High = high
	}

	writeJSON(w, app.CorrelationChart(ds, siteParam(r), payload))
}

type stateResponse struct {
	Filter domain.FilterState `json:"filter"`
	Shell  string             `json:"shell"`
	Sites  []domain.Site      `json:"sites"`
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, stateResponse{
		Filter: s.shell.Snapshot(),
		Shell:  s.shell.State().String(),
		Sites:  s.shell.Sites(),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	s.logger.Error("render failed", ports.Err(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func siteParam(r *http.Request) domain.Site {
	site := strings.TrimSpace(r.URL.Query().Get("site"))
	if site == "" {
		return domain.AllSites
	}
	return domain.Site(site)
}

func parseFloat(raw, name string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
