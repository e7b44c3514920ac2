package app

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bft-labs/launchdash/internal/domain"
	"github.com/bft-labs/launchdash/internal/ports"
)

// EventName identifies the control whose change produced an event.
type EventName string

const (
	// EventSiteChanged is raised by the launch site selector.
	EventSiteChanged EventName = "site-dropdown"

	// EventPayloadChanged is raised by the payload range selector.
	EventPayloadChanged EventName = "payload-slider"
)

// Event is a single control change.
// Only the field belonging to Name is meaningful.
type Event struct {
	Name    EventName
	Site    domain.Site
	Payload domain.PayloadRange
}

// Update is the outcome of handling one event.
// A nil chart means that chart region keeps its current content.
type Update struct {
	Event       EventName
	Filter      domain.FilterState
	Proportion  *domain.ProportionChart
	Correlation *domain.CorrelationChart
}

// Handler derives the next filter state and the charts to redraw from the
// current filter state and an event. Handlers must not retain ds or mutate it.
type Handler func(ds *domain.Dataset, current domain.FilterState, ev Event) Update

// ShellState is the dispatch state of a Shell.
type ShellState int32

const (
	ShellIdle ShellState = iota
	ShellRecomputing
)

// String returns a human-readable representation of the state.
func (s ShellState) String() string {
	switch s {
	case ShellIdle:
		return "Idle"
	case ShellRecomputing:
		return "Recomputing"
	default:
		return "Unknown"
	}
}

// RecomputeEmitter is notified after every handled event.
type RecomputeEmitter interface {
	OnRecompute(update Update, took time.Duration)
}

// Shell owns the dashboard's only mutable state, the FilterState, and
// dispatches control events to their handlers one at a time.
type Shell struct {
	mu       sync.Mutex
	ds       *domain.Dataset
	sites    []domain.Site
	filter   domain.FilterState
	handlers map[EventName]Handler
	state    atomic.Int32
	logger   ports.Logger
	emitter  RecomputeEmitter
}

// NewShell creates a Shell over ds with the default handlers registered.
// sites is the enumeration offered by the site selector; when empty the
// dataset's sites are used in order of first appearance.
func NewShell(ds *domain.Dataset, sites []domain.Site, logger ports.Logger, emitter RecomputeEmitter) *Shell {
	if len(sites) == 0 {
		sites = ds.Sites()
	}
	s := &Shell{
		ds:       ds,
		sites:    append([]domain.Site(nil), sites...),
		filter:   domain.DefaultFilterState(ds),
		handlers: make(map[EventName]Handler),
		logger:   logger,
		emitter:  emitter,
	}
	s.Register(EventSiteChanged, handleSiteChanged)
	s.Register(EventPayloadChanged, handlePayloadChanged)
	return s
}

// Register installs h for events named name, replacing any previous handler.
func (s *Shell) Register(name EventName, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[name] = h
}

// Dispatch handles ev to completion and returns the resulting update.
// Concurrent callers are served strictly one after another.
func (s *Shell) Dispatch(ev Event) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h, ok := s.handlers[ev.Name]
	if !ok {
		return Update{}, fmt.Errorf("%w: %q", domain.ErrUnknownEvent, ev.Name)
	}
	return s.run(ev.Name, func(current domain.FilterState) Update {
		return h(s.ds, current, ev)
	}), nil
}

// Reset restores the default filter state and recomputes both charts.
// It is what a page reload does.
func (s *Shell) Reset() Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.run("reset", func(domain.FilterState) Update {
		f := domain.DefaultFilterState(s.ds)
		return recomputeAll(s.ds, f)
	})
}

// Render recomputes both charts for the current filter state without changing it.
func (s *Shell) Render() Update {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.run("render", func(current domain.FilterState) Update {
		return recomputeAll(s.ds, current)
	})
}

// run must be called with s.mu held.
func (s *Shell) run(name EventName, fn func(domain.FilterState) Update) Update {
	s.state.Store(int32(ShellRecomputing))
	start := time.Now()

	u := fn(s.filter)
	u.Event = name
	s.filter = u.Filter

	took := time.Since(start)
	s.state.Store(int32(ShellIdle))

	fields := []ports.Field{
		ports.String("event", string(name)),
		ports.String("site", string(u.Filter.Site)),
		ports.String("payload", u.Filter.Payload.String()),
		ports.Duration("took", took),
	}
	if u.Proportion != nil {
		fields = append(fields, ports.Int("slices", len(u.Proportion.Slices)))
	}
	if u.Correlation != nil {
		fields = append(fields, ports.Int("points", len(u.Correlation.Points)))
	}
	s.logger.Debug("recomputed", fields...)

	if s.emitter != nil {
		s.emitter.OnRecompute(u, took)
	}
	return u
}

// Snapshot returns the current filter state.
func (s *Shell) Snapshot() domain.FilterState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter
}

// State returns the current dispatch state. It may be called from a handler.
func (s *Shell) State() ShellState {
	return ShellState(s.state.Load())
}

// Sites returns the site enumeration, without the all-sites sentinel.
func (s *Shell) Sites() []domain.Site {
	return append([]domain.Site(nil), s.sites...)
}

// Dataset returns the shared read-only dataset.
func (s *Shell) Dataset() *domain.Dataset {
	return s.ds
}

func handleSiteChanged(ds *domain.Dataset, current domain.FilterState, ev Event) Update {
	current.Site = ev.Site
	return recomputeAll(ds, current)
}

func handlePayloadChanged(ds *domain.Dataset, current domain.FilterState, ev Event) Update {
	current.Payload = ev.Payload
	c := CorrelationChart(ds, current.Site, current.Payload)
	return Update{Filter: current, Correlation: &c}
}

func recomputeAll(ds *domain.Dataset, f domain.FilterState) Update {
	p := ProportionChart(ds, f.Site)
	c := CorrelationChart(ds, f.Site, f.Payload)
	return Update{Filter: f, Proportion: &p, Correlation: &c}
}
