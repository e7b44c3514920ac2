package app

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/bft-labs/launchdash/internal/domain"
)

// mockRecomputeEmitter records every update it is notified of.
type mockRecomputeEmitter struct {
	mu      sync.Mutex
	updates []Update
}

func (m *mockRecomputeEmitter) OnRecompute(u Update, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates = append(m.updates, u)
}

func (m *mockRecomputeEmitter) Updates() []Update {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Update(nil), m.updates...)
}

func scenarioDataset(t *testing.T) *domain.Dataset {
	return mustDataset(t,
		domain.LaunchRecord{Site: "A", PayloadMass: 500, BoosterCategory: "v1.0", Outcome: 1},
		domain.LaunchRecord{Site: "A", PayloadMass: 1500, BoosterCategory: "v1.1", Outcome: 0},
		domain.LaunchRecord{Site: "A", PayloadMass: 2500, BoosterCategory: "FT", Outcome: 1},
		domain.LaunchRecord{Site: "B", PayloadMass: 4000, BoosterCategory: "B4", Outcome: 0},
	)
}

func TestNewShell_Defaults(t *testing.T) {
	ds := scenarioDataset(t)
	s := NewShell(ds, nil, &mockLogger{}, nil)

	want := domain.FilterState{Site: domain.AllSites, Payload: domain.PayloadRange{Low: 500, High: 4000}}
	if got := s.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
	if diff := cmp.Diff([]domain.Site{"A", "B"}, s.Sites()); diff != "" {
		t.Errorf("Sites() mismatch (-want +got):\n%s", diff)
	}
	if s.State() != ShellIdle {
		t.Errorf("State() = %v, want Idle", s.State())
	}
}

func TestNewShell_ExplicitSites(t *testing.T) {
	s := NewShell(scenarioDataset(t), []domain.Site{"B", "A", "C"}, &mockLogger{}, nil)
	if diff := cmp.Diff([]domain.Site{"B", "A", "C"}, s.Sites()); diff != "" {
		t.Errorf("Sites() mismatch (-want +got):\n%s", diff)
	}
}

func TestShell_SiteChangeRecomputesBothCharts(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)

	u, err := s.Dispatch(Event{Name: EventSiteChanged, Site: "A"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}

	if u.Proportion == nil || u.Correlation == nil {
		t.Fatalf("site change must redraw both charts, got %+v", u)
	}
	want := []domain.Slice{{Label: "0", Value: 1}, {Label: "1", Value: 2}}
	if diff := cmp.Diff(want, u.Proportion.Slices); diff != "" {
		t.Errorf("proportion mismatch (-want +got):\n%s", diff)
	}
	if len(u.Correlation.Points) != 3 {
		t.Errorf("correlation points = %d, want 3", len(u.Correlation.Points))
	}
	if s.Snapshot().Site != "A" {
		t.Errorf("filter site = %q, want A", s.Snapshot().Site)
	}
}

func TestShell_PayloadChangeRecomputesScatterOnly(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)
	if _, err := s.Dispatch(Event{Name: EventSiteChanged, Site: "A"}); err != nil {
		t.Fatalf("Dispatch(site) error = %v", err)
	}

	u, err := s.Dispatch(Event{
		Name:    EventPayloadChanged,
		Payload: domain.PayloadRange{Low: 1000, High: 3000},
	})
	if err != nil {
		t.Fatalf("Dispatch(payload) error = %v", err)
	}

	if u.Proportion != nil {
		t.Error("payload change must not redraw the proportion chart")
	}
	var masses []float64
	for _, p := range u.Correlation.Points {
		masses = append(masses, p.PayloadMass)
	}
	if diff := cmp.Diff([]float64{1500, 2500}, masses); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
	want := domain.FilterState{Site: "A", Payload: domain.PayloadRange{Low: 1000, High: 3000}}
	if got := s.Snapshot(); got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestShell_AbsentSiteYieldsEmptyCharts(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)

	u, err := s.Dispatch(Event{Name: EventSiteChanged, Site: "Boca Chica"})
	if err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if !u.Proportion.Empty() || !u.Correlation.Empty() {
		t.Errorf("want empty charts, got %d slices and %d points",
			len(u.Proportion.Slices), len(u.Correlation.Points))
	}
}

func TestShell_UnknownEvent(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)
	before := s.Snapshot()

	_, err := s.Dispatch(Event{Name: "launch-button"})
	if !errors.Is(err, domain.ErrUnknownEvent) {
		t.Errorf("Dispatch() error = %v, want ErrUnknownEvent", err)
	}
	if s.Snapshot() != before {
		t.Error("unknown event changed the filter state")
	}
}

func TestShell_Reset(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)
	_, _ = s.Dispatch(Event{Name: EventSiteChanged, Site: "B"})
	_, _ = s.Dispatch(Event{Name: EventPayloadChanged, Payload: domain.PayloadRange{Low: 1, High: 2}})

	u := s.Reset()

	want := domain.FilterState{Site: domain.AllSites, Payload: domain.PayloadRange{Low: 500, High: 4000}}
	if u.Filter != want || s.Snapshot() != want {
		t.Errorf("after Reset filter = %+v, want %+v", s.Snapshot(), want)
	}
	if u.Proportion == nil || u.Correlation == nil {
		t.Error("Reset must produce both charts")
	}
	if len(u.Correlation.Points) != 4 {
		t.Errorf("correlation points = %d, want 4", len(u.Correlation.Points))
	}
}

func TestShell_RenderKeepsFilter(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)
	_, _ = s.Dispatch(Event{Name: EventSiteChanged, Site: "B"})

	u := s.Render()
	if u.Filter.Site != "B" || s.Snapshot().Site != "B" {
		t.Errorf("Render changed the site to %q", s.Snapshot().Site)
	}
	if u.Proportion.Title != "B" {
		t.Errorf("proportion title = %q, want B", u.Proportion.Title)
	}
}

func TestShell_RecomputingDuringHandler(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)

	var during ShellState
	s.Register("probe", func(ds *domain.Dataset, current domain.FilterState, ev Event) Update {
		during = s.State()
		return Update{Filter: current}
	})

	if _, err := s.Dispatch(Event{Name: "probe"}); err != nil {
		t.Fatalf("Dispatch() error = %v", err)
	}
	if during != ShellRecomputing {
		t.Errorf("state during handler = %v, want Recomputing", during)
	}
	if s.State() != ShellIdle {
		t.Errorf("state after dispatch = %v, want Idle", s.State())
	}
}

func TestShell_HandlerReceivesSnapshot(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)
	_, _ = s.Dispatch(Event{Name: EventSiteChanged, Site: "A"})

	var seen domain.FilterState
	s.Register(EventSiteChanged, func(ds *domain.Dataset, current domain.FilterState, ev Event) Update {
		seen = current
		current.Site = ev.Site
		return Update{Filter: current}
	})

	_, _ = s.Dispatch(Event{Name: EventSiteChanged, Site: "B"})
	if seen.Site != "A" {
		t.Errorf("handler saw site %q, want A", seen.Site)
	}
}

func TestShell_SerializesDispatch(t *testing.T) {
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, nil)

	var active, maxActive int32
	s.Register("slow", func(ds *domain.Dataset, current domain.FilterState, ev Event) Update {
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxActive)
			if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
				break
			}
		}
		time.Sleep(2 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		return Update{Filter: current}
	})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Dispatch(Event{Name: "slow"})
		}()
	}
	wg.Wait()

	if maxActive != 1 {
		t.Errorf("max concurrent handlers = %d, want 1", maxActive)
	}
}

func TestShell_EmitsRecompute(t *testing.T) {
	emitter := &mockRecomputeEmitter{}
	s := NewShell(scenarioDataset(t), nil, &mockLogger{}, emitter)

	_, _ = s.Dispatch(Event{Name: EventSiteChanged, Site: "A"})
	_, _ = s.Dispatch(Event{Name: EventPayloadChanged, Payload: domain.PayloadRange{Low: 0, High: 1000}})

	updates := emitter.Updates()
	if len(updates) != 2 {
		t.Fatalf("got %d updates, want 2", len(updates))
	}
	if updates[0].Event != EventSiteChanged || updates[1].Event != EventPayloadChanged {
		t.Errorf("events = %s, %s", updates[0].Event, updates[1].Event)
	}
}

func TestShellState_String(t *testing.T) {
	if ShellIdle.String() != "Idle" || ShellRecomputing.String() != "Recomputing" {
		t.Errorf("unexpected names %s / %s", ShellIdle, ShellRecomputing)
	}
	if ShellState(7).String() != "Unknown" {
		t.Errorf("ShellState(7) = %s, want Unknown", ShellState(7))
	}
}
