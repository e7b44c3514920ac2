package dashboard

import (
	"time"

	"github.com/bft-labs/launchdash/internal/app"
)

// State is the serving state of a Dashboard.
type State int

const (
	StateStopped State = iota
	StateStarting
	StateRunning
	StateStopping
	StateCrashed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "Stopped"
	case StateStarting:
		return "Starting"
	case StateRunning:
		return "Running"
	case StateStopping:
		return "Stopping"
	case StateCrashed:
		return "Crashed"
	default:
		return "Unknown"
	}
}

// StateChangeEvent describes a lifecycle transition.
type StateChangeEvent struct {
	Previous State
	Current  State
	Reason   string
}

// RecomputeEvent describes one handled control event.
// Slices is nil when the proportion chart was not redrawn, Points when the
// correlation chart was not.
type RecomputeEvent struct {
	Event    string
	Filter   FilterState
	Slices   []Slice
	Points   []Point
	Duration time.Duration
}

// EventHandler receives dashboard notifications.
type EventHandler interface {
	OnStateChange(event StateChangeEvent)
	OnRecompute(event RecomputeEvent)
}

// BaseEventHandler implements EventHandler with no-ops.
// Embed it to override only the callbacks you need.
type BaseEventHandler struct{}

func (BaseEventHandler) OnStateChange(StateChangeEvent) {}
func (BaseEventHandler) OnRecompute(RecomputeEvent)     {}

// eventEmitterWrapper adapts EventHandler to the internal emitter interfaces.
type eventEmitterWrapper struct {
	handler EventHandler
}

func (e *eventEmitterWrapper) OnStateChange(previous, current app.State, reason string) {
	if e.handler == nil {
		return
	}
	e.handler.OnStateChange(StateChangeEvent{
		Previous: convertState(previous),
		Current:  convertState(current),
		Reason:   reason,
	})
}

func (e *eventEmitterWrapper) OnRecompute(u app.Update, took time.Duration) {
	if e.handler == nil {
		return
	}
	ev := RecomputeEvent{
		Event:    string(u.Event),
		Filter:   u.Filter,
		Duration: took,
	}
	if u.Proportion != nil {
		ev.Slices = append([]Slice{}, u.Proportion.Slices...)
	}
	if u.Correlation != nil {
		ev.Points = append([]Point{}, u.Correlation.Points...)
	}
	e.handler.OnRecompute(ev)
}

func convertState(s app.State) State {
	switch s {
	case app.StateStopped:
		return StateStopped
	case app.StateStarting:
		return StateStarting
	case app.StateRunning:
		return StateRunning
	case app.StateStopping:
		return StateStopping
	case app.StateCrashed:
		return StateCrashed
	default:
		return StateStopped
	}
}
