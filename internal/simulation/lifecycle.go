package simulation

import (
	"context"
	"errors"
	"log/slog"

	loopfsm "github.com/looplab/fsm"
)

// RunState is the lifecycle state of a simulation.
type RunState string

const (
	StateStopped RunState = "stopped"
	StateRunning RunState = "running"
)

// LifecycleEvent triggers a lifecycle transition.
type LifecycleEvent string

const (
	EventStart LifecycleEvent = "start"
	EventReset LifecycleEvent = "reset"
)

// lifecycleEvents allows start from either state (a restart while running)
// and reset from either state (reset is idempotent).
var lifecycleEvents = loopfsm.Events{
	{
		Name: string(EventStart),
		Src:  []string{string(StateStopped), string(StateRunning)},
		Dst:  string(StateRunning),
	},
	{
		Name: string(EventReset),
		Src:  []string{string(StateStopped), string(StateRunning)},
		Dst:  string(StateStopped),
	},
}

// Lifecycle tracks whether the periodic trigger is active, backed by looplab/fsm.
type Lifecycle struct {
	machine *loopfsm.FSM
	logger  *slog.Logger
}

// NewLifecycle creates a lifecycle in the stopped state.
func NewLifecycle(logger *slog.Logger) *Lifecycle {
	l := &Lifecycle{logger: logger}
	l.machine = loopfsm.NewFSM(string(StateStopped), lifecycleEvents, loopfsm.Callbacks{
		"enter_state": func(_ context.Context, e *loopfsm.Event) {
			l.logger.Debug("simulation lifecycle transition",
				"event", e.Event,
				"from", e.Src,
				"to", e.Dst,
			)
		},
	})
	return l
}

// Fire applies a lifecycle event. Firing an event whose destination is the
// current state is not an error.
func (l *Lifecycle) Fire(ctx context.Context, event LifecycleEvent) error {
	err := l.machine.Event(ctx, string(event))
	if err == nil {
		return nil
	}

	var noTransition loopfsm.NoTransitionError
	if errors.As(err, &noTransition) {
		return nil
	}
	return err
}

// Current returns the current lifecycle state.
func (l *Lifecycle) Current() RunState {
	return RunState(l.machine.Current())
}

// Running reports whether the lifecycle is in the running state.
func (l *Lifecycle) Running() bool {
	return l.machine.Is(string(StateRunning))
}

// force puts the lifecycle into a state without running callbacks.
func (l *Lifecycle) force(state RunState) {
	l.machine.SetState(string(state))
}
