// Package simulation owns the greenhouse state and every transition on it.
package simulation

import (
	"context"
	"log/slog"
	"time"

	"github.com/greenhouse/greenhouse/internal/models"
	"github.com/greenhouse/greenhouse/internal/util"
)

// DayPeriod is the real time between day advances while running.
const DayPeriod = 3000 * time.Millisecond

// Generation identifies one installation of the periodic trigger.
// Starting or resetting the simulation moves to a new generation, which
// cancels every tick scheduled under an older one.
type Generation uint64

// Controller holds the authoritative simulation state.
//
// A Controller is not safe for concurrent use. All calls, including ticks
// from the periodic trigger, are expected on a single goroutine.
type Controller struct {
	state      *models.SimulationState
	lifecycle  *Lifecycle
	generation Generation
	timer      *util.DayTimer
	ids        *util.IDGenerator
	observers  []Observer
	logger     *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for lifecycle and debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithDayTimer replaces the day timer, typically with one on a fake clock.
func WithDayTimer(timer *util.DayTimer) Option {
	return func(c *Controller) {
		c.timer = timer
	}
}

// NewController creates a stopped controller holding the initial state.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		state:  models.NewSimulationState(),
		timer:  util.NewDayTimer(DayPeriod),
		ids:    util.NewIDGenerator(),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.lifecycle = NewLifecycle(c.logger)
	return c
}

// Subscribe registers an observer for state changes.
func (c *Controller) Subscribe(o Observer) {
	c.observers = append(c.observers, o)
}

func (c *Controller) notify(change Change) {
	for _, o := range c.observers {
		o(change)
	}
}

// State returns a deep copy of the current state.
func (c *Controller) State() *models.SimulationState {
	return c.state.Clone()
}

// Day returns the current day.
func (c *Controller) Day() int {
	return c.state.Day
}

// TrayCount returns the number of trays awaiting transplant.
func (c *Controller) TrayCount() int {
	return len(c.state.Germination.Trays)
}

// Running reports whether the periodic trigger is active.
func (c *Controller) Running() bool {
	return c.lifecycle.Running()
}

// RunState returns the lifecycle state.
func (c *Controller) RunState() RunState {
	return c.lifecycle.Current()
}

// Generation returns the generation of the active periodic trigger.
func (c *Controller) Generation() Generation {
	return c.generation
}

// Period returns the time between day advances.
func (c *Controller) Period() time.Duration {
	return c.timer.Period()
}

// Progress returns how far the current day has elapsed, in [0, 1).
func (c *Controller) Progress() float64 {
	return c.timer.Progress()
}

// SeedTray adds a fully seeded tray of the given variety to germination.
func (c *Controller) SeedTray(variety *models.Variety) *models.GerminationTray {
	tray := models.NewGerminationTray(variety)
	tray.ID = c.ids.NewID()
	tray.SeededDay = c.state.Day
	tray.Fill()

	c.state.Germination.Trays = append(c.state.Germination.Trays, tray)

	c.notify(Change{
		Kind:    ChangeSeeded,
		Day:     c.state.Day,
		TrayID:  tray.ID,
		Variety: tray.Name(),
	})
	return tray
}

// TransplantToPond moves seedlings from the most recently seeded tray into the
// newest raft of the given pond and returns the number of plants moved.
//
// The source is the last tray in the germination sequence. A tray left with
// plants goes back to the end of the sequence, so it is the source again on
// the next call. An empty sequence, a pond with no rafts or a full newest
// raft, or an unknown pond index leaves the state untouched and returns 0.
func (c *Controller) TransplantToPond(pondIndex int) int {
	if pondIndex < 0 || pondIndex >= len(c.state.Production) {
		c.logger.Debug("transplant ignored: unknown pond", "pond", pondIndex)
		return 0
	}

	trays := c.state.Germination.Trays
	pond := c.state.Production[pondIndex]
	raft := pond.NewestRaft()
	if len(trays) == 0 || raft == nil || raft.IsFull() {
		c.logger.Debug("transplant ignored",
			"pond", pond.Name,
			"trays", len(trays),
			"rafts", len(pond.Rafts),
		)
		return 0
	}

	source := trays[len(trays)-1]
	trays = trays[:len(trays)-1]

	moved := min(raft.Open(), source.Plants)
	source.Plants -= moved
	raft.Plants += moved

	if !source.IsEmpty() {
		trays = append(trays, source)
	}
	c.state.Germination.Trays = trays

	c.notify(Change{
		Kind:    ChangeTransplanted,
		Day:     c.state.Day,
		Pond:    pondIndex,
		Moved:   moved,
		TrayID:  source.ID,
		Variety: source.Name(),
	})
	return moved
}

// CycleProduction launches one empty raft at the front of every pond.
func (c *Controller) CycleProduction() {
	for _, pond := range c.state.Production {
		pond.Rafts = append([]*models.ProductionRaft{models.NewProductionRaft()}, pond.Rafts...)
	}
}

// AdvanceDay launches new rafts, restarts the day timer and moves to the next day.
func (c *Controller) AdvanceDay() {
	c.CycleProduction()
	c.timer.Restart()
	c.state.Day++

	c.notify(Change{Kind: ChangeDayAdvanced, Day: c.state.Day})
}

// Start cancels any active periodic trigger and installs a new one.
// The returned generation must accompany every tick delivered to Tick.
func (c *Controller) Start(ctx context.Context) Generation {
	c.fire(ctx, EventStart, StateRunning)

	c.generation++
	c.timer.Restart()

	c.logger.Info("simulation started",
		"day", c.state.Day,
		"generation", c.generation,
		"period", c.timer.Period(),
	)
	c.notify(Change{Kind: ChangeStarted, Day: c.state.Day})
	return c.generation
}

// Reset cancels the periodic trigger and restores the initial state.
func (c *Controller) Reset(ctx context.Context) {
	c.fire(ctx, EventReset, StateStopped)

	c.generation++
	c.timer.Stop()
	c.state = models.NewSimulationState()

	c.logger.Info("simulation reset", "generation", c.generation)
	c.notify(Change{Kind: ChangeReset, Day: c.state.Day})
}

// Tick delivers one firing of the periodic trigger scheduled under gen.
// It advances the day and returns true only if the simulation is running
// and gen is the active generation; stale ticks are dropped.
func (c *Controller) Tick(ctx context.Context, gen Generation) bool {
	if err := ctx.Err(); err != nil {
		return false
	}
	if !c.lifecycle.Running() || gen != c.generation {
		c.logger.Debug("stale tick dropped", "generation", gen, "active", c.generation)
		return false
	}

	c.AdvanceDay()
	return true
}

// Debug writes the current state as a single log line.
func (c *Controller) Debug() {
	c.logger.Info("simulation state",
		"state", c.state,
		"lifecycle", c.lifecycle.Current(),
		"generation", c.generation,
		"progress", c.timer.Progress(),
	)
}

func (c *Controller) fire(ctx context.Context, event LifecycleEvent, want RunState) {
	if err := c.lifecycle.Fire(ctx, event); err != nil {
		c.logger.Warn("lifecycle transition failed",
			"event", event,
			"error", err,
		)
		c.lifecycle.force(want)
	}
}
