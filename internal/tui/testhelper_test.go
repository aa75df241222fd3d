package tui

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/greenhouse/greenhouse/internal/config"
	"github.com/greenhouse/greenhouse/internal/models"
	"github.com/greenhouse/greenhouse/internal/simulation"
	"github.com/greenhouse/greenhouse/internal/util"
)

// newTestController creates a controller with a discarded log and a day timer
// frozen at a fixed instant.
func newTestController(t *testing.T) *simulation.Controller {
	t.Helper()

	now := time.Date(2024, 4, 1, 8, 0, 0, 0, time.UTC)
	timer := util.NewDayTimer(simulation.DayPeriod)
	timer.SetNowFunc(func() time.Time { return now })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return simulation.NewController(
		simulation.WithLogger(logger),
		simulation.WithDayTimer(timer),
	)
}

// seedVariety returns the default seeding variety from the catalog.
func seedVariety(t *testing.T) *models.Variety {
	t.Helper()

	v, ok := models.FindVariety(config.Default().Simulation.SeedVariety)
	if !ok {
		t.Fatal("default seed variety missing from catalog")
	}
	return v
}

// newTestApp creates an App over a stopped controller with the default config.
// The window is set to 120x40 and marked ready.
func newTestApp(t *testing.T) *App {
	t.Helper()

	app := New(context.Background(), config.Default(), newTestController(t), seedVariety(t))

	// Simulate a window size message to make the app ready
	app.width = 120
	app.height = 40
	app.ready = true
	app.updateViewDimensions()

	return app
}

// keyMsg creates a tea.KeyMsg for a regular character key.
func keyMsg(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// specialKeyMsg creates a tea.KeyMsg for a special key type.
func specialKeyMsg(keyType tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: keyType}
}
