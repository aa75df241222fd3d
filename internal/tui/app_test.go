package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/greenhouse/greenhouse/internal/config"
	"github.com/greenhouse/greenhouse/internal/models"
	"github.com/greenhouse/greenhouse/internal/simulation"
)

func TestApp_InitialState(t *testing.T) {
	app := newTestApp(t)

	if !app.ready {
		t.Error("expected app to be ready")
	}
	if app.quitting {
		t.Error("expected app not to be quitting")
	}
	if app.showHelp {
		t.Error("expected help hidden initially")
	}
	if app.sim.Running() {
		t.Error("expected simulation stopped initially")
	}
	if app.sim.Day() != 1 {
		t.Errorf("Day() = %d, want 1", app.sim.Day())
	}
}

func TestApp_View_NotReady(t *testing.T) {
	app := newTestApp(t)
	app.ready = false

	output := app.View()
	if !strings.Contains(output, "Initializing") {
		t.Error("expected initialization message when not ready")
	}
}

func TestApp_View_Quitting(t *testing.T) {
	app := newTestApp(t)
	app.quitting = true

	output := app.View()
	if !strings.Contains(output, "shutting down") {
		t.Error("expected shutdown message when quitting")
	}
}

func TestApp_View_Greenhouse(t *testing.T) {
	app := newTestApp(t)
	output := app.View()

	for _, want := range []string{"GREENHOUSE", "Day 1", "STOPPED", "Germination", "Production", "Pond 1", "Pond 3", "No trays germinating"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in view output", want)
		}
	}
}

func TestApp_StartSchedulesTick(t *testing.T) {
	app := newTestApp(t)

	_, cmd := app.Update(keyMsg("s"))

	if !app.sim.Running() {
		t.Error("expected simulation running after start")
	}
	if cmd == nil {
		t.Fatal("expected day tick command after start")
	}
	if !strings.Contains(app.View(), "RUNNING") {
		t.Error("expected RUNNING in header")
	}
}

func TestApp_DayTick(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("s"))
	gen := app.sim.Generation()

	_, cmd := app.Update(dayTickMsg{gen: gen})

	if app.sim.Day() != 2 {
		t.Errorf("Day() = %d, want 2", app.sim.Day())
	}
	if cmd == nil {
		t.Error("expected next tick to be scheduled")
	}
	for i, p := range app.sim.State().Production {
		if len(p.Rafts) != 1 {
			t.Errorf("pond %d has %d rafts, want 1", i, len(p.Rafts))
		}
	}
	if !strings.Contains(app.View(), "Day 2") {
		t.Error("expected Day 2 in view output")
	}
}

func TestApp_StaleTickDropped(t *testing.T) {
	tests := []struct {
		name  string
		setup func(app *App) simulation.Generation
	}{
		{
			name: "after reset",
			setup: func(app *App) simulation.Generation {
				app.Update(keyMsg("s"))
				gen := app.sim.Generation()
				app.Update(keyMsg("r"))
				return gen
			},
		},
		{
			name: "after restart",
			setup: func(app *App) simulation.Generation {
				app.Update(keyMsg("s"))
				gen := app.sim.Generation()
				app.Update(keyMsg("s"))
				return gen
			},
		},
		{
			name: "never started",
			setup: func(app *App) simulation.Generation {
				return app.sim.Generation()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			stale := tt.setup(app)

			_, cmd := app.Update(dayTickMsg{gen: stale})

			if app.sim.Day() != 1 {
				t.Errorf("Day() = %d, want 1", app.sim.Day())
			}
			if cmd != nil {
				t.Error("expected stale tick not to be rescheduled")
			}
		})
	}
}

func TestApp_RestartKeepsSingleTrigger(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("s"))
	first := app.sim.Generation()
	app.Update(keyMsg("s"))
	second := app.sim.Generation()

	app.Update(dayTickMsg{gen: first})
	app.Update(dayTickMsg{gen: second})

	if app.sim.Day() != 2 {
		t.Errorf("Day() = %d, want 2", app.sim.Day())
	}
}

func TestApp_Reset(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("n"))
	app.Update(keyMsg("s"))
	app.Update(dayTickMsg{gen: app.sim.Generation()})

	app.Update(keyMsg("r"))

	if app.sim.Running() {
		t.Error("expected simulation stopped after reset")
	}
	if app.sim.Day() != 1 {
		t.Errorf("Day() = %d, want 1", app.sim.Day())
	}
	if app.sim.TrayCount() != 0 {
		t.Errorf("TrayCount() = %d, want 0", app.sim.TrayCount())
	}
	if app.trayView.Count() != 0 {
		t.Error("expected tray view refreshed after reset")
	}
}

func TestApp_Seed(t *testing.T) {
	app := newTestApp(t)

	app.Update(keyMsg("n"))
	app.Update(keyMsg("n"))

	if app.sim.TrayCount() != 2 {
		t.Errorf("TrayCount() = %d, want 2", app.sim.TrayCount())
	}
	output := app.View()
	if !strings.Contains(output, "Romaine Lettuce") {
		t.Error("expected seeded variety in view output")
	}
	if !strings.Contains(output, "seeded a tray of Romaine Lettuce") {
		t.Error("expected seed event in activity")
	}
}

func TestApp_TransplantDirectKeys(t *testing.T) {
	tests := []struct {
		key  string
		pond int
	}{
		{"1", 0},
		{"2", 1},
		{"3", 2},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			app := newTestApp(t)
			app.Update(keyMsg("n"))
			app.sim.CycleProduction()

			app.Update(keyMsg(tt.key))

			state := app.sim.State()
			if got := state.Production[tt.pond].Rafts[0].Plants; got != models.RaftCapacity {
				t.Errorf("pond %d raft plants = %d, want %d", tt.pond, got, models.RaftCapacity)
			}
			if got := state.Germination.Trays[0].Plants; got != models.TrayCapacity-models.RaftCapacity {
				t.Errorf("tray plants = %d, want %d", got, models.TrayCapacity-models.RaftCapacity)
			}
			if app.pondView.Selected() != tt.pond {
				t.Errorf("selected pond = %d, want %d", app.pondView.Selected(), tt.pond)
			}
		})
	}
}

func TestApp_TransplantSelectedPond(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("n"))
	app.sim.CycleProduction()

	app.Update(specialKeyMsg(tea.KeyDown))
	app.Update(specialKeyMsg(tea.KeyDown))
	app.Update(specialKeyMsg(tea.KeyUp))
	app.Update(specialKeyMsg(tea.KeyEnter))

	state := app.sim.State()
	if got := state.Production[1].Plants(); got != models.RaftCapacity {
		t.Errorf("pond 2 plants = %d, want %d", got, models.RaftCapacity)
	}
	if got := state.Production[0].Plants() + state.Production[2].Plants(); got != 0 {
		t.Errorf("other ponds hold %d plants, want 0", got)
	}
}

func TestApp_TransplantIntoFullRaftNotRecorded(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("n"))
	app.sim.CycleProduction()

	app.Update(keyMsg("1"))
	recorded := len(app.activity)

	app.Update(keyMsg("1"))

	if len(app.activity) != recorded {
		t.Errorf("activity grew from %d to %d on a full raft: %q", recorded, len(app.activity), app.activity)
	}
	for _, line := range app.activity {
		if strings.Contains(line, "moved 0") {
			t.Errorf("unexpected empty transplant line %q", line)
		}
	}
}

func TestApp_TrayTableFitsPanel(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		wantSeeded bool
	}{
		{"Side by side", 120, false},
		{"Stacked", 90, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(t)
			app.Update(tea.WindowSizeMsg{Width: tt.width, Height: 40})
			app.Update(keyMsg("n"))

			output := app.View()
			if got := strings.Contains(output, "Seeded"); got != tt.wantSeeded {
				t.Errorf("Seeded column shown = %v, want %v", got, tt.wantSeeded)
			}
			if !strings.Contains(output, "Status") {
				t.Error("expected Status column")
			}
		})
	}
}

func TestApp_TransplantDisabledWithoutTrays(t *testing.T) {
	app := newTestApp(t)
	app.sim.CycleProduction()
	before := app.sim.State()

	app.Update(keyMsg("1"))
	app.Update(keyMsg("t"))

	after := app.sim.State()
	for i := range before.Production {
		if after.Production[i].Plants() != 0 {
			t.Errorf("pond %d changed without trays", i)
		}
	}
	if app.pondView.Selected() != 0 {
		t.Errorf("selected pond = %d, want 0", app.pondView.Selected())
	}
	if !strings.Contains(app.View(), "(no trays)") {
		t.Error("expected transplant shown as disabled in footer")
	}
}

func TestApp_TransplantWithoutRafts(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("n"))

	app.Update(keyMsg("1"))

	if got := app.sim.State().Germination.Trays[0].Plants; got != models.TrayCapacity {
		t.Errorf("tray plants = %d, want %d", got, models.TrayCapacity)
	}
}

func TestApp_Debug(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("d"))

	if len(app.activity) == 0 || app.activity[0] != "State written to log" {
		t.Errorf("activity = %v, want debug entry first", app.activity)
	}
}

func TestApp_ActivityLimit(t *testing.T) {
	app := newTestApp(t)
	limit := app.config.Display.ActivityLines

	for i := 0; i < limit+3; i++ {
		app.Update(keyMsg("n"))
	}

	if len(app.activity) != limit {
		t.Errorf("expected %d activity lines, got %d", limit, len(app.activity))
	}
}

func TestApp_ActivityDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Display.ActivityLines = 0
	app := New(context.Background(), cfg, newTestController(t), seedVariety(t))

	app.Update(keyMsg("n"))

	if len(app.activity) != 0 {
		t.Errorf("expected no activity, got %v", app.activity)
	}
}

func TestApp_AutoStart(t *testing.T) {
	cfg := config.Default()
	cfg.Simulation.AutoStart = true
	app := New(context.Background(), cfg, newTestController(t), seedVariety(t))

	if cmd := app.Init(); cmd == nil {
		t.Fatal("expected init command")
	}
	if !app.sim.Running() {
		t.Error("expected simulation running after auto start")
	}
}

func TestApp_InitStopped(t *testing.T) {
	app := newTestApp(t)
	app.Init()

	if app.sim.Running() {
		t.Error("expected simulation stopped without auto start")
	}
}

func TestApp_FrameTick(t *testing.T) {
	app := newTestApp(t)
	_, cmd := app.Update(frameMsg{})

	if cmd == nil {
		t.Error("expected next frame to be scheduled")
	}
}

func TestApp_HelpToggle(t *testing.T) {
	app := newTestApp(t)

	app.Update(keyMsg("?"))
	if !app.showHelp {
		t.Fatal("expected help shown")
	}
	if !strings.Contains(app.View(), "HELP") {
		t.Error("expected help screen in view output")
	}

	app.Update(specialKeyMsg(tea.KeyEscape))
	if app.showHelp {
		t.Error("expected Esc to close help")
	}
}

func TestApp_HelpClosesWithHelpKey(t *testing.T) {
	app := newTestApp(t)

	app.Update(keyMsg("?"))
	app.Update(keyMsg("?"))
	if app.showHelp {
		t.Error("expected second ? to close help")
	}
}

func TestApp_HelpSwallowsSimulationKeys(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("?"))

	_, cmd := app.Update(keyMsg("s"))
	app.Update(keyMsg("n"))

	if cmd != nil {
		t.Error("expected no tick scheduled while help is shown")
	}
	if app.sim.Running() {
		t.Error("expected simulation to stay stopped while help is shown")
	}
	if app.sim.TrayCount() != 0 {
		t.Errorf("TrayCount() = %d, want 0", app.sim.TrayCount())
	}
	if !app.showHelp {
		t.Error("expected help to stay open")
	}
}

func TestApp_QuitFromHelp(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("?"))
	app.Update(keyMsg("q"))

	if !app.showConfirm {
		t.Error("expected quit confirmation from the help screen")
	}
}

func TestApp_QuitConfirmation_Show(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))

	if !app.showConfirm {
		t.Error("expected quit confirmation to show")
	}
}

func TestApp_QuitConfirmation_Cancel(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))
	app.Update(keyMsg("n"))

	if app.showConfirm {
		t.Error("expected quit confirmation to be dismissed")
	}
	if app.quitting {
		t.Error("expected app not to be quitting after cancel")
	}
	if app.sim.TrayCount() != 0 {
		t.Error("expected n in the dialog not to seed a tray")
	}
}

func TestApp_QuitConfirmation_Confirm(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))
	_, cmd := app.Update(keyMsg("y"))

	if !app.quitting {
		t.Error("expected app to be quitting after confirm")
	}
	// The returned command should be tea.Quit
	if cmd == nil {
		t.Error("expected tea.Quit command")
	}
}

func TestApp_QuitConfirmation_CtrlC(t *testing.T) {
	app := newTestApp(t)
	app.Update(specialKeyMsg(tea.KeyCtrlC))

	if !app.showConfirm {
		t.Error("expected quit confirmation from ctrl+c")
	}
}

func TestApp_QuitConfirmation_IgnoresOtherKeys(t *testing.T) {
	app := newTestApp(t)
	app.Update(keyMsg("q"))
	app.Update(keyMsg("s"))

	if !app.showConfirm {
		t.Error("expected confirmation to stay open on unrelated key")
	}
	if app.sim.Running() {
		t.Error("expected start ignored while confirming")
	}
}

func TestApp_ConfirmDialog_Render(t *testing.T) {
	app := newTestApp(t)
	app.showConfirm = true

	output := app.View()
	if !strings.Contains(output, "CONFIRM EXIT") {
		t.Error("expected confirm dialog in output")
	}
}

func TestApp_WindowResize(t *testing.T) {
	app := newTestApp(t)
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if app.width != 80 {
		t.Errorf("expected width 80, got %d", app.width)
	}
	if app.height != 24 {
		t.Errorf("expected height 24, got %d", app.height)
	}
	if !app.ready {
		t.Error("expected app ready after window size")
	}
}

func TestApp_ResponsiveFooter(t *testing.T) {
	app := newTestApp(t)

	app.Update(tea.WindowSizeMsg{Width: 50, Height: 24})
	if !strings.Contains(app.View(), "1-3:Plant") {
		t.Error("expected compact help on narrow terminal")
	}

	app.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	if !strings.Contains(app.View(), "[1-3]Transplant") {
		t.Error("expected full help on wide terminal")
	}
}

func TestApp_ProgressBarStoppedIsEmpty(t *testing.T) {
	app := newTestApp(t)

	if strings.Contains(app.renderStatusBar(), "█") {
		t.Error("expected empty progress bar while stopped")
	}
}
