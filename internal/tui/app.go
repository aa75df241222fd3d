package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/greenhouse/greenhouse/internal/config"
	"github.com/greenhouse/greenhouse/internal/models"
	"github.com/greenhouse/greenhouse/internal/simulation"
	"github.com/greenhouse/greenhouse/internal/tui/views/germination"
	"github.com/greenhouse/greenhouse/internal/tui/views/production"
)

// Version information (set at build time)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// MaxContentWidth is the maximum width for content display
const MaxContentWidth = 120

// frameInterval is how often the progress bar is redrawn.
const frameInterval = 100 * time.Millisecond

// App is the main Bubble Tea application model.
type App struct {
	// Dependencies
	ctx    context.Context
	sim    *simulation.Controller
	config *config.Config
	seed   *models.Variety
	logger *slog.Logger

	// Views
	trayView *germination.TrayView
	pondView *production.PondView

	// UI state
	theme       *Theme
	keys        KeyMap
	width       int
	height      int
	ready       bool
	quitting    bool
	showConfirm bool
	showHelp    bool

	// Recent controller events, newest first
	activity []string
}

// frameMsg redraws the progress bar.
type frameMsg time.Time

// dayTickMsg is one firing of the periodic trigger installed under gen.
type dayTickMsg struct {
	gen simulation.Generation
}

// New creates a new App driving the given controller.
// seed is the variety planted by the Seed control.
func New(ctx context.Context, cfg *config.Config, sim *simulation.Controller, seed *models.Variety) *App {
	theme := NewTheme(cfg.Display.ColorScheme)

	trayView := germination.NewTrayView()
	trayView.SetStyles(germination.Styles{
		Label: theme.Label,
		Value: theme.Value,
		Ready: theme.Warning.Bold(true),
		Muted: theme.Muted,
	})
	trayView.SetTableStyles(theme.Accent.Bold(true), theme.Primary, theme.Secondary, theme.Selected, theme.Muted)

	pondView := production.NewPondView(cfg.Display.MaxRafts)
	pondView.SetStyles(production.Styles{
		Title:    theme.Accent.Bold(true),
		Selected: theme.Selected,
		Label:    theme.Label,
		Empty:    theme.Muted,
		Occupied: theme.Warning,
		Full:     theme.Success.Bold(true),
		Muted:    theme.Muted,
		Disabled: theme.Disabled.Strikethrough(true),
	})

	a := &App{
		ctx:      ctx,
		sim:      sim,
		config:   cfg,
		seed:     seed,
		logger:   slog.Default(),
		trayView: trayView,
		pondView: pondView,
		theme:    theme,
		keys:     DefaultKeyMap(),
	}

	sim.Subscribe(a.record)
	a.refresh()
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.EnterAltScreen, frameCmd()}
	if a.config.Simulation.AutoStart {
		cmds = append(cmds, a.start())
	}
	return tea.Batch(cmds...)
}

// frameCmd returns a command that sends frame messages.
func frameCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// dayTickCmd schedules the next firing of the trigger installed under gen.
func dayTickCmd(gen simulation.Generation, period time.Duration) tea.Cmd {
	return tea.Tick(period, func(time.Time) tea.Msg {
		return dayTickMsg{gen: gen}
	})
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		model, cmd := a.handleKeyPress(msg)
		a.refresh()
		return model, cmd

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.updateViewDimensions()
		return a, nil

	case frameMsg:
		return a, frameCmd()

	case dayTickMsg:
		if !a.sim.Tick(a.ctx, msg.gen) {
			return a, nil
		}
		a.refresh()
		return a, dayTickCmd(msg.gen, a.sim.Period())
	}

	return a, nil
}

// handleKeyPress processes key press events.
func (a *App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle quit confirmation first (modal takes priority)
	if a.showConfirm {
		switch msg.String() {
		case "y", "Y", "enter":
			a.quitting = true
			return a, tea.Quit
		case "n", "N", "esc":
			a.showConfirm = false
			return a, nil
		}
		return a, nil
	}

	if a.keys.Quit.Matches(msg) {
		a.showConfirm = true
		return a, nil
	}

	// The help screen hides the greenhouse, so it swallows simulation keys.
	if a.showHelp {
		if MatchesAny(msg, a.keys.Help, a.keys.Back) {
			a.showHelp = false
		}
		return a, nil
	}

	if a.keys.Help.Matches(msg) {
		a.showHelp = true
		return a, nil
	}

	switch {
	case a.keys.Start.Matches(msg):
		return a, a.start()
	case a.keys.Reset.Matches(msg):
		a.sim.Reset(a.ctx)
	case a.keys.Debug.Matches(msg):
		a.sim.Debug()
		a.pushActivity("State written to log")
	case a.keys.Seed.Matches(msg):
		a.sim.SeedTray(a.seed)
	case a.keys.Up.Matches(msg):
		a.pondView.MoveUp()
	case a.keys.Down.Matches(msg):
		a.pondView.MoveDown()
	case a.keys.Transplant.Matches(msg):
		a.transplant(a.pondView.Selected())
	default:
		if pond := a.keys.PondIndex(msg); pond >= 0 {
			a.pondView.Select(pond)
			a.transplant(pond)
		}
	}

	return a, nil
}

// start installs a new periodic trigger and schedules its first tick.
func (a *App) start() tea.Cmd {
	gen := a.sim.Start(a.ctx)
	return dayTickCmd(gen, a.sim.Period())
}

// transplant is ignored while no trays are germinating.
func (a *App) transplant(pond int) {
	if !a.canTransplant() {
		a.logger.Debug("transplant disabled: no trays", "pond", pond)
		return
	}
	a.sim.TransplantToPond(pond)
}

func (a *App) canTransplant() bool {
	return a.sim.TrayCount() > 0
}

// refresh reloads the views from a fresh state snapshot.
func (a *App) refresh() {
	state := a.sim.State()
	a.trayView.SetState(state.Germination, state.Day)
	a.pondView.SetPonds(state.Production)
	a.pondView.SetTransplantEnabled(a.canTransplant())
}

// updateViewDimensions sizes the tray table to the window.
func (a *App) updateViewDimensions() {
	a.trayView.SetVisibleRows(max((a.height-14)/2, 3))

	panel, _ := a.panelWidth()
	a.trayView.SetWidth(panel - 4)
}

// panelWidth returns the width of each greenhouse panel and whether the
// panels sit side by side.
func (a *App) panelWidth() (int, bool) {
	width := ContentWidth(a.width, 40, MaxContentWidth)
	if GetBreakpoint(a.width) == BreakpointWide {
		return (width - 2) / 2, true
	}
	return width, false
}

// record turns a controller change into an activity line.
func (a *App) record(c simulation.Change) {
	var line string
	switch c.Kind {
	case simulation.ChangeStarted:
		line = fmt.Sprintf("Day %d: simulation started", c.Day)
	case simulation.ChangeReset:
		line = "Simulation reset"
	case simulation.ChangeSeeded:
		line = fmt.Sprintf("Day %d: seeded a tray of %s", c.Day, c.Variety)
	case simulation.ChangeTransplanted:
		line = fmt.Sprintf("Day %d: moved %d %s to Pond %d", c.Day, c.Moved, c.Variety, c.Pond+1)
	case simulation.ChangeDayAdvanced:
		line = fmt.Sprintf("Day %d begins, rafts launched", c.Day)
	default:
		return
	}
	a.pushActivity(line)
}

func (a *App) pushActivity(line string) {
	limit := a.config.Display.ActivityLines
	if limit <= 0 {
		return
	}
	a.activity = append([]string{line}, a.activity...)
	if len(a.activity) > limit {
		a.activity = a.activity[:limit]
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initializing..."
	}

	if a.quitting {
		return a.theme.Title.Render("Greenhouse shutting down...")
	}

	var b strings.Builder

	// Header
	b.WriteString(a.renderHeader())
	b.WriteString("\n")

	// Day progress and latest event
	b.WriteString(a.renderStatusBar())
	b.WriteString("\n")

	// Main content area
	contentHeight := a.height - 6 // header, status, footer
	switch {
	case a.showConfirm:
		b.WriteString(a.renderConfirmDialog(contentHeight))
	case a.showHelp:
		b.WriteString(a.renderContent(a.renderHelp(), contentHeight))
	default:
		b.WriteString(a.renderContent(a.renderGreenhouse(), contentHeight))
	}

	// Footer/status bar
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	return b.String()
}

// renderHeader renders the top header bar.
func (a *App) renderHeader() string {
	title := "GREENHOUSE"
	if GetBreakpoint(a.width) != BreakpointNarrow {
		title = fmt.Sprintf("GREENHOUSE v%s", Version)
	}

	status := a.theme.Muted.Render("STOPPED")
	if a.sim.Running() {
		status = a.theme.Success.Bold(true).Render("RUNNING")
	}
	dayInfo := a.theme.Header.Render(fmt.Sprintf("Day %d |", a.sim.Day())) + status + " "

	// Calculate spacing
	spacing := max(a.width-lipgloss.Width(title)-lipgloss.Width(dayInfo)-2, 1)

	header := a.theme.Header.Render(title) +
		strings.Repeat(" ", spacing) +
		dayInfo

	// Separator line
	separator := a.theme.DrawDoubleLine(a.width)

	return header + "\n" + separator
}

// renderStatusBar renders the day progress bar and the latest event.
func (a *App) renderStatusBar() string {
	barWidth := min(max(a.width/4, 10), 40)

	progress := 0.0
	if a.sim.Running() {
		progress = a.sim.Progress()
	}
	bar := a.theme.ProgressBar(progress, barWidth)

	latest := a.theme.Muted.Render("Press n to seed, s to start")
	if len(a.activity) > 0 {
		latest = a.theme.Alert.Render(a.activity[0])
	}

	return " " + bar + a.theme.StatusDivider.Render() + latest
}

// renderContent places content in the centered content column.
func (a *App) renderContent(content string, height int) string {
	style := lipgloss.NewStyle().
		Width(a.width).
		Height(max(height, 0)).
		Align(lipgloss.Center, lipgloss.Top)

	return style.Render(content)
}

// renderGreenhouse renders the germination and production panels.
func (a *App) renderGreenhouse() string {
	width := ContentWidth(a.width, 40, MaxContentWidth)
	panel, sideBySide := a.panelWidth()

	germ := a.theme.Panel("Germination", a.trayView.Render(panel-4), panel)
	prod := a.theme.Panel("Production", a.pondView.Render(panel-4), panel)
	if sideBySide {
		return SideBySide(germ, prod, width, 2) + a.renderActivity(width)
	}
	return germ + "\n" + prod + a.renderActivity(width)
}

// renderActivity renders older events below the panels.
func (a *App) renderActivity(width int) string {
	if len(a.activity) < 2 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for _, line := range a.activity[1:] {
		b.WriteString("\n")
		b.WriteString(a.theme.Muted.Render(Truncate("  "+line, width)))
	}
	return b.String()
}

// renderHelp renders the help screen.
func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.theme.Title.Render("═══ HELP ═══"))
	b.WriteString("\n\n")

	b.WriteString(a.theme.Subtitle.Render("SIMULATION"))
	b.WriteString("\n\n")

	simItems := [][2]string{
		{"s", "Start the day timer (restarts the current day)"},
		{"r", "Reset to day 1 and stop"},
		{"d", "Write the full state to the log"},
		{"n", fmt.Sprintf("Seed a tray of %s", a.seed.Name)},
	}
	for _, item := range simItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Subtitle.Render("TRANSPLANTING"))
	b.WriteString("\n\n")

	ctrlItems := [][2]string{
		{"1 2 3", "Transplant the newest tray into that pond"},
		{"Up/Down", "Select pond"},
		{"t/Enter", "Transplant into the selected pond"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, item := range ctrlItems {
		line := fmt.Sprintf("    %-8s  %s", item[0], item[1])
		b.WriteString(a.theme.Primary.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.theme.Muted.Render("Press Esc to return"))

	return b.String()
}

// renderConfirmDialog renders the quit confirmation dialog.
func (a *App) renderConfirmDialog(height int) string {
	dialog := a.theme.Box.Render(
		a.theme.Title.Render("CONFIRM EXIT") + "\n\n" +
			a.theme.Base.Render("Are you sure you want to exit?") + "\n\n" +
			a.theme.Label.Render("[Y]es  [N]o"),
	)

	// Center the dialog
	style := lipgloss.NewStyle().
		Width(a.width).
		Height(max(height, 0)).
		Align(lipgloss.Center, lipgloss.Center)

	return style.Render(dialog)
}

// renderFooter renders the bottom status bar.
func (a *App) renderFooter() string {
	// Draw separator
	separator := a.theme.DrawHorizontalLine(a.width)

	// Help text
	help := a.keys.StatusBarHelp(GetBreakpoint(a.width) == BreakpointNarrow)
	if !a.canTransplant() {
		help = a.theme.Footer.Render(help) + a.theme.Disabled.Render("(no trays)")
		return separator + "\n" + help
	}

	return separator + "\n" + a.theme.Footer.Render(help)
}

// Run starts the TUI application.
func Run(ctx context.Context, cfg *config.Config, sim *simulation.Controller, seed *models.Variety) error {
	app := New(ctx, cfg, sim, seed)

	p := tea.NewProgram(app, tea.WithAltScreen())

	// Handle context cancellation
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
