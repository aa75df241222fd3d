// Package tui provides the terminal user interface for the greenhouse simulation.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/greenhouse/greenhouse/internal/config"
)

// Theme contains all style definitions for the TUI.
type Theme struct {
	// Colors (raw values for reference)
	PrimaryColor    lipgloss.Color
	SecondaryColor  lipgloss.Color
	AccentColor     lipgloss.Color
	BackgroundColor lipgloss.Color
	ErrorColor      lipgloss.Color
	WarningColor    lipgloss.Color
	SuccessColor    lipgloss.Color
	MutedColor      lipgloss.Color

	// Base styles
	Base lipgloss.Style
	Bold lipgloss.Style

	// Color styles (for direct use)
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Success   lipgloss.Style
	Muted     lipgloss.Style

	// Component styles
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Box      lipgloss.Style
	Selected lipgloss.Style
	Disabled lipgloss.Style
	Alert    lipgloss.Style

	// Status bar
	StatusDivider lipgloss.Style
}

// NewTheme creates a new theme based on the color scheme configuration.
func NewTheme(scheme config.ColorScheme) *Theme {
	switch scheme {
	case config.ColorSchemeAmber:
		return newAmberTheme()
	case config.ColorSchemeWhite:
		return newWhiteTheme()
	default:
		return newGreenTheme()
	}
}

// newGreenTheme creates the default leafy green theme.
func newGreenTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#7CDB6A"), // primary
		lipgloss.Color("#3E9A3A"), // secondary
		lipgloss.Color("#B8F5A8"), // accent
		lipgloss.Color("#000000"), // background
		lipgloss.Color("#2F5D2C"), // muted
		lipgloss.Color("#FF5F5F"), // error
		lipgloss.Color("#E0B23A"), // warning
		lipgloss.Color("#7CDB6A"), // success
	)
}

// newAmberTheme creates an amber terminal theme.
func newAmberTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#FFAA00"),
		lipgloss.Color("#AA7700"),
		lipgloss.Color("#FFCC66"),
		lipgloss.Color("#000000"),
		lipgloss.Color("#664400"),
		lipgloss.Color("#FF4444"),
		lipgloss.Color("#FFFF00"),
		lipgloss.Color("#FFAA00"),
	)
}

// newWhiteTheme creates a monochrome theme.
func newWhiteTheme() *Theme {
	return buildTheme(
		lipgloss.Color("#FFFFFF"),
		lipgloss.Color("#AAAAAA"),
		lipgloss.Color("#FFFFFF"),
		lipgloss.Color("#000000"),
		lipgloss.Color("#666666"),
		lipgloss.Color("#FF4444"),
		lipgloss.Color("#FFAA00"),
		lipgloss.Color("#00FF00"),
	)
}

func buildTheme(primary, secondary, accent, background, muted, errorColor, warningColor, successColor lipgloss.Color) *Theme {
	t := &Theme{
		PrimaryColor:    primary,
		SecondaryColor:  secondary,
		AccentColor:     accent,
		BackgroundColor: background,
		MutedColor:      muted,
		ErrorColor:      errorColor,
		WarningColor:    warningColor,
		SuccessColor:    successColor,
	}

	t.Base = lipgloss.NewStyle().Foreground(primary)
	t.Bold = t.Base.Bold(true)

	t.Primary = lipgloss.NewStyle().Foreground(primary)
	t.Secondary = lipgloss.NewStyle().Foreground(secondary)
	t.Accent = lipgloss.NewStyle().Foreground(accent)
	t.Error = lipgloss.NewStyle().Foreground(errorColor)
	t.Warning = lipgloss.NewStyle().Foreground(warningColor)
	t.Success = lipgloss.NewStyle().Foreground(successColor)
	t.Muted = lipgloss.NewStyle().Foreground(muted)

	// Header - top bar with day and run state
	t.Header = lipgloss.NewStyle().
		Foreground(primary).
		Bold(true).
		Padding(0, 1)

	// Footer - key bindings
	t.Footer = lipgloss.NewStyle().
		Foreground(secondary).
		Padding(0, 1)

	t.Title = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true).
		Padding(0, 1)

	t.Subtitle = lipgloss.NewStyle().
		Foreground(primary).
		Padding(0, 1)

	t.Label = lipgloss.NewStyle().Foreground(secondary)
	t.Value = lipgloss.NewStyle().Foreground(primary)

	t.Box = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(secondary).
		Padding(0, 1)

	t.Selected = lipgloss.NewStyle().
		Foreground(background).
		Background(primary).
		Bold(true)

	t.Disabled = lipgloss.NewStyle().Foreground(muted)

	t.Alert = lipgloss.NewStyle().
		Foreground(accent).
		Bold(true)

	t.StatusDivider = lipgloss.NewStyle().
		Foreground(muted).
		SetString(" │ ")

	return t
}

// Box characters for drawing
const (
	BoxHorizontal       = "─"
	BoxDoubleHorizontal = "═"
)

// DrawHorizontalLine draws a horizontal line.
func (t *Theme) DrawHorizontalLine(width int) string {
	return t.Secondary.Render(strings.Repeat(BoxHorizontal, max(width, 0)))
}

// DrawDoubleLine draws a double horizontal line.
func (t *Theme) DrawDoubleLine(width int) string {
	return t.Primary.Render(strings.Repeat(BoxDoubleHorizontal, max(width, 0)))
}
