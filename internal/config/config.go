// Package config provides configuration management for the greenhouse simulation.
// Configurations are loaded from TOML files with XDG-compliant paths.
//
// Game rules (day period, tray and raft capacity, ponds, varieties) are
// compiled in and deliberately absent from this file.
package config

import (
	"errors"
	"fmt"

	"github.com/greenhouse/greenhouse/internal/models"
)

// Config holds the complete application configuration.
type Config struct {
	Simulation SimulationConfig `toml:"simulation"`
	Display    DisplayConfig    `toml:"display"`
	Logging    LoggingConfig    `toml:"logging"`
	Telemetry  TelemetryConfig  `toml:"telemetry"`
}

// SimulationConfig controls how a session begins.
type SimulationConfig struct {
	// AutoStart starts the day timer as soon as the UI opens.
	AutoStart bool `toml:"auto_start"`

	// SeedVariety is the ID of the variety planted by the Seed control.
	SeedVariety string `toml:"seed_variety"`
}

// DisplayConfig controls TUI appearance.
type DisplayConfig struct {
	ColorScheme ColorScheme `toml:"color_scheme"`
	// MaxRafts caps how many rafts per pond are drawn; older rafts are summarized.
	MaxRafts int `toml:"max_rafts"`
	// ActivityLines is the number of recent events kept in the activity feed.
	ActivityLines int `toml:"activity_lines"`
}

// ColorScheme defines the terminal color palette.
type ColorScheme string

const (
	ColorSchemeGreen ColorScheme = "green"
	ColorSchemeAmber ColorScheme = "amber"
	ColorSchemeWhite ColorScheme = "white"
)

// LoggingConfig controls application logging.
type LoggingConfig struct {
	Level LogLevel `toml:"level"`
	File  string   `toml:"file"`
}

// LogLevel defines logging verbosity.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// TelemetryConfig controls OpenTelemetry export of simulation metrics and traces.
type TelemetryConfig struct {
	Exporter    TelemetryExporter `toml:"exporter"`
	ServiceName string            `toml:"service_name"`
	// Insecure sends OTLP over plain HTTP.
	Insecure bool `toml:"insecure"`
}

// TelemetryExporter selects where telemetry is sent.
type TelemetryExporter string

const (
	TelemetryNone   TelemetryExporter = "none"
	TelemetryStdout TelemetryExporter = "stdout"
	TelemetryOTLP   TelemetryExporter = "otlp"
)

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs []error

	if err := c.Simulation.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("simulation: %w", err))
	}

	if err := c.Display.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("display: %w", err))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("logging: %w", err))
	}

	if err := c.Telemetry.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("telemetry: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the simulation configuration is valid.
func (s *SimulationConfig) Validate() error {
	if s.SeedVariety == "" {
		return errors.New("seed_variety is required")
	}
	if _, ok := models.FindVariety(s.SeedVariety); !ok {
		return fmt.Errorf("seed_variety %q is not in the variety catalog", s.SeedVariety)
	}
	return nil
}

// Validate checks that the display configuration is valid.
func (d *DisplayConfig) Validate() error {
	var errs []error

	validSchemes := map[ColorScheme]bool{
		ColorSchemeGreen: true,
		ColorSchemeAmber: true,
		ColorSchemeWhite: true,
	}

	if !validSchemes[d.ColorScheme] && d.ColorScheme != "" {
		errs = append(errs, fmt.Errorf("invalid color_scheme: %s", d.ColorScheme))
	}

	if d.MaxRafts < 1 {
		errs = append(errs, errors.New("max_rafts must be positive"))
	}

	if d.ActivityLines < 0 {
		errs = append(errs, errors.New("activity_lines must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// Validate checks that the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	validLevels := map[LogLevel]bool{
		LogLevelDebug: true,
		LogLevelInfo:  true,
		LogLevelWarn:  true,
		LogLevelError: true,
	}

	if !validLevels[l.Level] && l.Level != "" {
		return fmt.Errorf("invalid log level: %s", l.Level)
	}

	return nil
}

// Validate checks that the telemetry configuration is valid.
func (t *TelemetryConfig) Validate() error {
	switch t.Exporter {
	case "", TelemetryNone, TelemetryStdout, TelemetryOTLP:
	default:
		return fmt.Errorf("invalid exporter: %s", t.Exporter)
	}

	if t.Exporter != "" && t.Exporter != TelemetryNone && t.ServiceName == "" {
		return errors.New("service_name is required when exporting")
	}

	return nil
}

// Enabled reports whether telemetry is exported anywhere.
func (t *TelemetryConfig) Enabled() bool {
	return t.Exporter != "" && t.Exporter != TelemetryNone
}

// Default returns a configuration with sensible default values.
func Default() *Config {
	return &Config{
		Simulation: SimulationConfig{
			AutoStart:   false,
			SeedVariety: "1",
		},
		Display: DisplayConfig{
			ColorScheme:   ColorSchemeGreen,
			MaxRafts:      24,
			ActivityLines: 5,
		},
		Logging: LoggingConfig{
			Level: LogLevelInfo,
			File:  "logs/greenhouse.log",
		},
		Telemetry: TelemetryConfig{
			Exporter:    TelemetryNone,
			ServiceName: "greenhouse",
		},
	}
}
