// Greenhouse: a hydroponic lettuce greenhouse simulation.
//
// Seed germination trays, transplant seedlings into floating rafts across
// three ponds, and watch the rafts move down the ponds day by day.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/greenhouse/greenhouse/internal/config"
	"github.com/greenhouse/greenhouse/internal/models"
	"github.com/greenhouse/greenhouse/internal/simulation"
	"github.com/greenhouse/greenhouse/internal/telemetry"
	"github.com/greenhouse/greenhouse/internal/tui"
)

// Build information (set via ldflags)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

// options holds the parsed command line.
type options struct {
	configPath string
	debug      bool
	headless   bool
	days       int
}

func main() {
	// Parse command line flags
	var (
		configPath  = flag.String("config", "", "Path to configuration file")
		showVersion = flag.Bool("version", false, "Show version and exit")
		debugMode   = flag.Bool("debug", false, "Enable debug logging")
		headless    = flag.Bool("headless", false, "Run the simulation without the TUI, logging every change")
		days        = flag.Int("days", 0, "Stop a headless run after this many days (0 runs until interrupted)")
	)
	flag.Parse()

	// Show version
	if *showVersion {
		fmt.Printf("greenhouse version %s (built %s)\n", Version, BuildTime)
		os.Exit(0)
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		slog.Info("received shutdown signal", "signal", sig)
		cancel()

		// Force exit after timeout
		time.AfterFunc(10*time.Second, func() {
			slog.Error("forced shutdown after timeout")
			os.Exit(1)
		})
	}()

	opts := options{
		configPath: *configPath,
		debug:      *debugMode,
		headless:   *headless,
		days:       *days,
	}

	// Run the application
	if err := run(ctx, opts); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.days < 0 {
		return fmt.Errorf("invalid -days %d: must be non-negative", opts.days)
	}

	// Load configuration
	cfg, cfgPath, err := config.Load(opts.configPath, true)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logWriter, closeLog, err := setupLogging(cfg, opts)
	if err != nil {
		return err
	}
	defer closeLog()

	slog.Info("greenhouse starting",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cfgPath,
		"headless", opts.headless,
	)

	seed, ok := models.FindVariety(cfg.Simulation.SeedVariety)
	if !ok {
		return fmt.Errorf("unknown seed variety %q", cfg.Simulation.SeedVariety)
	}

	// The TUI owns stdout, so stdout telemetry joins the log file there.
	telemetryOut := logWriter
	if opts.headless {
		telemetryOut = os.Stdout
	}
	providers, err := telemetry.Setup(ctx, telemetry.ConfigFrom(cfg.Telemetry, Version, telemetryOut))
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	recorder, err := telemetry.NewRecorder()
	if err != nil {
		return fmt.Errorf("creating telemetry recorder: %w", err)
	}

	sim := simulation.NewController(simulation.WithLogger(slog.Default()))

	if opts.headless {
		return runHeadless(ctx, sim, recorder, seed, opts.days)
	}

	sim.Subscribe(recorder.Observer(ctx))

	// Set version info for TUI
	tui.Version = Version
	tui.BuildTime = BuildTime

	slog.Info("starting TUI",
		"seed_variety", seed.Name,
		"auto_start", cfg.Simulation.AutoStart,
	)

	if err := tui.Run(ctx, cfg, sim, seed); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	slog.Info("greenhouse shutdown complete", "day", sim.Day())
	return nil
}

// setupLogging installs the default logger and returns its destination. The
// TUI owns the terminal, so it logs JSON to the configured file; headless
// runs log text to stderr.
func setupLogging(cfg *config.Config, opts options) (io.Writer, func(), error) {
	logLevel := slog.LevelInfo
	if opts.debug {
		logLevel = slog.LevelDebug
	} else {
		switch cfg.Logging.Level {
		case config.LogLevelDebug:
			logLevel = slog.LevelDebug
		case config.LogLevelWarn:
			logLevel = slog.LevelWarn
		case config.LogLevelError:
			logLevel = slog.LevelError
		}
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}

	if opts.headless {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, handlerOpts)))
		return os.Stderr, func() {}, nil
	}

	logPath, err := config.EnsureLogDir(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}

	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if logPath != "" {
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = logFile
		closeFn = func() { logFile.Close() }
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(w, handlerOpts)))
	return w, closeFn, nil
}

// runHeadless seeds one tray, starts the day timer and logs every change
// until ctx is done or the requested number of days has passed. The run is
// traced as a single span.
func runHeadless(ctx context.Context, sim *simulation.Controller, recorder *telemetry.Recorder, seed *models.Variety, days int) error {
	ctx, span := recorder.StartRun(ctx, "greenhouse.headless")
	defer span.End()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sim.Subscribe(recorder.Observer(ctx))
	sim.Subscribe(headlessObserver(slog.Default(), sim.Day(), days, cancel))
	sim.SeedTray(seed)

	err := simulation.RunTicker(ctx, sim)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	sim.Debug()
	slog.Info("headless run finished", "day", sim.Day())
	return err
}

// headlessObserver logs each change and calls stop once the day reaches
// startDay+days. A zero days value never stops.
func headlessObserver(logger *slog.Logger, startDay, days int, stop context.CancelFunc) simulation.Observer {
	return func(c simulation.Change) {
		attrs := []any{"kind", c.Kind, "day", c.Day}
		switch c.Kind {
		case simulation.ChangeSeeded:
			attrs = append(attrs, "tray", c.TrayID, "variety", c.Variety)
		case simulation.ChangeTransplanted:
			attrs = append(attrs, "pond", c.Pond, "moved", c.Moved, "tray", c.TrayID)
		}
		logger.Info("simulation change", attrs...)

		if days > 0 && c.Kind == simulation.ChangeDayAdvanced && c.Day >= startDay+days {
			stop()
		}
	}
}
