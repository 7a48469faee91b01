// cmd/orrery/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-orrery/pkg/celestial"
	"github.com/opd-ai/go-orrery/pkg/config"
	"github.com/opd-ai/go-orrery/pkg/driver"
	"github.com/opd-ai/go-orrery/pkg/event"
	"github.com/opd-ai/go-orrery/pkg/logging"
	"github.com/opd-ai/go-orrery/pkg/render"
	engorender "github.com/opd-ai/go-orrery/pkg/render/engo"
	"github.com/opd-ai/go-orrery/pkg/scene"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithSessionID(context.Background(), logging.GenerateSessionID())

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	renderer := flag.String("renderer", "", "Renderer: 'null', 'terminal' or 'engo' (overrides config)")
	frames := flag.Uint64("frames", 0, "Stop after this many frames (0 runs until interrupted)")
	width := flag.Int("width", 0, "Window width (engo only, overrides config)")
	height := flag.Int("height", 0, "Window height (engo only, overrides config)")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode (engo only)")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	if err := config.LoadDotEnv(); err != nil {
		logger.Warn(ctx, "Ignoring .env file", "error", err.Error())
	}

	// Load configuration
	var cfg *config.Config
	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	// Apply environment variable overrides
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logStartupError(ctx, logger, "Failed to apply environment configuration", err)
		os.Exit(1)
	}

	// Command line flags win over both the file and the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "renderer":
			cfg.Renderer = strings.ToLower(*renderer)
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "fullscreen":
			cfg.Window.Fullscreen = *fullscreen
		}
	})
	if err := cfg.Validate(); err != nil {
		logStartupError(ctx, logger, "Invalid command line options", err)
		os.Exit(1)
	}

	logger, closeLog := openLogger(ctx, logger, cfg)
	defer closeLog()

	eventBus := event.NewEventBus()
	eventBus.Subscribe(event.SystemComposed, func(e event.Event) {
		if se, ok := e.(*event.SystemEvent); ok {
			logger.Info(ctx, "System composed", "system", se.Name, "bodies", se.Bodies, "nodes", se.Nodes)
		}
	})

	system, err := scene.NewSystem(cfg.System, cfg.Catalog(), cfg.SceneOptions(), logger, eventBus)
	if err != nil {
		logStartupError(ctx, logger, "Failed to build system", err)
		closeLog()
		os.Exit(1)
	}

	switch cfg.Renderer {
	case config.RendererEngo:
		engorender.Run(cfg, system, logger, eventBus, *frames)
	case config.RendererNull:
		runNull(ctx, cfg, system, logger, eventBus, *frames)
	default:
		if err := runTerminal(ctx, cfg, system, logger, eventBus, *frames); err != nil {
			logger.Error(ctx, "Terminal renderer failed", err)
			closeLog()
			os.Exit(1)
		}
	}
}

// logStartupError names the offending body when err comes from the system
// table and falls back to msg otherwise.
func logStartupError(ctx context.Context, logger *logging.Logger, msg string, err error) {
	var cerr *celestial.ConfigurationError
	if errors.As(err, &cerr) {
		logger.Error(ctx, "Invalid system description", err, "path", cerr.Path)
		return
	}
	logger.Error(ctx, msg, err)
}

// openLogger switches to the configured log file. Without one, the terminal
// renderer gets a discarding logger so records do not garble the screen.
func openLogger(ctx context.Context, logger *logging.Logger, cfg *config.Config) (*logging.Logger, func()) {
	if cfg.LogFile == "" {
		if cfg.Renderer == config.RendererTerminal {
			return logging.Discard(), func() {}
		}
		return logger, func() {}
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Warn(ctx, "Cannot open log file, logging to stderr", "log_file", cfg.LogFile, "error", err.Error())
		return logger, func() {}
	}
	level := logging.ParseLevel(os.Getenv(logging.LevelEnvVar))
	return logging.NewLoggerWithWriter(f, level), func() { _ = f.Close() }
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// runNull drives frames without drawing anything
func runNull(ctx context.Context, cfg *config.Config, system *scene.System, logger *logging.Logger, eventBus *event.Bus, frames uint64) {
	ctx, stop := signalContext(ctx)
	defer stop()

	d := driver.New(system, render.NewNullRenderer(logger), driver.NewSystemClock(),
		driver.Options{FrameRate: cfg.FrameRate, MaxFrames: frames}, logger, eventBus)
	_ = d.Run(ctx)
}

// runTerminal draws the orrery in the terminal until Escape, q or Ctrl-C
func runTerminal(ctx context.Context, cfg *config.Config, system *scene.System, logger *logging.Logger, eventBus *event.Bus, frames uint64) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return logging.WrapError(err, "failed to create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return logging.WrapError(err, "failed to initialise terminal screen")
	}
	defer screen.Fini()

	palette, err := cfg.ColorPalette()
	if err != nil {
		logger.Warn(ctx, "Palette rejected, using defaults", "error", err.Error())
		palette = nil
	}
	r := render.NewTerminalRenderer(screen, palette, cfg.View.TerminalScale)
	r.SetAxes(cfg.View.ShowAxes, cfg.View.AxesSize)

	ctx, stop := signalContext(ctx)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					cancel()
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		}
	}()

	d := driver.New(system, r, driver.NewSystemClock(),
		driver.Options{FrameRate: cfg.FrameRate, MaxFrames: frames}, logger, eventBus)
	return d.Run(ctx)
}
