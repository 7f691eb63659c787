package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/mood-eye/audio"
	"github.com/lixenwraith/mood-eye/config"
	"github.com/lixenwraith/mood-eye/engine"
	"github.com/lixenwraith/mood-eye/gc9a01"
	"github.com/lixenwraith/mood-eye/logging"
	"github.com/lixenwraith/mood-eye/render"
	"github.com/lixenwraith/mood-eye/terminal"
	"github.com/lixenwraith/mood-eye/theme"
	"github.com/lixenwraith/mood-eye/vmath"
)

const defaultConfigPath = "mood-eye.toml"

var (
	configFlag   = flag.String("config", "", "TOML config file (default mood-eye.toml if present)")
	displayFlag  = flag.String("display", "", "Display backend: terminal, gc9a01")
	serialFlag   = flag.String("serial", "", "Serial device for mood commands, e.g. /dev/serial0")
	baudFlag     = flag.Int("baud", 0, "Serial baud rate")
	prefixFlag   = flag.String("prefix", "", "Command prefix to strip, e.g. MOOD:")
	moodFileFlag = flag.String("mood-file", "", "Text file whose contents set the mood")
	stdinFlag    = flag.Bool("stdin", false, "Read mood commands from stdin")
	scheduleFlag = flag.Bool("schedule", false, "Cycle moods on a timer")
	eyesFlag     = flag.Int("eyes", 0, "Number of eyes: 1 or 2")
	fpsFlag      = flag.Int("fps", -1, "Frame rate cap, 0 for uncapped")
	soundFlag    = flag.Bool("sound", false, "Play a chime on mood change")
	debugFlag    = flag.Bool("debug", false, "Debug logging to logs/mood-eye.log")
	seedFlag     = flag.Uint64("seed", 0, "Random seed, 0 for time based")
	printFlag    = flag.Bool("print-config", false, "Print the effective config and exit")
)

func main() {
	// Panic recovery: the terminal must be restored before the trace is readable
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mMOOD-EYE CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mood-eye: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	if *printFlag {
		return cfg.Write(os.Stdout)
	}

	logPath, level := cfg.Log.File, cfg.Log.Level
	if *debugFlag {
		level = "debug"
		if logPath == "" {
			logPath = logging.DefaultPath
		}
	}
	logger, closeLog, err := logging.Setup(logPath, level, int64(cfg.Log.MaxSizeMB)<<20)
	if err != nil {
		return err
	}
	defer closeLog()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	sinks, status, cleanup, err := openDisplay(cancel, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	eyes, err := buildEyes(cfg, sinks)
	if err != nil {
		return err
	}

	src, closeSources, err := openSources(cfg, logger)
	if err != nil {
		return err
	}
	defer closeSources()

	sound := audio.NewSoundManager(&cfg.Audio, logger)
	if err := sound.Initialize(); err != nil {
		// Non-fatal, the eye runs fine silently
		logger.Warnw("audio initialization failed", "error", err)
	}
	defer sound.Cleanup()

	status(theme.Neutral)
	loop := engine.NewLoop(eyes, engine.Options{
		Source:      src,
		Interpreter: interpreter(cfg),
		Interval:    cfg.Display.Interval(),
		Logger:      logger,
		OnEmotion: func(e theme.Emotion) {
			status(e)
			sound.PlayEmotion(e)
		},
	})
	return loop.Run(ctx)
}

// loadSettings reads the config file, then lets explicitly set flags override it
func loadSettings() (*config.Settings, error) {
	cfg := config.Default()
	path := *configFlag
	if path == "" && config.Exists(defaultConfigPath) {
		path = defaultConfigPath
	}
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "display":
			cfg.Display.Backend = *displayFlag
		case "serial":
			cfg.Command.Serial = *serialFlag
		case "baud":
			cfg.Command.Baud = *baudFlag
		case "prefix":
			cfg.Command.Prefix = *prefixFlag
		case "mood-file":
			cfg.Command.MoodFile = *moodFileFlag
		case "stdin":
			cfg.Command.Stdin = *stdinFlag
		case "schedule":
			cfg.Schedule.Enabled = *scheduleFlag
		case "eyes":
			cfg.Display.Eyes = *eyesFlag
		case "fps":
			cfg.Display.FPS = *fpsFlag
		case "sound":
			cfg.Audio.Enabled = *soundFlag
		case "seed":
			cfg.Display.Seed = *seedFlag
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return cfg, nil
}

// openDisplay returns one sink per eye and a status callback for the backend
func openDisplay(quit context.CancelFunc, cfg *config.Settings, logger *zap.SugaredLogger) (
	sinks []render.Sink, status func(theme.Emotion), cleanup func(), err error,
) {
	switch cfg.Display.Backend {
	case config.BackendGC9A01:
		panel, err := gc9a01.Open(cfg.GC9A01, cfg.Eye.Width, cfg.Eye.Height)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Infow("gc9a01 panel ready", "spi", cfg.GC9A01.SPIPort)
		cleanup = func() {
			if err := panel.Close(); err != nil {
				logger.Warnw("panel close", "error", err)
			}
		}
		return []render.Sink{panel}, func(theme.Emotion) {}, cleanup, nil

	default:
		scr, err := terminal.New(cfg.Display.Eyes)
		if err != nil {
			return nil, nil, nil, err
		}
		for i := 0; i < cfg.Display.Eyes; i++ {
			sinks = append(sinks, scr.Slot(i))
		}
		go pollKeys(scr, quit)
		status = func(e theme.Emotion) {
			scr.SetStatus(fmt.Sprintf(" mood-eye | %s | q quits", e))
		}
		return sinks, status, scr.Fini, nil
	}
}

// pollKeys handles quit and resize; PollEvent returns nil once the screen is finalized
func pollKeys(scr *terminal.Screen, quit context.CancelFunc) {
	for {
		switch ev := scr.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			scr.Sync()
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				quit()
				return
			}
		}
	}
}

func buildEyes(cfg *config.Settings, sinks []render.Sink) ([]*engine.Eye, error) {
	seed := cfg.Display.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	names := []string{"left", "right"}
	if len(sinks) == 1 {
		names = []string{"eye"}
	}

	eyes := make([]*engine.Eye, 0, len(sinks))
	for i, sink := range sinks {
		fb := render.NewFramebuffer(cfg.Eye.Width, cfg.Eye.Height, sink)
		// Distinct streams so the eyes blink and wander independently
		rng := vmath.NewFastRand(seed + uint64(i)*0x9E3779B97F4A7C15)
		e, err := engine.NewEye(names[i], cfg.Eye, rng, fb)
		if err != nil {
			return nil, err
		}
		eyes = append(eyes, e)
	}
	return eyes, nil
}
