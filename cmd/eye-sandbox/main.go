package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mood-eye/engine"
	"github.com/lixenwraith/mood-eye/eye"
	"github.com/lixenwraith/mood-eye/logging"
	"github.com/lixenwraith/mood-eye/render"
	"github.com/lixenwraith/mood-eye/terminal"
	"github.com/lixenwraith/mood-eye/theme"
	"github.com/lixenwraith/mood-eye/vmath"
)

var (
	seedFlag  = flag.Uint64("seed", 1, "Random seed")
	eyesFlag  = flag.Int("eyes", 1, "Number of eyes: 1 or 2")
	fpsFlag   = flag.Int("fps", 30, "Frame rate")
	debugFlag = flag.Bool("debug", false, "Debug logging to logs/mood-eye.log")
)

// sandbox is the interactive state layered over the render loop
type sandbox struct {
	loop   *engine.Loop
	scr    *terminal.Screen
	paused bool
	tick   int
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\n\x1b[31mEYE-SANDBOX CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	flag.Parse()

	if *eyesFlag < 1 || *eyesFlag > 2 || *fpsFlag <= 0 {
		fmt.Fprintln(os.Stderr, "eye-sandbox: -eyes must be 1 or 2 and -fps positive")
		os.Exit(2)
	}

	logPath := ""
	if *debugFlag {
		logPath = logging.DefaultPath
	}
	logger, closeLog, err := logging.Setup(logPath, "debug", 10<<20)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eye-sandbox: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	scr, err := terminal.New(*eyesFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eye-sandbox: %v\n", err)
		os.Exit(1)
	}
	defer scr.Fini()

	cfg := eye.DefaultConfig()
	eyes := make([]*engine.Eye, 0, *eyesFlag)
	for i := 0; i < *eyesFlag; i++ {
		fb := render.NewFramebuffer(cfg.Width, cfg.Height, scr.Slot(i))
		e, err := engine.NewEye(fmt.Sprintf("eye%d", i), cfg, vmath.NewFastRand(*seedFlag+uint64(i)), fb)
		if err != nil {
			panic(err)
		}
		eyes = append(eyes, e)
	}

	sb := &sandbox{
		loop: engine.NewLoop(eyes, engine.Options{Logger: logger}),
		scr:  scr,
	}

	// Wake PollEvent once per frame, as the bestiary sandbox does with its ticker
	ticker := time.NewTicker(time.Second / time.Duration(*fpsFlag))
	defer ticker.Stop()
	go func() {
		for range ticker.C {
			scr.PostEvent(tcell.NewEventInterrupt(nil))
		}
	}()

	sb.frame()
	for {
		switch ev := scr.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventInterrupt:
			if !sb.paused {
				sb.frame()
			}
		case *tcell.EventResize:
			scr.Sync()
			sb.status()
		case *tcell.EventKey:
			if !sb.handleKey(ev) {
				return
			}
			sb.status()
		}
	}
}

func (sb *sandbox) frame() {
	sb.loop.Tick()
	sb.tick++
	sb.status()
}

// handleKey returns false to quit
func (sb *sandbox) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch r := ev.Rune(); {
	case r == 'q' || r == 'Q':
		return false
	case r >= '1' && r <= '0'+rune(theme.EmotionCount):
		sb.loop.SetEmotion(theme.All()[r-'1'])
	case r == 'b':
		sb.loop.Blink()
	case r == ' ':
		sb.paused = !sb.paused
	case r == '.' && sb.paused:
		// Single step while paused
		sb.frame()
	}
	return true
}

func (sb *sandbox) status() {
	e := sb.loop.Eyes()[0].State
	state := "run"
	if sb.paused {
		state = "paused"
	}
	sb.scr.SetStatus(fmt.Sprintf(
		" %-7s | tick %6d | %-6s | lid %-7s %3d | gaze %5.1f,%5.1f to go %4.1f | 1-%d mood  b blink  space pause  . step  q quit",
		sb.loop.Emotion(), sb.tick, state, e.Blink.Phase, e.Blink.Occlusion,
		e.Position.X, e.Position.Y, e.Position.Dist(e.Target), theme.EmotionCount,
	))
}
