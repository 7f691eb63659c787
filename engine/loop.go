// Package engine drives the eyes: it polls commands, applies emotions and renders
// one frame per eye per tick on a single goroutine.
package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/lixenwraith/mood-eye/command"
	"github.com/lixenwraith/mood-eye/theme"
)

// DefaultStatsInterval is how often frame statistics are logged
const DefaultStatsInterval = 10 * time.Second

// Options configures a Loop, zero values are usable
type Options struct {
	Source      command.Source // nil means no external commands
	Interpreter command.Interpreter
	Clock       clock.Clock   // defaults to the wall clock
	Interval    time.Duration // frame period, <= 0 renders as fast as the backend allows

	StatsInterval time.Duration // <= 0 uses DefaultStatsInterval
	Logger        *zap.SugaredLogger

	// OnEmotion is called on the loop goroutine whenever the emotion actually changes
	OnEmotion func(theme.Emotion)
}

// Loop owns the eyes; only its goroutine may touch their state
type Loop struct {
	eyes []*Eye
	opts Options
	log  *zap.SugaredLogger
	clk  clock.Clock

	emotion theme.Emotion

	frames     atomic.Uint64
	flushFails atomic.Uint64
	commands   atomic.Uint64
	ignored    atomic.Uint64

	statsAt     time.Time
	statsFrames uint64
}

// Stats is a snapshot of loop counters
type Stats struct {
	Frames     uint64 // ticks completed
	FlushFails uint64 // per-eye flush errors
	Commands   uint64 // recognized commands
	Ignored    uint64 // lines that were not a known emotion
}

func NewLoop(eyes []*Eye, opts Options) *Loop {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.StatsInterval <= 0 {
		opts.StatsInterval = DefaultStatsInterval
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop().Sugar()
	}
	l := &Loop{
		eyes:    eyes,
		opts:    opts,
		log:     opts.Logger,
		clk:     opts.Clock,
		emotion: theme.Neutral,
	}
	l.statsAt = l.clk.Now()
	return l
}

// Emotion returns the emotion shared by all eyes
func (l *Loop) Emotion() theme.Emotion {
	return l.emotion
}

// SetEmotion applies e to every eye, used by commands and interactive front ends
func (l *Loop) SetEmotion(e theme.Emotion) {
	for _, ey := range l.eyes {
		ey.State.SetEmotion(e)
	}
	if e == l.emotion {
		return
	}
	l.emotion = e
	l.log.Infow("emotion changed", "emotion", e.String())
	if l.opts.OnEmotion != nil {
		l.opts.OnEmotion(e)
	}
}

// Blink starts a blink on every open eye
func (l *Loop) Blink() {
	for _, ey := range l.eyes {
		ey.State.Blink.Trigger()
	}
}

// Eyes returns the managed eyes in render order
func (l *Loop) Eyes() []*Eye {
	return l.eyes
}

func (l *Loop) Stats() Stats {
	return Stats{
		Frames:     l.frames.Load(),
		FlushFails: l.flushFails.Load(),
		Commands:   l.commands.Load(),
		Ignored:    l.ignored.Load(),
	}
}

// Tick applies at most one pending command and renders every eye once
func (l *Loop) Tick() {
	l.pollCommand()

	for _, ey := range l.eyes {
		if err := ey.Render(); err != nil {
			l.flushFails.Add(1)
			l.log.Warnw("flush failed", "eye", ey.Name, "error", err)
		}
	}
	l.frames.Add(1)
	l.logStats()
}

func (l *Loop) pollCommand() {
	if l.opts.Source == nil {
		return
	}
	line, ok := l.opts.Source.Poll()
	if !ok {
		return
	}
	e, ok := l.opts.Interpreter.Interpret([]byte(line))
	if !ok {
		l.ignored.Add(1)
		l.log.Debugw("ignoring unknown command", "line", line)
		return
	}
	l.commands.Add(1)
	l.SetEmotion(e)
}

func (l *Loop) logStats() {
	now := l.clk.Now()
	elapsed := now.Sub(l.statsAt)
	if elapsed < l.opts.StatsInterval {
		return
	}
	frames := l.frames.Load()
	fps := float64(frames-l.statsFrames) / elapsed.Seconds()
	l.log.Infow("frame stats",
		"frames", frames,
		"fps", fps,
		"flush_fails", l.flushFails.Load(),
		"emotion", l.emotion.String(),
	)
	l.statsAt = now
	l.statsFrames = frames
}

// Run ticks until ctx is cancelled
func (l *Loop) Run(ctx context.Context) error {
	l.log.Infow("render loop started", "eyes", len(l.eyes), "interval", l.opts.Interval)
	defer l.log.Infow("render loop stopped", "frames", l.frames.Load())

	if l.opts.Interval <= 0 {
		for {
			if err := ctx.Err(); err != nil {
				return nil
			}
			l.Tick()
		}
	}

	t := l.clk.Ticker(l.opts.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			l.Tick()
		}
	}
}
