package eye

import (
	"errors"
	"testing"

	"github.com/lixenwraith/mood-eye/command"
	"github.com/lixenwraith/mood-eye/render"
	"github.com/lixenwraith/mood-eye/theme"
	"github.com/lixenwraith/mood-eye/vmath"
)

func newTestEye(t *testing.T, rng vmath.Rand) (*Composer, *State, *render.Framebuffer, *render.Capture) {
	t.Helper()
	cfg := DefaultConfig()
	c, err := NewComposer(cfg, rng)
	if err != nil {
		t.Fatalf("NewComposer: %v", err)
	}
	capture := &render.Capture{}
	fb := render.NewFramebuffer(cfg.Width, cfg.Height, capture)
	return c, NewState(cfg), fb, capture
}

func TestAngryCommandOneTick(t *testing.T) {
	c, s, fb, capture := newTestEye(t, vmath.Const(0.999))

	var in command.Interpreter
	e, ok := in.Interpret([]byte("angry\n"))
	if !ok {
		t.Fatal("Expected angry to be recognized")
	}
	s.SetEmotion(e)

	if err := c.RenderTick(s, fb); err != nil {
		t.Fatalf("RenderTick: %v", err)
	}

	if s.Theme != theme.Lookup(theme.Angry) {
		t.Errorf("Expected angry theme, got %+v", s.Theme)
	}
	if s.Rotation != [2]float64{0.02, -0.015} {
		t.Errorf("Expected rotation (0.02,-0.015), got %v", s.Rotation)
	}
	if s.Blink.Occlusion != 0 || s.Blink.Phase != BlinkOpen {
		t.Errorf("Expected open eye, got %d/%s", s.Blink.Occlusion, s.Blink.Phase)
	}
	if s.Position != vmath.V2(120, 120) {
		t.Errorf("Expected position (120,120), got %v", s.Position)
	}
	if capture.Frames() != 1 {
		t.Errorf("Expected exactly one flush, got %d", capture.Frames())
	}
}

func TestRenderTickPixels(t *testing.T) {
	c, s, fb, capture := newTestEye(t, vmath.Const(0.999))
	s.SetEmotion(theme.Happy)
	th := theme.Lookup(theme.Happy)

	if err := c.RenderTick(s, fb); err != nil {
		t.Fatalf("RenderTick: %v", err)
	}

	tests := []struct {
		name string
		x, y int
		want render.Color
	}{
		{"iris", 160, 120, th.Primary},
		{"pupil", 120, 120, theme.Background},
		{"ring", 154, 120, th.Accent},
		{"glint", 106, 106, theme.Glint},
		{"first node", 204, 119, th.Accent},
		{"corner", 0, 0, theme.Background},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := capture.At(tt.x, tt.y); got != tt.want {
				t.Errorf("Expected %04x at (%d,%d), got %04x", tt.want, tt.x, tt.y, got)
			}
		})
	}
}

func TestEyelidsDrawnLast(t *testing.T) {
	c, s, fb, capture := newTestEye(t, vmath.Const(0.999))
	s.Blink = Blink{Phase: BlinkClosing, Occlusion: 50}
	// Pull the iris up into the lid so only ordering keeps it hidden
	s.Position = vmath.V2(120, 95)
	s.Target = s.Position

	if err := c.RenderTick(s, fb); err != nil {
		t.Fatalf("RenderTick: %v", err)
	}
	if s.Blink.Occlusion != 75 {
		t.Fatalf("Expected occlusion 75, got %d", s.Blink.Occlusion)
	}

	cfg := c.Config()
	for y := 0; y < cfg.Height; y++ {
		covered := y < 75 || y >= cfg.Height-75
		if !covered {
			continue
		}
		for x := 0; x < cfg.Width; x++ {
			if got := capture.At(x, y); got != theme.Background {
				t.Fatalf("Expected background at (%d,%d) under the lid, got %04x", x, y, got)
			}
		}
	}
	// Rows between the lids still show the iris
	if got := capture.At(120, 130); got != s.Theme.Primary {
		t.Errorf("Expected iris below the top lid, got %04x", got)
	}
}

func TestFlushErrorReturned(t *testing.T) {
	errBus := errors.New("bus down")
	cfg := DefaultConfig()
	c, err := NewComposer(cfg, vmath.Const(0.999))
	if err != nil {
		t.Fatal(err)
	}
	s := NewState(cfg)
	fb := render.NewFramebuffer(cfg.Width, cfg.Height, render.SinkFunc(func([]render.Color, int, int) error {
		return errBus
	}))

	if err := c.RenderTick(s, fb); err != errBus {
		t.Errorf("Expected sink error unchanged, got %v", err)
	}
	// The tick still advanced
	if s.Rotation[0] != 0.02 {
		t.Errorf("Expected rotation to advance despite flush error, got %v", s.Rotation)
	}
}

func TestNewComposerRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Iris.Pupil = cfg.Iris.Radius
	if _, err := NewComposer(cfg, vmath.Const(0)); err == nil {
		t.Error("Expected error for pupil as large as iris")
	}
}

func TestStatesAreIndependent(t *testing.T) {
	cfg := DefaultConfig()
	c1, _ := NewComposer(cfg, vmath.NewFastRand(1))
	c2, _ := NewComposer(cfg, vmath.NewFastRand(1))
	s1, s2 := NewState(cfg), NewState(cfg)
	fb := render.NewFramebuffer(cfg.Width, cfg.Height, &render.Capture{})

	s1.SetEmotion(theme.Bored)
	for i := 0; i < 100; i++ {
		_ = c1.RenderTick(s1, fb)
	}
	for i := 0; i < 100; i++ {
		_ = c2.RenderTick(s2, fb)
	}
	// Same seed, same tick count: only the emotion differs
	if s1.Position != s2.Position || s1.Blink != s2.Blink || s1.Rotation != s2.Rotation {
		t.Error("Expected identical animation for identical seeds")
	}
	if s2.Emotion != theme.Neutral {
		t.Errorf("Second eye emotion leaked: %s", s2.Emotion)
	}
}
