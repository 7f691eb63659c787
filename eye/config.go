package eye

import (
	"github.com/pkg/errors"
)

// Config holds every tunable of the eye; hardware variants differ only here
type Config struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`

	Motion     MotionConfig     `toml:"motion"`
	Blink      BlinkConfig      `toml:"blink"`
	Decoration DecorationConfig `toml:"decoration"`
	Iris       IrisConfig       `toml:"iris"`
}

// MotionConfig controls easing and saccade re-targeting
type MotionConfig struct {
	Easing        float64 `toml:"easing"`         // fraction of remaining offset covered per tick, (0,1)
	SaccadeChance float64 `toml:"saccade_chance"` // per tick
	SaccadeX      float64 `toml:"saccade_x"`      // max horizontal offset from center
	SaccadeY      float64 `toml:"saccade_y"`      // max vertical offset from center
}

// BlinkConfig controls eyelid timing, all in ticks and pixels
type BlinkConfig struct {
	Chance    float64 `toml:"chance"`
	CloseStep int     `toml:"close_step"`
	OpenStep  int     `toml:"open_step"`
}

// DecorationConfig describes the two rotating ornament layers
type DecorationConfig struct {
	Spokes      int     `toml:"spokes"`
	SpokeInner  float64 `toml:"spoke_inner"`
	SpokeOuter  float64 `toml:"spoke_outer"`
	SpokeTwist  float64 `toml:"spoke_twist"` // radians the outer end trails the inner end
	Nodes       int     `toml:"nodes"`
	NodeRadius  float64 `toml:"node_radius"`
	NodeSize    int     `toml:"node_size"`
	SpinPrimary float64 `toml:"spin_primary"` // spoke layer radians per tick
	SpinAccent  float64 `toml:"spin_accent"`  // node layer radians per tick
}

// IrisConfig sizes the iris, pupil and highlights, in pixels
type IrisConfig struct {
	Radius      int     `toml:"radius"`
	Pupil       int     `toml:"pupil"`
	Ring        int     `toml:"ring"`
	GlintX      int     `toml:"glint_x"`
	GlintY      int     `toml:"glint_y"`
	GlintSize   int     `toml:"glint_size"`
	ShardRadius float64 `toml:"shard_radius"`
	ShardLength float64 `toml:"shard_length"`
	ShardSpin   float64 `toml:"shard_spin"` // multiple of the spoke phase
}

// DefaultConfig returns the round 240x240 panel setup
func DefaultConfig() Config {
	return Config{
		Width:  240,
		Height: 240,
		Motion: MotionConfig{
			Easing:        0.12,
			SaccadeChance: 0.035,
			SaccadeX:      40,
			SaccadeY:      25,
		},
		Blink: BlinkConfig{
			Chance:    0.015,
			CloseStep: 25,
			OpenStep:  15,
		},
		Decoration: DecorationConfig{
			Spokes:      6,
			SpokeInner:  96,
			SpokeOuter:  114,
			SpokeTwist:  0.3,
			Nodes:       10,
			NodeRadius:  84,
			NodeSize:    3,
			SpinPrimary: 0.02,
			SpinAccent:  -0.015,
		},
		Iris: IrisConfig{
			Radius:      46,
			Pupil:       20,
			Ring:        34,
			GlintX:      -14,
			GlintY:      -14,
			GlintSize:   6,
			ShardRadius: 24,
			ShardLength: 8,
			ShardSpin:   3,
		},
	}
}

// MaxBlink is the eyelid travel from each edge, half the canvas height
func (c Config) MaxBlink() int {
	return c.Height / 2
}

// Validate rejects geometry the per-tick code assumes never happens
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("canvas size must be positive, got %dx%d", c.Width, c.Height)
	}

	m := c.Motion
	if m.Easing <= 0 || m.Easing >= 1 {
		return errors.Errorf("motion.easing must be in (0,1), got %g", m.Easing)
	}
	if m.SaccadeChance < 0 || m.SaccadeChance > 1 {
		return errors.Errorf("motion.saccade_chance must be in [0,1], got %g", m.SaccadeChance)
	}
	if m.SaccadeX < 0 || m.SaccadeY < 0 {
		return errors.Errorf("motion saccade range must be non-negative, got %g,%g", m.SaccadeX, m.SaccadeY)
	}

	b := c.Blink
	if b.Chance < 0 || b.Chance > 1 {
		return errors.Errorf("blink.chance must be in [0,1], got %g", b.Chance)
	}
	if b.CloseStep <= 0 || b.OpenStep <= 0 {
		return errors.Errorf("blink steps must be positive, got close=%d open=%d", b.CloseStep, b.OpenStep)
	}

	d := c.Decoration
	if d.Spokes < 0 || d.Nodes < 0 || d.NodeSize < 0 {
		return errors.New("decoration counts and sizes must be non-negative")
	}
	if d.Spokes > 0 && (d.SpokeInner < 0 || d.SpokeInner >= d.SpokeOuter) {
		return errors.Errorf("decoration spokes need 0 <= spoke_inner < spoke_outer, got %g,%g", d.SpokeInner, d.SpokeOuter)
	}
	if d.NodeRadius < 0 {
		return errors.Errorf("decoration.node_radius must be non-negative, got %g", d.NodeRadius)
	}

	i := c.Iris
	if i.Radius <= 0 {
		return errors.Errorf("iris.radius must be positive, got %d", i.Radius)
	}
	if i.Pupil < 0 || i.Pupil >= i.Radius {
		return errors.Errorf("iris.pupil must be in [0, radius), got %d", i.Pupil)
	}
	if i.Ring < 0 || i.Ring > i.Radius {
		return errors.Errorf("iris.ring must be in [0, radius], got %d", i.Ring)
	}
	if i.GlintSize < 0 || i.ShardRadius < 0 || i.ShardLength < 0 {
		return errors.New("iris highlight sizes must be non-negative")
	}

	// The iris must stay inside the round panel at the widest saccade
	socket := float64(min(c.Width, c.Height)) / 2
	if max(m.SaccadeX, m.SaccadeY)+float64(i.Radius) > socket {
		return errors.Errorf("iris radius %d plus saccade range %g exceeds socket radius %g",
			i.Radius, max(m.SaccadeX, m.SaccadeY), socket)
	}
	return nil
}
