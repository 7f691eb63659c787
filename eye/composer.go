package eye

import (
	"github.com/lixenwraith/mood-eye/render"
	"github.com/lixenwraith/mood-eye/theme"
	"github.com/lixenwraith/mood-eye/vmath"
)

// Composer renders one complete frame per tick into an offscreen surface and flushes it
type Composer struct {
	cfg    Config
	center vmath.Vec2
	motion *Motion
	deco   *Decoration
	rng    vmath.Rand
}

// NewComposer validates cfg once so that RenderTick never has to
func NewComposer(cfg Config, rng vmath.Rand) (*Composer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Composer{
		cfg:    cfg,
		center: Center(cfg),
		motion: NewMotion(cfg),
		deco:   NewDecoration(cfg),
		rng:    rng,
	}, nil
}

// Config returns the validated configuration
func (c *Composer) Config() Config {
	return c.cfg
}

// RenderTick composes and flushes one frame. Step order matters:
// decoration uses the pre-motion theme and position, the iris the post-motion position,
// and the eyelids are drawn last so they cover everything in their rows
func (c *Composer) RenderTick(s *State, surf render.Surface) error {
	surf.Clear(theme.Background)

	s.Rotation[0] += c.cfg.Decoration.SpinPrimary
	s.Rotation[1] += c.cfg.Decoration.SpinAccent

	c.deco.Draw(surf, c.center, s.Rotation, s.Theme)

	c.motion.Advance(s, c.rng)
	c.drawIris(surf, s)

	s.Blink.Step(c.cfg.Blink, c.cfg.MaxBlink(), c.rng)
	if occ := s.Blink.Occlusion; occ > 0 {
		surf.FillRect(0, 0, c.cfg.Width, occ, theme.Background)
		surf.FillRect(0, c.cfg.Height-occ, c.cfg.Width, occ, theme.Background)
	}

	return surf.Flush()
}

func (c *Composer) drawIris(surf render.Surface, s *State) {
	ic := c.cfg.Iris
	x, y := s.Position.Round()

	surf.FillCircle(x, y, ic.Radius, s.Theme.Primary)
	surf.FillCircle(x, y, ic.Pupil, theme.Background)
	surf.DrawCircle(x, y, ic.Ring, s.Theme.Accent)
	surf.FillCircle(x+ic.GlintX, y+ic.GlintY, ic.GlintSize, theme.Glint)

	// Shard spins faster than the spokes, independent of gaze
	a := ic.ShardSpin * s.Rotation[0]
	x0, y0 := vmath.Polar(s.Position, ic.ShardRadius, a).Round()
	x1, y1 := vmath.Polar(s.Position, ic.ShardRadius+ic.ShardLength, a).Round()
	surf.DrawLine(x0, y0, x1, y1, s.Theme.Accent)
}
