package eye

import (
	"github.com/lixenwraith/mood-eye/vmath"
)

// Motion eases the iris toward its target and occasionally picks a new one
type Motion struct {
	cfg    MotionConfig
	center vmath.Vec2
}

func NewMotion(cfg Config) *Motion {
	return &Motion{cfg: cfg.Motion, center: Center(cfg)}
}

// Advance runs one tick: maybe resample the target, then ease toward it
// Consumes one random value, plus two more when a saccade fires
func (m *Motion) Advance(s *State, rng vmath.Rand) {
	if rng.Float64() < m.cfg.SaccadeChance {
		s.Target = m.center.Add(vmath.V2(
			vmath.Uniform(rng)*m.cfg.SaccadeX,
			vmath.Uniform(rng)*m.cfg.SaccadeY,
		))
	}
	s.Position = s.Position.Approach(s.Target, m.cfg.Easing)
}
