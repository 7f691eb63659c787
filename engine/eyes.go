package engine

import (
	"github.com/pkg/errors"

	"github.com/lixenwraith/mood-eye/eye"
	"github.com/lixenwraith/mood-eye/render"
	"github.com/lixenwraith/mood-eye/vmath"
)

// Eye bundles one animated eye with the surface it renders into
// Eyes never share State, Composer or random source
type Eye struct {
	Name     string
	State    *eye.State
	Composer *eye.Composer
	Surface  render.Surface
}

// NewEye validates cfg and creates a centered, neutral eye drawing into surf
func NewEye(name string, cfg eye.Config, rng vmath.Rand, surf render.Surface) (*Eye, error) {
	w, h := surf.Size()
	if w != cfg.Width || h != cfg.Height {
		return nil, errors.Errorf("eye %s: surface is %dx%d, config wants %dx%d", name, w, h, cfg.Width, cfg.Height)
	}
	c, err := eye.NewComposer(cfg, rng)
	if err != nil {
		return nil, errors.Wrapf(err, "eye %s", name)
	}
	return &Eye{
		Name:     name,
		State:    eye.NewState(cfg),
		Composer: c,
		Surface:  surf,
	}, nil
}

// Render runs one composer tick
func (e *Eye) Render() error {
	return e.Composer.RenderTick(e.State, e.Surface)
}
