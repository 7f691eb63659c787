package eye

import (
	"github.com/lixenwraith/mood-eye/render"
	"github.com/lixenwraith/mood-eye/theme"
	"github.com/lixenwraith/mood-eye/vmath"
)

// Segment is one spoke, From on the inner radius
type Segment struct {
	From, To vmath.Vec2
}

// Dot is one node of the inner ring
type Dot struct {
	At     vmath.Vec2
	Radius int
}

// Decoration generates the rotating spoke and node rings around the socket
// Geometry depends only on the phases passed in; buffers are reused across ticks
type Decoration struct {
	cfg    DecorationConfig
	spokes []Segment
	nodes  []Dot
}

func NewDecoration(cfg Config) *Decoration {
	return &Decoration{
		cfg:    cfg.Decoration,
		spokes: make([]Segment, cfg.Decoration.Spokes),
		nodes:  make([]Dot, cfg.Decoration.Nodes),
	}
}

// Spokes returns the spoke layer for the given phase
// The returned slice is overwritten by the next call
func (d *Decoration) Spokes(center vmath.Vec2, phase float64) []Segment {
	step := vmath.TwoPi / float64(max(d.cfg.Spokes, 1))
	for i := range d.spokes {
		a := phase + float64(i)*step
		d.spokes[i] = Segment{
			From: vmath.Polar(center, d.cfg.SpokeInner, a),
			To:   vmath.Polar(center, d.cfg.SpokeOuter, a+d.cfg.SpokeTwist),
		}
	}
	return d.spokes
}

// Nodes returns the node layer for the given phase
// The returned slice is overwritten by the next call
func (d *Decoration) Nodes(center vmath.Vec2, phase float64) []Dot {
	step := vmath.TwoPi / float64(max(d.cfg.Nodes, 1))
	for i := range d.nodes {
		d.nodes[i] = Dot{
			At:     vmath.Polar(center, d.cfg.NodeRadius, phase+float64(i)*step),
			Radius: d.cfg.NodeSize,
		}
	}
	return d.nodes
}

// Draw paints spokes in the primary color and nodes in the accent color
func (d *Decoration) Draw(surf render.Surface, center vmath.Vec2, rotation [2]float64, th theme.Theme) {
	for _, s := range d.Spokes(center, rotation[0]) {
		x0, y0 := s.From.Round()
		x1, y1 := s.To.Round()
		surf.DrawLine(x0, y0, x1, y1, th.Primary)
	}
	for _, n := range d.Nodes(center, rotation[1]) {
		x, y := n.At.Round()
		surf.FillCircle(x, y, n.Radius, th.Accent)
	}
}
