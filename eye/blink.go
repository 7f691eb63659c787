package eye

import (
	"github.com/lixenwraith/mood-eye/vmath"
)

// BlinkPhase is the eyelid state
type BlinkPhase uint8

const (
	BlinkOpen    BlinkPhase = iota // occlusion == 0
	BlinkClosing                   // occlusion rising toward max
	BlinkOpening                   // occlusion falling toward 0
)

func (p BlinkPhase) String() string {
	switch p {
	case BlinkOpen:
		return "open"
	case BlinkClosing:
		return "closing"
	case BlinkOpening:
		return "opening"
	default:
		return "unknown"
	}
}

// Blink is the eyelid state machine, Occlusion is the band height in pixels
type Blink struct {
	Phase     BlinkPhase
	Occlusion int
}

// IsBlinking reports whether the lids are closing
func (b Blink) IsBlinking() bool {
	return b.Phase == BlinkClosing
}

// Trigger starts a blink now if the eye is fully open
func (b *Blink) Trigger() {
	if b.Phase == BlinkOpen {
		b.Phase = BlinkClosing
	}
}

// Step advances one tick. Closing does not hold at full closure: the tick that reaches
// maxOcclusion also flips to opening. Consumes one random value only while open
func (b *Blink) Step(cfg BlinkConfig, maxOcclusion int, rng vmath.Rand) {
	if b.Phase == BlinkOpen && rng.Float64() < cfg.Chance {
		b.Phase = BlinkClosing
	}

	switch b.Phase {
	case BlinkClosing:
		b.Occlusion += cfg.CloseStep
		if b.Occlusion >= maxOcclusion {
			b.Occlusion = maxOcclusion
			b.Phase = BlinkOpening
		}
	case BlinkOpening:
		b.Occlusion -= cfg.OpenStep
		if b.Occlusion <= 0 {
			b.Occlusion = 0
			b.Phase = BlinkOpen
		}
	}
}
