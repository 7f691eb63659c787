package audio

import (
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/mood-eye/theme"
)

// note is one segment of a chime, gliding between two MIDI notes
type note struct {
	from, to int     // MIDI note numbers, equal for a steady tone
	length   float64 // fraction of the chime duration
	wave     WaveType
}

// chimes gives each emotion a short recognisable motif
var chimes = [theme.EmotionCount][]note{
	theme.Neutral: {
		{from: 76, to: 76, length: 1, wave: WaveSine}, // E5
	},
	theme.Happy: {
		{from: 72, to: 72, length: 0.5, wave: WaveSine}, // C5
		{from: 79, to: 79, length: 0.5, wave: WaveSine}, // G5
	},
	theme.Angry: {
		{from: 45, to: 43, length: 1, wave: WaveSquare}, // A2 sagging to G2
	},
	theme.Flirty: {
		{from: 74, to: 81, length: 0.6, wave: WaveTriangle}, // D5 up to A5
		{from: 81, to: 81, length: 0.4, wave: WaveSine},
	},
	theme.Bored: {
		{from: 67, to: 67, length: 0.5, wave: WaveTriangle}, // G4
		{from: 62, to: 60, length: 0.5, wave: WaveTriangle}, // D4 down to C4
	},
}

// NewChime builds the motif for e, scaled to cfg volume and length
// Out-of-range emotions get the neutral motif, matching theme.Lookup
func NewChime(e theme.Emotion, cfg *Config) beep.Streamer {
	if !e.Valid() {
		e = theme.Neutral
	}
	rate := beep.SampleRate(cfg.SampleRate)
	total := cfg.ChimeDuration()

	parts := make([]beep.Streamer, 0, len(chimes[e]))
	for _, n := range chimes[e] {
		d := time.Duration(float64(total) * n.length)
		var osc beep.Streamer
		if n.from == n.to {
			osc = NewOscillator(NoteFreq(n.from), d, n.wave, rate)
		} else {
			osc = NewGlide(NoteFreq(n.from), NoteFreq(n.to), d, n.wave, rate)
		}
		parts = append(parts, NewEnvelope(osc, d, d/10, d/3, rate))
	}

	vol := cfg.Volume
	if chimes[e][0].wave == WaveSquare {
		// Square waves sound much louder at the same amplitude
		vol *= 0.4
	}
	return newVolume(beep.Seq(parts...), vol)
}
