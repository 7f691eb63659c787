package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/mood-eye/theme"
)

// drain pulls s to the end and returns sample count and peak amplitude
func drain(s beep.Streamer) (total int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = max(peak, math.Abs(buf[i][0]), math.Abs(buf[i][1]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestOscillatorWaves(t *testing.T) {
	rate := beep.SampleRate(44100)
	for _, wave := range []WaveType{WaveSine, WaveSquare, WaveTriangle} {
		osc := NewOscillator(440, 100*time.Millisecond, wave, rate)
		n, peak := drain(osc)
		if n != rate.N(100*time.Millisecond) {
			t.Errorf("Wave %d: expected %d samples, got %d", wave, rate.N(100*time.Millisecond), n)
		}
		if peak > 1.0 || peak < 0.9 {
			t.Errorf("Wave %d: unexpected peak %f", wave, peak)
		}
		if osc.Err() != nil {
			t.Errorf("Expected no error, got %v", osc.Err())
		}
	}
}

func TestOscillatorDrained(t *testing.T) {
	osc := NewOscillator(440, time.Millisecond, WaveSine, beep.SampleRate(44100))
	drain(osc)
	n, ok := osc.Stream(make([][2]float64, 10))
	if n != 0 || ok {
		t.Errorf("Expected drained oscillator to return 0,false; got %d,%v", n, ok)
	}
}

func TestEnvelopeShape(t *testing.T) {
	rate := beep.SampleRate(1000)
	// Square at 0 Hz stays at +1 so the envelope is visible directly
	osc := NewOscillator(0, time.Second, WaveSquare, rate)
	env := NewEnvelope(osc, time.Second, 100*time.Millisecond, 200*time.Millisecond, rate)

	buf := make([][2]float64, 1000)
	n, _ := env.Stream(buf)
	if n != 1000 {
		t.Fatalf("Expected 1000 samples, got %d", n)
	}
	tests := []struct {
		i    int
		want float64
	}{
		{0, 0},
		{50, 0.5},
		{500, 1},
		{900, 0.5},
	}
	for _, tt := range tests {
		if math.Abs(buf[tt.i][0]-tt.want) > 1e-9 {
			t.Errorf("Sample %d: expected %f, got %f", tt.i, tt.want, buf[tt.i][0])
		}
	}
}

func TestChimeLengthAndVolume(t *testing.T) {
	cfg := DefaultConfig()
	rate := beep.SampleRate(cfg.SampleRate)

	for _, e := range theme.All() {
		t.Run(e.String(), func(t *testing.T) {
			want := 0
			for _, n := range chimes[e] {
				want += max(rate.N(time.Duration(float64(cfg.ChimeDuration())*n.length)), 1)
			}
			n, peak := drain(NewChime(e, cfg))
			if n != want {
				t.Errorf("Expected %d samples, got %d", want, n)
			}
			if peak > cfg.Volume+1e-9 {
				t.Errorf("Peak %f exceeds volume %f", peak, cfg.Volume)
			}
			if peak < 0.05 {
				t.Errorf("Chime is nearly silent, peak %f", peak)
			}
		})
	}
}

func TestChimeInvalidEmotion(t *testing.T) {
	cfg := DefaultConfig()
	a, _ := drain(NewChime(theme.Emotion(99), cfg))
	b, _ := drain(NewChime(theme.Neutral, cfg))
	if a != b {
		t.Errorf("Expected neutral chime for invalid emotion, got %d vs %d samples", a, b)
	}
}

func TestChimeMuted(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Volume = 0
	if _, peak := drain(NewChime(theme.Happy, cfg)); peak != 0 {
		t.Errorf("Expected silence at zero volume, got peak %f", peak)
	}
}

func TestNoteFreq(t *testing.T) {
	tests := []struct {
		midi int
		want float64
	}{
		{69, 440},
		{57, 220},
		{81, 880},
		{60, 261.6256},
		{-1, 0},
		{128, 0},
	}
	for _, tt := range tests {
		if got := NoteFreq(tt.midi); math.Abs(got-tt.want) > 1e-3 {
			t.Errorf("Note %d: expected %f, got %f", tt.midi, tt.want, got)
		}
	}
}
