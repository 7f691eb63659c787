package audio

import (
	"time"

	"github.com/pkg/errors"
)

// Config controls the mood-change chime
type Config struct {
	Enabled    bool    `toml:"enabled"`
	Volume     float64 `toml:"volume"` // 0.0-1.0
	SampleRate int     `toml:"sample_rate"`
	ChimeMs    int     `toml:"chime_ms"`
}

// DefaultConfig is off until asked for; a display without speakers should not try
func DefaultConfig() *Config {
	return &Config{
		Enabled:    false,
		Volume:     0.5,
		SampleRate: 44100,
		ChimeMs:    240,
	}
}

// ChimeDuration returns the total chime length
func (c *Config) ChimeDuration() time.Duration {
	return time.Duration(c.ChimeMs) * time.Millisecond
}

// Validate checks ranges before the speaker is opened
func (c *Config) Validate() error {
	if c.Volume < 0 || c.Volume > 1 {
		return errors.Errorf("audio volume must be in [0,1], got %g", c.Volume)
	}
	if c.SampleRate < 8000 {
		return errors.Errorf("audio sample rate too low: %d", c.SampleRate)
	}
	if c.ChimeMs <= 0 {
		return errors.Errorf("audio chime length must be positive, got %dms", c.ChimeMs)
	}
	return nil
}
