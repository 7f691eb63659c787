// Package config loads mood-eye settings from TOML on top of built-in defaults.
package config

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"

	"github.com/lixenwraith/mood-eye/audio"
	"github.com/lixenwraith/mood-eye/command"
	"github.com/lixenwraith/mood-eye/eye"
	"github.com/lixenwraith/mood-eye/gc9a01"
)

// Display backends
const (
	BackendTerminal = "terminal"
	BackendGC9A01   = "gc9a01"
)

// Settings is the whole configuration file
type Settings struct {
	Display  DisplayConfig  `toml:"display"`
	GC9A01   gc9a01.Config  `toml:"gc9a01"`
	Command  CommandConfig  `toml:"command"`
	Schedule ScheduleConfig `toml:"schedule"`
	Audio    audio.Config   `toml:"audio"`
	Log      LogConfig      `toml:"log"`
	Eye      eye.Config     `toml:"eye"`
}

type DisplayConfig struct {
	Backend string `toml:"backend"`
	Eyes    int    `toml:"eyes"` // 1 or 2
	FPS     int    `toml:"fps"`  // 0 renders as fast as the backend allows
	Seed    uint64 `toml:"seed"` // 0 seeds from the clock
}

type CommandConfig struct {
	Serial   string `toml:"serial"` // UART device, empty disables
	Baud     int    `toml:"baud"`
	Prefix   string `toml:"prefix"`    // e.g. "MOOD:"
	MoodFile string `toml:"mood_file"` // watched text file, empty disables
	Stdin    bool   `toml:"stdin"`
}

// ScheduleConfig cycles emotions when no host is attached
type ScheduleConfig struct {
	Enabled bool          `toml:"enabled"`
	Period  time.Duration `toml:"period"`
	Moods   []string      `toml:"moods"` // a file listing moods replaces the default cycle
}

type LogConfig struct {
	File      string `toml:"file"`  // empty discards logs
	Level     string `toml:"level"` // debug, info, warn, error
	MaxSizeMB int    `toml:"max_size_mb"`
}

// Default returns the settings used when no file is given
func Default() *Settings {
	return &Settings{
		Display: DisplayConfig{
			Backend: BackendTerminal,
			Eyes:    1,
			FPS:     30,
		},
		GC9A01: gc9a01.DefaultConfig(),
		Command: CommandConfig{
			Baud: command.DefaultBaud,
		},
		Schedule: ScheduleConfig{
			Period: 30 * time.Second,
			Moods:  []string{"happy", "flirty", "angry", "bored", "neutral"},
		},
		Audio: *audio.DefaultConfig(),
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
		Eye: eye.DefaultConfig(),
	}
}

// Load decodes path over the defaults; keys the file has but Settings lacks are errors
func Load(path string) (*Settings, error) {
	s := Default()
	md, err := toml.DecodeFile(path, s)
	if err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, errors.Wrapf(err, "load config %s", path)
	}
	return s, nil
}

// Parse decodes TOML text over the defaults
func Parse(data string) (*Settings, error) {
	s := Default()
	md, err := toml.Decode(data, s)
	if err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	return s, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return errors.Errorf("unknown config keys: %s", strings.Join(names, ", "))
}

// Write encodes s as TOML
func (s *Settings) Write(w io.Writer) error {
	return errors.Wrap(toml.NewEncoder(w).Encode(s), "encode config")
}

// Validate checks every section
func (s *Settings) Validate() error {
	switch s.Display.Backend {
	case BackendTerminal, BackendGC9A01:
	default:
		return errors.Errorf("display.backend must be %q or %q, got %q", BackendTerminal, BackendGC9A01, s.Display.Backend)
	}
	if s.Display.Eyes < 1 || s.Display.Eyes > 2 {
		return errors.Errorf("display.eyes must be 1 or 2, got %d", s.Display.Eyes)
	}
	if s.Display.Backend == BackendGC9A01 && s.Display.Eyes != 1 {
		return errors.New("gc9a01 backend drives a single panel, set display.eyes = 1")
	}
	if s.Display.FPS < 0 {
		return errors.Errorf("display.fps must be non-negative, got %d", s.Display.FPS)
	}

	if s.Command.Baud <= 0 {
		return errors.Errorf("command.baud must be positive, got %d", s.Command.Baud)
	}

	if s.Schedule.Enabled {
		if s.Schedule.Period <= 0 {
			return errors.Errorf("schedule.period must be positive, got %s", s.Schedule.Period)
		}
		if _, err := command.ParseMoods(s.Schedule.Moods); err != nil {
			return errors.Wrap(err, "schedule.moods")
		}
		if len(s.Schedule.Moods) == 0 {
			return errors.New("schedule.moods must not be empty")
		}
	}

	if s.Audio.Enabled {
		if err := s.Audio.Validate(); err != nil {
			return err
		}
	}

	if _, err := zapcore.ParseLevel(s.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if s.Log.MaxSizeMB <= 0 {
		return errors.Errorf("log.max_size_mb must be positive, got %d", s.Log.MaxSizeMB)
	}

	return errors.Wrap(s.Eye.Validate(), "eye")
}

// Interval returns the frame period for the configured rate
func (d DisplayConfig) Interval() time.Duration {
	if d.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(d.FPS)
}

// Exists reports whether path names a readable file, used to make -config optional
func Exists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
