package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default settings invalid: %v", err)
	}
}

func TestParseOverridesDefaults(t *testing.T) {
	s, err := Parse(`
[display]
backend = "gc9a01"
fps = 60

[command]
serial = "/dev/serial0"
prefix = "MOOD:"

[schedule]
enabled = true
period = "5s"
moods = ["happy", "bored"]

[eye.blink]
chance = 0.05

[eye.iris]
radius = 40
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if s.Display.Backend != BackendGC9A01 || s.Display.FPS != 60 {
		t.Errorf("Unexpected display %+v", s.Display)
	}
	if s.Display.Eyes != 1 {
		t.Errorf("Expected default eyes kept, got %d", s.Display.Eyes)
	}
	if s.Command.Prefix != "MOOD:" || s.Command.Baud != 115200 {
		t.Errorf("Unexpected command %+v", s.Command)
	}
	if s.Schedule.Period != 5*time.Second || len(s.Schedule.Moods) != 2 {
		t.Errorf("Unexpected schedule %+v", s.Schedule)
	}
	if s.Eye.Blink.Chance != 0.05 || s.Eye.Blink.CloseStep != 25 {
		t.Errorf("Unexpected blink %+v", s.Eye.Blink)
	}
	if s.Eye.Iris.Radius != 40 || s.Eye.Iris.Pupil != 20 {
		t.Errorf("Unexpected iris %+v", s.Eye.Iris)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Expected valid settings, got %v", err)
	}
	if s.Display.Interval() != time.Second/60 {
		t.Errorf("Unexpected interval %s", s.Display.Interval())
	}
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse(`
[display]
backend = "terminal"
colour = "red"

[eye.motion]
wobble = 3
`)
	if err == nil {
		t.Fatal("Expected error for unknown keys")
	}
	msg := err.Error()
	if !strings.Contains(msg, "display.colour") || !strings.Contains(msg, "eye.motion.wobble") {
		t.Errorf("Expected unknown keys named, got %q", msg)
	}
}

func TestParseSyntaxError(t *testing.T) {
	if _, err := Parse("[display\nbackend ="); err == nil {
		t.Error("Expected syntax error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"backend", func(s *Settings) { s.Display.Backend = "hdmi" }},
		{"eyes", func(s *Settings) { s.Display.Eyes = 3 }},
		{"panel with two eyes", func(s *Settings) { s.Display.Backend = BackendGC9A01; s.Display.Eyes = 2 }},
		{"fps", func(s *Settings) { s.Display.FPS = -1 }},
		{"baud", func(s *Settings) { s.Command.Baud = 0 }},
		{"schedule period", func(s *Settings) { s.Schedule.Enabled = true; s.Schedule.Period = 0 }},
		{"schedule moods", func(s *Settings) { s.Schedule.Enabled = true; s.Schedule.Moods = []string{"sad"} }},
		{"schedule empty", func(s *Settings) { s.Schedule.Enabled = true; s.Schedule.Moods = nil }},
		{"audio", func(s *Settings) { s.Audio.Enabled = true; s.Audio.Volume = 2 }},
		{"log level", func(s *Settings) { s.Log.Level = "loud" }},
		{"log size", func(s *Settings) { s.Log.MaxSizeMB = 0 }},
		{"eye", func(s *Settings) { s.Eye.Motion.Easing = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Default()
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	s := Default()
	s.Display.Eyes = 2
	s.Command.MoodFile = "mood.txt"

	var buf bytes.Buffer
	if err := s.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	back, err := Parse(buf.String())
	if err != nil {
		t.Fatalf("Parse of written config: %v\n%s", err, buf.String())
	}
	if back.Display.Eyes != 2 || back.Command.MoodFile != "mood.txt" || back.Eye != s.Eye {
		t.Error("Written config did not reproduce settings")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mood-eye.toml")
	if err := os.WriteFile(path, []byte("[display]\neyes = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !Exists(path) {
		t.Fatal("Expected config file to exist")
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Display.Eyes != 2 {
		t.Errorf("Expected 2 eyes, got %d", s.Display.Eyes)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if Exists(t.TempDir()) {
		t.Error("A directory is not a config file")
	}
}
