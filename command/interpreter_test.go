package command

import (
	"testing"

	"github.com/lixenwraith/mood-eye/theme"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		raw  string
		want theme.Emotion
		ok   bool
	}{
		{"happy", theme.Happy, true},
		{"happy\n", theme.Happy, true},
		{"happy\r\n", theme.Happy, true},
		{"  angry \t", theme.Angry, true},
		{"flirty", theme.Flirty, true},
		{"bored", theme.Bored, true},
		{"neutral", theme.Neutral, true},
		{"", theme.Neutral, false},
		{"\n", theme.Neutral, false},
		{"bogus", theme.Neutral, false},
		{"HAPPY", theme.Neutral, false},
		{"Happy", theme.Neutral, false},
		{"happy sad", theme.Neutral, false},
		{"MOOD:happy", theme.Neutral, false},
	}

	var in Interpreter
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := in.Interpret([]byte(tt.raw))
			if ok != tt.ok {
				t.Fatalf("Expected ok=%v, got %v", tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestInterpretPrefix(t *testing.T) {
	in := Interpreter{Prefix: "MOOD:"}
	tests := []struct {
		raw  string
		want theme.Emotion
		ok   bool
	}{
		{"MOOD:flirty\n", theme.Flirty, true},
		{"MOOD: bored", theme.Bored, true},
		{"angry", theme.Angry, true},
		{"MOOD:", theme.Neutral, false},
		{"MOOD:sad", theme.Neutral, false},
		{"mood:happy", theme.Neutral, false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := in.Interpret([]byte(tt.raw))
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("Expected %s/%v, got %s/%v", tt.want, tt.ok, got, ok)
			}
		})
	}
}

func TestInterpretMatchesNewlineFree(t *testing.T) {
	var in Interpreter
	for _, e := range theme.All() {
		a, okA := in.Interpret([]byte(e.String()))
		b, okB := in.Interpret([]byte(e.String() + "\n"))
		if a != b || okA != okB || !okA {
			t.Errorf("Terminator changed result for %s", e)
		}
	}
}
