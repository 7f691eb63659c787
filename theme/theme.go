// Package theme maps the closed set of emotions to the color pairs the eye is drawn with.
// The table is built once at init and is read-only afterwards, so it needs no locking.
package theme

import (
	"fmt"

	"github.com/lixenwraith/mood-eye/render"
)

// Emotion identifies the active mood
type Emotion uint8

const (
	Neutral Emotion = iota
	Happy
	Angry
	Flirty
	Bored
	emotionSentinel // unexported; equals EmotionCount
)

// EmotionCount is the size of the closed emotion set
const EmotionCount = int(emotionSentinel)

// emotionNames doubles as the wire vocabulary
var emotionNames = [EmotionCount]string{
	Neutral: "neutral",
	Happy:   "happy",
	Angry:   "angry",
	Flirty:  "flirty",
	Bored:   "bored",
}

func (e Emotion) String() string {
	if !e.Valid() {
		return fmt.Sprintf("emotion(%d)", uint8(e))
	}
	return emotionNames[e]
}

// Valid reports whether e is inside the closed set
func (e Emotion) Valid() bool {
	return int(e) < EmotionCount
}

// ParseEmotion matches the exact, case-sensitive wire token
func ParseEmotion(token string) (Emotion, bool) {
	for i, name := range emotionNames {
		if token == name {
			return Emotion(i), true
		}
	}
	return Neutral, false
}

// All returns every emotion in table order
func All() []Emotion {
	out := make([]Emotion, EmotionCount)
	for i := range out {
		out[i] = Emotion(i)
	}
	return out
}

// Theme is the color pair an emotion is drawn with
type Theme struct {
	Primary render.Color
	Accent  render.Color
}

// Fixed colors shared by every theme
var (
	Background = render.Black
	Glint      = render.White
)

// Primary, accent
var themeHex = [EmotionCount][2]string{
	Neutral: {"#00E5FF", "#1E6BFF"}, // cyan iris, cobalt ring
	Happy:   {"#FFD400", "#FF7A00"}, // yellow, orange
	Angry:   {"#FF1E1E", "#7A0000"}, // red, dark crimson
	Flirty:  {"#FF4FA3", "#B620E0"}, // pink, violet
	Bored:   {"#8A9BA8", "#3C4A57"}, // slate, gunmetal
}

var table [EmotionCount]Theme

func init() {
	for i, pair := range themeHex {
		primary, err := render.Hex(pair[0])
		if err != nil {
			panic(fmt.Sprintf("theme: bad primary for %s: %v", Emotion(i), err))
		}
		accent, err := render.Hex(pair[1])
		if err != nil {
			panic(fmt.Sprintf("theme: bad accent for %s: %v", Emotion(i), err))
		}
		table[i] = Theme{Primary: primary, Accent: accent}
	}
}

// Lookup returns the theme for e; values outside the set fall back to Neutral
func Lookup(e Emotion) Theme {
	if !e.Valid() {
		return table[Neutral]
	}
	return table[e]
}
