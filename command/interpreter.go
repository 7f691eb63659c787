// Package command turns raw line input into emotion changes. Sources deliver lines
// without blocking the render loop; the Interpreter decides what they mean.
package command

import (
	"bytes"

	"github.com/lixenwraith/mood-eye/theme"
)

// Interpreter parses one received line into an emotion
// Prefix, when set, is stripped from lines that carry it; lines without it are still accepted
type Interpreter struct {
	Prefix string
}

// Interpret trims whitespace and line terminators and matches the result exactly
// Unknown or empty input reports false and must leave the current emotion unchanged
func (in Interpreter) Interpret(raw []byte) (theme.Emotion, bool) {
	token := bytes.TrimSpace(raw)
	if in.Prefix != "" {
		token = bytes.TrimPrefix(token, []byte(in.Prefix))
		token = bytes.TrimSpace(token)
	}
	if len(token) == 0 {
		return theme.Neutral, false
	}
	return theme.ParseEmotion(string(token))
}
