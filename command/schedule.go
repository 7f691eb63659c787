package command

import (
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mood-eye/theme"
)

// Schedule cycles through a fixed list of emotions on a timer, for displays without a host
// The first entry is emitted on the first Poll, then one entry per elapsed period
type Schedule struct {
	clk    clock.Clock
	period time.Duration
	moods  []theme.Emotion
	next   int
	due    time.Time
	primed bool
}

// NewSchedule validates the cycle; clk is clock.New() in production
func NewSchedule(clk clock.Clock, period time.Duration, moods []theme.Emotion) (*Schedule, error) {
	if period <= 0 {
		return nil, errors.Errorf("schedule period must be positive, got %s", period)
	}
	if len(moods) == 0 {
		return nil, errors.New("schedule needs at least one emotion")
	}
	for _, m := range moods {
		if !m.Valid() {
			return nil, errors.Errorf("schedule has invalid emotion %d", m)
		}
	}
	return &Schedule{clk: clk, period: period, moods: moods}, nil
}

// ParseMoods converts configured tokens into emotions
func ParseMoods(tokens []string) ([]theme.Emotion, error) {
	moods := make([]theme.Emotion, 0, len(tokens))
	for _, tok := range tokens {
		e, ok := theme.ParseEmotion(tok)
		if !ok {
			return nil, errors.Errorf("unknown emotion %q", tok)
		}
		moods = append(moods, e)
	}
	return moods, nil
}

// Poll emits at most one entry per call; periods missed while the loop stalled are skipped
func (s *Schedule) Poll() (string, bool) {
	now := s.clk.Now()
	if !s.primed {
		s.primed = true
		s.due = now.Add(s.period)
		return s.advance(), true
	}
	if now.Before(s.due) {
		return "", false
	}
	for !now.Before(s.due) {
		s.due = s.due.Add(s.period)
	}
	return s.advance(), true
}

func (s *Schedule) advance() string {
	e := s.moods[s.next]
	s.next = (s.next + 1) % len(s.moods)
	return e.String()
}
