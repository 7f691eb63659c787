package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/lixenwraith/mood-eye/theme"
)

// SoundManager plays emotion chimes through one long-lived mixer
// Every method is safe to call when the speaker never came up
type SoundManager struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	initialized bool
	logger      *zap.SugaredLogger

	// speaker.Lock/Unlock in production, guarding the mixer against the playback goroutine
	lock, unlock func()
}

func NewSoundManager(cfg *Config, logger *zap.SugaredLogger) *SoundManager {
	return &SoundManager{
		cfg:    cfg,
		mixer:  &beep.Mixer{},
		logger: logger,
		lock:   func() {},
		unlock: func() {},
	}
}

// Initialize opens the speaker; a no-op when disabled or already running
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized || !sm.cfg.Enabled {
		return nil
	}
	if err := sm.cfg.Validate(); err != nil {
		return err
	}

	rate := beep.SampleRate(sm.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(100*time.Millisecond)); err != nil {
		return errors.Wrap(err, "init speaker")
	}
	sm.lock, sm.unlock = speaker.Lock, speaker.Unlock

	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.logger.Infow("audio ready", "sample_rate", sm.cfg.SampleRate)
	return nil
}

// PlayEmotion queues the chime for e on top of whatever is still sounding
func (sm *SoundManager) PlayEmotion(e theme.Emotion) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	s := NewChime(e, sm.cfg)

	sm.lock()
	sm.mixer.Add(s)
	sm.unlock()
}

// Cleanup silences everything; beep has no speaker close, the mixer is just emptied
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	sm.lock()
	sm.mixer.Clear()
	sm.unlock()
	sm.initialized = false
}
