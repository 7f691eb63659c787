package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mood-eye/render"
)

// halfBlock shows the top pixel as foreground and the bottom pixel as background
const halfBlock = '▀'

// Screen shares one tcell screen between several eye slots laid out side by side
// The bottom row is reserved for a status line
type Screen struct {
	mu     sync.Mutex
	scr    tcell.Screen
	slots  int
	status string
}

// New initializes the controlling terminal
func New(slots int) (*Screen, error) {
	scr, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.Wrap(err, "create terminal screen")
	}
	if err := scr.Init(); err != nil {
		return nil, errors.Wrap(err, "init terminal screen")
	}
	return NewWithScreen(scr, slots), nil
}

// NewWithScreen wraps an already initialized screen
func NewWithScreen(scr tcell.Screen, slots int) *Screen {
	if slots < 1 {
		slots = 1
	}
	scr.HideCursor()
	scr.Clear()
	return &Screen{scr: scr, slots: slots}
}

// Fini restores the terminal
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scr.Fini()
}

// PollEvent blocks for the next input event, nil once the screen is finalized
func (s *Screen) PollEvent() tcell.Event {
	return s.scr.PollEvent()
}

// PostEvent injects an event, used to wake PollEvent
func (s *Screen) PostEvent(ev tcell.Event) error {
	return s.scr.PostEvent(ev)
}

// Sync redraws everything after a resize
func (s *Screen) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scr.Clear()
	s.scr.Sync()
}

// Slot returns the sink drawing into the i-th column of the screen
func (s *Screen) Slot(i int) render.Sink {
	return &slotSink{screen: s, index: i}
}

// SetStatus replaces the status line, shown on the next flush
func (s *Screen) SetStatus(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = text
	s.drawStatus()
	s.scr.Show()
}

func (s *Screen) drawStatus() {
	w, h := s.scr.Size()
	if h < 1 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver).Background(tcell.ColorBlack)
	x := 0
	for _, r := range s.status {
		if x >= w {
			break
		}
		s.scr.SetContent(x, h-1, r, nil, style)
		x++
	}
	for ; x < w; x++ {
		s.scr.SetContent(x, h-1, ' ', nil, style)
	}
}

// slotRect returns the cell rectangle of slot i
func (s *Screen) slotRect(i int) (x0, y0, w, h int) {
	sw, sh := s.scr.Size()
	w = sw / s.slots
	h = sh - 1
	return i * w, 0, w, h
}

// blit downsamples a frame into slot i using half blocks, two pixels per cell
func (s *Screen) blit(i int, pix []render.Color, width, height int) error {
	if len(pix) < width*height {
		return errors.Errorf("frame has %d pixels, want %d", len(pix), width*height)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	x0, y0, cw, ch := s.slotRect(i)
	if cw <= 0 || ch <= 0 {
		return nil
	}
	l := fit(width, height, cw, ch*2)

	for cy := 0; cy < ch; cy++ {
		for cx := 0; cx < cw; cx++ {
			top := l.sample(pix, width, cx, cy*2)
			bottom := l.sample(pix, width, cx, cy*2+1)
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			s.scr.SetContent(x0+cx, y0+cy, halfBlock, nil, style)
		}
	}
	s.drawStatus()
	s.scr.Show()
	return nil
}

type slotSink struct {
	screen *Screen
	index  int
}

func (k *slotSink) Blit(pix []render.Color, width, height int) error {
	return k.screen.blit(k.index, pix, width, height)
}

func tcellColor(c render.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
