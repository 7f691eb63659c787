package render

import (
	"sync"

	"github.com/pkg/errors"
)

// Surface is the drawing capability the frame composer paints on
// Primitives only touch the offscreen buffer; Flush is the single transfer to the panel
type Surface interface {
	Size() (width, height int)
	Clear(c Color)
	HLine(x, y, w int, c Color)
	FillRect(x, y, w, h int, c Color)
	FillCircle(cx, cy, r int, c Color)
	DrawCircle(cx, cy, r int, c Color)
	DrawLine(x0, y0, x1, y1 int, c Color)
	Flush() error
}

// Sink receives complete frames
// Pixels are row-major: pix[y*width + x]; the slice is only valid during the call
type Sink interface {
	Blit(pix []Color, width, height int) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(pix []Color, width, height int) error

func (f SinkFunc) Blit(pix []Color, width, height int) error { return f(pix, width, height) }

// Framebuffer pairs a Canvas with the Sink its frames are flushed to
type Framebuffer struct {
	*Canvas
	sink Sink
}

// NewFramebuffer creates a framebuffer of the given size flushing to sink
func NewFramebuffer(width, height int, sink Sink) *Framebuffer {
	return &Framebuffer{
		Canvas: NewCanvas(width, height),
		sink:   sink,
	}
}

// Flush hands the whole composed frame to the sink in one call
func (f *Framebuffer) Flush() error {
	if f.sink == nil {
		return errors.New("framebuffer has no sink")
	}
	return f.sink.Blit(f.pix, f.width, f.height)
}

// Capture is a Sink keeping a copy of the most recent frame
type Capture struct {
	mu     sync.Mutex
	last   []Color
	width  int
	height int
	frames int
}

func (c *Capture) Blit(pix []Color, width, height int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cap(c.last) < len(pix) {
		c.last = make([]Color, len(pix))
	}
	c.last = c.last[:len(pix)]
	copy(c.last, pix)
	c.width, c.height = width, height
	c.frames++
	return nil
}

// Frames returns the number of frames received
func (c *Capture) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frames
}

// At returns the pixel of the last captured frame
func (c *Capture) At(x, y int) Color {
	c.mu.Lock()
	defer c.mu.Unlock()
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return Black
	}
	return c.last[y*c.width+x]
}
