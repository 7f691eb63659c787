package render

import (
	"testing"

	"github.com/pkg/errors"
)

func TestRGB565RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
	}{
		{"Black", 0, 0, 0},
		{"White", 255, 255, 255},
		{"Red", 255, 0, 0},
		{"Green", 0, 255, 0},
		{"Blue", 0, 0, 255},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b := RGB565(tt.r, tt.g, tt.b).RGB()
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("Expected (%d,%d,%d), got (%d,%d,%d)", tt.r, tt.g, tt.b, r, g, b)
			}
		})
	}
}

func TestRGB565Packing(t *testing.T) {
	if RGB565(255, 255, 255) != White {
		t.Errorf("Expected White 0xFFFF, got %#04x", RGB565(255, 255, 255))
	}
	if RGB565(255, 0, 0) != 0xF800 {
		t.Errorf("Expected red 0xF800, got %#04x", RGB565(255, 0, 0))
	}
	if RGB565(0, 0, 255) != 0x001F {
		t.Errorf("Expected blue 0x001F, got %#04x", RGB565(0, 0, 255))
	}
}

func TestHex(t *testing.T) {
	c, err := Hex("#ff0000")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c != 0xF800 {
		t.Errorf("Expected 0xF800, got %#04x", c)
	}
	if _, err := Hex("nope"); err == nil {
		t.Error("Expected error for malformed hex")
	}
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(7, 5) // odd size exercises the exponential copy tail
	c.Clear(White)
	for y := 0; y < 5; y++ {
		for x := 0; x < 7; x++ {
			if c.At(x, y) != White {
				t.Fatalf("Pixel (%d,%d) not cleared", x, y)
			}
		}
	}
}

func TestCanvasClipping(t *testing.T) {
	c := NewCanvas(10, 10)
	// None of these may panic
	c.Set(-1, -1, White)
	c.HLine(-5, 3, 30, White)
	c.FillRect(-5, -5, 30, 2, White)
	c.FillCircle(0, 0, 20, White)
	c.DrawCircle(9, 9, 15, White)
	c.DrawLine(-10, -10, 20, 20, White)
	c.HLine(0, 20, 5, White)

	if c.At(0, 3) != White || c.At(9, 3) != White {
		t.Error("Expected clipped HLine to span the row")
	}
	if c.At(-1, 0) != Black {
		t.Error("Out-of-bounds At should return Black")
	}
}

func TestFillCircle(t *testing.T) {
	c := NewCanvas(40, 40)
	c.FillCircle(20, 20, 10, White)

	tests := []struct {
		name string
		x, y int
		want Color
	}{
		{"Center", 20, 20, White},
		{"Right edge", 30, 20, White},
		{"Top edge", 20, 10, White},
		{"Outside right", 31, 20, Black},
		{"Corner of bounding box", 29, 29, Black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.At(tt.x, tt.y); got != tt.want {
				t.Errorf("Expected %#04x at (%d,%d), got %#04x", tt.want, tt.x, tt.y, got)
			}
		})
	}
}

func TestFillCircleZeroRadius(t *testing.T) {
	c := NewCanvas(5, 5)
	c.FillCircle(2, 2, 0, White)
	if c.At(2, 2) != White {
		t.Error("Zero radius should fill the center pixel")
	}
	if c.At(1, 2) != Black || c.At(3, 2) != Black {
		t.Error("Zero radius should only fill one pixel")
	}
}

func TestDrawCircleOutlineOnly(t *testing.T) {
	c := NewCanvas(40, 40)
	c.DrawCircle(20, 20, 10, White)
	if c.At(20, 20) != Black {
		t.Error("Outline must not fill the center")
	}
	for _, p := range [][2]int{{30, 20}, {10, 20}, {20, 30}, {20, 10}} {
		if c.At(p[0], p[1]) != White {
			t.Errorf("Expected cardinal point %v on outline", p)
		}
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	tests := []struct {
		name           string
		x0, y0, x1, y1 int
	}{
		{"Horizontal", 1, 1, 8, 1},
		{"Vertical", 2, 0, 2, 9},
		{"Diagonal", 0, 0, 9, 9},
		{"Steep reverse", 7, 9, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCanvas(10, 10)
			c.DrawLine(tt.x0, tt.y0, tt.x1, tt.y1, White)
			if c.At(tt.x0, tt.y0) != White || c.At(tt.x1, tt.y1) != White {
				t.Error("Expected both endpoints to be drawn")
			}
		})
	}
}

func TestFramebufferFlush(t *testing.T) {
	capture := &Capture{}
	fb := NewFramebuffer(4, 3, capture)
	fb.Clear(White)
	fb.Set(1, 1, Black)

	if capture.Frames() != 0 {
		t.Fatal("Sink must not see drawing before Flush")
	}
	if err := fb.Flush(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if capture.Frames() != 1 {
		t.Errorf("Expected 1 frame, got %d", capture.Frames())
	}
	if capture.At(1, 1) != Black || capture.At(0, 0) != White {
		t.Error("Captured frame does not match canvas")
	}

	// Later drawing must not leak into the captured copy
	fb.Set(0, 0, Black)
	if capture.At(0, 0) != White {
		t.Error("Capture should hold a copy, not alias the canvas")
	}
}

func TestFramebufferFlushError(t *testing.T) {
	want := errors.New("bus fault")
	fb := NewFramebuffer(2, 2, SinkFunc(func([]Color, int, int) error { return want }))
	if err := fb.Flush(); err != want {
		t.Errorf("Expected sink error to pass through, got %v", err)
	}
	if err := NewFramebuffer(2, 2, nil).Flush(); err == nil {
		t.Error("Expected error without sink")
	}
}
