package render

import "math"

// Canvas is an offscreen RGB565 pixel buffer with clipped drawing primitives
// Nothing drawn here reaches the panel until the owning Framebuffer flushes
type Canvas struct {
	pix    []Color
	width  int
	height int
}

// NewCanvas creates a black canvas with the specified dimensions
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		pix:    make([]Color, width*height),
		width:  width,
		height: height,
	}
}

// Size returns canvas dimensions
func (c *Canvas) Size() (width, height int) {
	return c.width, c.height
}

// inBounds returns true if in canvas bounds
func (c *Canvas) inBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// At returns the pixel at (x, y), Black outside the canvas
func (c *Canvas) At(x, y int) Color {
	if !c.inBounds(x, y) {
		return Black
	}
	return c.pix[y*c.width+x]
}

// Set writes a single pixel, ignoring out-of-bounds coordinates
func (c *Canvas) Set(x, y int, col Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.pix[y*c.width+x] = col
}

// Clear fills the canvas using exponential copy
func (c *Canvas) Clear(col Color) {
	if len(c.pix) == 0 {
		return
	}
	c.pix[0] = col
	for filled := 1; filled < len(c.pix); filled *= 2 {
		copy(c.pix[filled:], c.pix[:filled])
	}
}

// HLine draws a horizontal run of w pixels starting at (x, y)
func (c *Canvas) HLine(x, y, w int, col Color) {
	if y < 0 || y >= c.height || w <= 0 {
		return
	}
	x0 := max(x, 0)
	x1 := min(x+w, c.width)
	if x0 >= x1 {
		return
	}
	row := c.pix[y*c.width+x0 : y*c.width+x1]
	for i := range row {
		row[i] = col
	}
}

// FillRect fills a w*h rectangle with top-left corner at (x, y)
func (c *Canvas) FillRect(x, y, w, h int, col Color) {
	y0 := max(y, 0)
	y1 := min(y+h, c.height)
	for row := y0; row < y1; row++ {
		c.HLine(x, row, w, col)
	}
}

// FillCircle fills a disc as horizontal spans, one per row
func (c *Canvas) FillCircle(cx, cy, r int, col Color) {
	if r < 0 {
		return
	}
	rr := float64(r * r)
	for dy := -r; dy <= r; dy++ {
		dx := int(math.Sqrt(rr - float64(dy*dy)))
		c.HLine(cx-dx, cy+dy, 2*dx+1, col)
	}
}

// DrawCircle draws a one-pixel outline using the midpoint algorithm
func (c *Canvas) DrawCircle(cx, cy, r int, col Color) {
	if r < 0 {
		return
	}
	f := 1 - r
	ddx := 1
	ddy := -2 * r
	x, y := 0, r

	c.Set(cx, cy+r, col)
	c.Set(cx, cy-r, col)
	c.Set(cx+r, cy, col)
	c.Set(cx-r, cy, col)

	for x < y {
		if f >= 0 {
			y--
			ddy += 2
			f += ddy
		}
		x++
		ddx += 2
		f += ddx

		c.Set(cx+x, cy+y, col)
		c.Set(cx-x, cy+y, col)
		c.Set(cx+x, cy-y, col)
		c.Set(cx-x, cy-y, col)
		c.Set(cx+y, cy+x, col)
		c.Set(cx-y, cy+x, col)
		c.Set(cx+y, cy-x, col)
		c.Set(cx-y, cy-x, col)
	}
}

// DrawLine draws a Bresenham line including both endpoints
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, col Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.Set(x0, y0, col)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
