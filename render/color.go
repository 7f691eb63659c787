package render

import "github.com/lucasb-eyer/go-colorful"

// Color is a packed RGB565 pixel, the native format of the panel
type Color uint16

// Predefined colors
const (
	Black Color = 0x0000
	White Color = 0xFFFF
)

// RGB565 packs 8-bit channels, dropping the low bits
func RGB565(r, g, b uint8) Color {
	return Color(uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3))
}

// RGB expands to 8-bit channels, replicating high bits into the low ones so that
// full-scale channels map back to 255
func (c Color) RGB() (r, g, b uint8) {
	r5 := uint8(c >> 11 & 0x1F)
	g6 := uint8(c >> 5 & 0x3F)
	b5 := uint8(c & 0x1F)
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Hex parses "#rrggbb"
func Hex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Black, err
	}
	return FromColorful(c), nil
}

// FromColorful quantizes a colorful.Color, clamping out-of-gamut values
func FromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return RGB565(r, g, b)
}
