package terminal

import (
	"github.com/lixenwraith/mood-eye/render"
)

// layout maps a destination pixel grid onto a source frame with one uniform scale,
// keeping the frame square and centered
type layout struct {
	scale      float64 // source pixels per destination pixel
	offX, offY int     // destination pixels of padding
	outW, outH int     // destination pixels covered by the frame
	srcW, srcH int
}

func fit(srcW, srcH, dstW, dstH int) layout {
	scale := max(float64(srcW)/float64(dstW), float64(srcH)/float64(dstH))
	outW := min(dstW, int(float64(srcW)/scale))
	outH := min(dstH, int(float64(srcH)/scale))
	return layout{
		scale: scale,
		offX:  (dstW - outW) / 2,
		offY:  (dstH - outH) / 2,
		outW:  outW,
		outH:  outH,
		srcW:  srcW,
		srcH:  srcH,
	}
}

// sample returns the nearest source pixel for destination pixel (x, y), black outside the frame
func (l layout) sample(pix []render.Color, stride, x, y int) render.Color {
	x -= l.offX
	y -= l.offY
	if x < 0 || y < 0 || x >= l.outW || y >= l.outH {
		return render.Black
	}
	sx := min(int((float64(x)+0.5)*l.scale), l.srcW-1)
	sy := min(int((float64(y)+0.5)*l.scale), l.srcH-1)
	return pix[sy*stride+sx]
}
