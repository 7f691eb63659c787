// Package gc9a01 drives a 240x240 round GC9A01 panel over SPI as a render sink.
package gc9a01

import (
	"time"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/spi"

	"github.com/lixenwraith/mood-eye/render"
)

// maxTx is the default spidev transfer limit
const maxTx = 4096

const (
	cmdCASET  = 0x2A
	cmdRASET  = 0x2B
	cmdRAMWR  = 0x2C
	cmdSLPIN  = 0x10
	cmdDISPOF = 0x28
)

// Panel is a GC9A01 on an SPI connection with data/command, reset and backlight lines
type Panel struct {
	conn   spi.Conn
	dc     gpio.PinOut
	rst    gpio.PinOut // optional
	bl     gpio.PinOut // optional
	closer spi.PortCloser

	width, height int
	buf           []byte
	sleep         func(time.Duration)
}

// New wraps an open connection; rst and bl may be nil
func New(conn spi.Conn, dc, rst, bl gpio.PinOut, width, height int) *Panel {
	return &Panel{
		conn:   conn,
		dc:     dc,
		rst:    rst,
		bl:     bl,
		width:  width,
		height: height,
		buf:    make([]byte, width*height*2),
		sleep:  time.Sleep,
	}
}

// Size returns the panel resolution
func (p *Panel) Size() (width, height int) {
	return p.width, p.height
}

// Init resets the controller, loads the register table and turns on the backlight
func (p *Panel) Init() error {
	if p.rst != nil {
		for _, step := range []struct {
			level gpio.Level
			wait  time.Duration
		}{
			{gpio.High, 10 * time.Millisecond},
			{gpio.Low, 10 * time.Millisecond},
			{gpio.High, 120 * time.Millisecond},
		} {
			if err := p.rst.Out(step.level); err != nil {
				return errors.Wrap(err, "gc9a01 reset")
			}
			p.sleep(step.wait)
		}
	}

	for _, op := range initSequence {
		if err := p.command(op.cmd, op.data...); err != nil {
			return errors.Wrapf(err, "gc9a01 init register 0x%02X", op.cmd)
		}
		if op.delay > 0 {
			p.sleep(op.delay)
		}
	}

	if p.bl != nil {
		if err := p.bl.Out(gpio.High); err != nil {
			return errors.Wrap(err, "gc9a01 backlight")
		}
	}
	return nil
}

// Blit sends a full frame as big-endian RGB565
func (p *Panel) Blit(pix []render.Color, width, height int) error {
	if width != p.width || height != p.height {
		return errors.Errorf("gc9a01: frame %dx%d does not match panel %dx%d", width, height, p.width, p.height)
	}
	if len(pix) < width*height {
		return errors.Errorf("gc9a01: frame has %d pixels, want %d", len(pix), width*height)
	}

	if err := p.window(0, 0, width-1, height-1); err != nil {
		return err
	}
	for i, c := range pix[:width*height] {
		p.buf[2*i] = byte(c >> 8)
		p.buf[2*i+1] = byte(c)
	}
	if err := p.command(cmdRAMWR); err != nil {
		return errors.Wrap(err, "gc9a01 ramwr")
	}
	return errors.Wrap(p.data(p.buf), "gc9a01 pixel data")
}

// Close blanks the panel and releases the SPI port
func (p *Panel) Close() error {
	var first error
	if err := p.command(cmdDISPOF); err != nil {
		first = err
	}
	if err := p.command(cmdSLPIN); err != nil && first == nil {
		first = err
	}
	if p.bl != nil {
		if err := p.bl.Out(gpio.Low); err != nil && first == nil {
			first = err
		}
	}
	if p.closer != nil {
		if err := p.closer.Close(); err != nil && first == nil {
			first = err
		}
	}
	return errors.Wrap(first, "gc9a01 close")
}

func (p *Panel) window(x0, y0, x1, y1 int) error {
	if err := p.command(cmdCASET, byte(x0>>8), byte(x0), byte(x1>>8), byte(x1)); err != nil {
		return errors.Wrap(err, "gc9a01 caset")
	}
	if err := p.command(cmdRASET, byte(y0>>8), byte(y0), byte(y1>>8), byte(y1)); err != nil {
		return errors.Wrap(err, "gc9a01 raset")
	}
	return nil
}

// command sends one register byte with DC low, then its parameters with DC high
func (p *Panel) command(cmd byte, params ...byte) error {
	if err := p.dc.Out(gpio.Low); err != nil {
		return err
	}
	if err := p.conn.Tx([]byte{cmd}, nil); err != nil {
		return err
	}
	if len(params) == 0 {
		return nil
	}
	return p.data(params)
}

func (p *Panel) data(b []byte) error {
	if err := p.dc.Out(gpio.High); err != nil {
		return err
	}
	for len(b) > 0 {
		n := min(len(b), maxTx)
		if err := p.conn.Tx(b[:n], nil); err != nil {
			return err
		}
		b = b[n:]
	}
	return nil
}
