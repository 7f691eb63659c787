package gc9a01

import "time"

type regOp struct {
	cmd   byte
	data  []byte
	delay time.Duration
}

// initSequence is the vendor power-on table: inter-register enable, power and gamma
// tuning, then MADCTL 0x48 (BGR), 16-bit color, inversion on, sleep out, display on
var initSequence = []regOp{
	{cmd: 0xEF},
	{cmd: 0xEB, data: []byte{0x14}},
	{cmd: 0xFE},
	{cmd: 0xEF},
	{cmd: 0xEB, data: []byte{0x14}},
	{cmd: 0x84, data: []byte{0x40}},
	{cmd: 0x85, data: []byte{0xFF}},
	{cmd: 0x86, data: []byte{0xFF}},
	{cmd: 0x87, data: []byte{0xFF}},
	{cmd: 0x88, data: []byte{0x0A}},
	{cmd: 0x89, data: []byte{0x21}},
	{cmd: 0x8A, data: []byte{0x00}},
	{cmd: 0x8B, data: []byte{0x80}},
	{cmd: 0x8C, data: []byte{0x01}},
	{cmd: 0x8D, data: []byte{0x01}},
	{cmd: 0x8E, data: []byte{0xFF}},
	{cmd: 0x8F, data: []byte{0xFF}},
	{cmd: 0xB6, data: []byte{0x00, 0x00}},
	{cmd: 0x36, data: []byte{0x48}}, // MADCTL
	{cmd: 0x3A, data: []byte{0x05}}, // COLMOD 16bpp
	{cmd: 0x90, data: []byte{0x08, 0x08, 0x08, 0x08}},
	{cmd: 0xBD, data: []byte{0x06}},
	{cmd: 0xBC, data: []byte{0x00}},
	{cmd: 0xFF, data: []byte{0x60, 0x01, 0x04}},
	{cmd: 0xC3, data: []byte{0x13}},
	{cmd: 0xC4, data: []byte{0x13}},
	{cmd: 0xC9, data: []byte{0x22}},
	{cmd: 0xBE, data: []byte{0x11}},
	{cmd: 0xE1, data: []byte{0x10, 0x0E}},
	{cmd: 0xDF, data: []byte{0x21, 0x0C, 0x02}},
	{cmd: 0xF0, data: []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
	{cmd: 0xF1, data: []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
	{cmd: 0xF2, data: []byte{0x45, 0x09, 0x08, 0x08, 0x26, 0x2A}},
	{cmd: 0xF3, data: []byte{0x43, 0x70, 0x72, 0x36, 0x37, 0x6F}},
	{cmd: 0xED, data: []byte{0x1B, 0x0B}},
	{cmd: 0xAE, data: []byte{0x77}},
	{cmd: 0xCD, data: []byte{0x63}},
	{cmd: 0x70, data: []byte{0x07, 0x07, 0x04, 0x0E, 0x0F, 0x09, 0x07, 0x08, 0x03}},
	{cmd: 0xE8, data: []byte{0x34}},
	{cmd: 0x62, data: []byte{0x18, 0x0D, 0x71, 0xED, 0x70, 0x70, 0x18, 0x0F, 0x71, 0xEF, 0x70, 0x70}},
	{cmd: 0x63, data: []byte{0x18, 0x11, 0x71, 0xF1, 0x70, 0x70, 0x18, 0x13, 0x71, 0xF3, 0x70, 0x70}},
	{cmd: 0x64, data: []byte{0x28, 0x29, 0xF1, 0x01, 0xF1, 0x00, 0x07}},
	{cmd: 0x66, data: []byte{0x3C, 0x00, 0xCD, 0x67, 0x45, 0x45, 0x10, 0x00, 0x00, 0x00}},
	{cmd: 0x67, data: []byte{0x00, 0x3C, 0x00, 0x00, 0x00, 0x01, 0x54, 0x10, 0x32, 0x98}},
	{cmd: 0x74, data: []byte{0x10, 0x85, 0x80, 0x00, 0x00, 0x4E, 0x00}},
	{cmd: 0x98, data: []byte{0x3E, 0x07}},
	{cmd: 0x35},                                // tearing effect line on
	{cmd: 0x21},                                // inversion on
	{cmd: 0x11, delay: 120 * time.Millisecond}, // sleep out
	{cmd: 0x29, delay: 20 * time.Millisecond},  // display on
}
