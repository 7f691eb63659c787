package gc9a01

import (
	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/host/v3"
)

// Config selects the SPI port and control pins by periph.io name
type Config struct {
	SPIPort      string `toml:"spi_port"`
	SpeedMHz     int    `toml:"speed_mhz"`
	DCPin        string `toml:"dc_pin"`
	ResetPin     string `toml:"reset_pin"`     // empty if tied high
	BacklightPin string `toml:"backlight_pin"` // empty if always on
}

// DefaultConfig is the usual Raspberry Pi wiring
func DefaultConfig() Config {
	return Config{
		SPIPort:      "SPI0.0",
		SpeedMHz:     40,
		DCPin:        "GPIO25",
		ResetPin:     "GPIO27",
		BacklightPin: "GPIO18",
	}
}

// Open initializes the host drivers, connects to the panel and runs Init
func Open(cfg Config, width, height int) (*Panel, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "periph host init")
	}

	port, err := spireg.Open(cfg.SPIPort)
	if err != nil {
		return nil, errors.Wrapf(err, "open spi %s", cfg.SPIPort)
	}
	conn, err := port.Connect(physic.Frequency(cfg.SpeedMHz)*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		port.Close()
		return nil, errors.Wrapf(err, "connect spi %s", cfg.SPIPort)
	}

	dc, err := pin(cfg.DCPin, true)
	if err != nil {
		port.Close()
		return nil, err
	}
	rst, err := pin(cfg.ResetPin, false)
	if err != nil {
		port.Close()
		return nil, err
	}
	bl, err := pin(cfg.BacklightPin, false)
	if err != nil {
		port.Close()
		return nil, err
	}

	p := New(conn, dc, rst, bl, width, height)
	p.closer = port
	if err := p.Init(); err != nil {
		port.Close()
		return nil, err
	}
	return p, nil
}

func pin(name string, required bool) (gpio.PinOut, error) {
	if name == "" {
		if required {
			return nil, errors.New("gc9a01: data/command pin is required")
		}
		return nil, nil
	}
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, errors.Errorf("gc9a01: unknown gpio %s", name)
	}
	return p, nil
}
