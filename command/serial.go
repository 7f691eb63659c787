package command

import (
	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.uber.org/zap"
)

// DefaultBaud matches the Raspberry Pi UART setup
const DefaultBaud = 115200

// SerialMode returns 8N1 at the given baud rate
func SerialMode(baud int) *serial.Mode {
	return &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
}

// OpenSerial opens a UART and reads commands from it
func OpenSerial(device string, baud int, logger *zap.SugaredLogger) (*LineSource, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	port, err := serial.Open(device, SerialMode(baud))
	if err != nil {
		return nil, errors.Wrapf(err, "open serial %s", device)
	}
	logger.Infow("serial command source open", "device", device, "baud", baud)
	return NewLineSource(port, port, logger), nil
}
