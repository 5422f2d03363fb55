package serial

import (
	"io"
)

// Port is the host end of the device console.
// Implementations:
// - Native serial (github.com/tarm/serial)
// - In-memory pipes (tests)
type Port interface {
	io.ReadWriteCloser

	// Flush discards unread input
	Flush() error
}

// Config holds serial port configuration
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate; must match the baud stored on the board
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultBaud is the console baud of a freshly provisioned board
const DefaultBaud = 115200

// DefaultConfig returns the console settings of a factory board
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 100,
	}
}
