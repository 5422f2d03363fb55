//go:build rp2040

package main

import (
	"machine"
	"time"

	"picoboard/console"
)

const maxLine = 128

var consoleUART = machine.UART0

// InitConsole configures UART0 on GPIO0 (TX) / GPIO1 (RX)
func InitConsole(baud uint32) error {
	return consoleUART.Configure(machine.UARTConfig{
		BaudRate: baud,
		TX:       machine.UART0_TX_PIN,
		RX:       machine.UART0_RX_PIN,
	})
}

// writeLine writes s and CRLF. Used for replies and debug output.
func writeLine(s string) {
	consoleUART.Write([]byte(s))
	consoleUART.Write([]byte("\r\n"))
}

// consoleLoop reads command lines and writes one reply per line
func consoleLoop(con *console.Console) {
	lines := console.NewLineBuffer(maxLine)
	for {
		for consoleUART.Buffered() > 0 {
			b, err := consoleUART.ReadByte()
			if err != nil {
				break
			}
			line, ok, dropped := lines.Feed(b)
			switch {
			case dropped:
				writeLine("err line_too_long")
			case ok && line != "":
				writeLine(con.Exec(line))
			}
		}
		// Yield to the alarm dispatcher and debug writer
		time.Sleep(100 * time.Microsecond)
	}
}
