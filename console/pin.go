package console

import (
	"picoboard/core"
)

func (c *Console) registerPin() {
	c.reg.Register("pin mode", "<pin> <out|in|up|down>", c.handlePinMode)
	c.reg.Register("pin set", "<pin> <0|1>", c.handlePinSet)
	c.reg.Register("pin get", "<pin>", c.handlePinGet)
}

func parsePin(s string) (core.GPIOPin, error) {
	v, err := parseUint8(s)
	if err != nil {
		return 0, err
	}
	return core.GPIOPin(v), nil
}

// pin mode <pin> <out|in|up|down>
func (c *Console) handlePinMode(args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrUsage
	}
	pin, err := parsePin(args[0])
	if err != nil {
		return "", err
	}

	switch args[1] {
	case "out":
		err = c.gpio.ConfigureOutput(pin)
	case "in":
		err = c.gpio.ConfigureInput(pin, core.PullNone)
	case "up":
		err = c.gpio.ConfigureInput(pin, core.PullUp)
	case "down":
		err = c.gpio.ConfigureInput(pin, core.PullDown)
	default:
		return "", ErrArgument
	}
	if err != nil {
		return "", ErrPin
	}
	return "", nil
}

func (c *Console) handlePinSet(args []string) (string, error) {
	if len(args) != 2 {
		return "", ErrUsage
	}
	pin, err := parsePin(args[0])
	if err != nil {
		return "", err
	}
	var level bool
	switch args[1] {
	case "0":
	case "1":
		level = true
	default:
		return "", ErrArgument
	}
	if err := c.gpio.SetPin(pin, level); err != nil {
		return "", ErrPin
	}
	return "", nil
}

func (c *Console) handlePinGet(args []string) (string, error) {
	if len(args) != 1 {
		return "", ErrUsage
	}
	pin, err := parsePin(args[0])
	if err != nil {
		return "", err
	}
	level, err := c.gpio.GetPin(pin)
	if err != nil {
		return "", ErrPin
	}
	if level {
		return "1", nil
	}
	return "0", nil
}
