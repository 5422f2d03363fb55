package console

import (
	"strconv"

	"picoboard/core"
)

func (c *Console) registerSystem() {
	c.reg.Register("debug", "[on|off]", c.handleDebug)
	c.reg.Register("uptime", "", c.handleUptime)
}

// debug with no argument reports the current state. Turning it off dumps
// the timing ring first.
func (c *Console) handleDebug(args []string) (string, error) {
	switch {
	case len(args) == 0:
		if core.IsDebugEnabled() {
			return "on", nil
		}
		return "off", nil
	case len(args) > 1:
		return "", ErrUsage
	}

	switch args[0] {
	case "on":
		core.SetDebugEnabled(true)
	case "off":
		core.DumpTimingRing()
		core.SetDebugEnabled(false)
	default:
		return "", ErrArgument
	}
	return "", nil
}

// uptime reports microseconds since the clock was initialised
func (c *Console) handleUptime(args []string) (string, error) {
	if len(args) != 0 {
		return "", ErrUsage
	}
	return strconv.FormatUint(core.GetUptime(), 10), nil
}
