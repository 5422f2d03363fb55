package console

import (
	"strconv"
	"strings"

	"picoboard/core"
	"picoboard/hardtimer"
)

// blinker toggles one pin per timer period
type blinker struct {
	gpio  core.GPIODriver
	pin   core.GPIOPin
	level bool
}

func toggle(params any) {
	b := params.(*blinker)
	b.level = !b.level
	b.gpio.SetPin(b.pin, b.level)
}

func (c *Console) registerTimer() {
	c.reg.Register("timer claim", "", c.handleTimerClaim)
	c.reg.Register("timer unclaim", "<slot>", c.handleTimerUnclaim)
	c.reg.Register("timer blink", "<freq> <pin> [slot]", c.handleTimerBlink)
	c.reg.Register("timer cancel", "<slot>", c.handleTimerCancel)
	c.reg.Register("timers", "", c.handleTimers)
}

func (c *Console) handleTimerClaim(args []string) (string, error) {
	slot := c.sched.Claim()
	if slot == hardtimer.InvalidSlot {
		return "", hardtimer.ErrNoSlot
	}
	return strconv.Itoa(int(slot)), nil
}

func (c *Console) handleTimerUnclaim(args []string) (string, error) {
	if len(args) != 1 {
		return "", ErrUsage
	}
	slot, err := parseSlot(args[0])
	if err != nil {
		return "", err
	}
	if !c.sched.Unclaim(slot) {
		return "", ErrNotClaimed
	}
	return "", nil
}

// timer blink <freq> <pin> [slot]
func (c *Console) handleTimerBlink(args []string) (string, error) {
	if len(args) < 2 || len(args) > 3 {
		return "", ErrUsage
	}
	freq, err := strconv.ParseUint(args[0], 10, 32)
	if err != nil {
		return "", ErrArgument
	}
	pin, err := parseUint8(args[1])
	if err != nil {
		return "", err
	}
	hint := hardtimer.InvalidSlot
	if len(args) == 3 {
		if hint, err = parseSlot(args[2]); err != nil {
			return "", err
		}
	}

	b := &blinker{gpio: c.gpio, pin: core.GPIOPin(pin)}
	if err := c.gpio.ConfigureOutput(b.pin); err != nil {
		return "", ErrPin
	}
	res, err := c.sched.Set(hint, uint32(freq), toggle, b)
	if err != nil {
		return "", err
	}
	c.blinkers[res.Slot] = b
	return formatResolution(res), nil
}

func (c *Console) handleTimerCancel(args []string) (string, error) {
	if len(args) != 1 {
		return "", ErrUsage
	}
	slot, err := parseSlot(args[0])
	if err != nil {
		return "", err
	}
	if err := c.sched.Cancel(slot); err != nil {
		return "", err
	}
	if b := c.blinkers[slot]; b != nil {
		c.blinkers[slot] = nil
		b.gpio.SetPin(b.pin, false)
	}
	return "", nil
}

// timers lists every slot as <slot>:<c|-><s|->[@<freq>Hz]
func (c *Console) handleTimers(args []string) (string, error) {
	snap := c.sched.Snapshot()
	parts := make([]string, len(snap))
	for i, info := range snap {
		flags := []byte{'-', '-'}
		if info.Claimed {
			flags[0] = 'c'
		}
		if info.Started {
			flags[1] = 's'
		}
		p := strconv.Itoa(int(info.Slot)) + ":" + string(flags)
		if info.Started {
			p += "@" + strconv.FormatUint(uint64(info.Freq), 10) + "Hz"
		}
		parts[i] = p
	}
	return strings.Join(parts, " "), nil
}

func formatResolution(r hardtimer.Resolution) string {
	return "slot=" + strconv.Itoa(int(r.Slot)) +
		" freq=" + strconv.FormatUint(uint64(r.Freq), 10) +
		" unit=" + r.Unit.String() +
		" ticks=" + strconv.FormatInt(r.Ticks, 10) +
		" status=" + r.Status.String()
}
