// Package console exposes the NVM store, timer scheduler and GPIO pins as
// line commands. Every reply is one line: "ok [values...]" or "err <code>".
package console

import (
	"errors"
	"strconv"
	"strings"

	"picoboard/board"
	"picoboard/core"
	"picoboard/hardtimer"
	"picoboard/nvm"
)

var (
	ErrUsage      = errors.New("usage")
	ErrArgument   = errors.New("invalid_argument")
	ErrType       = errors.New("unknown_type")
	ErrNotClaimed = errors.New("not_claimed")
	ErrPin        = errors.New("pin_failed")
)

// Console owns the command registry and the state behind timer commands
type Console struct {
	reg   *core.CommandRegistry
	store *nvm.Store
	sched *hardtimer.Scheduler
	gpio  core.GPIODriver
	cfg   *board.Config

	blinkers [hardtimer.MaxSlots]*blinker // by slot, while blinking
}

// New creates a console and registers all commands. store may be nil on a
// board without usable flash; NVM commands then fail with nvm_not_started.
func New(store *nvm.Store, sched *hardtimer.Scheduler, gpio core.GPIODriver, cfg *board.Config) *Console {
	c := &Console{
		reg:   core.NewCommandRegistry(),
		store: store,
		sched: sched,
		gpio:  gpio,
		cfg:   cfg,
	}
	c.registerNVM()
	c.registerTimer()
	c.registerPin()
	c.registerSystem()
	c.reg.Register("trace", "[clear]", c.handleTrace)
	c.reg.Register("help", "", c.handleHelp)
	return c
}

// Registry returns the command registry for extra commands
func (c *Console) Registry() *core.CommandRegistry { return c.reg }

// Exec runs one command line and returns the reply line
func (c *Console) Exec(line string) string {
	payload, err := c.reg.Dispatch(line)
	if err != nil {
		return "err " + err.Error()
	}
	if payload == "" {
		return "ok"
	}
	return "ok " + payload
}

func (c *Console) handleTrace(args []string) (string, error) {
	if len(args) == 1 && args[0] == "clear" {
		core.ClearTimingRing()
		return "", nil
	}
	if len(args) != 0 {
		return "", ErrUsage
	}
	events := core.TimingEvents()
	parts := make([]string, len(events))
	for i, evt := range events {
		parts[i] = core.FormatTiming(evt)
	}
	return strings.Join(parts, "; "), nil
}

func (c *Console) handleHelp(args []string) (string, error) {
	return strings.Join(c.reg.Help(), "; "), nil
}

func parseKey(s string) (nvm.Key, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, ErrArgument
	}
	return nvm.Key(v), nil
}

func parseUint8(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, ErrArgument
	}
	return uint8(v), nil
}

func parseSlot(s string) (hardtimer.Slot, error) {
	v, err := strconv.ParseInt(s, 10, 8)
	if err != nil {
		return hardtimer.InvalidSlot, ErrArgument
	}
	return hardtimer.Slot(v), nil
}
