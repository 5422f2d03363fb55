//go:build rp2040

package main

import (
	"machine"
	"time"

	"picoboard/board"
	"picoboard/console"
	"picoboard/core"
	"picoboard/flash"
	"picoboard/hardtimer"
	"picoboard/nvm"
)

// profile selects the board profile; override with
// -ldflags "-X main.profile=pico_w"
var profile = "pico"

// External NVM chip on SPI1, used when the profile sets external_flash
var externalFlash = flash.ExternalConfig{
	Bus: machine.SPI1,
	SCK: machine.GPIO10,
	SDO: machine.GPIO11,
	SDI: machine.GPIO12,
	CS:  machine.GPIO13,
}

func main() {
	// Disable any watchdog left running by a previous image
	if err := machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 0}); err != nil {
		return
	}

	InitClock()

	cfg, err := board.Profile(profile)
	if err != nil {
		halt()
	}

	cs := core.NewCriticalSection()
	store := openStore(&cfg, cs)

	baud := cfg.Baud
	if store != nil {
		baud = board.Baud(store, cfg.Baud)
	}
	if err := InitConsole(baud); err != nil {
		halt()
	}
	core.SetDebugWriter(writeLine)
	core.InitAsyncDebug()

	if store != nil {
		provision(&cfg, store)
	}

	reg, err := hardtimer.NewRegistry(cfg.Timers, cs)
	if err != nil {
		halt()
	}
	pool := core.NewAlarmPool(nil)
	sched := hardtimer.NewScheduler(reg, pool, cfg.MaxFreq)
	gpio := NewRPGPIODriver()

	if store != nil {
		startHeartbeat(&cfg, store, sched, gpio)
	}

	con := console.New(store, sched, gpio, &cfg)

	go alarmLoop(pool)
	consoleLoop(con)
}

// openStore brings up the NVM store. Returns nil if flash is unusable; the
// board then runs on profile values only.
func openStore(cfg *board.Config, cs *core.CriticalSection) *nvm.Store {
	dev := flash.Internal()
	if cfg.ExternalFlash {
		ext, err := flash.External(externalFlash)
		if err != nil {
			return nil
		}
		dev = ext
	}
	store, err := nvm.New(dev, cs)
	if err != nil {
		return nil
	}
	if err := store.Init(cfg.NVMSize); err != nil {
		return nil
	}
	return store
}

// provision writes factory defaults on first boot and counts boots
func provision(cfg *board.Config, store *nvm.Store) {
	if board.FirstBoot(store) {
		if err := cfg.SetDefaults(store); err != nil {
			core.DebugPrintln("[NVM] provisioning failed: " + err.Error())
			return
		}
	}
	n, err := board.BumpBootCount(store)
	if err != nil {
		core.DebugPrintln("[NVM] boot count: " + err.Error())
		return
	}
	core.DebugPrintln("[NVM] boot " + core.Utoa(uint64(n)))
}

// startHeartbeat blinks the status LED from a timer slot
func startHeartbeat(cfg *board.Config, store *nvm.Store, sched *hardtimer.Scheduler, gpio core.GPIODriver) {
	pin, toggleHz, err := cfg.HeartbeatToggle(store)
	if err != nil {
		core.DebugPrintln("[TIMER] heartbeat: " + err.Error())
		return
	}
	if toggleHz == 0 {
		return
	}
	led := core.GPIOPin(pin)
	if err := gpio.ConfigureOutput(led); err != nil {
		return
	}

	slot := sched.Claim()
	level := false
	_, err = sched.Set(slot, toggleHz, func(any) {
		level = !level
		gpio.SetPin(led, level)
	}, nil)
	if err != nil {
		sched.Unclaim(slot)
		core.DebugPrintln("[TIMER] heartbeat: " + err.Error())
	}
}

// alarmLoop fires due alarms. It sleeps until the next wake, capped so
// that alarms installed meanwhile are picked up promptly.
func alarmLoop(pool *core.AlarmPool) {
	const maxIdle = time.Millisecond
	for {
		now := core.GetTime()
		pool.Dispatch(now)

		sleep := maxIdle
		if next, ok := pool.NextWake(); ok {
			if next <= now {
				sleep = 0
			} else if d := core.TimerToDuration(next - now); d < sleep {
				sleep = d
			}
		}
		time.Sleep(sleep)
	}
}

// halt parks the core; nothing useful can run without a console
func halt() {
	for {
		time.Sleep(time.Second)
	}
}
