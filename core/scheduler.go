package core

import (
	"errors"
	"time"
)

// Alarm is a repeating alarm owned by the caller and installed in an AlarmPool.
// The zero value is ready to install.
type Alarm struct {
	ID       uint8  // Reported in timing events
	WakeTime uint64 // Next fire time in ticks
	Interval uint64 // Period in ticks
	Handler  func(*Alarm) bool
	next     *Alarm
	active   bool
	gen      uint32 // bumped on every install
}

// Active reports whether the alarm is installed
func (a *Alarm) Active() bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)
	return a.active
}

var (
	ErrAlarmActive   = errors.New("alarm_active")
	ErrAlarmInterval = errors.New("alarm_interval")
	ErrAlarmHandler  = errors.New("alarm_handler")
)

// AlarmPool multiplexes repeating alarms onto one time base.
// Installed alarms are kept in a list sorted by WakeTime.
type AlarmPool struct {
	head *Alarm
	now  func() uint64
}

// NewAlarmPool creates a pool reading time from now (GetTime if nil)
func NewAlarmPool(now func() uint64) *AlarmPool {
	if now == nil {
		now = GetTime
	}
	return &AlarmPool{now: now}
}

// AddRepeating installs a at a fixed period. The first fire is one interval
// from now; every later fire is one interval after the previous scheduled
// fire, regardless of how long the handler ran. The handler returns false
// to retire the alarm.
func (p *AlarmPool) AddRepeating(a *Alarm, interval time.Duration, handler func(*Alarm) bool) error {
	if handler == nil {
		return ErrAlarmHandler
	}
	ticks := TimerFromDuration(interval)
	if ticks == 0 {
		return ErrAlarmInterval
	}

	state := disableInterrupts()
	defer restoreInterrupts(state)

	if a.active {
		return ErrAlarmActive
	}
	a.Interval = ticks
	a.Handler = handler
	a.WakeTime = p.now() + ticks
	a.next = nil
	a.active = true
	a.gen++
	p.insert(a)

	RecordTiming(EvtAlarmAdd, a.ID, uint32(a.WakeTime), uint32(ticks), 0)
	return nil
}

// Cancel removes a from the pool. Returns false if it is not installed.
func (p *AlarmPool) Cancel(a *Alarm) bool {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if !a.active {
		return false
	}
	p.remove(a)
	a.active = false
	RecordTiming(EvtAlarmCancel, a.ID, uint32(p.now()), 0, 0)
	return true
}

// NextWake returns the earliest wake time, or false if nothing is installed
func (p *AlarmPool) NextWake() (uint64, bool) {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	if p.head == nil {
		return 0, false
	}
	return p.head.WakeTime, true
}

// Len returns the number of installed alarms
func (p *AlarmPool) Len() int {
	state := disableInterrupts()
	defer restoreInterrupts(state)

	n := 0
	for a := p.head; a != nil; a = a.next {
		n++
	}
	return n
}

// Dispatch fires every alarm due at or before now, in wake order, and
// returns how many handlers ran. An alarm that falls behind fires again in
// the same pass until it has caught up with now.
func (p *AlarmPool) Dispatch(now uint64) int {
	fired := 0
	for {
		state := disableInterrupts()
		a := p.head
		if a == nil || a.WakeTime > now {
			restoreInterrupts(state)
			return fired
		}
		p.head = a.next
		a.next = nil
		gen := a.gen
		restoreInterrupts(state)

		RecordTiming(EvtAlarmFire, a.ID, uint32(now), uint32(a.WakeTime), 0)
		again := a.Handler(a)
		fired++

		state = disableInterrupts()
		switch {
		case !a.active || a.gen != gen:
			// cancelled (or cancelled and reinstalled) from inside its own handler
		case again:
			a.WakeTime += a.Interval
			if a.WakeTime <= now {
				RecordTiming(EvtAlarmLate, a.ID, uint32(now), uint32(a.WakeTime), 0)
				DebugAsync("[TIMER] alarm " + itoa(int(a.ID)) + " late by " + utoa(uint32(now-a.WakeTime)) + "us")
			}
			p.insert(a)
		default:
			a.active = false
		}
		restoreInterrupts(state)
	}
}

// insert inserts an alarm in sorted order by WakeTime
// Must be called with interrupts disabled
func (p *AlarmPool) insert(a *Alarm) {
	if p.head == nil || a.WakeTime < p.head.WakeTime {
		a.next = p.head
		p.head = a
		return
	}

	current := p.head
	for current.next != nil && current.next.WakeTime <= a.WakeTime {
		current = current.next
	}

	a.next = current.next
	current.next = a
}

// remove unlinks an alarm if present
// Must be called with interrupts disabled
func (p *AlarmPool) remove(a *Alarm) {
	if p.head == a {
		p.head = a.next
		a.next = nil
		return
	}
	for current := p.head; current != nil; current = current.next {
		if current.next == a {
			current.next = a.next
			a.next = nil
			return
		}
	}
}
