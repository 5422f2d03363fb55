package hardtimer

import (
	"time"

	"picoboard/core"
)

// Callback runs from alarm context on every period. Keep it short.
type Callback func(params any)

// AlarmInstaller is the repeating-alarm primitive. core.AlarmPool implements it.
type AlarmInstaller interface {
	AddRepeating(a *core.Alarm, interval time.Duration, handler func(*core.Alarm) bool) error
	Cancel(a *core.Alarm) bool
}

type slotState struct {
	alarm  core.Alarm
	fn     Callback
	params any
	res    Resolution
}

// SlotInfo is a point-in-time view of one slot
type SlotInfo struct {
	Slot    Slot
	Claimed bool
	Started bool
	Freq    uint32
	Unit    Unit
	Ticks   int64
}

// Scheduler binds callbacks to slots and installs their periodic alarms.
// A slot moves Unclaimed -> Claimed -> Started; Cancel returns it to
// Claimed and Unclaim to Unclaimed.
type Scheduler struct {
	reg     *Registry
	alarms  AlarmInstaller
	maxFreq uint32
	slots   [MaxSlots]slotState
}

// NewScheduler creates a scheduler over reg. maxFreq of 0 means DefaultMaxFreq.
func NewScheduler(reg *Registry, alarms AlarmInstaller, maxFreq uint32) *Scheduler {
	if maxFreq == 0 || maxFreq > MaxResolution {
		maxFreq = DefaultMaxFreq
	}
	s := &Scheduler{reg: reg, alarms: alarms, maxFreq: maxFreq}
	for i := range s.slots {
		s.slots[i].alarm.ID = uint8(i)
	}
	return s
}

// Registry returns the slot registry
func (s *Scheduler) Registry() *Registry { return s.reg }

// MaxFreq returns the highest accepted frequency
func (s *Scheduler) MaxFreq() uint32 { return s.maxFreq }

// Claim reserves the lowest free slot, or returns InvalidSlot
func (s *Scheduler) Claim() Slot { return s.reg.Claim() }

// Unclaim releases a claim; a running alarm keeps running
func (s *Scheduler) Unclaim(slot Slot) bool { return s.reg.Unclaim(slot) }

// Claimed reports whether slot is claimed
func (s *Scheduler) Claimed(slot Slot) bool { return s.reg.Claimed(slot) }

// Started reports whether slot has a running alarm
func (s *Scheduler) Started(slot Slot) bool { return s.reg.Started(slot) }

// Set starts fn(params) at freq Hz on hint, or on the first free slot when
// hint is invalid or was released while running. The returned Resolution
// carries the slot used and the frequency actually achieved; its Status is
// StatusSlightlyOff when freq could not be met exactly.
//
// The alarm runs on a self-relative period, so callback run time does not
// shift later fires. Setting a slot that is already started fails with
// ErrStarted and changes nothing.
func (s *Scheduler) Set(hint Slot, freq uint32, fn Callback, params any) (Resolution, error) {
	if fn == nil {
		return Resolution{Slot: hint, Status: StatusFail}, ErrNilCallback
	}
	if freq == 0 || freq > s.maxFreq {
		return Resolution{Slot: hint, Freq: freq, Status: StatusFail}, ErrFrequency
	}

	res, err := s.reg.reserve(freq, hint)
	if err != nil {
		return res, err
	}

	st := &s.slots[res.Slot]
	prevFn, prevParams := st.fn, st.params
	st.fn = fn
	st.params = params
	st.res = res

	err = s.alarms.AddRepeating(&st.alarm, res.Interval(), func(*core.Alarm) bool {
		st.fn(st.params)
		return true
	})
	if err != nil {
		st.fn = prevFn
		st.params = prevParams
		s.reg.setStarted(res.Slot, false)
		core.DebugPrintln("[TIMER] slot " + core.Itoa(int(res.Slot)) + " install failed: " + err.Error())
		return res, ErrInstall
	}

	core.DebugPrintln("[TIMER] slot " + core.Itoa(int(res.Slot)) +
		" started " + core.Utoa(uint64(res.Freq)) + "Hz (" +
		core.Itoa(int(res.Ticks)) + res.Unit.String() + ")")
	return res, nil
}

// Cancel stops the alarm on slot. If the hardware refuses, the slot stays
// started and ErrCancel is returned.
func (s *Scheduler) Cancel(slot Slot) error {
	if !s.reg.Started(slot) {
		return ErrNotStarted
	}
	if !s.alarms.Cancel(&s.slots[slot].alarm) {
		return ErrCancel
	}
	s.reg.setStarted(slot, false)
	core.DebugPrintln("[TIMER] slot " + core.Itoa(int(slot)) + " cancelled")
	return nil
}

// Snapshot returns the state of every slot
func (s *Scheduler) Snapshot() []SlotInfo {
	out := make([]SlotInfo, s.reg.Len())
	for i := range out {
		slot := Slot(i)
		info := SlotInfo{
			Slot:    slot,
			Claimed: s.reg.Claimed(slot),
			Started: s.reg.Started(slot),
		}
		if info.Started {
			res := s.slots[i].res
			info.Freq, info.Unit, info.Ticks = res.Freq, res.Unit, res.Ticks
		}
		out[i] = info
	}
	return out
}
