package hardtimer

import "time"

// Alarm hardware limits for RP2 parts
const (
	MaxResolution  = 1000000 // alarm ticks per second (1us)
	DefaultMaxFreq = 1000000 // highest frequency a slot may be set to
)

// Unit is the time unit of an alarm interval
type Unit uint8

const (
	UnitMillis Unit = iota
	UnitMicros
)

func (u Unit) String() string {
	switch u {
	case UnitMillis:
		return "ms"
	case UnitMicros:
		return "us"
	default:
		return "unknown"
	}
}

// Duration converts a tick count in this unit to a duration
func (u Unit) Duration(ticks int64) time.Duration {
	if u == UnitMillis {
		return time.Duration(ticks) * time.Millisecond
	}
	return time.Duration(ticks) * time.Microsecond
}

// Status is the outcome of resolving a frequency request
type Status uint8

const (
	StatusOk          Status = iota // frequency is exactly achievable
	StatusSlightlyOff               // Freq holds the nearest achievable frequency
	StatusFail                      // no slot available
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusSlightlyOff:
		return "slightly_off"
	case StatusFail:
		return "fail"
	default:
		return "unknown"
	}
}

// Resolution describes how a frequency request maps onto an alarm
type Resolution struct {
	Slot   Slot
	Unit   Unit
	Ticks  int64
	Freq   uint32 // frequency actually produced by Unit and Ticks
	Status Status
}

// Interval returns the alarm period
func (r Resolution) Interval() time.Duration {
	return r.Unit.Duration(r.Ticks)
}

// ResolveFrequency picks the unit and tick count for freq. Milliseconds are
// used only when they lose nothing over microseconds. A freq outside
// 1..MaxResolution yields StatusFail and zero values.
func ResolveFrequency(freq uint32) (unit Unit, ticks int64, corrected uint32, status Status) {
	if freq == 0 || freq > MaxResolution {
		return UnitMicros, 0, 0, StatusFail
	}
	status = StatusOk
	if MaxResolution%freq != 0 {
		status = StatusSlightlyOff
	}

	targetUS := int64(MaxResolution / freq)
	if targetUS%1000 == 0 && status == StatusOk {
		unit = UnitMillis
		ticks = targetUS / 1000
	} else {
		unit = UnitMicros
		ticks = targetUS
	}

	if unit == UnitMillis {
		corrected = uint32(MaxResolution / (ticks * 1000))
	} else {
		corrected = uint32(MaxResolution / ticks)
	}
	return unit, ticks, corrected, status
}

// Resolve computes the alarm parameters for freq and settles which slot to
// use. A hint that is out of range, or that was released while its alarm
// kept running, is replaced by the first free slot without claiming it.
func (r *Registry) Resolve(freq uint32, hint Slot) Resolution {
	res := Resolution{Slot: hint}
	res.Unit, res.Ticks, res.Freq, res.Status = ResolveFrequency(freq)
	if res.Status == StatusFail {
		return res
	}

	if !r.Valid(hint) || (!r.Claimed(hint) && r.Started(hint)) {
		res.Slot = r.next()
	}
	if res.Slot == InvalidSlot {
		res.Status = StatusFail
	}
	return res
}
