// Package hardtimer multiplexes a fixed pool of hardware alarm slots into
// periodic callbacks: slot allocation, frequency resolution and alarm
// installation.
package hardtimer

import (
	"picoboard/core"
)

// MaxSlots is the largest slot count a Registry can track
const MaxSlots = 32

// Slot identifies a timer slot, 0..N-1
type Slot int8

// InvalidSlot is returned when no slot is available
const InvalidSlot Slot = -1

// slotSet is a bitset of slots, bit i for slot i
type slotSet uint32

func (s slotSet) has(i Slot) bool { return s&(1<<uint(i)) != 0 }

func (s *slotSet) set(i Slot, v bool) {
	if v {
		*s |= 1 << uint(i)
	} else {
		*s &^= 1 << uint(i)
	}
}

// Registry tracks the claimed and started state of each slot. The two flags
// are independent: a slot can be started without a claim and can stay
// started after its claim is released.
type Registry struct {
	cs      *core.CriticalSection
	n       int
	claimed slotSet
	started slotSet
}

// NewRegistry creates a registry of n slots guarded by cs
func NewRegistry(n int, cs *core.CriticalSection) (*Registry, error) {
	if n <= 0 || n > MaxSlots {
		return nil, ErrSlotCount
	}
	if cs == nil {
		cs = core.NewCriticalSection()
	}
	return &Registry{cs: cs, n: n}, nil
}

// Len returns the number of slots
func (r *Registry) Len() int { return r.n }

// Valid reports whether s names a slot of this registry
func (r *Registry) Valid(s Slot) bool {
	return s >= 0 && int(s) < r.n
}

// Claim marks the lowest-indexed slot that is neither claimed nor started
// as claimed and returns it, or InvalidSlot if every slot is taken.
func (r *Registry) Claim() Slot {
	slot := InvalidSlot
	r.cs.Exclusive(func() {
		slot = r.next()
		if slot != InvalidSlot {
			r.claimed.set(slot, true)
		}
	})
	return slot
}

// Unclaim releases a claim. Returns false, changing nothing, if s is not claimed.
func (r *Registry) Unclaim(s Slot) bool {
	ok := false
	r.cs.Exclusive(func() {
		if r.Valid(s) && r.claimed.has(s) {
			r.claimed.set(s, false)
			ok = true
		}
	})
	return ok
}

// Claimed reports whether s is claimed
func (r *Registry) Claimed(s Slot) bool {
	return r.Valid(s) && r.claimed.has(s)
}

// Started reports whether s has an installed alarm
func (r *Registry) Started(s Slot) bool {
	return r.Valid(s) && r.started.has(s)
}

// next returns the first slot that is neither claimed nor started
func (r *Registry) next() Slot {
	for i := 0; i < r.n; i++ {
		s := Slot(i)
		if !r.claimed.has(s) && !r.started.has(s) {
			return s
		}
	}
	return InvalidSlot
}

func (r *Registry) setStarted(s Slot, v bool) {
	if !r.Valid(s) {
		return
	}
	r.cs.Exclusive(func() {
		r.started.set(s, v)
	})
}

// reserve resolves freq against hint and marks the resulting slot started
// in one hold, so concurrent callers never pick the same free slot. The
// caller clears the mark with setStarted if installing the alarm fails.
func (r *Registry) reserve(freq uint32, hint Slot) (Resolution, error) {
	var (
		res Resolution
		err error
	)
	r.cs.Exclusive(func() {
		res = r.Resolve(freq, hint)
		switch {
		case res.Status == StatusFail:
			err = ErrNoSlot
		case r.started.has(res.Slot):
			err = ErrStarted
		default:
			r.started.set(res.Slot, true)
		}
	})
	return res, err
}
