package core

import (
	"runtime"
	"sync/atomic"
)

// CriticalSection brackets flash erase/program steps and any mutation of
// state shared with alarm handlers or the second core. While held, interrupts
// on the entering core are masked.
//
// It does not nest. Enter on a held section returns false and changes
// nothing; Exit on a free section returns false. One instance is shared by
// every subsystem on a device.
type CriticalSection struct {
	held  uint32 // atomic bool (0 = free, 1 = held)
	state interruptState
}

// NewCriticalSection creates a free critical section
func NewCriticalSection() *CriticalSection {
	return &CriticalSection{}
}

// Enter masks interrupts and takes the section.
// Returns false without side effects if the section is already held.
func (c *CriticalSection) Enter() bool {
	if !atomic.CompareAndSwapUint32(&c.held, 0, 1) {
		return false
	}
	c.state = disableInterrupts()
	return true
}

// Exit restores the interrupt mask captured by Enter and frees the section.
// Returns false if the section is not held.
func (c *CriticalSection) Exit() bool {
	if atomic.LoadUint32(&c.held) == 0 {
		return false
	}
	state := c.state
	if !atomic.CompareAndSwapUint32(&c.held, 1, 0) {
		return false
	}
	restoreInterrupts(state)
	return true
}

// Held reports whether the section is currently entered
func (c *CriticalSection) Held() bool {
	return atomic.LoadUint32(&c.held) != 0
}

// Guard runs fn inside the section. If the section is already held, fn runs
// under the existing hold and the section stays held afterwards.
func (c *CriticalSection) Guard(fn func()) {
	entered := c.Enter()
	defer func() {
		if entered {
			c.Exit()
		}
	}()
	fn()
}

// Exclusive waits until the section is free, then runs fn holding it.
// Unlike Guard it never runs fn under another context's hold, so it must
// not be called by a context that already holds the section.
func (c *CriticalSection) Exclusive(fn func()) {
	for !c.Enter() {
		runtime.Gosched()
	}
	defer c.Exit()
	fn()
}
