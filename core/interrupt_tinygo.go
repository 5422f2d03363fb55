//go:build tinygo

package core

import "runtime/interrupt"

type interruptState = interrupt.State

// disableInterrupts masks interrupts on the calling core and returns the previous mask
func disableInterrupts() interruptState {
	return interrupt.Disable()
}

// restoreInterrupts restores a mask returned by disableInterrupts
func restoreInterrupts(state interruptState) {
	interrupt.Restore(state)
}
