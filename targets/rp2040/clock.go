//go:build rp2040

package main

import (
	"runtime/volatile"
	"unsafe"

	"picoboard/core"
)

// RP2040 Timer peripheral memory map
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x24 // Raw timer high word
	timerTIMERAWL = timerBase + 0x28 // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// InitClock aligns the core clock with the 1MHz hardware timer so alarm
// times and timing-ring clocks match the chip's own counter
func InitClock() {
	UpdateSystemTime()
	core.TimerInit()
}

// GetHardwareUptime reads the full 64-bit RP2040 hardware timer
func GetHardwareUptime() uint64 {
	// Read high, low, high again to detect rollover
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()
		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

// UpdateSystemTime resynchronizes the core clock with hardware time
func UpdateSystemTime() {
	core.SetTime(GetHardwareUptime())
}
