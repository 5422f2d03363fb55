package core

import "time"

// Alarm clock resolution for RP2 family parts (1MHz timer)
const (
	TimerFreq = 1000000 // ticks per second, one tick per microsecond
)

var (
	bootTime uint64 // Time at boot for uptime calculation
)

// GetTime returns the current system time in microsecond ticks
func GetTime() uint64 {
	return getSystemTicks()
}

// SetTime sets the current system time (for testing/hardware integration)
func SetTime(ticks uint64) {
	setSystemTicks(ticks)
}

// GetUptime returns ticks elapsed since TimerInit
func GetUptime() uint64 {
	return GetTime() - bootTime
}

// TimerFromDuration converts a duration to timer ticks, truncating below one tick
func TimerFromDuration(d time.Duration) uint64 {
	if d <= 0 {
		return 0
	}
	return uint64(d / time.Microsecond)
}

// TimerToDuration converts timer ticks to a duration
func TimerToDuration(ticks uint64) time.Duration {
	return time.Duration(ticks) * time.Microsecond
}

// TimerInit records the boot time for uptime calculation
func TimerInit() {
	bootTime = GetTime()
}
