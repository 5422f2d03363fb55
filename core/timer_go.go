//go:build !tinygo

package core

import "sync/atomic"

var systemTicks uint64

// getSystemTicks returns the current system ticks (regular Go implementation)
func getSystemTicks() uint64 {
	return atomic.LoadUint64(&systemTicks)
}

// setSystemTicks sets the system ticks (regular Go implementation)
func setSystemTicks(ticks uint64) {
	atomic.StoreUint64(&systemTicks, ticks)
}
