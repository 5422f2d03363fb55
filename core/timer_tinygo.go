//go:build tinygo

package core

import (
	"sync/atomic"
	"time"
)

var (
	clockStart  = time.Now()
	clockOffset uint64
)

// getSystemTicks reads the runtime monotonic clock in microseconds
func getSystemTicks() uint64 {
	return uint64(time.Since(clockStart)/time.Microsecond) + atomic.LoadUint64(&clockOffset)
}

// setSystemTicks shifts the clock so that it reads ticks now
func setSystemTicks(ticks uint64) {
	atomic.StoreUint64(&clockOffset, 0)
	atomic.StoreUint64(&clockOffset, ticks-getSystemTicks())
}
