package core

// FlashDriver is the raw flash primitive: byte-addressed reads and page
// programs plus block erase. Offsets are relative to the start of the
// driver's data area. Programming assumes the target bytes are erased.
//
// TinyGo's machine.Flash and tinygo.org/x/drivers/flash.Device both satisfy it.
type FlashDriver interface {
	ReadAt(p []byte, off int64) (n int, err error)
	WriteAt(p []byte, off int64) (n int, err error)

	// Size returns the usable size in bytes
	Size() int64

	// WriteBlockSize returns the program granularity (page size)
	WriteBlockSize() int64

	// EraseBlockSize returns the erase granularity (sector size)
	EraseBlockSize() int64

	// EraseBlocks erases length blocks starting at block index start
	EraseBlocks(start, length int64) error
}
