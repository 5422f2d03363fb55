// Package flash provides FlashDriver backends for the NVM store: an in-RAM
// NOR flash model for host builds and tests, TinyGo's on-chip flash, and an
// external SPI NOR chip.
package flash

import (
	"errors"
	"sync"
)

// RP2 flash geometry
const (
	SectorSize = 4096 // erase granularity
	PageSize   = 256  // program granularity
)

var ErrOutOfRange = errors.New("flash: out of range")

// Memory emulates NOR flash in RAM. Erase sets bytes to 0xFF; programming
// can only clear bits, so writing over unerased data corrupts it the way
// real flash does.
type Memory struct {
	mu        sync.Mutex
	data      []byte
	eraseSize int64
	writeSize int64

	// Fault injection for tests
	EraseErr   error // returned by every EraseBlocks while non-nil
	ProgramErr error // returned by WriteAt at FailOffset while non-nil
	FailOffset int64

	Erases   int // EraseBlocks calls that succeeded
	Programs int // WriteAt calls that succeeded
}

// NewMemory creates an erased device of size bytes with RP2 geometry
func NewMemory(size int64) *Memory {
	m := &Memory{
		data:       make([]byte, size),
		eraseSize:  SectorSize,
		writeSize:  PageSize,
		FailOffset: -1,
	}
	for i := range m.data {
		m.data[i] = 0xFF
	}
	return m
}

func (m *Memory) ReadAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, ErrOutOfRange
	}
	return copy(p, m.data[off:]), nil
}

func (m *Memory) WriteAt(p []byte, off int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if off < 0 || off+int64(len(p)) > int64(len(m.data)) {
		return 0, ErrOutOfRange
	}
	if m.ProgramErr != nil && (m.FailOffset < 0 || m.FailOffset == off) {
		return 0, m.ProgramErr
	}
	for i, b := range p {
		m.data[off+int64(i)] &= b
	}
	m.Programs++
	return len(p), nil
}

func (m *Memory) Size() int64 { return int64(len(m.data)) }

func (m *Memory) WriteBlockSize() int64 { return m.writeSize }

func (m *Memory) EraseBlockSize() int64 { return m.eraseSize }

func (m *Memory) EraseBlocks(start, length int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EraseErr != nil {
		return m.EraseErr
	}
	if start < 0 || length < 0 || (start+length)*m.eraseSize > int64(len(m.data)) {
		return ErrOutOfRange
	}
	from := start * m.eraseSize
	to := from + length*m.eraseSize
	for i := from; i < to; i++ {
		m.data[i] = 0xFF
	}
	m.Erases++
	return nil
}

// Bytes returns a copy of the raw contents
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.data...)
}
