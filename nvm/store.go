// Package nvm keeps a RAM mirror of the top flash sector and persists it on
// commit. Values are addressed by byte offset (Key) and stored big-endian
// with no header; the meaning of each key is fixed by the board layout.
package nvm

import (
	"picoboard/core"
)

// Flash geometry the store is built for
const (
	SectorSize = 4096
	PageSize   = 256
)

// DefaultSize is the "no size" sentinel; Init rejects it
const DefaultSize = 0

// Key is a byte offset into the store
type Key uint16

// Store is the NVM mirror. Reads and writes touch only the mirror; Commit
// erases the backing sector and programs it back page by page.
type Store struct {
	cs     *core.CriticalSection
	dev    core.FlashDriver
	offset int64 // byte offset of the backing sector in dev

	began  bool
	size   int
	batch  int // chain lock depth
	mirror [SectorSize]byte
}

// New creates an uninitialized store over the last sector of dev.
// cs must be the device-wide critical section.
func New(dev core.FlashDriver, cs *core.CriticalSection) (*Store, error) {
	if dev.EraseBlockSize() != SectorSize || SectorSize%dev.WriteBlockSize() != 0 {
		return nil, ErrFlashGeometry
	}
	sectors := dev.Size() / SectorSize
	if sectors < 1 {
		return nil, ErrFlashGeometry
	}
	if cs == nil {
		cs = core.NewCriticalSection()
	}
	return &Store{
		cs:     cs,
		dev:    dev,
		offset: (sectors - 1) * SectorSize,
	}, nil
}

// Init loads the backing sector into the mirror and opens size bytes of it
// for typed access. It succeeds once.
func (s *Store) Init(size int) error {
	if s.began {
		return ErrAlreadyStarted
	}
	if size == DefaultSize || size < 0 || size > SectorSize {
		return ErrInvalidSize
	}

	if _, err := s.dev.ReadAt(s.mirror[:], s.offset); err != nil {
		core.DebugPrintln("[NVM] read failed: " + err.Error())
		return ErrFailed
	}
	s.size = size
	s.began = true
	core.DebugPrintln("[NVM] started, size " + core.Itoa(size))
	return nil
}

// MaxSize returns the sector size once the store has begun
func (s *Store) MaxSize() (int, bool) {
	if s.began {
		return SectorSize, true
	}
	return DefaultSize, false
}

// Size returns the size passed to Init
func (s *Store) Size() int { return s.size }

// Began reports whether Init succeeded
func (s *Store) Began() bool { return s.began }

// ChainLocked reports whether commits are currently suppressed
func (s *Store) ChainLocked() bool { return s.batch > 0 }

// Commit writes the mirror back to flash. It does nothing while a Batch is
// running. The erase and each page program run in their own critical
// section; a failed step aborts the commit and leaves flash partly written.
func (s *Store) Commit() error {
	if !s.began {
		return ErrNotStarted
	}
	if s.batch > 0 {
		return nil
	}

	block := s.offset / SectorSize
	var err error
	s.cs.Guard(func() {
		err = s.dev.EraseBlocks(block, 1)
	})
	core.RecordTiming(core.EvtFlashErase, 0, uint32(core.GetTime()), uint32(s.offset), 0)
	if err != nil {
		core.DebugPrintln("[NVM] erase failed: " + err.Error())
		return ErrFailed
	}

	for page := 0; page < SectorSize/PageSize; page++ {
		off := page * PageSize
		s.cs.Guard(func() {
			_, err = s.dev.WriteAt(s.mirror[off:off+PageSize], s.offset+int64(off))
		})
		core.RecordTiming(core.EvtFlashProgram, uint8(page), uint32(core.GetTime()), uint32(s.offset)+uint32(off), 0)
		if err != nil {
			core.DebugPrintln("[NVM] program page " + core.Itoa(page) + " failed: " + err.Error())
			return ErrFailed
		}
	}
	return nil
}

// Batch runs fn with per-write commits suppressed, then commits once if fn
// succeeded. Batches nest; only the outermost one commits. If fn fails the
// lock is released and nothing is committed.
func (s *Store) Batch(fn func() error) error {
	if !s.began {
		return ErrNotStarted
	}
	s.batch++
	err := fn()
	s.batch--
	if err != nil {
		return err
	}
	return s.Commit()
}

// Dump returns a copy of n mirror bytes starting at key
func (s *Store) Dump(key Key, n int) ([]byte, error) {
	if err := s.check(key, n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, s.mirror[key:])
	return out, nil
}

func (s *Store) check(key Key, width int) error {
	if !s.began {
		return ErrNotStarted
	}
	if width < 0 || int(key)+width > s.size {
		return ErrOutOfRange
	}
	return nil
}

// written commits after a single write unless a Batch is running
func (s *Store) written() error {
	if s.batch > 0 {
		return nil
	}
	return s.Commit()
}
