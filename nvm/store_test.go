package nvm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picoboard/core"
	"picoboard/flash"
)

const testSize = 64

func newStore(t *testing.T, size int) (*Store, *flash.Memory) {
	t.Helper()
	mem := flash.NewMemory(4 * SectorSize)
	s, err := New(mem, nil)
	require.NoError(t, err)
	if size > 0 {
		require.NoError(t, s.Init(size))
	}
	return s, mem
}

// heldCheck records whether the critical section was held for each flash step
type heldCheck struct {
	*flash.Memory
	cs      *core.CriticalSection
	erases  []bool
	program []bool
}

func (h *heldCheck) EraseBlocks(start, length int64) error {
	h.erases = append(h.erases, h.cs.Held())
	return h.Memory.EraseBlocks(start, length)
}

func (h *heldCheck) WriteAt(p []byte, off int64) (int, error) {
	h.program = append(h.program, h.cs.Held())
	return h.Memory.WriteAt(p, off)
}

func TestNewRejectsGeometry(t *testing.T) {
	_, err := New(flash.NewMemory(SectorSize/2), nil)
	assert.ErrorIs(t, err, ErrFlashGeometry)
}

func TestInit(t *testing.T) {
	s, _ := newStore(t, 0)

	_, ok := s.MaxSize()
	assert.False(t, ok)
	assert.ErrorIs(t, s.Init(DefaultSize), ErrInvalidSize)
	assert.ErrorIs(t, s.Init(SectorSize+1), ErrInvalidSize)
	assert.False(t, s.Began())

	require.NoError(t, s.Init(64))
	require.NoError(t, Write[uint32](s, 0, 0xCAFEF00D))

	before, err := s.Dump(0, 64)
	require.NoError(t, err)
	err = s.Init(64)
	assert.ErrorIs(t, err, ErrAlreadyStarted)
	assert.Equal(t, StartAlreadyStarted, StartCodeOf(err))
	after, err := s.Dump(0, 64)
	require.NoError(t, err)
	assert.Equal(t, before, after, "second Init leaves the mirror alone")

	max, ok := s.MaxSize()
	assert.True(t, ok)
	assert.Equal(t, SectorSize, max)
	assert.Equal(t, 64, s.Size())
}

func TestInitLoadsTopSector(t *testing.T) {
	mem := flash.NewMemory(2 * SectorSize)
	_, err := mem.WriteAt([]byte{0x12, 0x34}, SectorSize)
	require.NoError(t, err)

	s, err := New(mem, nil)
	require.NoError(t, err)
	require.NoError(t, s.Init(8))

	v, err := Get[uint16](s, 0, false)
	require.NoError(t, err)
	assert.Equal(t, uint16(0x1234), v)
}

func TestNotStarted(t *testing.T) {
	s, _ := newStore(t, 0)

	assert.ErrorIs(t, Write[uint8](s, 0, 1), ErrNotStarted)
	_, err := Get[uint8](s, 0, true)
	assert.ErrorIs(t, err, ErrNotStarted)
	assert.ErrorIs(t, s.Commit(), ErrNotStarted)
	assert.ErrorIs(t, s.WriteString(0, "x", 4), ErrNotStarted)
	_, err = s.ReadString(0, 4)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestCommitProgramsWholeSector(t *testing.T) {
	cs := core.NewCriticalSection()
	dev := &heldCheck{Memory: flash.NewMemory(2 * SectorSize), cs: cs}
	s, err := New(dev, cs)
	require.NoError(t, err)
	require.NoError(t, s.Init(testSize))

	require.NoError(t, Write[uint16](s, 2, 0xBEEF))

	assert.Equal(t, 1, dev.Erases)
	assert.Equal(t, SectorSize/PageSize, dev.Programs)
	assert.Equal(t, []bool{true}, dev.erases)
	for i, held := range dev.program {
		assert.True(t, held, "page %d programmed outside the critical section", i)
	}
	assert.False(t, cs.Held())

	raw := dev.Bytes()
	assert.Equal(t, []byte{0xFF, 0xFF, 0xBE, 0xEF}, raw[SectorSize:SectorSize+4])
	assert.Equal(t, byte(0xFF), raw[0], "only the top sector is touched")
}

func TestCommitUnderHeldSection(t *testing.T) {
	cs := core.NewCriticalSection()
	mem := flash.NewMemory(SectorSize)
	s, err := New(mem, cs)
	require.NoError(t, err)
	require.NoError(t, s.Init(testSize))

	require.True(t, cs.Enter())
	require.NoError(t, s.Commit())
	assert.True(t, cs.Held(), "commit does not release a hold it did not take")
	assert.True(t, cs.Exit())
}

func TestCommitEraseFailure(t *testing.T) {
	s, mem := newStore(t, testSize)
	mem.EraseErr = errors.New("erase timeout")

	err := Write[uint8](s, 0, 7)
	assert.ErrorIs(t, err, ErrFailed)
	assert.Equal(t, 0, mem.Programs)

	v, err := Get[uint8](s, 0, false)
	require.NoError(t, err)
	assert.Equal(t, uint8(7), v, "mirror keeps the value for a retry")

	mem.EraseErr = nil
	require.NoError(t, s.Commit())
	assert.Equal(t, byte(7), mem.Bytes()[3*SectorSize])
}

func TestCommitProgramFailure(t *testing.T) {
	s, mem := newStore(t, testSize)
	mem.ProgramErr = errors.New("verify")
	mem.FailOffset = 3*SectorSize + 2*PageSize

	assert.ErrorIs(t, Write[uint8](s, 0, 7), ErrFailed)
	assert.Equal(t, 1, mem.Erases)
	assert.Equal(t, 2, mem.Programs)
}

func TestBatchCommitsOnce(t *testing.T) {
	s, mem := newStore(t, testSize)

	err := s.Batch(func() error {
		assert.True(t, s.ChainLocked())
		for i := 0; i < 8; i++ {
			if err := Write(s, Key(i), uint8(i)); err != nil {
				return err
			}
		}
		return s.Commit()
	})
	require.NoError(t, err)
	assert.False(t, s.ChainLocked())
	assert.Equal(t, 1, mem.Erases)
}

func TestBatchNests(t *testing.T) {
	s, mem := newStore(t, testSize)

	err := s.Batch(func() error {
		if err := s.WriteString(0, "abc", 8); err != nil {
			return err
		}
		assert.True(t, s.ChainLocked(), "inner write keeps the outer lock")
		assert.Equal(t, 0, mem.Erases)
		return Write[uint32](s, 16, 1)
	})
	require.NoError(t, err)
	assert.Equal(t, 1, mem.Erases)
}

func TestBatchFailureSkipsCommit(t *testing.T) {
	s, mem := newStore(t, testSize)
	boom := errors.New("boom")

	err := s.Batch(func() error {
		_ = Write[uint8](s, 0, 1)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, s.ChainLocked())
	assert.Equal(t, 0, mem.Erases)
}

func TestDump(t *testing.T) {
	s, _ := newStore(t, testSize)
	require.NoError(t, Write[uint16](s, 4, 0x0102))

	b, err := s.Dump(3, 4)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0x01, 0x02, 0xFF}, b)

	_, err = s.Dump(testSize-1, 2)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestStartCodes(t *testing.T) {
	assert.Equal(t, StartOk, StartCodeOf(nil))
	assert.Equal(t, StartInvalidSize, StartCodeOf(ErrInvalidSize))
	assert.Equal(t, StartFailed, StartCodeOf(ErrFailed))
	assert.Equal(t, "already_started", StartAlreadyStarted.String())
}
