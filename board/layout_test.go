package board

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"picoboard/flash"
	"picoboard/nvm"
)

func newStore(t *testing.T) (*nvm.Store, *flash.Memory) {
	t.Helper()
	mem := flash.NewMemory(2 * nvm.SectorSize)
	s, err := nvm.New(mem, nil)
	require.NoError(t, err)
	require.NoError(t, s.Init(64))
	return s, mem
}

func TestLayoutFitsDeviceID(t *testing.T) {
	assert.Equal(t, DeviceIDLen, int(KeyBaud-KeyDeviceID))
	assert.Len(t, uuid.NewString(), DeviceIDLen-1)
}

func TestSetDefaults(t *testing.T) {
	cfg, err := Profile("pico")
	require.NoError(t, err)
	s, mem := newStore(t)

	assert.True(t, FirstBoot(s))
	require.NoError(t, cfg.SetDefaults(s))
	assert.Equal(t, 1, mem.Erases, "defaults commit once")
	assert.False(t, FirstBoot(s))

	id, err := DeviceID(s)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)

	assert.Equal(t, uint32(115200), Baud(s, 9600))
	pin, hz := cfg.Heartbeat(s)
	assert.Equal(t, uint8(25), pin)
	assert.Equal(t, uint32(2), hz)

	off, err := s.GetFloat32(KeyTempOffset, false)
	require.NoError(t, err)
	assert.Zero(t, off)
}

func TestDefaultsSurviveReload(t *testing.T) {
	cfg, err := Profile("pico")
	require.NoError(t, err)
	s, mem := newStore(t)
	require.NoError(t, cfg.SetDefaults(s))
	want, err := DeviceID(s)
	require.NoError(t, err)

	reloaded, err := nvm.New(mem, nil)
	require.NoError(t, err)
	require.NoError(t, reloaded.Init(64))
	got, err := DeviceID(reloaded)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestBootCount(t *testing.T) {
	s, _ := newStore(t)

	n, err := BumpBootCount(s)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), n)
	n, err = BumpBootCount(s)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)
}

func TestFallbacks(t *testing.T) {
	cfg, err := Profile("pico")
	require.NoError(t, err)
	s, _ := newStore(t)

	assert.Equal(t, uint32(9600), Baud(s, 9600))
	pin, hz := cfg.Heartbeat(s)
	assert.Equal(t, cfg.LEDPin, pin)
	assert.Equal(t, cfg.HeartbeatHz, hz)
}

func TestHeartbeatToggle(t *testing.T) {
	cfg, err := Profile("pico")
	require.NoError(t, err)
	s, _ := newStore(t)

	pin, toggle, err := cfg.HeartbeatToggle(s)
	require.NoError(t, err)
	assert.Equal(t, cfg.LEDPin, pin)
	assert.Equal(t, cfg.HeartbeatHz*2, toggle)

	require.NoError(t, nvm.Write(s, KeyHeartbeat, uint32(0)))
	_, toggle, err = cfg.HeartbeatToggle(s)
	require.NoError(t, err)
	assert.Zero(t, toggle, "zero rate disables the heartbeat")

	require.NoError(t, nvm.Write(s, KeyHeartbeat, cfg.MaxFreq/2))
	_, toggle, err = cfg.HeartbeatToggle(s)
	require.NoError(t, err)
	assert.Equal(t, cfg.MaxFreq, toggle)

	// Doubling these would pass MaxFreq or wrap around
	for _, hz := range []uint32{cfg.MaxFreq/2 + 1, 1<<31 + 1, 0xFFFFFFFE} {
		require.NoError(t, nvm.Write(s, KeyHeartbeat, hz))
		_, toggle, err = cfg.HeartbeatToggle(s)
		assert.ErrorIs(t, err, ErrHeartbeat, "hz=%d", hz)
		assert.Zero(t, toggle)
	}

	require.NoError(t, nvm.Write(s, KeyHeartbeat, uint32(5)))
	cfg.LEDPin = NoLED
	_, toggle, err = cfg.HeartbeatToggle(s)
	require.NoError(t, err)
	assert.Zero(t, toggle, "no LED disables the heartbeat")
}
