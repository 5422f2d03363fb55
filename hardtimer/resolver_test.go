package hardtimer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveFrequencyTable(t *testing.T) {
	cases := []struct {
		freq      uint32
		unit      Unit
		ticks     int64
		corrected uint32
		status    Status
	}{
		{1, UnitMillis, 1000, 1, StatusOk},
		{10, UnitMillis, 100, 10, StatusOk},
		{1000, UnitMillis, 1, 1000, StatusOk},
		{2000, UnitMicros, 500, 2000, StatusOk},
		{3, UnitMicros, 333333, 3, StatusSlightlyOff},
		{300000, UnitMicros, 3, 333333, StatusSlightlyOff},
		{1000000, UnitMicros, 1, 1000000, StatusOk},
		{7, UnitMicros, 142857, 7, StatusSlightlyOff},
	}
	for _, tc := range cases {
		unit, ticks, corrected, status := ResolveFrequency(tc.freq)
		assert.Equal(t, tc.unit, unit, "freq=%d unit", tc.freq)
		assert.Equal(t, tc.ticks, ticks, "freq=%d ticks", tc.freq)
		assert.Equal(t, tc.corrected, corrected, "freq=%d corrected", tc.freq)
		assert.Equal(t, tc.status, status, "freq=%d status", tc.freq)
	}
}

func TestResolveFrequencyIsSelfConsistent(t *testing.T) {
	for f := uint32(1); f <= DefaultMaxFreq; f++ {
		unit, ticks, corrected, status := ResolveFrequency(f)

		if (status == StatusSlightlyOff) != (MaxResolution%f != 0) {
			t.Fatalf("freq=%d: status %v disagrees with remainder", f, status)
		}
		if uint32(time.Second/unit.Duration(ticks)) != corrected {
			t.Fatalf("freq=%d: corrected %d does not match %d%s", f, corrected, ticks, unit)
		}
		if _, _, again, _ := ResolveFrequency(corrected); again != corrected {
			t.Fatalf("freq=%d: corrected %d re-resolves to %d", f, corrected, again)
		}
	}
}

func TestResolveSlotHint(t *testing.T) {
	reg := newRegistry(t, 3)

	res := reg.Resolve(100, InvalidSlot)
	assert.Equal(t, Slot(0), res.Slot, "invalid hint takes first free slot")
	assert.False(t, reg.Claimed(0), "resolution does not claim")

	s := reg.Claim()
	res = reg.Resolve(100, s)
	assert.Equal(t, s, res.Slot, "claimed hint is kept")

	// Released while its alarm is still running
	reg.setStarted(s, true)
	reg.Unclaim(s)
	res = reg.Resolve(100, s)
	assert.Equal(t, Slot(1), res.Slot)
	assert.Equal(t, StatusOk, res.Status)

	res = reg.Resolve(100, 9)
	assert.Equal(t, Slot(1), res.Slot, "out of range hint")
}

func TestResolveFailsWithoutSlot(t *testing.T) {
	reg := newRegistry(t, 1)
	reg.Claim()

	res := reg.Resolve(300000, InvalidSlot)
	assert.Equal(t, StatusFail, res.Status)
	assert.Equal(t, InvalidSlot, res.Slot)
	assert.Equal(t, uint32(333333), res.Freq, "frequency is still reported")
}

func TestResolveRejectsOutOfRange(t *testing.T) {
	reg := newRegistry(t, 1)
	assert.Equal(t, StatusFail, reg.Resolve(0, 0).Status)
	assert.Equal(t, StatusFail, reg.Resolve(MaxResolution+1, 0).Status)

	for _, freq := range []uint32{0, MaxResolution + 1, ^uint32(0)} {
		_, ticks, corrected, status := ResolveFrequency(freq)
		assert.Equal(t, StatusFail, status, "freq=%d", freq)
		assert.Zero(t, ticks, "freq=%d", freq)
		assert.Zero(t, corrected, "freq=%d", freq)
	}
}

func TestUnitAndStatusStrings(t *testing.T) {
	assert.Equal(t, "ms", UnitMillis.String())
	assert.Equal(t, "us", UnitMicros.String())
	assert.Equal(t, "slightly_off", StatusSlightlyOff.String())
	assert.Equal(t, 3*time.Microsecond, Resolution{Unit: UnitMicros, Ticks: 3}.Interval())
}
