package board

import (
	"github.com/google/uuid"

	"picoboard/nvm"
)

// NVM keys. Offsets are fixed; changing one orphans data on deployed boards.
const (
	KeyDeviceID   nvm.Key = 0  // UUID string + terminator
	KeyBaud       nvm.Key = 37 // uint32
	KeyLEDPin     nvm.Key = 41 // uint8
	KeyBootCount  nvm.Key = 42 // uint32
	KeyHeartbeat  nvm.Key = 46 // uint32, Hz
	KeyTempOffset nvm.Key = 50 // float32, degrees C

	LayoutSize = 54
)

// DeviceIDLen bounds the stored UUID including its terminator
const DeviceIDLen = 37

// critDefaults gives the board a fresh identity and resets its counters
func critDefaults(s *nvm.Store, _ int) error {
	if err := s.WriteString(KeyDeviceID, uuid.NewString(), DeviceIDLen); err != nil {
		return err
	}
	return nvm.Write[uint32](s, KeyBootCount, 0)
}

// SetDefaults writes the factory layout in one commit
func (c *Config) SetDefaults(s *nvm.Store) error {
	return s.SetDefaults(LayoutSize, critDefaults, func(s *nvm.Store) error {
		if err := nvm.Write(s, KeyBaud, c.Baud); err != nil {
			return err
		}
		if err := nvm.Write(s, KeyLEDPin, c.LEDPin); err != nil {
			return err
		}
		if err := nvm.Write(s, KeyHeartbeat, c.HeartbeatHz); err != nil {
			return err
		}
		return s.WriteFloat32(KeyTempOffset, 0)
	})
}

// DeviceID returns the stored UUID. An error means the board was never
// provisioned.
func DeviceID(s *nvm.Store) (uuid.UUID, error) {
	str, err := s.ReadString(KeyDeviceID, DeviceIDLen)
	if err != nil {
		return uuid.Nil, err
	}
	return uuid.Parse(str)
}

// FirstBoot reports whether the layout has never been written
func FirstBoot(s *nvm.Store) bool {
	_, err := DeviceID(s)
	return err != nil
}

// BumpBootCount increments and commits the boot counter
func BumpBootCount(s *nvm.Store) (uint32, error) {
	n, err := nvm.Get[uint32](s, KeyBootCount, false)
	if err != nil {
		n = 0
	}
	n++
	return n, nvm.Write(s, KeyBootCount, n)
}

// Baud returns the stored console baud, or fallback if unset
func Baud(s *nvm.Store, fallback uint32) uint32 {
	b, err := nvm.Get[uint32](s, KeyBaud, false)
	if err != nil || b == 0 {
		return fallback
	}
	return b
}

// Heartbeat returns the stored LED pin and rate, falling back to c
func (c *Config) Heartbeat(s *nvm.Store) (pin uint8, hz uint32) {
	pin, hz = c.LEDPin, c.HeartbeatHz
	if v, err := nvm.Get[uint8](s, KeyLEDPin, false); err == nil {
		pin = v
	}
	if v, err := nvm.Get[uint32](s, KeyHeartbeat, false); err == nil {
		hz = v
	}
	return pin, hz
}

// HeartbeatToggle returns the LED pin and the timer rate that blinks it at
// the heartbeat rate, two toggles per blink. A zero rate means the
// heartbeat is off. Stored values that would exceed MaxFreq once doubled
// fail with ErrHeartbeat.
func (c *Config) HeartbeatToggle(s *nvm.Store) (pin uint8, toggleHz uint32, err error) {
	pin, hz := c.Heartbeat(s)
	if pin == NoLED || hz == 0 {
		return pin, 0, nil
	}
	if hz > c.MaxFreq/2 {
		return pin, 0, ErrHeartbeat
	}
	return pin, hz * 2, nil
}
