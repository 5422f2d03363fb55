// Package board describes a board profile and the NVM field layout that
// firmware and console share.
package board

import (
	"encoding/json"
	"errors"

	"picoboard/core"
	"picoboard/hardtimer"
	"picoboard/nvm"
)

// NoLED marks a board whose status LED is not on an RP2040 GPIO
const NoLED = 0xFF

// Config is a board profile
type Config struct {
	Name          string `json:"name"`
	Timers        int    `json:"timers"`       // logical timer slots
	MaxFreq       uint32 `json:"max_freq"`     // highest accepted timer frequency, Hz
	TickHz        uint32 `json:"tick_hz"`      // alarm clock resolution
	NVMSize       int    `json:"nvm_size"`     // bytes of the NVM sector in use
	LEDPin        uint8  `json:"led_pin"`      // status LED GPIO or NoLED
	Baud          uint32 `json:"baud"`         // console UART baud
	HeartbeatHz   uint32 `json:"heartbeat_hz"` // LED blinks per second, 0 disables
	ExternalFlash bool   `json:"external_flash"`
}

var (
	ErrUnknownProfile = errors.New("unknown_profile")
	ErrTimers         = errors.New("invalid_timer_count")
	ErrMaxFreq        = errors.New("invalid_max_freq")
	ErrTickHz         = errors.New("invalid_tick_hz")
	ErrNVMSize        = errors.New("invalid_nvm_size")
	ErrBaud           = errors.New("invalid_baud")
	ErrHeartbeat      = errors.New("invalid_heartbeat")
)

// MaxTimers is the number of slots a board may expose
const MaxTimers = 16

var profiles = map[string]string{
	"pico": `{
		"name": "pico",
		"timers": 14,
		"led_pin": 25,
		"heartbeat_hz": 2
	}`,
	// The Pico W LED hangs off the CYW43 radio
	"pico_w": `{
		"name": "pico_w",
		"timers": 14,
		"led_pin": 255
	}`,
}

// Profile returns a built-in profile by name
func Profile(name string) (Config, error) {
	raw, ok := profiles[name]
	if !ok {
		return Config{}, ErrUnknownProfile
	}
	return Parse([]byte(raw))
}

// Parse decodes a JSON profile, fills unset fields and validates it
func Parse(data []byte) (Config, error) {
	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Timers == 0 {
		c.Timers = 14
	}
	if c.MaxFreq == 0 {
		c.MaxFreq = hardtimer.DefaultMaxFreq
	}
	if c.TickHz == 0 {
		c.TickHz = core.TimerFreq
	}
	if c.NVMSize == 0 {
		c.NVMSize = 64
	}
	if c.Baud == 0 {
		c.Baud = 115200
	}
}

// Validate checks the profile against what the firmware supports
func (c *Config) Validate() error {
	if c.Timers < 1 || c.Timers > MaxTimers {
		return ErrTimers
	}
	if c.MaxFreq == 0 || c.MaxFreq > hardtimer.MaxResolution {
		return ErrMaxFreq
	}
	if c.TickHz != core.TimerFreq {
		return ErrTickHz
	}
	if c.NVMSize < LayoutSize || c.NVMSize > nvm.SectorSize {
		return ErrNVMSize
	}
	if c.Baud == 0 {
		return ErrBaud
	}
	if c.HeartbeatHz > c.MaxFreq/2 || (c.HeartbeatHz != 0 && c.LEDPin == NoLED) {
		return ErrHeartbeat
	}
	return nil
}
