// Package config loads the picoboard-host settings file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"picoboard/host/serial"
)

type Config struct {
	Serial  SerialConfig  `yaml:"serial"`
	History string        `yaml:"history"`   // readline history file, empty disables
	Log     string        `yaml:"log_level"` // zerolog level name
	Timeout time.Duration `yaml:"timeout"`   // per-reply wait
}

type SerialConfig struct {
	Device        string `yaml:"device"`
	Baud          int    `yaml:"baud"`
	ReadTimeoutMs int    `yaml:"read_timeout_ms"`
}

// Default returns the settings used when no file is given
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Device:        "/dev/ttyACM0",
			Baud:          serial.DefaultBaud,
			ReadTimeoutMs: 100,
		},
		Log:     "info",
		Timeout: 2 * time.Second,
	}
}

// Load reads path over the defaults and validates the result
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks configuration correctness. It does not mutate cfg.
func Validate(cfg *Config) error {
	if cfg.Serial.Device == "" {
		return errors.New("serial.device is required")
	}
	if cfg.Serial.Baud <= 0 {
		return fmt.Errorf("serial.baud must be positive, got %d", cfg.Serial.Baud)
	}
	if cfg.Serial.ReadTimeoutMs < 0 {
		return fmt.Errorf("serial.read_timeout_ms must not be negative, got %d", cfg.Serial.ReadTimeoutMs)
	}
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", cfg.Timeout)
	}
	if _, err := zerolog.ParseLevel(cfg.Log); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// SerialPort returns the port settings
func (c *Config) SerialPort() *serial.Config {
	return &serial.Config{
		Device:      c.Serial.Device,
		Baud:        c.Serial.Baud,
		ReadTimeout: c.Serial.ReadTimeoutMs,
	}
}

// Level returns the parsed log level
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
