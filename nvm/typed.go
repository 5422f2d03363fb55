package nvm

import "math"

// Bools occupy one byte: 0 or 1. The erased byte 0xFF is the default.
const (
	boolFalse   = 0x00
	boolTrue    = 0x01
	boolDefault = 0xFF
)

func (s *Store) WriteBool(key Key, v bool) error {
	b := uint8(boolFalse)
	if v {
		b = boolTrue
	}
	return Write(s, key, b)
}

// GetBool reads a bool. Any non-zero byte reads as true.
func (s *Store) GetBool(key Key, canDefault bool) (bool, error) {
	b, err := Get[uint8](s, key, canDefault)
	if err != nil {
		return false, err
	}
	return b != boolFalse, nil
}

func (s *Store) WriteFloat32(key Key, v float32) error {
	return Write(s, key, math.Float32bits(v))
}

func (s *Store) GetFloat32(key Key, canDefault bool) (float32, error) {
	bits, err := Get[uint32](s, key, canDefault)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

func (s *Store) WriteFloat64(key Key, v float64) error {
	return Write(s, key, math.Float64bits(v))
}

func (s *Store) GetFloat64(key Key, canDefault bool) (float64, error) {
	bits, err := Get[uint64](s, key, canDefault)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}
