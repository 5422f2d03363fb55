package nvm

import "unsafe"

// Integer is any fixed-width integer the store can hold
type Integer interface {
	~int8 | ~uint8 | ~int16 | ~uint16 | ~int32 | ~uint32 | ~int64 | ~uint64
}

func widthOf[T Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Write stores v big-endian at key and commits unless a Batch is running.
// Commit errors are returned after the mirror has been updated.
func Write[T Integer](s *Store, key Key, v T) error {
	w := widthOf[T]()
	if err := s.check(key, w); err != nil {
		return err
	}
	putBE(s.mirror[int(key):int(key)+w], uint64(v))
	return s.written()
}

// Get reads the big-endian value at key. Unless canDefault is set, a value
// whose bytes are all 0xFF (erased flash) is reported as ErrUnwritten; a
// stored value with that pattern cannot be told apart from an unwritten one.
func Get[T Integer](s *Store, key Key, canDefault bool) (T, error) {
	w := widthOf[T]()
	if err := s.check(key, w); err != nil {
		return 0, err
	}
	b := s.mirror[int(key) : int(key)+w]
	if !canDefault && isDefault(b) {
		return 0, ErrUnwritten
	}
	return T(getBE(b)), nil
}

func putBE(b []byte, v uint64) {
	for i := len(b) - 1; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}

func getBE(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		v = v<<8 | uint64(c)
	}
	return v
}

func isDefault(b []byte) bool {
	for _, c := range b {
		if c != 0xFF {
			return false
		}
	}
	return true
}
