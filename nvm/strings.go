package nvm

import "strings"

const terminator = 0x00

// WriteString stores v at key followed by a terminator byte. v must hold
// between 1 and maxLength-1 bytes and no NUL. The whole string is committed
// once; inside a Batch it is left for the batch to commit.
func (s *Store) WriteString(key Key, v string, maxLength uint8) error {
	if !s.began {
		return ErrNotStarted
	}
	n := len(v)
	if n == 0 || n >= int(maxLength) || strings.IndexByte(v, terminator) >= 0 {
		return ErrLength
	}
	if err := s.check(key, n+1); err != nil {
		return err
	}

	return s.Batch(func() error {
		for i := 0; i < n; i++ {
			if err := Write(s, key+Key(i), v[i]); err != nil {
				return err
			}
		}
		return Write(s, key+Key(n), uint8(terminator))
	})
}

// ReadString reads the string at key, scanning at most maxLength bytes for
// the terminator. Returns ErrUnterminated if none is found.
func (s *Store) ReadString(key Key, maxLength uint8) (string, error) {
	if !s.began {
		return "", ErrNotStarted
	}
	if maxLength == 0 {
		return "", ErrLength
	}

	var b strings.Builder
	for i := 0; i < int(maxLength); i++ {
		c, err := Get[uint8](s, key+Key(i), true)
		if err != nil {
			return "", err
		}
		if c == terminator {
			return b.String(), nil
		}
		b.WriteByte(c)
	}
	return "", ErrUnterminated
}
