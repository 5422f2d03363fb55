package console

import (
	"strconv"
	"unsafe"

	"picoboard/nvm"
)

// field reads and writes one NVM value type as text
type field struct {
	get func(s *nvm.Store, key nvm.Key, canDefault bool) (string, error)
	set func(s *nvm.Store, key nvm.Key, text string) error
}

var fields = map[string]field{
	"u8":   intField[uint8](),
	"i8":   intField[int8](),
	"u16":  intField[uint16](),
	"i16":  intField[int16](),
	"u32":  intField[uint32](),
	"i32":  intField[int32](),
	"u64":  intField[uint64](),
	"i64":  intField[int64](),
	"bool": boolField,
	"f32":  f32Field,
	"f64":  f64Field,
}

func signed[T nvm.Integer]() bool {
	var zero T
	return ^zero < 0
}

func bitsOf[T nvm.Integer]() int {
	var zero T
	return int(unsafe.Sizeof(zero)) * 8
}

func intField[T nvm.Integer]() field {
	return field{
		get: func(s *nvm.Store, key nvm.Key, canDefault bool) (string, error) {
			v, err := nvm.Get[T](s, key, canDefault)
			if err != nil {
				return "", err
			}
			if signed[T]() {
				return strconv.FormatInt(int64(v), 10), nil
			}
			return strconv.FormatUint(uint64(v), 10), nil
		},
		set: func(s *nvm.Store, key nvm.Key, text string) error {
			var v T
			if signed[T]() {
				n, err := strconv.ParseInt(text, 0, bitsOf[T]())
				if err != nil {
					return ErrArgument
				}
				v = T(n)
			} else {
				n, err := strconv.ParseUint(text, 0, bitsOf[T]())
				if err != nil {
					return ErrArgument
				}
				v = T(n)
			}
			return nvm.Write(s, key, v)
		},
	}
}

var boolField = field{
	get: func(s *nvm.Store, key nvm.Key, canDefault bool) (string, error) {
		v, err := s.GetBool(key, canDefault)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(v), nil
	},
	set: func(s *nvm.Store, key nvm.Key, text string) error {
		v, err := strconv.ParseBool(text)
		if err != nil {
			return ErrArgument
		}
		return s.WriteBool(key, v)
	},
}

var f32Field = field{
	get: func(s *nvm.Store, key nvm.Key, canDefault bool) (string, error) {
		v, err := s.GetFloat32(key, canDefault)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	},
	set: func(s *nvm.Store, key nvm.Key, text string) error {
		v, err := strconv.ParseFloat(text, 32)
		if err != nil {
			return ErrArgument
		}
		return s.WriteFloat32(key, float32(v))
	},
}

var f64Field = field{
	get: func(s *nvm.Store, key nvm.Key, canDefault bool) (string, error) {
		v, err := s.GetFloat64(key, canDefault)
		if err != nil {
			return "", err
		}
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	},
	set: func(s *nvm.Store, key nvm.Key, text string) error {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return ErrArgument
		}
		return s.WriteFloat64(key, v)
	},
}
