package nvm

import "errors"

var (
	ErrNotStarted     = errors.New("nvm_not_started")
	ErrAlreadyStarted = errors.New("nvm_already_started")
	ErrInvalidSize    = errors.New("nvm_invalid_size")
	ErrFailed         = errors.New("nvm_failed")
	ErrOutOfRange     = errors.New("nvm_out_of_range")
	ErrUnwritten      = errors.New("nvm_unwritten")
	ErrLength         = errors.New("nvm_invalid_length")
	ErrUnterminated   = errors.New("nvm_unterminated")
	ErrSizeTooBig     = errors.New("nvm_default_size_too_big")
	ErrMaxSize        = errors.New("nvm_default_max_size")
	ErrFlashGeometry  = errors.New("nvm_flash_geometry")
)

// StartCode is the outcome of Store.Init
type StartCode uint8

const (
	StartOk StartCode = iota
	StartAlreadyStarted
	StartInvalidSize
	StartFailed
)

func (c StartCode) String() string {
	switch c {
	case StartOk:
		return "ok"
	case StartAlreadyStarted:
		return "already_started"
	case StartInvalidSize:
		return "invalid_size"
	case StartFailed:
		return "failed"
	}
	return "unknown"
}

// StartCodeOf maps an Init error to its StartCode
func StartCodeOf(err error) StartCode {
	switch {
	case err == nil:
		return StartOk
	case errors.Is(err, ErrAlreadyStarted):
		return StartAlreadyStarted
	case errors.Is(err, ErrInvalidSize):
		return StartInvalidSize
	}
	return StartFailed
}
