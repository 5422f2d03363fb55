package hardtimer

import "errors"

var (
	ErrSlotCount   = errors.New("invalid_slot_count")
	ErrNilCallback = errors.New("nil_callback")
	ErrFrequency   = errors.New("invalid_frequency")
	ErrNoSlot      = errors.New("no_free_slot")
	ErrStarted     = errors.New("already_started")
	ErrNotStarted  = errors.New("not_started")
	ErrInstall     = errors.New("alarm_install_failed")
	ErrCancel      = errors.New("alarm_cancel_refused")
)
