package nvm

import "picoboard/core"

// Default writers fill one group of fields. Critical defaults receive the
// sector size reported by MaxSize.
type (
	CritDefaults func(s *Store, maxSize int) error
	EnvDefaults  func(s *Store) error
)

// SetDefaults writes the critical then the environment defaults as one
// batch and commits once. layoutSize is the byte span the layout needs; it
// must fit the sector. The first failing group aborts the batch and its
// error is returned uncommitted.
func (s *Store) SetDefaults(layoutSize int, crit CritDefaults, env EnvDefaults) error {
	max, ok := s.MaxSize()
	if !ok {
		return ErrMaxSize
	}
	if layoutSize > max {
		return ErrSizeTooBig
	}

	err := s.Batch(func() error {
		if crit != nil {
			if err := crit(s, max); err != nil {
				return err
			}
		}
		if env != nil {
			return env(s)
		}
		return nil
	})
	if err != nil {
		core.DebugPrintln("[NVM] defaults failed: " + err.Error())
		return err
	}
	core.DebugPrintln("[NVM] defaults written")
	return nil
}
