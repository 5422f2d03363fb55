//go:build tinygo

package flash

import (
	"machine"

	"picoboard/core"
)

// Internal returns the on-chip flash data area after the firmware image
func Internal() core.FlashDriver {
	return machine.Flash
}
