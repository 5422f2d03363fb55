//go:build tinygo && (rp2040 || rp2350)

package flash

import (
	"machine"

	spiflash "tinygo.org/x/drivers/flash"

	"picoboard/core"
)

// ExternalConfig describes an SPI NOR chip wired to the board
type ExternalConfig struct {
	Bus *machine.SPI
	SDO machine.Pin
	SDI machine.Pin
	SCK machine.Pin
	CS  machine.Pin
}

// External configures an SPI NOR flash chip for use as NVM backing.
// The chip is identified by its JEDEC ID.
func External(cfg ExternalConfig) (core.FlashDriver, error) {
	dev := spiflash.NewSPI(cfg.Bus, cfg.SDO, cfg.SDI, cfg.SCK, cfg.CS)
	if err := dev.Configure(&spiflash.DeviceConfig{
		Identifier: spiflash.DefaultDeviceIdentifier,
	}); err != nil {
		return nil, err
	}
	return dev, nil
}
