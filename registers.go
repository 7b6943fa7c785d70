package mlx90621

import "periph.io/x/periph/conn/i2c"

const (
	// DefaultEEPROMAddr is the bus address of the calibration EEPROM.
	DefaultEEPROMAddr = 0x50
	// DefaultAddr is the bus address of the sensor's live registers.
	DefaultAddr = 0x60

	frameSize = 2 * PixelCount

	cmdWriteConfig = 0x03
	cmdWriteTrim   = 0x04

	configChecksum = 0x55
	trimChecksum   = 0xAA

	// Configuration MSB written with a new refresh rate: ADC reference
	// high, I2C FM+ enabled and the POR flag set.
	configMSB = 0x46
	// Configuration LSB resolution bits for 18-bit ADC mode.
	configResolution18 = 0x3 << 4

	porFlag = 0x04
)

// Read requests: command, start address, address step, number of reads.
var (
	cmdReadConfig = []byte{0x02, 0x92, 0x00, 0x01}
	cmdReadPTAT   = []byte{0x02, 0x40, 0x00, 0x01}
	cmdReadCP     = []byte{0x02, 0x41, 0x00, 0x01}
	cmdReadFrame  = []byte{0x02, 0x00, 0x01, PixelCount}
)

func (d *Dev) tx(dev *i2c.Dev, op string, w, r []byte) error {
	if err := dev.Tx(w, r); err != nil {
		return &BusError{Op: op, Addr: dev.Addr, Err: err}
	}
	return nil
}

func (d *Dev) readEEPROM() error {
	return d.tx(&d.ee, "read eeprom", []byte{0x00}, d.eeprom[:])
}

func (d *Dev) writeTrim(trim byte) error {
	var msb byte
	cmd := []byte{
		cmdWriteTrim,
		byte(wrapU8(int(trim) - trimChecksum)), trim,
		byte(wrapU8(int(msb) - trimChecksum)), msb,
	}
	return d.tx(&d.dev, "write trim", cmd, nil)
}

func (d *Dev) writeConfig(lsb, msb byte) error {
	cmd := []byte{
		cmdWriteConfig,
		byte(wrapU8(int(lsb) - configChecksum)), lsb,
		byte(wrapU8(int(msb) - configChecksum)), msb,
	}
	return d.tx(&d.dev, "write config", cmd, nil)
}

func (d *Dev) readConfig() error {
	return d.tx(&d.dev, "read config", cmdReadConfig, d.config[:])
}

// resolution returns the ADC resolution field of the last configuration read.
func (d *Dev) resolution() int {
	return (le16(d.config[:], 0) & 0x30) >> 4
}

// porSet reports whether the POR/brown-out flag is set. The flag is set
// while the configuration written at initialization is still in effect.
func (d *Dev) porSet() (bool, error) {
	if err := d.readConfig(); err != nil {
		return false, err
	}
	return d.config[1]&porFlag == porFlag, nil
}

func (d *Dev) setRefreshRate(r RefreshRate) error {
	if err := d.readConfig(); err != nil {
		return err
	}
	return d.writeConfig(configResolution18|r.Code(), configMSB)
}

func (d *Dev) readPTAT() (int, error) {
	var b [2]byte
	if err := d.tx(&d.dev, "read ptat", cmdReadPTAT, b[:]); err != nil {
		return 0, err
	}
	return le16(b[:], 0), nil
}

func (d *Dev) readCP() (int, error) {
	var b [2]byte
	if err := d.tx(&d.dev, "read compensation pixel", cmdReadCP, b[:]); err != nil {
		return 0, err
	}
	return wrapS16(le16(b[:], 0)), nil
}

func (d *Dev) readIR() error {
	return d.tx(&d.dev, "read frame", cmdReadFrame, d.frame[:])
}
