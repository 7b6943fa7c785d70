package mlx90621

// Synthetic calibration data used across the tests. Reference values were
// computed by hand from the datasheet formulas.

const (
	fixturePTAT    = 6530
	fixtureTa      = 30.779193415176124
	fixtureVCPLow  = 0xC0
	fixtureVCPHigh = 0xFF
)

func put16(e *EEPROM, off, v int) {
	e[off] = byte(v)
	e[off+1] = byte(v >> 8)
}

func fixtureEEPROM() EEPROM {
	var e EEPROM
	for i := 0; i < PixelCount; i++ {
		e[0x00+i] = byte(i*7 + 20)
		e[0x40+i] = byte(i*5 - 100)
		e[0x80+i] = byte(90 + i)
	}
	put16(&e, 0xD0, -60)
	e[0xD2] = 0x8A
	put16(&e, 0xD3, -50)
	e[0xD5] = 0x10
	put16(&e, 0xD6, 0x1234)
	e[0xD8] = 0x18
	e[0xD9] = 0x18
	put16(&e, 0xDA, 6400)
	put16(&e, 0xDC, 5760)
	put16(&e, 0xDE, -1000)
	put16(&e, 0xE0, 0x5A3C)
	e[0xE2] = 0x24
	e[0xE3] = 0x1B
	put16(&e, 0xE4, 0x7999)
	put16(&e, 0xE6, -16)
	e[0xF5] = 0x3B
	e[0xF6] = 0x46
	e[0xF7] = 0x2A
	return e
}

// fixtureFrame returns raw IR data where pixel i reads 300+4*i.
func fixtureFrame() []byte {
	b := make([]byte, frameSize)
	for i := 0; i < PixelCount; i++ {
		v := 300 + 4*i
		b[2*i] = byte(v)
		b[2*i+1] = byte(v >> 8)
	}
	return b
}
