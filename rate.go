package mlx90621

import (
	"strconv"

	"periph.io/x/periph/conn/physic"
)

// RefreshRate is the IR frame rate in Hz. Rate0_5Hz is encoded as 0.
type RefreshRate int

const (
	Rate0_5Hz RefreshRate = 0
	Rate1Hz   RefreshRate = 1
	Rate2Hz   RefreshRate = 2
	Rate4Hz   RefreshRate = 4
	Rate8Hz   RefreshRate = 8
	Rate16Hz  RefreshRate = 16
	Rate32Hz  RefreshRate = 32
	Rate64Hz  RefreshRate = 64
	Rate128Hz RefreshRate = 128
	Rate256Hz RefreshRate = 256
	Rate512Hz RefreshRate = 512

	DefaultRefreshRate = Rate8Hz
)

var rateCodes = map[RefreshRate]byte{
	Rate512Hz: 0x0,
	Rate256Hz: 0x6,
	Rate128Hz: 0x7,
	Rate64Hz:  0x8,
	Rate32Hz:  0x9,
	Rate16Hz:  0xA,
	Rate8Hz:   0xB,
	Rate4Hz:   0xC,
	Rate2Hz:   0xD,
	Rate1Hz:   0xE,
	Rate0_5Hz: 0xF,
}

// Valid reports whether r is one of the rates the sensor supports.
func (r RefreshRate) Valid() bool {
	_, ok := rateCodes[r]
	return ok
}

// Code returns the 4-bit configuration code for r. Unsupported rates fall
// back to the 8 Hz code.
func (r RefreshRate) Code() byte {
	if c, ok := rateCodes[r]; ok {
		return c
	}
	return rateCodes[DefaultRefreshRate]
}

// Frequency returns the rate the sensor actually runs at for r.
func (r RefreshRate) Frequency() physic.Frequency {
	switch {
	case r == Rate0_5Hz:
		return 500 * physic.MilliHertz
	case !r.Valid():
		return physic.Frequency(DefaultRefreshRate) * physic.Hertz
	}
	return physic.Frequency(r) * physic.Hertz
}

func (r RefreshRate) String() string {
	if r == Rate0_5Hz {
		return "0.5Hz"
	}
	return strconv.Itoa(int(r)) + "Hz"
}
