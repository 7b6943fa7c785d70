package mlx90621

import (
	"math"

	"periph.io/x/periph/conn/physic"
)

const (
	Rows       = 4
	Columns    = 16
	PixelCount = Rows * Columns

	zeroCelsius = 273.15
)

// Frame holds one set of object temperatures laid out like the sensor array.
type Frame struct {
	// Tenths holds temperatures in tenths of a degree Celsius, truncated.
	Tenths [Rows][Columns]int
	// Celsius holds temperatures in degrees Celsius.
	Celsius [Rows][Columns]float64
}

// At returns the temperature of a pixel in degrees Celsius.
func (f *Frame) At(row, col int) float64 {
	return f.Celsius[row][col]
}

// Temperature returns the temperature of a pixel.
func (f *Frame) Temperature(row, col int) physic.Temperature {
	return celsius(f.Celsius[row][col])
}

// PixelIndex returns the position of a pixel in the sensor's RAM and per-pixel
// EEPROM ranges. Pixels are stored column by column.
func PixelIndex(row, col int) int {
	return col*Rows + row
}

// PixelPosition is the inverse of PixelIndex.
func PixelPosition(index int) (row, col int) {
	return index % Rows, index / Rows
}

func celsius(c float64) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(c*float64(physic.Kelvin))
}

// compensate converts a raw IR frame into object temperatures. vcp is the
// compensation pixel reading taken with the frame. f may be partly written
// when an error is returned.
func compensate(e *EEPROM, c *Coefficients, ta float64, raw []byte, vcp int, f *Frame) error {
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			i := PixelIndex(row, col)
			vir := wrapS16(le16(raw, 2*i))
			to := c.objectTemperature(e, i, vir, vcp, ta)
			if math.IsNaN(to) || math.IsInf(to, 0) {
				return &PixelError{Row: row, Col: col, Raw: vir}
			}
			f.Celsius[row][col] = to
			f.Tenths[row][col] = int(to * 10.0)
		}
	}
	return nil
}

func (c *Coefficients) objectTemperature(e *EEPROM, i, vir, vcp int, ta float64) float64 {
	dTa := ta - 25.0

	ai := (float64(c.ACommon) + float64(e.pixel(pixelDeltaA, i))*pow2(c.AIScale)) / c.ResolutionComp
	bi := float64(e.pixel(pixelB, i)) / (pow2(c.BIScale) * c.ResolutionComp)

	// Offset, thermal gradient and emissivity compensation.
	vcpOff := float64(vcp) - (c.ACP + c.BCP*dTa)
	virOff := float64(vir) - (ai + bi*dTa)
	virTGC := virOff - c.TGC*vcpOff
	virComp := virTGC / c.Emissivity

	alpha := c.Alpha0 + float64(e.pixel(pixelDeltaAlpha, i))/pow2(c.DeltaAlphaScale)
	alpha /= c.ResolutionComp
	alphaComp := (1 + c.KsTa*dTa) * (alpha - c.TGC*c.AlphaCP)

	// A negative sum has no real fourth root and yields NaN.
	ta4 := math.Pow(ta+zeroCelsius, 4)
	return math.Pow(virComp/alphaComp+ta4, 0.25) - zeroCelsius
}
