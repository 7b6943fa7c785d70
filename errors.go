package mlx90621

import (
	"errors"
	"fmt"
)

// ErrNegativeDiscriminant is returned when the ambient temperature equation
// has no real solution for the current EEPROM and PTAT values.
var ErrNegativeDiscriminant = errors.New("mlx90621: ambient temperature has no real solution")

// ErrCalibrationDivergence is returned when initialization never produced a
// plausible ambient temperature.
var ErrCalibrationDivergence = errors.New("mlx90621: calibration did not converge")

// ErrNotInitialized is returned when reading a frame before Initialize succeeded.
var ErrNotInitialized = errors.New("mlx90621: device not initialized")

// BusError reports a failed bus transaction.
type BusError struct {
	Op   string
	Addr uint16
	Err  error
}

func (e *BusError) Error() string {
	return fmt.Sprintf("mlx90621: %s at %#02x: %v", e.Op, e.Addr, e.Err)
}

func (e *BusError) Unwrap() error {
	return e.Err
}

// DivergenceError is returned once every initialization attempt failed.
type DivergenceError struct {
	Attempts int
	LastTa   float64
	Err      error
}

func (e *DivergenceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v after %d attempts: %v", ErrCalibrationDivergence, e.Attempts, e.Err)
	}
	return fmt.Sprintf("%v after %d attempts, last ambient %.2f°C", ErrCalibrationDivergence, e.Attempts, e.LastTa)
}

func (e *DivergenceError) Is(target error) bool {
	return target == ErrCalibrationDivergence
}

func (e *DivergenceError) Unwrap() error {
	return e.Err
}

// ErrResetPersists is returned when the sensor keeps reporting a reset after
// repeated reinitialization.
var ErrResetPersists = errors.New("mlx90621: sensor still in reset after reinitialization")

// ErrInvalidPixel is returned when a pixel reading has no physical object
// temperature, e.g. a radiance below absolute zero.
var ErrInvalidPixel = errors.New("mlx90621: pixel reading out of range")

// PixelError reports the pixel that made a frame invalid.
type PixelError struct {
	Row, Col int
	Raw      int
}

func (e *PixelError) Error() string {
	return fmt.Sprintf("%v: pixel (%d, %d) raw %d", ErrInvalidPixel, e.Row, e.Col, e.Raw)
}

func (e *PixelError) Is(target error) bool {
	return target == ErrInvalidPixel
}
