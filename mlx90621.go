// Package mlx90621 drives the Melexis MLX90621 16x4 thermopile array.
//
// The driver reads the factory calibration EEPROM, programs the oscillator
// trim and configuration registers, derives the ambient chip temperature and
// converts raw IR frames into calibrated object temperatures.
//
// A Dev is not safe for concurrent use.
package mlx90621

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/xerrors"
	"periph.io/x/periph/conn/i2c"
	"periph.io/x/periph/conn/i2c/i2creg"
	"periph.io/x/periph/conn/physic"
	"periph.io/x/periph/host"
)

const (
	settleDelay  = 50 * time.Millisecond
	configDelay  = 10 * time.Millisecond
	resetBackoff = time.Second
)

// Opts holds the driver configuration.
type Opts struct {
	// MaxAttempts bounds initialization retries and reinitializations
	// triggered by a sensor reset during ReadFrame.
	MaxAttempts int
	EEPROMAddr  uint16
	Addr        uint16
	Logger      logrus.FieldLogger
	// Sleep is used for the settle delays. Defaults to time.Sleep.
	Sleep func(time.Duration)
}

// DefaultOpts is the recommended default configuration.
var DefaultOpts = Opts{
	MaxAttempts: 10,
	EEPROMAddr:  DefaultEEPROMAddr,
	Addr:        DefaultAddr,
}

// Dev is a handle to an MLX90621.
type Dev struct {
	ee     i2c.Dev
	dev    i2c.Dev
	closer i2c.BusCloser
	opts   Opts
	log    logrus.FieldLogger

	eeprom EEPROM
	config [2]byte
	frame  [frameSize]byte

	rate  RefreshRate
	ready bool
	res   int
	ta    float64
	coef  Coefficients
}

// New returns an uninitialized device on bus b. Call Initialize before
// reading frames.
func New(b i2c.Bus, opts *Opts) *Dev {
	o := DefaultOpts
	if opts != nil {
		o = *opts
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = DefaultOpts.MaxAttempts
	}
	if o.EEPROMAddr == 0 {
		o.EEPROMAddr = DefaultEEPROMAddr
	}
	if o.Addr == 0 {
		o.Addr = DefaultAddr
	}
	if o.Logger == nil {
		o.Logger = logrus.StandardLogger()
	}
	if o.Sleep == nil {
		o.Sleep = time.Sleep
	}

	return &Dev{
		ee:   i2c.Dev{Bus: b, Addr: o.EEPROMAddr},
		dev:  i2c.Dev{Bus: b, Addr: o.Addr},
		opts: o,
		log:  o.Logger.WithField("device", "mlx90621"),
		rate: DefaultRefreshRate,
	}
}

// Open initializes the host drivers, opens the named I2C bus and returns a
// device that owns it. An empty name selects the first bus available.
func Open(name string, opts *Opts) (*Dev, error) {
	if _, err := host.Init(); err != nil {
		return nil, xerrors.Errorf("host.Init: %w", err)
	}
	bus, err := i2creg.Open(name)
	if err != nil {
		return nil, xerrors.Errorf("i2creg.Open: %w", err)
	}
	d := New(bus, opts)
	d.closer = bus
	return d, nil
}

func (d *Dev) String() string {
	return "MLX90621{" + d.dev.String() + "}"
}

// Halt closes the bus if the device was created by Open.
func (d *Dev) Halt() error {
	if d.closer == nil {
		return nil
	}
	err := d.closer.Close()
	d.closer = nil
	return err
}

// Initialize programs the sensor for the given refresh rate and calibrates
// it. Unsupported rates run the sensor at 8 Hz.
//
// Bus errors are returned immediately. Attempts that yield no plausible
// ambient temperature are retried up to Opts.MaxAttempts times before a
// *DivergenceError is returned.
func (d *Dev) Initialize(rate RefreshRate) error {
	if !rate.Valid() {
		d.log.WithFields(logrus.Fields{
			"rate":     int(rate),
			"fallback": DefaultRefreshRate.String(),
		}).Warn("unsupported refresh rate")
	}
	d.rate = rate
	return d.initialize()
}

func (d *Dev) initialize() error {
	d.ready = false

	lastTa := math.NaN()
	var lastErr error
	for attempt := 1; attempt <= d.opts.MaxAttempts; attempt++ {
		res, ta, err := d.calibrate()
		var be *BusError
		if xerrors.As(err, &be) {
			return err
		}

		log := d.log.WithFields(logrus.Fields{
			"attempt":    attempt,
			"resolution": res,
			"ta":         ta,
		})
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("ambient temperature calculation failed")
			continue
		}
		lastTa, lastErr = ta, nil
		if !plausibleAmbient(ta) {
			log.Warn("ambient temperature out of range")
			continue
		}

		d.res = res
		d.ta = ta
		d.coef = deriveCoefficients(&d.eeprom, res)
		d.ready = true
		log.Debug("calibrated")
		return nil
	}

	return &DivergenceError{Attempts: d.opts.MaxAttempts, LastTa: lastTa, Err: lastErr}
}

// calibrate runs one initialization sequence and returns the resolution
// mode and ambient temperature it produced.
func (d *Dev) calibrate() (int, float64, error) {
	d.opts.Sleep(settleDelay)

	if err := d.readEEPROM(); err != nil {
		return 0, 0, err
	}
	if err := d.writeTrim(byte(d.eeprom.value(fieldOscTrim))); err != nil {
		return 0, 0, err
	}
	if err := d.writeConfig(byte(d.eeprom.value(fieldConfigLSB)), byte(d.eeprom.value(fieldConfigMSB))); err != nil {
		return 0, 0, err
	}
	if err := d.setRefreshRate(d.rate); err != nil {
		return 0, 0, err
	}
	if err := d.readConfig(); err != nil {
		return 0, 0, err
	}

	d.opts.Sleep(configDelay)

	res := d.resolution()
	ptat, err := d.readPTAT()
	if err != nil {
		return res, 0, err
	}
	ta, err := ambient(&d.eeprom, res, ptat)
	return res, ta, err
}

// ReadFrame reads one IR frame and stores the object temperatures in f.
//
// If the sensor reports it went through a reset since the last
// initialization, it is reinitialized first. f is only written once the
// whole frame was read and converted.
func (d *Dev) ReadFrame(f *Frame) error {
	if !d.ready {
		return ErrNotInitialized
	}
	if err := d.ensureReady(); err != nil {
		return err
	}

	if err := d.readIR(); err != nil {
		return err
	}
	vcp, err := d.readCP()
	if err != nil {
		return err
	}

	var out Frame
	if err := compensate(&d.eeprom, &d.coef, d.ta, d.frame[:], vcp, &out); err != nil {
		return err
	}
	*f = out
	return nil
}

func (d *Dev) ensureReady() error {
	for i := 0; ; i++ {
		ok, err := d.porSet()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		if i == d.opts.MaxAttempts {
			return ErrResetPersists
		}

		d.log.WithField("attempt", i+1).Info("sensor reset detected, reinitializing")
		d.opts.Sleep(resetBackoff)
		if err := d.initialize(); err != nil {
			return xerrors.Errorf("reinitialize: %w", err)
		}
	}
}

// Ambient returns the chip temperature computed at the last initialization.
func (d *Dev) Ambient() physic.Temperature {
	return celsius(d.ta)
}

// AmbientCelsius is Ambient in degrees Celsius.
func (d *Dev) AmbientCelsius() float64 {
	return d.ta
}

// Resolution returns the ADC resolution mode read back at initialization.
func (d *Dev) Resolution() int {
	return d.res
}

// RefreshRate returns the rate requested at the last Initialize.
func (d *Dev) RefreshRate() RefreshRate {
	return d.rate
}

// Ready reports whether the device is calibrated.
func (d *Dev) Ready() bool {
	return d.ready
}

// Coefficients returns the derived calibration coefficients.
func (d *Dev) Coefficients() Coefficients {
	return d.coef
}

// EEPROM returns a copy of the calibration memory snapshot.
func (d *Dev) EEPROM() EEPROM {
	return d.eeprom
}
