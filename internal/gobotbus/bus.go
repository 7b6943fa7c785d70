// Package gobotbus exposes a gobot sysfs I2C device as a periph I2C bus.
package gobotbus

import (
	"sync"

	"gobot.io/x/gobot/sysfs"
	"golang.org/x/xerrors"
	"periph.io/x/periph/conn/physic"
)

// A Device is typically the device returned by sysfs.NewI2cDevice.
type Device interface {
	SetAddress(address int) error
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Close() error
}

// Bus implements i2c.BusCloser on top of a Device. The write and read
// phases of a transaction are issued as two transfers.
type Bus struct {
	mu   sync.Mutex
	name string
	dev  Device
	addr int
}

// Open opens the I2C character device at location, e.g. /dev/i2c-1.
func Open(location string) (*Bus, error) {
	dev, err := sysfs.NewI2cDevice(location)
	if err != nil {
		return nil, xerrors.Errorf("sysfs.NewI2cDevice: %w", err)
	}
	return New(location, dev), nil
}

// New wraps dev.
func New(name string, dev Device) *Bus {
	return &Bus{name: name, dev: dev, addr: -1}
}

func (b *Bus) String() string {
	return "gobot(" + b.name + ")"
}

// Tx implements i2c.Bus.
func (b *Bus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if int(addr) != b.addr {
		if err := b.dev.SetAddress(int(addr)); err != nil {
			return xerrors.Errorf("set address %#02x: %w", addr, err)
		}
		b.addr = int(addr)
	}
	if len(w) != 0 {
		n, err := b.dev.Write(w)
		if err != nil {
			return xerrors.Errorf("write: %w", err)
		}
		if n != len(w) {
			return xerrors.Errorf("short write: %d of %d bytes", n, len(w))
		}
	}
	if len(r) != 0 {
		n, err := b.dev.Read(r)
		if err != nil {
			return xerrors.Errorf("read: %w", err)
		}
		if n != len(r) {
			return xerrors.Errorf("short read: %d of %d bytes", n, len(r))
		}
	}
	return nil
}

// SetSpeed implements i2c.Bus. The sysfs interface has no way to change the
// bus clock.
func (b *Bus) SetSpeed(f physic.Frequency) error {
	return xerrors.Errorf("gobotbus: cannot set speed to %s", f)
}

// Close closes the underlying device.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dev.Close()
}
