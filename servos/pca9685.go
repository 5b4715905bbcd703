package servos

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"tinygo.org/x/drivers"
	"tinygo.org/x/drivers/pca9685"
)

// 50Hz, as hobby servos expect.
const servoPeriod = 20_000_000

// From linux/i2c-dev.h
const i2cSlave = 0x0703

// I2CBus is a Linux i2c-dev bus, e.g. /dev/i2c-1.
type I2CBus struct {
	mu   sync.Mutex
	fd   int
	addr uint16
	set  bool
}

func OpenI2C(path string) (*I2CBus, error) {
	fd, err := unix.Open(path, unix.O_RDWR, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}

	return &I2CBus{fd: fd}, nil
}

// Tx writes w to the device at addr, then reads len(r) bytes back.
func (b *I2CBus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.set || b.addr != addr {
		err := unix.IoctlSetInt(b.fd, i2cSlave, int(addr))
		if err != nil {
			return errors.Wrapf(err, "select device 0x%02x", addr)
		}

		b.addr = addr
		b.set = true
	}

	if len(w) > 0 {
		n, err := unix.Write(b.fd, w)
		if err != nil {
			return errors.Wrapf(err, "write to 0x%02x", addr)
		}
		if n != len(w) {
			return errors.Errorf("short write to 0x%02x: %d of %d bytes", addr, n, len(w))
		}
	}

	if len(r) > 0 {
		n, err := unix.Read(b.fd, r)
		if err != nil {
			return errors.Wrapf(err, "read from 0x%02x", addr)
		}
		if n != len(r) {
			return errors.Errorf("short read from 0x%02x: %d of %d bytes", addr, n, len(r))
		}
	}

	return nil
}

func (b *I2CBus) Close() error {
	return unix.Close(b.fd)
}

// PCA9685 is a 16-channel I2C PWM board. All channels are written in a single
// transaction per commit.
type PCA9685 struct {
	bus  drivers.I2C
	addr uint8
	dev  *pca9685.DevBuffered
}

// NewPCA9685 configures the board at addr for 50Hz servo pulses.
func NewPCA9685(bus drivers.I2C, addr uint8) (*PCA9685, error) {
	dev := pca9685.NewBuffered(bus, addr)

	err := dev.Configure(pca9685.PWMConfig{Period: servoPeriod})
	if err != nil {
		return nil, errors.Wrapf(err, "configure pca9685 at 0x%02x", addr)
	}

	return &PCA9685{
		bus:  bus,
		addr: addr,
		dev:  dev,
	}, nil
}

func (p *PCA9685) SetPulse(channel uint8, ticks int) {
	p.dev.PrepPhasedSet(channel, 0, uint32(ticks))
}

func (p *PCA9685) Commit() error {
	return p.dev.Update()
}

// Release sets the full-off bit of every channel at once.
func (p *PCA9685) Release() error {
	_, _, _, offH := pca9685.LED(pca9685.ALLLED)
	return p.bus.Tx(uint16(p.addr), []byte{offH, 0x10}, nil)
}
