package servos

import (
	"io"
	"sort"

	"github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
)

const (
	maestroSetTarget         = 0x84
	maestroSetMultipleTarget = 0x9f

	// Maestro targets are in quarter-microseconds; board ticks are 20ms/4096.
	quarterMicrosPerTick = 20000.0 * 4 / 4096
)

// Maestro is a Pololu Maestro USB servo controller, driven via the compact
// serial protocol.
type Maestro struct {
	w       io.Writer
	pending map[uint8]uint16
	used    map[uint8]bool
}

// OpenMaestro opens the command port of a Maestro.
func OpenMaestro(portName string) (*Maestro, io.Closer, error) {
	port, err := serial.Open(serial.OpenOptions{
		PortName:        portName,
		BaudRate:        115200,
		DataBits:        8,
		StopBits:        1,
		MinimumReadSize: 1,
	})
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open %s", portName)
	}

	return NewMaestro(port), port, nil
}

func NewMaestro(w io.Writer) *Maestro {
	return &Maestro{
		w:       w,
		pending: map[uint8]uint16{},
		used:    map[uint8]bool{},
	}
}

func (m *Maestro) SetPulse(channel uint8, ticks int) {
	m.pending[channel] = uint16(float64(ticks)*quarterMicrosPerTick + 0.5)
	m.used[channel] = true
}

// Commit sends one set-multiple-targets command per run of consecutive
// channels.
func (m *Maestro) Commit() error {
	if len(m.pending) == 0 {
		return nil
	}

	channels := make([]int, 0, len(m.pending))
	for ch := range m.pending {
		channels = append(channels, int(ch))
	}
	sort.Ints(channels)

	var buf []byte
	for i := 0; i < len(channels); {
		j := i + 1
		for j < len(channels) && channels[j] == channels[j-1]+1 {
			j++
		}

		buf = append(buf, maestroSetMultipleTarget, byte(j-i), byte(channels[i]))
		for _, ch := range channels[i:j] {
			buf = appendTarget(buf, m.pending[uint8(ch)])
		}

		i = j
	}

	m.pending = map[uint8]uint16{}
	return m.write(buf)
}

// Release sets the target of every channel used so far to zero, which stops
// the Maestro sending pulses on it.
func (m *Maestro) Release() error {
	var buf []byte
	for ch := range m.used {
		buf = append(buf, maestroSetTarget, ch)
		buf = appendTarget(buf, 0)
	}

	m.pending = map[uint8]uint16{}
	return m.write(buf)
}

func (m *Maestro) write(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}

	_, err := m.w.Write(buf)
	if err != nil {
		return errors.Wrap(err, "write to maestro")
	}

	return nil
}

// Targets are sent as two seven-bit bytes, low first.
func appendTarget(buf []byte, target uint16) []byte {
	return append(buf, byte(target&0x7f), byte((target>>7)&0x7f))
}
