package i2c

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "fake/i2c",
})

// Tx is a recorded write.
type Tx struct {
	Addr uint16
	W    []byte
}

// FakeBus is an I2C bus which records every write, and reads back zeros.
type FakeBus struct {
	mu  sync.Mutex
	txs []Tx
}

func New() *FakeBus {
	return &FakeBus{}
}

func (b *FakeBus) Tx(addr uint16, w, r []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	log.Debugf("tx 0x%02x: %v (read %d)", addr, w, len(r))

	if len(w) > 0 {
		b.txs = append(b.txs, Tx{Addr: addr, W: append([]byte(nil), w...)})
	}

	for i := range r {
		r[i] = 0
	}

	return nil
}

// Txs returns every write so far.
func (b *FakeBus) Txs() []Tx {
	b.mu.Lock()
	defer b.mu.Unlock()

	return append([]Tx(nil), b.txs...)
}

// Last returns the most recent write to addr.
func (b *FakeBus) Last(addr uint16) (Tx, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i := len(b.txs) - 1; i >= 0; i-- {
		if b.txs[i].Addr == addr {
			return b.txs[i], true
		}
	}

	return Tx{}, false
}
