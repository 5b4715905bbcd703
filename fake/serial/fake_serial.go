package serial

import (
	"bytes"
	"sync"

	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "fake/serial",
})

// FakeSerial is a serial port which records everything written to it, and
// never has anything to read.
type FakeSerial struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed bool
}

func New() *FakeSerial {
	return &FakeSerial{}
}

func (s *FakeSerial) Read(p []byte) (n int, err error) {
	log.Debugf("read %d bytes", len(p))
	return 0, nil
}

func (s *FakeSerial) Write(p []byte) (n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Debugf("write: %v", p)
	return s.buf.Write(p)
}

func (s *FakeSerial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Debug("close")
	s.closed = true
	return nil
}

// Written returns (and forgets) everything written since the last call.
func (s *FakeSerial) Written() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := append([]byte(nil), s.buf.Bytes()...)
	s.buf.Reset()
	return out
}

func (s *FakeSerial) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.closed
}
