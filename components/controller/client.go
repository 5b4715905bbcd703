package controller

import (
	"context"
	"encoding/binary"
	"io"
	"math"
	"net"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (

	// Size of one frame from the controller bridge.
	FrameSize = 32

	pressedOffset   = 8
	triggeredOffset = 20

	dialTimeout = 5 * time.Second
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "controller",
})

// Decode parses one frame: four big-endian int16 sticks, then one byte per
// button for pressed, then one byte per button for triggered.
func Decode(frame []byte) (Event, error) {
	var e Event
	if len(frame) < FrameSize {
		return e, errors.Errorf("short frame: %d bytes", len(frame))
	}

	stick := func(i int) float64 {
		return float64(int16(binary.BigEndian.Uint16(frame[i*2:]))) / math.MaxInt16
	}

	e.LX = stick(0)
	e.LY = stick(1)
	e.RX = stick(2)
	e.RY = stick(3)

	for i := 0; i < NumButtons; i++ {
		e.Pressed[i] = frame[pressedOffset+i] != 0
		e.Triggered[i] = frame[triggeredOffset+i] != 0
	}

	return e, nil
}

// Client reads events from the controller bridge, which streams fixed-size
// frames over TCP.
type Client struct {
	addr string

	// Some bridges only report held buttons.
	edges edges

	events chan Event
	next   uint64

	mu   sync.Mutex
	last Event
}

func NewClient(addr string) *Client {
	return &Client{
		addr:   addr,
		events: make(chan Event, 64),

		// Zero is the timestamp of the empty sample returned before anything
		// arrives, so real frames mustn't use it.
		next: 1,
	}
}

// Run connects to the bridge and reads frames until ctx is done or the
// connection fails.
func (c *Client) Run(ctx context.Context) error {
	d := net.Dialer{Timeout: dialTimeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return errors.Wrapf(err, "dial controller at %s", c.addr)
	}

	log.Infof("connected to %s", c.addr)
	return c.Read(ctx, conn)
}

// Read decodes frames from r until ctx is done or r fails. It closes r when it
// returns.
func (c *Client) Read(ctx context.Context, r io.ReadCloser) error {
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		r.Close()
	}()

	frame := make([]byte, FrameSize)
	for {
		_, err := io.ReadFull(r, frame)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}

			return errors.Wrap(err, "read controller frame")
		}

		e, err := Decode(frame)
		if err != nil {
			return err
		}

		rising := c.edges.update(e.Pressed)
		for i := range e.Triggered {
			e.Triggered[i] = e.Triggered[i] || rising[i]
		}

		e.Timestamp = c.next
		c.next++

		select {
		case c.events <- e:
		default:
			log.Debugf("dropped %s", e)
		}
	}
}

// Latest returns the newest event without blocking. If several arrived since
// the last call, the newest is returned with the triggered buttons of all of
// them, so no press is lost. If nothing has arrived, it returns the same event
// again, timestamp and all.
func (c *Client) Latest() Event {
	c.mu.Lock()
	defer c.mu.Unlock()

	var triggered [NumButtons]bool
	fresh := false

	for {
		select {
		case e := <-c.events:
			for i := range triggered {
				triggered[i] = triggered[i] || e.Triggered[i]
			}
			c.last = e
			fresh = true

		default:
			if fresh {
				c.last.Triggered = triggered
			}
			return c.last
		}
	}
}
