// Package telemetry streams snapshots of the robot to websocket clients, for
// visualization. Clients which can't keep up miss frames; the control loop
// never waits for them.
package telemetry

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hexwalker/hexapod"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/websocket"
)

const (

	// How often snapshots are sent.
	DefaultRate = 30

	// Snapshots queued per client before dropping.
	clientBuffer = 4
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "telemetry",
})

type Server struct {
	interval time.Duration
	last     time.Time

	mu      sync.Mutex
	clients map[string]chan hexapod.Telemetry
}

// NewServer returns a server which sends at most rate snapshots per second.
func NewServer(rate int) *Server {
	if rate <= 0 {
		rate = DefaultRate
	}

	return &Server{
		interval: time.Second / time.Duration(rate),
		clients:  map[string]chan hexapod.Telemetry{},
	}
}

// Handler returns the websocket endpoint.
func (s *Server) Handler() http.Handler {
	return websocket.Handler(s.handle)
}

// ListenAndServe serves the websocket endpoint at /ws until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "listen on %s", addr)
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", s.Handler())
	srv := &http.Server{Handler: mux}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	log.Infof("listening on %s", l.Addr())
	err = srv.Serve(l)
	if err == http.ErrServerClosed {
		return nil
	}

	return errors.Wrap(err, "serve telemetry")
}

func (s *Server) handle(ws *websocket.Conn) {
	id := uuid.NewString()
	clog := log.WithFields(logrus.Fields{
		"client": id,
		"remote": ws.Request().RemoteAddr,
	})

	ch := s.register(id)
	clog.Info("connected")
	defer clog.Info("disconnected")

	// Clients don't send anything, but reading is how we notice that they've
	// gone away.
	go func() {
		var discard string
		for {
			if err := websocket.Message.Receive(ws, &discard); err != nil {
				s.unregister(id)
				return
			}
		}
	}()

	for msg := range ch {
		if err := websocket.JSON.Send(ws, msg); err != nil {
			clog.Debugf("send failed: %s", err)
			s.unregister(id)
			break
		}
	}

	ws.Close()
}

func (s *Server) register(id string) chan hexapod.Telemetry {
	ch := make(chan hexapod.Telemetry, clientBuffer)

	s.mu.Lock()
	s.clients[id] = ch
	s.mu.Unlock()

	return ch
}

func (s *Server) unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch, ok := s.clients[id]; ok {
		delete(s.clients, id)
		close(ch)
	}
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.clients)
}

// due returns true (and resets the timer) if it's time to send again.
func (s *Server) due(now time.Time) bool {
	if !s.last.IsZero() && now.Sub(s.last) < s.interval {
		return false
	}

	s.last = now
	return true
}

// Report sends msg to every client, unless a snapshot was sent too recently.
// It returns true if it was sent.
func (s *Server) Report(now time.Time, msg hexapod.Telemetry) bool {
	if !s.due(now) {
		return false
	}

	s.broadcast(msg)
	return true
}

func (s *Server) broadcast(msg hexapod.Telemetry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, ch := range s.clients {
		select {
		case ch <- msg:
		default:
			log.WithField("client", id).Debug("dropped frame")
		}
	}
}

func (s *Server) Boot() error {
	return nil
}

// Tick reports a snapshot of the robot, if anyone is listening.
func (s *Server) Tick(now time.Time, hex *hexapod.Hexapod) error {
	if s.Clients() == 0 {
		return nil
	}

	s.Report(now, hex.Telemetry())
	return nil
}
