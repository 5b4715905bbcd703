package telemetry

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hexwalker/hexapod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func TestRateLimit(t *testing.T) {
	s := NewServer(30)
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	msg := hexapod.Telemetry{}

	assert.True(t, s.Report(t0, msg))
	assert.False(t, s.Report(t0.Add(10*time.Millisecond), msg))
	assert.False(t, s.Report(t0.Add(30*time.Millisecond), msg))
	assert.True(t, s.Report(t0.Add(34*time.Millisecond), msg))
	assert.False(t, s.Report(t0.Add(50*time.Millisecond), msg))
}

func TestDefaultRate(t *testing.T) {
	s := NewServer(0)
	assert.Equal(t, time.Second/DefaultRate, s.interval)
}

func TestServeTelemetry(t *testing.T) {
	s := NewServer(30)
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	ws, err := websocket.Dial(url, "", "http://localhost/")
	require.NoError(t, err)
	defer ws.Close()

	require.Eventually(t, func() bool { return s.Clients() == 1 }, time.Second, time.Millisecond)

	hex := hexapod.New()
	require.NoError(t, s.Tick(time.Now(), hex))

	var got map[string]interface{}
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, websocket.JSON.Receive(ws, &got))

	assert.Equal(t, []interface{}{0.0, 0.0}, got["center"])
	assert.Equal(t, 0.0, got["rotation"])
	assert.Len(t, got["legs"], 6)
	assert.Len(t, got["angles"], 18)

	ws.Close()
	require.Eventually(t, func() bool { return s.Clients() == 0 }, time.Second, time.Millisecond)
}

func TestSlowClientDoesNotBlock(t *testing.T) {
	s := NewServer(1000)
	ch := s.register("slow")

	t0 := time.Now()
	for i := 0; i < 100; i++ {
		s.Report(t0.Add(time.Duration(i)*time.Second), hexapod.Telemetry{})
	}

	assert.Len(t, ch, clientBuffer)
	s.unregister("slow")
	assert.Equal(t, 0, s.Clients())
}

func TestTickReportsAtRate(t *testing.T) {
	s := NewServer(30)
	hex := hexapod.New()
	t0 := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	// Nobody listening, so nothing is reported and the limit isn't touched.
	require.NoError(t, s.Tick(t0, hex))
	assert.True(t, s.last.IsZero())

	ch := s.register("a")
	for i := 0; i < 6; i++ {
		require.NoError(t, s.Tick(t0.Add(time.Duration(i)*time.Second/60), hex))
	}

	// 60 ticks per second, reported at 30.
	assert.Len(t, ch, 3)
	s.unregister("a")
}
