package modes

import (
	"fmt"

	"github.com/hexwalker/hexapod"
	"github.com/hexwalker/hexapod/components/controller"
	"github.com/hexwalker/hexapod/config"
)

const (

	// How much the Up and Down buttons scale the gait timestep by.
	timestepScale = 1.2
)

// State is either in a mode, or changing from one mode to another.
type State struct {
	Mode     int
	Target   int
	Changing bool
}

func inMode(i int) State {
	return State{Mode: i, Target: i}
}

func (s State) String() string {
	if s.Changing {
		return fmt.Sprintf("changing(%d -> %d)", s.Mode, s.Target)
	}

	return fmt.Sprintf("in-mode(%d)", s.Mode)
}

// Handler routes controller input to the current mode. ZR and ZL switch to the
// next and previous modes; Up and Down speed up and slow down the gait.
type Handler struct {
	modes []Mode
	state State

	lastTimestamp uint64
	hasLast       bool
}

// NewHandler returns a handler starting in the first of the given modes.
func NewHandler(modes ...Mode) *Handler {
	if len(modes) == 0 {
		panic("no modes")
	}

	return &Handler{
		modes: modes,
		state: inMode(0),
	}
}

func (h *Handler) State() State {
	return h.state
}

// Current returns the mode in charge. While changing, that's the outgoing mode.
func (h *Handler) Current() Mode {
	return h.modes[h.state.Mode]
}

func (h *Handler) HandleInput(ev controller.Event, body *hexapod.Hexapod, cfg *config.Config) {

	// The same sample again means the buttons haven't been pressed again.
	if h.hasLast && ev.Timestamp == h.lastTimestamp {
		ev.ClearTriggered()
	}

	h.lastTimestamp = ev.Timestamp
	h.hasLast = true

	n := len(h.modes)

	if h.state.Changing {
		if h.modes[h.state.Mode].ReturnToIdle(body, cfg) {
			h.setState(inMode(h.state.Target))
		}

		return
	}

	cur := h.state.Mode

	switch {
	case ev.IsTriggered(controller.ZR):
		h.setState(State{Mode: cur, Target: (cur + 1) % n, Changing: true})

	case ev.IsTriggered(controller.ZL):
		h.setState(State{Mode: cur, Target: (cur - 1 + n) % n, Changing: true})

	case ev.IsTriggered(controller.Up):
		cfg.ScaleTimestep(timestepScale)
		log.Infof("timestep=%.4f", cfg.Timestep)

	case ev.IsTriggered(controller.Down):
		cfg.ScaleTimestep(1 / timestepScale)
		log.Infof("timestep=%.4f", cfg.Timestep)
	}

	h.modes[cur].HandleInput(ev, body, cfg)
}

func (h *Handler) setState(s State) {
	if s.Changing {
		log.Infof("leaving %s for %s", h.modes[s.Mode].Name(), h.modes[s.Target].Name())
	} else {
		log.Infof("mode=%s", h.modes[s.Mode].Name())
	}

	h.state = s
}
