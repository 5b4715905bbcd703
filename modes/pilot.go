package modes

import (
	"time"

	"github.com/hexwalker/hexapod"
	"github.com/hexwalker/hexapod/components/controller"
	"github.com/hexwalker/hexapod/config"
)

// Source provides the newest controller sample, without blocking.
type Source interface {
	Latest() controller.Event
}

// Pilot is the component which feeds the controller into the modes, and
// solves the legs for wherever the modes put the feet. Pressing B shuts the
// robot down.
type Pilot struct {
	src     Source
	handler *Handler
	cfg     *config.Config
}

func NewPilot(src Source, handler *Handler, cfg *config.Config) *Pilot {
	return &Pilot{
		src:     src,
		handler: handler,
		cfg:     cfg,
	}
}

func (p *Pilot) Boot() error {
	log.Infof("starting in %s mode", p.handler.Current().Name())
	return nil
}

func (p *Pilot) Tick(now time.Time, hex *hexapod.Hexapod) error {
	ev := p.src.Latest()

	if ev.IsPressed(controller.B) && !hex.Shutdown {
		log.Info("pressed B, shutting down")
		hex.Shutdown = true
	}

	p.handler.HandleInput(ev, hex, p.cfg)
	hex.Update()

	return nil
}
