// Package modes turns controller input into body and foot motion. Exactly one
// mode is in charge at a time; the Handler switches between them, letting the
// outgoing mode bring the robot back to a neutral stance first.
package modes

import (
	"github.com/hexwalker/hexapod"
	"github.com/hexwalker/hexapod/components/controller"
	"github.com/hexwalker/hexapod/config"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "modes",
})

type Mode interface {

	// HandleInput advances the mode by one tick.
	HandleInput(ev controller.Event, body *hexapod.Hexapod, cfg *config.Config)

	// ReturnToIdle advances the mode by one tick towards its neutral stance,
	// and returns true once it's there.
	ReturnToIdle(body *hexapod.Hexapod, cfg *config.Config) bool

	Name() string
}
