package servos

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "servos",
})

// Controller drives the servos of one side of the body via a Board.
type Controller struct {
	side  Side
	board Board
}

func NewController(side Side, board Board) *Controller {
	return &Controller{
		side:  side,
		board: board,
	}
}

// SetAngles moves each servo to the given angle, and commits. Servos with a
// nil angle are left where they are. Angles which can't be reached are logged
// and skipped; they don't prevent the others from moving.
func (c *Controller) SetAngles(angles []*float64) error {
	if len(angles) != ServosPerSide {
		return errors.Errorf("expected %d angles, got %d", ServosPerSide, len(angles))
	}

	for i, a := range angles {
		if a == nil {
			continue
		}

		pulse, err := c.side.Pulse(i, *a)
		if err != nil {
			log.WithField("side", c.side.Name).Warn(err)
			continue
		}

		c.board.SetPulse(c.side.Pins[i], pulse)
	}

	err := c.board.Commit()
	if err != nil {
		return errors.Wrapf(err, "commit %s", c.side.Name)
	}

	return nil
}

// Release powers down every servo on this side.
func (c *Controller) Release() error {
	err := c.board.Release()
	if err != nil {
		return errors.Wrapf(err, "release %s", c.side.Name)
	}

	return nil
}
