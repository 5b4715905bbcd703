package servos

import (
	"time"

	"github.com/hexwalker/hexapod"
	"github.com/pkg/errors"
)

// Driver sends the joint angles of the whole robot to two boards, one per
// side. It's a component, so is ticked along with everything else.
type Driver struct {
	right *Controller
	left  *Controller

	released bool
}

func NewDriver(right, left Board) *Driver {
	return &Driver{
		right: NewController(Right, right),
		left:  NewController(Left, left),
	}
}

// SetAngles sends the first nine angles (right-front, right-middle,
// right-back) to the right board, and the rest (left-back, left-middle,
// left-front) to the left.
func (d *Driver) SetAngles(angles [hexapod.NumAngles]*float64) error {
	err := d.right.SetAngles(angles[:ServosPerSide])
	if err != nil {
		return err
	}

	return d.left.SetAngles(angles[ServosPerSide:])
}

// Shutdown powers off all servos. This should be called before terminating
// the program, to ensure that servos don't stay powered up indefinitely.
func (d *Driver) Shutdown() error {
	d.released = true

	errR := d.right.Release()
	errL := d.left.Release()
	if errR != nil {
		return errR
	}

	return errL
}

func (d *Driver) Boot() error {
	return nil
}

// Tick sends the current angles, or releases the servos (once) if the hexapod
// is shutting down.
func (d *Driver) Tick(now time.Time, hex *hexapod.Hexapod) error {
	if hex.Shutdown {
		if d.released {
			return nil
		}

		log.Info("releasing servos")
		return errors.Wrap(d.Shutdown(), "shutdown")
	}

	return d.SetAngles(hex.Angles())
}
