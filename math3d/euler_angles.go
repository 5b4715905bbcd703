package math3d

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hexwalker/hexapod/utils"
)

// EulerAngles describes an orientation as three rotations, in radians: roll
// about the X axis, pitch about Y, and yaw about Z. They're applied in that
// order: roll, then pitch, then yaw.
type EulerAngles struct {
	Roll  float64
	Pitch float64
	Yaw   float64
}

func (ea EulerAngles) String() string {
	return fmt.Sprintf("&Euler{r=%+.2f° p=%+.2f° y=%+.2f°}", utils.Deg(ea.Roll), utils.Deg(ea.Pitch), utils.Deg(ea.Yaw))
}

// Quat returns the rotation as a quaternion.
func (ea EulerAngles) Quat() mgl64.Quat {
	return mgl64.AnglesToQuat(ea.Yaw, ea.Pitch, ea.Roll, mgl64.ZYX)
}

// Transform returns the rotation as a transform with no translation.
func (ea EulerAngles) Transform() Transform3 {
	return Transform3{Rotation: ea.Quat()}
}
