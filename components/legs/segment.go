package legs

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hexwalker/hexapod/math3d"
)

// Segment is one rigid link of a kinematic chain. Each segment rotates (from
// the end of its parent) and then extends along its own X axis.
type Segment struct {
	Name     string
	parent   *Segment
	Child    *Segment
	Rotation mgl64.Quat
	vec      math3d.Vector3
}

func MakeSegment(name string, parent *Segment, rotation mgl64.Quat, vec math3d.Vector3) *Segment {
	s := &Segment{
		Name:     name,
		parent:   parent,
		Rotation: rotation,
		vec:      vec,
	}

	if parent != nil {
		parent.Child = s
	}

	return s
}

// MakeRootSegment returns a segment starting at the origin of the chain.
func MakeRootSegment(rotation mgl64.Quat, vec math3d.Vector3) *Segment {
	return MakeSegment("root", nil, rotation, vec)
}

func (s Segment) String() string {
	var childStr string

	if s.Child != nil {
		childStr = s.Child.String()
	} else {
		childStr = "nil"
	}

	return fmt.Sprintf("&Seg{%s: %v %s}", s.Name, s.End(), childStr)
}

// Start returns the coordinates of the start of this segment, in the space of
// the root of the chain.
func (s *Segment) Start() math3d.Vector3 {
	return s.Project(math3d.ZeroVector3)
}

// End returns the coordinates of the end of this segment, in the space of the
// root of the chain.
func (s *Segment) End() math3d.Vector3 {
	return s.Project(s.vec)
}

// World returns the transform from this segment's space to the root space.
func (s *Segment) World() math3d.Transform3 {

	// if this segment has a parent, our transformation starts at the end of the
	// parent segment, and rotates into this coordinate space.
	if s.parent != nil {
		local := math3d.Transform3{Rotation: s.Rotation, Translation: s.parent.vec}
		return local.Then(s.parent.World())
	}

	// no parent means that this is a root segment, so only the rotation applies.
	return math3d.Transform3{Rotation: s.Rotation}
}

// Project transforms a vector in this segment's coordinate space into the root
// space.
func (s *Segment) Project(v math3d.Vector3) math3d.Vector3 {
	return s.World().TransformPoint(v)
}
