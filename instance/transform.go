package instance

import "math"

// Transform is a 2D position plus a rotation in radians.
type Transform struct {
	X     float64
	Y     float64
	Angle float64
}

// Compose places local relative to pose: the local position is rotated by
// the pose angle and then translated by the pose position, and the angles add.
func Compose(pose, local Transform) Transform {
	if pose.Angle == 0 {
		return Transform{X: local.X + pose.X, Y: local.Y + pose.Y, Angle: local.Angle}
	}
	sin, cos := math.Sincos(pose.Angle)
	return Transform{
		X:     local.X*cos - local.Y*sin + pose.X,
		Y:     local.X*sin + local.Y*cos + pose.Y,
		Angle: pose.Angle + local.Angle,
	}
}

// Component pairs a model with a transform. For a Body the transform is local,
// for WorldComponents it is in world space.
type Component struct {
	Model     *Model
	Transform Transform
}

// Drawable is anything that can report its visual components in world space.
type Drawable interface {
	WorldComponents() []Component
}

// Body is a plain Drawable: a world pose plus components anchored to it.
type Body struct {
	Pose       Transform
	Components []Component
}

func (b Body) WorldComponents() []Component {
	out := make([]Component, len(b.Components))
	for i, c := range b.Components {
		out[i] = Component{Model: c.Model, Transform: Compose(b.Pose, c.Transform)}
	}
	return out
}
