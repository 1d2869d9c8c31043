package geom

import "github.com/go-gl/mathgl/mgl64"

// Up is the vertical axis; yaw rotations are taken about it.
var Up = mgl64.Vec3{0, 1, 0}

// Transform is a position, orientation and uniform scale.
type Transform struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       float64
}

// Identity returns a transform that leaves points unchanged.
func Identity() Transform {
	return Transform{Orientation: mgl64.QuatIdent(), Scale: 1}
}

// Yaw returns a rotation of angle radians about Up.
func Yaw(angle float64) mgl64.Quat {
	return mgl64.QuatRotate(angle, Up)
}

// Matrix composes translation * rotation * scale.
func (t Transform) Matrix() mgl64.Mat4 {
	p := t.Position
	return mgl64.Translate3D(p[0], p[1], p[2]).
		Mul4(t.Orientation.Normalize().Mat4()).
		Mul4(mgl64.Scale3D(t.Scale, t.Scale, t.Scale))
}
