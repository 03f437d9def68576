package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Transform is the read-only position and orientation of a shape instance.
// A zero Orientation is treated as identity.
type Transform struct {
	Position    rl.Vector3
	Orientation rl.Quaternion
}

// NewTransform creates an unrotated frame at pos.
func NewTransform(pos rl.Vector3) Transform {
	return Transform{Position: pos, Orientation: rl.QuaternionIdentity()}
}

// NewTransformEuler creates a frame from euler angles in degrees (X, Y, Z).
func NewTransformEuler(pos, rotation rl.Vector3) Transform {
	q := rl.QuaternionFromEuler(rotation.X*rl.Deg2rad, rotation.Y*rl.Deg2rad, rotation.Z*rl.Deg2rad)
	return Transform{Position: pos, Orientation: rl.QuaternionNormalize(q)}
}

func (t Transform) rotation() rl.Quaternion {
	q := t.Orientation
	if q.X == 0 && q.Y == 0 && q.Z == 0 && q.W == 0 {
		return rl.QuaternionIdentity()
	}
	return q
}

// RotateToWorld rotates a local direction into world space.
func (t Transform) RotateToWorld(v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, t.rotation())
}

// RotateToLocal rotates a world direction into the frame's local axes.
func (t Transform) RotateToLocal(v rl.Vector3) rl.Vector3 {
	return rl.Vector3RotateByQuaternion(v, rl.QuaternionInvert(t.rotation()))
}

// ToWorld maps a local point to world space.
func (t Transform) ToWorld(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(t.RotateToWorld(p), t.Position)
}

// ToLocal maps a world point into the frame.
func (t Transform) ToLocal(p rl.Vector3) rl.Vector3 {
	return t.RotateToLocal(rl.Vector3Subtract(p, t.Position))
}

// Axes returns the frame's local X, Y and Z axes in world space.
func (t Transform) Axes() [3]rl.Vector3 {
	q := t.rotation()
	return [3]rl.Vector3{
		rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{X: 1}, q)),
		rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Y: 1}, q)),
		rl.Vector3Normalize(rl.Vector3RotateByQuaternion(rl.Vector3{Z: 1}, q)),
	}
}
