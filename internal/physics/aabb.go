package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return NewAABBFromHalfExtents(center, half)
}

func NewAABBFromHalfExtents(center, half rl.Vector3) AABB {
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// Intersects is the inclusive overlap test used for broad-phase culling.
func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) HalfExtents() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Subtract(a.Max, a.Min), 0.5)
}

// AABBTest reports strict overlap of two axis-aligned boxes given their
// centers and half sizes. Touching faces do not overlap.
func AABBTest(posA, posB, halfA, halfB rl.Vector3) bool {
	delta := rl.Vector3Subtract(posB, posA)
	total := rl.Vector3Add(halfA, halfB)
	return absf(delta.X) < total.X &&
		absf(delta.Y) < total.Y &&
		absf(delta.Z) < total.Z
}

// aabbFaces are the outward normals of A matching the order of the
// penetration distances computed in AABBIntersection.
var aabbFaces = [6]rl.Vector3{
	{X: -1}, {X: 1},
	{Y: -1}, {Y: 1},
	{Z: -1}, {Z: 1},
}

// AABBIntersection tests two axis-aligned boxes. The contact normal is the
// face of A with the least penetration; contact points are not resolved and
// are reported at the frame origins.
func AABBIntersection(a, b Collider, info *CollisionInfo) bool {
	posA, posB := a.Position(), b.Position()
	halfA, halfB := a.Shape.HalfExtents, b.Shape.HalfExtents

	if !AABBTest(posA, posB, halfA, halfB) {
		return false
	}

	boxA := NewAABBFromHalfExtents(posA, halfA)
	boxB := NewAABBFromHalfExtents(posB, halfB)

	// Penetration depth in each direction
	distances := [6]float32{
		boxB.Max.X - boxA.Min.X, // b past the left of a
		boxA.Max.X - boxB.Min.X, // b past the right of a
		boxB.Max.Y - boxA.Min.Y, // b below a
		boxA.Max.Y - boxB.Min.Y, // b above a
		boxB.Max.Z - boxA.Min.Z, // b behind a
		boxA.Max.Z - boxB.Min.Z, // b in front of a
	}

	// Find the axis with minimum penetration
	penetration := float32(math.MaxFloat32)
	var bestAxis rl.Vector3
	for i, d := range distances {
		if d < penetration {
			penetration = d
			bestAxis = aabbFaces[i]
		}
	}

	info.AddContactPoint(rl.Vector3{}, rl.Vector3{}, bestAxis, penetration)
	return true
}
