package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// CapsuleSegment returns the world-space endpoints of a capsule's centerline.
func CapsuleSegment(c Collider) (start, end rl.Vector3) {
	up := c.Transform.RotateToWorld(rl.Vector3{Y: c.Shape.HalfHeight})
	return rl.Vector3Subtract(c.Position(), up), rl.Vector3Add(c.Position(), up)
}

// CapsuleSphereIntersection tests a capsule (A) against a sphere (B) by
// treating the closest centerline point as a sphere of the capsule's radius.
func CapsuleSphereIntersection(a, b Collider, info *CollisionInfo) bool {
	start, end := CapsuleSegment(a)
	center := b.Position()

	closest := ClosestPointOnSegment(start, end, center)
	delta := rl.Vector3Subtract(center, closest)
	dist := rl.Vector3Length(delta)

	radii := a.Shape.Radius + b.Shape.Radius
	if dist >= radii {
		return false
	}

	var normal rl.Vector3
	if dist > parallelEpsilon {
		normal = rl.Vector3Scale(delta, 1/dist)
	} else {
		// Sphere center on the centerline: any direction across the axis works
		normal = a.Transform.RotateToWorld(rl.Vector3{X: 1})
	}

	onCapsule := rl.Vector3Add(closest, rl.Vector3Scale(normal, a.Shape.Radius))
	info.AddContactPoint(
		rl.Vector3Subtract(onCapsule, a.Position()),
		rl.Vector3Scale(normal, -b.Shape.Radius),
		normal,
		radii-dist,
	)
	return true
}

// segmentSearchSteps bounds the ternary search for the closest segment point
const segmentSearchSteps = 48

// OBBCapsuleIntersection tests a box (A) against a capsule (B) in the box's
// local frame. AABB colliders are handled as unrotated boxes.
func OBBCapsuleIntersection(a, b Collider, info *CollisionInfo) bool {
	box := NewOBB(a)
	radius := b.Shape.Radius

	start, end := CapsuleSegment(b)
	localStart, localEnd := box.ToLocal(start), box.ToLocal(end)

	if _, _, crosses := clipSegmentToBox(localStart, localEnd, box.HalfSize); crosses {
		return boxCapsuleCrossing(box, b, localStart, localEnd, info)
	}

	t := closestSegmentParamToBox(localStart, localEnd, box.HalfSize)
	onSegment := rl.Vector3Lerp(localStart, localEnd, t)
	onBox := clampVec(onSegment, box.HalfSize)

	toCapsule := rl.Vector3Subtract(onSegment, onBox)
	dist := rl.Vector3Length(toCapsule)
	if dist >= radius {
		return false
	}
	if dist <= parallelEpsilon {
		// Grazing a face within tolerance of the slab clip
		return boxCapsuleCrossing(box, b, localStart, localEnd, info)
	}

	normal := box.RotateToWorld(rl.Vector3Scale(toCapsule, 1/dist))
	info.AddContactPoint(
		box.RotateToWorld(onBox),
		capsuleSurfaceOffset(box, b, onSegment, normal),
		normal,
		radius-dist,
	)
	return true
}

// closestSegmentParamToBox minimizes the squared distance from the segment
// to the box over the segment parameter. The distance is convex in t, so a
// ternary search converges to the global minimum.
func closestSegmentParamToBox(p0, p1, half rl.Vector3) float32 {
	distSq := func(t float32) float32 {
		p := rl.Vector3Lerp(p0, p1, t)
		d := rl.Vector3Subtract(p, clampVec(p, half))
		return rl.Vector3DotProduct(d, d)
	}

	lo, hi := float32(0), float32(1)
	for i := 0; i < segmentSearchSteps; i++ {
		m1 := lo + (hi-lo)/3
		m2 := hi - (hi-lo)/3
		d1, d2 := distSq(m1), distSq(m2)
		switch {
		case d1 < d2:
			hi = m2
		case d1 > d2:
			lo = m1
		default:
			// A minimum lies between; on a plateau this settles mid-segment
			lo, hi = m1, m2
		}
	}
	return (lo + hi) / 2
}

// boxCapsuleCrossing handles a centerline that enters the box. Each box face
// axis is tried as the push-out direction for the whole segment; the one
// with the least travel wins. Its sign always matches the side of the box
// the capsule center is on.
func boxCapsuleCrossing(box OBB, capsule Collider, p0, p1 rl.Vector3, info *CollisionInfo) bool {
	radius := capsule.Shape.Radius

	penetration := float32(math.MaxFloat32)
	var best int
	var sign float32
	for i := 0; i < 3; i++ {
		a, b, h := axis(p0, i), axis(p1, i), axis(box.HalfSize, i)
		// Moving along +axis must clear the lowest endpoint, and vice versa
		if pen := h + radius - min(a, b); pen < penetration {
			penetration, best, sign = pen, i, 1
		}
		if pen := h + radius + max(a, b); pen < penetration {
			penetration, best, sign = pen, i, -1
		}
	}

	// Deepest endpoint along the push direction
	deepest := p0
	if sign*axis(p1, best) < sign*axis(p0, best) {
		deepest = p1
	}
	onBox := deepest
	setAxis(&onBox, best, sign*axis(box.HalfSize, best))
	onBox = clampVec(onBox, box.HalfSize)

	normal := box.RotateToWorld(unitAxis(best, sign))
	info.AddContactPoint(
		box.RotateToWorld(onBox),
		capsuleSurfaceOffset(box, capsule, deepest, normal),
		normal,
		penetration,
	)
	return true
}

// capsuleSurfaceOffset returns the capsule's contact point for a local
// centerline point, as an offset from the capsule's position.
func capsuleSurfaceOffset(box OBB, capsule Collider, onSegment, normal rl.Vector3) rl.Vector3 {
	world := box.ToWorld(onSegment)
	return rl.Vector3Subtract(
		rl.Vector3Subtract(world, capsule.Position()),
		rl.Vector3Scale(normal, capsule.Shape.Radius),
	)
}
