package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// rayBoxEpsilon absorbs float error when checking a slab hit lies on the box
const rayBoxEpsilon = 0.0001

// Ray is a world-space half line. Direction must be unit length.
type Ray struct {
	Origin    rl.Vector3
	Direction rl.Vector3
}

// NewRay normalizes direction. A zero direction is invalid input.
func NewRay(origin, direction rl.Vector3) Ray {
	return Ray{Origin: origin, Direction: rl.Vector3Normalize(direction)}
}

// At returns the point at parametric distance t along the ray.
func (r Ray) At(t float32) rl.Vector3 {
	return rl.Vector3Add(r.Origin, rl.Vector3Scale(r.Direction, t))
}

// Raylib converts to raylib's ray type for drawing.
func (r Ray) Raylib() rl.Ray {
	return rl.Ray{Position: r.Origin, Direction: r.Direction}
}

// RayCollision is filled only when a ray test succeeds.
type RayCollision struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// Plane is the set of points p with dot(Normal, p) + Distance = 0.
type Plane struct {
	Normal   rl.Vector3
	Distance float32
}

// NewPlaneFromPoint creates a plane through point with the given normal.
func NewPlaneFromPoint(normal, point rl.Vector3) Plane {
	normal = rl.Vector3Normalize(normal)
	return Plane{Normal: normal, Distance: -rl.Vector3DotProduct(normal, point)}
}

func (p Plane) PointOnPlane() rl.Vector3 {
	return rl.Vector3Scale(p.Normal, -p.Distance)
}

// RayPlaneIntersection fails only for rays parallel to the plane. The
// distance is signed: hits behind the origin are reported too.
func RayPlaneIntersection(r Ray, p Plane) (RayCollision, bool) {
	ln := rl.Vector3DotProduct(p.Normal, r.Direction)
	if ln == 0 {
		return RayCollision{}, false
	}

	toPlane := rl.Vector3Subtract(p.PointOnPlane(), r.Origin)
	d := rl.Vector3DotProduct(toPlane, p.Normal) / ln

	return RayCollision{Point: r.At(d), Normal: p.Normal, Distance: d}, true
}

// RayIntersection tests a ray against any collider.
func RayIntersection(r Ray, c Collider) (RayCollision, bool) {
	switch c.Shape.Kind {
	case KindAABB:
		return RayAABBIntersection(r, c)
	case KindOBB:
		return RayOBBIntersection(r, c)
	case KindSphere:
		return RaySphereIntersection(r, c)
	case KindCapsule:
		return RayCapsuleIntersection(r, c)
	}
	return RayCollision{}, false
}

// RayBoxIntersection is the slab test against an axis-aligned box. Each
// axis uses the face the ray enters through; the latest entry is the hit.
// Rays that start inside the box or point away from it miss.
func RayBoxIntersection(r Ray, boxPos, halfSize rl.Vector3) (RayCollision, bool) {
	boxMin := rl.Vector3Subtract(boxPos, halfSize)
	boxMax := rl.Vector3Add(boxPos, halfSize)

	tVals := [3]float32{-1, -1, -1}
	for i := 0; i < 3; i++ {
		dir := axis(r.Direction, i)
		if dir > 0 {
			tVals[i] = (axis(boxMin, i) - axis(r.Origin, i)) / dir
		} else if dir < 0 {
			tVals[i] = (axis(boxMax, i) - axis(r.Origin, i)) / dir
		}
	}

	best := 0
	for i := 1; i < 3; i++ {
		if tVals[i] > tVals[best] {
			best = i
		}
	}
	bestT := tVals[best]
	if bestT < 0 {
		return RayCollision{}, false
	}

	point := r.At(bestT)
	for i := 0; i < 3; i++ {
		if axis(point, i)+rayBoxEpsilon < axis(boxMin, i) ||
			axis(point, i)-rayBoxEpsilon > axis(boxMax, i) {
			return RayCollision{}, false
		}
	}

	return RayCollision{
		Point:    point,
		Normal:   unitAxis(best, -signf(axis(r.Direction, best))),
		Distance: bestT,
	}, true
}

func RayAABBIntersection(r Ray, c Collider) (RayCollision, bool) {
	return RayBoxIntersection(r, c.Position(), c.Shape.HalfExtents)
}

// RayOBBIntersection moves the ray into the box's frame, runs the slab test
// there and maps the hit back to world space.
func RayOBBIntersection(r Ray, c Collider) (RayCollision, bool) {
	t := c.Transform
	local := Ray{
		Origin:    t.ToLocal(r.Origin),
		Direction: t.RotateToLocal(r.Direction),
	}

	hit, ok := RayBoxIntersection(local, rl.Vector3{}, c.Shape.HalfExtents)
	if !ok {
		return RayCollision{}, false
	}
	hit.Point = t.ToWorld(hit.Point)
	hit.Normal = t.RotateToWorld(hit.Normal)
	return hit, true
}

// RaySphereIntersection fails when the sphere center is behind the ray
// origin or the ray passes further than the radius from it.
func RaySphereIntersection(r Ray, c Collider) (RayCollision, bool) {
	center := c.Position()
	radius := c.Shape.Radius

	dir := rl.Vector3Subtract(center, r.Origin)
	sphereProj := rl.Vector3DotProduct(dir, r.Direction)
	if sphereProj < 0 {
		return RayCollision{}, false
	}

	point := r.At(sphereProj)
	sphereDist := rl.Vector3Length(rl.Vector3Subtract(point, center))
	if sphereDist > radius {
		return RayCollision{}, false
	}

	offset := float32(math.Sqrt(float64(radius*radius - sphereDist*sphereDist)))
	dist := sphereProj - offset
	if dist < 0 {
		// Origin inside the sphere: the exit point is the nearest hit ahead
		dist = sphereProj + offset
	}

	hitPoint := r.At(dist)
	return RayCollision{
		Point:    hitPoint,
		Normal:   rl.Vector3Normalize(rl.Vector3Subtract(hitPoint, center)),
		Distance: dist,
	}, true
}

// RayCapsuleIntersection is reserved; capsules are never hit by rays.
// TODO: ray vs capsule as ray vs swept sphere (cylinder body plus two caps).
func RayCapsuleIntersection(r Ray, c Collider) (RayCollision, bool) {
	return RayCollision{}, false
}
