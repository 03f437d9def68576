package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// parallelEpsilon guards normalization of near-zero vectors
const parallelEpsilon = 1e-6

func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func clampf(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

// clampVec clamps each component of v into [-half, half]
func clampVec(v, half rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: clampf(v.X, -half.X, half.X),
		Y: clampf(v.Y, -half.Y, half.Y),
		Z: clampf(v.Z, -half.Z, half.Z),
	}
}

// axis returns component i (0=X, 1=Y, 2=Z)
func axis(v rl.Vector3, i int) float32 {
	switch i {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func setAxis(v *rl.Vector3, i int, value float32) {
	switch i {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
}

// unitAxis returns the basis vector for axis i scaled by sign
func unitAxis(i int, sign float32) rl.Vector3 {
	var v rl.Vector3
	setAxis(&v, i, sign)
	return v
}

func signf(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}

// ClosestPointOnSegment returns the point on segment [a, b] nearest to p.
func ClosestPointOnSegment(a, b, p rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	lenSq := rl.Vector3DotProduct(ab, ab)
	if lenSq < parallelEpsilon {
		return a
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(p, a), ab) / lenSq
	return rl.Vector3Add(a, rl.Vector3Scale(ab, clampf(t, 0, 1)))
}

// closestPointsSegments returns the closest pair of points between segments
// [p1, q1] and [p2, q2].
func closestPointsSegments(p1, q1, p2, q2 rl.Vector3) (c1, c2 rl.Vector3) {
	d1 := rl.Vector3Subtract(q1, p1)
	d2 := rl.Vector3Subtract(q2, p2)
	r := rl.Vector3Subtract(p1, p2)
	a := rl.Vector3DotProduct(d1, d1)
	e := rl.Vector3DotProduct(d2, d2)
	f := rl.Vector3DotProduct(d2, r)

	var s, t float32
	switch {
	case a <= parallelEpsilon && e <= parallelEpsilon:
		return p1, p2
	case a <= parallelEpsilon:
		t = clampf(f/e, 0, 1)
	default:
		c := rl.Vector3DotProduct(d1, r)
		if e <= parallelEpsilon {
			s = clampf(-c/a, 0, 1)
		} else {
			b := rl.Vector3DotProduct(d1, d2)
			denom := a*e - b*b
			if denom != 0 {
				s = clampf((b*f-c*e)/denom, 0, 1)
			}
			t = (b*s + f) / e
			if t < 0 {
				t = 0
				s = clampf(-c/a, 0, 1)
			} else if t > 1 {
				t = 1
				s = clampf((b-c)/a, 0, 1)
			}
		}
	}

	c1 = rl.Vector3Add(p1, rl.Vector3Scale(d1, s))
	c2 = rl.Vector3Add(p2, rl.Vector3Scale(d2, t))
	return c1, c2
}

// boxInteriorContact handles a point that lies inside a box (in the box's
// local frame). It returns the outward normal of the nearest face and the
// distance from the point to that face.
func boxInteriorContact(p, half rl.Vector3) (normal rl.Vector3, depth float32) {
	best := 0
	depth = math.MaxFloat32
	sign := float32(1)
	for i := 0; i < 3; i++ {
		c := axis(p, i)
		h := axis(half, i)
		if d := h - c; d < depth {
			depth, best, sign = d, i, 1
		}
		if d := h + c; d < depth {
			depth, best, sign = d, i, -1
		}
	}
	return unitAxis(best, sign), depth
}

// clipSegmentToBox clips the segment p0->p1 against the slabs of a box
// centered at the origin. It reports the parameter range inside the box and
// whether the segment touches the box at all.
func clipSegmentToBox(p0, p1, half rl.Vector3) (tEnter, tExit float32, ok bool) {
	tEnter, tExit = 0, 1
	d := rl.Vector3Subtract(p1, p0)
	for i := 0; i < 3; i++ {
		o, dir, h := axis(p0, i), axis(d, i), axis(half, i)
		if absf(dir) < parallelEpsilon {
			if o < -h || o > h {
				return 0, 0, false
			}
			continue
		}
		tNear, tFar := (-h-o)/dir, (h-o)/dir
		if tNear > tFar {
			tNear, tFar = tFar, tNear
		}
		tEnter = max(tEnter, tNear)
		tExit = min(tExit, tFar)
		if tEnter > tExit {
			return 0, 0, false
		}
	}
	return tEnter, tExit, true
}
