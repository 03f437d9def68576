package physics

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// satEpsilon is added to |R| so near-parallel edge pairs, whose cross
// product is close to zero, cannot produce a false separating axis.
const satEpsilon = 1.1920929e-7

// edgeAxisBias makes an edge axis win only when it is clearly shallower than
// the best face axis. Face contacts are more stable for stacking.
const edgeAxisBias = 0.95

// supportTolerance treats a box axis as perpendicular to a direction
const supportTolerance = 1e-4

// NewOBB builds the oriented box for a box collider. AABB colliders ignore
// the frame's orientation and come back axis aligned.
func NewOBB(c Collider) OBB {
	if c.Shape.Kind == KindAABB {
		return NewAABBasOBB(c.Position(), c.Shape.HalfExtents)
	}
	return OBB{
		Center:   c.Position(),
		HalfSize: c.Shape.HalfExtents,
		Axes:     c.Transform.Axes(),
	}
}

// NewAABBasOBB creates an axis-aligned OBB (no rotation)
func NewAABBasOBB(center, halfSize rl.Vector3) OBB {
	return OBB{
		Center:   center,
		HalfSize: halfSize,
		Axes: [3]rl.Vector3{
			{X: 1, Y: 0, Z: 0},
			{X: 0, Y: 1, Z: 0},
			{X: 0, Y: 0, Z: 1},
		},
	}
}

// ToLocal expresses a world point in the box's frame.
func (o OBB) ToLocal(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// RotateToWorld rotates a local direction or offset into world axes.
func (o OBB) RotateToWorld(v rl.Vector3) rl.Vector3 {
	result := rl.Vector3Scale(o.Axes[0], v.X)
	result = rl.Vector3Add(result, rl.Vector3Scale(o.Axes[1], v.Y))
	return rl.Vector3Add(result, rl.Vector3Scale(o.Axes[2], v.Z))
}

// ToWorld maps a local point back to world space.
func (o OBB) ToWorld(p rl.Vector3) rl.Vector3 {
	return rl.Vector3Add(o.Center, o.RotateToWorld(p))
}

// ClosestPointOnOBB returns the closest point on or inside the OBB to the given point
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	return o.ToWorld(clampVec(o.ToLocal(point), o.HalfSize))
}

// Support returns the point of the box furthest along dir. Box axes that are
// perpendicular to dir contribute their center, so a face pointing along dir
// yields its center rather than an arbitrary corner.
func (o OBB) Support(dir rl.Vector3) rl.Vector3 {
	p := o.Center
	for i := 0; i < 3; i++ {
		d := rl.Vector3DotProduct(o.Axes[i], dir)
		if absf(d) < supportTolerance {
			continue
		}
		p = rl.Vector3Add(p, rl.Vector3Scale(o.Axes[i], signf(d)*axis(o.HalfSize, i)))
	}
	return p
}

// edge returns the endpoints of the box edge parallel to axis i that lies
// furthest along dir.
func (o OBB) edge(i int, dir rl.Vector3) (rl.Vector3, rl.Vector3) {
	mid := o.Center
	for k := 0; k < 3; k++ {
		if k == i {
			continue
		}
		s := signf(rl.Vector3DotProduct(o.Axes[k], dir))
		mid = rl.Vector3Add(mid, rl.Vector3Scale(o.Axes[k], s*axis(o.HalfSize, k)))
	}
	half := rl.Vector3Scale(o.Axes[i], axis(o.HalfSize, i))
	return rl.Vector3Subtract(mid, half), rl.Vector3Add(mid, half)
}

type satAxisKind uint8

const (
	satFaceA satAxisKind = iota
	satFaceB
	satEdge
)

// satResult is the axis of minimum penetration found by the SAT.
type satResult struct {
	kind   satAxisKind
	i, j   int
	normal rl.Vector3 // world space, from A toward B
	depth  float32
}

// separatingAxisTest runs the 15-axis test for two oriented boxes. It
// returns false as soon as a separating axis is found; otherwise the axis
// of least penetration.
func separatingAxisTest(a, b OBB) (satResult, bool) {
	var R, AbsR [3][3]float32

	// Rotation expressing b in a's frame
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			R[i][j] = rl.Vector3DotProduct(a.Axes[i], b.Axes[j])
			AbsR[i][j] = absf(R[i][j]) + satEpsilon
		}
	}

	// Translation into a's frame
	tw := rl.Vector3Subtract(b.Center, a.Center)
	t := [3]float32{
		rl.Vector3DotProduct(tw, a.Axes[0]),
		rl.Vector3DotProduct(tw, a.Axes[1]),
		rl.Vector3DotProduct(tw, a.Axes[2]),
	}
	ea := [3]float32{a.HalfSize.X, a.HalfSize.Y, a.HalfSize.Z}
	eb := [3]float32{b.HalfSize.X, b.HalfSize.Y, b.HalfSize.Z}

	// Face and edge minima are kept apart so the edge bias is applied once,
	// against the face minimum, whatever order the boxes come in.
	best := satResult{depth: math.MaxFloat32}
	bestEdge := satResult{depth: math.MaxFloat32}

	// A's face normals
	for i := 0; i < 3; i++ {
		ra := ea[i]
		rb := eb[0]*AbsR[i][0] + eb[1]*AbsR[i][1] + eb[2]*AbsR[i][2]
		dist := t[i]
		if absf(dist) > ra+rb {
			return satResult{}, false
		}
		if pen := ra + rb - absf(dist); pen < best.depth {
			best = satResult{kind: satFaceA, i: i, depth: pen,
				normal: rl.Vector3Scale(a.Axes[i], signf(dist))}
		}
	}

	// B's face normals
	for j := 0; j < 3; j++ {
		ra := ea[0]*AbsR[0][j] + ea[1]*AbsR[1][j] + ea[2]*AbsR[2][j]
		rb := eb[j]
		dist := t[0]*R[0][j] + t[1]*R[1][j] + t[2]*R[2][j]
		if absf(dist) > ra+rb {
			return satResult{}, false
		}
		if pen := ra + rb - absf(dist); pen < best.depth {
			best = satResult{kind: satFaceB, j: j, depth: pen,
				normal: rl.Vector3Scale(b.Axes[j], signf(dist))}
		}
	}

	// Cross products of edges: L = A[i] x B[j]
	for i := 0; i < 3; i++ {
		i1, i2 := (i+1)%3, (i+2)%3
		for j := 0; j < 3; j++ {
			j1, j2 := (j+1)%3, (j+2)%3
			ra := ea[i1]*AbsR[i2][j] + ea[i2]*AbsR[i1][j]
			rb := eb[j1]*AbsR[i][j2] + eb[j2]*AbsR[i][j1]
			dist := t[i2]*R[i1][j] - t[i1]*R[i2][j]
			if absf(dist) > ra+rb {
				return satResult{}, false
			}

			// Parallel edges give a degenerate axis: still a valid
			// separation test thanks to satEpsilon, useless as a normal.
			length := float32(math.Sqrt(float64(R[i1][j]*R[i1][j] + R[i2][j]*R[i2][j])))
			if length < 1e-4 {
				continue
			}
			pen := (ra + rb - absf(dist)) / length
			if pen < bestEdge.depth {
				n := rl.Vector3Normalize(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]))
				bestEdge = satResult{kind: satEdge, i: i, j: j, depth: pen,
					normal: rl.Vector3Scale(n, signf(dist))}
			}
		}
	}

	if bestEdge.depth < best.depth*edgeAxisBias {
		return bestEdge, true
	}
	return best, true
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	_, ok := separatingAxisTest(a, b)
	return ok
}

// OBBIntersection tests two oriented boxes (AABB colliders are accepted as
// unrotated boxes). The contact normal is the axis of least penetration;
// contact points come from the incident box's supporting feature, or from
// the closest points between the two supporting edges for edge contacts.
func OBBIntersection(a, b Collider, info *CollisionInfo) bool {
	boxA, boxB := NewOBB(a), NewOBB(b)

	sat, ok := separatingAxisTest(boxA, boxB)
	if !ok {
		return false
	}

	n := sat.normal
	var pointA, pointB rl.Vector3
	switch sat.kind {
	case satFaceA:
		// B's deepest point inside A, projected back onto A's face
		pointB = boxB.Support(rl.Vector3Negate(n))
		pointA = rl.Vector3Add(pointB, rl.Vector3Scale(n, sat.depth))
	case satFaceB:
		pointA = boxA.Support(n)
		pointB = rl.Vector3Subtract(pointA, rl.Vector3Scale(n, sat.depth))
	case satEdge:
		a0, a1 := boxA.edge(sat.i, n)
		b0, b1 := boxB.edge(sat.j, rl.Vector3Negate(n))
		pointA, pointB = closestPointsSegments(a0, a1, b0, b1)
	}

	info.AddContactPoint(
		rl.Vector3Subtract(pointA, boxA.Center),
		rl.Vector3Subtract(pointB, boxB.Center),
		n,
		sat.depth,
	)
	return true
}
