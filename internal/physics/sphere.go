package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// fallbackNormal is used when two centers coincide and no direction exists
var fallbackNormal = rl.Vector3{Y: 1}

// SphereIntersection tests two spheres. Touching spheres do not collide.
func SphereIntersection(a, b Collider, info *CollisionInfo) bool {
	radiusA, radiusB := a.Shape.Radius, b.Shape.Radius
	radii := radiusA + radiusB
	delta := rl.Vector3Subtract(b.Position(), a.Position())
	dist := rl.Vector3Length(delta)

	if dist >= radii {
		return false
	}

	normal := fallbackNormal
	if dist > parallelEpsilon {
		normal = rl.Vector3Scale(delta, 1/dist)
	}

	info.AddContactPoint(
		rl.Vector3Scale(normal, radiusA),
		rl.Vector3Scale(normal, -radiusB),
		normal,
		radii-dist,
	)
	return true
}

// AABBSphereIntersection tests an axis-aligned box (A) against a sphere (B).
func AABBSphereIntersection(a, b Collider, info *CollisionInfo) bool {
	return boxSphere(NewAABBasOBB(a.Position(), a.Shape.HalfExtents), b, info)
}

// OBBSphereIntersection tests an oriented box (A) against a sphere (B).
func OBBSphereIntersection(a, b Collider, info *CollisionInfo) bool {
	return boxSphere(NewOBB(a), b, info)
}

// boxSphere clamps the sphere center into the box's local frame. The normal
// runs from the closest box point to the sphere center.
func boxSphere(box OBB, sphere Collider, info *CollisionInfo) bool {
	radius := sphere.Shape.Radius
	local := box.ToLocal(sphere.Position())

	closest := clampVec(local, box.HalfSize)
	toSphere := rl.Vector3Subtract(local, closest)
	dist := rl.Vector3Length(toSphere)

	var normalLocal rl.Vector3
	var penetration float32
	if dist > parallelEpsilon {
		if dist >= radius {
			return false
		}
		normalLocal = rl.Vector3Scale(toSphere, 1/dist)
		penetration = radius - dist
	} else {
		// Center inside the box: push out through the nearest face
		var depth float32
		normalLocal, depth = boxInteriorContact(local, box.HalfSize)
		closest = rl.Vector3Add(local, rl.Vector3Scale(normalLocal, depth))
		penetration = radius + depth
	}

	normal := box.RotateToWorld(normalLocal)
	info.AddContactPoint(
		box.RotateToWorld(closest),
		rl.Vector3Scale(normal, -radius),
		normal,
		penetration,
	)
	return true
}
