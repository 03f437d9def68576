package viewer

import (
	"collide3d/internal/physics"
	"collide3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// boxEdges indexes pairs of boxCorners that share an edge.
var boxEdges = [12][2]int{
	{0, 1}, {1, 3}, {3, 2}, {2, 0},
	{4, 5}, {5, 7}, {7, 6}, {6, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// boxCorners returns the eight world-space corners of a box collider. Bit 0
// of the index picks +X, bit 1 +Y and bit 2 +Z.
func boxCorners(c physics.Collider) [8]rl.Vector3 {
	h := c.Shape.HalfExtents
	var out [8]rl.Vector3
	for i := range out {
		local := rl.Vector3{X: -h.X, Y: -h.Y, Z: -h.Z}
		if i&1 != 0 {
			local.X = h.X
		}
		if i&2 != 0 {
			local.Y = h.Y
		}
		if i&4 != 0 {
			local.Z = h.Z
		}
		if c.Shape.Kind == physics.KindAABB {
			out[i] = rl.Vector3Add(c.Position(), local)
		} else {
			out[i] = c.Transform.ToWorld(local)
		}
	}
	return out
}

func collidingSet(contacts []world.Contact) map[*world.Body]bool {
	set := make(map[*world.Body]bool, len(contacts)*2)
	for _, c := range contacts {
		set[c.A] = true
		set[c.B] = true
	}
	return set
}

func bodyColor(b *world.Body, colliding, selected bool) rl.Color {
	switch {
	case selected:
		return rl.Yellow
	case colliding:
		return rl.Red
	case b.Color.A == 0:
		return rl.White
	}
	return b.Color
}

func drawBody(b *world.Body, color rl.Color) {
	c := b.Collider
	switch c.Shape.Kind {
	case physics.KindAABB, physics.KindOBB:
		corners := boxCorners(c)
		for _, e := range boxEdges {
			rl.DrawLine3D(corners[e[0]], corners[e[1]], color)
		}
	case physics.KindSphere:
		rl.DrawSphereWires(c.Position(), c.Shape.Radius, 8, 12, color)
	case physics.KindCapsule:
		start, end := physics.CapsuleSegment(c)
		rl.DrawCylinderWiresEx(start, end, c.Shape.Radius, c.Shape.Radius, 12, color)
		rl.DrawSphereWires(start, c.Shape.Radius, 6, 12, color)
		rl.DrawSphereWires(end, c.Shape.Radius, 6, 12, color)
	}
}

func drawAABB(box physics.AABB, color rl.Color) {
	rl.DrawBoundingBox(rl.BoundingBox{Min: box.Min, Max: box.Max}, color)
}

// drawContact marks both contact points and the normal from A toward B.
func drawContact(c world.Contact) {
	a, b := c.PointA(), c.PointB()
	rl.DrawSphere(a, 0.06, rl.Orange)
	rl.DrawSphere(b, 0.06, rl.SkyBlue)
	tip := rl.Vector3Add(a, rl.Vector3Scale(c.Contact.Normal, 0.5+c.Contact.Penetration))
	rl.DrawLine3D(a, tip, rl.Magenta)
}
