package physics

import rl "github.com/gen2brain/raylib-go/raylib"

// Layer groups colliders for filtering collisions and ray queries.
type Layer uint8

const (
	LayerDefault Layer = iota
	LayerIgnoreRaycast
	LayerUI
	LayerPlayer
	LayerEnemy
	LayerIgnoreCollisions
)

var layerNames = []string{"default", "ignoreRaycast", "ui", "player", "enemy", "ignoreCollisions"}

func (l Layer) String() string {
	if int(l) < len(layerNames) {
		return layerNames[l]
	}
	return "unknown"
}

// ParseLayer maps a layer name back to its value.
func ParseLayer(name string) (Layer, bool) {
	for i, n := range layerNames {
		if n == name {
			return Layer(i), true
		}
	}
	return LayerDefault, false
}

// LayerMask is a set of layers.
type LayerMask uint32

func MaskOf(layers ...Layer) LayerMask {
	var m LayerMask
	for _, l := range layers {
		m |= 1 << l
	}
	return m
}

func (m LayerMask) Has(l Layer) bool {
	return m&(1<<l) != 0
}

// BroadphaseHalfSize returns the half size of the world-aligned box that
// encloses the collider in its current frame.
func BroadphaseHalfSize(c Collider) rl.Vector3 {
	s := c.Shape
	switch s.Kind {
	case KindAABB:
		return s.HalfExtents
	case KindSphere:
		return rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	case KindOBB:
		return absRotate(c.Transform.Axes(), s.HalfExtents)
	case KindCapsule:
		half := absRotate(c.Transform.Axes(), rl.Vector3{Y: s.HalfHeight})
		return rl.Vector3Add(half, rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius})
	}
	return rl.Vector3{}
}

// WorldAABB returns the broad-phase bounds of the collider.
func WorldAABB(c Collider) AABB {
	return NewAABBFromHalfExtents(c.Position(), BroadphaseHalfSize(c))
}

// absRotate applies |R| to half extents, R having the given axes as columns.
func absRotate(axes [3]rl.Vector3, half rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: absf(axes[0].X)*half.X + absf(axes[1].X)*half.Y + absf(axes[2].X)*half.Z,
		Y: absf(axes[0].Y)*half.X + absf(axes[1].Y)*half.Y + absf(axes[2].Y)*half.Z,
		Z: absf(axes[0].Z)*half.X + absf(axes[1].Z)*half.Y + absf(axes[2].Z)*half.Z,
	}
}
