package physics

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ShapeKind tags which bounding volume a Shape describes.
type ShapeKind uint8

const (
	KindAABB ShapeKind = iota
	KindOBB
	KindSphere
	KindCapsule

	numKinds
)

var kindNames = [numKinds]string{"aabb", "obb", "sphere", "capsule"}

func (k ShapeKind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return fmt.Sprintf("ShapeKind(%d)", uint8(k))
}

// ParseShapeKind maps a name such as "obb" back to its kind.
func ParseShapeKind(name string) (ShapeKind, error) {
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return ShapeKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", name)
}

// Shape is a bounding volume with no position of its own. Only the fields
// relevant to Kind are read: HalfExtents for boxes, Radius for spheres and
// Radius plus HalfHeight for capsules.
type Shape struct {
	Kind        ShapeKind
	HalfExtents rl.Vector3
	Radius      float32
	HalfHeight  float32 // capsule centerline runs along local Y from -HalfHeight to +HalfHeight
}

func AABBShape(halfExtents rl.Vector3) Shape {
	return Shape{Kind: KindAABB, HalfExtents: halfExtents}
}

func OBBShape(halfExtents rl.Vector3) Shape {
	return Shape{Kind: KindOBB, HalfExtents: halfExtents}
}

func SphereShape(radius float32) Shape {
	return Shape{Kind: KindSphere, Radius: radius}
}

func CapsuleShape(radius, halfHeight float32) Shape {
	return Shape{Kind: KindCapsule, Radius: radius, HalfHeight: halfHeight}
}

// Collider is one shape evaluated in one frame. Queries take it by value and
// never keep it past the call.
type Collider struct {
	Shape     Shape
	Transform Transform
}

func NewCollider(shape Shape, transform Transform) Collider {
	return Collider{Shape: shape, Transform: transform}
}

// Position is shorthand for the collider's frame origin.
func (c Collider) Position() rl.Vector3 {
	return c.Transform.Position
}
