package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestRayAABBHit(t *testing.T) {
	ray := NewRay(rl.Vector3{X: 5}, rl.Vector3{X: -1})
	hit, ok := RayIntersection(ray, aabbAt(unitHalf, 0, 0, 0))
	if !ok {
		t.Fatal("Expected ray to hit the box")
	}
	if !vecApprox(hit.Point, rl.Vector3{X: 1}) {
		t.Errorf("Expected hit at (1,0,0), got %v", hit.Point)
	}
	if !approx(hit.Distance, 4) {
		t.Errorf("Expected distance 4, got %f", hit.Distance)
	}
	if hit.Normal != (rl.Vector3{X: 1}) {
		t.Errorf("Expected entry face normal (1,0,0), got %v", hit.Normal)
	}
}

func TestRayAABBMisses(t *testing.T) {
	box := aabbAt(unitHalf, 0, 0, 0)
	tests := []struct {
		name string
		ray  Ray
	}{
		{"passes above", NewRay(rl.Vector3{X: 5, Y: 3}, rl.Vector3{X: -1})},
		{"points away", NewRay(rl.Vector3{X: 5}, rl.Vector3{X: 1})},
		{"starts inside", NewRay(rl.Vector3{}, rl.Vector3{X: 1})},
		{"diagonal miss", NewRay(rl.Vector3{X: 5, Z: 5}, rl.Vector3{X: -1, Z: 0.1})},
	}
	for _, tt := range tests {
		if _, ok := RayIntersection(tt.ray, box); ok {
			t.Errorf("%s: expected a miss", tt.name)
		}
	}
}

func TestRayAABBMatchesUnrotatedOBB(t *testing.T) {
	half := rl.Vector3{X: 1, Y: 0.5, Z: 2}
	center := rl.Vector3{X: 1, Y: -1, Z: 3}
	box := NewCollider(AABBShape(half), NewTransform(center))
	obb := NewCollider(OBBShape(half), NewTransform(center))

	origins := []rl.Vector3{
		{X: 10, Y: 0, Z: 0},
		{X: -6, Y: 2, Z: 3},
		{X: 1, Y: 8, Z: 2},
		{X: 0, Y: -1, Z: -9},
	}
	for _, o := range origins {
		for _, target := range []rl.Vector3{center, {X: 1.5, Y: -0.8, Z: 4.5}, {X: 5, Y: 5, Z: 5}} {
			ray := NewRay(o, rl.Vector3Subtract(target, o))
			h1, ok1 := RayIntersection(ray, box)
			h2, ok2 := RayIntersection(ray, obb)
			if ok1 != ok2 {
				t.Errorf("Ray from %v to %v: aabb hit=%v obb hit=%v", o, target, ok1, ok2)
				continue
			}
			if ok1 && (!approx(h1.Distance, h2.Distance) || !vecApprox(h1.Point, h2.Point)) {
				t.Errorf("Ray from %v to %v: aabb %v obb %v", o, target, h1, h2)
			}
		}
	}
}

func TestRayOBBRotated(t *testing.T) {
	// Quarter turn about Y puts the thin local Z extent on world X
	box := obbWith(rl.Vector3{X: 2, Y: 1, Z: 0.5}, rotated(rl.Vector3{}, rl.Vector3{Y: 1}, 90))
	hit, ok := RayIntersection(NewRay(rl.Vector3{X: 5}, rl.Vector3{X: -1}), box)
	if !ok {
		t.Fatal("Expected ray to hit the rotated box")
	}
	if !approx(hit.Distance, 4.5) {
		t.Errorf("Expected distance 4.5, got %f", hit.Distance)
	}
	if !vecApprox(hit.Normal, rl.Vector3{X: 1}) {
		t.Errorf("Expected normal (1,0,0), got %v", hit.Normal)
	}
}

func TestRaySphere(t *testing.T) {
	sphere := sphereAt(1, 0, 0, 0)

	hit, ok := RayIntersection(NewRay(rl.Vector3{X: 5}, rl.Vector3{X: -1}), sphere)
	if !ok {
		t.Fatal("Expected ray to hit the sphere")
	}
	if !approx(hit.Distance, 4) || !vecApprox(hit.Point, rl.Vector3{X: 1}) {
		t.Errorf("Expected hit at (1,0,0) distance 4, got %v", hit)
	}
	if !vecApprox(hit.Normal, rl.Vector3{X: 1}) {
		t.Errorf("Expected normal (1,0,0), got %v", hit.Normal)
	}

	if _, ok := RayIntersection(NewRay(rl.Vector3{X: 5}, rl.Vector3{X: 1}), sphere); ok {
		t.Error("Sphere behind the ray should not be hit")
	}
	if _, ok := RayIntersection(NewRay(rl.Vector3{X: 5, Y: 2}, rl.Vector3{X: -1}), sphere); ok {
		t.Error("Ray passing above the sphere should miss")
	}
}

func TestRaySphereFromInside(t *testing.T) {
	hit, ok := RaySphereIntersection(NewRay(rl.Vector3{X: 0.5}, rl.Vector3{X: -1}), sphereAt(1, 0, 0, 0))
	if !ok {
		t.Fatal("Expected ray starting inside to hit")
	}
	if !approx(hit.Distance, 1.5) {
		t.Errorf("Expected exit distance 1.5, got %f", hit.Distance)
	}
	if !vecApprox(hit.Point, rl.Vector3{X: -1}) {
		t.Errorf("Expected exit point (-1,0,0), got %v", hit.Point)
	}
}

func TestRayCapsuleNeverHits(t *testing.T) {
	if _, ok := RayIntersection(NewRay(rl.Vector3{X: 5}, rl.Vector3{X: -1}), capsuleAt(0.5, 1, 0, 0, 0)); ok {
		t.Error("Capsules are not ray targets")
	}
}

func TestRayPlane(t *testing.T) {
	ground := NewPlaneFromPoint(rl.Vector3{Y: 1}, rl.Vector3{Y: -2})

	hit, ok := RayPlaneIntersection(NewRay(rl.Vector3{X: 1, Y: 3}, rl.Vector3{Y: -1}), ground)
	if !ok {
		t.Fatal("Expected ray to hit the plane")
	}
	if !approx(hit.Distance, 5) || !vecApprox(hit.Point, rl.Vector3{X: 1, Y: -2}) {
		t.Errorf("Expected hit at (1,-2,0) distance 5, got %v", hit)
	}

	// Behind the origin still counts, with a negative distance
	hit, ok = RayPlaneIntersection(NewRay(rl.Vector3{Y: 3}, rl.Vector3{Y: 1}), ground)
	if !ok || !approx(hit.Distance, -5) {
		t.Errorf("Expected signed distance -5, got %v (ok=%v)", hit.Distance, ok)
	}

	if _, ok := RayPlaneIntersection(NewRay(rl.Vector3{Y: 3}, rl.Vector3{X: 1}), ground); ok {
		t.Error("Parallel ray should not hit")
	}
}

func TestPlanePointOnPlane(t *testing.T) {
	p := NewPlaneFromPoint(rl.Vector3{X: 2}, rl.Vector3{X: 3, Y: 7})
	if !vecApprox(p.PointOnPlane(), rl.Vector3{X: 3}) {
		t.Errorf("Expected (3,0,0), got %v", p.PointOnPlane())
	}
}

func TestRayAt(t *testing.T) {
	r := NewRay(rl.Vector3{X: 1}, rl.Vector3{Z: 4})
	if !vecApprox(r.At(2), rl.Vector3{X: 1, Z: 2}) {
		t.Errorf("Expected normalized direction, got %v", r.At(2))
	}
}
