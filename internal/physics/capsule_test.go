package physics

import (
	"math"
	"math/rand"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// segmentBoxDistance samples the capsule centerline densely and returns the
// smallest distance to the box.
func segmentBoxDistance(box, capsule Collider, samples int) float32 {
	obb := NewOBB(box)
	start, end := CapsuleSegment(capsule)
	best := float32(math.MaxFloat32)
	for i := 0; i <= samples; i++ {
		p := obb.ToLocal(rl.Vector3Lerp(start, end, float32(i)/float32(samples)))
		d := rl.Vector3Length(rl.Vector3Subtract(p, clampVec(p, obb.HalfSize)))
		best = min(best, d)
	}
	return best
}

func TestBoxCapsuleCrossingDiagonally(t *testing.T) {
	box := aabbAt(unitHalf, 0, 0, 0)
	// Centerline along (1,1,1), running corner to corner through the box
	tr := rotated(rl.Vector3{X: 0.3, Y: 0.1}, rl.Vector3{X: 1, Z: -1}, float32(math.Acos(1/math.Sqrt(3))*180/math.Pi))
	capsule := NewCollider(CapsuleShape(0.25, 2), tr)

	cp := mustCollide(t, box, capsule)
	if cp.Penetration <= capsule.Shape.Radius {
		t.Errorf("Expected penetration beyond the radius, got %f", cp.Penetration)
	}
	if !vecApprox(cp.Normal, rl.Vector3{X: 1}) {
		t.Errorf("Expected push out through +X, got %v", cp.Normal)
	}
	// Clearing +X moves the lower endpoint (x = 0.3 - 2/sqrt(3)) past the face
	want := float32(1 + 0.25 - (0.3 - 2/math.Sqrt(3)))
	if !approx(cp.Penetration, want) {
		t.Errorf("Expected penetration %f, got %f", want, cp.Penetration)
	}
	if d := rl.Vector3DotProduct(cp.Normal, capsule.Position()); d < 0 {
		t.Errorf("Expected normal toward the capsule, dot %f", d)
	}
}

func TestBoxCapsuleCrossingShallowBox(t *testing.T) {
	box := aabbAt(rl.Vector3{X: 1.17, Y: 0.29, Z: 0.93}, 0.001, -0.384, -0.514)
	q := rl.QuaternionNormalize(rl.Quaternion{X: -0.676, Y: 0.223, Z: 0.696, W: 0.089})
	capsule := NewCollider(CapsuleShape(0.478, 1.054),
		Transform{Position: rl.Vector3{X: 1.242, Y: 0.231, Z: -0.726}, Orientation: q})

	if d := segmentBoxDistance(box, capsule, 2000); d != 0 {
		t.Fatalf("Expected the centerline to cross the box, distance %f", d)
	}

	for _, order := range []struct {
		name string
		a, b Collider
	}{
		{"box first", box, capsule},
		{"capsule first", capsule, box},
	} {
		var info CollisionInfo
		if out := ObjectIntersection(order.a, order.b, &info); out != Colliding {
			t.Fatalf("%s: expected colliding, got %s", order.name, out)
		}
		cp, _ := info.Oriented()
		if cp.Penetration <= 0.478 {
			t.Errorf("%s: expected penetration beyond the radius, got %f", order.name, cp.Penetration)
		}
		toB := rl.Vector3Subtract(order.b.Position(), order.a.Position())
		if d := rl.Vector3DotProduct(cp.Normal, toB); d < 0 {
			t.Errorf("%s: normal %v points away from B (dot %f)", order.name, cp.Normal, d)
		}
	}
}

func TestBoxCapsuleMatchesSampledDistance(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	between := func(lo, hi float32) float32 { return lo + rng.Float32()*(hi-lo) }
	angle := func() float32 { return between(-180, 180) }

	const tolerance = 1e-3
	for i := 0; i < 3000; i++ {
		half := rl.Vector3{X: between(0.2, 1.5), Y: between(0.2, 1.5), Z: between(0.2, 1.5)}
		var box Collider
		if i%2 == 0 {
			box = NewCollider(AABBShape(half), NewTransform(rl.Vector3{}))
		} else {
			box = NewCollider(OBBShape(half), NewTransformEuler(rl.Vector3{}, rl.Vector3{X: angle(), Y: angle(), Z: angle()}))
		}
		pos := rl.Vector3{X: between(-2.5, 2.5), Y: between(-2.5, 2.5), Z: between(-2.5, 2.5)}
		capsule := NewCollider(CapsuleShape(between(0.1, 0.6), between(0.2, 1.5)),
			NewTransformEuler(pos, rl.Vector3{X: angle(), Y: angle(), Z: angle()}))
		radius := capsule.Shape.Radius

		ref := segmentBoxDistance(box, capsule, 4000)
		var info CollisionInfo
		out := ObjectIntersection(box, capsule, &info)

		switch {
		case ref < radius-tolerance && out != Colliding:
			t.Fatalf("pair %d: missed overlap, sampled distance %f radius %f", i, ref, radius)
		case ref > radius+tolerance && out == Colliding:
			t.Fatalf("pair %d: false overlap, sampled distance %f radius %f", i, ref, radius)
		}
		if out != Colliding {
			continue
		}

		cp, _ := info.Best()
		if d := rl.Vector3DotProduct(cp.Normal, capsule.Position()); d < -tolerance {
			t.Fatalf("pair %d: normal %v points away from the capsule (dot %f)", i, cp.Normal, d)
		}
		if ref == 0 && cp.Penetration < radius-tolerance {
			t.Fatalf("pair %d: centerline crosses the box but penetration %f < radius %f", i, cp.Penetration, radius)
		}
	}
}

func TestClipSegmentToBox(t *testing.T) {
	t0, t1, ok := clipSegmentToBox(rl.Vector3{X: -3}, rl.Vector3{X: 3}, unitHalf)
	if !ok || !approx(t0, 1.0/3) || !approx(t1, 2.0/3) {
		t.Errorf("Expected [1/3, 2/3], got [%f, %f] ok=%v", t0, t1, ok)
	}
	if _, _, ok := clipSegmentToBox(rl.Vector3{X: -3, Y: 2}, rl.Vector3{X: 3, Y: 2}, unitHalf); ok {
		t.Error("Segment above the box should not clip")
	}
	if _, _, ok := clipSegmentToBox(rl.Vector3{X: 2}, rl.Vector3{X: 5}, unitHalf); ok {
		t.Error("Segment beside the box should not clip")
	}
}
