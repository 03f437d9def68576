package viewer

import (
	"testing"

	"collide3d/internal/physics"
	"collide3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestBoxCornersAABB(t *testing.T) {
	c := physics.NewCollider(physics.AABBShape(rl.Vector3{X: 1, Y: 2, Z: 3}), physics.NewTransform(rl.Vector3{X: 10}))
	corners := boxCorners(c)

	if corners[0] != (rl.Vector3{X: 9, Y: -2, Z: -3}) {
		t.Errorf("Expected min corner (9,-2,-3), got %v", corners[0])
	}
	if corners[7] != (rl.Vector3{X: 11, Y: 2, Z: 3}) {
		t.Errorf("Expected max corner (11,2,3), got %v", corners[7])
	}
}

func TestBoxEdgesHaveUnitLength(t *testing.T) {
	c := physics.NewCollider(physics.OBBShape(rl.Vector3{X: 0.5, Y: 0.5, Z: 0.5}),
		physics.NewTransformEuler(rl.Vector3{}, rl.Vector3{X: 30, Y: 45}))
	corners := boxCorners(c)

	for _, e := range boxEdges {
		d := rl.Vector3Distance(corners[e[0]], corners[e[1]])
		if d < 0.999 || d > 1.001 {
			t.Errorf("Expected edge %v of length 1, got %f", e, d)
		}
	}
}

func TestBodyColor(t *testing.T) {
	b := &world.Body{Color: rl.Blue}
	if got := bodyColor(b, false, false); got != rl.Blue {
		t.Errorf("Expected body color, got %v", got)
	}
	if got := bodyColor(b, true, false); got != rl.Red {
		t.Errorf("Expected red while colliding, got %v", got)
	}
	if got := bodyColor(b, true, true); got != rl.Yellow {
		t.Errorf("Expected selection to win, got %v", got)
	}
	if got := bodyColor(&world.Body{}, false, false); got != rl.White {
		t.Errorf("Expected white for an unset color, got %v", got)
	}
}

func TestCollidingSet(t *testing.T) {
	a, b, c := &world.Body{}, &world.Body{}, &world.Body{}
	set := collidingSet([]world.Contact{{A: a, B: b}})
	if !set[a] || !set[b] || set[c] {
		t.Errorf("Expected only a and b in set, got %v", set)
	}
}
