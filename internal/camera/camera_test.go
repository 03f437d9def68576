package camera

import (
	"math"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

const eps = 1e-3

func near(a, b float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func vecNear(a, b rl.Vector3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

var vp = Viewport{Width: 320, Height: 180}

func TestDefaultForwardIsNegativeZ(t *testing.T) {
	c := New(rl.Vector3{})
	if !vecNear(c.Forward(), rl.Vector3{Z: -1}) {
		t.Errorf("Expected (0,0,-1), got %v", c.Forward())
	}
	if !vecNear(c.Right(), rl.Vector3{X: 1}) {
		t.Errorf("Expected right (1,0,0), got %v", c.Right())
	}
}

func TestInverseProjectionInvertsPerspective(t *testing.T) {
	aspect := vp.Aspect()
	proj := mgl32.Perspective(mgl32.DegToRad(60), aspect, 0.5, 250)
	inv := InverseProjection(aspect, 60, 0.5, 250)

	if !inv.Mul4(proj).ApproxEqualThreshold(mgl32.Ident4(), 1e-4) {
		t.Errorf("Expected identity, got %v", inv.Mul4(proj))
	}
	if !inv.ApproxEqualThreshold(proj.Inv(), 1e-3) {
		t.Errorf("Closed form %v differs from numeric inverse %v", inv, proj.Inv())
	}
}

func TestViewMatchesLookAt(t *testing.T) {
	c := New(rl.Vector3{X: 3, Y: 2, Z: 8})
	c.Yaw, c.Pitch = 30, -20

	f := c.Forward()
	eye := mgl32.Vec3{c.Position.X, c.Position.Y, c.Position.Z}
	want := mgl32.LookAtV(eye, eye.Add(mgl32.Vec3{f.X, f.Y, f.Z}), mgl32.Vec3{0, 1, 0})

	if !c.ViewMatrix().ApproxEqualThreshold(want, 1e-4) {
		t.Errorf("Expected %v, got %v", want, c.ViewMatrix())
	}
	if !c.ViewMatrix().Mul4(c.InverseView()).ApproxEqualThreshold(mgl32.Ident4(), 1e-4) {
		t.Error("View and inverse view do not cancel")
	}
}

func TestCenterRayIsForward(t *testing.T) {
	tests := []struct{ yaw, pitch float32 }{
		{0, 0}, {90, 0}, {-135, -30}, {45, 60},
	}
	for _, tt := range tests {
		c := New(rl.Vector3{X: 1, Y: 5, Z: -2})
		c.Yaw, c.Pitch = tt.yaw, tt.pitch

		ray := c.BuildRay(rl.Vector2{X: vp.Width / 2, Y: vp.Height / 2}, vp)
		if !vecNear(ray.Direction, c.Forward()) {
			t.Errorf("yaw %v pitch %v: expected %v, got %v", tt.yaw, tt.pitch, c.Forward(), ray.Direction)
		}
		if ray.Origin != c.Position {
			t.Errorf("Expected ray origin at camera, got %v", ray.Origin)
		}
	}
}

func TestTopLeftRayPointsUpAndLeft(t *testing.T) {
	c := New(rl.Vector3{})
	ray := c.BuildRay(rl.Vector2{}, vp)
	if ray.Direction.X >= 0 || ray.Direction.Y <= 0 || ray.Direction.Z >= 0 {
		t.Errorf("Expected up-left-forward direction, got %v", ray.Direction)
	}

	// Vertical half angle matches the field of view
	want := float32(math.Tan(float64(mgl32.DegToRad(c.FieldOfView / 2))))
	if got := -ray.Direction.Y / ray.Direction.Z; !near(got, want) {
		t.Errorf("Expected tan(fov/2) %f, got %f", want, got)
	}
}

func TestBuildRayRoundTrip(t *testing.T) {
	c := New(rl.Vector3{X: -4, Y: 3, Z: 6})
	c.Yaw, c.Pitch = 20, -10

	for _, px := range []rl.Vector2{{X: 30, Y: 40}, {X: 300, Y: 170}, {X: 160, Y: 10}} {
		ray := c.BuildRay(px, vp)
		world := ray.At(12)

		got, ok := c.WorldToScreen(world, vp)
		if !ok {
			t.Fatalf("Expected %v to be in front of the camera", world)
		}
		if !near(got.X/100, px.X/100) || !near(got.Y/100, px.Y/100) {
			t.Errorf("Expected pixel %v, got %v", px, got)
		}
	}
}

func TestUnprojectMatchesMathgl(t *testing.T) {
	c := New(rl.Vector3{X: 2, Y: 1, Z: 0})
	c.Yaw, c.Pitch = -50, 15

	screen := rl.Vector3{X: 200, Y: 60, Z: 0.5}
	got := c.Unproject(screen, vp)

	// mathgl maps window depth from [0, 1]
	want, err := mgl32.UnProject(
		mgl32.Vec3{screen.X, screen.Y, (screen.Z + 1) / 2},
		c.ViewMatrix(), c.ProjectionMatrix(vp.Aspect()),
		0, 0, int(vp.Width), int(vp.Height),
	)
	if err != nil {
		t.Fatalf("UnProject: %v", err)
	}
	if !vecNear(got, rl.Vector3{X: want[0], Y: want[1], Z: want[2]}) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestWorldToScreenBehindCamera(t *testing.T) {
	c := New(rl.Vector3{})
	if _, ok := c.WorldToScreen(rl.Vector3{Z: 5}, vp); ok {
		t.Error("Point behind the camera should not project")
	}
}

func TestMove(t *testing.T) {
	c := New(rl.Vector3{})
	c.Pitch = -60
	c.Move(Input{Forward: 1}, 0.5)
	if !vecNear(c.Position, rl.Vector3{Z: -4}) {
		t.Errorf("Expected level walk to (0,0,-4), got %v", c.Position)
	}

	c = New(rl.Vector3{})
	c.Move(Input{Forward: 1, Right: 1}, 1)
	if l := rl.Vector3Length(c.Position); !near(l, c.MoveSpeed) {
		t.Errorf("Expected diagonal speed %f, got %f", c.MoveSpeed, l)
	}
}

func TestLookClampsPitch(t *testing.T) {
	c := New(rl.Vector3{})
	c.Move(Input{LookDelta: rl.Vector2{X: 100, Y: -5000}}, 0.016)
	if c.Pitch != 89 {
		t.Errorf("Expected pitch clamped to 89, got %f", c.Pitch)
	}
	if !near(c.Yaw, -10) {
		t.Errorf("Expected yaw -10, got %f", c.Yaw)
	}
}

func TestRaylibCamera(t *testing.T) {
	c := New(rl.Vector3{Y: 2})
	rc := c.Raylib()
	if !vecNear(rc.Target, rl.Vector3{Y: 2, Z: -1}) {
		t.Errorf("Expected target one unit ahead, got %v", rc.Target)
	}
	if rc.Fovy != c.FieldOfView {
		t.Errorf("Expected fovy %f, got %f", c.FieldOfView, rc.Fovy)
	}
}
