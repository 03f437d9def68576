package camera

import (
	"math"

	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Depths at which BuildRay samples the view frustum. They stay just inside
// the clip range so the far sample never lands on the far plane itself.
const (
	nearSampleDepth = -0.99999
	farSampleDepth  = 0.99999
)

// Camera is a free-look perspective camera. Angles are in degrees; with
// zero yaw and pitch it looks down -Z.
type Camera struct {
	Position    rl.Vector3
	Yaw         float32
	Pitch       float32
	FieldOfView float32 // vertical
	NearPlane   float32
	FarPlane    float32
	MoveSpeed   float32 // Units per second
	LookSpeed   float32 // Degrees per pixel of mouse movement
}

func New(pos rl.Vector3) *Camera {
	return &Camera{
		Position:    pos,
		FieldOfView: 45,
		NearPlane:   0.1,
		FarPlane:    1000,
		MoveSpeed:   8.0,
		LookSpeed:   0.1,
	}
}

// Viewport is the size of the screen area rays are built for, in pixels.
type Viewport struct {
	Width  float32
	Height float32
}

func (v Viewport) Aspect() float32 {
	return v.Width / v.Height
}

// Forward is the unit view direction.
func (c *Camera) Forward() rl.Vector3 {
	yaw := float64(c.Yaw) * math.Pi / 180
	pitch := float64(c.Pitch) * math.Pi / 180
	return rl.Vector3{
		X: float32(-math.Sin(yaw) * math.Cos(pitch)),
		Y: float32(math.Sin(pitch)),
		Z: float32(-math.Cos(yaw) * math.Cos(pitch)),
	}
}

// Right is the horizontal unit vector to the right of the view direction.
func (c *Camera) Right() rl.Vector3 {
	yaw := float64(c.Yaw) * math.Pi / 180
	return rl.Vector3{X: float32(math.Cos(yaw)), Z: float32(-math.Sin(yaw))}
}

// InverseView maps camera space to world space: T(pos) * Ry(yaw) * Rx(pitch).
func (c *Camera) InverseView() mgl32.Mat4 {
	return mgl32.Translate3D(c.Position.X, c.Position.Y, c.Position.Z).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.Yaw))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch)))
}

// ViewMatrix maps world space to camera space.
func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(-c.Pitch)).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-c.Yaw))).
		Mul4(mgl32.Translate3D(-c.Position.X, -c.Position.Y, -c.Position.Z))
}

func (c *Camera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FieldOfView), aspect, c.NearPlane, c.FarPlane)
}

// InverseProjection is the closed-form inverse of a symmetric perspective
// projection with vertical field of view fov (degrees).
func InverseProjection(aspect, fov, near, far float32) mgl32.Mat4 {
	t := float32(math.Tan(float64(mgl32.DegToRad(fov)) / 2))
	c := (far + near) / (near - far)
	d := 2 * far * near / (near - far)

	// Column major
	return mgl32.Mat4{
		aspect * t, 0, 0, 0,
		0, t, 0, 0,
		0, 0, 0, 1 / d,
		0, 0, -1, c / d,
	}
}

// Unproject maps a screen point with normalized depth z in [-1, 1] to world
// space. Screen y grows upward here; BuildRay flips it.
func (c *Camera) Unproject(screen rl.Vector3, vp Viewport) rl.Vector3 {
	clip := mgl32.Vec4{
		screen.X/vp.Width*2 - 1,
		screen.Y/vp.Height*2 - 1,
		screen.Z,
		1,
	}
	invProj := InverseProjection(vp.Aspect(), c.FieldOfView, c.NearPlane, c.FarPlane)
	world := c.InverseView().Mul4(invProj).Mul4x1(clip)
	return rl.Vector3{X: world[0] / world[3], Y: world[1] / world[3], Z: world[2] / world[3]}
}

// BuildRay returns the world ray through a screen pixel. Screen coordinates
// start at the top-left corner.
func (c *Camera) BuildRay(screen rl.Vector2, vp Viewport) physics.Ray {
	y := vp.Height - screen.Y
	near := c.Unproject(rl.Vector3{X: screen.X, Y: y, Z: nearSampleDepth}, vp)
	far := c.Unproject(rl.Vector3{X: screen.X, Y: y, Z: farSampleDepth}, vp)

	return physics.Ray{
		Origin:    c.Position,
		Direction: rl.Vector3Normalize(rl.Vector3Subtract(far, near)),
	}
}

// WorldToScreen projects p to top-left based pixel coordinates. It fails for
// points behind the camera.
func (c *Camera) WorldToScreen(p rl.Vector3, vp Viewport) (rl.Vector2, bool) {
	clip := c.ProjectionMatrix(vp.Aspect()).Mul4(c.ViewMatrix()).Mul4x1(mgl32.Vec4{p.X, p.Y, p.Z, 1})
	if clip[3] <= 0 {
		return rl.Vector2{}, false
	}
	ndcX, ndcY := clip[0]/clip[3], clip[1]/clip[3]
	return rl.Vector2{
		X: (ndcX + 1) / 2 * vp.Width,
		Y: vp.Height - (ndcY+1)/2*vp.Height,
	}, true
}

// Raylib converts to raylib's camera for drawing.
func (c *Camera) Raylib() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position,
		Target:     rl.Vector3Add(c.Position, c.Forward()),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FieldOfView,
		Projection: rl.CameraPerspective,
	}
}
