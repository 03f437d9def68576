package camera

import (
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"
)

// Frustum holds the six inward-facing planes of a view volume: left,
// right, bottom, top, near, far.
type Frustum struct {
	Planes [6]physics.Plane
}

// Frustum extracts the camera's view volume from P*V (Gribb/Hartmann).
func (c *Camera) Frustum(aspect float32) Frustum {
	vp := c.ProjectionMatrix(aspect).Mul4(c.ViewMatrix())
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	for i, row := range [6]mgl32.Vec4{
		r3.Add(r0), r3.Sub(r0),
		r3.Add(r1), r3.Sub(r1),
		r3.Add(r2), r3.Sub(r2),
	} {
		f.Planes[i] = normalizePlane(row)
	}
	return f
}

func normalizePlane(v mgl32.Vec4) physics.Plane {
	n := v.Vec3()
	length := n.Len()
	if length == 0 {
		return physics.Plane{Normal: rl.Vector3{X: n[0], Y: n[1], Z: n[2]}, Distance: v[3]}
	}
	n = n.Mul(1 / length)
	return physics.Plane{Normal: rl.Vector3{X: n[0], Y: n[1], Z: n[2]}, Distance: v[3] / length}
}

// ContainsSphere reports whether the sphere is inside or crosses the frustum.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f.Planes {
		if rl.Vector3DotProduct(p.Normal, center)+p.Distance < -radius {
			return false
		}
	}
	return true
}

func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	return f.ContainsSphere(point, 0)
}

// ContainsAABB tests the box corner furthest along each plane normal.
func (f *Frustum) ContainsAABB(box physics.AABB) bool {
	for _, p := range f.Planes {
		v := box.Min
		if p.Normal.X >= 0 {
			v.X = box.Max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = box.Max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = box.Max.Z
		}
		if rl.Vector3DotProduct(p.Normal, v)+p.Distance < 0 {
			return false
		}
	}
	return true
}
