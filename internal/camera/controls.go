package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Input is one frame of movement intent. Axes are in [-1, 1].
type Input struct {
	Forward   float32
	Right     float32
	Up        float32
	LookDelta rl.Vector2 // mouse movement in pixels
}

// Move applies mouse look and fly movement. Horizontal movement follows yaw
// only, so looking down does not slow walking.
func (c *Camera) Move(in Input, deltaTime float32) {
	c.Yaw -= in.LookDelta.X * c.LookSpeed
	c.Pitch -= in.LookDelta.Y * c.LookSpeed

	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}

	forward := c.Forward()
	forward.Y = 0
	if l := rl.Vector3Length(forward); l > 0 {
		forward = rl.Vector3Scale(forward, 1/l)
	}
	right := c.Right()

	moveDir := rl.Vector3Add(rl.Vector3Scale(forward, in.Forward), rl.Vector3Scale(right, in.Right))
	moveDir.Y += in.Up

	// Normalize diagonal movement so you don't go faster diagonally
	moveLen := float32(math.Sqrt(float64(rl.Vector3DotProduct(moveDir, moveDir))))
	if moveLen > 1 {
		moveDir = rl.Vector3Scale(moveDir, 1/moveLen)
	}

	c.Position = rl.Vector3Add(c.Position, rl.Vector3Scale(moveDir, c.MoveSpeed*deltaTime))
}

// Update reads WASD, Space/LeftShift and the right mouse button from raylib.
// Looking only happens while the right button is held so the left button
// stays free for picking.
func (c *Camera) Update(deltaTime float32) {
	var in Input
	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Right++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Right--
	}
	if rl.IsKeyDown(rl.KeySpace) {
		in.Up++
	}
	if rl.IsKeyDown(rl.KeyLeftShift) {
		in.Up--
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		in.LookDelta = rl.GetMouseDelta()
	}
	c.Move(in, deltaTime)
}
