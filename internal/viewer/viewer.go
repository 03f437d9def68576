// Package viewer is an interactive window over a collision world: fly the
// camera, click to pick bodies, and watch contacts update every frame.
package viewer

import (
	"fmt"
	"time"

	"collide3d/internal/camera"
	"collide3d/internal/physics"
	"collide3d/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Viewer struct {
	World  *world.World
	Camera *camera.Camera
	Scene  *world.SceneFile
	Path   string

	ShowBounds   bool
	ShowContacts bool
	Paused       bool

	selected *world.Body
	lastRay  physics.Ray
	hasRay   bool
	contacts []world.Contact
	status   string
	visible  int

	// Debug timing (ms)
	detectMs float64
	drawMs   float64
}

func New(w *world.World, sf *world.SceneFile, path string) *Viewer {
	return &Viewer{
		World:        w,
		Camera:       sf.Camera.Camera(),
		Scene:        sf,
		Path:         path,
		ShowContacts: true,
	}
}

func (v *Viewer) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable)
	rl.InitWindow(1280, 720, "collide3d viewer")
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)
	applyStyle()

	for !rl.WindowShouldClose() {
		v.Update()
		v.Draw()
	}
}

func applyStyle() {
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.LightGray))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(rl.White))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

func (v *Viewer) viewport() camera.Viewport {
	return camera.Viewport{Width: float32(rl.GetScreenWidth()), Height: float32(rl.GetScreenHeight())}
}

func (v *Viewer) Update() {
	deltaTime := rl.GetFrameTime()
	v.Camera.Update(deltaTime)

	if rl.IsKeyPressed(rl.KeyP) {
		v.Paused = !v.Paused
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		v.save()
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !overPanel(mouse) {
		v.pick(mouse)
	}

	if v.selected != nil {
		v.nudgeSelected(deltaTime)
	}

	if !v.Paused {
		start := time.Now()
		v.contacts = v.World.DetectCollisions()
		v.detectMs = float64(time.Since(start).Microseconds()) / 1000.0
	}
}

// pick selects the closest body under the cursor, or clears the selection.
func (v *Viewer) pick(mouse rl.Vector2) {
	v.lastRay = v.Camera.BuildRay(mouse, v.viewport())
	v.hasRay = true

	hit, ok := v.World.Raycast(v.lastRay, world.RaycastOptions{})
	if !ok {
		v.selected = nil
		v.status = "Nothing under cursor"
		return
	}
	v.selected = hit.Body
	v.status = fmt.Sprintf("Picked %s at %.2f", hit.Body.Name, hit.Distance)
}

// nudgeSelected moves the picked body with the arrow keys, Q and E.
func (v *Viewer) nudgeSelected(deltaTime float32) {
	speed := 3 * deltaTime
	var d rl.Vector3
	if rl.IsKeyDown(rl.KeyLeft) {
		d.X -= speed
	}
	if rl.IsKeyDown(rl.KeyRight) {
		d.X += speed
	}
	if rl.IsKeyDown(rl.KeyUp) {
		d.Z -= speed
	}
	if rl.IsKeyDown(rl.KeyDown) {
		d.Z += speed
	}
	if rl.IsKeyDown(rl.KeyQ) {
		d.Y -= speed
	}
	if rl.IsKeyDown(rl.KeyE) {
		d.Y += speed
	}
	t := &v.selected.Collider.Transform
	t.Position = rl.Vector3Add(t.Position, d)
}

func (v *Viewer) save() {
	if v.Path == "" {
		return
	}
	v.Scene.Camera = world.CameraDefFrom(v.Camera)
	if err := v.World.SaveScene(v.Path, *v.Scene); err != nil {
		v.status = fmt.Sprintf("Save failed: %v", err)
		return
	}
	v.status = "Saved " + v.Path
}

func (v *Viewer) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(v.Camera.Raylib())
	rl.DrawGrid(20, 1)

	colliding := collidingSet(v.contacts)
	frustum := v.Camera.Frustum(v.viewport().Aspect())
	v.visible = 0
	for _, b := range v.World.Bodies() {
		bounds := physics.WorldAABB(b.Collider)
		if !frustum.ContainsAABB(bounds) {
			continue
		}
		v.visible++
		drawBody(b, bodyColor(b, colliding[b], b == v.selected))
		if v.ShowBounds {
			drawAABB(bounds, rl.DarkGray)
		}
	}
	if v.ShowContacts {
		for _, c := range v.contacts {
			drawContact(c)
		}
	}
	if v.hasRay {
		rl.DrawRay(v.lastRay.Raylib(), rl.Yellow)
	}
	rl.EndMode3D()
	v.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	v.DrawUI()
	rl.EndDrawing()
}

var panelBounds = rl.Rectangle{X: 10, Y: 90, Width: 180, Height: 90}

func overPanel(p rl.Vector2) bool {
	return rl.CheckCollisionPointRec(p, panelBounds)
}

func (v *Viewer) DrawUI() {
	rl.DrawText("WASD + Space/Shift to fly, hold right mouse to look", 10, 10, 20, rl.LightGray)
	rl.DrawText("Click to pick, arrows/Q/E move picked, P pause, F5 save", 10, 35, 20, rl.LightGray)
	rl.DrawFPS(10, 60)

	rl.DrawRectangleRec(panelBounds, rl.NewColor(32, 32, 42, 220))
	v.ShowBounds = gui.CheckBox(rl.Rectangle{X: 20, Y: 100, Width: 16, Height: 16}, "Broad-phase bounds", v.ShowBounds)
	v.ShowContacts = gui.CheckBox(rl.Rectangle{X: 20, Y: 125, Width: 16, Height: 16}, "Contacts", v.ShowContacts)
	v.Paused = gui.CheckBox(rl.Rectangle{X: 20, Y: 150, Width: 16, Height: 16}, "Pause detection", v.Paused)

	y := int32(195)
	rl.DrawText(fmt.Sprintf("Bodies: %d (%d visible)  Contacts: %d", len(v.World.Bodies()), v.visible, len(v.contacts)), 10, y, 16, rl.Green)
	rl.DrawText(fmt.Sprintf("Detect: %.2f ms  Draw: %.2f ms", v.detectMs, v.drawMs), 10, y+20, 16, rl.Green)
	if v.selected != nil {
		p := v.selected.Collider.Position()
		rl.DrawText(fmt.Sprintf("%s (%s) at (%.2f, %.2f, %.2f)",
			v.selected.Name, v.selected.Collider.Shape.Kind, p.X, p.Y, p.Z), 10, y+40, 16, rl.Yellow)
	}
	if v.status != "" {
		rl.DrawText(v.status, 10, int32(rl.GetScreenHeight())-26, 16, rl.Yellow)
	}
}
