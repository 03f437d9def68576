package world

import (
	"fmt"
	"log"
	"os"

	"collide3d/internal/camera"
	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"
)

// --- YAML types ---

// Vec3 is an [x, y, z] triple written in flow style.
type Vec3 [3]float32

func (v Vec3) Vector() rl.Vector3 {
	return rl.Vector3{X: v[0], Y: v[1], Z: v[2]}
}

// IsZero lets omitempty drop unset vectors.
func (v Vec3) IsZero() bool {
	return v == Vec3{}
}

func vec3(v rl.Vector3) Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}

type SceneFile struct {
	Camera CameraDef `yaml:"camera"`
	Render RenderDef `yaml:"render"`
	Bodies []BodyDef `yaml:"bodies"`
}

type CameraDef struct {
	Position Vec3    `yaml:"position,flow"`
	Yaw      float32 `yaml:"yaw"`
	Pitch    float32 `yaml:"pitch"`
	FOV      float32 `yaml:"fov,omitempty"`
	Near     float32 `yaml:"near,omitempty"`
	Far      float32 `yaml:"far,omitempty"`
}

// RenderDef configures the pick renderer.
type RenderDef struct {
	Width       int     `yaml:"width,omitempty"`
	Height      int     `yaml:"height,omitempty"`
	Supersample int     `yaml:"supersample,omitempty"`
	MaxDistance float32 `yaml:"maxDistance,omitempty"`
	Light       Vec3    `yaml:"light,flow,omitempty"`
	Background  string  `yaml:"background,omitempty"`
}

type BodyDef struct {
	Name         string   `yaml:"name"`
	Shape        string   `yaml:"shape"`
	HalfExtents  Vec3     `yaml:"halfExtents,flow,omitempty"`
	Radius       float32  `yaml:"radius,omitempty"`
	HalfHeight   float32  `yaml:"halfHeight,omitempty"`
	Position     Vec3     `yaml:"position,flow"`
	Rotation     Vec3     `yaml:"rotation,flow,omitempty"`
	Layer        string   `yaml:"layer,omitempty"`
	IgnoreLayers []string `yaml:"ignoreLayers,flow,omitempty"`
	Tags         []string `yaml:"tags,flow,omitempty"`
	Color        string   `yaml:"color,omitempty"`
}

// --- Color mapping ---

var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Pink":      rl.Pink,
	"SkyBlue":   rl.SkyBlue,
	"Lime":      rl.Lime,
	"Magenta":   rl.Magenta,
	"White":     rl.White,
	"LightGray": rl.LightGray,
	"Gray":      rl.Gray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"Maroon":    rl.Maroon,
	"Gold":      rl.Gold,
}

// palette colors bodies that name no color, by position in the file
var palette = []rl.Color{
	rl.Red, rl.Blue, rl.Green, rl.Purple, rl.Orange,
	rl.Yellow, rl.Pink, rl.SkyBlue, rl.Lime, rl.Magenta,
}

var nameByColor map[rl.Color]string

func init() {
	nameByColor = make(map[rl.Color]string, len(colorByName))
	for name, c := range colorByName {
		nameByColor[c] = name
	}
}

// LookupColor resolves a color name, or "#rrggbbaa" hex.
func LookupColor(name string) (rl.Color, error) {
	if c, ok := colorByName[name]; ok {
		return c, nil
	}
	var c rl.Color
	if _, err := fmt.Sscanf(name, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A); err == nil {
		return c, nil
	}
	return rl.White, fmt.Errorf("unknown color %q", name)
}

func lookupColorName(c rl.Color) string {
	if name, ok := nameByColor[c]; ok {
		return name
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// --- Loading ---

// ReadSceneFile reads and parses a YAML scene without building it.
func ReadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene %s: %w", path, err)
	}
	sf, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return sf, nil
}

func ParseScene(data []byte) (*SceneFile, error) {
	var sf SceneFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	return &sf, nil
}

// LoadScene reads a scene file and adds its bodies to the world.
func (w *World) LoadScene(path string) (*SceneFile, error) {
	sf, err := ReadSceneFile(path)
	if err != nil {
		return nil, err
	}
	if err := w.AddBodies(sf.Bodies); err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	log.Printf("World: loaded %d bodies from %s", len(sf.Bodies), path)
	return sf, nil
}

// AddBodies validates every definition before adding any of them.
func (w *World) AddBodies(defs []BodyDef) error {
	bodies := make([]*Body, 0, len(defs))
	for i, def := range defs {
		b, err := def.Body(i)
		if err != nil {
			return fmt.Errorf("body %d (%s): %w", i, def.Name, err)
		}
		bodies = append(bodies, b)
	}
	for _, b := range bodies {
		w.Add(b)
	}
	return nil
}

// Build creates a world holding the scene's bodies.
func (sf *SceneFile) Build() (*World, error) {
	w := New()
	if err := w.AddBodies(sf.Bodies); err != nil {
		return nil, err
	}
	return w, nil
}

// Body converts the definition. index picks the palette color when none is set.
func (def BodyDef) Body(index int) (*Body, error) {
	shape, err := def.shape()
	if err != nil {
		return nil, err
	}

	b := &Body{
		Name:     def.Name,
		Tags:     def.Tags,
		Collider: physics.NewCollider(shape, physics.NewTransformEuler(def.Position.Vector(), def.Rotation.Vector())),
		Color:    palette[index%len(palette)],
	}

	if def.Layer != "" {
		l, ok := physics.ParseLayer(def.Layer)
		if !ok {
			return nil, fmt.Errorf("unknown layer %q", def.Layer)
		}
		b.Layer = l
	}
	for _, name := range def.IgnoreLayers {
		l, ok := physics.ParseLayer(name)
		if !ok {
			return nil, fmt.Errorf("unknown ignore layer %q", name)
		}
		b.IgnoreLayers |= physics.MaskOf(l)
	}
	if def.Color != "" {
		if b.Color, err = LookupColor(def.Color); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (def BodyDef) shape() (physics.Shape, error) {
	kind, err := physics.ParseShapeKind(def.Shape)
	if err != nil {
		return physics.Shape{}, err
	}

	switch kind {
	case physics.KindAABB, physics.KindOBB:
		h := def.HalfExtents
		if h[0] <= 0 || h[1] <= 0 || h[2] <= 0 {
			return physics.Shape{}, fmt.Errorf("%s needs positive halfExtents, got %v", kind, h)
		}
		if kind == physics.KindAABB && def.Rotation != (Vec3{}) {
			return physics.Shape{}, fmt.Errorf("aabb cannot be rotated, use obb")
		}
		if kind == physics.KindAABB {
			return physics.AABBShape(h.Vector()), nil
		}
		return physics.OBBShape(h.Vector()), nil
	case physics.KindSphere:
		if def.Radius <= 0 {
			return physics.Shape{}, fmt.Errorf("sphere needs a positive radius, got %v", def.Radius)
		}
		return physics.SphereShape(def.Radius), nil
	default:
		if def.Radius <= 0 || def.HalfHeight <= 0 {
			return physics.Shape{}, fmt.Errorf("capsule needs positive radius and halfHeight, got %v and %v", def.Radius, def.HalfHeight)
		}
		return physics.CapsuleShape(def.Radius, def.HalfHeight), nil
	}
}

// Camera builds the scene camera, defaulting unset projection values.
func (def CameraDef) Camera() *camera.Camera {
	c := camera.New(def.Position.Vector())
	c.Yaw = def.Yaw
	c.Pitch = def.Pitch
	if def.FOV > 0 {
		c.FieldOfView = def.FOV
	}
	if def.Near > 0 {
		c.NearPlane = def.Near
	}
	if def.Far > 0 {
		c.FarPlane = def.Far
	}
	return c
}

// CameraDefFrom records c for saving.
func CameraDefFrom(c *camera.Camera) CameraDef {
	return CameraDef{
		Position: vec3(c.Position),
		Yaw:      c.Yaw,
		Pitch:    c.Pitch,
		FOV:      c.FieldOfView,
		Near:     c.NearPlane,
		Far:      c.FarPlane,
	}
}

// --- Saving ---

// BodyDefs converts the world's bodies back to definitions.
func (w *World) BodyDefs() []BodyDef {
	defs := make([]BodyDef, 0, len(w.bodies))
	for _, b := range w.bodies {
		s := b.Collider.Shape
		def := BodyDef{
			Name:     b.Name,
			Shape:    s.Kind.String(),
			Position: vec3(b.Collider.Position()),
			Tags:     b.Tags,
			Color:    lookupColorName(b.Color),
		}

		switch s.Kind {
		case physics.KindAABB:
			def.HalfExtents = vec3(s.HalfExtents)
		case physics.KindOBB:
			def.HalfExtents = vec3(s.HalfExtents)
			def.Rotation = eulerDegrees(b.Collider.Transform.Orientation)
		case physics.KindSphere:
			def.Radius = s.Radius
		case physics.KindCapsule:
			def.Radius = s.Radius
			def.HalfHeight = s.HalfHeight
			def.Rotation = eulerDegrees(b.Collider.Transform.Orientation)
		}

		if b.Layer != physics.LayerDefault {
			def.Layer = b.Layer.String()
		}
		for l := physics.LayerDefault; l <= physics.LayerIgnoreCollisions; l++ {
			if b.IgnoreLayers.Has(l) {
				def.IgnoreLayers = append(def.IgnoreLayers, l.String())
			}
		}
		defs = append(defs, def)
	}
	return defs
}

func eulerDegrees(q rl.Quaternion) Vec3 {
	if q == (rl.Quaternion{}) {
		return Vec3{}
	}
	e := rl.Vector3Scale(rl.QuaternionToEuler(q), rl.Rad2deg)
	return vec3(e)
}

// SaveScene writes sf with the world's current bodies.
func (w *World) SaveScene(path string, sf SceneFile) error {
	sf.Bodies = w.BodyDefs()
	return WriteSceneFile(path, &sf)
}

func WriteSceneFile(path string, sf *SceneFile) error {
	data, err := yaml.Marshal(sf)
	if err != nil {
		return fmt.Errorf("marshal scene: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}

	return nil
}
