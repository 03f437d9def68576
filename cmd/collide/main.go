// Loads a scene, reports every colliding pair with its contact and
// optionally casts a ray or a screen pick into it
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"collide3d/internal/camera"
	"collide3d/internal/physics"
	"collide3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	scenePath := flag.String("scene", "", "YAML scene file (required)")
	rayFlag := flag.String("ray", "", "ray as ox,oy,oz:dx,dy,dz")
	pickFlag := flag.String("pick", "", "screen pixel x,y picked with the scene camera")
	workers := flag.Int("workers", 1, "narrow-phase workers")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: collide -scene <file.yaml> [-ray ox,oy,oz:dx,dy,dz] [-pick x,y]\n")
		os.Exit(2)
	}

	w := world.New()
	w.Workers = *workers
	sf, err := w.LoadScene(*scenePath)
	if err != nil {
		log.Fatalf("collide: %v", err)
	}

	contacts := w.DetectCollisions()
	fmt.Printf("%d bodies, %d colliding pairs\n", len(w.Bodies()), len(contacts))
	for _, c := range contacts {
		fmt.Printf("  %s (%s) <-> %s (%s): normal %s depth %.4f at %s / %s\n",
			c.A.Name, c.A.Collider.Shape.Kind, c.B.Name, c.B.Collider.Shape.Kind,
			formatVec(c.Contact.Normal), c.Contact.Penetration,
			formatVec(c.PointA()), formatVec(c.PointB()))
	}

	if *rayFlag != "" {
		ray, err := parseRay(*rayFlag)
		if err != nil {
			log.Fatalf("collide: -ray: %v", err)
		}
		printHit(w, ray)
	}

	if *pickFlag != "" {
		px, err := parseVec2(*pickFlag)
		if err != nil {
			log.Fatalf("collide: -pick: %v", err)
		}
		cam := sf.Camera.Camera()
		width, height := sf.Render.Width, sf.Render.Height
		if width <= 0 || height <= 0 {
			width, height = 320, 180
		}
		vp := camera.Viewport{Width: float32(width), Height: float32(height)}
		printHit(w, cam.BuildRay(px, vp))
	}
}

func printHit(w *world.World, ray physics.Ray) {
	fmt.Printf("ray %s -> %s: ", formatVec(ray.Origin), formatVec(ray.Direction))
	hit, ok := w.Raycast(ray, world.RaycastOptions{})
	if !ok {
		fmt.Println("no hit")
		return
	}
	fmt.Printf("hit %s at %s, distance %.4f, normal %s\n",
		hit.Body.Name, formatVec(hit.Point), hit.Distance, formatVec(hit.Normal))
}

func formatVec(v rl.Vector3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}

// parseRay reads "ox,oy,oz:dx,dy,dz"
func parseRay(s string) (physics.Ray, error) {
	origin, dir, ok := strings.Cut(s, ":")
	if !ok {
		return physics.Ray{}, fmt.Errorf("expected origin:direction, got %q", s)
	}
	o, err := parseVec3(origin)
	if err != nil {
		return physics.Ray{}, fmt.Errorf("origin: %w", err)
	}
	d, err := parseVec3(dir)
	if err != nil {
		return physics.Ray{}, fmt.Errorf("direction: %w", err)
	}
	if d == (rl.Vector3{}) {
		return physics.Ray{}, fmt.Errorf("direction must be non-zero")
	}
	return physics.NewRay(o, d), nil
}

func parseFloats(s string, n int) ([]float32, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma separated numbers, got %q", n, s)
	}
	out := make([]float32, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 32)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", p, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func parseVec3(s string) (rl.Vector3, error) {
	f, err := parseFloats(s, 3)
	if err != nil {
		return rl.Vector3{}, err
	}
	return rl.Vector3{X: f[0], Y: f[1], Z: f[2]}, nil
}

func parseVec2(s string) (rl.Vector2, error) {
	f, err := parseFloats(s, 2)
	if err != nil {
		return rl.Vector2{}, err
	}
	return rl.Vector2{X: f[0], Y: f[1]}, nil
}
