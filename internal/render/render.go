// Package render draws a world by casting one pick ray per pixel.
package render

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"collide3d/internal/camera"
	"collide3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Options holds all settings for one render.
type Options struct {
	Width       int
	Height      int
	Supersample int
	MaxDistance float32    // 0 means unlimited
	Light       rl.Vector3 // direction the light travels
	Ambient     float32
	Background  color.NRGBA
	Workers     int
}

func DefaultOptions() Options {
	return Options{
		Width:       320,
		Height:      180,
		Supersample: 1,
		Light:       rl.Vector3Normalize(rl.Vector3{X: 0.35, Y: -1.0, Z: -0.35}),
		Ambient:     0.3,
		Background:  color.NRGBA{R: 24, G: 24, B: 32, A: 255},
		Workers:     1,
	}
}

// OptionsFrom applies a scene's render block over the defaults.
func OptionsFrom(def world.RenderDef) (Options, error) {
	opts := DefaultOptions()
	if def.Width > 0 {
		opts.Width = def.Width
	}
	if def.Height > 0 {
		opts.Height = def.Height
	}
	if def.Supersample > 0 {
		opts.Supersample = def.Supersample
	}
	opts.MaxDistance = def.MaxDistance
	if !def.Light.IsZero() {
		opts.Light = rl.Vector3Normalize(def.Light.Vector())
	}
	if def.Background != "" {
		c, err := world.LookupColor(def.Background)
		if err != nil {
			return opts, fmt.Errorf("render background: %w", err)
		}
		opts.Background = color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
	}
	return opts, nil
}

// Render casts a ray through every pixel and shades the closest hit. With
// supersampling the image is drawn larger and scaled down.
func Render(w *world.World, cam *camera.Camera, opts Options) *image.NRGBA {
	ss := max(opts.Supersample, 1)
	width, height := opts.Width*ss, opts.Height*ss
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	vp := camera.Viewport{Width: float32(width), Height: float32(height)}
	rayOpts := world.RaycastOptions{MaxDistance: opts.MaxDistance}

	renderRow := func(y int) {
		for x := 0; x < width; x++ {
			// Sample the pixel center
			ray := cam.BuildRay(rl.Vector2{X: float32(x) + 0.5, Y: float32(y) + 0.5}, vp)
			c := opts.Background
			if hit, ok := w.Raycast(ray, rayOpts); ok {
				c = shade(hit.Body.Color, hit.Normal, opts)
			}
			img.SetNRGBA(x, y, c)
		}
	}

	workers := max(opts.Workers, 1)
	rows := make(chan int, workers*2)
	var wg sync.WaitGroup
	for n := 0; n < workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				renderRow(y)
			}
		}()
	}
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	if ss > 1 {
		return Downsample(img, opts.Width, opts.Height)
	}
	return img
}

// shade is Lambert lighting over an ambient floor.
func shade(base rl.Color, normal rl.Vector3, opts Options) color.NRGBA {
	toLight := rl.Vector3Negate(opts.Light)
	diffuse := max(rl.Vector3DotProduct(normal, toLight), 0)
	k := opts.Ambient + (1-opts.Ambient)*diffuse

	return color.NRGBA{
		R: scale8(base.R, k),
		G: scale8(base.G, k),
		B: scale8(base.B, k),
		A: base.A,
	}
}

func scale8(v uint8, k float32) uint8 {
	return clamp8(float64(v) * float64(k))
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
