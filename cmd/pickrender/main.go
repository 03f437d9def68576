// Renders a scene to an image by picking every pixel with a ray
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"collide3d/internal/render"
	"collide3d/internal/world"
)

func main() {
	scenePath := flag.String("scene", "", "YAML scene file (required)")
	out := flag.String("out", "frame.webp", "output image, .webp or .tga")
	width := flag.Int("width", 0, "override render width")
	height := flag.Int("height", 0, "override render height")
	supersample := flag.Int("ss", 0, "override supersample factor")
	workers := flag.Int("workers", runtime.NumCPU(), "render workers")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintf(os.Stderr, "Usage: pickrender -scene <file.yaml> [-out frame.webp]\n")
		os.Exit(2)
	}

	w := world.New()
	sf, err := w.LoadScene(*scenePath)
	if err != nil {
		log.Fatalf("pickrender: %v", err)
	}

	opts, err := render.OptionsFrom(sf.Render)
	if err != nil {
		log.Fatalf("pickrender: %v", err)
	}
	applyOverrides(&opts, *width, *height, *supersample)
	opts.Workers = *workers

	start := time.Now()
	img := render.Render(w, sf.Camera.Camera(), opts)
	if err := render.Save(*out, img); err != nil {
		log.Fatalf("pickrender: %v", err)
	}
	fmt.Printf("Rendered %dx%d (ss %d) in %v -> %s\n",
		opts.Width, opts.Height, opts.Supersample, time.Since(start).Round(time.Millisecond), *out)
}

// applyOverrides replaces scene settings with positive flag values.
func applyOverrides(opts *render.Options, width, height, supersample int) {
	if width > 0 {
		opts.Width = width
	}
	if height > 0 {
		opts.Height = height
	}
	if supersample > 0 {
		opts.Supersample = supersample
	}
}
