package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"collide3d/internal/viewer"
	"collide3d/internal/world"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: viewer <scene.yaml>\n")
		os.Exit(1)
	}
	scenePath, err := filepath.Abs(os.Args[1])
	if err != nil {
		log.Fatalf("viewer: %v", err)
	}

	// Change working directory to executable location for deployed builds.
	// Skip this for "go run" which puts the binary in a temp directory.
	if execPath, err := os.Executable(); err == nil {
		execDir := filepath.Dir(execPath)
		if !strings.Contains(execDir, "go-build") {
			os.Chdir(execDir)
		}
	}

	w := world.New()
	sf, err := w.LoadScene(scenePath)
	if err != nil {
		log.Fatalf("viewer: %v", err)
	}
	w.OnCollisionEnter = func(a, b *world.Body) {
		log.Printf("Viewer: %s entered %s", a.Name, b.Name)
	}
	w.OnCollisionExit = func(a, b *world.Body) {
		log.Printf("Viewer: %s left %s", a.Name, b.Name)
	}

	viewer.New(w, sf, scenePath).Run()
}
