// Stress test comparing grid vs brute-force broad phase, plus narrow-phase
// timing with and without workers
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"collide3d/internal/physics"
	"collide3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	workers := flag.Int("workers", runtime.NumCPU(), "narrow-phase workers for the parallel run")
	seed := flag.Int64("seed", 42, "random seed")
	flag.Parse()

	// Test various object counts
	testCounts := []int{100, 500, 1000, 2000, 5000, 10000}

	for _, count := range testCounts {
		testBroadPhase(count, *seed, *workers)
	}
}

func spawnWorld(count int, seed int64) *world.World {
	rng := rand.New(rand.NewSource(seed)) // Consistent results

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0
	coord := func() float32 { return rng.Float32()*spawnSize - spawnSize/2 }

	w := world.New()
	for i := 0; i < count; i++ {
		pos := rl.Vector3{X: coord(), Y: coord(), Z: coord()}
		var shape physics.Shape
		tr := physics.NewTransform(pos)

		switch i % 4 {
		case 0:
			shape = physics.SphereShape(0.5 + rng.Float32()*0.5) // 0.5 to 1.0 radius
		case 1:
			shape = physics.AABBShape(rl.Vector3{X: 0.5, Y: 0.5 + rng.Float32(), Z: 0.5})
		case 2:
			shape = physics.OBBShape(rl.Vector3{X: 0.5, Y: 1, Z: 0.25})
			tr = physics.NewTransformEuler(pos, rl.Vector3{X: rng.Float32() * 180, Y: rng.Float32() * 180})
		default:
			shape = physics.CapsuleShape(0.4, 0.5+rng.Float32()*0.5)
		}
		w.Add(&world.Body{Collider: physics.NewCollider(shape, tr)})
	}
	return w
}

func testBroadPhase(count int, seed int64, workers int) {
	w := spawnWorld(count, seed)
	const iterations = 10

	// Time grid
	gridStart := time.Now()
	var gridPairs [][2]*world.Body
	for i := 0; i < iterations; i++ {
		gridPairs = w.CandidatePairs()
	}
	gridTime := time.Since(gridStart) / iterations

	// Time brute force (naive O(n²))
	bruteStart := time.Now()
	var brutePairs [][2]*world.Body
	for i := 0; i < iterations; i++ {
		brutePairs = w.BruteForcePairs()
	}
	bruteTime := time.Since(bruteStart) / iterations

	// Full detection, serial then parallel
	w.Workers = 1
	serialStart := time.Now()
	contacts := w.DetectCollisions()
	serialTime := time.Since(serialStart)

	w.Workers = workers
	parallelStart := time.Now()
	w.DetectCollisions()
	parallelTime := time.Since(parallelStart)

	status := "ok"
	if len(gridPairs) != len(brutePairs) {
		status = "MISMATCH"
	}

	speedup := float64(bruteTime) / float64(gridTime)
	fmt.Printf("%5d objects: grid %9v | brute %10v (%5d pairs, %s) | %.1fx | narrow %v serial, %v x%d (%d contacts)\n",
		count, gridTime.Round(time.Microsecond), bruteTime.Round(time.Microsecond),
		len(gridPairs), status, speedup,
		serialTime.Round(time.Microsecond), parallelTime.Round(time.Microsecond), workers, len(contacts))
}
