package world

import (
	"log"
	"slices"
	"sync"

	"collide3d/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Body is a named collider placed in the world, with the layer metadata
// the narrow phase itself never sees.
type Body struct {
	Name         string
	Tags         []string
	Collider     physics.Collider
	Layer        physics.Layer
	IgnoreLayers physics.LayerMask
	Color        rl.Color

	id int
}

// ID is assigned when the body is added and never reused.
func (b *Body) ID() int {
	return b.id
}

func (b *Body) HasTag(tag string) bool {
	return slices.Contains(b.Tags, tag)
}

// Contact is a colliding pair with its deepest contact, expressed from A to B.
type Contact struct {
	A, B    *Body
	Contact physics.ContactPoint
}

// PointA returns the contact point on A in world space.
func (c Contact) PointA() rl.Vector3 {
	return c.Contact.WorldPointA(c.A.Collider)
}

// PointB returns the contact point on B in world space.
func (c Contact) PointB() rl.Vector3 {
	return c.Contact.WorldPointB(c.B.Collider)
}

// pairKey orders a pair by body id (smaller first)
type pairKey struct {
	A, B int
}

func makePair(a, b *Body) pairKey {
	if a.id > b.id {
		return pairKey{A: b.id, B: a.id}
	}
	return pairKey{A: a.id, B: b.id}
}

type kindPair [2]physics.ShapeKind

// World holds bodies and runs broad and narrow phase over them. It is not
// safe for concurrent mutation; DetectCollisions parallelizes internally.
type World struct {
	// Workers is the narrow-phase goroutine count. Values below 2 run serially.
	Workers int

	// OnCollisionEnter and OnCollisionExit fire once per pair when it starts
	// and stops colliding across DetectCollisions calls.
	OnCollisionEnter func(a, b *Body)
	OnCollisionExit  func(a, b *Body)

	bodies []*Body
	nextID int
	grid   *grid

	// Collision tracking for callbacks
	activeCollisions map[pairKey][2]*Body
	unsupported      map[kindPair]bool
}

func New() *World {
	return &World{
		grid:             newGrid(),
		activeCollisions: make(map[pairKey][2]*Body),
		unsupported:      make(map[kindPair]bool),
	}
}

// Add inserts a body and returns it.
func (w *World) Add(b *Body) *Body {
	w.nextID++
	b.id = w.nextID
	w.bodies = append(w.bodies, b)
	return b
}

// Remove deletes the body. Pairs it was part of exit on the next detection.
func (w *World) Remove(b *Body) bool {
	for i, obj := range w.bodies {
		if obj == b {
			// Copy so slices handed out by Bodies keep their contents
			w.bodies = slices.Delete(slices.Clone(w.bodies), i, i+1)
			return true
		}
	}
	return false
}

// Bodies returns the bodies in insertion order. The slice must not be
// modified. It is a snapshot: later calls to Remove leave it untouched.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// Find returns the first body with the given name.
func (w *World) Find(name string) *Body {
	for _, b := range w.bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// FindByTag returns every body carrying tag.
func (w *World) FindByTag(tag string) []*Body {
	var out []*Body
	for _, b := range w.bodies {
		if b.HasTag(tag) {
			out = append(out, b)
		}
	}
	return out
}

// CanCollide applies layer filtering: the IgnoreCollisions layer never
// collides, and either body may ignore the other's layer.
func CanCollide(a, b *Body) bool {
	if a.Layer == physics.LayerIgnoreCollisions || b.Layer == physics.LayerIgnoreCollisions {
		return false
	}
	return !a.IgnoreLayers.Has(b.Layer) && !b.IgnoreLayers.Has(a.Layer)
}

// CandidatePairs runs the grid broad phase and returns body pairs whose
// bounds overlap and whose layers allow a collision, ordered by body id.
func (w *World) CandidatePairs() [][2]*Body {
	w.grid.rebuild(w.bodies)
	return w.filterPairs(w.grid.pairs())
}

// BruteForcePairs checks every pair of bounds. It is the reference the grid
// is measured against.
func (w *World) BruteForcePairs() [][2]*Body {
	var idx [][2]int
	for i := 0; i < len(w.bodies); i++ {
		bi := physics.WorldAABB(w.bodies[i].Collider)
		for j := i + 1; j < len(w.bodies); j++ {
			if bi.Intersects(physics.WorldAABB(w.bodies[j].Collider)) {
				idx = append(idx, [2]int{i, j})
			}
		}
	}
	return w.filterPairs(idx)
}

func (w *World) filterPairs(idx [][2]int) [][2]*Body {
	out := make([][2]*Body, 0, len(idx))
	for _, p := range idx {
		a, b := w.bodies[p[0]], w.bodies[p[1]]
		if !CanCollide(a, b) {
			continue
		}
		if a.id > b.id {
			a, b = b, a
		}
		out = append(out, [2]*Body{a, b})
	}
	slices.SortFunc(out, func(x, y [2]*Body) int {
		if x[0].id != y[0].id {
			return x[0].id - y[0].id
		}
		return x[1].id - y[1].id
	})
	return out
}

type narrowResult struct {
	outcome physics.Outcome
	contact physics.ContactPoint
}

// DetectCollisions runs both phases and returns the colliding pairs in a
// stable order. Enter and exit callbacks fire before it returns.
func (w *World) DetectCollisions() []Contact {
	pairs := w.CandidatePairs()
	results := make([]narrowResult, len(pairs))

	if w.Workers > 1 && len(pairs) > 1 {
		w.narrowPhaseParallel(pairs, results)
	} else {
		for i, p := range pairs {
			results[i] = narrowPhase(p[0], p[1])
		}
	}

	currentCollisions := make(map[pairKey][2]*Body)
	var contacts []Contact
	for i, r := range results {
		a, b := pairs[i][0], pairs[i][1]
		switch r.outcome {
		case physics.Colliding:
			contacts = append(contacts, Contact{A: a, B: b, Contact: r.contact})
			currentCollisions[makePair(a, b)] = [2]*Body{a, b}
		case physics.Unsupported:
			w.logUnsupported(a, b)
		}
	}

	w.dispatchCollisionCallbacks(currentCollisions)
	return contacts
}

// narrowPhaseParallel fans the pairs out to a worker pool. Each worker
// writes only its own result slots.
func (w *World) narrowPhaseParallel(pairs [][2]*Body, results []narrowResult) {
	work := make(chan int, w.Workers*2)
	var wg sync.WaitGroup

	for n := 0; n < w.Workers; n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				results[i] = narrowPhase(pairs[i][0], pairs[i][1])
			}
		}()
	}

	for i := range pairs {
		work <- i
	}
	close(work)
	wg.Wait()
}

func narrowPhase(a, b *Body) narrowResult {
	var info physics.CollisionInfo
	out := physics.ObjectIntersection(a.Collider, b.Collider, &info)
	if out != physics.Colliding {
		return narrowResult{outcome: out}
	}
	cp, _ := info.Oriented()
	return narrowResult{outcome: out, contact: cp}
}

// logUnsupported reports each shape kind pair without an algorithm once.
func (w *World) logUnsupported(a, b *Body) {
	ka, kb := a.Collider.Shape.Kind, b.Collider.Shape.Kind
	if ka > kb {
		ka, kb = kb, ka
	}
	key := kindPair{ka, kb}
	if w.unsupported[key] {
		return
	}
	w.unsupported[key] = true
	log.Printf("World: no narrow phase for %s vs %s (first seen: %q, %q)", ka, kb, a.Name, b.Name)
}

// dispatchCollisionCallbacks sends enter/exit notifications and swaps the
// tracking buffers.
func (w *World) dispatchCollisionCallbacks(current map[pairKey][2]*Body) {
	// Find new collisions (enter)
	if w.OnCollisionEnter != nil {
		for _, key := range sortedKeys(current) {
			if _, ok := w.activeCollisions[key]; !ok {
				pair := current[key]
				w.OnCollisionEnter(pair[0], pair[1])
			}
		}
	}

	// Find ended collisions (exit)
	if w.OnCollisionExit != nil {
		for _, key := range sortedKeys(w.activeCollisions) {
			if _, ok := current[key]; !ok {
				pair := w.activeCollisions[key]
				w.OnCollisionExit(pair[0], pair[1])
			}
		}
	}

	w.activeCollisions = current
}

// IsColliding reports whether a and b collided in the last detection.
func (w *World) IsColliding(a, b *Body) bool {
	_, ok := w.activeCollisions[makePair(a, b)]
	return ok
}

func sortedKeys(m map[pairKey][2]*Body) []pairKey {
	keys := make([]pairKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(x, y pairKey) int {
		if x.A != y.A {
			return x.A - y.A
		}
		return x.B - y.B
	})
	return keys
}
