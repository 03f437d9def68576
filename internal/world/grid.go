package world

import (
	"math"

	"collide3d/internal/physics"
)

// CellSize is the edge length of a spatial grid cell. Bodies are checked
// only against bodies sharing at least one cell.
const CellSize = 5.0

// maxCellsPerAxis caps how many cells one body is inserted into per axis.
// Larger bodies go to the oversized list and are paired with everything.
const maxCellsPerAxis = 16

// maxGridCoord bounds the coordinates the hash indexes. Bounds outside it,
// or non-finite, would overflow the integer cell keys and go to the
// oversized list instead.
const maxGridCoord = 1e9

// CellKey for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func coordToCell(v float32) int {
	return int(math.Floor(float64(v) / CellSize))
}

// inGridRange reports whether every corner of box can be turned into a cell key.
func inGridRange(box physics.AABB) bool {
	for _, v := range []float32{box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z} {
		f := float64(v)
		if math.IsNaN(f) || math.Abs(f) > maxGridCoord {
			return false
		}
	}
	return true
}

// cellRange returns the inclusive cell bounds covered by box.
func cellRange(box physics.AABB) (lo, hi CellKey) {
	lo = CellKey{coordToCell(box.Min.X), coordToCell(box.Min.Y), coordToCell(box.Min.Z)}
	hi = CellKey{coordToCell(box.Max.X), coordToCell(box.Max.Y), coordToCell(box.Max.Z)}
	return lo, hi
}

// grid is a uniform spatial hash over body bounds. It stores body indices
// into the slice it was built from.
type grid struct {
	cells     map[CellKey][]int
	oversized []int
	bounds    []physics.AABB
}

func newGrid() *grid {
	return &grid{cells: make(map[CellKey][]int)}
}

// rebuild clears and repopulates the grid
func (g *grid) rebuild(bodies []*Body) {
	for k := range g.cells {
		delete(g.cells, k)
	}
	g.oversized = g.oversized[:0]
	g.bounds = g.bounds[:0]

	for i, b := range bodies {
		box := physics.WorldAABB(b.Collider)
		g.bounds = append(g.bounds, box)

		if !inGridRange(box) {
			g.oversized = append(g.oversized, i)
			continue
		}
		lo, hi := cellRange(box)
		if hi.X-lo.X >= maxCellsPerAxis || hi.Y-lo.Y >= maxCellsPerAxis || hi.Z-lo.Z >= maxCellsPerAxis {
			g.oversized = append(g.oversized, i)
			continue
		}
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					key := CellKey{x, y, z}
					g.cells[key] = append(g.cells[key], i)
				}
			}
		}
	}
}

// pairs returns each index pair whose bounds overlap, smaller index first.
// Every pair appears once.
func (g *grid) pairs() [][2]int {
	seen := make(map[[2]int]bool)
	var out [][2]int

	add := func(i, j int) {
		if i == j {
			return
		}
		if i > j {
			i, j = j, i
		}
		key := [2]int{i, j}
		if seen[key] {
			return
		}
		seen[key] = true
		if g.bounds[i].Intersects(g.bounds[j]) {
			out = append(out, key)
		}
	}

	for _, members := range g.cells {
		for a := 0; a < len(members); a++ {
			for b := a + 1; b < len(members); b++ {
				add(members[a], members[b])
			}
		}
	}
	for _, i := range g.oversized {
		for j := range g.bounds {
			add(i, j)
		}
	}
	return out
}
