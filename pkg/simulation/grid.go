package simulation

import (
	"math"
	"slices"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/kinematics"
)

type gridKey struct {
	x, z int
}

// neighbourGrid buckets bees by cell so flocking only scans the 3x3 cells
// around a bee. Cells are at least as large as the widest flocking radius.
// Bees are moved between cells as soon as they move, so a bee updated later
// in the same tick sees the already updated positions of earlier bees.
type neighbourGrid struct {
	cellSize float64
	cells    map[gridKey][]int
	keys     []gridKey
}

func newNeighbourGrid(cellSize float64) *neighbourGrid {
	// Clamp to a minimum to avoid tiny grids or div by zero
	return &neighbourGrid{
		cellSize: math.Max(cellSize, 1),
		cells:    make(map[gridKey][]int),
	}
}

func (g *neighbourGrid) keyOf(p geometry.Vector3D) gridKey {
	return gridKey{x: int(math.Floor(p.X / g.cellSize)), z: int(math.Floor(p.Z / g.cellSize))}
}

// rebuild re-buckets every body, reusing the cell slices capacity.
func (g *neighbourGrid) rebuild(bodies []*kinematics.Body) {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
	g.keys = g.keys[:0]
	for i, b := range bodies {
		key := g.keyOf(b.Position)
		g.cells[key] = append(g.cells[key], i)
		g.keys = append(g.keys, key)
	}
}

// move re-buckets body i after its position changed.
func (g *neighbourGrid) move(i int, p geometry.Vector3D) {
	key := g.keyOf(p)
	old := g.keys[i]
	if key == old {
		return
	}
	g.cells[old] = slices.DeleteFunc(g.cells[old], func(j int) bool { return j == i })
	g.cells[key] = append(g.cells[key], i)
	g.keys[i] = key
}

// nearby appends to dst the indices of the bodies in and around the cell of
// p, in ascending order so that force sums do not depend on bucket order.
func (g *neighbourGrid) nearby(dst []int, p geometry.Vector3D) []int {
	c := g.keyOf(p)
	for x := c.x - 1; x <= c.x+1; x++ {
		for z := c.z - 1; z <= c.z+1; z++ {
			dst = append(dst, g.cells[gridKey{x: x, z: z}]...)
		}
	}
	slices.Sort(dst)
	return dst
}
