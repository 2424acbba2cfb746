// Package halton draws reproducible low-discrepancy points used to place
// hives on the grid.
package halton

import (
	"math"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/graph"
)

const (
	XBase = 3
	ZBase = 2
)

// Draw returns the index-th element of the Halton sequence in base, a value
// in [0,1). Bases below 2 have no sequence and yield 0.
func Draw(base int, index uint64) float64 {
	if base < 2 {
		return 0
	}
	b := uint64(base)
	result := 0.0
	denominator := 1.0
	for index > 0 {
		denominator *= float64(base)
		result += float64(index%b) / denominator
		index /= b
	}
	return result
}

// Sequencer hands out grid tiles from a shared counter, one counter step per
// tile. It is not safe for concurrent use; the world ticks it sequentially.
type Sequencer struct {
	index uint64
}

// NewSequencer starts the counter at start.
func NewSequencer(start uint64) *Sequencer {
	return &Sequencer{index: start}
}

// Index is the counter value the next draw will use.
func (s *Sequencer) Index() uint64 { return s.index }

// Next draws the (x, z) pair in [0,1)^2 for the current index and advances.
func (s *Sequencer) Next() (x, z float64) {
	x, z = Draw(XBase, s.index), Draw(ZBase, s.index)
	s.index++
	return x, z
}

// NextTile maps the next draw onto the columns and rows of g.
func (s *Sequencer) NextTile(g *graph.Graph) (*graph.Tile, error) {
	hx, hz := s.Next()
	x := int(math.Floor(hx * float64(g.Cols())))
	z := int(math.Floor(hz * float64(g.Rows())))
	return g.TileAt(x, z)
}
