// Package graph holds the tile grid the chase is played on: tiles, their
// directed weighted edges, and the mapping between tiles and world positions.
package graph

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned for coordinates or positions outside the grid.
	ErrOutOfBounds = errors.New("tile coordinates out of bounds")
	// ErrInvalidSize is returned when the grid would have no tiles.
	ErrInvalidSize = errors.New("grid must have positive columns, rows and tile size")
	// ErrNegativeCost rejects edges that would break uniform-cost propagation.
	ErrNegativeCost = errors.New("edge cost must be non-negative")
	// ErrForeignTile is returned when a tile does not belong to this graph.
	ErrForeignTile = errors.New("tile does not belong to this graph")
	// ErrNoEmptyTile is returned by RandomEmptyTile when every tile is a wall.
	ErrNoEmptyTile = errors.New("graph has no open tile")
)

// TileType tags a tile as walkable or obstructed.
type TileType int

const (
	Open TileType = iota
	Wall
)

func (t TileType) String() string {
	if t == Wall {
		return "wall"
	}
	return "open"
}

// Edge is a directed link to a neighbouring tile.
type Edge struct {
	To   *Tile
	Cost float64
}

// Tile is a grid cell. Edges keep insertion order, which is the fixed
// iteration order the flow field relies on for deterministic tie-breaks.
type Tile struct {
	ID    int
	X, Z  int
	Type  TileType
	Edges []Edge
}

func (t *Tile) String() string {
	return fmt.Sprintf("tile(%d,%d)", t.X, t.Z)
}

// HasEdgeTo reports whether t has an outgoing edge to the tile at (x, z).
func (t *Tile) HasEdgeTo(x, z int) bool {
	for _, e := range t.Edges {
		if e.To.X == x && e.To.Z == z {
			return true
		}
	}
	return false
}

// Graph owns every tile of a cols x rows grid laid out from Origin with
// square tiles of TileSize world units.
type Graph struct {
	cols, rows int
	tileSize   float64
	origin     geometry.Vector3D
	tiles      []*Tile
}

// New allocates a graph with open, unconnected tiles.
func New(cols, rows int, tileSize float64, origin geometry.Vector3D) (*Graph, error) {
	if cols <= 0 || rows <= 0 || !(tileSize > 0) {
		return nil, errors.Wrapf(ErrInvalidSize, "cols=%d rows=%d tileSize=%v", cols, rows, tileSize)
	}
	g := &Graph{
		cols:     cols,
		rows:     rows,
		tileSize: tileSize,
		origin:   origin,
		tiles:    make([]*Tile, 0, cols*rows),
	}
	// row-major on z so ID == z*cols + x
	for z := 0; z < rows; z++ {
		for x := 0; x < cols; x++ {
			g.tiles = append(g.tiles, &Tile{ID: len(g.tiles), X: x, Z: z, Type: Open})
		}
	}
	return g, nil
}

func (g *Graph) Cols() int { return g.cols }
func (g *Graph) Rows() int { return g.rows }
func (g *Graph) TileSize() float64 { return g.tileSize }
func (g *Graph) Origin() geometry.Vector3D { return g.origin }
func (g *Graph) Len() int { return len(g.tiles) }
func (g *Graph) Tiles() []*Tile { return g.tiles }
func (g *Graph) InBounds(x, z int) bool { return x >= 0 && z >= 0 && x < g.cols && z < g.rows }
func (g *Graph) Owns(t *Tile) bool { return t != nil && t.ID >= 0 && t.ID < len(g.tiles) && g.tiles[t.ID] == t }
func (g *Graph) NeighborsOf(t *Tile) []Edge { return t.Edges }

// TileAt returns the tile at grid coordinates (x, z).
func (g *Graph) TileAt(x, z int) (*Tile, error) {
	if !g.InBounds(x, z) {
		return nil, errors.Wrapf(ErrOutOfBounds, "(%d,%d) outside %dx%d", x, z, g.cols, g.rows)
	}
	return g.tiles[z*g.cols+x], nil
}

// HasEdge reports whether an edge goes from (x, z) to (x2, z2).
// A missing source tile counts as no edge, i.e. a boundary wall.
func (g *Graph) HasEdge(x, z, x2, z2 int) bool {
	t, err := g.TileAt(x, z)
	if err != nil {
		return false
	}
	return t.HasEdgeTo(x2, z2)
}

// AddEdge appends a directed edge from -> to.
func (g *Graph) AddEdge(from, to *Tile, cost float64) error {
	if !g.Owns(from) || !g.Owns(to) {
		return ErrForeignTile
	}
	if cost < 0 || math.IsNaN(cost) {
		return errors.Wrapf(ErrNegativeCost, "%s -> %s cost %v", from, to, cost)
	}
	if from.HasEdgeTo(to.X, to.Z) {
		return nil
	}
	from.Edges = append(from.Edges, Edge{To: to, Cost: cost})
	return nil
}

// Connect links a and b in both directions with the same cost.
func (g *Graph) Connect(a, b *Tile, cost float64) error {
	if err := g.AddEdge(a, b, cost); err != nil {
		return err
	}
	return g.AddEdge(b, a, cost)
}

// ClearEdges drops every edge, leaving tiles isolated.
func (g *Graph) ClearEdges() {
	for _, t := range g.tiles {
		t.Edges = t.Edges[:0]
	}
}

// cardinal offsets in the order edges are created: -x, +x, -z, +z
var cardinal = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// InitEdges connects every open tile to its open cardinal neighbours.
func (g *Graph) InitEdges(cost float64) error {
	for _, t := range g.tiles {
		if t.Type == Wall {
			continue
		}
		for _, d := range cardinal {
			n, err := g.TileAt(t.X+d[0], t.Z+d[1])
			if err != nil || n.Type == Wall {
				continue
			}
			if err := g.AddEdge(t, n, cost); err != nil {
				return err
			}
		}
	}
	return nil
}

// CardinalNeighbors returns the in-bounds tiles orthogonally adjacent to t,
// whether or not an edge exists.
func (g *Graph) CardinalNeighbors(t *Tile) []*Tile {
	out := make([]*Tile, 0, 4)
	for _, d := range cardinal {
		if n, err := g.TileAt(t.X+d[0], t.Z+d[1]); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// RandomEmptyTile picks uniformly among open tiles.
func (g *Graph) RandomEmptyTile(rng *rand.Rand) (*Tile, error) {
	open := make([]*Tile, 0, len(g.tiles))
	for _, t := range g.tiles {
		if t.Type == Open {
			open = append(open, t)
		}
	}
	if len(open) == 0 {
		return nil, ErrNoEmptyTile
	}
	return open[rng.IntN(len(open))], nil
}

// Localize returns the world position at the centre of t.
// y is set to the tile size, the height agents travel at.
func (g *Graph) Localize(t *Tile) geometry.Vector3D {
	return geometry.Vector3D{
		X: g.origin.X + float64(t.X)*g.tileSize + g.tileSize*0.5,
		Y: g.tileSize,
		Z: g.origin.Z + float64(t.Z)*g.tileSize + g.tileSize*0.5,
	}
}

// Quantize returns the tile containing the world position.
func (g *Graph) Quantize(pos geometry.Vector3D) (*Tile, error) {
	x := int(math.Floor((pos.X - g.origin.X) / g.tileSize))
	z := int(math.Floor((pos.Z - g.origin.Z) / g.tileSize))
	return g.TileAt(x, z)
}

// Clamp keeps a world position inside the grid extents on the x/z plane.
func (g *Graph) Clamp(pos geometry.Vector3D) geometry.Vector3D {
	const margin = 1e-6
	maxX := g.origin.X + float64(g.cols)*g.tileSize - margin
	maxZ := g.origin.Z + float64(g.rows)*g.tileSize - margin
	pos.X = math.Min(math.Max(pos.X, g.origin.X), maxX)
	pos.Z = math.Min(math.Max(pos.Z, g.origin.Z), maxZ)
	return pos
}
