package graph

import (
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T, cols, rows int) *Graph {
	t.Helper()
	g, err := New(cols, rows, 10, geometry.Vector3D{X: -50, Z: -35})
	require.NoError(t, err)
	return g
}

func TestNew_RejectsInvalidSize(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		tileSize   float64
	}{
		{"zero cols", 0, 5, 10},
		{"zero rows", 5, 0, 10},
		{"negative cols", -1, 5, 10},
		{"zero tile size", 5, 5, 0},
		{"negative tile size", 5, 5, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.cols, tt.rows, tt.tileSize, geometry.Zero)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrInvalidSize), "got %v", err)
		})
	}
}

func TestTileAt(t *testing.T) {
	g := newTestGraph(t, 10, 7)
	assert.Equal(t, 70, g.Len())

	tile, err := g.TileAt(3, 4)
	require.NoError(t, err)
	assert.Equal(t, 3, tile.X)
	assert.Equal(t, 4, tile.Z)
	assert.Equal(t, 4*10+3, tile.ID)

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {10, 0}, {0, 7}} {
		_, err := g.TileAt(c[0], c[1])
		assert.True(t, errors.Is(err, ErrOutOfBounds), "(%d,%d) should be out of bounds", c[0], c[1])
	}
}

func TestInitEdges_CardinalOrder(t *testing.T) {
	g := newTestGraph(t, 3, 3)
	require.NoError(t, g.InitEdges(1))

	center, _ := g.TileAt(1, 1)
	got := make([][2]int, 0, 4)
	for _, e := range g.NeighborsOf(center) {
		got = append(got, [2]int{e.To.X, e.To.Z})
		assert.Equal(t, 1.0, e.Cost)
	}
	assert.Equal(t, [][2]int{{0, 1}, {2, 1}, {1, 0}, {1, 2}}, got)

	corner, _ := g.TileAt(0, 0)
	assert.Len(t, corner.Edges, 2)
}

func TestInitEdges_SkipsWalls(t *testing.T) {
	g := newTestGraph(t, 3, 1)
	mid, _ := g.TileAt(1, 0)
	mid.Type = Wall
	require.NoError(t, g.InitEdges(1))

	left, _ := g.TileAt(0, 0)
	assert.Empty(t, left.Edges)
	assert.Empty(t, mid.Edges)
}

func TestHasEdge(t *testing.T) {
	g := newTestGraph(t, 4, 4)
	a, _ := g.TileAt(1, 1)
	b, _ := g.TileAt(2, 1)
	require.NoError(t, g.Connect(a, b, 1))

	assert.True(t, g.HasEdge(1, 1, 2, 1))
	assert.True(t, g.HasEdge(2, 1, 1, 1))
	assert.False(t, g.HasEdge(1, 1, 1, 2))
	// outside the grid behaves as a boundary wall
	assert.False(t, g.HasEdge(-1, 1, 0, 1))
	assert.False(t, g.HasEdge(0, 0, -1, 0))
}

func TestAddEdge_Validation(t *testing.T) {
	g := newTestGraph(t, 2, 1)
	other := newTestGraph(t, 2, 1)
	a, _ := g.TileAt(0, 0)
	b, _ := g.TileAt(1, 0)
	foreign, _ := other.TileAt(1, 0)

	err := g.AddEdge(a, b, -1)
	assert.True(t, errors.Is(err, ErrNegativeCost), "got %v", err)
	assert.Empty(t, a.Edges)

	err = g.AddEdge(a, foreign, 1)
	assert.True(t, errors.Is(err, ErrForeignTile), "got %v", err)

	require.NoError(t, g.AddEdge(a, b, 0))
	require.NoError(t, g.AddEdge(a, b, 3))
	assert.Len(t, a.Edges, 1, "duplicate edges are ignored")
}

func TestRandomEmptyTile(t *testing.T) {
	g := newTestGraph(t, 3, 1)
	for _, tile := range g.Tiles() {
		tile.Type = Wall
	}
	_, err := g.RandomEmptyTile(rand.New(rand.NewPCG(1, 2)))
	assert.True(t, errors.Is(err, ErrNoEmptyTile))

	last, _ := g.TileAt(2, 0)
	last.Type = Open
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		tile, err := g.RandomEmptyTile(rng)
		require.NoError(t, err)
		assert.Same(t, last, tile)
	}
}

func TestLocalizeQuantize(t *testing.T) {
	g := newTestGraph(t, 10, 7)
	tile, _ := g.TileAt(0, 0)

	pos := g.Localize(tile)
	assert.Equal(t, geometry.Vector3D{X: -45, Y: 10, Z: -30}, pos)

	back, err := g.Quantize(pos)
	require.NoError(t, err)
	assert.Same(t, tile, back)

	last, _ := g.TileAt(9, 6)
	back, err = g.Quantize(geometry.Vector3D{X: 49.9, Z: 34.9})
	require.NoError(t, err)
	assert.Same(t, last, back)

	_, err = g.Quantize(geometry.Vector3D{X: -50.1, Z: 0})
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestClamp(t *testing.T) {
	g := newTestGraph(t, 10, 7)
	clamped := g.Clamp(geometry.Vector3D{X: 500, Y: 10, Z: -500})
	tile, err := g.Quantize(clamped)
	require.NoError(t, err)
	assert.Equal(t, 9, tile.X)
	assert.Equal(t, 0, tile.Z)
	assert.Equal(t, 10.0, clamped.Y)
}
