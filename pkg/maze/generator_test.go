package maze

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/graph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countEdges(g *graph.Graph) int {
	n := 0
	for _, t := range g.Tiles() {
		n += len(t.Edges)
	}
	return n
}

func reachable(g *graph.Graph, from *graph.Tile) int {
	seen := map[*graph.Tile]bool{from: true}
	queue := []*graph.Tile{from}
	for len(queue) > 0 {
		t := queue[0]
		queue = queue[1:]
		for _, e := range t.Edges {
			if !seen[e.To] {
				seen[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	return len(seen)
}

func TestGenerate_PerfectMazeIsSpanningTree(t *testing.T) {
	g, err := graph.New(10, 7, 10, geometry.Zero)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Braiding = 0
	require.NoError(t, NewGenerator(cfg).Generate(g))

	start, _ := g.TileAt(0, 0)
	assert.Equal(t, g.Len(), reachable(g, start), "every tile must be reachable")
	// a spanning tree has n-1 undirected edges, stored in both directions
	assert.Equal(t, 2*(g.Len()-1), countEdges(g))

	for _, tile := range g.Tiles() {
		for _, e := range tile.Edges {
			assert.True(t, e.To.HasEdgeTo(tile.X, tile.Z), "edge %s->%s must be symmetric", tile, e.To)
			assert.Equal(t, 1.0, e.Cost)
		}
	}
}

func TestGenerate_BraidingAddsCycles(t *testing.T) {
	g, err := graph.New(12, 12, 10, geometry.Zero)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Braiding = 1
	require.NoError(t, NewGenerator(cfg).Generate(g))

	start, _ := g.TileAt(0, 0)
	assert.Equal(t, g.Len(), reachable(g, start))
	assert.Greater(t, countEdges(g), 2*(g.Len()-1))
}

func TestGenerate_Deterministic(t *testing.T) {
	build := func() *graph.Graph {
		g, err := graph.New(8, 8, 1, geometry.Zero)
		require.NoError(t, err)
		require.NoError(t, NewGenerator(DefaultConfig()).Generate(g))
		return g
	}
	a, b := build(), build()
	for i, ta := range a.Tiles() {
		tb := b.Tiles()[i]
		require.Len(t, tb.Edges, len(ta.Edges))
		for j := range ta.Edges {
			assert.Equal(t, ta.Edges[j].To.ID, tb.Edges[j].To.ID)
		}
	}
}

func TestGenerate_RejectsBadStart(t *testing.T) {
	g, err := graph.New(3, 3, 1, geometry.Zero)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.StartX = 5
	assert.Error(t, NewGenerator(cfg).Generate(g))

	cfg = DefaultConfig()
	cfg.EdgeCost = -1
	assert.Error(t, NewGenerator(cfg).Generate(g))
}
