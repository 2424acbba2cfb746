// Package maze carves a connected maze into a graph by adding edges.
package maze

import (
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/graph"
	"github.com/pkg/errors"
)

type Config struct {
	// Braiding: 0.0 (perfect maze, a spanning tree) to 1.0 (every dead end
	// gets an extra opening). Higher values add cycles.
	Braiding float64 `json:"braiding"`

	// Cost given to every carved edge, both directions.
	EdgeCost float64 `json:"edgeCost"`

	Seed uint64 `json:"seed"`

	// StartX/StartZ pick where the backtracker starts.
	StartX int `json:"startX"`
	StartZ int `json:"startZ"`
}

func DefaultConfig() Config {
	return Config{Braiding: 0.2, EdgeCost: 1, Seed: 4303}
}

// Generator implements a seeded recursive backtracker over graph tiles.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

func NewGenerator(cfg Config) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
}

// Generate replaces the edges of g with a maze. Every open tile reachable
// from the start through open tiles ends up connected.
func (m *Generator) Generate(g *graph.Graph) error {
	if m.cfg.EdgeCost < 0 {
		return errors.Wrapf(graph.ErrNegativeCost, "maze edge cost %v", m.cfg.EdgeCost)
	}
	start, err := g.TileAt(m.cfg.StartX, m.cfg.StartZ)
	if err != nil {
		return errors.Wrap(err, "maze start")
	}
	if start.Type == graph.Wall {
		return errors.Errorf("maze start %s is a wall", start)
	}

	g.ClearEdges()
	if err := m.backtrack(g, start); err != nil {
		return err
	}
	if m.cfg.Braiding > 0 {
		return m.braid(g)
	}
	return nil
}

func (m *Generator) backtrack(g *graph.Graph, start *graph.Tile) error {
	visited := make([]bool, g.Len())
	visited[start.ID] = true
	stack := []*graph.Tile{start}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]*graph.Tile, 0, 4)
		for _, n := range g.CardinalNeighbors(curr) {
			if !visited[n.ID] && n.Type == graph.Open {
				candidates = append(candidates, n)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		next := candidates[m.rng.IntN(len(candidates))]
		if err := g.Connect(curr, next, m.cfg.EdgeCost); err != nil {
			return err
		}
		visited[next.ID] = true
		stack = append(stack, next)
	}
	return nil
}

// braid opens an extra passage out of dead ends with probability Braiding.
func (m *Generator) braid(g *graph.Graph) error {
	for _, t := range g.Tiles() {
		if t.Type == graph.Wall || len(t.Edges) != 1 {
			continue
		}
		if m.rng.Float64() >= m.cfg.Braiding {
			continue
		}
		candidates := make([]*graph.Tile, 0, 3)
		for _, n := range g.CardinalNeighbors(t) {
			if n.Type == graph.Open && !t.HasEdgeTo(n.X, n.Z) {
				candidates = append(candidates, n)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		if err := g.Connect(t, candidates[m.rng.IntN(len(candidates))], m.cfg.EdgeCost); err != nil {
			return err
		}
	}
	return nil
}
