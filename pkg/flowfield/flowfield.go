// Package flowfield computes multi-goal cost heatmaps and per-tile flow
// directions over a graph.
package flowfield

import (
	"math"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/graph"
	"github.com/pkg/errors"
)

var (
	// ErrNoPath signals a tile that the current goals cannot reach, or a
	// lookup made before any field was computed.
	ErrNoPath = errors.New("no path to goal")
	// ErrNoGoals is returned when Compute is called with an empty goal set.
	ErrNoGoals = errors.New("flow field needs at least one goal")
)

// Field is one immutable result of a computation: the heatmap and the
// flow directions derived from it for a fixed goal set.
type Field struct {
	graph      *graph.Graph
	goals      []*graph.Tile
	isGoal     []bool
	costs      []float64
	reached    []bool
	directions []geometry.Vector3D
	hasDir     []bool
}

// Goals returns the goal tiles in the order they were given.
func (f *Field) Goals() []*graph.Tile { return f.goals }

// IsGoal reports whether t is one of the goals of this field.
func (f *Field) IsGoal(t *graph.Tile) bool {
	return f.graph.Owns(t) && f.isGoal[t.ID]
}

// HeatmapValue is the accumulated path cost from the nearest goal to t.
func (f *Field) HeatmapValue(t *graph.Tile) (float64, error) {
	if !f.graph.Owns(t) || !f.reached[t.ID] {
		return 0, errors.Wrapf(ErrNoPath, "heatmap %v", t)
	}
	return f.costs[t.ID], nil
}

// FlowDirection is the unit vector from t towards its cheapest neighbour,
// or the zero vector on goal tiles.
func (f *Field) FlowDirection(t *graph.Tile) (geometry.Vector3D, error) {
	if !f.graph.Owns(t) || !f.hasDir[t.ID] {
		return geometry.Zero, errors.Wrapf(ErrNoPath, "flow %v", t)
	}
	return f.directions[t.ID], nil
}

// Reachable counts the tiles present in the heatmap.
func (f *Field) Reachable() int {
	n := 0
	for _, r := range f.reached {
		if r {
			n++
		}
	}
	return n
}

// Engine owns the current Field of a graph and replaces it wholesale on
// every recompute. Readers holding the previous *Field keep a consistent view.
type Engine struct {
	graph      *graph.Graph
	current    *Field
	recomputes int
}

func NewEngine(g *graph.Graph) *Engine {
	return &Engine{graph: g}
}

// Field returns the latest computed field, nil before the first Compute.
func (e *Engine) Field() *Field { return e.current }

// Recomputes counts completed computations.
func (e *Engine) Recomputes() int { return e.recomputes }

// IsGoal reports whether t is a goal of the current field.
func (e *Engine) IsGoal(t *graph.Tile) bool {
	return e.current != nil && e.current.IsGoal(t)
}

// HeatmapValue reads the current field, ErrNoPath when nothing was computed.
func (e *Engine) HeatmapValue(t *graph.Tile) (float64, error) {
	if e.current == nil {
		return 0, ErrNoPath
	}
	return e.current.HeatmapValue(t)
}

// FlowDirection reads the current field, ErrNoPath when nothing was computed.
func (e *Engine) FlowDirection(t *graph.Tile) (geometry.Vector3D, error) {
	if e.current == nil {
		return geometry.Zero, ErrNoPath
	}
	return e.current.FlowDirection(t)
}

// Retarget recomputes a single-goal field for goal unless goal already is
// one of the current goals. It reports whether a recompute happened.
func (e *Engine) Retarget(goal *graph.Tile) (bool, error) {
	if e.IsGoal(goal) {
		return false, nil
	}
	if _, err := e.Compute(goal); err != nil {
		return false, err
	}
	return true, nil
}

// Compute runs the propagation from all goals at cost 0 and installs the
// result as the current field.
func (e *Engine) Compute(goals ...*graph.Tile) (*Field, error) {
	if len(goals) == 0 {
		return nil, ErrNoGoals
	}
	n := e.graph.Len()
	f := &Field{
		graph:      e.graph,
		goals:      make([]*graph.Tile, 0, len(goals)),
		isGoal:     make([]bool, n),
		costs:      make([]float64, n),
		reached:    make([]bool, n),
		directions: make([]geometry.Vector3D, n),
		hasDir:     make([]bool, n),
	}

	// FIFO frontier with relax-and-requeue: a tile goes back in the queue
	// whenever its cost drops, unless it is already waiting there.
	queue := make([]*graph.Tile, 0, n)
	queued := make([]bool, n)
	// hops along the path that set the cost, breaks cost ties so that
	// zero cost edges still lead somewhere
	hops := make([]int, n)
	for _, g := range goals {
		if !e.graph.Owns(g) {
			return nil, errors.Wrapf(graph.ErrForeignTile, "goal %v", g)
		}
		if f.isGoal[g.ID] {
			continue
		}
		f.goals = append(f.goals, g)
		f.isGoal[g.ID] = true
		f.reached[g.ID] = true
		queue = append(queue, g)
		queued[g.ID] = true
	}

	for head := 0; head < len(queue); head++ {
		node := queue[head]
		queued[node.ID] = false
		offset := f.costs[node.ID]

		for _, edge := range node.Edges {
			next := edge.To
			pathCost := offset + edge.Cost
			if f.reached[next.ID] && f.costs[next.ID] <= pathCost {
				continue
			}
			f.costs[next.ID] = pathCost
			f.reached[next.ID] = true
			hops[next.ID] = hops[node.ID] + 1
			if !queued[next.ID] {
				queue = append(queue, next)
				queued[next.ID] = true
			}
		}
	}

	for _, t := range e.graph.Tiles() {
		if !f.reached[t.ID] {
			continue
		}
		if f.isGoal[t.ID] {
			f.hasDir[t.ID] = true
			continue
		}
		var best *graph.Tile
		lowest, fewest := math.MaxFloat64, math.MaxInt
		for _, edge := range t.Edges {
			id := edge.To.ID
			if !f.reached[id] {
				continue
			}
			// strict comparison: the first neighbour in edge order wins ties
			c, h := f.costs[id], hops[id]
			if c < lowest || (c == lowest && h < fewest) {
				best = edge.To
				lowest, fewest = c, h
			}
		}
		// (cost, hops) must strictly drop at every step or the flow could cycle
		own := f.costs[t.ID]
		if best == nil || lowest > own || (lowest == own && fewest >= hops[t.ID]) {
			continue
		}
		f.directions[t.ID] = e.graph.Localize(best).Sub(e.graph.Localize(t)).Normalize()
		f.hasDir[t.ID] = true
	}

	e.current = f
	e.recomputes++
	return f, nil
}
