package simulation

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/flowfield"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/graph"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/halton"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/kinematics"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/maze"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/steering"
	"github.com/pkg/errors"
	golog "github.com/tochemey/goakt/v3/log"
)

// Status of a game.
type Status int

const (
	Running Status = iota
	Lost
	Won
)

func (s Status) String() string {
	switch s {
	case Lost:
		return "lost"
	case Won:
		return "won"
	default:
		return "running"
	}
}

// MazeGenerator carves the edges of a freshly built graph.
type MazeGenerator interface {
	Generate(g *graph.Graph) error
}

// World owns every agent and runs them one after the other, in a fixed
// order, on each Tick. It is not safe for concurrent use: WorldActor is the
// only owner when the game runs.
type World struct {
	RunID uuid.UUID

	cfg        *Config
	logger     golog.Logger
	controller Controller

	graph  *graph.Graph
	flow   *flowfield.Engine
	halton *halton.Sequencer
	rng    *rand.Rand

	player *Player
	bees   []*Bee
	hives  []*Hive

	// flocking scratch, reused every tick
	grid      *neighbourGrid
	bodies    []*kinematics.Body
	neighbors []*kinematics.Body
	indices   []int

	status      Status
	tick        uint64
	elapsed     float64
	hungerClock float64
}

// NewWorld builds the maze, places hives with the Halton sequence, spawns the
// bees at their hive and the player on a random open tile. A nil generator
// uses the maze settings of cfg, a nil controller never moves, a nil logger
// discards everything.
func NewWorld(cfg *Config, gen MazeGenerator, ctrl Controller, logger golog.Logger) (*World, error) {
	if cfg == nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, "nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	own := *cfg
	cfg = &own
	if gen == nil {
		gen = maze.NewGenerator(cfg.Maze)
	}
	if ctrl == nil {
		ctrl = idleController{}
	}
	if logger == nil {
		logger = golog.DiscardLogger
	}

	g, err := graph.New(cfg.Cols, cfg.Rows, cfg.TileSize, cfg.Origin())
	if err != nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, err.Error())
	}
	if err := gen.Generate(g); err != nil {
		return nil, errors.Wrap(err, "generate maze")
	}

	w := &World{
		RunID:      uuid.New(),
		cfg:        cfg,
		logger:     logger,
		controller: ctrl,
		graph:      g,
		flow:       flowfield.NewEngine(g),
		halton:     halton.NewSequencer(cfg.HaltonStart),
		rng:        rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x5851f42d4c957f2d)),
		grid:       newNeighbourGrid(math.Max(cfg.SeparationRadius, math.Max(cfg.AlignmentRadius, cfg.CohesionRadius))),
	}

	start, err := g.RandomEmptyTile(w.rng)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidConfiguration, err.Error())
	}
	w.player = newPlayer(w, g.Localize(start))
	field, err := w.flow.Compute(start)
	if err != nil {
		return nil, errors.Wrap(err, "initial flow field")
	}
	if n := field.Reachable(); n < g.Len() {
		logger.Warnf("flow field from %s reaches only %d of %d tiles", start, n, g.Len())
	}

	for h := 0; h < cfg.HiveCount; h++ {
		tile, err := w.halton.NextTile(g)
		if err != nil {
			return nil, errors.Wrapf(err, "place hive %d", h)
		}
		hive := newHive(fmt.Sprintf("Hive-%d", h), g.Localize(tile))
		w.hives = append(w.hives, hive)
		for i := 0; i < cfg.BeesPerHive; i++ {
			b := newBee(w, fmt.Sprintf("Bee-%d-%d", h, i), hive)
			b.update(w, 0)
			w.bees = append(w.bees, b)
		}
	}

	w.bodies = make([]*kinematics.Body, len(w.bees))
	for i, b := range w.bees {
		w.bodies[i] = &b.Body
	}
	w.grid.rebuild(w.bodies)

	logger.Infof("world %s ready: %dx%d tiles, %d hives, %d bees, player at %s",
		w.RunID, g.Cols(), g.Rows(), len(w.hives), len(w.bees), start)
	return w, nil
}

func (w *World) Config() *Config { return w.cfg }
func (w *World) Graph() *graph.Graph { return w.graph }
func (w *World) FlowField() *flowfield.Engine { return w.flow }
func (w *World) Player() *Player { return w.player }
func (w *World) Bees() []*Bee { return w.bees }
func (w *World) Hives() []*Hive { return w.hives }
func (w *World) Status() Status { return w.status }
func (w *World) Elapsed() float64 { return w.elapsed }
func (w *World) Ticks() uint64 { return w.tick }

// Tick advances the simulation by dt seconds: player first, then every bee
// after its flocking forces, then the hives, then hunger and game status.
// It is a no-op once the game is over.
func (w *World) Tick(dt float64) Status {
	if w.status != Running {
		return w.status
	}
	if dt < 0 || math.IsNaN(dt) {
		dt = 0
	}
	w.tick++
	w.elapsed += dt

	if c, ok := w.controller.(Clocked); ok {
		c.Advance(dt)
	}

	w.player.update(w, dt)

	for i, b := range w.bees {
		w.flock(i)
		b.update(w, dt)
		w.grid.move(i, b.Position)
	}

	for _, h := range w.hives {
		h.Integrate(dt)
	}

	if w.cfg.HungerInterval > 0 {
		w.hungerClock += dt
		if w.hungerClock >= w.cfg.HungerInterval {
			w.hungerClock -= w.cfg.HungerInterval
			w.player.Health -= w.cfg.HungerPenalty
			w.logger.Infof("hungry: player loses %.0f health, now %.0f", w.cfg.HungerPenalty, w.player.Health)
		}
	}

	w.updateStatus()
	return w.status
}

// flock applies separation, alignment and cohesion to bee i, reading the
// positions other bees have right now.
func (w *World) flock(i int) {
	b := w.bees[i]
	w.indices = w.grid.nearby(w.indices[:0], b.Position)
	w.neighbors = w.neighbors[:0]
	for _, j := range w.indices {
		w.neighbors = append(w.neighbors, w.bodies[j])
	}

	cfg := w.cfg
	b.ApplyForce(steering.Separate(&b.Body, w.neighbors, cfg.SeparationRadius).Mul(cfg.SeparationWeight))
	b.ApplyForce(steering.Align(&b.Body, w.neighbors, cfg.AlignmentRadius).Mul(cfg.AlignmentWeight))
	b.ApplyForce(steering.Cohesion(&b.Body, w.neighbors, cfg.CohesionRadius).Mul(cfg.CohesionWeight))
}

// integrate moves a body, keeps it inside the grid and, when enabled, stops
// it at maze walls one axis at a time.
func (w *World) integrate(b *kinematics.Body, dt float64) {
	before := b.Position
	b.Integrate(dt)
	b.Position = w.graph.Clamp(b.Position)
	if w.cfg.WallCollision {
		w.blockWalls(b, before)
	}
}

func (w *World) blockWalls(b *kinematics.Body, before geometry.Vector3D) {
	from, err := w.graph.Quantize(before)
	if err != nil {
		return
	}
	after := b.Position

	// x first, z along the resolved x
	xOnly := geometry.Vector3D{X: after.X, Y: after.Y, Z: before.Z}
	if t, err := w.graph.Quantize(xOnly); err == nil && t != from && !from.HasEdgeTo(t.X, t.Z) {
		after.X = before.X
		b.Velocity.X = 0
	}
	xTile, err := w.graph.Quantize(geometry.Vector3D{X: after.X, Z: before.Z})
	if err != nil {
		xTile = from
	}
	if t, err := w.graph.Quantize(after); err == nil && t != xTile && !xTile.HasEdgeTo(t.X, t.Z) {
		after.Z = before.Z
		b.Velocity.Z = 0
	}
	b.Position = after
}

func (w *World) updateStatus() {
	p := w.player
	switch {
	case p.Health <= 0:
		p.Health = 0
		w.status = Lost
		w.logger.Infof("game over after %.1fs: the player starved or was stung to death", w.elapsed)
	case p.Health >= w.cfg.MaxHealth:
		p.Health = w.cfg.MaxHealth
		w.status = Won
		w.logger.Infof("won after %.1fs: the player stored enough food", w.elapsed)
	}
}

// tunables maps the parameters that can change while the game runs.
var tunables = map[string]func(c *Config) *float64{
	"separationWeight": func(c *Config) *float64 { return &c.SeparationWeight },
	"alignmentWeight":  func(c *Config) *float64 { return &c.AlignmentWeight },
	"cohesionWeight":   func(c *Config) *float64 { return &c.CohesionWeight },
	"chaseForceScale":  func(c *Config) *float64 { return &c.ChaseForceScale },
	"pushForce":        func(c *Config) *float64 { return &c.PushForce },
	"giveUpCost":       func(c *Config) *float64 { return &c.GiveUpCost },
}

// Tune updates a live steering parameter by its JSON name.
func (w *World) Tune(name string, value float64) error {
	field, ok := tunables[name]
	if !ok {
		return errors.Errorf("unknown tunable %q", name)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return errors.Errorf("tunable %q: invalid value %v", name, value)
	}
	*field(w.cfg) = value
	return nil
}
