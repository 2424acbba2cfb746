package simulation

import (
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"google.golang.org/protobuf/types/known/structpb"
)

// Openings of a tile, one bit per cardinal edge.
const (
	OpenWest uint8 = 1 << iota
	OpenEast
	OpenNorth // -z
	OpenSouth // +z
)

type AgentSnapshot struct {
	ID       string            `json:"id"`
	Kind     string            `json:"kind"`
	Position geometry.Vector3D `json:"position"`
	Velocity geometry.Vector3D `json:"velocity"`
	State    string            `json:"state"`
	// seconds of simulated time since the last state switch
	TimeInState float64 `json:"timeInState"`
	Health      float64 `json:"health,omitempty"`
}

type HiveSnapshot struct {
	ID          string            `json:"id"`
	Position    geometry.Vector3D `json:"position"`
	IsPickedUp  bool              `json:"isPickedUp"`
	Count       int               `json:"count"`
	Relocations int               `json:"relocations"`
}

// Snapshot is the public state of a world after a tick. It shares nothing
// with the world and can be handed to another goroutine.
type Snapshot struct {
	RunID   string  `json:"runId"`
	Tick    uint64  `json:"tick"`
	Elapsed float64 `json:"elapsed"`
	Status  Status  `json:"status"`

	Cols      int               `json:"cols"`
	Rows      int               `json:"rows"`
	TileSize  float64           `json:"tileSize"`
	Origin    geometry.Vector3D `json:"origin"`
	MaxHealth float64           `json:"maxHealth"`

	Player AgentSnapshot   `json:"player"`
	Bees   []AgentSnapshot `json:"bees"`
	Hives  []HiveSnapshot  `json:"hives"`

	// Per tile, indexed by tile ID. Heatmap holds -1 where there is no path;
	// it is meant for debug drawing only.
	Heatmap  []float64 `json:"heatmap"`
	Openings []uint8   `json:"openings"`
	Goals    []int     `json:"goals"`
	// completed flow field computations since the world was built
	FlowRecomputes int `json:"flowRecomputes"`
}

// Snapshot copies the public state of w.
func (w *World) Snapshot() *Snapshot {
	g := w.graph
	s := &Snapshot{
		RunID:     w.RunID.String(),
		Tick:      w.tick,
		Elapsed:   w.elapsed,
		Status:    w.status,
		Cols:      g.Cols(),
		Rows:      g.Rows(),
		TileSize:  g.TileSize(),
		Origin:    g.Origin(),
		MaxHealth: w.cfg.MaxHealth,
		Player: AgentSnapshot{
			ID:          w.player.ID,
			Kind:        "player",
			Position:    w.player.Position,
			Velocity:    w.player.Velocity,
			State:       w.player.StateName(),
			TimeInState: w.player.fsm.TimeInState(),
			Health:      w.player.Health,
		},
		Bees:     make([]AgentSnapshot, 0, len(w.bees)),
		Hives:    make([]HiveSnapshot, 0, len(w.hives)),
		Heatmap:  make([]float64, g.Len()),
		Openings: make([]uint8, g.Len()),

		FlowRecomputes: w.flow.Recomputes(),
	}

	for _, b := range w.bees {
		s.Bees = append(s.Bees, AgentSnapshot{
			ID:          b.ID,
			Kind:        "bee",
			Position:    b.Position,
			Velocity:    b.Velocity,
			State:       b.StateName(),
			TimeInState: b.fsm.TimeInState(),
		})
	}
	for _, h := range w.hives {
		s.Hives = append(s.Hives, HiveSnapshot{
			ID:          h.ID,
			Position:    h.Position,
			IsPickedUp:  h.IsPickedUp,
			Count:       h.Count,
			Relocations: h.Relocations,
		})
	}

	field := w.flow.Field()
	for _, t := range g.Tiles() {
		s.Heatmap[t.ID] = -1
		if field != nil {
			if cost, err := field.HeatmapValue(t); err == nil {
				s.Heatmap[t.ID] = cost
			}
		}
		var open uint8
		for _, e := range t.Edges {
			switch {
			case e.To.X == t.X-1 && e.To.Z == t.Z:
				open |= OpenWest
			case e.To.X == t.X+1 && e.To.Z == t.Z:
				open |= OpenEast
			case e.To.Z == t.Z-1 && e.To.X == t.X:
				open |= OpenNorth
			case e.To.Z == t.Z+1 && e.To.X == t.X:
				open |= OpenSouth
			}
		}
		s.Openings[t.ID] = open
	}
	if field != nil {
		for _, goal := range field.Goals() {
			s.Goals = append(s.Goals, goal.ID)
		}
	}
	return s
}

func vectorValue(v geometry.Vector3D) map[string]interface{} {
	return map[string]interface{}{"x": v.X, "y": v.Y, "z": v.Z}
}

func (a AgentSnapshot) toMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":          a.ID,
		"kind":        a.Kind,
		"position":    vectorValue(a.Position),
		"velocity":    vectorValue(a.Velocity),
		"state":       a.State,
		"timeInState": a.TimeInState,
	}
	if a.Kind == "player" {
		m["health"] = a.Health
	}
	return m
}

// ToProto encodes the snapshot as a protobuf Struct, the reply format of
// the world actor.
func (s *Snapshot) ToProto() (*structpb.Struct, error) {
	bees := make([]interface{}, 0, len(s.Bees))
	for _, b := range s.Bees {
		bees = append(bees, b.toMap())
	}
	hives := make([]interface{}, 0, len(s.Hives))
	for _, h := range s.Hives {
		hives = append(hives, map[string]interface{}{
			"id":          h.ID,
			"position":    vectorValue(h.Position),
			"isPickedUp":  h.IsPickedUp,
			"count":       h.Count,
			"relocations": h.Relocations,
		})
	}
	heatmap := make([]interface{}, len(s.Heatmap))
	for i, c := range s.Heatmap {
		heatmap[i] = c
	}
	goals := make([]interface{}, len(s.Goals))
	for i, id := range s.Goals {
		goals[i] = id
	}

	return structpb.NewStruct(map[string]interface{}{
		"runId":     s.RunID,
		"tick":      s.Tick,
		"elapsed":   s.Elapsed,
		"status":    s.Status.String(),
		"cols":      s.Cols,
		"rows":      s.Rows,
		"tileSize":  s.TileSize,
		"origin":    vectorValue(s.Origin),
		"maxHealth": s.MaxHealth,
		"player":    s.Player.toMap(),
		"bees":      bees,
		"hives":     hives,
		"heatmap":   heatmap,
		"goals":     goals,

		"flowRecomputes": s.FlowRecomputes,
	})
}
