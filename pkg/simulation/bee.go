package simulation

import (
	"math"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/kinematics"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/steering"
)

const (
	StateInitial    = "Initial"
	StateChasing    = "Chasing"
	StateTransition = "Transition"
)

// Bee guards a hive, chases the player once the food is touched and
// returns to the hive after a sting or when the player got away.
type Bee struct {
	ID string
	kinematics.Body
	Hive *Hive

	fsm Machine[*Bee]

	// pickup countdown in seconds, armed once per stay in Initial
	pickupArmed bool
	pickupTimer float64
}

func newBee(w *World, id string, hive *Hive) *Bee {
	b := &Bee{
		ID:   id,
		Body: *kinematics.NewBody(hive.Position, w.cfg.BeeMass, w.cfg.BeeChaseSpeed, w.cfg.BeeFriction),
		Hive: hive,
	}
	b.switchState(w, initialState{})
	return b
}

func (b *Bee) switchState(w *World, next State[*Bee]) {
	w.logger.Debugf("[%s] %s -> %s", b.ID, b.fsm.Name(), next.Name())
	b.fsm.Switch(b, w, next)
}

func (b *Bee) StateName() string { return b.fsm.Name() }

func (b *Bee) update(w *World, dt float64) {
	b.fsm.Update(b, w, dt)
	w.integrate(&b.Body, dt)
}

// touches compares planar coordinates axis by axis, never tile identity.
func touches(a, b geometry.Vector3D, threshold float64) bool {
	return math.Abs(a.X-b.X) < threshold && math.Abs(a.Z-b.Z) < threshold
}

type initialState struct{}

func (initialState) Name() string { return StateInitial }

func (initialState) Enter(b *Bee, _ *World) {
	b.TopSpeed = 0
	b.pickupArmed = false
	b.pickupTimer = 0
}

func (initialState) Update(b *Bee, w *World, dt float64) {
	if !b.pickupArmed {
		if touches(b.Position, w.player.Position, w.cfg.ProximityThreshold()) {
			b.pickupArmed = true
			b.pickupTimer = w.cfg.PickupDelay
		}
		return
	}

	b.pickupTimer -= dt
	if b.pickupTimer > 0 {
		return
	}
	// every bee of the hive may count down, the flag grants the food once
	if !b.Hive.IsPickedUp {
		b.Hive.IsPickedUp = true
		w.player.Health += w.cfg.FoodHealth
		w.logger.Infof("[%s] food picked at %s, health %.0f", b.Hive.ID, b.Hive.Position, w.player.Health)
	}
	b.switchState(w, chasingState{})
}

type chasingState struct{}

func (chasingState) Name() string { return StateChasing }

func (chasingState) Enter(b *Bee, w *World) {
	b.TopSpeed = w.cfg.BeeChaseSpeed
}

func (chasingState) Update(b *Bee, w *World, _ float64) {
	tile, _ := w.graph.Quantize(b.Position)
	if steer, ok := steering.FollowFlowField(&b.Body, w.flow.Field(), tile, w.player.Position); ok {
		b.ApplyForce(steer.Mul(w.cfg.ChaseForceScale))
	}

	if touches(b.Position, w.player.Position, w.cfg.ProximityThreshold()) {
		w.player.Health -= w.cfg.StingDamage
		w.logger.Infof("[%s] stung the player, health %.0f", b.ID, w.player.Health)
		b.switchState(w, transitionState{})
		return
	}

	// no path counts as outran
	cost, err := w.flow.HeatmapValue(tile)
	if err != nil || cost > w.cfg.GiveUpCost {
		b.switchState(w, transitionState{})
	}
}

type transitionState struct{}

func (transitionState) Name() string { return StateTransition }

func (transitionState) Enter(*Bee, *World) {}

func (transitionState) Update(b *Bee, w *World, _ float64) {
	hive := b.Hive
	if hive.Count == 0 {
		tile, err := w.halton.NextTile(w.graph)
		if err != nil {
			w.logger.Warnf("[%s] relocation skipped: %v", hive.ID, err)
		} else {
			hive.relocate(w.graph.Localize(tile))
			w.logger.Infof("[%s] relocated to %s, halton index now %d", hive.ID, tile, w.halton.Index())
		}
	}

	b.Position = hive.Position
	b.Stop()
	b.TopSpeed = 0
	hive.enterTransition(w.cfg.GroupSize)

	b.switchState(w, initialState{})
}
