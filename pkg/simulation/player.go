package simulation

import (
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/kinematics"
)

const (
	StateIdle   = "Idle"
	StateMoving = "Moving"
)

// Player is the bear steered by the Controller.
type Player struct {
	ID string
	kinematics.Body
	Health float64

	fsm Machine[*Player]
}

func newPlayer(w *World, position geometry.Vector3D) *Player {
	p := &Player{
		ID:     "Player",
		Body:   *kinematics.NewBody(position, w.cfg.PlayerMass, w.cfg.PlayerTopSpeed, w.cfg.PlayerFriction),
		Health: w.cfg.StartHealth,
	}
	p.switchState(w, idleState{})
	return p
}

func (p *Player) switchState(w *World, next State[*Player]) {
	w.logger.Debugf("[%s] %s -> %s", p.ID, p.fsm.Name(), next.Name())
	p.fsm.Switch(p, w, next)
}

func (p *Player) StateName() string { return p.fsm.Name() }

func (p *Player) update(w *World, dt float64) {
	p.fsm.Update(p, w, dt)
	w.integrate(&p.Body, dt)
}

type idleState struct{}

func (idleState) Name() string { return StateIdle }

func (idleState) Enter(p *Player, _ *World) {
	p.Velocity.X = 0
	p.Velocity.Z = 0
}

func (idleState) Update(p *Player, w *World, _ float64) {
	if w.controller.MovingIntent() {
		p.switchState(w, movingState{})
	}
}

type movingState struct{}

func (movingState) Name() string { return StateMoving }

func (movingState) Enter(*Player, *World) {}

func (movingState) Update(p *Player, w *World, _ float64) {
	if !w.controller.MovingIntent() {
		p.switchState(w, idleState{})
		return
	}
	if tile, err := w.graph.Quantize(p.Position); err == nil {
		if _, err := w.flow.Retarget(tile); err != nil {
			w.logger.Warnf("[%s] flow field retarget on %s: %v", p.ID, tile, err)
		}
	}
	p.ApplyForce(w.controller.Direction().SetLength(w.cfg.PushForce))
}
