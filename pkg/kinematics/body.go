// Package kinematics integrates force, velocity and position of agents moving
// on the x/z plane.
package kinematics

import (
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
)

// Body is the kinematic state shared by every moving agent.
// A Body with TopSpeed 0 stays where it is whatever the force applied.
type Body struct {
	Position     geometry.Vector3D
	Velocity     geometry.Vector3D
	Acceleration geometry.Vector3D

	Mass              float64
	TopSpeed          float64
	FrictionMagnitude float64
}

func NewBody(position geometry.Vector3D, mass, topSpeed, friction float64) *Body {
	return &Body{
		Position:          position,
		Mass:              mass,
		TopSpeed:          topSpeed,
		FrictionMagnitude: friction,
	}
}

// ApplyForce accumulates force/mass into the acceleration.
// Massless bodies ignore forces.
func (b *Body) ApplyForce(force geometry.Vector3D) {
	if b.Mass <= 0 {
		return
	}
	b.Acceleration = b.Acceleration.Add(force.Mul(1 / b.Mass))
}

// Integrate advances the body by dt seconds:
// v = clamp(v + a*dt, topSpeed) - friction*dt, p = p + v*dt, a = 0
func (b *Body) Integrate(dt float64) {
	if dt <= 0 {
		b.Velocity = b.Velocity.ClampLength(b.TopSpeed)
		b.Acceleration = geometry.Zero
		return
	}
	v := b.Velocity.Add(b.Acceleration.Mul(dt)).ClampLength(b.TopSpeed)

	if speed := v.Len(); speed > 0 && b.FrictionMagnitude > 0 {
		// friction only slows down, never flips the heading
		drop := b.FrictionMagnitude * dt
		if drop >= speed {
			v = geometry.Zero
		} else {
			v = v.SetLength(speed - drop)
		}
	}

	b.Velocity = v
	b.Position = b.Position.Add(v.Mul(dt))
	b.Acceleration = geometry.Zero
}

// Stop zeroes velocity and pending acceleration.
func (b *Body) Stop() {
	b.Velocity = geometry.Zero
	b.Acceleration = geometry.Zero
}

func (b *Body) Speed() float64 { return b.Velocity.Len() }
