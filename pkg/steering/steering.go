// Package steering computes Reynolds-style steering forces:
// steer = desired velocity - current velocity.
// Every function reads the body and its neighbours, none of them mutates.
package steering

import (
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/flowfield"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/graph"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/kinematics"
)

// Seek steers towards target at full top speed.
func Seek(b *kinematics.Body, target geometry.Vector3D) geometry.Vector3D {
	desired := target.Sub(b.Position).SetLength(b.TopSpeed)
	return desired.Sub(b.Velocity)
}

// Arrive is Seek with a linear slow down inside radius.
func Arrive(b *kinematics.Body, target geometry.Vector3D, radius float64) geometry.Vector3D {
	desired := target.Sub(b.Position)
	distance := desired.Len()
	speed := b.TopSpeed
	if distance < radius {
		speed = distance / radius * b.TopSpeed
	}
	return desired.SetLength(speed).Sub(b.Velocity)
}

// Separate steers away from neighbours closer than desiredSeparation.
// It returns the zero vector when nobody is that close.
func Separate(b *kinematics.Body, neighbors []*kinematics.Body, desiredSeparation float64) geometry.Vector3D {
	var sum geometry.Vector3D
	count := 0
	for _, other := range neighbors {
		d := b.Position.DistanceTo(other.Position)
		if d < desiredSeparation && d != 0 {
			sum = sum.Add(b.Position.Sub(other.Position).Normalize())
			count++
		}
	}
	if count == 0 {
		return geometry.Zero
	}
	average := sum.Mul(1 / float64(count))
	return average.SetLength(b.TopSpeed).Sub(b.Velocity)
}

// Align steers towards the average heading of neighbours within range.
func Align(b *kinematics.Body, neighbors []*kinematics.Body, neighbourDistance float64) geometry.Vector3D {
	var sum geometry.Vector3D
	count := 0
	for _, other := range neighbors {
		d := b.Position.DistanceTo(other.Position)
		if d < neighbourDistance && d != 0 {
			sum = sum.Add(other.Velocity)
			count++
		}
	}
	if count == 0 {
		return geometry.Zero
	}
	average := sum.Mul(1 / float64(count))
	return average.SetLength(b.TopSpeed).Sub(b.Velocity)
}

// Cohesion seeks the centre of the neighbours within range.
func Cohesion(b *kinematics.Body, neighbors []*kinematics.Body, neighbourDistance float64) geometry.Vector3D {
	var sum geometry.Vector3D
	count := 0
	for _, other := range neighbors {
		d := b.Position.DistanceTo(other.Position)
		if d < neighbourDistance && d != 0 {
			sum = sum.Add(other.Position)
			count++
		}
	}
	if count == 0 {
		return geometry.Zero
	}
	return Seek(b, sum.Mul(1/float64(count)))
}

// FollowFlowField follows the field direction of tile until tile is a goal,
// then seeks target directly. ok is false when the field has no path from
// tile, in which case the body gets no steering contribution.
func FollowFlowField(b *kinematics.Body, field *flowfield.Field, tile *graph.Tile, target geometry.Vector3D) (steer geometry.Vector3D, ok bool) {
	if field == nil || tile == nil {
		return geometry.Zero, false
	}
	if field.IsGoal(tile) {
		return Seek(b, target), true
	}
	dir, err := field.FlowDirection(tile)
	if err != nil {
		return geometry.Zero, false
	}
	return dir.SetLength(b.TopSpeed).Sub(b.Velocity), true
}
