package simulation

import (
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/kinematics"
)

// Hive is the rally point of a group of bees. It never moves by itself,
// only relocates, once per full cycle of GroupSize bee transitions.
type Hive struct {
	ID string
	kinematics.Body
	IsPickedUp  bool
	Count       int
	Relocations int
}

func newHive(id string, position geometry.Vector3D) *Hive {
	return &Hive{
		ID:   id,
		Body: *kinematics.NewBody(position, 1, 0, 0),
	}
}

// relocate moves the hive and restores its food.
func (h *Hive) relocate(position geometry.Vector3D) {
	h.Position = position
	h.Stop()
	h.IsPickedUp = false
	h.Relocations++
}

// enterTransition advances the cycle counter, wrapping at groupSize.
func (h *Hive) enterTransition(groupSize int) {
	h.Count++
	if h.Count >= groupSize {
		h.Count = 0
	}
}
