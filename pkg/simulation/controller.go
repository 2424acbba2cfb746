package simulation

import (
	"sync"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
)

// Controller is the player input polled once per tick.
type Controller interface {
	MovingIntent() bool
	// Direction is a unit vector, zero when idle.
	Direction() geometry.Vector3D
}

// Clocked controllers are advanced by the world before each tick.
type Clocked interface {
	Advance(dt float64)
}

// idleController never moves.
type idleController struct{}

func (idleController) MovingIntent() bool { return false }
func (idleController) Direction() geometry.Vector3D { return geometry.Zero }

// ManualController latches the last input it was given. Input may come from
// another goroutine than the one ticking the world.
type ManualController struct {
	mu        sync.RWMutex
	moving    bool
	direction geometry.Vector3D
}

func NewManualController() *ManualController {
	return &ManualController{}
}

// Set latches a direction on the x/z plane. A zero direction means idle.
func (c *ManualController) Set(direction geometry.Vector3D) {
	dir := direction.Planar().Normalize()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.direction = dir
	c.moving = !dir.IsZero()
}

func (c *ManualController) MovingIntent() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.moving
}

func (c *ManualController) Direction() geometry.Vector3D {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.direction
}

// ScriptStep holds a direction for Duration seconds of simulated time.
type ScriptStep struct {
	Direction geometry.Vector3D `json:"direction"`
	Duration  float64           `json:"duration"`
}

// ScriptedController replays steps in order, then stays idle.
// Loop restarts the script once it is exhausted.
type ScriptedController struct {
	Steps []ScriptStep
	Loop  bool

	index   int
	elapsed float64
}

func NewScriptedController(loop bool, steps ...ScriptStep) *ScriptedController {
	return &ScriptedController{Steps: steps, Loop: loop}
}

func (c *ScriptedController) current() (ScriptStep, bool) {
	if c.index >= len(c.Steps) {
		return ScriptStep{}, false
	}
	return c.Steps[c.index], true
}

func (c *ScriptedController) MovingIntent() bool {
	step, ok := c.current()
	return ok && !step.Direction.Planar().IsZero()
}

func (c *ScriptedController) Direction() geometry.Vector3D {
	step, ok := c.current()
	if !ok {
		return geometry.Zero
	}
	return step.Direction.Planar().Normalize()
}

// Advance moves the script forward by dt seconds.
func (c *ScriptedController) Advance(dt float64) {
	if len(c.Steps) == 0 {
		return
	}
	c.elapsed += dt
	for c.index < len(c.Steps) && c.elapsed >= c.Steps[c.index].Duration {
		c.elapsed -= c.Steps[c.index].Duration
		c.index++
		if c.index == len(c.Steps) && c.Loop {
			c.index = 0
			if c.totalDuration() <= 0 {
				return
			}
		}
	}
}

func (c *ScriptedController) totalDuration() float64 {
	total := 0.0
	for _, s := range c.Steps {
		total += s.Duration
	}
	return total
}

// Done reports whether a non looping script has run out.
func (c *ScriptedController) Done() bool {
	return !c.Loop && c.index >= len(c.Steps)
}
