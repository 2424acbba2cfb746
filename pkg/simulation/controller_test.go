package simulation

import (
	"testing"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
)

func TestManualController(t *testing.T) {
	c := NewManualController()
	if c.MovingIntent() {
		t.Fatal("a new controller must be idle")
	}
	c.Set(geometry.Vector3D{X: 3, Y: 7, Z: 4})
	if !c.MovingIntent() {
		t.Error("expected moving intent")
	}
	if want := (geometry.Vector3D{X: 0.6, Z: 0.8}); !c.Direction().Eq(want) {
		t.Errorf("Direction() = %v; want %v", c.Direction(), want)
	}
	c.Set(geometry.Zero)
	if c.MovingIntent() || !c.Direction().IsZero() {
		t.Errorf("zero input must stop: %v %v", c.MovingIntent(), c.Direction())
	}
}

func TestScriptedController(t *testing.T) {
	c := NewScriptedController(false,
		ScriptStep{Direction: geometry.Vector3D{X: 2}, Duration: 1},
		ScriptStep{Duration: 0.5},
		ScriptStep{Direction: geometry.Vector3D{Z: -1}, Duration: 1},
	)
	tests := []struct {
		advance float64
		moving  bool
		dir     geometry.Vector3D
	}{
		{0, true, geometry.Vector3D{X: 1}},
		{0.9, true, geometry.Vector3D{X: 1}},
		{0.2, false, geometry.Zero},
		{0.4, true, geometry.Vector3D{Z: -1}},
		{1, false, geometry.Zero},
	}
	for i, tt := range tests {
		c.Advance(tt.advance)
		if c.MovingIntent() != tt.moving {
			t.Errorf("step %d: MovingIntent() = %v; want %v", i, c.MovingIntent(), tt.moving)
		}
		if !c.Direction().Eq(tt.dir) {
			t.Errorf("step %d: Direction() = %v; want %v", i, c.Direction(), tt.dir)
		}
	}
	if !c.Done() {
		t.Error("script should be done")
	}
}

func TestScriptedController_Loop(t *testing.T) {
	c := NewScriptedController(true,
		ScriptStep{Direction: geometry.Vector3D{X: 1}, Duration: 1},
		ScriptStep{Direction: geometry.Vector3D{X: -1}, Duration: 1},
	)
	c.Advance(2.5)
	if !c.Direction().Eq(geometry.Vector3D{X: 1}) {
		t.Errorf("Direction() = %v; want (1, 0, 0) after wrapping", c.Direction())
	}
	if c.Done() {
		t.Error("a looping script is never done")
	}

	zero := NewScriptedController(true, ScriptStep{Duration: 0})
	zero.Advance(1) // must not spin forever
}
