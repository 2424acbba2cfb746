package simulation

import (
	"slices"
	"testing"

	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-maze-chase/pkg/kinematics"
)

func bodiesAt(points ...[2]float64) []*kinematics.Body {
	out := make([]*kinematics.Body, 0, len(points))
	for _, p := range points {
		out = append(out, kinematics.NewBody(geometry.NewPlanar(p[0], p[1]), 1, 1, 0))
	}
	return out
}

func TestNeighbourGrid_rebuild(t *testing.T) {
	// cell size 100
	g := newNeighbourGrid(100)
	bodies := bodiesAt(
		[2]float64{50, 50},   // 0,0
		[2]float64{150, 50},  // 1,0
		[2]float64{50, 150},  // 0,1
		[2]float64{-50, -50}, // -1,-1
	)
	g.rebuild(bodies)

	tests := []struct {
		key  gridKey
		want []int
	}{
		{gridKey{x: 0, z: 0}, []int{0}},
		{gridKey{x: 1, z: 0}, []int{1}},
		{gridKey{x: 0, z: 1}, []int{2}},
		{gridKey{x: -1, z: -1}, []int{3}},
	}
	for _, tt := range tests {
		if got := g.cells[tt.key]; !slices.Equal(got, tt.want) {
			t.Errorf("cell %v = %v; want %v", tt.key, got, tt.want)
		}
	}
}

func TestNeighbourGrid_nearby(t *testing.T) {
	g := newNeighbourGrid(100)
	bodies := bodiesAt(
		[2]float64{350, 350}, // 3,3 outside
		[2]float64{150, 150}, // 1,1 centre
		[2]float64{50, 50},   // 0,0 corner of the block
	)
	g.rebuild(bodies)

	got := g.nearby(nil, geometry.NewPlanar(150, 150))
	if want := []int{1, 2}; !slices.Equal(got, want) {
		t.Errorf("nearby = %v; want %v", got, want)
	}
}

func TestNeighbourGrid_move(t *testing.T) {
	g := newNeighbourGrid(10)
	bodies := bodiesAt([2]float64{1, 1}, [2]float64{2, 2})
	g.rebuild(bodies)

	bodies[0].Position = geometry.NewPlanar(55, 55)
	g.move(0, bodies[0].Position)

	if got := g.cells[gridKey{0, 0}]; !slices.Equal(got, []int{1}) {
		t.Errorf("old cell = %v; want [1]", got)
	}
	if got := g.cells[gridKey{5, 5}]; !slices.Equal(got, []int{0}) {
		t.Errorf("new cell = %v; want [0]", got)
	}
	if got := g.nearby(nil, geometry.NewPlanar(1, 1)); !slices.Equal(got, []int{1}) {
		t.Errorf("nearby after move = %v; want [1]", got)
	}
}

func BenchmarkNeighbourGrid_rebuild(b *testing.B) {
	points := make([][2]float64, 1000)
	for i := range points {
		points[i] = [2]float64{float64(i % 100), float64(i / 10)}
	}
	bodies := bodiesAt(points...)
	g := newNeighbourGrid(3)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		g.rebuild(bodies)
	}
}

func BenchmarkNeighbourGrid_nearby(b *testing.B) {
	points := make([][2]float64, 1000)
	for i := range points {
		points[i] = [2]float64{float64(i % 100), float64(i / 10)}
	}
	g := newNeighbourGrid(3)
	g.rebuild(bodiesAt(points...))
	dst := make([]int, 0, 64)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		dst = g.nearby(dst[:0], geometry.NewPlanar(50, 50))
	}
}
