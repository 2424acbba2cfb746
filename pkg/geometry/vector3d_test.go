package geometry

import (
	"math"
	"testing"
)

// floatEquals is a helper for testing scalar float values with epsilon.
func floatEquals(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon
}

func TestNewPlanar(t *testing.T) {
	p := NewPlanar(4, 5)
	if p.X != 4 || p.Y != 0 || p.Z != 5 {
		t.Errorf("NewPlanar(4, 5) = %v; want (4, 0, 5)", p)
	}
}

func TestVector_String(t *testing.T) {
	v := Vector3D{1.234, 0, 5.678}
	want := "(1.23, 0.00, 5.68)"
	if got := v.String(); got != want {
		t.Errorf("Vector3D.String() = %q; want %q", got, want)
	}
}

func TestVector_Arithmetic(t *testing.T) {
	v1 := Vector3D{1, 2, 3}
	v2 := Vector3D{3, 4, 5}

	t.Run("Add", func(t *testing.T) {
		want := Vector3D{4, 6, 8}
		if got := v1.Add(v2); !got.Eq(want) {
			t.Errorf("%v.Add(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Sub", func(t *testing.T) {
		want := Vector3D{-2, -2, -2}
		if got := v1.Sub(v2); !got.Eq(want) {
			t.Errorf("%v.Sub(%v) = %v; want %v", v1, v2, got, want)
		}
	})

	t.Run("Mul", func(t *testing.T) {
		want := Vector3D{2, 4, 6}
		if got := v1.Mul(2); !got.Eq(want) {
			t.Errorf("%v.Mul(2) = %v; want %v", v1, got, want)
		}
	})
}

func TestVector_Magnitude(t *testing.T) {
	v := Vector3D{X: 3, Z: 4}

	t.Run("Len", func(t *testing.T) {
		if got := v.Len(); got != 5 {
			t.Errorf("Len = %v; want 5", got)
		}
	})

	t.Run("LenSqr", func(t *testing.T) {
		if got := v.LenSqr(); got != 25 {
			t.Errorf("LenSqr = %v; want 25", got)
		}
	})

	t.Run("Normalize", func(t *testing.T) {
		got := v.Normalize()
		want := Vector3D{X: 0.6, Z: 0.8}
		if !got.Eq(want) {
			t.Errorf("Normalize = %v; want %v", got, want)
		}
		if !floatEquals(got.Len(), 1.0) {
			t.Errorf("Normalize length = %v; want 1", got.Len())
		}
	})

	t.Run("NormalizeZero", func(t *testing.T) {
		if got := Zero.Normalize(); !got.Eq(Zero) {
			t.Errorf("Normalize(0) = %v; want zero", got)
		}
	})

	t.Run("SetLength", func(t *testing.T) {
		got := v.SetLength(10)
		want := Vector3D{X: 6, Z: 8}
		if !got.Eq(want) {
			t.Errorf("SetLength(10) = %v; want %v", got, want)
		}
		if got := Zero.SetLength(10); !got.Eq(Zero) {
			t.Errorf("Zero.SetLength(10) = %v; want zero", got)
		}
	})

	t.Run("ClampLength", func(t *testing.T) {
		if got := v.ClampLength(10); !got.Eq(v) {
			t.Errorf("ClampLength(10) = %v; want unchanged %v", got, v)
		}
		if got := v.ClampLength(1); !floatEquals(got.Len(), 1) {
			t.Errorf("ClampLength(1) length = %v; want 1", got.Len())
		}
		if got := v.ClampLength(0); !got.Eq(Zero) {
			t.Errorf("ClampLength(0) = %v; want zero", got)
		}
	})
}

func TestVector_Distance(t *testing.T) {
	v1 := Vector3D{1, 0, 1}
	v2 := Vector3D{4, 0, 5}

	if got := v1.DistanceTo(v2); got != 5 {
		t.Errorf("DistanceTo = %v; want 5", got)
	}
	lifted := Vector3D{4, 10, 5}
	if got := lifted.Planar(); got.Y != 0 {
		t.Errorf("Planar() kept y = %v", got.Y)
	}
}

func TestVector_Heading(t *testing.T) {
	tests := []struct {
		v    Vector3D
		want float64
	}{
		{Vector3D{X: 1}, 0},
		{Vector3D{Z: 1}, math.Pi / 2},
		{Vector3D{X: -1}, math.Pi},
		{Vector3D{Z: -1}, -math.Pi / 2},
	}
	for _, tt := range tests {
		if got := tt.v.Heading(); !floatEquals(got, tt.want) {
			t.Errorf("%v.Heading() = %v; want %v", tt.v, got, tt.want)
		}
	}
}

func TestVector_Eq(t *testing.T) {
	v := Vector3D{1, 2, 3}

	if !v.Eq(Vector3D{1, 2, 3}) {
		t.Error("Eq exact match failed")
	}

	vClose := Vector3D{1 + Epsilon/2, 2 - Epsilon/2, 3}
	if !v.Eq(vClose) {
		t.Error("Eq epsilon match failed")
	}

	if v.Eq(Vector3D{1.1, 2, 3}) {
		t.Error("Eq mismatch failed")
	}
	if !(Vector3D{X: Epsilon / 10}).IsZero() {
		t.Error("IsZero failed for sub-epsilon vector")
	}
}
