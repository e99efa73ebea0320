package geometry

import (
	"math"
	"testing"
)

func TestVec_Norm(t *testing.T) {
	tests := []struct {
		v        Vec
		expected float64
	}{
		{V(3, 4), 5.0},
		{V(1, 0), 1.0},
		{V(0, 0), 0.0},
		{V(-3, -4), 5.0},
	}

	for _, tt := range tests {
		if got := tt.v.Norm(); math.Abs(got-tt.expected) > 1e-12 {
			t.Errorf("Norm(%v) = %v, want %v", tt.v, got, tt.expected)
		}
	}
}

func TestVec_Arithmetic(t *testing.T) {
	a := V(1, 2)
	b := V(4, 6)

	if got := a.Add(b); got != V(5, 8) {
		t.Errorf("Add failed: got %v", got)
	}
	if got := b.Sub(a); got != V(3, 4) {
		t.Errorf("Sub failed: got %v", got)
	}
	if got := a.Scale(2); got != V(2, 4) {
		t.Errorf("Scale failed: got %v", got)
	}
	if got := a.Dist(b); got != 5 {
		t.Errorf("Dist failed: got %v", got)
	}
}

func TestVec_IsFinite(t *testing.T) {
	tests := []struct {
		name  string
		v     Vec
		valid bool
	}{
		{"zero", V(0, 0), true},
		{"normal", V(1, -2), true},
		{"NaN", V(math.NaN(), 0), false},
		{"+Inf", V(0, math.Inf(1)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.IsFinite(); got != tt.valid {
				t.Errorf("IsFinite() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestVec_WithLength(t *testing.T) {
	v := V(10, 0).WithLength(2)
	if v != V(2, 0) {
		t.Errorf("expected (2,0), got %v", v)
	}
	if z := (Vec{}).WithLength(5); z != (Vec{}) {
		t.Errorf("zero vector should stay zero, got %v", z)
	}
}

func TestRotateAbout(t *testing.T) {
	p := RotateAbout(V(2, 1), V(1, 1), math.Pi)
	if math.Abs(p.X-0) > 1e-12 || math.Abs(p.Y-1) > 1e-12 {
		t.Errorf("expected (0,1), got %v", p)
	}
}

func TestArrowTips(t *testing.T) {
	// Line travelling along +x: ticks should trail back towards -x.
	tips := ArrowTips(V(0, 0), V(1, 0), 20, math.Pi/4)

	for i, s := range tips {
		if math.Abs(s.Length()-20) > 1e-9 {
			t.Errorf("tick %d length = %v, want 20", i, s.Length())
		}
		if s.To.X >= 0 {
			t.Errorf("tick %d should point backwards, got %v", i, s.To)
		}
	}
	if math.Abs(tips[0].To.Y+tips[1].To.Y) > 1e-9 {
		t.Errorf("ticks should be mirror images, got %v and %v", tips[0].To, tips[1].To)
	}
}

func TestBounds(t *testing.T) {
	b := EmptyBounds()
	if !b.Empty() {
		t.Fatal("expected empty bounds")
	}
	b = b.Extend(V(1, 2)).Extend(V(-1, 5))
	if b.Min != V(-1, 2) || b.Max != V(1, 5) {
		t.Errorf("unexpected bounds %+v", b)
	}

	p := V(3, 3)
	flat := EmptyBounds().Extend(p).Pad(0)
	if flat.Width() != 1 || flat.Height() != 1 {
		t.Errorf("degenerate bounds should widen to 1, got %vx%v", flat.Width(), flat.Height())
	}
}
