package vmath

import (
	"math"
	"testing"
)

func TestCurveEndpoints(t *testing.T) {
	curves := []Curve{CurveLinear, CurveEaseIn, CurveEaseOut, CurveEaseInOut}
	for _, c := range curves {
		if got := c.Apply(0); got != 0 {
			t.Errorf("%s.Apply(0) = %v, want 0", c, got)
		}
		if got := c.Apply(1); got != 1 {
			t.Errorf("%s.Apply(1) = %v, want 1", c, got)
		}
	}
}

func TestCurveClampsInput(t *testing.T) {
	if got := CurveEaseIn.Apply(-3); got != 0 {
		t.Errorf("Apply(-3) = %v, want 0", got)
	}
	if got := CurveEaseOut.Apply(7); got != 1 {
		t.Errorf("Apply(7) = %v, want 1", got)
	}
	if got := CurveLinear.Apply(math.NaN()); got != 0 {
		t.Errorf("Apply(NaN) = %v, want 0", got)
	}
}

func TestCurveMonotonic(t *testing.T) {
	curves := []Curve{CurveLinear, CurveEaseIn, CurveEaseOut, CurveEaseInOut}
	for _, c := range curves {
		prev := 0.0
		for i := 1; i <= 100; i++ {
			v := c.Apply(float64(i) / 100)
			if v < prev-1e-9 {
				t.Fatalf("%s not monotonic at %d: %v < %v", c, i, v, prev)
			}
			prev = v
		}
	}
}

func TestCurveShape(t *testing.T) {
	// Ease-in lags linear, ease-out leads it, ease-in-out is symmetric around the midpoint
	if v := CurveEaseIn.Apply(0.5); v >= 0.5 {
		t.Errorf("ease-in at 0.5 = %v, want < 0.5", v)
	}
	if v := CurveEaseOut.Apply(0.5); v <= 0.5 {
		t.Errorf("ease-out at 0.5 = %v, want > 0.5", v)
	}
	if v := CurveEaseInOut.Apply(0.5); !ApproxEqual(v, 0.5, 1e-4) {
		t.Errorf("ease-in-out at 0.5 = %v, want 0.5", v)
	}
	a := CurveEaseInOut.Apply(0.2)
	b := CurveEaseInOut.Apply(0.8)
	if !ApproxEqual(a+b, 1, 1e-4) {
		t.Errorf("ease-in-out asymmetric: f(0.2)=%v f(0.8)=%v", a, b)
	}
}

func TestParseCurve(t *testing.T) {
	tests := []struct {
		name string
		want Curve
		ok   bool
	}{
		{"linear", CurveLinear, true},
		{"ease-in", CurveEaseIn, true},
		{"easeout", CurveEaseOut, true},
		{"ease-in-out", CurveEaseInOut, true},
		{"bounce", CurveLinear, false},
	}
	for _, tt := range tests {
		got, ok := ParseCurve(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseCurve(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		i, delta, n, want int
	}{
		{0, 1, 3, 1},
		{2, 1, 3, 0},
		{0, -1, 3, 2},
		{0, -4, 3, 2},
		{0, 0, 1, 0},
	}
	for _, tt := range tests {
		if got := Wrap(tt.i, tt.delta, tt.n); got != tt.want {
			t.Errorf("Wrap(%d, %d, %d) = %d, want %d", tt.i, tt.delta, tt.n, got, tt.want)
		}
	}
}
