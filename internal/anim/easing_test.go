package anim

import (
	"testing"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
)

func TestEasingEndpoints(t *testing.T) {
	curves := []kirtree.EasingType{
		kirtree.EasingLinear, kirtree.EasingEaseIn, kirtree.EasingEaseOut, kirtree.EasingEaseInOut,
	}
	for _, c := range curves {
		e := kirtree.Easing{Type: c}
		if Eval(e, 0) != 0 {
			t.Errorf("curve %v: Eval(0) != 0", c)
		}
		if Eval(e, 1) != 1 {
			t.Errorf("curve %v: Eval(1) != 1", c)
		}
	}
}

func TestEasingClamps(t *testing.T) {
	e := kirtree.Easing{Type: kirtree.EasingLinear}
	if Eval(e, -0.5) != 0 || Eval(e, 1.5) != 1 {
		t.Error("out-of-range t not clamped")
	}
}

func TestEasingLinear(t *testing.T) {
	e := kirtree.Easing{Type: kirtree.EasingLinear}
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		if got := Eval(e, x); got != x {
			t.Errorf("linear Eval(%v) = %v", x, got)
		}
	}
}

func TestEasingShapes(t *testing.T) {
	// ease-in starts slow; ease-out starts fast.
	in := Eval(kirtree.Easing{Type: kirtree.EasingEaseIn}, 0.25)
	out := Eval(kirtree.Easing{Type: kirtree.EasingEaseOut}, 0.25)
	if in >= 0.25 {
		t.Errorf("ease-in(0.25) = %v, want < 0.25", in)
	}
	if out <= 0.25 {
		t.Errorf("ease-out(0.25) = %v, want > 0.25", out)
	}

	// ease-in-out is symmetric around the midpoint.
	a := Eval(kirtree.Easing{Type: kirtree.EasingEaseInOut}, 0.3)
	b := Eval(kirtree.Easing{Type: kirtree.EasingEaseInOut}, 0.7)
	if diff := (a + b) - 1; diff > 0.01 || diff < -0.01 {
		t.Errorf("ease-in-out not symmetric: f(0.3)=%v f(0.7)=%v", a, b)
	}
}

func TestEasingMonotonic(t *testing.T) {
	e := kirtree.Easing{Type: kirtree.EasingCubicBezier, X1: 0.2, Y1: 0.1, X2: 0.8, Y2: 0.9}
	prev := 0.0
	for i := 1; i <= 100; i++ {
		y := Eval(e, float64(i)/100)
		if y < prev-1e-9 {
			t.Fatalf("bezier not monotonic at t=%v: %v < %v", float64(i)/100, y, prev)
		}
		prev = y
	}
}
