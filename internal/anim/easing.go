// Package anim implements the keyframe animation and CSS-style
// transition engine that mutates component styles each frame.
package anim

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

// The named curves are the standard CSS cubic-Bezier forms.
var (
	easeIn    = bezier{0.42, 0, 1, 1}
	easeOut   = bezier{0, 0, 0.58, 1}
	easeInOut = bezier{0.42, 0, 0.58, 1}
)

type bezier struct {
	x1, y1, x2, y2 float64
}

// Eval evaluates an easing curve at t in [0,1], returning y in [0,1].
// Out-of-range t is clamped.
func Eval(e kirtree.Easing, t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	switch e.Type {
	case kirtree.EasingLinear:
		return t
	case kirtree.EasingEaseIn:
		return easeIn.solve(t)
	case kirtree.EasingEaseOut:
		return easeOut.solve(t)
	case kirtree.EasingEaseInOut:
		return easeInOut.solve(t)
	case kirtree.EasingCubicBezier:
		return bezier{e.X1, e.Y1, e.X2, e.Y2}.solve(t)
	default:
		return t
	}
}

// solve finds y for a given x on the curve. Newton iteration with a
// bisection fallback, matching the usual browser implementation shape.
func (b bezier) solve(x float64) float64 {
	t := x
	for i := 0; i < 8; i++ {
		cx := b.sampleX(t) - x
		if cx < 1e-6 && cx > -1e-6 {
			return b.sampleY(t)
		}
		d := b.sampleXDeriv(t)
		if d < 1e-6 && d > -1e-6 {
			break
		}
		t -= cx / d
	}

	lo, hi := 0.0, 1.0
	t = x
	for i := 0; i < 32 && lo < hi; i++ {
		cx := b.sampleX(t)
		if cx-x < 1e-6 && x-cx < 1e-6 {
			break
		}
		if x > cx {
			lo = t
		} else {
			hi = t
		}
		t = (lo + hi) / 2
	}
	return b.sampleY(t)
}

func (b bezier) sampleX(t float64) float64 {
	// Cubic Bezier with endpoints fixed at (0,0) and (1,1).
	u := 1 - t
	return 3*u*u*t*b.x1 + 3*u*t*t*b.x2 + t*t*t
}

func (b bezier) sampleY(t float64) float64 {
	u := 1 - t
	return 3*u*u*t*b.y1 + 3*u*t*t*b.y2 + t*t*t
}

func (b bezier) sampleXDeriv(t float64) float64 {
	u := 1 - t
	return 3*u*u*b.x1 + 6*u*t*(b.x2-b.x1) + 3*t*t*(1-b.x2)
}
