package anim

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

// propertyValue is one animatable value: a number or an 8-bit sRGB
// color, matching KeyframeProperty's number-or-color union.
type propertyValue struct {
	Number  float64
	Color   kirtree.RGBA
	IsColor bool
}

// readProperty reads a property's current value out of a style.
func readProperty(s *kirtree.Style, p kirtree.AnimatableProperty) propertyValue {
	switch p {
	case kirtree.PropOpacity:
		return propertyValue{Number: s.Opacity}
	case kirtree.PropTranslateX:
		return propertyValue{Number: s.Transform.TranslateX}
	case kirtree.PropTranslateY:
		return propertyValue{Number: s.Transform.TranslateY}
	case kirtree.PropScaleX:
		return propertyValue{Number: s.Transform.ScaleX}
	case kirtree.PropScaleY:
		return propertyValue{Number: s.Transform.ScaleY}
	case kirtree.PropRotate:
		return propertyValue{Number: s.Transform.Rotate}
	case kirtree.PropBackgroundColor:
		return propertyValue{Color: s.Background.Solid, IsColor: true}
	default:
		return propertyValue{}
	}
}

// writeProperty writes an interpolated value back into a style.
func writeProperty(s *kirtree.Style, p kirtree.AnimatableProperty, v propertyValue) {
	switch p {
	case kirtree.PropOpacity:
		s.Opacity = v.Number
	case kirtree.PropTranslateX:
		s.Transform.TranslateX = v.Number
	case kirtree.PropTranslateY:
		s.Transform.TranslateY = v.Number
	case kirtree.PropScaleX:
		s.Transform.ScaleX = v.Number
	case kirtree.PropScaleY:
		s.Transform.ScaleY = v.Number
	case kirtree.PropRotate:
		s.Transform.Rotate = v.Number
	case kirtree.PropBackgroundColor:
		s.Background = kirtree.Color{Kind: kirtree.ColorSolid, Solid: v.Color}
	}
}

// lerp interpolates two property values at progress t. Colors
// interpolate componentwise in 8-bit sRGB space (spec §4.6); transform
// components interpolate independently, which this per-property model
// gives for free.
func lerp(a, b propertyValue, t float64) propertyValue {
	if a.IsColor || b.IsColor {
		return propertyValue{Color: lerpColor(a.Color, b.Color, t), IsColor: true}
	}
	return propertyValue{Number: a.Number + (b.Number-a.Number)*t}
}

func lerpColor(a, b kirtree.RGBA, t float64) kirtree.RGBA {
	return kirtree.RGBA{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: lerpChannel(a.A, b.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := float64(a) + (float64(b)-float64(a))*t
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
