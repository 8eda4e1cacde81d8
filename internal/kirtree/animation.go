package kirtree

// EasingType names a standard easing curve or cubic-Bezier form.
type EasingType int

const (
	EasingLinear EasingType = iota
	EasingEaseIn
	EasingEaseOut
	EasingEaseInOut
	EasingCubicBezier
)

// Easing is an evaluatable curve. For EasingCubicBezier, P1/P2 are the
// control points (x1,y1,x2,y2 implied, with endpoints fixed at (0,0)
// and (1,1)).
type Easing struct {
	Type EasingType
	X1, Y1, X2, Y2 float64
}

// AnimatableProperty names a property an Animation keyframe or
// Transition may target.
type AnimatableProperty int

const (
	PropOpacity AnimatableProperty = iota
	PropTranslateX
	PropTranslateY
	PropScaleX
	PropScaleY
	PropRotate
	PropBackgroundColor
)

// MaxKeyframes bounds an Animation's keyframe list (spec §6: "keyframes
// per animation: ≤16").
const MaxKeyframes = 16

// MaxKeyframeProperties bounds a Keyframe's property list (spec §6:
// "properties per keyframe: ≤16").
const MaxKeyframeProperties = 16

// KeyframeProperty is one {property, value} pair within a Keyframe. A
// property's value is either numeric or a color; IsSet distinguishes an
// explicitly authored value from a zero value.
type KeyframeProperty struct {
	Property AnimatableProperty
	Number   float64
	Color    Color
	IsColor  bool
	IsSet    bool
}

// Keyframe is one {offset, properties} stop in an Animation's timeline.
type Keyframe struct {
	Offset     float64 // 0..1
	Easing     *Easing // nil = use the animation's default easing
	Properties []KeyframeProperty // len <= MaxKeyframeProperties
}

// AddProperty appends a property, discarding it once
// MaxKeyframeProperties is reached.
func (k *Keyframe) AddProperty(p KeyframeProperty) bool {
	if len(k.Properties) >= MaxKeyframeProperties {
		return false
	}
	k.Properties = append(k.Properties, p)
	return true
}

// Animation is a named, timeline-driven keyframe animation attached to
// a Style.
type Animation struct {
	Name           string
	Duration       float64 // seconds
	Delay          float64
	IterationCount int // -1 = infinite
	Alternate      bool
	DefaultEasing  Easing
	Keyframes      []*Keyframe // len <= MaxKeyframes

	CurrentTime      float64
	CurrentIteration int
	Paused           bool
}

// NewAnimation returns an Animation with IterationCount=1 and linear
// default easing.
func NewAnimation(name string, duration float64) *Animation {
	return &Animation{Name: name, Duration: duration, IterationCount: 1}
}

// AddKeyframe appends a keyframe, discarding it once MaxKeyframes is
// reached.
func (a *Animation) AddKeyframe(k *Keyframe) bool {
	if len(a.Keyframes) >= MaxKeyframes {
		return false
	}
	a.Keyframes = append(a.Keyframes, k)
	return true
}

// Transition is a CSS-style implicit, per-property animation triggered
// by a pseudo-state change.
type Transition struct {
	Property     AnimatableProperty
	Duration     float64
	Delay        float64
	Easing       Easing
	TriggerState PseudoState // 0 = any pseudo-state change
}
