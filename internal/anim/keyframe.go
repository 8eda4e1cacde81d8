package anim

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

// Apply evaluates a at absolute time now (seconds since the animation
// started) and writes the interpolated property values into s. It
// updates a.CurrentTime/CurrentIteration as a side effect.
//
// The timeline model: delay is paid first; the remaining time is split
// into iterations of Duration each. IterationCount -1 runs forever;
// otherwise time past the final iteration clamps to the end state.
// Alternate reverses the direction of odd iterations.
func Apply(a *kirtree.Animation, s *kirtree.Style, now float64) {
	if a == nil || s == nil || a.Paused || len(a.Keyframes) == 0 {
		return
	}
	a.CurrentTime = now

	local := now - a.Delay
	if local < 0 {
		return
	}
	if a.Duration <= 0 {
		applyKeyframeExact(a, s, a.Keyframes[len(a.Keyframes)-1])
		return
	}

	iteration := int(local / a.Duration)
	frac := local/a.Duration - float64(iteration)
	if a.IterationCount >= 0 && iteration >= a.IterationCount {
		iteration = a.IterationCount - 1
		frac = 1
	}
	if a.Alternate && iteration%2 == 1 {
		frac = 1 - frac
	}
	a.CurrentIteration = iteration

	prev, next := bracket(a.Keyframes, frac)
	if prev == next {
		applyKeyframeExact(a, s, prev)
		return
	}

	span := next.Offset - prev.Offset
	t := 0.0
	if span > 0 {
		t = (frac - prev.Offset) / span
	}
	easing := a.DefaultEasing
	if prev.Easing != nil {
		easing = *prev.Easing
	}
	t = Eval(easing, t)

	for _, np := range next.Properties {
		if !np.IsSet {
			continue
		}
		nv := keyframeValue(np)
		pp, ok := findProperty(prev, np.Property)
		if !ok {
			if frac >= next.Offset {
				writeProperty(s, np.Property, nv)
			}
			continue
		}
		writeProperty(s, np.Property, lerp(keyframeValue(pp), nv, t))
	}
}

// bracket finds the two keyframes surrounding offset. Keyframes are
// assumed in ascending offset order (the builder appends them that
// way); offsets 0 and 1 are both permitted and distinct.
func bracket(kfs []*kirtree.Keyframe, offset float64) (prev, next *kirtree.Keyframe) {
	prev = kfs[0]
	next = kfs[len(kfs)-1]
	for _, k := range kfs {
		if k.Offset <= offset {
			prev = k
		}
	}
	for i := len(kfs) - 1; i >= 0; i-- {
		if kfs[i].Offset >= offset {
			next = kfs[i]
		}
	}
	if prev.Offset > next.Offset {
		next = prev
	}
	return prev, next
}

func findProperty(k *kirtree.Keyframe, p kirtree.AnimatableProperty) (kirtree.KeyframeProperty, bool) {
	for _, kp := range k.Properties {
		if kp.Property == p && kp.IsSet {
			return kp, true
		}
	}
	return kirtree.KeyframeProperty{}, false
}

func keyframeValue(kp kirtree.KeyframeProperty) propertyValue {
	if kp.IsColor {
		return propertyValue{Color: kp.Color.Solid, IsColor: true}
	}
	return propertyValue{Number: kp.Number}
}

func applyKeyframeExact(a *kirtree.Animation, s *kirtree.Style, k *kirtree.Keyframe) {
	for _, kp := range k.Properties {
		if kp.IsSet {
			writeProperty(s, kp.Property, keyframeValue(kp))
		}
	}
}
