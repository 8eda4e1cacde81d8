package anim

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

// MaxActiveTransitions bounds the per-component transition slot table.
const MaxActiveTransitions = 8

type transitionSlot struct {
	active   bool
	property kirtree.AnimatableProperty
	start    propertyValue
	end      propertyValue
	elapsed  float64
	duration float64
	delay    float64
	easing   kirtree.Easing
	seq      uint64
}

// componentTransitions is one component's transition state: the
// pseudo-state snapshot from the previous frame, a snapshot of every
// transition-targeted property value, and the active slots.
type componentTransitions struct {
	prevState    kirtree.PseudoState
	prevValues   map[kirtree.AnimatableProperty]propertyValue
	slots        [MaxActiveTransitions]transitionSlot
	haveSnapshot bool
}

// TransitionRegistry drives CSS-style per-property transitions for one
// IRContext. It is not safe for concurrent use; one registry belongs to
// one instance's frame loop, same as the context it serves.
type TransitionRegistry struct {
	states    map[*kirtree.Component]*componentTransitions
	seq       uint64
	Completed int
}

// NewTransitionRegistry creates an empty registry.
func NewTransitionRegistry() *TransitionRegistry {
	return &TransitionRegistry{states: make(map[*kirtree.Component]*componentTransitions)}
}

// Step runs one frame for the whole tree: detect pseudo-state changes
// and start transitions, then advance active ones by delta seconds.
func (r *TransitionRegistry) Step(root *kirtree.Component, delta float64) {
	if root == nil {
		return
	}
	r.DetectAndStart(root)
	r.UpdateActive(root, delta)
	for _, child := range root.Children {
		r.Step(child, delta)
	}
}

// DetectAndStart compares c's pseudo-state bitset to the previous
// snapshot. On any mismatch, every defined transition whose
// TriggerState matches the changed bits (or is 0, the wildcard) starts,
// capturing the previous property value as start and the current style
// value as end. An in-flight transition on the same property is
// cancelled — the last started wins.
func (r *TransitionRegistry) DetectAndStart(c *kirtree.Component) {
	if c == nil || c.Style == nil || len(c.Style.Transitions) == 0 {
		return
	}
	st := r.stateFor(c)
	current := c.Style.PseudoState

	if !st.haveSnapshot {
		st.prevState = current
		st.snapshotValues(c.Style)
		st.haveSnapshot = true
		return
	}

	if current != st.prevState {
		changed := current ^ st.prevState
		for _, tr := range c.Style.Transitions {
			if tr.TriggerState != 0 && tr.TriggerState&changed == 0 {
				continue
			}
			start, ok := st.prevValues[tr.Property]
			if !ok {
				start = readProperty(c.Style, tr.Property)
			}
			r.start(st, tr, start, readProperty(c.Style, tr.Property))
		}
		st.prevState = current
	}
	st.snapshotValues(c.Style)
}

func (st *componentTransitions) snapshotValues(s *kirtree.Style) {
	if st.prevValues == nil {
		st.prevValues = make(map[kirtree.AnimatableProperty]propertyValue, len(s.Transitions))
	}
	for _, tr := range s.Transitions {
		st.prevValues[tr.Property] = readProperty(s, tr.Property)
	}
}

func (r *TransitionRegistry) start(st *componentTransitions, tr *kirtree.Transition, start, end propertyValue) {
	// Cancel any in-flight transition on the same property.
	for i := range st.slots {
		if st.slots[i].active && st.slots[i].property == tr.Property {
			st.slots[i].active = false
		}
	}
	slot := -1
	for i := range st.slots {
		if !st.slots[i].active {
			slot = i
			break
		}
	}
	if slot < 0 {
		return // all slots busy; the extra transition is discarded
	}
	r.seq++
	st.slots[slot] = transitionSlot{
		active:   true,
		property: tr.Property,
		start:    start,
		end:      end,
		duration: tr.Duration,
		delay:    tr.Delay,
		easing:   tr.Easing,
		seq:      r.seq,
	}
}

// UpdateActive advances c's transitions by delta seconds: delay is paid
// first, then progress = min(1, elapsed/duration) is eased and the
// interpolated value written into the style. A completed slot is freed
// and counted. For two slots writing the same property, the
// later-started one is applied last and wins.
func (r *TransitionRegistry) UpdateActive(c *kirtree.Component, delta float64) {
	if c == nil || c.Style == nil {
		return
	}
	st, ok := r.states[c]
	if !ok {
		return
	}

	var order []int
	for i := range st.slots {
		if st.slots[i].active {
			order = append(order, i)
		}
	}
	if len(order) == 0 {
		return
	}
	// Apply in start order so later-started transitions overwrite.
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && st.slots[order[j]].seq < st.slots[order[j-1]].seq; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	running := false
	for _, i := range order {
		slot := &st.slots[i]
		slot.elapsed += delta
		active := slot.elapsed - slot.delay
		if active < 0 {
			running = true
			continue
		}
		progress := 1.0
		if slot.duration > 0 && active < slot.duration {
			progress = active / slot.duration
		}
		writeProperty(c.Style, slot.property, lerp(slot.start, slot.end, Eval(slot.easing, progress)))
		if progress >= 1 {
			slot.active = false
			r.Completed++
		} else {
			running = true
		}
	}

	if running {
		for a := c; a != nil; a = a.Parent {
			a.HasActiveAnimations = true
		}
		kirtree.MarkDirty(c, kirtree.DirtyStyle)
	}
	st.snapshotValues(c.Style)
}

// Cancel clears every active slot for c immediately. Interpolated state
// is not restored — the style retains whatever was last written.
func (r *TransitionRegistry) Cancel(c *kirtree.Component) {
	if st, ok := r.states[c]; ok {
		for i := range st.slots {
			st.slots[i].active = false
		}
	}
}

// Forget drops all transition state for c. Call when a component is
// destroyed so the registry does not pin it.
func (r *TransitionRegistry) Forget(c *kirtree.Component) {
	delete(r.states, c)
}

// ActiveCount reports how many transitions are currently in flight for
// c.
func (r *TransitionRegistry) ActiveCount(c *kirtree.Component) int {
	st, ok := r.states[c]
	if !ok {
		return 0
	}
	n := 0
	for i := range st.slots {
		if st.slots[i].active {
			n++
		}
	}
	return n
}

func (r *TransitionRegistry) stateFor(c *kirtree.Component) *componentTransitions {
	st, ok := r.states[c]
	if !ok {
		st = &componentTransitions{}
		r.states[c] = st
	}
	return st
}
