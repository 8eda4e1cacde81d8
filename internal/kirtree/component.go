package kirtree

import "github.com/kryonlabs/kryon-ir/internal/mem"

// Component is a node in the UI tree. Parent is a weak back-reference —
// the parent does not own the child through this field; ownership flows
// the other way, through the parent's Children slice.
type Component struct {
	ID     ComponentID
	Type   ComponentType
	Parent *Component

	Children []*Component // owned

	Style  *Style  // owned, optional
	Layout *Layout // owned, optional

	Events *Event // owned singly-linked list, optional
	Logic  *Logic // owned singly-linked list, optional

	TextContent *string
	CustomData  CustomData
	Tag         *string

	Bounds              Bounds
	ZIndex              int
	Dirty               DirtyFlags
	HasActiveAnimations bool
	Disabled            bool

	ExternallyAllocated bool
	OwnerInstance       string
	Scope               string
	ModuleRef           *ModuleRef

	// poolHandle is set when the component was drawn from an
	// IRContext's mem.Pool; a zero handle means ExternallyAllocated
	// (bypass the pool on free).
	poolHandle mem.Handle
}

// NewComponent constructs a bare component of the given type and id.
// It does not attach to any tree or register in a context — use
// NewComponentIn to register one and AddChild to attach it.
func NewComponent(id ComponentID, t ComponentType) *Component {
	return &Component{ID: id, Type: t, Bounds: Bounds{}}
}

// markDirty is the single place that marks a component's layout cache
// stale and raises the relevant dirty bits. It intentionally does NOT
// propagate to ancestors — spec §4.2: "propagation is performed by the
// executor before the next layout pass". Every mutator that can affect
// layout must route through this.
func markDirty(c *Component, bits DirtyFlags) {
	c.Bounds.Valid = false
	c.Dirty |= bits
}

// ClearDirty resets a component's dirty bitset after a layout pass has
// consumed it.
func ClearDirty(c *Component) { c.Dirty = 0 }

// MarkDirty exposes the dirty-marking helper to the animation and
// transition engines, which write interpolated values straight into a
// component's style each frame.
func MarkDirty(c *Component, bits DirtyFlags) {
	if c == nil {
		return
	}
	markDirty(c, bits)
}

// AddChild appends child to parent's children, reparenting it. Returns
// false on a nil parent or child (attachers silently no-op on nil
// inputs per spec §4.2).
func AddChild(parent, child *Component) bool {
	if parent == nil || child == nil {
		return false
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}
	parent.Children = appendGrow(parent.Children, child)
	child.Parent = parent
	markDirty(parent, DirtyChildren)
	return true
}

// InsertChild inserts child at index, shifting later siblings right.
// Preserves the positions of earlier siblings (spec §4.2).
func InsertChild(parent, child *Component, index int) bool {
	if parent == nil || child == nil {
		return false
	}
	if index < 0 {
		index = 0
	}
	if index > len(parent.Children) {
		index = len(parent.Children)
	}
	if child.Parent != nil {
		RemoveChild(child.Parent, child)
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[index+1:], parent.Children[index:])
	parent.Children[index] = child
	child.Parent = parent
	markDirty(parent, DirtyChildren)
	return true
}

// RemoveChild removes child from parent's children, preserving the
// order of the remaining siblings. Returns false if child is not a
// child of parent.
func RemoveChild(parent, child *Component) bool {
	if parent == nil || child == nil {
		return false
	}
	for i, c := range parent.Children {
		if c == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			if child.Parent == parent {
				child.Parent = nil
			}
			markDirty(parent, DirtyChildren)
			return true
		}
	}
	return false
}

// appendGrow appends to a slice using geometric growth starting at
// capacity 4 (spec §3 lifecycle: "increments capacity if needed,
// geometric doubling starting at 4"). Go's append already grows
// geometrically; this wrapper only forces the initial capacity so a
// freshly attached component's first few children don't reallocate on
// every single append, matching the spec's stated amortization without
// hand-rolling append's internals.
func appendGrow(s []*Component, v *Component) []*Component {
	if s == nil {
		s = make([]*Component, 0, 4)
	}
	return append(s, v)
}

// SetText sets a component's text content and marks it dirty. Text-
// specific variants use this; spec §4.6's migration step reads it back
// for Text nodes only.
func SetText(c *Component, text string) {
	if c == nil {
		return
	}
	c.TextContent = &text
	markDirty(c, DirtyContent)
}

// SetStyle attaches (or replaces) a component's Style, marking it
// dirty.
func SetStyle(c *Component, s *Style) {
	if c == nil {
		return
	}
	c.Style = s
	markDirty(c, DirtyStyle|DirtyLayout)
}

// SetLayout attaches (or replaces) a component's Layout, marking it
// dirty.
func SetLayout(c *Component, l *Layout) {
	if c == nil {
		return
	}
	c.Layout = l
	markDirty(c, DirtyLayout)
}

// SetDisabled sets the disabled flag and marks the component's style
// dirty (disabled affects rendering).
func SetDisabled(c *Component, disabled bool) {
	if c == nil {
		return
	}
	c.Disabled = disabled
	markDirty(c, DirtyStyle)
}

// SetScope sets the reactive-match scope string used by hot reload.
func SetScope(c *Component, scope string) {
	if c == nil {
		return
	}
	c.Scope = scope
}

// SetHeadingLevel clamps level into [1,6] and stores it on Tag (spec
// §4.2: "mutators clamp out-of-range indices where semantics are
// defined, e.g. heading level ∈ [1,6]").
func SetHeadingLevel(c *Component, level int) {
	if c == nil {
		return
	}
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	tag := headingTag(level)
	c.Tag = &tag
	markDirty(c, DirtyContent)
}

func headingTag(level int) string {
	return "h" + string(rune('0'+level))
}
