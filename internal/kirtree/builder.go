package kirtree

// NewComponentIn draws a component from ctx's pool, assigns it the
// next id, and registers it in the hash map. Constructors return nil on
// allocation failure (spec §4.2/§7 kind 1) — in Go that surface is only
// reachable if ctx is nil, since mem.Pool always grows a new block.
func NewComponentIn(ctx *IRContext, t ComponentType) *Component {
	if ctx == nil {
		return nil
	}
	h, c := ctx.pool.Alloc()
	*c = Component{}
	c.poolHandle = h
	c.ID = ctx.NextComponentID()
	c.Type = t
	c.Bounds = Bounds{}
	ctx.Register(c)
	return c
}

// NewExternalComponent builds a component that bypasses the pool
// entirely (ExternallyAllocated=true, per spec §3 lifecycle: "returning
// to the pool (unless externally_allocated, in which case bypass the
// pool)"). It is still registered in ctx's hash map so FindByID works
// uniformly.
func NewExternalComponent(ctx *IRContext, t ComponentType) *Component {
	if ctx == nil {
		return nil
	}
	c := &Component{ID: ctx.NextComponentID(), Type: t, ExternallyAllocated: true}
	ctx.Register(c)
	return c
}

// Destroy recursively frees c: its children (recursively), Style,
// Events, Logic, Layout, TextContent, CustomData, removes it from the
// hash map, invokes CleanupHandlersForComponent and OnComponentRemoved,
// and returns the slot to the pool (unless ExternallyAllocated).
func Destroy(ctx *IRContext, c *Component) {
	if ctx == nil || c == nil {
		return
	}
	// Children first: each must be detached from c before recursing so
	// a re-entrant FindByID during a callback never observes a partially
	// torn-down parent.
	children := c.Children
	c.Children = nil
	for _, child := range children {
		child.Parent = nil
		Destroy(ctx, child)
	}

	if ctx.Callbacks.CleanupHandlersForComponent != nil {
		ctx.Callbacks.CleanupHandlersForComponent(c)
	}
	if ctx.Callbacks.OnComponentRemoved != nil {
		ctx.Callbacks.OnComponentRemoved(c)
	}

	if c.Parent != nil {
		RemoveChild(c.Parent, c)
	}

	ctx.Unregister(c)

	c.Style = nil
	c.Layout = nil
	c.Events = nil
	c.Logic = nil
	c.TextContent = nil
	c.CustomData = nil
	c.Tag = nil
	c.ModuleRef = nil

	if !c.ExternallyAllocated {
		ctx.pool.Free(c.poolHandle)
	}
}

// Attach is an alias for AddChild matching the spec's "attached to a
// parent" lifecycle verb.
func Attach(parent, child *Component) bool { return AddChild(parent, child) }

// NewContainer, NewText, NewButton, … are thin typed constructors over
// NewComponentIn, matching spec §4.2's "strictly typed constructors".

// NewContainer builds a Container component with a default Style and
// Layout attached.
func NewContainer(ctx *IRContext) *Component {
	c := NewComponentIn(ctx, Container)
	if c == nil {
		return nil
	}
	c.Style = NewStyle()
	c.Layout = NewLayout()
	return c
}

// NewTextComponent builds a Text component carrying the given content.
func NewTextComponent(ctx *IRContext, content string) *Component {
	c := NewComponentIn(ctx, Text)
	if c == nil {
		return nil
	}
	c.Style = NewStyle()
	SetText(c, content)
	return c
}

// NewButtonComponent builds a Button component with the given label.
func NewButtonComponent(ctx *IRContext, label string) *Component {
	c := NewComponentIn(ctx, Button)
	if c == nil {
		return nil
	}
	c.Style = NewStyle()
	SetText(c, label)
	return c
}

// NewRowComponent builds a Row (flex row) container.
func NewRowComponent(ctx *IRContext) *Component {
	c := NewContainer(ctx)
	if c == nil {
		return nil
	}
	c.Type = Row
	c.Layout.Flex.Direction = FlexRow
	return c
}

// NewColumnComponent builds a Column (flex column) container.
func NewColumnComponent(ctx *IRContext) *Component {
	c := NewContainer(ctx)
	if c == nil {
		return nil
	}
	c.Type = Column
	c.Layout.Flex.Direction = FlexColumn
	return c
}

// NewTabGroupComponent builds a TabGroup component with its CustomData
// initialized and its Bar/Content children attached.
func NewTabGroupComponent(ctx *IRContext) *Component {
	group := NewContainer(ctx)
	if group == nil {
		return nil
	}
	group.Type = TabGroup

	bar := NewContainer(ctx)
	bar.Type = TabBar
	content := NewContainer(ctx)
	content.Type = TabContent

	AddChild(group, bar)
	AddChild(group, content)

	group.CustomData = &TabGroupState{
		Group:       group,
		Bar:         bar,
		Content:     content,
		Reorderable: true,
	}
	return group
}
