package kirtree

import "testing"

func TestAddChildBackPointer(t *testing.T) {
	ctx := NewIRContext(0)
	parent := NewContainer(ctx)
	child := NewTextComponent(ctx, "hi")

	if !AddChild(parent, child) {
		t.Fatal("AddChild failed")
	}
	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	count := 0
	for _, c := range parent.Children {
		if c == child {
			count++
		}
	}
	if count != 1 {
		t.Errorf("child appears %d times in parent.Children, want 1", count)
	}
}

func TestAddChildReparents(t *testing.T) {
	ctx := NewIRContext(0)
	p1 := NewContainer(ctx)
	p2 := NewContainer(ctx)
	child := NewTextComponent(ctx, "x")

	AddChild(p1, child)
	AddChild(p2, child)

	// Ownership uniqueness: the child lives in exactly one parent.
	if len(p1.Children) != 0 {
		t.Errorf("p1 still has %d children", len(p1.Children))
	}
	if len(p2.Children) != 1 || p2.Children[0] != child {
		t.Error("p2 does not own child")
	}
	if child.Parent != p2 {
		t.Error("child.Parent != p2")
	}
}

func TestInsertChildPreservesOrder(t *testing.T) {
	ctx := NewIRContext(0)
	parent := NewContainer(ctx)
	a := NewTextComponent(ctx, "a")
	b := NewTextComponent(ctx, "b")
	c := NewTextComponent(ctx, "c")
	AddChild(parent, a)
	AddChild(parent, c)
	InsertChild(parent, b, 1)

	want := []*Component{a, b, c}
	for i, w := range want {
		if parent.Children[i] != w {
			t.Fatalf("children[%d] wrong after insert", i)
		}
	}
}

func TestRemoveChildPreservesOrder(t *testing.T) {
	ctx := NewIRContext(0)
	parent := NewContainer(ctx)
	a := NewTextComponent(ctx, "a")
	b := NewTextComponent(ctx, "b")
	c := NewTextComponent(ctx, "c")
	AddChild(parent, a)
	AddChild(parent, b)
	AddChild(parent, c)

	if !RemoveChild(parent, b) {
		t.Fatal("RemoveChild failed")
	}
	if b.Parent != nil {
		t.Error("removed child still has a parent")
	}
	if len(parent.Children) != 2 || parent.Children[0] != a || parent.Children[1] != c {
		t.Error("sibling order not preserved")
	}
	if RemoveChild(parent, b) {
		t.Error("removing a non-child succeeded")
	}
}

func TestIDUniquenessAndHashConsistency(t *testing.T) {
	ctx := NewIRContext(0)
	root := NewContainer(ctx)
	seen := map[ComponentID]bool{root.ID: true}
	for i := 0; i < 50; i++ {
		c := NewTextComponent(ctx, "n")
		AddChild(root, c)
		if seen[c.ID] {
			t.Fatalf("duplicate id %d", c.ID)
		}
		seen[c.ID] = true
		got, ok := ctx.FindByID(c.ID)
		if !ok || got != c {
			t.Fatalf("FindByID(%d) = %v, %v", c.ID, got, ok)
		}
	}
}

func TestFindByIDMiss(t *testing.T) {
	ctx := NewIRContext(0)
	if c, ok := ctx.FindByID(9999); ok || c != nil {
		t.Error("FindByID miss should return (nil, false)")
	}
}

func TestFindByIDTraversalFallback(t *testing.T) {
	// A context without a hash map falls back to tree traversal.
	ctx := NewIRContext(0)
	root := NewContainer(ctx)
	child := NewTextComponent(ctx, "x")
	AddChild(root, child)

	bare := &IRContext{Root: root}
	got, ok := bare.FindByID(child.ID)
	if !ok || got != child {
		t.Errorf("traversal fallback = %v, %v", got, ok)
	}
}

func TestDestroyRemovesFromMapAndPool(t *testing.T) {
	ctx := NewIRContext(0)
	root := NewContainer(ctx)
	ctx.Root = root
	child := NewTextComponent(ctx, "x")
	grand := NewTextComponent(ctx, "y")
	AddChild(root, child)
	AddChild(child, grand)

	childID, grandID := child.ID, grand.ID
	Destroy(ctx, child)

	if _, ok := ctx.FindByID(childID); ok {
		t.Error("destroyed child still in hash map")
	}
	if _, ok := ctx.FindByID(grandID); ok {
		t.Error("destroyed grandchild still in hash map")
	}
	if len(root.Children) != 0 {
		t.Error("destroyed child still attached to root")
	}
	if stats := ctx.PoolStats(); stats.InUse != 1 { // only root remains
		t.Errorf("pool InUse = %d, want 1", stats.InUse)
	}
}

func TestDestroyInvokesCallbacks(t *testing.T) {
	ctx := NewIRContext(0)
	var removed, cleaned []ComponentID
	ctx.Callbacks = TreeCallbacks{
		OnComponentRemoved:          func(c *Component) { removed = append(removed, c.ID) },
		CleanupHandlersForComponent: func(c *Component) { cleaned = append(cleaned, c.ID) },
	}
	root := NewContainer(ctx)
	child := NewTextComponent(ctx, "x")
	AddChild(root, child)

	Destroy(ctx, root)
	if len(removed) != 2 || len(cleaned) != 2 {
		t.Errorf("callbacks: removed=%v cleaned=%v, want 2 each", removed, cleaned)
	}
}

func TestExternalComponentBypassesPool(t *testing.T) {
	ctx := NewIRContext(0)
	c := NewExternalComponent(ctx, Text)
	if !c.ExternallyAllocated {
		t.Fatal("not flagged externally allocated")
	}
	before := ctx.PoolStats()
	Destroy(ctx, c)
	after := ctx.PoolStats()
	if after.Freed != before.Freed {
		t.Error("external component was returned to the pool")
	}
	if _, ok := ctx.FindByID(c.ID); ok {
		t.Error("external component still registered after destroy")
	}
}

func TestMutatorsInvalidateBounds(t *testing.T) {
	ctx := NewIRContext(0)
	c := NewContainer(ctx)
	c.Bounds = Bounds{X: 1, Y: 2, W: 3, H: 4, Valid: true}

	SetText(c, "t")
	if c.Bounds.Valid {
		t.Error("SetText left bounds valid")
	}
	if !c.Dirty.Has(DirtyContent) {
		t.Error("SetText did not set DirtyContent")
	}

	c.Bounds.Valid = true
	ClearDirty(c)
	other := NewTextComponent(ctx, "x")
	AddChild(c, other)
	if c.Bounds.Valid || !c.Dirty.Has(DirtyChildren) {
		t.Error("AddChild did not invalidate parent bounds")
	}

	c.Bounds.Valid = true
	SetStyle(c, NewStyle())
	if c.Bounds.Valid || !c.Dirty.Has(DirtyStyle) {
		t.Error("SetStyle did not invalidate bounds")
	}
}

func TestHeadingLevelClamps(t *testing.T) {
	ctx := NewIRContext(0)
	c := NewComponentIn(ctx, Heading)
	SetHeadingLevel(c, 0)
	if c.Tag == nil || *c.Tag != "h1" {
		t.Errorf("level 0 tag = %v, want h1", c.Tag)
	}
	SetHeadingLevel(c, 9)
	if *c.Tag != "h6" {
		t.Errorf("level 9 tag = %v, want h6", *c.Tag)
	}
	SetHeadingLevel(c, 3)
	if *c.Tag != "h3" {
		t.Errorf("level 3 tag = %v, want h3", *c.Tag)
	}
}

func TestNilAttachersNoOp(t *testing.T) {
	if AddChild(nil, nil) || InsertChild(nil, nil, 0) || RemoveChild(nil, nil) {
		t.Error("nil attachers should return false")
	}
	SetText(nil, "x")
	SetStyle(nil, nil)
	SetScope(nil, "s")
	Destroy(nil, nil)
}
