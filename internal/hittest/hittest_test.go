package hittest

import (
	"testing"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
)

func place(c *kirtree.Component, x, y, w, h float64) {
	c.Bounds = kirtree.Bounds{X: x, Y: y, W: w, H: h, Valid: true}
}

func TestIsPointInComponent(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	c := kirtree.NewContainer(ctx)
	place(c, 10, 10, 100, 50)

	cases := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},   // inclusive origin
		{50, 30, true},
		{110, 10, false}, // exclusive right edge
		{10, 60, false},  // exclusive bottom edge
		{9, 10, false},
		{200, 200, false},
	}
	for _, tc := range cases {
		if got := IsPointInComponent(c, tc.x, tc.y); got != tc.want {
			t.Errorf("IsPointInComponent(%v,%v) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestInvalidBoundsNeverHit(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	c := kirtree.NewContainer(ctx)
	c.Bounds = kirtree.Bounds{X: 0, Y: 0, W: 100, H: 100, Valid: false}
	if IsPointInComponent(c, 50, 50) {
		t.Error("stale bounds were hit")
	}
}

func TestFindAtPointTwoColumns(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	row := kirtree.NewRowComponent(ctx)
	c1 := kirtree.NewColumnComponent(ctx)
	c2 := kirtree.NewColumnComponent(ctx)
	kirtree.AddChild(row, c1)
	kirtree.AddChild(row, c2)
	place(row, 0, 0, 200, 50)
	place(c1, 0, 0, 100, 50)
	place(c2, 100, 0, 100, 50)

	if got := FindComponentAtPoint(row, 150, 25); got != c2 {
		t.Errorf("FindComponentAtPoint(150,25) = %v, want C2", got)
	}
	if got := FindComponentAtPoint(row, 50, 25); got != c1 {
		t.Errorf("FindComponentAtPoint(50,25) = %v, want C1", got)
	}
}

func TestFindAtPointZOrder(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	root := kirtree.NewContainer(ctx)
	b1 := kirtree.NewButtonComponent(ctx, "b1")
	b2 := kirtree.NewButtonComponent(ctx, "b2")
	kirtree.AddChild(root, b1)
	kirtree.AddChild(root, b2)
	place(root, 0, 0, 50, 50)
	place(b1, 0, 0, 50, 50)
	place(b2, 0, 0, 50, 50)
	b1.ZIndex = 1
	b2.ZIndex = 3

	if got := FindComponentAtPoint(root, 10, 10); got != b2 {
		t.Error("higher z-index did not win")
	}

	// Insertion order should not matter for unequal z.
	b1.ZIndex = 5
	if got := FindComponentAtPoint(root, 10, 10); got != b1 {
		t.Error("earlier sibling with higher z did not win")
	}
}

func TestFindAtPointZTieLaterSiblingWins(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	root := kirtree.NewContainer(ctx)
	a := kirtree.NewButtonComponent(ctx, "a")
	b := kirtree.NewButtonComponent(ctx, "b")
	kirtree.AddChild(root, a)
	kirtree.AddChild(root, b)
	place(root, 0, 0, 50, 50)
	place(a, 0, 0, 50, 50)
	place(b, 0, 0, 50, 50)

	if got := FindComponentAtPoint(root, 10, 10); got != b {
		t.Error("z-index tie did not go to the later sibling")
	}
}

func TestFindAtPointStyleZIndexWins(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	root := kirtree.NewContainer(ctx)
	a := kirtree.NewButtonComponent(ctx, "a")
	b := kirtree.NewButtonComponent(ctx, "b")
	kirtree.AddChild(root, a)
	kirtree.AddChild(root, b)
	place(root, 0, 0, 50, 50)
	place(a, 0, 0, 50, 50)
	place(b, 0, 0, 50, 50)
	a.Style.ZIndex = 9

	if got := FindComponentAtPoint(root, 10, 10); got != a {
		t.Error("style z-index was not honored")
	}
}

func TestFindAtPointDeepRecursion(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	root := kirtree.NewContainer(ctx)
	mid := kirtree.NewContainer(ctx)
	leaf := kirtree.NewButtonComponent(ctx, "leaf")
	kirtree.AddChild(root, mid)
	kirtree.AddChild(mid, leaf)
	place(root, 0, 0, 100, 100)
	place(mid, 10, 10, 80, 80)
	place(leaf, 20, 20, 10, 10)

	if got := FindComponentAtPoint(root, 25, 25); got != leaf {
		t.Error("deepest hit not returned")
	}
	// Point inside mid but outside leaf returns mid.
	if got := FindComponentAtPoint(root, 70, 70); got != mid {
		t.Error("containing ancestor not returned")
	}
	// Point outside everything returns nil.
	if got := FindComponentAtPoint(root, 200, 200); got != nil {
		t.Error("miss did not return nil")
	}
}

func TestFindAtPointEmptyTree(t *testing.T) {
	if got := FindComponentAtPoint(nil, 1, 1); got != nil {
		t.Error("FindComponentAtPoint(nil) != nil")
	}
}
