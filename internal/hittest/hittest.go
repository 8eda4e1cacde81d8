// Package hittest implements point-in-component queries over a laid-out
// tree, honoring z-order with later-sibling tie-breaks.
package hittest

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

// IsPointInComponent reports whether (x,y) falls inside c's rendered
// bounds. Bounds must be valid — a component whose layout is stale is
// never hit.
func IsPointInComponent(c *kirtree.Component, x, y float64) bool {
	if c == nil || !c.Bounds.Valid {
		return false
	}
	b := c.Bounds
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// FindComponentAtPoint returns the deepest component under (x,y), or
// nil if root does not contain the point. Among children containing the
// point, the descendant with the highest effective z-index wins; ties
// go to the later sibling (last rendered on top).
func FindComponentAtPoint(root *kirtree.Component, x, y float64) *kirtree.Component {
	if !IsPointInComponent(root, x, y) {
		return nil
	}
	var best *kirtree.Component
	bestZ := 0
	for _, child := range root.Children {
		hit := FindComponentAtPoint(child, x, y)
		if hit == nil {
			continue
		}
		z := effectiveZIndex(hit)
		if best == nil || z >= bestZ {
			best = hit
			bestZ = z
		}
	}
	if best != nil {
		return best
	}
	return root
}

func effectiveZIndex(c *kirtree.Component) int {
	if c.Style != nil && c.Style.ZIndex != 0 {
		return c.Style.ZIndex
	}
	return c.ZIndex
}
