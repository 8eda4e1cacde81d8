package anim

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

// TreeUpdate evaluates every active animation in the tree rooted at
// root at absolute time now. Subtrees whose HasActiveAnimations flag is
// false are skipped entirely, which prunes the vast majority of nodes
// on a typical frame.
func TreeUpdate(root *kirtree.Component, now float64) {
	if root == nil || !root.HasActiveAnimations {
		return
	}
	if root.Style != nil && len(root.Style.Animations) > 0 {
		for _, a := range root.Style.Animations {
			Apply(a, root.Style, now)
		}
		kirtree.MarkDirty(root, kirtree.DirtyStyle)
	}
	for _, child := range root.Children {
		TreeUpdate(child, now)
	}
}

// PropagateFlags recomputes HasActiveAnimations bottom-up: a node is
// active iff its own style carries animations or any descendant is
// active. It must run after tree construction because animations may be
// attached before parenting. Idempotent.
func PropagateFlags(root *kirtree.Component) bool {
	if root == nil {
		return false
	}
	active := root.Style != nil && len(root.Style.Animations) > 0
	for _, child := range root.Children {
		if PropagateFlags(child) {
			active = true
		}
	}
	root.HasActiveAnimations = active
	return active
}
