// Package runtime implements the multi-instance registry, ambient
// context switching, panic recovery, and hot reload with scope-based
// state migration.
package runtime

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

// ContextHandle is the explicit ambient-state handle: which instance
// and IRContext the caller is currently operating on. It replaces the
// original design's thread-local globals — every mutation path receives
// a handle (or an explicit context) instead of consulting hidden
// process state. One handle belongs to one goroutine.
type ContextHandle struct {
	current         *kirtree.IRContext
	currentInstance *Instance
}

// PushContext makes ctx current and returns the previous value, to be
// restored by PopContext — enabling scoped switching:
//
//	prev := h.PushContext(ctx)
//	defer h.PopContext(prev)
func (h *ContextHandle) PushContext(ctx *kirtree.IRContext) *kirtree.IRContext {
	prev := h.current
	h.current = ctx
	return prev
}

// PopContext restores a previously pushed context.
func (h *ContextHandle) PopContext(prev *kirtree.IRContext) {
	h.current = prev
}

// Current returns the handle's current context, or nil.
func (h *ContextHandle) Current() *kirtree.IRContext { return h.current }

// PushInstance makes inst current (and its context the current
// context), returning the previous instance.
func (h *ContextHandle) PushInstance(inst *Instance) *Instance {
	prev := h.currentInstance
	h.currentInstance = inst
	if inst != nil {
		h.current = inst.Context
	}
	return prev
}

// PopInstance restores a previously pushed instance.
func (h *ContextHandle) PopInstance(prev *Instance) {
	h.currentInstance = prev
	if prev != nil {
		h.current = prev.Context
	} else {
		h.current = nil
	}
}

// CurrentInstance returns the handle's current instance, or nil.
func (h *ContextHandle) CurrentInstance() *Instance { return h.currentInstance }
