package serialize

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

// ModuleRefEntry is one captured (id, module, export) triple, as
// collected by ClearTreeModuleRefs.
type ModuleRefEntry struct {
	ID     kirtree.ComponentID
	Module string
	Export string
}

// ClearTreeModuleRefs walks the tree collecting each component's
// (id, module_ref, export_name) into a list and nulling the fields so
// they do not bleed into a cross-file KIR (spec §4.3).
func ClearTreeModuleRefs(root *kirtree.Component) []ModuleRefEntry {
	var entries []ModuleRefEntry
	var walk func(*kirtree.Component)
	walk = func(c *kirtree.Component) {
		if c == nil {
			return
		}
		if c.ModuleRef != nil {
			entries = append(entries, ModuleRefEntry{ID: c.ID, Module: c.ModuleRef.Module, Export: c.ModuleRef.Export})
			c.ModuleRef = nil
		}
		for _, child := range c.Children {
			walk(child)
		}
	}
	walk(root)
	return entries
}

// RestoreTreeModuleRefs applies entries collected by ClearTreeModuleRefs
// back onto the matching components by id.
func RestoreTreeModuleRefs(ctx *kirtree.IRContext, entries []ModuleRefEntry) {
	if ctx == nil {
		return
	}
	for _, e := range entries {
		if c, ok := ctx.FindByID(e.ID); ok {
			c.ModuleRef = &kirtree.ModuleRef{Module: e.Module, Export: e.Export}
		}
	}
}

// ClearTreeModuleRefsString is the FFI-friendly variant: entries are
// rendered as "module|export" strings keyed by component id, for
// callers that cross a non-Go boundary where a typed slice is awkward.
func ClearTreeModuleRefsString(root *kirtree.Component) map[uint32]string {
	entries := ClearTreeModuleRefs(root)
	m := make(map[uint32]string, len(entries))
	for _, e := range entries {
		m[uint32(e.ID)] = e.Module + "|" + e.Export
	}
	return m
}

// RestoreTreeModuleRefsString is the inverse of
// ClearTreeModuleRefsString.
func RestoreTreeModuleRefsString(ctx *kirtree.IRContext, m map[uint32]string) {
	entries := make([]ModuleRefEntry, 0, len(m))
	for id, v := range m {
		module, export := splitModuleExport(v)
		entries = append(entries, ModuleRefEntry{ID: kirtree.ComponentID(id), Module: module, Export: export})
	}
	RestoreTreeModuleRefs(ctx, entries)
}

func splitModuleExport(v string) (string, string) {
	for i := 0; i < len(v); i++ {
		if v[i] == '|' {
			return v[:i], v[i+1:]
		}
	}
	return v, ""
}
