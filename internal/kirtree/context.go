package kirtree

import (
	"github.com/yaoapp/kun/log"

	"github.com/kryonlabs/kryon-ir/internal/mem"
)

// Metadata carries window-level presentation hints for a tree.
type Metadata struct {
	Width, Height float64
	Title         string
}

// TreeCallbacks mirrors the weak symbols of spec §6 ("runtime
// callbacks"): OnComponentRemoved/OnComponentAdded/
// CleanupHandlersForComponent. A nil field is tolerated — callers check
// before invoking, same as the C null-check convention.
type TreeCallbacks struct {
	OnComponentRemoved          func(*Component)
	OnComponentAdded            func(*Component)
	CleanupHandlersForComponent func(*Component)
}

// ReactiveManifest is an opaque placeholder for the reactive-binding
// table a higher layer (outside this spec's scope) attaches to a
// context; the IR core only carries it through.
type ReactiveManifest struct {
	Bindings map[string]string
}

// Stylesheet is an opaque placeholder for a parsed style-block table.
type Stylesheet struct {
	Rules map[string]*Style
}

// IRContext owns one component tree: its root, the pooled allocator
// backing every pool-drawn component, the id→component hash map, and
// per-instance metadata.
type IRContext struct {
	Root *Component

	Logic []*Logic

	nextComponentID ComponentID
	nextLogicID     uint32

	pool *mem.Pool[Component]
	byID map[ComponentID]*Component

	Metadata         *Metadata
	ReactiveManifest *ReactiveManifest
	Stylesheet       *Stylesheet

	Callbacks TreeCallbacks
}

// NewIRContext creates an empty context with a pool of the given block
// size (0 = default 64, per spec §4.1 "N ≈ 64").
func NewIRContext(poolBlockSize int) *IRContext {
	return &IRContext{
		pool: mem.NewPool[Component](poolBlockSize),
		byID: make(map[ComponentID]*Component),
	}
}

// NextComponentID returns the next id and advances the counter. IDs are
// monotonically increasing and never reused within a context's
// lifetime (0 is never assigned).
func (ctx *IRContext) NextComponentID() ComponentID {
	ctx.nextComponentID++
	return ctx.nextComponentID
}

// NextLogicID returns the next logic-block id and advances the counter.
func (ctx *IRContext) NextLogicID() uint32 {
	ctx.nextLogicID++
	return ctx.nextLogicID
}

// Register inserts c into the hash map keyed by its id. A duplicate id
// overwrites the prior entry (spec §4.2: "hash-map insert duplicates
// overwrite").
func (ctx *IRContext) Register(c *Component) {
	if ctx == nil || c == nil {
		return
	}
	ctx.byID[c.ID] = c
}

// Unregister removes c from the hash map. A component whose id was
// overwritten by a later Register (duplicates overwrite) is already
// gone from the map; unregistering it must not evict the live entry.
func (ctx *IRContext) Unregister(c *Component) {
	if ctx == nil || c == nil {
		return
	}
	if cur, ok := ctx.byID[c.ID]; ok && cur == c {
		delete(ctx.byID, c.ID)
	}
}

// AdoptID rekeys c under id, replacing the builder-assigned one. Used
// by deserialization to restore persisted ids; the id counter advances
// past id so components allocated afterwards never collide with a
// restored id.
func (ctx *IRContext) AdoptID(c *Component, id ComponentID) {
	if ctx == nil || c == nil || id == 0 {
		return
	}
	if id != c.ID {
		ctx.Unregister(c)
		c.ID = id
		ctx.Register(c)
	}
	if id > ctx.nextComponentID {
		ctx.nextComponentID = id
	}
}

// FindByID looks up a component by id in O(1) via the hash map. On a
// miss it returns (nil, false) silently — spec §9 Open Question
// resolution: hash-map-miss logging is not production behavior (see
// DESIGN.md). Only the traversal fallback used when the map itself is
// absent logs at Trace.
func (ctx *IRContext) FindByID(id ComponentID) (*Component, bool) {
	if ctx == nil {
		return nil, false
	}
	if ctx.byID != nil {
		c, ok := ctx.byID[id]
		return c, ok
	}
	log.Trace("kirtree: FindByID(%d) hash map absent, falling back to tree traversal", id)
	return findByIDTraversal(ctx.Root, id)
}

func findByIDTraversal(c *Component, id ComponentID) (*Component, bool) {
	if c == nil {
		return nil, false
	}
	if c.ID == id {
		return c, true
	}
	for _, child := range c.Children {
		if found, ok := findByIDTraversal(child, id); ok {
			return found, true
		}
	}
	return nil, false
}

// PoolStats reports the backing pool's allocation counters.
func (ctx *IRContext) PoolStats() mem.Stats {
	if ctx == nil || ctx.pool == nil {
		return mem.Stats{}
	}
	return ctx.pool.Stats()
}
