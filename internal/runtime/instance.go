package runtime

import (
	"sync"

	"github.com/google/uuid"

	"github.com/kryonlabs/kryon-ir/internal/anim"
	"github.com/kryonlabs/kryon-ir/internal/kirtree"
)

// Callbacks is an instance's lifecycle callback table. Every field is
// optional; nil fields are skipped.
type Callbacks struct {
	OnCreate       func(*Instance)
	OnDestroy      func(*Instance)
	OnSuspend      func(*Instance)
	OnResume       func(*Instance)
	OnBeforeReload func(*Instance, *kirtree.Component)
	OnAfterReload  func(*Instance, *kirtree.Component)
	CanReload      func(*Instance) bool
	OnError        func(*Instance, error)
}

// LogicRunner executes event-handler code. Logic runtimes are external
// collaborators — the IR layer stores handler source and hands it off;
// callers plug in an implementation or leave it nil.
type LogicRunner interface {
	Run(logic *kirtree.Logic, event *kirtree.Event) error
}

// Instance is one isolated runtime: its own IRContext, executor, asset
// registry, optional watcher, a version counter bumped on every
// successful reload, and run/suspend flags.
type Instance struct {
	Name    string
	Context *kirtree.IRContext

	Executor *Executor
	Assets   *AssetRegistry
	Logic    LogicRunner

	// AudioState and BackendState are opaque slots for the decoded-PCM
	// and rendering-backend collaborators outside this layer's scope.
	AudioState   interface{}
	BackendState interface{}

	Callbacks Callbacks

	watcher    *Watcher
	sourcePath string

	version   int
	running   bool
	suspended bool

	lastReload reloadClock
}

// NewInstance creates a named instance with a fresh IRContext. An empty
// name gets a generated one.
func NewInstance(name string) *Instance {
	if name == "" {
		name = "instance-" + uuid.NewString()[:8]
	}
	inst := &Instance{
		Name:    name,
		Context: kirtree.NewIRContext(0),
		Assets:  NewAssetRegistry(),
	}
	inst.Executor = NewExecutor(inst)
	return inst
}

// Version returns the reload counter.
func (inst *Instance) Version() int { return inst.version }

// Running reports whether the instance's frame loop should tick.
func (inst *Instance) Running() bool { return inst.running && !inst.suspended }

// Start flags the instance running and fires OnCreate on the first
// start.
func (inst *Instance) Start() {
	first := !inst.running
	inst.running = true
	if first && inst.Callbacks.OnCreate != nil {
		inst.Callbacks.OnCreate(inst)
	}
}

// Suspend pauses the instance's frame loop.
func (inst *Instance) Suspend() {
	if inst.suspended {
		return
	}
	inst.suspended = true
	if inst.Callbacks.OnSuspend != nil {
		inst.Callbacks.OnSuspend(inst)
	}
}

// Resume unpauses a suspended instance.
func (inst *Instance) Resume() {
	if !inst.suspended {
		return
	}
	inst.suspended = false
	if inst.Callbacks.OnResume != nil {
		inst.Callbacks.OnResume(inst)
	}
}

// Destroy tears the instance down: stops the watcher, destroys the
// tree, and fires OnDestroy.
func (inst *Instance) Destroy() {
	inst.running = false
	if inst.watcher != nil {
		inst.watcher.Close()
		inst.watcher = nil
	}
	if inst.Context != nil && inst.Context.Root != nil {
		kirtree.Destroy(inst.Context, inst.Context.Root)
		inst.Context.Root = nil
	}
	if inst.Callbacks.OnDestroy != nil {
		inst.Callbacks.OnDestroy(inst)
	}
}

// Executor drives one instance's per-frame work: flag propagation,
// animation evaluation, and transition stepping. It owns the instance's
// animation clock.
type Executor struct {
	inst        *Instance
	Transitions *anim.TransitionRegistry
	clock       float64
}

// NewExecutor creates an executor bound to inst.
func NewExecutor(inst *Instance) *Executor {
	return &Executor{inst: inst, Transitions: anim.NewTransitionRegistry()}
}

// Tick advances the instance by delta seconds: recompute animation
// flags, evaluate keyframe animations at the new clock, then step
// transitions. All of it runs synchronously on the owning goroutine.
func (e *Executor) Tick(delta float64) {
	root := e.inst.Context.Root
	if root == nil {
		return
	}
	e.clock += delta
	anim.PropagateFlags(root)
	anim.TreeUpdate(root, e.clock)
	e.Transitions.Step(root, delta)
}

// Clock returns the executor's animation clock in seconds.
func (e *Executor) Clock() float64 { return e.clock }

// AssetRegistry is an instance-owned name→payload store for decoded
// assets (images, PCM buffers). Decoding itself happens outside this
// layer; the registry only holds results.
type AssetRegistry struct {
	mu     sync.RWMutex
	assets map[string][]byte
}

// NewAssetRegistry creates an empty registry.
func NewAssetRegistry() *AssetRegistry {
	return &AssetRegistry{assets: make(map[string][]byte)}
}

// Put stores an asset payload under name, replacing any previous one.
func (r *AssetRegistry) Put(name string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets[name] = data
}

// Get returns an asset payload by name.
func (r *AssetRegistry) Get(name string) ([]byte, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.assets[name]
	return data, ok
}

// Remove drops an asset.
func (r *AssetRegistry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.assets, name)
}

// Len reports how many assets are registered.
func (r *AssetRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.assets)
}
