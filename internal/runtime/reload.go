package runtime

import (
	"fmt"
	"os"
	"time"

	"github.com/yaoapp/kun/log"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/serialize"
)

// ReloadResult is the outcome of one Poll.
type ReloadResult int

const (
	ReloadNoChanges ReloadResult = iota
	ReloadDebounced
	ReloadVetoed
	ReloadFailed
	ReloadOK
)

// WatchFile attaches a hot-reload watcher for a KIR file to the
// instance. Subsequent Poll calls reload from this path on change.
func (inst *Instance) WatchFile(path string) error {
	w, err := NewWatcher(path)
	if err != nil {
		return err
	}
	if inst.watcher != nil {
		inst.watcher.Close()
	}
	inst.watcher = w
	inst.sourcePath = path
	return nil
}

// LoadFile reads a KIR document into the instance, replacing any
// existing tree without migration, and remembers the path for
// subsequent Reload calls.
func (inst *Instance) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	doc, err := serialize.Unmarshal(data)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	old := inst.Context.Root
	root := serialize.Deserialize(doc, inst.Context)
	if root == nil {
		inst.Context.Root = old
		return fmt.Errorf("load %s: no root component", path)
	}
	if old != nil {
		kirtree.Destroy(inst.Context, old)
	}
	inst.sourcePath = path
	return nil
}

// Poll runs one hot-reload check: consult the watcher (non-blocking),
// debounce, offer the CanReload veto, then reload. On any failure the
// instance's tree is left untouched and OnError fires.
func (inst *Instance) Poll() ReloadResult {
	if inst.watcher == nil || !inst.watcher.Poll() {
		return ReloadNoChanges
	}
	if inst.lastReload.withinDebounce(time.Now()) {
		return ReloadDebounced
	}
	if inst.Callbacks.CanReload != nil && !inst.Callbacks.CanReload(inst) {
		return ReloadVetoed
	}
	if err := inst.Reload(); err != nil {
		return ReloadFailed
	}
	return ReloadOK
}

// Reload re-parses the instance's KIR file and swaps the tree in,
// migrating state between scope-matched components. The sequence is
// fixed: before-reload callback → parse → migrate → swap → version++ →
// after-reload callback.
func (inst *Instance) Reload() error {
	oldRoot := inst.Context.Root

	if inst.Callbacks.OnBeforeReload != nil {
		inst.Callbacks.OnBeforeReload(inst, oldRoot)
	}

	data, err := os.ReadFile(inst.sourcePath)
	if err != nil {
		return inst.reloadError(fmt.Errorf("reload: %w", err))
	}
	doc, err := serialize.Unmarshal(data)
	if err != nil {
		return inst.reloadError(fmt.Errorf("reload: parse %s: %w", inst.sourcePath, err))
	}

	newRoot := docToTree(inst.Context, doc)
	if newRoot == nil {
		return inst.reloadError(fmt.Errorf("reload: %s has no root component", inst.sourcePath))
	}

	MigrateState(oldRoot, newRoot)

	inst.Context.Root = newRoot
	if oldRoot != nil {
		kirtree.Destroy(inst.Context, oldRoot)
	}
	inst.version++
	inst.lastReload.mark(time.Now())

	if inst.Callbacks.OnAfterReload != nil {
		inst.Callbacks.OnAfterReload(inst, newRoot)
	}
	log.Info("runtime: instance %s reloaded (version %d)", inst.Name, inst.version)
	return nil
}

// docToTree builds the new tree inside the instance's existing context
// without touching ctx.Root — the caller swaps roots only after
// migration succeeds.
func docToTree(ctx *kirtree.IRContext, doc *serialize.Document) *kirtree.Component {
	if doc == nil {
		return nil
	}
	saved := ctx.Root
	root := serialize.Deserialize(doc, ctx)
	if root == nil {
		ctx.Root = saved
		return nil
	}
	ctx.Root = saved
	return root
}

func (inst *Instance) reloadError(err error) error {
	if inst.Callbacks.OnError != nil {
		inst.Callbacks.OnError(inst, err)
	}
	log.Error("runtime: %v", err)
	return err
}

// MigrateState walks old and new trees in lockstep, copying live state
// between components whose scope strings match: text content (Text
// nodes only), a TabGroup's selected index, and the scope itself.
// Unscoped nodes are skipped — they are not addressable across reloads.
func MigrateState(oldC, newC *kirtree.Component) {
	if oldC == nil || newC == nil {
		return
	}
	if oldC.Scope != "" && oldC.Scope == newC.Scope {
		if oldC.Type == kirtree.Text && newC.Type == kirtree.Text && oldC.TextContent != nil {
			text := *oldC.TextContent
			newC.TextContent = &text
		}
		if oldState, ok := oldC.CustomData.(*kirtree.TabGroupState); ok {
			if newState, ok := newC.CustomData.(*kirtree.TabGroupState); ok {
				newState.SelectedIndex = oldState.SelectedIndex
			}
		}
		newC.Scope = oldC.Scope
	}
	n := len(oldC.Children)
	if len(newC.Children) < n {
		n = len(newC.Children)
	}
	for i := 0; i < n; i++ {
		MigrateState(oldC.Children[i], newC.Children[i])
	}
}
