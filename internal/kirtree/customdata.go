package kirtree

// CustomData is the per-variant payload attached to a component whose
// ComponentType needs state beyond Style/Layout/text (TabGroup, Table,
// Canvas, …).
//
// This replaces the original C implementation's opaque blob with a
// "first byte == '{'" JSON-vs-struct discriminator (spec §9 Design
// Note: "the current ... discriminator is the only correctness smell
// and MUST become a proper variant"). Each concrete type below
// satisfies CustomData via Kind(); destroying a component type-switches
// on Kind instead of sniffing bytes.
type CustomData interface {
	Kind() ComponentType
}

// TabCallback is invoked when a tab's visibility changes. Added/Removed
// fire synchronously at the mutation point (spec §5: weak callbacks
// "must not re-enter IR mutation for the same component").
type TabCallback func(tabIndex int)

// TabVisuals holds the per-tab color overrides captured at Finalize
// time (spec §4.2 Open Question: capture is intentionally
// finalize-only, not re-captured on later mutation).
type TabVisuals struct {
	Background       Color
	ActiveBackground Color
	Text             Color
	ActiveText       Color
}

// TabGroupState is the TabGroup component's CustomData (spec §3).
type TabGroupState struct {
	Group   *Component
	Bar     *Component
	Content *Component

	Tabs   []*Component
	Panels []*Component

	SelectedIndex int
	Reorderable   bool

	Dragging  bool
	DragIndex int
	DragX     float64

	Visuals []TabVisuals // parallel to Tabs

	OnAdded   TabCallback
	OnRemoved TabCallback
}

// Kind implements CustomData.
func (s *TabGroupState) Kind() ComponentType { return TabGroup }

// TabCount returns the number of tabs.
func (s *TabGroupState) TabCount() int { return len(s.Tabs) }

// TableState is the Table component's CustomData. The spec scopes the
// table *feature* out of core (§1 "table/markdown/tabgroup feature
// components beyond the state-machine contracts they impose on the
// core"); this carries only the minimal selection bookkeeping the core
// hit-test/dirty machinery needs to stay generic across components.
type TableState struct {
	SelectedRow int
	SortColumn  int
	SortAsc     bool
}

// Kind implements CustomData.
func (s *TableState) Kind() ComponentType { return Table }

// MarkdownState is the Markdown component's CustomData, carrying only
// the source-vs-rendered tracking the core cares about.
type MarkdownState struct {
	SourceHash uint64
}

// Kind implements CustomData.
func (s *MarkdownState) Kind() ComponentType { return Markdown }
