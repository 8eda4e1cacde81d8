// Package kirtree implements the component-tree data model: the
// typed Component/Style/Layout/Animation/Event/Logic records, their
// dirty-flag bookkeeping, and the hashed IRContext that owns a tree.
package kirtree

// ComponentID identifies a Component uniquely within its owning
// IRContext. 0 is never assigned to a live component.
type ComponentID uint32

// ComponentType is the variant tag naming a component's kind.
type ComponentType int

const (
	Container ComponentType = iota
	Text
	Button
	Input
	Checkbox
	Dropdown
	Row
	Column
	Center
	Image
	Canvas
	Table
	TableHead
	TableBody
	TableFoot
	TableRow
	TableCell
	TableHeaderCell
	TabGroup
	TabBar
	Tab
	TabContent
	TabPanel
	Heading
	Paragraph
	Blockquote
	CodeBlock
	List
	ListItem
	Link
	Markdown
	HorizontalRule
	Custom
)

var componentTypeNames = map[ComponentType]string{
	Container:       "Container",
	Text:            "Text",
	Button:          "Button",
	Input:           "Input",
	Checkbox:        "Checkbox",
	Dropdown:        "Dropdown",
	Row:             "Row",
	Column:          "Column",
	Center:          "Center",
	Image:           "Image",
	Canvas:          "Canvas",
	Table:           "Table",
	TableHead:       "TableHead",
	TableBody:       "TableBody",
	TableFoot:       "TableFoot",
	TableRow:        "TableRow",
	TableCell:       "TableCell",
	TableHeaderCell: "TableHeaderCell",
	TabGroup:        "TabGroup",
	TabBar:          "TabBar",
	Tab:             "Tab",
	TabContent:      "TabContent",
	TabPanel:        "TabPanel",
	Heading:         "Heading",
	Paragraph:       "Paragraph",
	Blockquote:      "Blockquote",
	CodeBlock:       "CodeBlock",
	List:            "List",
	ListItem:        "ListItem",
	Link:            "Link",
	Markdown:        "Markdown",
	HorizontalRule:  "HorizontalRule",
	Custom:          "Custom",
}

var componentTypeByName = func() map[string]ComponentType {
	m := make(map[string]ComponentType, len(componentTypeNames))
	for k, v := range componentTypeNames {
		m[v] = k
	}
	return m
}()

// String returns the variant tag name, matching the KIR `type` field.
func (t ComponentType) String() string {
	if name, ok := componentTypeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// ComponentTypeFromString looks up a variant tag by name. It is
// case-sensitive per spec §4.5 "Component-type lookup ... is table-driven
// and case-sensitive."
func ComponentTypeFromString(name string) (ComponentType, bool) {
	t, ok := componentTypeByName[name]
	return t, ok
}

// DirtyFlags is a bitset describing which facets of a component changed
// since the last layout pass.
type DirtyFlags uint8

const (
	DirtyStyle DirtyFlags = 1 << iota
	DirtyLayout
	DirtyContent
	DirtyChildren
)

func (f DirtyFlags) Has(bit DirtyFlags) bool { return f&bit != 0 }

// Bounds is a component's rendered rectangle. Valid is false whenever a
// structural or style change might have moved the component, until the
// next layout pass recomputes it (spec §3 invariant).
type Bounds struct {
	X, Y, W, H float64
	Valid      bool
}

// ModuleRef identifies the (module, export) pair a component was
// imported from, used only during cross-file KIR serialization (spec
// §4.3).
type ModuleRef struct {
	Module string
	Export string
}

// PseudoState is a bitset of transient UI states used to trigger
// transitions (spec Glossary).
type PseudoState uint8

const (
	PseudoHover PseudoState = 1 << iota
	PseudoActive
	PseudoFocus
	PseudoDisabled
	PseudoChecked
)
