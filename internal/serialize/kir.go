// Package serialize implements the bidirectional KIR document format:
// a self-describing JSON tree matching spec.md §6's "Surface: KIR
// (persisted IR)". Serialize/Deserialize round-trip every persistable
// field named in spec.md §3's Invariants and §8's round-trip law.
package serialize

import (
	jsoniter "github.com/json-iterator/go"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Document is the top-level KIR document: a single root component plus
// optional context metadata.
type Document struct {
	Root     *ComponentDoc `json:"root"`
	Width    float64       `json:"window_width,omitempty"`
	Height   float64       `json:"window_height,omitempty"`
	Title    string        `json:"window_title,omitempty"`
}

// ComponentDoc is the serializable shape of kirtree.Component. Optional
// fields are omitted when at their §3 default, and on deserialize they
// are restored to that default (spec §6 "omitted fields default to
// their §3 defaults").
type ComponentDoc struct {
	ID          uint32          `json:"id"`
	Type        string          `json:"type"`
	Tag         string          `json:"tag,omitempty"`
	TextContent *string         `json:"text_content,omitempty"`
	CustomData  *CustomDataDoc  `json:"custom_data,omitempty"`
	Children    []*ComponentDoc `json:"children,omitempty"`
	Events      []*EventDoc     `json:"events,omitempty"`
	Logic       []*LogicDoc     `json:"logic,omitempty"`
	Style       *StyleDoc       `json:"style,omitempty"`
	Layout      *LayoutDoc      `json:"layout,omitempty"`
	Scope       string          `json:"scope,omitempty"`
	ModuleRef   string          `json:"module_ref,omitempty"`
	ExportName  string          `json:"export_name,omitempty"`
	ZIndex      int             `json:"z_index,omitempty"`
	Disabled    bool            `json:"disabled,omitempty"`
}

// CustomDataDoc carries the variant-tagged payload for components with
// CustomData — the "shape depends on type" field of spec §6.
type CustomDataDoc struct {
	Kind          string   `json:"kind"`
	TabGroup      *TabGroupDoc `json:"tabgroup,omitempty"`
	Table         *TableDoc    `json:"table,omitempty"`
}

// TabGroupDoc serializes a kirtree.TabGroupState. Component references
// persist as ids and re-link against the rebuilt tree on deserialize;
// panels not attached to the tree (every panel except the selected one)
// are carried by value in DetachedPanels.
type TabGroupDoc struct {
	SelectedIndex  int             `json:"selected_index"`
	Reorderable    bool            `json:"reorderable"`
	GroupID        uint32          `json:"group_id,omitempty"`
	BarID          uint32          `json:"bar_id,omitempty"`
	ContentID      uint32          `json:"content_id,omitempty"`
	TabIDs         []uint32        `json:"tab_ids,omitempty"`
	PanelIDs       []uint32        `json:"panel_ids,omitempty"`
	DetachedPanels []*ComponentDoc `json:"detached_panels,omitempty"`
}

// TableDoc serializes a kirtree.TableState.
type TableDoc struct {
	SelectedRow int  `json:"selected_row"`
	SortColumn  int  `json:"sort_column"`
	SortAsc     bool `json:"sort_asc"`
}

// EventDoc serializes one kirtree.Event node.
type EventDoc struct {
	Type           string            `json:"type"`
	Name           string            `json:"name,omitempty"`
	LogicID        uint32            `json:"logic_id,omitempty"`
	HandlerData    string            `json:"handler_data,omitempty"`
	HandlerSource  *HandlerSourceDoc `json:"handler_source,omitempty"`
	BytecodeFuncID uint32            `json:"bytecode_func_id,omitempty"`
}

// HandlerSourceDoc serializes an inline handler's source text.
type HandlerSourceDoc struct {
	Language string            `json:"language"`
	Code     string            `json:"code"`
	File     string            `json:"file,omitempty"`
	Line     int               `json:"line,omitempty"`
	Closure  map[string]string `json:"closure,omitempty"`
}

// LogicDoc serializes one kirtree.Logic block.
type LogicDoc struct {
	ID         uint32 `json:"id"`
	SourceType string `json:"source_type"`
	SourceCode string `json:"source_code"`
}

// StyleDoc serializes a kirtree.Style.
type StyleDoc struct {
	Visible    bool          `json:"visible"`
	Opacity    float64       `json:"opacity"`
	ZIndex     int           `json:"z_index,omitempty"`
	Position   string        `json:"position,omitempty"`
	AbsX       float64       `json:"abs_x,omitempty"`
	AbsY       float64       `json:"abs_y,omitempty"`
	Width      DimensionDoc  `json:"width"`
	Height     DimensionDoc  `json:"height"`
	Background ColorDoc      `json:"background"`
	Border     BorderDoc     `json:"border,omitempty"`
	Margin     EdgeInsetsDoc `json:"margin,omitempty"`
	Padding    EdgeInsetsDoc `json:"padding,omitempty"`
	Font       FontDoc       `json:"font"`
	TextEffects TextEffectsDoc `json:"text_effects,omitempty"`
	Transform  TransformDoc  `json:"transform,omitempty"`
	BoxShadow  ShadowDoc     `json:"box_shadow,omitempty"`
	Filters    []FilterOpDoc `json:"filters,omitempty"`
	GridItem   GridItemDoc   `json:"grid_item,omitempty"`
	ContainerQueryType string `json:"container_query_type,omitempty"`
	ContainerQueryName string `json:"container_query_name,omitempty"`
	Breakpoints []BreakpointDoc `json:"breakpoints,omitempty"`
	Animations  []AnimationDoc  `json:"animations,omitempty"`
	Transitions []TransitionDoc `json:"transitions,omitempty"`
	PseudoState uint8 `json:"pseudo_state,omitempty"`
}

// DimensionDoc serializes a kirtree.Dimension with an explicit unit
// tag (spec §6: "numeric dimensions carry an explicit type enum tag").
type DimensionDoc struct {
	Type  string  `json:"type"`
	Value float64 `json:"value,omitempty"`
}

// ColorDoc serializes a kirtree.Color.
type ColorDoc struct {
	Kind     string       `json:"kind"`
	R        uint8        `json:"r,omitempty"`
	G        uint8        `json:"g,omitempty"`
	B        uint8        `json:"b,omitempty"`
	A        uint8        `json:"a,omitempty"`
	Gradient *GradientDoc `json:"gradient,omitempty"`
	VarRef   string       `json:"var_ref,omitempty"`
}

// GradientDoc serializes a kirtree.Gradient.
type GradientDoc struct {
	Kind    string           `json:"kind"`
	Angle   float64          `json:"angle,omitempty"`
	CenterX float64          `json:"center_x,omitempty"`
	CenterY float64          `json:"center_y,omitempty"`
	Stops   []GradientStopDoc `json:"stops,omitempty"`
}

// GradientStopDoc serializes a kirtree.GradientStop.
type GradientStopDoc struct {
	Position float64 `json:"position"`
	R        uint8   `json:"r"`
	G        uint8   `json:"g"`
	B        uint8   `json:"b"`
	A        uint8   `json:"a"`
}

// BorderDoc serializes a kirtree.Border.
type BorderDoc struct {
	Width  float64  `json:"width,omitempty"`
	Radius float64  `json:"radius,omitempty"`
	Color  ColorDoc `json:"color"`
}

// EdgeInsetsDoc serializes a kirtree.EdgeInsets.
type EdgeInsetsDoc struct {
	Top    float64 `json:"top,omitempty"`
	Right  float64 `json:"right,omitempty"`
	Bottom float64 `json:"bottom,omitempty"`
	Left   float64 `json:"left,omitempty"`
}

// FontDoc serializes a kirtree.Font.
type FontDoc struct {
	Size          float64  `json:"size,omitempty"`
	Family        string   `json:"family,omitempty"`
	Color         ColorDoc `json:"color"`
	Bold          bool     `json:"bold,omitempty"`
	Italic        bool     `json:"italic,omitempty"`
	Weight        int      `json:"weight,omitempty"`
	LineHeight    float64  `json:"line_height,omitempty"`
	LetterSpacing float64  `json:"letter_spacing,omitempty"`
	WordSpacing   float64  `json:"word_spacing,omitempty"`
	TextAlign     string   `json:"text_align,omitempty"`
	Decoration    uint8    `json:"decoration,omitempty"`
}

// TextEffectsDoc serializes a kirtree.TextEffects.
type TextEffectsDoc struct {
	Overflow   string    `json:"overflow,omitempty"`
	Fade       string    `json:"fade,omitempty"`
	FadeLength float64   `json:"fade_length,omitempty"`
	Shadow     ShadowDoc `json:"shadow,omitempty"`
	MaxWidth   float64   `json:"max_width,omitempty"`
	Direction  string    `json:"direction,omitempty"`
	Language   string    `json:"language,omitempty"`
}

// ShadowDoc serializes a kirtree.Shadow.
type ShadowDoc struct {
	Enabled bool     `json:"enabled,omitempty"`
	Inset   bool     `json:"inset,omitempty"`
	OffsetX float64  `json:"offset_x,omitempty"`
	OffsetY float64  `json:"offset_y,omitempty"`
	Blur    float64  `json:"blur,omitempty"`
	Spread  float64  `json:"spread,omitempty"`
	Color   ColorDoc `json:"color"`
}

// TransformDoc serializes a kirtree.Transform.
type TransformDoc struct {
	ScaleX     float64 `json:"scale_x,omitempty"`
	ScaleY     float64 `json:"scale_y,omitempty"`
	TranslateX float64 `json:"translate_x,omitempty"`
	TranslateY float64 `json:"translate_y,omitempty"`
	Rotate     float64 `json:"rotate,omitempty"`
}

// FilterOpDoc serializes a kirtree.FilterOp.
type FilterOpDoc struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// GridItemDoc serializes a kirtree.GridItemPlacement.
type GridItemDoc struct {
	RowStart    int    `json:"row_start,omitempty"`
	RowEnd      int    `json:"row_end,omitempty"`
	ColStart    int    `json:"col_start,omitempty"`
	ColEnd      int    `json:"col_end,omitempty"`
	JustifySelf string `json:"justify_self,omitempty"`
	AlignSelf   string `json:"align_self,omitempty"`
}

// BreakpointDoc serializes a kirtree.Breakpoint by value.
type BreakpointDoc struct {
	MinWidth  float64   `json:"min_width,omitempty"`
	MaxWidth  float64   `json:"max_width,omitempty"`
	MinHeight float64   `json:"min_height,omitempty"`
	MaxHeight float64   `json:"max_height,omitempty"`
	Overrides *StyleDoc `json:"overrides,omitempty"`
}

// AnimationDoc serializes a kirtree.Animation by value.
type AnimationDoc struct {
	Name           string        `json:"name"`
	Duration       float64       `json:"duration"`
	Delay          float64       `json:"delay,omitempty"`
	IterationCount int           `json:"iteration_count"`
	Alternate      bool          `json:"alternate,omitempty"`
	Easing         EasingDoc     `json:"easing"`
	Keyframes      []KeyframeDoc `json:"keyframes"`
}

// EasingDoc serializes a kirtree.Easing curve with its Bezier control
// points when the type carries them.
type EasingDoc struct {
	Type string  `json:"type"`
	X1   float64 `json:"x1,omitempty"`
	Y1   float64 `json:"y1,omitempty"`
	X2   float64 `json:"x2,omitempty"`
	Y2   float64 `json:"y2,omitempty"`
}

// KeyframeDoc serializes a kirtree.Keyframe.
type KeyframeDoc struct {
	Offset     float64               `json:"offset"`
	Easing     *EasingDoc            `json:"easing,omitempty"`
	Properties []KeyframePropertyDoc `json:"properties"`
}

// KeyframePropertyDoc serializes a kirtree.KeyframeProperty.
type KeyframePropertyDoc struct {
	Property string  `json:"property"`
	Number   float64 `json:"number,omitempty"`
	Color    *ColorDoc `json:"color,omitempty"`
}

// TransitionDoc serializes a kirtree.Transition by value.
type TransitionDoc struct {
	Property     string    `json:"property"`
	Duration     float64   `json:"duration"`
	Delay        float64   `json:"delay,omitempty"`
	Easing       EasingDoc `json:"easing"`
	TriggerState uint8     `json:"trigger_state,omitempty"`
}

// LayoutDoc serializes a kirtree.Layout.
type LayoutDoc struct {
	Mode      string        `json:"mode"`
	Flex      FlexLayoutDoc `json:"flex,omitempty"`
	Grid      GridLayoutDoc `json:"grid,omitempty"`
	MinWidth  DimensionDoc  `json:"min_width,omitempty"`
	MaxWidth  DimensionDoc  `json:"max_width,omitempty"`
	MinHeight DimensionDoc  `json:"min_height,omitempty"`
	MaxHeight DimensionDoc  `json:"max_height,omitempty"`
	AspectRatio float64     `json:"aspect_ratio,omitempty"`
}

// FlexLayoutDoc serializes a kirtree.FlexLayout.
type FlexLayoutDoc struct {
	Direction      uint8   `json:"direction"`
	Wrap           bool    `json:"wrap,omitempty"`
	Gap            float64 `json:"gap,omitempty"`
	JustifyContent string  `json:"justify_content,omitempty"`
	AlignItems     string  `json:"align_items,omitempty"`
	Grow           float64 `json:"grow,omitempty"`
	Shrink         float64 `json:"shrink,omitempty"`
	BaseDirection  string  `json:"base_direction,omitempty"`
	UnicodeBidi    string  `json:"unicode_bidi,omitempty"`
}

// GridLayoutDoc serializes a kirtree.GridLayout.
type GridLayoutDoc struct {
	Rows           []GridTrackDoc `json:"rows,omitempty"`
	Cols           []GridTrackDoc `json:"cols,omitempty"`
	RowGap         float64        `json:"row_gap,omitempty"`
	ColGap         float64        `json:"col_gap,omitempty"`
	AutoFlow       string         `json:"auto_flow,omitempty"`
	JustifyItems   string         `json:"justify_items,omitempty"`
	AlignItems     string         `json:"align_items,omitempty"`
	JustifyContent string         `json:"justify_content,omitempty"`
	AlignContent   string         `json:"align_content,omitempty"`
}

// GridTrackDoc serializes a kirtree.GridTrack.
type GridTrackDoc struct {
	Kind  string  `json:"kind"`
	Value float64 `json:"value,omitempty"`
}

// Marshal serializes a Document to a KIR JSON byte slice.
func Marshal(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal parses a KIR JSON byte slice into a Document.
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Serialize converts ctx's live component tree (rooted at ctx.Root)
// and its metadata into a Document ready for Marshal.
func Serialize(ctx *kirtree.IRContext) *Document {
	doc := &Document{}
	if ctx == nil {
		return doc
	}
	if ctx.Metadata != nil {
		doc.Width = ctx.Metadata.Width
		doc.Height = ctx.Metadata.Height
		doc.Title = ctx.Metadata.Title
	}
	doc.Root = componentToDoc(ctx.Root)
	return doc
}

// Deserialize builds a new component tree from doc inside ctx, sets
// ctx.Root to it and returns the new root. Persisted component ids are
// restored verbatim (the context's id counter advances past them, so
// later allocations never collide), keeping the hash map keyed by the
// document's ids. Deserialize(Serialize(t)) ≡ t up to the persistable
// fields named in spec.md §8.
func Deserialize(doc *Document, ctx *kirtree.IRContext) *kirtree.Component {
	if doc == nil || ctx == nil {
		return nil
	}
	if ctx.Metadata == nil && (doc.Width != 0 || doc.Height != 0 || doc.Title != "") {
		ctx.Metadata = &kirtree.Metadata{}
	}
	if ctx.Metadata != nil {
		ctx.Metadata.Width = doc.Width
		ctx.Metadata.Height = doc.Height
		ctx.Metadata.Title = doc.Title
	}
	root := docToComponent(ctx, doc.Root, nil)
	ctx.Root = root
	return root
}
