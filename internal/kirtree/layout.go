package kirtree

// LayoutMode selects which layout algorithm a component uses.
type LayoutMode int

const (
	LayoutFlex LayoutMode = iota
	LayoutGrid
	LayoutBlock
)

// FlexDirection is the flex main axis. FlexDirectionNone (0xFF) disables
// flex layout on this node's children.
type FlexDirection uint8

const (
	FlexColumn FlexDirection = 0
	FlexRow    FlexDirection = 1
	FlexDirectionNone FlexDirection = 0xFF
)

// JustifyContent is main-axis alignment.
type JustifyContent int

const (
	JustifyStart JustifyContent = iota
	JustifyEnd
	JustifyCenter
	JustifySpaceBetween
	JustifySpaceAround
	JustifySpaceEvenly
)

// AlignItems is cross-axis alignment.
type AlignItems int

const (
	AlignItemsStart AlignItems = iota
	AlignItemsEnd
	AlignItemsCenter
	AlignItemsStretch
	AlignItemsBaseline
)

// BaseDirection is the flex container's text-base direction.
type BaseDirection int

const (
	BaseDirectionLTR BaseDirection = iota
	BaseDirectionRTL
	BaseDirectionAuto
	BaseDirectionInherit
)

// FlexLayout is the flex-mode layout configuration.
type FlexLayout struct {
	Direction     FlexDirection
	Wrap          bool
	Gap           float64
	JustifyContent JustifyContent
	AlignItems    AlignItems
	Grow          float64
	Shrink        float64 // CSS default 1
	BaseDirection BaseDirection
	UnicodeBidi   string
}

// DefaultFlexLayout returns the default flex layout: direction=column
// (KRY's top-down document flow, where CSS defaults to row) and
// shrink=1 as in CSS.
func DefaultFlexLayout() FlexLayout {
	return FlexLayout{Direction: FlexColumn, Shrink: 1}
}

// TrackKind is a grid track's sizing kind.
type TrackKind int

const (
	TrackPX TrackKind = iota
	TrackPercent
	TrackFR
	TrackAuto
	TrackMinContent
	TrackMaxContent
)

// GridTrack is one row or column track definition.
type GridTrack struct {
	Kind  TrackKind
	Value float64
}

// MaxGridTracks bounds a grid axis's track list (implementation-defined
// N, chosen as 32).
const MaxGridTracks = 32

// AutoFlow controls grid auto-placement.
type AutoFlow int

const (
	AutoFlowRow AutoFlow = iota
	AutoFlowRowDense
	AutoFlowColumn
	AutoFlowColumnDense
)

// GridLayout is the grid-mode layout configuration.
type GridLayout struct {
	Rows, Cols       []GridTrack // len <= MaxGridTracks each
	RowGap, ColGap   float64
	AutoFlow         AutoFlow
	JustifyItems     string
	AlignItems       string
	JustifyContent   string
	AlignContent     string
}

// AddRowTrack appends a row track, discarding it once MaxGridTracks is
// reached.
func (g *GridLayout) AddRowTrack(t GridTrack) bool {
	if len(g.Rows) >= MaxGridTracks {
		return false
	}
	g.Rows = append(g.Rows, t)
	return true
}

// AddColTrack appends a column track, discarding it once MaxGridTracks
// is reached.
func (g *GridLayout) AddColTrack(t GridTrack) bool {
	if len(g.Cols) >= MaxGridTracks {
		return false
	}
	g.Cols = append(g.Cols, t)
	return true
}

// Layout is the side-car positioning record attached to a component.
type Layout struct {
	Mode LayoutMode
	Flex FlexLayout
	Grid GridLayout

	MinWidth, MaxWidth   Dimension
	MinHeight, MaxHeight Dimension
	AspectRatio          float64 // 0 = unset
}

// NewLayout returns a Layout with flex-mode defaults (spec §3: "mode
// {FLEX (default) ...}").
func NewLayout() *Layout {
	return &Layout{
		Mode:      LayoutFlex,
		Flex:      DefaultFlexLayout(),
		MinWidth:  AutoDimension(),
		MaxWidth:  AutoDimension(),
		MinHeight: AutoDimension(),
		MaxHeight: AutoDimension(),
	}
}
