package serialize

import "github.com/kryonlabs/kryon-ir/internal/kirtree"

var positionNames = map[kirtree.PositionMode]string{kirtree.PositionRelative: "relative", kirtree.PositionAbsolute: "absolute"}
var positionByName = map[string]kirtree.PositionMode{"relative": kirtree.PositionRelative, "absolute": kirtree.PositionAbsolute}

var dimUnitNames = map[kirtree.DimensionUnit]string{
	kirtree.DimPX: "px", kirtree.DimPercent: "percent", kirtree.DimAuto: "auto", kirtree.DimFlex: "flex",
}
var dimUnitByName = map[string]kirtree.DimensionUnit{
	"px": kirtree.DimPX, "percent": kirtree.DimPercent, "auto": kirtree.DimAuto, "flex": kirtree.DimFlex,
}

func dimensionToDoc(d kirtree.Dimension) DimensionDoc {
	return DimensionDoc{Type: dimUnitNames[d.Unit], Value: d.Value}
}

func docToDimension(d DimensionDoc) kirtree.Dimension {
	unit, ok := dimUnitByName[d.Type]
	if !ok {
		unit = kirtree.DimAuto
	}
	return kirtree.Dimension{Unit: unit, Value: d.Value}
}

var colorKindNames = map[kirtree.ColorKind]string{
	kirtree.ColorSolid: "solid", kirtree.ColorGradient: "gradient",
	kirtree.ColorTransparent: "transparent", kirtree.ColorVarRef: "var_ref",
}
var colorKindByName = map[string]kirtree.ColorKind{
	"solid": kirtree.ColorSolid, "gradient": kirtree.ColorGradient,
	"transparent": kirtree.ColorTransparent, "var_ref": kirtree.ColorVarRef,
}

func colorToDoc(c kirtree.Color) ColorDoc {
	d := ColorDoc{Kind: colorKindNames[c.Kind], VarRef: c.VarRef}
	d.R, d.G, d.B, d.A = c.Solid.R, c.Solid.G, c.Solid.B, c.Solid.A
	if c.Gradient != nil {
		g := &GradientDoc{Kind: gradientKindNames[c.Gradient.Kind], Angle: c.Gradient.Angle, CenterX: c.Gradient.CenterX, CenterY: c.Gradient.CenterY}
		for _, s := range c.Gradient.Stops {
			g.Stops = append(g.Stops, GradientStopDoc{Position: s.Position, R: s.Color.R, G: s.Color.G, B: s.Color.B, A: s.Color.A})
		}
		d.Gradient = g
	}
	return d
}

func docToColor(d ColorDoc) kirtree.Color {
	kind, ok := colorKindByName[d.Kind]
	if !ok {
		kind = kirtree.ColorSolid
	}
	c := kirtree.Color{Kind: kind, Solid: kirtree.RGBA{R: d.R, G: d.G, B: d.B, A: d.A}, VarRef: d.VarRef}
	if d.Gradient != nil {
		g := &kirtree.Gradient{Kind: gradientKindByName[d.Gradient.Kind], Angle: d.Gradient.Angle, CenterX: d.Gradient.CenterX, CenterY: d.Gradient.CenterY}
		for _, s := range d.Gradient.Stops {
			g.Stops = append(g.Stops, kirtree.GradientStop{Position: s.Position, Color: kirtree.RGBA{R: s.R, G: s.G, B: s.B, A: s.A}})
		}
		c.Gradient = g
	}
	return c
}

var gradientKindNames = map[kirtree.GradientKind]string{
	kirtree.GradientLinear: "linear", kirtree.GradientRadial: "radial", kirtree.GradientConic: "conic",
}
var gradientKindByName = map[string]kirtree.GradientKind{
	"linear": kirtree.GradientLinear, "radial": kirtree.GradientRadial, "conic": kirtree.GradientConic,
}

var textAlignNames = map[kirtree.TextAlign]string{
	kirtree.AlignLeft: "left", kirtree.AlignCenter: "center", kirtree.AlignRight: "right", kirtree.AlignJustify: "justify",
}
var textAlignByName = map[string]kirtree.TextAlign{
	"left": kirtree.AlignLeft, "center": kirtree.AlignCenter, "right": kirtree.AlignRight, "justify": kirtree.AlignJustify,
}

func fontToDoc(f kirtree.Font) FontDoc {
	return FontDoc{
		Size: f.Size, Family: f.Family, Color: colorToDoc(f.Color), Bold: f.Bold, Italic: f.Italic,
		Weight: f.Weight, LineHeight: f.LineHeight, LetterSpacing: f.LetterSpacing, WordSpacing: f.WordSpacing,
		TextAlign: textAlignNames[f.TextAlign], Decoration: uint8(f.Decoration),
	}
}

func docToFont(d FontDoc) kirtree.Font {
	return kirtree.Font{
		Size: d.Size, Family: d.Family, Color: docToColor(d.Color), Bold: d.Bold, Italic: d.Italic,
		Weight: d.Weight, LineHeight: d.LineHeight, LetterSpacing: d.LetterSpacing, WordSpacing: d.WordSpacing,
		TextAlign: textAlignByName[d.TextAlign], Decoration: kirtree.TextDecoration(d.Decoration),
	}
}

func shadowToDoc(s kirtree.Shadow) ShadowDoc {
	return ShadowDoc{
		Enabled: s.Enabled, Inset: s.Inset, OffsetX: s.OffsetX, OffsetY: s.OffsetY,
		Blur: s.Blur, Spread: s.Spread, Color: colorToDoc(s.Color),
	}
}

func docToShadow(d ShadowDoc) kirtree.Shadow {
	return kirtree.Shadow{
		Enabled: d.Enabled, Inset: d.Inset, OffsetX: d.OffsetX, OffsetY: d.OffsetY,
		Blur: d.Blur, Spread: d.Spread, Color: docToColor(d.Color),
	}
}

func styleToDoc(s *kirtree.Style) *StyleDoc {
	d := &StyleDoc{
		Visible: s.Visible, Opacity: s.Opacity, ZIndex: s.ZIndex,
		Position: positionNames[s.Position], AbsX: s.AbsX, AbsY: s.AbsY,
		Width: dimensionToDoc(s.Width), Height: dimensionToDoc(s.Height),
		Background: colorToDoc(s.Background),
		Border:     BorderDoc{Width: s.Border.Width, Radius: s.Border.Radius, Color: colorToDoc(s.Border.Color)},
		Margin:     EdgeInsetsDoc{s.Margin.Top, s.Margin.Right, s.Margin.Bottom, s.Margin.Left},
		Padding:    EdgeInsetsDoc{s.Padding.Top, s.Padding.Right, s.Padding.Bottom, s.Padding.Left},
		Font:       fontToDoc(s.Font),
		TextEffects: TextEffectsDoc{
			Overflow: textOverflowNames[s.TextEffects.Overflow], Fade: fadeTypeNames[s.TextEffects.Fade],
			FadeLength: s.TextEffects.FadeLength, Shadow: shadowToDoc(s.TextEffects.Shadow),
			MaxWidth: s.TextEffects.MaxWidth, Direction: textDirectionNames[s.TextEffects.Direction],
			Language: s.TextEffects.Language,
		},
		Transform: TransformDoc{s.Transform.ScaleX, s.Transform.ScaleY, s.Transform.TranslateX, s.Transform.TranslateY, s.Transform.Rotate},
		BoxShadow: shadowToDoc(s.BoxShadow),
		GridItem: GridItemDoc{
			RowStart: s.GridItem.RowStart, RowEnd: s.GridItem.RowEnd,
			ColStart: s.GridItem.ColStart, ColEnd: s.GridItem.ColEnd,
			JustifySelf: s.GridItem.JustifySelf, AlignSelf: s.GridItem.AlignSelf,
		},
		ContainerQueryType: containerQueryNames[s.ContainerQueryType],
		ContainerQueryName: s.ContainerQueryName,
		PseudoState:        uint8(s.PseudoState),
	}
	for _, f := range s.Filters {
		d.Filters = append(d.Filters, FilterOpDoc{Type: f.Type, Value: f.Value})
	}
	for _, bp := range s.Breakpoints {
		bd := BreakpointDoc{
			MinWidth: bp.Condition.MinWidth, MaxWidth: bp.Condition.MaxWidth,
			MinHeight: bp.Condition.MinHeight, MaxHeight: bp.Condition.MaxHeight,
		}
		if bp.Overrides != nil {
			bd.Overrides = styleToDoc(bp.Overrides)
		}
		d.Breakpoints = append(d.Breakpoints, bd)
	}
	for _, a := range s.Animations {
		d.Animations = append(d.Animations, animationToDoc(a))
	}
	for _, t := range s.Transitions {
		d.Transitions = append(d.Transitions, transitionToDoc(t))
	}
	return d
}

func docToStyle(d *StyleDoc) *kirtree.Style {
	s := &kirtree.Style{
		Visible: d.Visible, Opacity: d.Opacity, ZIndex: d.ZIndex,
		Position: positionByName[d.Position], AbsX: d.AbsX, AbsY: d.AbsY,
		Width: docToDimension(d.Width), Height: docToDimension(d.Height),
		Background: docToColor(d.Background),
		Border:     kirtree.Border{Width: d.Border.Width, Radius: d.Border.Radius, Color: docToColor(d.Border.Color)},
		Margin:     kirtree.EdgeInsets{Top: d.Margin.Top, Right: d.Margin.Right, Bottom: d.Margin.Bottom, Left: d.Margin.Left},
		Padding:    kirtree.EdgeInsets{Top: d.Padding.Top, Right: d.Padding.Right, Bottom: d.Padding.Bottom, Left: d.Padding.Left},
		Font:       docToFont(d.Font),
		TextEffects: kirtree.TextEffects{
			Overflow: textOverflowByName[d.TextEffects.Overflow], Fade: fadeTypeByName[d.TextEffects.Fade],
			FadeLength: d.TextEffects.FadeLength, Shadow: docToShadow(d.TextEffects.Shadow),
			MaxWidth: d.TextEffects.MaxWidth, Direction: textDirectionByName[d.TextEffects.Direction],
			Language: d.TextEffects.Language,
		},
		Transform: kirtree.Transform{
			ScaleX: d.Transform.ScaleX, ScaleY: d.Transform.ScaleY,
			TranslateX: d.Transform.TranslateX, TranslateY: d.Transform.TranslateY, Rotate: d.Transform.Rotate,
		},
		BoxShadow: docToShadow(d.BoxShadow),
		GridItem: kirtree.GridItemPlacement{
			RowStart: d.GridItem.RowStart, RowEnd: d.GridItem.RowEnd,
			ColStart: d.GridItem.ColStart, ColEnd: d.GridItem.ColEnd,
			JustifySelf: d.GridItem.JustifySelf, AlignSelf: d.GridItem.AlignSelf,
		},
		ContainerQueryType: containerQueryByName[d.ContainerQueryType],
		ContainerQueryName: d.ContainerQueryName,
		PseudoState:        kirtree.PseudoState(d.PseudoState),
	}
	for _, f := range d.Filters {
		s.Filters = append(s.Filters, kirtree.FilterOp{Type: f.Type, Value: f.Value})
	}
	for _, bp := range d.Breakpoints {
		cond := kirtree.BreakpointCondition{
			MinWidth: bp.MinWidth, MaxWidth: bp.MaxWidth, MinHeight: bp.MinHeight, MaxHeight: bp.MaxHeight,
		}
		var overrides *kirtree.Style
		if bp.Overrides != nil {
			overrides = docToStyle(bp.Overrides)
		}
		s.Breakpoints = append(s.Breakpoints, kirtree.Breakpoint{Condition: cond, Overrides: overrides})
	}
	for _, a := range d.Animations {
		s.Animations = append(s.Animations, docToAnimation(a))
	}
	for _, t := range d.Transitions {
		s.Transitions = append(s.Transitions, docToTransition(t))
	}
	return s
}

var textOverflowNames = map[kirtree.TextOverflow]string{kirtree.OverflowClip: "clip", kirtree.OverflowEllipsis: "ellipsis", kirtree.OverflowVisible: "visible"}
var textOverflowByName = map[string]kirtree.TextOverflow{"clip": kirtree.OverflowClip, "ellipsis": kirtree.OverflowEllipsis, "visible": kirtree.OverflowVisible}
var fadeTypeNames = map[kirtree.FadeType]string{kirtree.FadeNone: "none", kirtree.FadeEdge: "edge", kirtree.FadeGradient: "gradient"}
var fadeTypeByName = map[string]kirtree.FadeType{"none": kirtree.FadeNone, "edge": kirtree.FadeEdge, "gradient": kirtree.FadeGradient}
var textDirectionNames = map[kirtree.TextDirection]string{kirtree.DirectionLTR: "ltr", kirtree.DirectionRTL: "rtl", kirtree.DirectionAuto: "auto"}
var textDirectionByName = map[string]kirtree.TextDirection{"ltr": kirtree.DirectionLTR, "rtl": kirtree.DirectionRTL, "auto": kirtree.DirectionAuto}
var containerQueryNames = map[kirtree.ContainerQueryType]string{kirtree.ContainerQueryNone: "none", kirtree.ContainerQuerySize: "size", kirtree.ContainerQueryInlineSize: "inline_size"}
var containerQueryByName = map[string]kirtree.ContainerQueryType{"none": kirtree.ContainerQueryNone, "size": kirtree.ContainerQuerySize, "inline_size": kirtree.ContainerQueryInlineSize}

var animPropNames = map[kirtree.AnimatableProperty]string{
	kirtree.PropOpacity: "opacity", kirtree.PropTranslateX: "translate_x", kirtree.PropTranslateY: "translate_y",
	kirtree.PropScaleX: "scale_x", kirtree.PropScaleY: "scale_y", kirtree.PropRotate: "rotate",
	kirtree.PropBackgroundColor: "background_color",
}
var animPropByName = invertAnimProps()

func invertAnimProps() map[string]kirtree.AnimatableProperty {
	m := make(map[string]kirtree.AnimatableProperty, len(animPropNames))
	for k, v := range animPropNames {
		m[v] = k
	}
	return m
}

var easingTypeNames = map[kirtree.EasingType]string{
	kirtree.EasingLinear: "linear", kirtree.EasingEaseIn: "ease_in", kirtree.EasingEaseOut: "ease_out",
	kirtree.EasingEaseInOut: "ease_in_out", kirtree.EasingCubicBezier: "cubic_bezier",
}
var easingTypeByName = invertEasingTypes()

func invertEasingTypes() map[string]kirtree.EasingType {
	m := make(map[string]kirtree.EasingType, len(easingTypeNames))
	for k, v := range easingTypeNames {
		m[v] = k
	}
	return m
}

func easingToDoc(e kirtree.Easing) EasingDoc {
	return EasingDoc{Type: easingTypeNames[e.Type], X1: e.X1, Y1: e.Y1, X2: e.X2, Y2: e.Y2}
}

func docToEasing(d EasingDoc) kirtree.Easing {
	return kirtree.Easing{Type: easingTypeByName[d.Type], X1: d.X1, Y1: d.Y1, X2: d.X2, Y2: d.Y2}
}

func animationToDoc(a *kirtree.Animation) AnimationDoc {
	d := AnimationDoc{
		Name: a.Name, Duration: a.Duration, Delay: a.Delay,
		IterationCount: a.IterationCount, Alternate: a.Alternate,
		Easing: easingToDoc(a.DefaultEasing),
	}
	for _, k := range a.Keyframes {
		kd := KeyframeDoc{Offset: k.Offset}
		if k.Easing != nil {
			ed := easingToDoc(*k.Easing)
			kd.Easing = &ed
		}
		for _, p := range k.Properties {
			pd := KeyframePropertyDoc{Property: animPropNames[p.Property], Number: p.Number}
			if p.IsColor {
				c := colorToDoc(p.Color)
				pd.Color = &c
			}
			kd.Properties = append(kd.Properties, pd)
		}
		d.Keyframes = append(d.Keyframes, kd)
	}
	return d
}

func docToAnimation(d AnimationDoc) *kirtree.Animation {
	a := &kirtree.Animation{
		Name: d.Name, Duration: d.Duration, Delay: d.Delay,
		IterationCount: d.IterationCount, Alternate: d.Alternate,
		DefaultEasing: docToEasing(d.Easing),
	}
	for _, kd := range d.Keyframes {
		k := &kirtree.Keyframe{Offset: kd.Offset}
		if kd.Easing != nil {
			e := docToEasing(*kd.Easing)
			k.Easing = &e
		}
		for _, pd := range kd.Properties {
			p := kirtree.KeyframeProperty{Property: animPropByName[pd.Property], Number: pd.Number, IsSet: true}
			if pd.Color != nil {
				p.Color = docToColor(*pd.Color)
				p.IsColor = true
			}
			k.Properties = append(k.Properties, p)
		}
		a.Keyframes = append(a.Keyframes, k)
	}
	return a
}

func transitionToDoc(t *kirtree.Transition) TransitionDoc {
	return TransitionDoc{
		Property: animPropNames[t.Property], Duration: t.Duration, Delay: t.Delay,
		Easing: easingToDoc(t.Easing), TriggerState: uint8(t.TriggerState),
	}
}

func docToTransition(d TransitionDoc) *kirtree.Transition {
	return &kirtree.Transition{
		Property: animPropByName[d.Property], Duration: d.Duration, Delay: d.Delay,
		Easing: docToEasing(d.Easing), TriggerState: kirtree.PseudoState(d.TriggerState),
	}
}

var trackKindNames = map[kirtree.TrackKind]string{
	kirtree.TrackPX: "px", kirtree.TrackPercent: "percent", kirtree.TrackFR: "fr",
	kirtree.TrackAuto: "auto", kirtree.TrackMinContent: "min_content", kirtree.TrackMaxContent: "max_content",
}
var trackKindByName = invertTrackKinds()

func invertTrackKinds() map[string]kirtree.TrackKind {
	m := make(map[string]kirtree.TrackKind, len(trackKindNames))
	for k, v := range trackKindNames {
		m[v] = k
	}
	return m
}

func layoutToDoc(l *kirtree.Layout) *LayoutDoc {
	d := &LayoutDoc{
		Mode: layoutModeNames[l.Mode],
		Flex: FlexLayoutDoc{
			Direction: uint8(l.Flex.Direction), Wrap: l.Flex.Wrap, Gap: l.Flex.Gap,
			JustifyContent: justifyNames[l.Flex.JustifyContent], AlignItems: alignNames[l.Flex.AlignItems],
			Grow: l.Flex.Grow, Shrink: l.Flex.Shrink, BaseDirection: baseDirNames[l.Flex.BaseDirection],
			UnicodeBidi: l.Flex.UnicodeBidi,
		},
		MinWidth: dimensionToDoc(l.MinWidth), MaxWidth: dimensionToDoc(l.MaxWidth),
		MinHeight: dimensionToDoc(l.MinHeight), MaxHeight: dimensionToDoc(l.MaxHeight),
		AspectRatio: l.AspectRatio,
	}
	for _, t := range l.Grid.Rows {
		d.Grid.Rows = append(d.Grid.Rows, GridTrackDoc{Kind: trackKindNames[t.Kind], Value: t.Value})
	}
	for _, t := range l.Grid.Cols {
		d.Grid.Cols = append(d.Grid.Cols, GridTrackDoc{Kind: trackKindNames[t.Kind], Value: t.Value})
	}
	d.Grid.RowGap = l.Grid.RowGap
	d.Grid.ColGap = l.Grid.ColGap
	d.Grid.AutoFlow = autoFlowNames[l.Grid.AutoFlow]
	d.Grid.JustifyItems = l.Grid.JustifyItems
	d.Grid.AlignItems = l.Grid.AlignItems
	d.Grid.JustifyContent = l.Grid.JustifyContent
	d.Grid.AlignContent = l.Grid.AlignContent
	return d
}

func docToLayout(d *LayoutDoc) *kirtree.Layout {
	l := &kirtree.Layout{
		Mode: layoutModeByName[d.Mode],
		Flex: kirtree.FlexLayout{
			Direction: kirtree.FlexDirection(d.Flex.Direction), Wrap: d.Flex.Wrap, Gap: d.Flex.Gap,
			JustifyContent: justifyByName[d.Flex.JustifyContent], AlignItems: alignByName[d.Flex.AlignItems],
			Grow: d.Flex.Grow, Shrink: d.Flex.Shrink, BaseDirection: baseDirByName[d.Flex.BaseDirection],
			UnicodeBidi: d.Flex.UnicodeBidi,
		},
		MinWidth: docToDimension(d.MinWidth), MaxWidth: docToDimension(d.MaxWidth),
		MinHeight: docToDimension(d.MinHeight), MaxHeight: docToDimension(d.MaxHeight),
		AspectRatio: d.AspectRatio,
	}
	for _, t := range d.Grid.Rows {
		l.Grid.Rows = append(l.Grid.Rows, kirtree.GridTrack{Kind: trackKindByName[t.Kind], Value: t.Value})
	}
	for _, t := range d.Grid.Cols {
		l.Grid.Cols = append(l.Grid.Cols, kirtree.GridTrack{Kind: trackKindByName[t.Kind], Value: t.Value})
	}
	l.Grid.RowGap = d.Grid.RowGap
	l.Grid.ColGap = d.Grid.ColGap
	l.Grid.AutoFlow = autoFlowByName[d.Grid.AutoFlow]
	l.Grid.JustifyItems = d.Grid.JustifyItems
	l.Grid.AlignItems = d.Grid.AlignItems
	l.Grid.JustifyContent = d.Grid.JustifyContent
	l.Grid.AlignContent = d.Grid.AlignContent
	return l
}

var autoFlowNames = map[kirtree.AutoFlow]string{
	kirtree.AutoFlowRow: "row", kirtree.AutoFlowRowDense: "row_dense",
	kirtree.AutoFlowColumn: "column", kirtree.AutoFlowColumnDense: "column_dense",
}
var autoFlowByName = invertAutoFlow()

func invertAutoFlow() map[string]kirtree.AutoFlow {
	m := make(map[string]kirtree.AutoFlow, len(autoFlowNames))
	for k, v := range autoFlowNames {
		m[v] = k
	}
	return m
}

var layoutModeNames = map[kirtree.LayoutMode]string{kirtree.LayoutFlex: "flex", kirtree.LayoutGrid: "grid", kirtree.LayoutBlock: "block"}
var layoutModeByName = map[string]kirtree.LayoutMode{"flex": kirtree.LayoutFlex, "grid": kirtree.LayoutGrid, "block": kirtree.LayoutBlock}
var justifyNames = map[kirtree.JustifyContent]string{
	kirtree.JustifyStart: "start", kirtree.JustifyEnd: "end", kirtree.JustifyCenter: "center",
	kirtree.JustifySpaceBetween: "space_between", kirtree.JustifySpaceAround: "space_around", kirtree.JustifySpaceEvenly: "space_evenly",
}
var justifyByName = invertJustify()

func invertJustify() map[string]kirtree.JustifyContent {
	m := make(map[string]kirtree.JustifyContent, len(justifyNames))
	for k, v := range justifyNames {
		m[v] = k
	}
	return m
}

var alignNames = map[kirtree.AlignItems]string{
	kirtree.AlignItemsStart: "start", kirtree.AlignItemsEnd: "end", kirtree.AlignItemsCenter: "center",
	kirtree.AlignItemsStretch: "stretch", kirtree.AlignItemsBaseline: "baseline",
}
var alignByName = invertAlign()

func invertAlign() map[string]kirtree.AlignItems {
	m := make(map[string]kirtree.AlignItems, len(alignNames))
	for k, v := range alignNames {
		m[v] = k
	}
	return m
}

var baseDirNames = map[kirtree.BaseDirection]string{
	kirtree.BaseDirectionLTR: "ltr", kirtree.BaseDirectionRTL: "rtl",
	kirtree.BaseDirectionAuto: "auto", kirtree.BaseDirectionInherit: "inherit",
}
var baseDirByName = invertBaseDir()

func invertBaseDir() map[string]kirtree.BaseDirection {
	m := make(map[string]kirtree.BaseDirection, len(baseDirNames))
	for k, v := range baseDirNames {
		m[v] = k
	}
	return m
}
