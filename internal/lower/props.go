package lower

import (
	"strconv"
	"strings"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/kry/ast"
	"github.com/kryonlabs/kryon-ir/internal/kry/parser"
)

// applyProperty routes one (component, property-name, value) triple to
// the matching typed setter (spec §4.5 "Property dispatch"). Values are
// resolved lazily; an unresolved value (a parameter with no binding
// yet) leaves the property untouched, with a warning in ModeRuntime.
func (c *Converter) applyProperty(comp *kirtree.Component, name string, v ast.Expression, pos ast.Base) {
	if comp == nil {
		return
	}

	switch name {
	case "onClick", "on_click":
		c.attachHandler(comp, kirtree.EventClick, v, pos)
		return
	case "onHover", "on_hover":
		c.attachHandler(comp, kirtree.EventHover, v, pos)
		return
	case "onFocus", "on_focus":
		c.attachHandler(comp, kirtree.EventFocus, v, pos)
		return
	case "onBlur", "on_blur":
		c.attachHandler(comp, kirtree.EventBlur, v, pos)
		return
	case "onKey", "on_key":
		c.attachHandler(comp, kirtree.EventKey, v, pos)
		return
	case "onScroll", "on_scroll":
		c.attachHandler(comp, kirtree.EventScroll, v, pos)
		return
	case "onTimer", "on_timer":
		c.attachHandler(comp, kirtree.EventTimer, v, pos)
		return
	}

	val, unresolved := c.resolveValueAsString(v)
	if unresolved {
		if c.cc.Mode == ModeRuntime {
			c.diag(parser.SeverityWarning, parser.CategorySemantic, pos,
				"property '"+name+"' references an unbound parameter")
		}
		return
	}

	switch name {
	case "id":
		tag := val
		comp.Tag = &tag
	case "scope":
		kirtree.SetScope(comp, val)
	case "text", "content", "label", "title":
		kirtree.SetText(comp, val)
	case "style":
		c.applyNamedStyle(comp, val, pos)
	case "disabled":
		kirtree.SetDisabled(comp, truthy(val))
	case "level":
		if n, err := strconv.Atoi(val); err == nil {
			kirtree.SetHeadingLevel(comp, n)
		}
	case "z_index", "zIndex":
		if n, err := strconv.Atoi(val); err == nil {
			comp.ZIndex = n
			if comp.Style != nil {
				comp.Style.ZIndex = n
			}
		}

	case "width":
		c.ensureStyle(comp).Width = parseDimension(val)
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "height":
		c.ensureStyle(comp).Height = parseDimension(val)
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "min_width", "minWidth":
		c.ensureLayout(comp).MinWidth = parseDimension(val)
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "max_width", "maxWidth":
		c.ensureLayout(comp).MaxWidth = parseDimension(val)
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "min_height", "minHeight":
		c.ensureLayout(comp).MinHeight = parseDimension(val)
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "max_height", "maxHeight":
		c.ensureLayout(comp).MaxHeight = parseDimension(val)
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "aspect_ratio", "aspectRatio":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureLayout(comp).AspectRatio = f
		}

	case "background", "background_color", "backgroundColor":
		c.ensureStyle(comp).Background = kirtree.ParseColor(val)
		kirtree.MarkDirty(comp, kirtree.DirtyStyle)
	case "color", "text_color", "textColor":
		c.ensureStyle(comp).Font.Color = kirtree.ParseColor(val)
		kirtree.MarkDirty(comp, kirtree.DirtyStyle)
	case "opacity":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureStyle(comp).Opacity = clamp01(f)
		}
	case "visible":
		c.ensureStyle(comp).Visible = truthy(val)
		kirtree.MarkDirty(comp, kirtree.DirtyStyle)

	case "position":
		s := c.ensureStyle(comp)
		if val == "absolute" {
			s.Position = kirtree.PositionAbsolute
		} else {
			s.Position = kirtree.PositionRelative
		}
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "x", "left":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureStyle(comp).AbsX = f
			kirtree.MarkDirty(comp, kirtree.DirtyLayout)
		}
	case "y", "top":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureStyle(comp).AbsY = f
			kirtree.MarkDirty(comp, kirtree.DirtyLayout)
		}

	case "font_size", "fontSize":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureStyle(comp).Font.Size = f
		}
	case "font_family", "fontFamily":
		c.ensureStyle(comp).Font.Family = val
	case "font_weight", "fontWeight":
		if n, err := strconv.Atoi(val); err == nil {
			c.ensureStyle(comp).Font.Weight = clampWeight(n)
		}
	case "bold":
		c.ensureStyle(comp).Font.Bold = truthy(val)
	case "italic":
		c.ensureStyle(comp).Font.Italic = truthy(val)
	case "line_height", "lineHeight":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureStyle(comp).Font.LineHeight = f
		}
	case "text_align", "textAlign":
		c.ensureStyle(comp).Font.TextAlign = parseTextAlign(val)

	case "margin":
		c.ensureStyle(comp).Margin = parseInsets(val)
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "padding":
		c.ensureStyle(comp).Padding = parseInsets(val)
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)

	case "border_width", "borderWidth":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureStyle(comp).Border.Width = f
		}
	case "border_radius", "borderRadius":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureStyle(comp).Border.Radius = f
		}
	case "border_color", "borderColor":
		c.ensureStyle(comp).Border.Color = kirtree.ParseColor(val)

	case "gap":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureLayout(comp).Flex.Gap = f
			kirtree.MarkDirty(comp, kirtree.DirtyLayout)
		}
	case "direction":
		l := c.ensureLayout(comp)
		switch val {
		case "row":
			l.Flex.Direction = kirtree.FlexRow
		case "column":
			l.Flex.Direction = kirtree.FlexColumn
		case "none":
			l.Flex.Direction = kirtree.FlexDirectionNone
		}
		kirtree.MarkDirty(comp, kirtree.DirtyLayout)
	case "wrap":
		c.ensureLayout(comp).Flex.Wrap = truthy(val)
	case "justify_content", "justifyContent":
		c.ensureLayout(comp).Flex.JustifyContent = parseJustify(val)
	case "align_items", "alignItems":
		c.ensureLayout(comp).Flex.AlignItems = parseAlignItems(val)
	case "grow":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureLayout(comp).Flex.Grow = f
		}
	case "shrink":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			c.ensureLayout(comp).Flex.Shrink = f
		}

	case "src", "source", "href":
		tag := val
		comp.Tag = &tag
	case "checked":
		s := c.ensureStyle(comp)
		if truthy(val) {
			s.PseudoState |= kirtree.PseudoChecked
		} else {
			s.PseudoState &^= kirtree.PseudoChecked
		}
	case "transition":
		c.applyTransitionShorthand(comp, val)

	default:
		c.diag(parser.SeverityWarning, parser.CategorySemantic, pos,
			"unknown property '"+name+"'")
	}
}

func (c *Converter) ensureStyle(comp *kirtree.Component) *kirtree.Style {
	if comp.Style == nil {
		comp.Style = kirtree.NewStyle()
	}
	return comp.Style
}

func (c *Converter) ensureLayout(comp *kirtree.Component) *kirtree.Layout {
	if comp.Layout == nil {
		comp.Layout = kirtree.NewLayout()
	}
	return comp.Layout
}

func (c *Converter) applyNamedStyle(comp *kirtree.Component, name string, pos ast.Base) {
	rule, ok := c.styles[name]
	if !ok {
		c.diag(parser.SeverityWarning, parser.CategorySemantic, pos,
			"unknown style block '"+name+"'")
		return
	}
	copied := *rule
	kirtree.SetStyle(comp, &copied)
}

// attachHandler builds an Event record carrying the handler body as
// source for the external logic runtime; the IR core never executes it.
func (c *Converter) attachHandler(comp *kirtree.Component, t kirtree.EventType, v ast.Expression, pos ast.Base) {
	lang := "lua"
	if c.cc.Platform == PlatformJS {
		lang = "js"
	}
	code, _ := c.resolveValueAsString(v)
	e := &kirtree.Event{
		Type:    t,
		LogicID: c.nextHandlerID(),
		HandlerSource: &kirtree.HandlerSource{
			Language: lang,
			Code:     code,
			File:     c.cc.SourcePath,
			Line:     pos.Position.Line,
		},
	}
	comp.Events = kirtree.PushEvent(comp.Events, e)
}

// applyTransitionShorthand parses "opacity 0.3 ease_in_out" style
// shorthand into a Transition entry.
func (c *Converter) applyTransitionShorthand(comp *kirtree.Component, val string) {
	parts := strings.Fields(val)
	if len(parts) < 2 {
		return
	}
	prop, ok := parseAnimProperty(parts[0])
	if !ok {
		return
	}
	dur, err := strconv.ParseFloat(strings.TrimSuffix(parts[1], "s"), 64)
	if err != nil {
		return
	}
	tr := &kirtree.Transition{Property: prop, Duration: dur}
	if len(parts) >= 3 {
		tr.Easing = parseEasing(parts[2])
	}
	if len(parts) >= 4 {
		if d, err := strconv.ParseFloat(strings.TrimSuffix(parts[3], "s"), 64); err == nil {
			tr.Delay = d
		}
	}
	s := c.ensureStyle(comp)
	s.Transitions = append(s.Transitions, tr)
}

func parseAnimProperty(s string) (kirtree.AnimatableProperty, bool) {
	switch s {
	case "opacity":
		return kirtree.PropOpacity, true
	case "translate_x", "translateX":
		return kirtree.PropTranslateX, true
	case "translate_y", "translateY":
		return kirtree.PropTranslateY, true
	case "scale_x", "scaleX":
		return kirtree.PropScaleX, true
	case "scale_y", "scaleY":
		return kirtree.PropScaleY, true
	case "rotate":
		return kirtree.PropRotate, true
	case "background", "background_color", "backgroundColor":
		return kirtree.PropBackgroundColor, true
	default:
		return 0, false
	}
}

func parseEasing(s string) kirtree.Easing {
	switch s {
	case "ease_in", "easeIn", "ease-in":
		return kirtree.Easing{Type: kirtree.EasingEaseIn}
	case "ease_out", "easeOut", "ease-out":
		return kirtree.Easing{Type: kirtree.EasingEaseOut}
	case "ease_in_out", "easeInOut", "ease-in-out":
		return kirtree.Easing{Type: kirtree.EasingEaseInOut}
	default:
		return kirtree.Easing{Type: kirtree.EasingLinear}
	}
}

// parseDimension parses "120", "50%", "auto", and "flex" forms.
func parseDimension(s string) kirtree.Dimension {
	s = strings.TrimSpace(s)
	switch s {
	case "auto", "":
		return kirtree.AutoDimension()
	case "flex":
		return kirtree.Flex(1)
	}
	if strings.HasSuffix(s, "%") {
		if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64); err == nil {
			return kirtree.Percent(f)
		}
		return kirtree.AutoDimension()
	}
	if f, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64); err == nil {
		return kirtree.PX(f)
	}
	return kirtree.AutoDimension()
}

// parseInsets parses "8", "8 16", or "8 16 4 2" (CSS top/right/bottom/
// left order).
func parseInsets(s string) kirtree.EdgeInsets {
	parts := strings.Fields(s)
	nums := make([]float64, 0, 4)
	for _, p := range parts {
		if f, err := strconv.ParseFloat(p, 64); err == nil {
			nums = append(nums, f)
		}
	}
	switch len(nums) {
	case 1:
		return kirtree.EdgeInsets{Top: nums[0], Right: nums[0], Bottom: nums[0], Left: nums[0]}
	case 2:
		return kirtree.EdgeInsets{Top: nums[0], Right: nums[1], Bottom: nums[0], Left: nums[1]}
	case 4:
		return kirtree.EdgeInsets{Top: nums[0], Right: nums[1], Bottom: nums[2], Left: nums[3]}
	default:
		return kirtree.EdgeInsets{}
	}
}

func parseTextAlign(s string) kirtree.TextAlign {
	switch s {
	case "center":
		return kirtree.AlignCenter
	case "right":
		return kirtree.AlignRight
	case "justify":
		return kirtree.AlignJustify
	default:
		return kirtree.AlignLeft
	}
}

func parseJustify(s string) kirtree.JustifyContent {
	switch s {
	case "end", "flex-end":
		return kirtree.JustifyEnd
	case "center":
		return kirtree.JustifyCenter
	case "space_between", "space-between":
		return kirtree.JustifySpaceBetween
	case "space_around", "space-around":
		return kirtree.JustifySpaceAround
	case "space_evenly", "space-evenly":
		return kirtree.JustifySpaceEvenly
	default:
		return kirtree.JustifyStart
	}
}

func parseAlignItems(s string) kirtree.AlignItems {
	switch s {
	case "end", "flex-end":
		return kirtree.AlignItemsEnd
	case "center":
		return kirtree.AlignItemsCenter
	case "stretch":
		return kirtree.AlignItemsStretch
	case "baseline":
		return kirtree.AlignItemsBaseline
	default:
		return kirtree.AlignItemsStart
	}
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampWeight(n int) int {
	if n < 100 {
		return 100
	}
	if n > 900 {
		return 900
	}
	return n
}
