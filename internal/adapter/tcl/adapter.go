package tcl

import (
	"strconv"
	"strings"

	"github.com/yaoapp/kun/log"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/serialize"
)

// widgetTypes is the authoritative widget-type mapping table; unknown
// widget commands fall back to Container (spec §6).
var widgetTypes = map[string]kirtree.ComponentType{
	"frame":       kirtree.Container,
	"labelframe":  kirtree.Container,
	"toplevel":    kirtree.Container,
	"label":       kirtree.Text,
	"message":     kirtree.Paragraph,
	"button":      kirtree.Button,
	"entry":       kirtree.Input,
	"text":        kirtree.Input,
	"checkbutton": kirtree.Checkbox,
	"radiobutton": kirtree.Checkbox,
	"menubutton":  kirtree.Dropdown,
	"listbox":     kirtree.List,
	"canvas":      kirtree.Canvas,
	"image":       kirtree.Image,
	"separator":   kirtree.HorizontalRule,
}

// optionNames maps Tk option names to IR property semantics. Options
// absent from the table are ignored with a trace log.
var optionNames = map[string]string{
	"-text":       "text",
	"-bg":         "background",
	"-background": "background",
	"-fg":         "color",
	"-foreground": "color",
	"-width":      "width",
	"-height":     "height",
	"-command":    "onClick",
	"-state":      "state",
	"-relief":     "", // presentation-only, no IR counterpart
	"-bd":         "border_width",
	"-borderwidth": "border_width",
	"-padx":       "padding_x",
	"-pady":       "padding_y",
	"-justify":    "text_align",
	"-font":       "font",
}

// Parse parses Tcl/Tk source into an IR tree inside a fresh context.
// The root is a Container standing in for `.`, the Tk root window.
// Widget paths build the hierarchy: `.a.b` becomes a child of `.a`.
func Parse(source string) (*kirtree.IRContext, *kirtree.Component) {
	ctx := kirtree.NewIRContext(0)
	root := kirtree.NewContainer(ctx)
	rootTag := "."
	root.Tag = &rootTag
	ctx.Root = root

	byPath := map[string]*kirtree.Component{".": root}

	for _, cmd := range splitCommands(source) {
		applyCommand(ctx, byPath, cmd)
	}
	return ctx, root
}

// ParseToKIR parses Tcl/Tk source and serializes the result as a KIR
// document (spec §6: "parse(source) → KIR document").
func ParseToKIR(source string) (*serialize.Document, error) {
	ctx, _ := Parse(source)
	return serialize.Serialize(ctx), nil
}

func applyCommand(ctx *kirtree.IRContext, byPath map[string]*kirtree.Component, cmd command) {
	name := cmd.words[0]
	switch name {
	case "pack", "grid", "place":
		applyGeometry(byPath, cmd)
		return
	case "wm":
		applyWindowManager(ctx, cmd)
		return
	case "destroy":
		if len(cmd.words) >= 2 {
			if c, ok := byPath[cmd.words[1]]; ok {
				delete(byPath, cmd.words[1])
				kirtree.Destroy(ctx, c)
			}
		}
		return
	}

	// Widget-creation command or widget path invocation.
	if strings.HasPrefix(name, ".") {
		applyWidgetMethod(byPath, cmd)
		return
	}
	if len(cmd.words) < 2 || !strings.HasPrefix(cmd.words[1], ".") {
		log.Trace("tcl: ignoring command %q at line %d", name, cmd.line)
		return
	}

	t, known := widgetTypes[name]
	if !known {
		t = kirtree.Container
	}
	path := cmd.words[1]
	comp := kirtree.NewComponentIn(ctx, t)
	if comp == nil {
		return
	}
	tag := path
	comp.Tag = &tag
	kirtree.SetScope(comp, strings.TrimPrefix(path, "."))
	byPath[path] = comp

	parent := parentOf(byPath, path)
	kirtree.AddChild(parent, comp)

	applyOptions(comp, cmd.words[2:])
}

// parentOf resolves a widget path's parent component, defaulting to the
// root when intermediate paths were never created.
func parentOf(byPath map[string]*kirtree.Component, path string) *kirtree.Component {
	idx := strings.LastIndex(path, ".")
	parentPath := path[:idx]
	if parentPath == "" {
		parentPath = "."
	}
	if p, ok := byPath[parentPath]; ok {
		return p
	}
	return byPath["."]
}

// applyWidgetMethod handles `.path configure -opt value ...` and
// `.path insert/delete ...` forms; only configure mutates IR state.
func applyWidgetMethod(byPath map[string]*kirtree.Component, cmd command) {
	comp, ok := byPath[cmd.words[0]]
	if !ok || len(cmd.words) < 2 {
		return
	}
	if cmd.words[1] == "configure" || cmd.words[1] == "config" {
		applyOptions(comp, cmd.words[2:])
	}
}

func applyOptions(comp *kirtree.Component, words []string) {
	for i := 0; i+1 < len(words); i += 2 {
		opt, val := words[i], words[i+1]
		mapped, known := optionNames[opt]
		if !known {
			log.Trace("tcl: unmapped option %q", opt)
			continue
		}
		if mapped == "" {
			continue
		}
		applyOption(comp, mapped, val)
	}
}

func applyOption(comp *kirtree.Component, name, val string) {
	switch name {
	case "text":
		kirtree.SetText(comp, val)
	case "background":
		ensureStyle(comp).Background = kirtree.ParseColor(val)
	case "color":
		ensureStyle(comp).Font.Color = kirtree.ParseColor(val)
	case "width":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			ensureStyle(comp).Width = kirtree.PX(f)
		}
	case "height":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			ensureStyle(comp).Height = kirtree.PX(f)
		}
	case "border_width":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			ensureStyle(comp).Border.Width = f
		}
	case "padding_x":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			s := ensureStyle(comp)
			s.Padding.Left, s.Padding.Right = f, f
		}
	case "padding_y":
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			s := ensureStyle(comp)
			s.Padding.Top, s.Padding.Bottom = f, f
		}
	case "text_align":
		switch val {
		case "center":
			ensureStyle(comp).Font.TextAlign = kirtree.AlignCenter
		case "right":
			ensureStyle(comp).Font.TextAlign = kirtree.AlignRight
		}
	case "font":
		parseTkFont(ensureStyle(comp), val)
	case "state":
		kirtree.SetDisabled(comp, val == "disabled")
	case "onClick":
		comp.Events = kirtree.PushEvent(comp.Events, &kirtree.Event{
			Type: kirtree.EventClick,
			HandlerSource: &kirtree.HandlerSource{
				Language: "tcl",
				Code:     val,
			},
		})
	}
}

// parseTkFont handles the common `{family size ?bold? ?italic?}` form.
func parseTkFont(s *kirtree.Style, val string) {
	parts := strings.Fields(val)
	if len(parts) == 0 {
		return
	}
	s.Font.Family = parts[0]
	if len(parts) >= 2 {
		if f, err := strconv.ParseFloat(parts[1], 64); err == nil {
			s.Font.Size = f
		}
	}
	for _, p := range parts[2:] {
		switch p {
		case "bold":
			s.Font.Bold = true
		case "italic":
			s.Font.Italic = true
		}
	}
}

// applyGeometry maps pack/grid options onto the parent's layout: pack
// -side left/right implies a flex row, grid -row/-column places the
// item.
func applyGeometry(byPath map[string]*kirtree.Component, cmd command) {
	if len(cmd.words) < 2 || !strings.HasPrefix(cmd.words[1], ".") {
		return
	}
	comp, ok := byPath[cmd.words[1]]
	if !ok || comp.Parent == nil {
		return
	}
	parent := comp.Parent
	if parent.Layout == nil {
		parent.Layout = kirtree.NewLayout()
	}

	switch cmd.words[0] {
	case "pack":
		for i := 2; i+1 < len(cmd.words); i += 2 {
			if cmd.words[i] == "-side" && (cmd.words[i+1] == "left" || cmd.words[i+1] == "right") {
				parent.Layout.Flex.Direction = kirtree.FlexRow
			}
		}
	case "grid":
		parent.Layout.Mode = kirtree.LayoutGrid
		if comp.Style == nil {
			comp.Style = kirtree.NewStyle()
		}
		for i := 2; i+1 < len(cmd.words); i += 2 {
			v, err := strconv.Atoi(cmd.words[i+1])
			if err != nil {
				continue
			}
			switch cmd.words[i] {
			case "-row":
				comp.Style.GridItem.RowStart = v
			case "-column":
				comp.Style.GridItem.ColStart = v
			}
		}
	}
}

func applyWindowManager(ctx *kirtree.IRContext, cmd command) {
	if len(cmd.words) < 4 {
		return
	}
	if ctx.Metadata == nil {
		ctx.Metadata = &kirtree.Metadata{}
	}
	switch cmd.words[1] {
	case "title":
		ctx.Metadata.Title = cmd.words[3]
	case "geometry":
		// "800x600" form
		dims := strings.SplitN(cmd.words[3], "x", 2)
		if len(dims) == 2 {
			if w, err := strconv.ParseFloat(dims[0], 64); err == nil {
				ctx.Metadata.Width = w
			}
			if h, err := strconv.ParseFloat(dims[1], 64); err == nil {
				ctx.Metadata.Height = h
			}
		}
	}
}

func ensureStyle(comp *kirtree.Component) *kirtree.Style {
	if comp.Style == nil {
		comp.Style = kirtree.NewStyle()
	}
	return comp.Style
}
