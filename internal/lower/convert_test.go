package lower

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/kry/parser"
)

func compileClean(t *testing.T, src string) (*kirtree.IRContext, *Converter) {
	t.Helper()
	ctx, conv, p := Compile(src, &ConversionContext{})
	if p.HasErrors() {
		t.Fatalf("parse errors: %v", p.Diagnostics())
	}
	if err := conv.Err(); err != nil {
		t.Fatalf("conversion errors: %v", err)
	}
	return ctx, conv
}

func TestLowerSimpleTree(t *testing.T) {
	ctx, _ := compileClean(t, `
Container {
	direction = "row"
	gap = 8
	Text {
		text = "hello"
		color = "#336699"
		bold = true
	}
	Button {
		text = "go"
		width = 120
	}
}`)
	root := ctx.Root
	require.NotNil(t, root)
	assert.Equal(t, kirtree.Container, root.Type)
	assert.Equal(t, kirtree.FlexRow, root.Layout.Flex.Direction)
	assert.Equal(t, 8.0, root.Layout.Flex.Gap)
	require.Len(t, root.Children, 2)

	text := root.Children[0]
	assert.Equal(t, kirtree.Text, text.Type)
	require.NotNil(t, text.TextContent)
	assert.Equal(t, "hello", *text.TextContent)
	assert.True(t, text.Style.Font.Bold)
	assert.Equal(t, kirtree.RGBA{R: 0x33, G: 0x66, B: 0x99, A: 0xff}, text.Style.Font.Color.Solid)

	btn := root.Children[1]
	assert.Equal(t, kirtree.PX(120), btn.Style.Width)

	// Every lowered component is registered in the hash map.
	for _, c := range root.Children {
		got, ok := ctx.FindByID(c.ID)
		require.True(t, ok)
		assert.Same(t, c, got)
	}
}

func TestLowerParameterSubstitution(t *testing.T) {
	ctx, _ := compileClean(t, `
const title = "Dashboard"
Container {
	Text { text = title }
}`)
	text := ctx.Root.Children[0]
	require.NotNil(t, text.TextContent)
	assert.Equal(t, "Dashboard", *text.TextContent)
}

func TestLowerFunctionComponentExpansion(t *testing.T) {
	ctx, _ := compileClean(t, `
func Card(title: string, body: string) {
	Container {
		Text { text = title }
		Text { text = body }
	}
}
Container {
	Card { title = "A"; body = "first" }
	Card { title = "B"; body = "second" }
}`)
	root := ctx.Root
	require.Len(t, root.Children, 2)
	first := root.Children[0]
	require.Len(t, first.Children, 2)
	assert.Equal(t, "A", *first.Children[0].TextContent)
	assert.Equal(t, "first", *first.Children[1].TextContent)
	second := root.Children[1]
	assert.Equal(t, "B", *second.Children[0].TextContent)
}

func TestLowerForRangeExpansion(t *testing.T) {
	ctx, _ := compileClean(t, `
Column {
	for i in 0..3 {
		Text { text = i }
	}
}`)
	root := ctx.Root
	require.Len(t, root.Children, 3)
	for i, child := range root.Children {
		assert.Equal(t, formatNumber(float64(i)), *child.TextContent)
	}
}

func TestLowerForEachArray(t *testing.T) {
	ctx, _ := compileClean(t, `
const names = ["ada", "grace"]
Column {
	for each n in names {
		Text { text = n }
	}
}`)
	root := ctx.Root
	require.Len(t, root.Children, 2)
	assert.Equal(t, "ada", *root.Children[0].TextContent)
	assert.Equal(t, "grace", *root.Children[1].TextContent)
}

func TestLowerIfExpansion(t *testing.T) {
	ctx, _ := compileClean(t, `
const dark = true
Container {
	if dark {
		Text { text = "dark" }
	} else {
		Text { text = "light" }
	}
}`)
	root := ctx.Root
	require.Len(t, root.Children, 1)
	assert.Equal(t, "dark", *root.Children[0].TextContent)
}

func TestLowerExpressionValues(t *testing.T) {
	ctx, _ := compileClean(t, `
const count = 2
Container {
	Text { text = { count + 1 } }
}`)
	assert.Equal(t, "3", *ctx.Root.Children[0].TextContent)
}

func TestLowerStateToManifest(t *testing.T) {
	ctx, _ := compileClean(t, `
state counter: int = 7
Container { }`)
	require.NotNil(t, ctx.ReactiveManifest)
	assert.Equal(t, "7", ctx.ReactiveManifest.Bindings["counter"])
}

func TestLowerDuplicateStateIsError(t *testing.T) {
	_, conv, _ := Compile(`
state x: int = 1
state x: int = 2
Container { }`, &ConversionContext{})
	require.Error(t, conv.Err())
}

func TestLowerStyleBlock(t *testing.T) {
	ctx, _ := compileClean(t, `
style Primary {
	background = "#112233"
	color = "white"
}
Container {
	Button { style = "Primary"; text = "ok" }
}`)
	require.NotNil(t, ctx.Stylesheet)
	require.Contains(t, ctx.Stylesheet.Rules, "Primary")
	btn := ctx.Root.Children[0]
	assert.Equal(t, kirtree.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}, btn.Style.Background.Solid)
}

func TestLowerStructInstantiation(t *testing.T) {
	// Field binding with defaults is exercised through the expression
	// environment: a struct value resolves to a map.
	ctx2, conv2, p := Compile(`
struct Size {
	w: int = 100
	h: int = 50
}
const s = Size { w = 640 }
Container {
	Text { text = { s.w } }
	Text { text = { s.h } }
}`, &ConversionContext{})
	require.False(t, p.HasErrors())
	require.NoError(t, conv2.Err())
	assert.Equal(t, "640", *ctx2.Root.Children[0].TextContent)
	assert.Equal(t, "50", *ctx2.Root.Children[1].TextContent)
}

func TestLowerUnknownStructField(t *testing.T) {
	_, conv, _ := Compile(`
struct P { x: int = 0 }
const v = P { nope = 1 }
Container { Text { text = { v.x } } }`, &ConversionContext{})
	require.Error(t, conv.Err())
}

func TestLowerEventHandler(t *testing.T) {
	ctx, _ := compileClean(t, `
Container {
	Button {
		text = "inc"
		onClick = "counter = counter + 1"
	}
}`)
	btn := ctx.Root.Children[0]
	e, ok := kirtree.FindEvent(btn.Events, kirtree.EventClick)
	require.True(t, ok)
	require.NotNil(t, e.HandlerSource)
	assert.Equal(t, "counter = counter + 1", e.HandlerSource.Code)
	assert.Equal(t, "lua", e.HandlerSource.Language)
	assert.NotZero(t, e.LogicID)
}

func TestLowerPlatformCodeBlock(t *testing.T) {
	ctx, conv := compileClean(t, `
@lua {
	print("boot")
}
Container { }`)
	require.Len(t, conv.LogicBlocks, 1)
	assert.Equal(t, kirtree.LogicLua, conv.LogicBlocks[0].SourceType)
	assert.Contains(t, conv.LogicBlocks[0].SourceCode, `print("boot")`)
	require.Len(t, ctx.Logic, 1)
}

func TestLowerUnknownComponentType(t *testing.T) {
	ctx, conv, _ := Compile(`
Container {
	Zorp { text = "?" }
}`, &ConversionContext{})
	require.Error(t, conv.Err())
	// Lowering continues with a Container placeholder.
	require.Len(t, ctx.Root.Children, 1)
	assert.Equal(t, kirtree.Container, ctx.Root.Children[0].Type)
}

func TestLowerTransitionShorthand(t *testing.T) {
	ctx, _ := compileClean(t, `
Container {
	Button { text = "x"; transition = "opacity 0.3 ease_in_out" }
}`)
	btn := ctx.Root.Children[0]
	require.Len(t, btn.Style.Transitions, 1)
	tr := btn.Style.Transitions[0]
	assert.Equal(t, kirtree.PropOpacity, tr.Property)
	assert.Equal(t, 0.3, tr.Duration)
	assert.Equal(t, kirtree.EasingEaseInOut, tr.Easing.Type)
}

func TestLowerMultipleRootsWrapped(t *testing.T) {
	ctx, _ := compileClean(t, `
Text { text = "a" }
Text { text = "b" }`)
	require.NotNil(t, ctx.Root)
	assert.Equal(t, kirtree.Container, ctx.Root.Type)
	require.Len(t, ctx.Root.Children, 2)
}

func TestLowerImportExpansion(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "widgets.kry")
	require.NoError(t, os.WriteFile(libPath, []byte(`
func Badge(label: string) {
	Text { text = label }
}
return { Badge }
`), 0644))

	src := `
import widgets from "widgets.kry"
Container {
	Badge { label = "new" }
}`
	ctx, conv, p := Compile(src, &ConversionContext{
		SourcePath: filepath.Join(dir, "app.kry"),
	})
	require.False(t, p.HasErrors(), "%v", p.Diagnostics())
	require.NoError(t, conv.Err())
	require.Len(t, ctx.Root.Children, 1)
	assert.Equal(t, "new", *ctx.Root.Children[0].TextContent)
}

func TestLowerSkipImportExpansion(t *testing.T) {
	dir := t.TempDir()
	src := `
import widgets from "widgets.kry"
Container { }`
	_, conv, _ := Compile(src, &ConversionContext{
		SourcePath:          filepath.Join(dir, "app.kry"),
		SkipImportExpansion: true,
	})
	// The import is recorded but never read from disk.
	require.Contains(t, conv.imports, "widgets")
	assert.Empty(t, conv.imports["widgets"].Exports)
}

func TestLowerCodegenPreservesTemplates(t *testing.T) {
	src := `
func Card(title: string) {
	Container { Text { text = title } }
}
Container {
	Card { title = "A" }
}`
	ctx, conv, _ := Compile(src, &ConversionContext{Mode: ModeCodegen})
	require.NotNil(t, conv.Preserved)
	// The call site is a module-ref stub, not an expansion.
	require.Len(t, ctx.Root.Children, 1)
	stub := ctx.Root.Children[0]
	require.NotNil(t, stub.ModuleRef)
	assert.Equal(t, "Card", stub.ModuleRef.Export)
	assert.Empty(t, stub.Children)
}

func TestLowerHybridExpandsAndPreserves(t *testing.T) {
	src := `
func Card(title: string) {
	Container { Text { text = title } }
}
Container {
	Card { title = "A" }
}`
	ctx, conv, _ := Compile(src, &ConversionContext{Mode: ModeHybrid})
	require.NotNil(t, conv.Preserved)
	expanded := ctx.Root.Children[0]
	require.Len(t, expanded.Children, 1)
	assert.Equal(t, "A", *expanded.Children[0].TextContent)
	require.NotNil(t, expanded.ModuleRef)
}

func TestLowerParamTableLimit(t *testing.T) {
	src := `
const a1 = 1
const a2 = 1
const a3 = 1
const a4 = 1
const a5 = 1
const a6 = 1
const a7 = 1
const a8 = 1
const a9 = 1
const a10 = 1
const a11 = 1
const a12 = 1
const a13 = 1
const a14 = 1
const a15 = 1
const a16 = 1
const a17 = 1
Container { }`
	_, conv, _ := Compile(src, &ConversionContext{})
	found := false
	for _, d := range conv.Diagnostics() {
		if d.Category == parser.CategoryLimitExceeded {
			found = true
		}
	}
	assert.True(t, found, "17th binding did not raise a limit diagnostic")
}

func TestLowerUnboundParameterWarns(t *testing.T) {
	_, conv, _ := Compile(`
Container {
	Text { text = missing }
}`, &ConversionContext{Mode: ModeRuntime})
	found := false
	for _, d := range conv.Diagnostics() {
		if d.Severity == parser.SeverityWarning {
			found = true
		}
	}
	assert.True(t, found)
}
