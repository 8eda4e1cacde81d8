package parser

import (
	"testing"

	"github.com/kryonlabs/kryon-ir/internal/kry/ast"
	"github.com/kryonlabs/kryon-ir/internal/kry/lexer"
	"github.com/kryonlabs/kryon-ir/internal/mem"
)

func parse(t *testing.T, src string) (*ast.Program, *Parser) {
	t.Helper()
	p := New(lexer.New(src), mem.NewArena(0))
	return p.ParseProgram(), p
}

func parseClean(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, p := parse(t, src)
	if p.HasErrors() {
		t.Fatalf("unexpected errors: %v", p.Diagnostics())
	}
	return prog
}

func TestParseComponentWithPropsAndChildren(t *testing.T) {
	prog := parseClean(t, `
Container {
	id = "main"
	width = 200
	height = 50%
	Text {
		text = "hello"
	}
	Button { text = "go" }
}`)
	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d", len(prog.Statements))
	}
	c, ok := prog.Statements[0].(*ast.ComponentDecl)
	if !ok {
		t.Fatalf("not a ComponentDecl: %T", prog.Statements[0])
	}
	if c.TypeName != "Container" || c.ID != "main" {
		t.Errorf("TypeName=%s ID=%s", c.TypeName, c.ID)
	}
	if len(c.Properties) != 3 {
		t.Errorf("properties = %d, want 3", len(c.Properties))
	}
	h := c.Properties[2]
	if n, ok := h.Value.(*ast.NumberLit); !ok || !n.IsPercent || n.Value != 50 {
		t.Errorf("height prop = %#v", h.Value)
	}
	if len(c.Children) != 2 {
		t.Fatalf("children = %d", len(c.Children))
	}
	text := c.Children[0].(*ast.ComponentDecl)
	if text.TypeName != "Text" {
		t.Errorf("first child = %s", text.TypeName)
	}
	if s, ok := text.Properties[0].Value.(*ast.StringLit); !ok || s.Value != "hello" {
		t.Errorf("text value = %#v", text.Properties[0].Value)
	}
}

func TestParseStateAndVarDecls(t *testing.T) {
	prog := parseClean(t, `
const title = "App"
let count = 3
state counter: int = 0
`)
	if len(prog.Statements) != 3 {
		t.Fatalf("statements = %d", len(prog.Statements))
	}
	v := prog.Statements[0].(*ast.VarDecl)
	if v.Kind != ast.VarConst || v.Name != "title" {
		t.Errorf("const decl = %+v", v)
	}
	s := prog.Statements[2].(*ast.StateDecl)
	if s.Name != "counter" || s.Type != "int" {
		t.Errorf("state decl = %+v", s)
	}
	if n, ok := s.DefaultValue.(*ast.NumberLit); !ok || n.Value != 0 {
		t.Errorf("state default = %#v", s.DefaultValue)
	}
}

func TestParseImports(t *testing.T) {
	prog := parseClean(t, `
import widgets from "lib/widgets.kry"
import { Card, Badge } from "lib/cards.kry"
`)
	i1 := prog.Statements[0].(*ast.ImportDecl)
	if i1.Alias != "widgets" || i1.Path != "lib/widgets.kry" {
		t.Errorf("alias import = %+v", i1)
	}
	i2 := prog.Statements[1].(*ast.ImportDecl)
	if len(i2.Names) != 2 || i2.Names[0] != "Card" || i2.Names[1] != "Badge" {
		t.Errorf("named import = %+v", i2)
	}
}

func TestParseForLoops(t *testing.T) {
	prog := parseClean(t, `
for i in 0..3 {
	Text { text = "row" }
}
for each item in items {
	Text { text = item }
}`)
	f1 := prog.Statements[0].(*ast.ForLoop)
	if f1.IsForEach || f1.Var != "i" {
		t.Errorf("for = %+v", f1)
	}
	r, ok := f1.Iterable.(*ast.RangeExpr)
	if !ok {
		t.Fatalf("iterable = %#v", f1.Iterable)
	}
	if s, _ := r.Start.(*ast.NumberLit); s == nil || s.Value != 0 {
		t.Errorf("range start = %#v", r.Start)
	}
	if e, _ := r.End.(*ast.NumberLit); e == nil || e.Value != 3 {
		t.Errorf("range end = %#v", r.End)
	}
	f2 := prog.Statements[1].(*ast.ForLoop)
	if !f2.IsForEach || f2.Var != "item" {
		t.Errorf("for each = %+v", f2)
	}
}

func TestParseIfElseChain(t *testing.T) {
	prog := parseClean(t, `
if { dark } {
	Text { text = "dark" }
} else if { light } {
	Text { text = "light" }
} else {
	Text { text = "auto" }
}`)
	s := prog.Statements[0].(*ast.IfStmt)
	if len(s.Then) != 1 || len(s.Else) != 1 {
		t.Fatalf("then=%d else=%d", len(s.Then), len(s.Else))
	}
	nested, ok := s.Else[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("else-if chain not nested: %T", s.Else[0])
	}
	if len(nested.Else) != 1 {
		t.Errorf("nested else = %d", len(nested.Else))
	}
}

func TestParseRawExpression(t *testing.T) {
	prog := parseClean(t, `Text { text = { count == 3 && name != "x" } }`)
	c := prog.Statements[0].(*ast.ComponentDecl)
	raw, ok := c.Properties[0].Value.(*ast.RawExpression)
	if !ok {
		t.Fatalf("value = %#v", c.Properties[0].Value)
	}
	if raw.Text != ` count == 3 && name != "x" ` {
		t.Errorf("raw text = %q", raw.Text)
	}
}

func TestParseStructDeclAndInstance(t *testing.T) {
	prog := parseClean(t, `
struct Point {
	x: int = 0
	y: int = 0
	label: string
}
const origin = Point { x = 1; y = 2 }
`)
	s := prog.Statements[0].(*ast.StructDecl)
	if s.Name != "Point" || len(s.Fields) != 3 {
		t.Fatalf("struct = %+v", s)
	}
	if s.Fields[0].Name != "x" || s.Fields[0].Type != "int" || s.Fields[0].Default == nil {
		t.Errorf("field x = %+v", s.Fields[0])
	}
	if s.Fields[2].Default != nil {
		t.Errorf("field label should have no default")
	}
	v := prog.Statements[1].(*ast.VarDecl)
	inst, ok := v.Value.(*ast.StructInstanceExpr)
	if !ok {
		t.Fatalf("value = %#v", v.Value)
	}
	if inst.TypeName != "Point" || len(inst.Fields) != 2 {
		t.Errorf("instance = %+v", inst)
	}
}

func TestParseFuncDecl(t *testing.T) {
	prog := parseClean(t, `
func Card(title: string, body: string): Component {
	Container {
		Text { text = title }
		Text { text = body }
	}
}`)
	fn := prog.Statements[0].(*ast.FuncDecl)
	if fn.Name != "Card" || fn.ReturnType != "Component" {
		t.Errorf("func = %+v", fn)
	}
	if len(fn.Params) != 2 || fn.Params[0].Name != "title" || fn.Params[1].Type != "string" {
		t.Errorf("params = %+v", fn.Params)
	}
	if len(fn.Body) != 1 {
		t.Errorf("body = %d statements", len(fn.Body))
	}
}

func TestParseFuncParamLimit(t *testing.T) {
	src := "func f(a1: int, a2: int, a3: int, a4: int, a5: int, a6: int, a7: int, a8: int, a9: int, a10: int, a11: int, a12: int, a13: int, a14: int, a15: int, a16: int, a17: int) { }"
	_, p := parse(t, src)
	found := false
	for _, d := range p.Diagnostics() {
		if d.Category == CategoryLimitExceeded {
			found = true
		}
	}
	if !found {
		t.Error("17 parameters did not raise a limit diagnostic")
	}
}

func TestParseStyleBlock(t *testing.T) {
	prog := parseClean(t, `
style Primary {
	background = "#336699"
	color = "white"
}`)
	s := prog.Statements[0].(*ast.StyleBlockDecl)
	if s.Name != "Primary" || len(s.Properties) != 2 {
		t.Errorf("style block = %+v", s)
	}
}

func TestParsePlatformCodeBlock(t *testing.T) {
	prog := parseClean(t, `
@lua {
	local x = 1
	if x == 1 then print("one") end
}
Container { }`)
	blk := prog.Statements[0].(*ast.PlatformCodeBlock)
	if blk.Platform != "lua" {
		t.Errorf("platform = %s", blk.Platform)
	}
	if blk.Code == "" || !contains(blk.Code, `if x == 1 then print("one") end`) {
		t.Errorf("code = %q", blk.Code)
	}
	if _, ok := prog.Statements[1].(*ast.ComponentDecl); !ok {
		t.Error("parsing did not resume after platform block")
	}
}

func TestParseReturnExports(t *testing.T) {
	prog := parseClean(t, `
func Card() { Container { } }
return { Card }
`)
	r := prog.Statements[1].(*ast.ReturnStmt)
	if len(r.Exports) != 1 || r.Exports[0] != "Card" {
		t.Errorf("exports = %+v", r.Exports)
	}
}

func TestParseStaticBlock(t *testing.T) {
	prog := parseClean(t, `
static {
	const x = 1
}
static {
	const y = 2
}`)
	b1 := prog.Statements[0].(*ast.StaticBlock)
	b2 := prog.Statements[1].(*ast.StaticBlock)
	if b1.ID != 0 || b2.ID != 1 {
		t.Errorf("static ids = %d, %d", b1.ID, b2.ID)
	}
	if len(b1.Statements) != 1 {
		t.Errorf("static body = %d", len(b1.Statements))
	}
}

func TestErrorRecovery(t *testing.T) {
	prog, p := parse(t, `
Container {
	width = =
	Text { text = "still parsed" }
}`)
	if !p.HasErrors() {
		t.Fatal("malformed input produced no errors")
	}
	if p.FirstError() == nil {
		t.Fatal("legacy first-error pointer not set")
	}
	// Parsing continued: the component and its valid child survive.
	if len(prog.Statements) != 1 {
		t.Fatalf("statements = %d", len(prog.Statements))
	}
	c := prog.Statements[0].(*ast.ComponentDecl)
	if len(c.Children) != 1 {
		t.Errorf("children after recovery = %d, want 1", len(c.Children))
	}
}

func TestDiagnosticPositions(t *testing.T) {
	_, p := parse(t, "Container {\n  ???\n}")
	if !p.HasErrors() {
		t.Fatal("no errors for garbage input")
	}
	d := *p.FirstError()
	if d.Line != 2 {
		t.Errorf("error line = %d, want 2", d.Line)
	}
}

func TestFoldDiagnostics(t *testing.T) {
	_, p := parse(t, "Container { ??? }")
	if err := p.Err(); err == nil {
		t.Error("Err() = nil for failed parse")
	}
	_, p2 := parse(t, "Container { }")
	if err := p2.Err(); err != nil {
		t.Errorf("Err() = %v for clean parse", err)
	}
}

func contains(s, sub string) bool {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return true
		}
	}
	return false
}
