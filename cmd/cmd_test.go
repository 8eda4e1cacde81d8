package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/lower"
	"github.com/kryonlabs/kryon-ir/internal/serialize"
)

func TestParseMode(t *testing.T) {
	cases := map[string]lower.CompileMode{
		"runtime": lower.ModeRuntime,
		"codegen": lower.ModeCodegen,
		"hybrid":  lower.ModeHybrid,
	}
	for s, want := range cases {
		got, err := parseMode(s)
		if err != nil || got != want {
			t.Errorf("parseMode(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := parseMode("bogus"); err == nil {
		t.Error("parseMode accepted an unknown mode")
	}
}

func TestLoadTreeFromKrySource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.kry")
	src := `
Container {
	Text { text = "hi" }
}`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	ctx, err := loadTree(path)
	if err != nil {
		t.Fatalf("loadTree: %v", err)
	}
	if ctx.Root == nil || len(ctx.Root.Children) != 1 {
		t.Fatalf("unexpected tree: %+v", ctx.Root)
	}
	if ctx.Root.Children[0].Type != kirtree.Text {
		t.Errorf("child type = %v", ctx.Root.Children[0].Type)
	}
}

func TestLoadTreeFromKIRDocument(t *testing.T) {
	dir := t.TempDir()
	src := kirtree.NewIRContext(0)
	root := kirtree.NewContainer(src)
	src.Root = root
	kirtree.AddChild(root, kirtree.NewTextComponent(src, "persisted"))
	data, err := serialize.Marshal(serialize.Serialize(src))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "app.kir")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	ctx, err := loadTree(path)
	if err != nil {
		t.Fatalf("loadTree: %v", err)
	}
	child := ctx.Root.Children[0]
	if child.TextContent == nil || *child.TextContent != "persisted" {
		t.Errorf("round-tripped text = %v", child.TextContent)
	}
}

func TestLoadTreeParseErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.kry")
	if err := os.WriteFile(path, []byte("Container { ??? }"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadTree(path); err == nil {
		t.Error("loadTree accepted a file with syntax errors")
	}
}

func TestStyledTextRendering(t *testing.T) {
	ctx := kirtree.NewIRContext(0)
	text := kirtree.NewTextComponent(ctx, "hello")
	text.Style.Font.Bold = true
	out := renderComponent(text)
	if out == "" {
		t.Error("renderComponent produced nothing for a text node")
	}

	text.Style.Visible = false
	if renderComponent(text) != "" {
		t.Error("invisible component rendered")
	}
}
