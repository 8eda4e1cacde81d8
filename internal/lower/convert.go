// Package lower converts a parsed KRY AST into an IR component tree:
// parameter substitution, struct instantiation, import resolution,
// loop/conditional expansion, and property dispatch onto typed setters.
package lower

import (
	"path/filepath"

	"github.com/expr-lang/expr/vm"
	"github.com/hashicorp/go-multierror"
	"github.com/yaoapp/kun/log"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/kry/ast"
	"github.com/kryonlabs/kryon-ir/internal/kry/parser"
)

// CompileMode selects what the converter emits (spec §4.5).
type CompileMode int

const (
	// ModeRuntime emits a fully expanded tree: loops unrolled,
	// component functions inlined.
	ModeRuntime CompileMode = iota
	// ModeCodegen preserves the original template structure; call sites
	// are emitted as module-ref stubs instead of being expanded.
	ModeCodegen
	// ModeHybrid emits the expanded tree and keeps the template AST as
	// a side channel for later codegen.
	ModeHybrid
)

// TargetPlatform selects the language expression bodies and event
// handlers are transpiled for.
type TargetPlatform int

const (
	PlatformLua TargetPlatform = iota
	PlatformJS
)

// MaxParams bounds the parameter-substitution table (spec §4.5: "a
// bounded parameter-substitution table (≤16 entries)").
const MaxParams = 16

// param is one substitution-table entry: a name bound to a resolved
// string or a captured AST value.
type param struct {
	Name  string
	Str   string
	Value ast.Expression
	IsStr bool
}

// ConversionContext carries everything one conversion needs: the AST,
// the parser that produced it (for diagnostics continuity), the
// substitution table, accumulators, and mode flags (spec §4.5).
type ConversionContext struct {
	Program *ast.Program
	Parser  *parser.Parser

	Mode     CompileMode
	Platform TargetPlatform

	SourcePath string
	BaseDir    string

	// SkipImportExpansion records imports in the registry without
	// expanding them, for multi-file KIR codegen.
	SkipImportExpansion bool
}

// Converter lowers one Program into one IRContext.
type Converter struct {
	cc *ConversionContext
	ir *kirtree.IRContext

	params []param

	structs map[string]*ast.StructDecl
	funcs   map[string]*ast.FuncDecl
	styles  map[string]*kirtree.Style
	imports map[string]*Module

	// Preserved is the template side channel produced in Codegen and
	// Hybrid modes.
	Preserved *ast.Program

	LogicBlocks []*kirtree.Logic

	handlerID       uint32
	staticCounter   int
	currentStaticID int

	moduleCache map[string]*Module
	exprCache   map[string]*vm.Program

	diags []parser.Diagnostic
}

// NewConverter creates a Converter lowering cc.Program into ir.
func NewConverter(ir *kirtree.IRContext, cc *ConversionContext) *Converter {
	if cc.BaseDir == "" && cc.SourcePath != "" {
		cc.BaseDir = filepath.Dir(cc.SourcePath)
	}
	return &Converter{
		cc:          cc,
		ir:          ir,
		structs:     make(map[string]*ast.StructDecl),
		funcs:       make(map[string]*ast.FuncDecl),
		styles:      make(map[string]*kirtree.Style),
		imports:     make(map[string]*Module),
		moduleCache: make(map[string]*Module),
	}
}

// Diagnostics returns every problem the conversion recorded.
func (c *Converter) Diagnostics() []parser.Diagnostic { return c.diags }

// Err folds Error-and-above diagnostics into a single error, or nil.
func (c *Converter) Err() error {
	var result *multierror.Error
	for _, d := range c.diags {
		if d.Severity >= parser.SeverityError {
			result = multierror.Append(result, d)
		}
	}
	return result.ErrorOrNil()
}

func (c *Converter) diag(sev parser.Severity, cat parser.Category, pos ast.Base, msg string) {
	c.diags = append(c.diags, parser.Diagnostic{
		Severity: sev,
		Category: cat,
		Line:     pos.Position.Line,
		Column:   pos.Position.Column,
		Message:  msg,
	})
}

// Convert lowers the whole program and returns the tree root. Multiple
// top-level components are wrapped under a synthetic Container root; a
// single top-level component becomes the root itself.
func (c *Converter) Convert() *kirtree.Component {
	prog := c.cc.Program
	if prog == nil {
		return nil
	}

	if c.cc.Mode == ModeCodegen || c.cc.Mode == ModeHybrid {
		c.Preserved = prog
	}

	// Declaration pre-pass so forward references to funcs, structs, and
	// style blocks resolve regardless of file order.
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.StructDecl:
			c.structs[s.Name] = s
		case *ast.FuncDecl:
			c.funcs[s.Name] = s
		}
	}

	var roots []*kirtree.Component
	for _, stmt := range prog.Statements {
		c.lowerTopLevel(stmt, nil, &roots)
	}

	var root *kirtree.Component
	switch len(roots) {
	case 0:
		root = nil
	case 1:
		root = roots[0]
	default:
		root = kirtree.NewContainer(c.ir)
		for _, r := range roots {
			kirtree.AddChild(root, r)
		}
	}
	c.ir.Root = root
	return root
}

// lowerTopLevel handles one statement at file or static-block scope.
// Components land in roots when parent is nil, otherwise they attach to
// parent.
func (c *Converter) lowerTopLevel(stmt ast.Statement, parent *kirtree.Component, roots *[]*kirtree.Component) {
	switch s := stmt.(type) {
	case *ast.ComponentDecl:
		comp := c.lowerComponent(s, parent)
		if comp != nil && parent == nil && roots != nil {
			*roots = append(*roots, comp)
		}
	case *ast.ImportDecl:
		c.loadImport(s)
	case *ast.VarDecl:
		c.bindVar(s)
	case *ast.StateDecl:
		c.recordState(s)
	case *ast.StructDecl, *ast.FuncDecl:
		// registered in the pre-pass
	case *ast.StyleBlockDecl:
		c.registerStyleBlock(s)
	case *ast.StaticBlock:
		c.lowerStaticBlock(s, parent, roots)
	case *ast.PlatformCodeBlock:
		c.accumulateLogic(s)
	case *ast.ForLoop:
		c.expandFor(s, parent, roots)
	case *ast.IfStmt:
		c.expandIf(s, parent, roots)
	case *ast.ReturnStmt:
		// module-level export list; meaningful only when this file is
		// loaded as an import, where loadModule collects it
	case *ast.PropertyAssignment:
		c.diag(parser.SeverityWarning, parser.CategorySemantic, s.Base,
			"property assignment '"+s.Name+"' outside a component body is ignored")
	default:
		c.diag(parser.SeverityWarning, parser.CategorySemantic, ast.Base{},
			"unhandled top-level statement")
	}
}

func (c *Converter) lowerStaticBlock(s *ast.StaticBlock, parent *kirtree.Component, roots *[]*kirtree.Component) {
	prev := c.currentStaticID
	c.currentStaticID = s.ID
	c.staticCounter++
	for _, stmt := range s.Statements {
		c.lowerTopLevel(stmt, parent, roots)
	}
	c.currentStaticID = prev
}

func (c *Converter) accumulateLogic(s *ast.PlatformCodeBlock) {
	srcType := kirtree.LogicLua
	if s.Platform == "js" {
		srcType = kirtree.LogicNative
	}
	l := &kirtree.Logic{
		ID:         c.ir.NextLogicID(),
		SourceType: srcType,
		SourceCode: s.Code,
	}
	c.LogicBlocks = append(c.LogicBlocks, l)
	c.ir.Logic = append(c.ir.Logic, l)
}

func (c *Converter) recordState(s *ast.StateDecl) {
	if c.ir.ReactiveManifest == nil {
		c.ir.ReactiveManifest = &kirtree.ReactiveManifest{Bindings: make(map[string]string)}
	}
	if _, dup := c.ir.ReactiveManifest.Bindings[s.Name]; dup {
		c.diag(parser.SeverityError, parser.CategorySemantic, s.Base,
			"duplicate state declaration '"+s.Name+"'")
		return
	}
	val, _ := c.resolveValueAsString(s.DefaultValue)
	c.ir.ReactiveManifest.Bindings[s.Name] = val
}

func (c *Converter) bindVar(s *ast.VarDecl) {
	if len(c.params) >= MaxParams {
		c.diag(parser.SeverityError, parser.CategoryLimitExceeded, s.Base,
			"substitution table full (max 16 entries); '"+s.Name+"' discarded")
		return
	}
	str, unresolved := c.resolveValueAsString(s.Value)
	c.params = append(c.params, param{Name: s.Name, Str: str, Value: s.Value, IsStr: !unresolved})
}

func (c *Converter) registerStyleBlock(s *ast.StyleBlockDecl) {
	style := kirtree.NewStyle()
	scratch := &kirtree.Component{Style: style}
	for _, prop := range s.Properties {
		c.applyProperty(scratch, prop.Name, prop.Value, prop.Base)
	}
	c.styles[s.Name] = style
	if c.ir.Stylesheet == nil {
		c.ir.Stylesheet = &kirtree.Stylesheet{Rules: make(map[string]*kirtree.Style)}
	}
	c.ir.Stylesheet.Rules[s.Name] = style
}

// lowerComponent builds the IR node for one component declaration.
// Component-type lookup is table-driven and case-sensitive; a name that
// is not a built-in type is tried as a component function (local, then
// imported) before being reported as a semantic error.
func (c *Converter) lowerComponent(decl *ast.ComponentDecl, parent *kirtree.Component) *kirtree.Component {
	if t, ok := kirtree.ComponentTypeFromString(decl.TypeName); ok {
		comp := kirtree.NewComponentIn(c.ir, t)
		if comp == nil {
			return nil
		}
		if decl.ID != "" {
			tag := decl.ID
			comp.Tag = &tag
		}
		for _, prop := range decl.Properties {
			c.applyProperty(comp, prop.Name, prop.Value, prop.Base)
		}
		for _, child := range decl.Children {
			c.lowerChild(child, comp)
		}
		if parent != nil {
			kirtree.AddChild(parent, comp)
		}
		return comp
	}

	if fn, ok := c.funcs[decl.TypeName]; ok {
		return c.expandFunctionComponent(fn, "", decl, parent)
	}
	for alias, mod := range c.imports {
		if fn, ok := mod.Exports[decl.TypeName]; ok {
			return c.expandFunctionComponent(fn, alias, decl, parent)
		}
	}

	c.diag(parser.SeverityError, parser.CategorySemantic, decl.Base,
		"unknown component type '"+decl.TypeName+"'")
	comp := kirtree.NewComponentIn(c.ir, kirtree.Container)
	if comp != nil && parent != nil {
		kirtree.AddChild(parent, comp)
	}
	return comp
}

func (c *Converter) lowerChild(stmt ast.Statement, parent *kirtree.Component) {
	switch s := stmt.(type) {
	case *ast.ComponentDecl:
		c.lowerComponent(s, parent)
	case *ast.ForLoop:
		c.expandFor(s, parent, nil)
	case *ast.IfStmt:
		c.expandIf(s, parent, nil)
	case *ast.StateDecl:
		c.recordState(s)
		if parent.Scope == "" {
			kirtree.SetScope(parent, s.Name)
		}
	default:
		c.diag(parser.SeverityWarning, parser.CategorySemantic, ast.Base{},
			"unhandled statement in component body")
	}
}

// expandFunctionComponent inlines a component function call site: the
// call's properties bind to the declared parameters (missing parameters
// stay unresolved), then the function body lowers with those bindings
// active. In Codegen mode the call site is preserved as a module-ref
// stub instead.
func (c *Converter) expandFunctionComponent(fn *ast.FuncDecl, moduleAlias string, decl *ast.ComponentDecl, parent *kirtree.Component) *kirtree.Component {
	if c.cc.Mode == ModeCodegen {
		stub := kirtree.NewComponentIn(c.ir, kirtree.Custom)
		if stub == nil {
			return nil
		}
		stub.ModuleRef = &kirtree.ModuleRef{Module: moduleAlias, Export: fn.Name}
		if parent != nil {
			kirtree.AddChild(parent, stub)
		}
		return stub
	}

	saved := c.params
	c.params = append([]param(nil), c.params...)
	for _, fp := range fn.Params {
		var bound ast.Expression
		for _, prop := range decl.Properties {
			if prop.Name == fp.Name {
				bound = prop.Value
				break
			}
		}
		if len(c.params) >= MaxParams {
			c.diag(parser.SeverityError, parser.CategoryLimitExceeded, decl.Base,
				"substitution table full expanding '"+fn.Name+"'")
			break
		}
		if bound == nil {
			c.params = append(c.params, param{Name: fp.Name})
			continue
		}
		str, unresolved := c.resolveValueAsString(bound)
		c.params = append(c.params, param{Name: fp.Name, Str: str, Value: bound, IsStr: !unresolved})
	}

	var first *kirtree.Component
	for _, stmt := range fn.Body {
		switch s := stmt.(type) {
		case *ast.ComponentDecl:
			comp := c.lowerComponent(s, parent)
			if first == nil {
				first = comp
			}
		case *ast.ReturnStmt:
			// a function's return ends expansion
		default:
			c.lowerTopLevel(stmt, parent, nil)
		}
	}
	c.params = saved

	if first != nil && c.cc.Mode == ModeHybrid {
		first.ModuleRef = &kirtree.ModuleRef{Module: moduleAlias, Export: fn.Name}
	}
	return first
}

// expandFor unrolls a compile-time for-loop, or a `for each` whose
// collection resolves at conversion time. Range iteration covers
// [start, end) — see DESIGN.md for the half-open decision.
func (c *Converter) expandFor(loop *ast.ForLoop, parent *kirtree.Component, roots *[]*kirtree.Component) {
	bindAndLower := func(value ast.Expression, str string, isStr bool) {
		if len(c.params) >= MaxParams {
			c.diag(parser.SeverityError, parser.CategoryLimitExceeded, loop.Base,
				"substitution table full expanding for-loop over '"+loop.Var+"'")
			return
		}
		saved := c.params
		c.params = append(append([]param(nil), c.params...), param{Name: loop.Var, Str: str, Value: value, IsStr: isStr})
		for _, stmt := range loop.Body {
			c.lowerTopLevel(stmt, parent, roots)
		}
		c.params = saved
	}

	switch it := loop.Iterable.(type) {
	case *ast.RangeExpr:
		start, ok1 := c.resolveNumber(it.Start)
		end, ok2 := c.resolveNumber(it.End)
		if !ok1 || !ok2 {
			c.diag(parser.SeverityError, parser.CategorySemantic, loop.Base,
				"for-loop range bounds must resolve to numbers")
			return
		}
		for i := int(start); i < int(end); i++ {
			bindAndLower(nil, formatNumber(float64(i)), true)
		}
	case *ast.ArrayLit:
		for _, el := range it.Elements {
			str, unresolved := c.resolveValueAsString(el)
			bindAndLower(el, str, !unresolved)
		}
	default:
		vals, ok := c.resolveArray(loop.Iterable)
		if !ok {
			if loop.IsForEach {
				log.Trace("lower: for each over '%s' is not resolvable at conversion time, skipped", loop.Var)
				c.diag(parser.SeverityWarning, parser.CategorySemantic, loop.Base,
					"for each collection is not resolvable at conversion time")
				return
			}
			c.diag(parser.SeverityError, parser.CategorySemantic, loop.Base,
				"for-loop iterable must be a range, array, or resolvable expression")
			return
		}
		for _, v := range vals {
			bindAndLower(nil, v, true)
		}
	}
}

func (c *Converter) expandIf(stmt *ast.IfStmt, parent *kirtree.Component, roots *[]*kirtree.Component) {
	cond, ok := c.resolveBool(stmt.Condition)
	if !ok {
		c.diag(parser.SeverityError, parser.CategorySemantic, stmt.Base,
			"if condition must resolve to a boolean")
		return
	}
	branch := stmt.Then
	if !cond {
		branch = stmt.Else
	}
	for _, s := range branch {
		c.lowerTopLevel(s, parent, roots)
	}
}

// nextHandlerID advances the handler-id counter used to pair events
// with accumulated logic blocks.
func (c *Converter) nextHandlerID() uint32 {
	c.handlerID++
	return c.handlerID
}
