// Package ast defines the KRY abstract syntax tree. Nodes are ordinary
// Go heap values; only their strings are interned in the parser's
// mem.Arena (when the parser has one), not the nodes themselves.
package ast

import "github.com/kryonlabs/kryon-ir/internal/kry/token"

// Node is implemented by every AST node.
type Node interface {
	Pos() token.Position
}

// Statement is a top-level or block-level construct.
type Statement interface {
	Node
	statementNode()
}

// Expression is anything that evaluates to a Value.
type Expression interface {
	Node
	expressionNode()
}

type Base struct {
	Position token.Position
}

func (b Base) Pos() token.Position { return b.Position }

// Program is the root of a parsed KRY file: a flat list of top-level
// statements (components, imports, funcs, structs, const/let/var,
// statics).
type Program struct {
	Base
	Statements []Statement
}

func (p *Program) statementNode() {}

// ComponentDecl is `Name { props; children }`.
type ComponentDecl struct {
	Base
	TypeName   string
	Properties []*PropertyAssignment
	Children   []Statement // nested ComponentDecl, ForLoop, IfStmt
	ID         string      // optional `id = "..."` convenience alias
}

func (c *ComponentDecl) statementNode() {}

// PropertyAssignment is `name = value`.
type PropertyAssignment struct {
	Base
	Name  string
	Value Expression
}

func (p *PropertyAssignment) statementNode() {}

// StateDecl is `state name: type = value`.
type StateDecl struct {
	Base
	Name         string
	Type         string
	DefaultValue Expression
}

func (s *StateDecl) statementNode() {}

// VarKind distinguishes const/let/var declarations.
type VarKind int

const (
	VarConst VarKind = iota
	VarLet
	VarVar
)

// VarDecl is `const|let|var name = value`.
type VarDecl struct {
	Base
	Kind  VarKind
	Name  string
	Value Expression
}

func (v *VarDecl) statementNode() {}

// ImportDecl is `import X from "path"`, optionally `import { a, b } from
// "path"`.
type ImportDecl struct {
	Base
	Alias   string
	Names   []string // named imports; empty means whole-module alias import
	Path    string
}

func (i *ImportDecl) statementNode() {}

// StaticBlock is a `static { ... }` block: statements hoisted and
// evaluated once (spec §4.4).
type StaticBlock struct {
	Base
	ID         int
	Statements []Statement
}

func (s *StaticBlock) statementNode() {}

// ForLoop is either a compile-time-expanded `for x in range` or a
// runtime `for each item in collection`.
type ForLoop struct {
	Base
	IsForEach bool
	Var       string
	Iterable  Expression // Range or Identifier/Array
	Body      []Statement
}

func (f *ForLoop) statementNode() {}

// IfStmt is `if cond { ... } else { ... }`. Else may itself be an
// *IfStmt (else-if chaining) wrapped as a single-statement Else slice.
type IfStmt struct {
	Base
	Condition Expression
	Then      []Statement
	Else      []Statement
}

func (i *IfStmt) statementNode() {}

// StyleBlockDecl is a top-level `style Name { ... }` block.
type StyleBlockDecl struct {
	Base
	Name       string
	Properties []*PropertyAssignment
}

func (s *StyleBlockDecl) statementNode() {}

// PlatformCodeBlock is an inline `@lua { ... }` / `@js { ... }` block.
type PlatformCodeBlock struct {
	Base
	Platform string // "lua" | "js"
	Code     string
}

func (p *PlatformCodeBlock) statementNode() {}

// FuncParam is one declared parameter of a FuncDecl.
type FuncParam struct {
	Name string
	Type string
}

// FuncDecl is `func name(params): type { ... }`.
type FuncDecl struct {
	Base
	Name       string
	Params     []FuncParam // len <= 16 (spec §6)
	ReturnType string
	Body       []Statement
	Exports    []string // module-level export list, when this is a `return` list at module scope
}

func (f *FuncDecl) statementNode() {}

// ReturnStmt is `return expr` or a module-level export list `return {
// a, b }`.
type ReturnStmt struct {
	Base
	Value   Expression
	Exports []string
}

func (r *ReturnStmt) statementNode() {}

// StructField is one field descriptor of a StructDecl.
type StructField struct {
	Name    string
	Type    string
	Default Expression
}

// StructDecl is `struct Name { field: type = default; ... }`.
type StructDecl struct {
	Base
	Name   string
	Fields []StructField
}

func (s *StructDecl) statementNode() {}

// --- Expressions / Values ---

// StringLit is a double-quoted string literal.
type StringLit struct {
	Base
	Value string
}

func (s *StringLit) expressionNode() {}

// NumberLit is a decimal literal, optionally percentage-suffixed.
type NumberLit struct {
	Base
	Value      float64
	IsPercent  bool
}

func (n *NumberLit) expressionNode() {}

// Ident is a bare identifier reference (parameter, state, struct
// field, …).
type Ident struct {
	Base
	Name string
}

func (i *Ident) expressionNode() {}

// RawExpression is the unparsed text inside `{ ... }` expression
// bodies, resolved later by the lowering stage's expr-lang evaluator.
type RawExpression struct {
	Base
	Text string
}

func (r *RawExpression) expressionNode() {}

// ArrayLit is `[a, b, c]`.
type ArrayLit struct {
	Base
	Elements []Expression
}

func (a *ArrayLit) expressionNode() {}

// ObjectField is one (key, value) pair of an ObjectLit.
type ObjectField struct {
	Key   string
	Value Expression
}

// ObjectLit is `{ key: value, ... }` used as a value (as opposed to a
// component body).
type ObjectLit struct {
	Base
	Fields []ObjectField
}

func (o *ObjectLit) expressionNode() {}

// StructInstanceExpr is `Name { field = value, ... }` used as a value.
type StructInstanceExpr struct {
	Base
	TypeName string
	Fields   []ObjectField
}

func (s *StructInstanceExpr) expressionNode() {}

// RangeExpr is `start..end`.
type RangeExpr struct {
	Base
	Start, End Expression
}

func (r *RangeExpr) expressionNode() {}

// BoolLit is `true` / `false`.
type BoolLit struct {
	Base
	Value bool
}

func (b *BoolLit) expressionNode() {}

// NullLit is the `null` literal.
type NullLit struct {
	Base
}

func (n *NullLit) expressionNode() {}
