package lower

import (
	"github.com/kryonlabs/kryon-ir/internal/kry/ast"
	"github.com/kryonlabs/kryon-ir/internal/kry/parser"
)

// instantiateStruct binds a `Name { field = value }` instantiation
// against its declaration: fields bind in declaration order, missing
// fields fall back to their declared defaults (spec §4.5 "Struct
// semantics"). Unknown fields are semantic errors; the instantiation
// still proceeds with the known ones.
func (c *Converter) instantiateStruct(e *ast.StructInstanceExpr) (map[string]ast.Expression, bool) {
	decl, ok := c.lookupStruct(e.TypeName)
	if !ok {
		c.diag(parser.SeverityError, parser.CategorySemantic, e.Base,
			"unknown struct type '"+e.TypeName+"'")
		return nil, false
	}

	known := make(map[string]bool, len(decl.Fields))
	for _, f := range decl.Fields {
		known[f.Name] = true
	}
	for _, f := range e.Fields {
		if !known[f.Key] {
			c.diag(parser.SeverityError, parser.CategorySemantic, e.Base,
				"struct '"+e.TypeName+"' has no field '"+f.Key+"'")
		}
	}

	bound := make(map[string]ast.Expression, len(decl.Fields))
	for _, f := range decl.Fields {
		var v ast.Expression
		for _, inst := range e.Fields {
			if inst.Key == f.Name {
				v = inst.Value
				break
			}
		}
		if v == nil {
			v = f.Default
		}
		bound[f.Name] = v
	}
	return bound, true
}

func (c *Converter) lookupStruct(name string) (*ast.StructDecl, bool) {
	if s, ok := c.structs[name]; ok {
		return s, true
	}
	for _, mod := range c.imports {
		if s, ok := mod.Structs[name]; ok {
			return s, true
		}
	}
	return nil, false
}
