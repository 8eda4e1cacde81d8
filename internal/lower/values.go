package lower

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/yaoapp/kun/log"

	"github.com/kryonlabs/kryon-ir/internal/kry/ast"
)

// resolveValueAsString resolves a parsed value to its string form. The
// second return is the is_unresolved flag (spec §4.5): true when the
// value references a parameter that has no binding yet, so the caller
// can defer or warn instead of baking in a wrong value.
func (c *Converter) resolveValueAsString(v ast.Expression) (string, bool) {
	switch e := v.(type) {
	case nil:
		return "", false
	case *ast.StringLit:
		return e.Value, false
	case *ast.NumberLit:
		s := formatNumber(e.Value)
		if e.IsPercent {
			s += "%"
		}
		return s, false
	case *ast.BoolLit:
		if e.Value {
			return "true", false
		}
		return "false", false
	case *ast.NullLit:
		return "", false
	case *ast.Ident:
		if p, ok := c.lookupParam(e.Name); ok {
			if p.IsStr {
				return p.Str, false
			}
			if p.Value != nil {
				return c.resolveValueAsString(p.Value)
			}
			return e.Name, true // declared parameter with no binding yet
		}
		return e.Name, true
	case *ast.RawExpression:
		out, err := c.evalExpression(e.Text)
		if err != nil {
			log.Trace("lower: expression {%s} did not resolve: %v", e.Text, err)
			return e.Text, true
		}
		return stringify(out), false
	case *ast.ArrayLit:
		parts := make([]string, 0, len(e.Elements))
		unresolved := false
		for _, el := range e.Elements {
			s, u := c.resolveValueAsString(el)
			unresolved = unresolved || u
			parts = append(parts, s)
		}
		return strings.Join(parts, ","), unresolved
	case *ast.StructInstanceExpr:
		// A struct instance has no canonical string form; callers that
		// need field access go through instantiateStruct.
		return e.TypeName, true
	case *ast.RangeExpr:
		s1, u1 := c.resolveValueAsString(e.Start)
		s2, u2 := c.resolveValueAsString(e.End)
		return s1 + ".." + s2, u1 || u2
	default:
		return "", true
	}
}

func (c *Converter) lookupParam(name string) (param, bool) {
	// Later bindings shadow earlier ones.
	for i := len(c.params) - 1; i >= 0; i-- {
		if c.params[i].Name == name {
			return c.params[i], true
		}
	}
	return param{}, false
}

// resolveNumber resolves a value to a float64.
func (c *Converter) resolveNumber(v ast.Expression) (float64, bool) {
	if n, ok := v.(*ast.NumberLit); ok {
		return n.Value, true
	}
	s, unresolved := c.resolveValueAsString(v)
	if unresolved {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
	return f, err == nil
}

// resolveBool resolves a value to a boolean; strings follow the
// truthiness rule "anything but false/0/empty is true".
func (c *Converter) resolveBool(v ast.Expression) (bool, bool) {
	if b, ok := v.(*ast.BoolLit); ok {
		return b.Value, true
	}
	if raw, ok := v.(*ast.RawExpression); ok {
		out, err := c.evalExpression(raw.Text)
		if err != nil {
			return false, false
		}
		switch t := out.(type) {
		case bool:
			return t, true
		case float64:
			return t != 0, true
		case int:
			return t != 0, true
		case string:
			return truthy(t), true
		}
		return out != nil, true
	}
	s, unresolved := c.resolveValueAsString(v)
	if unresolved {
		return false, false
	}
	return truthy(s), true
}

// resolveArray resolves a value to a list of element strings.
func (c *Converter) resolveArray(v ast.Expression) ([]string, bool) {
	switch e := v.(type) {
	case *ast.ArrayLit:
		out := make([]string, 0, len(e.Elements))
		for _, el := range e.Elements {
			s, unresolved := c.resolveValueAsString(el)
			if unresolved {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	case *ast.Ident:
		if p, ok := c.lookupParam(e.Name); ok && p.Value != nil {
			return c.resolveArray(p.Value)
		}
		return nil, false
	case *ast.RawExpression:
		out, err := c.evalExpression(e.Text)
		if err != nil {
			return nil, false
		}
		if list, ok := out.([]interface{}); ok {
			strs := make([]string, len(list))
			for i, item := range list {
				strs[i] = stringify(item)
			}
			return strs, true
		}
		return nil, false
	default:
		return nil, false
	}
}

// exprOptions mirrors the helper functions the runtime exposes inside
// expression bodies.
var exprOptions = []expr.Option{
	expr.Function("len", func(params ...interface{}) (interface{}, error) {
		if len(params) == 0 {
			return 0, nil
		}
		switch val := params[0].(type) {
		case []interface{}:
			return len(val), nil
		case map[string]interface{}:
			return len(val), nil
		case string:
			return len(val), nil
		default:
			return 0, nil
		}
	}),
	expr.Function("True", func(params ...interface{}) (interface{}, error) {
		if len(params) < 1 {
			return false, nil
		}
		switch v := params[0].(type) {
		case bool:
			return v, nil
		case string:
			return truthy(v), nil
		case int:
			return v != 0, nil
		case float64:
			return v != 0, nil
		}
		return false, nil
	}),
}

// evalExpression compiles and runs a raw `{ ... }` expression body
// against the substitution table. Programs are cached per source text
// since templates re-evaluate the same expressions for every expansion.
func (c *Converter) evalExpression(text string) (interface{}, error) {
	env := c.exprEnv()
	program, err := c.compileExpression(text, env)
	if err != nil {
		return nil, err
	}
	return vm.Run(program, env)
}

func (c *Converter) compileExpression(text string, env map[string]interface{}) (*vm.Program, error) {
	if c.exprCache == nil {
		c.exprCache = make(map[string]*vm.Program)
	}
	if p, ok := c.exprCache[text]; ok {
		return p, nil
	}
	p, err := expr.Compile(text, append([]expr.Option{expr.Env(env)}, exprOptions...)...)
	if err != nil {
		return nil, err
	}
	c.exprCache[text] = p
	return p, nil
}

// exprEnv builds the evaluation environment from the substitution
// table: string bindings go in verbatim, numeric strings also as
// numbers, array values as []interface{}.
func (c *Converter) exprEnv() map[string]interface{} {
	env := make(map[string]interface{}, len(c.params))
	for _, p := range c.params {
		if _, isArr := p.Value.(*ast.ArrayLit); isArr {
			env[p.Name] = c.valueToInterface(p.Value)
			continue
		}
		switch {
		case p.IsStr:
			if f, err := strconv.ParseFloat(p.Str, 64); err == nil {
				env[p.Name] = f
			} else {
				env[p.Name] = p.Str
			}
		case p.Value != nil:
			env[p.Name] = c.valueToInterface(p.Value)
		default:
			env[p.Name] = nil
		}
	}
	return env
}

func (c *Converter) valueToInterface(v ast.Expression) interface{} {
	switch e := v.(type) {
	case *ast.StringLit:
		return e.Value
	case *ast.NumberLit:
		return e.Value
	case *ast.BoolLit:
		return e.Value
	case *ast.NullLit:
		return nil
	case *ast.ArrayLit:
		out := make([]interface{}, len(e.Elements))
		for i, el := range e.Elements {
			out[i] = c.valueToInterface(el)
		}
		return out
	case *ast.ObjectLit:
		out := make(map[string]interface{}, len(e.Fields))
		for _, f := range e.Fields {
			out[f.Key] = c.valueToInterface(f.Value)
		}
		return out
	case *ast.StructInstanceExpr:
		fields, ok := c.instantiateStruct(e)
		if !ok {
			return nil
		}
		out := make(map[string]interface{}, len(fields))
		for k, fv := range fields {
			out[k] = c.valueToInterface(fv)
		}
		return out
	case *ast.Ident:
		if p, ok := c.lookupParam(e.Name); ok {
			if p.IsStr {
				return p.Str
			}
			if p.Value != nil {
				return c.valueToInterface(p.Value)
			}
		}
		return nil
	default:
		s, _ := c.resolveValueAsString(v)
		return s
	}
}

func truthy(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s != "" && s != "false" && s != "0"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return formatNumber(t)
	case int:
		return strconv.Itoa(t)
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", t)
	}
}
