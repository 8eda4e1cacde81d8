package lower

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/yaoapp/kun/log"

	"github.com/kryonlabs/kryon-ir/internal/kry/ast"
	"github.com/kryonlabs/kryon-ir/internal/kry/lexer"
	"github.com/kryonlabs/kryon-ir/internal/kry/parser"
)

// Module is one loaded import: its resolved path, the functions and
// structs it exports, and the parsed program for codegen preservation.
type Module struct {
	Alias   string
	Path    string
	Exports map[string]*ast.FuncDecl
	Structs map[string]*ast.StructDecl
	Program *ast.Program
}

// loadImport resolves `import X from "path"` relative to the base
// directory, caches the loaded module, and registers its exports for
// expression and component resolution (spec §4.5 "Import semantics").
// With SkipImportExpansion set the import is recorded but not parsed.
func (c *Converter) loadImport(decl *ast.ImportDecl) {
	resolved := c.resolveImportPath(decl.Path)
	alias := decl.Alias
	if alias == "" {
		alias = strings.TrimSuffix(filepath.Base(decl.Path), filepath.Ext(decl.Path))
	}

	if c.cc.SkipImportExpansion {
		c.imports[alias] = &Module{
			Alias:   alias,
			Path:    resolved,
			Exports: make(map[string]*ast.FuncDecl),
			Structs: make(map[string]*ast.StructDecl),
		}
		return
	}

	mod, err := c.loadModule(resolved)
	if err != nil {
		c.diag(parser.SeverityError, parser.CategoryValidation, decl.Base,
			"cannot load import \""+decl.Path+"\": "+err.Error())
		return
	}
	mod.Alias = alias

	if len(decl.Names) > 0 {
		// Named imports keep only the requested exports visible.
		filtered := &Module{Alias: alias, Path: mod.Path, Program: mod.Program,
			Exports: make(map[string]*ast.FuncDecl), Structs: make(map[string]*ast.StructDecl)}
		for _, name := range decl.Names {
			if fn, ok := mod.Exports[name]; ok {
				filtered.Exports[name] = fn
				continue
			}
			if st, ok := mod.Structs[name]; ok {
				filtered.Structs[name] = st
				continue
			}
			c.diag(parser.SeverityError, parser.CategorySemantic, decl.Base,
				"module \""+decl.Path+"\" does not export '"+name+"'")
		}
		mod = filtered
	}
	c.imports[alias] = mod
}

// loadModule reads and parses one module file, caching by resolved path
// so a diamond import graph parses each file once.
func (c *Converter) loadModule(path string) (*Module, error) {
	if mod, ok := c.moduleCache[path]; ok {
		return mod, nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	p := parser.New(lexer.New(string(src)), nil)
	prog := p.ParseProgram()
	for _, d := range p.Diagnostics() {
		c.diags = append(c.diags, d)
	}
	if p.HasErrors() {
		log.Warn("lower: module %s parsed with errors", path)
	}

	mod := &Module{
		Path:    path,
		Program: prog,
		Exports: make(map[string]*ast.FuncDecl),
		Structs: make(map[string]*ast.StructDecl),
	}

	// A module-level `return { a, b }` narrows the export list;
	// otherwise every top-level func and struct is exported.
	var exportList []string
	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.FuncDecl:
			mod.Exports[s.Name] = s
		case *ast.StructDecl:
			mod.Structs[s.Name] = s
		case *ast.ReturnStmt:
			if len(s.Exports) > 0 {
				exportList = s.Exports
			}
		}
	}
	if exportList != nil {
		narrowed := make(map[string]*ast.FuncDecl, len(exportList))
		narrowedStructs := make(map[string]*ast.StructDecl)
		for _, name := range exportList {
			if fn, ok := mod.Exports[name]; ok {
				narrowed[name] = fn
			}
			if st, ok := mod.Structs[name]; ok {
				narrowedStructs[name] = st
			}
		}
		mod.Exports = narrowed
		mod.Structs = narrowedStructs
	}

	c.moduleCache[path] = mod
	return mod, nil
}

func (c *Converter) resolveImportPath(p string) string {
	p = normalizePath(p)
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.cc.BaseDir, p)
}

func normalizePath(s string) string {
	if runtime.GOOS != "windows" {
		return s
	}
	return strings.ReplaceAll(s, "\\", "/")
}
