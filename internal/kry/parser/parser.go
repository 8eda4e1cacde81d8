// Package parser implements a recursive-descent parser for KRY,
// grounded on the statement/expression split of
// github.com/ha1tch/tsqlparser's parser package.
package parser

import (
	"strconv"

	"github.com/kryonlabs/kryon-ir/internal/kry/ast"
	"github.com/kryonlabs/kryon-ir/internal/kry/lexer"
	"github.com/kryonlabs/kryon-ir/internal/kry/token"
	"github.com/kryonlabs/kryon-ir/internal/mem"
)

// Parser turns a token stream into a *ast.Program, accumulating
// Diagnostics instead of aborting on the first problem (spec §4.4).
type Parser struct {
	l     *lexer.Lexer
	arena *mem.Arena

	curToken  token.Token
	peekToken token.Token

	diagnostics []Diagnostic
	staticID    int

	// legacy single-error pointer: first Error/Fatal diagnostic, kept for
	// callers that only care whether parsing failed at all.
	firstErr *Diagnostic
}

// New creates a Parser reading from l. arena is used to intern string
// literals and identifiers so the resulting tree's string data lives
// in the same chunked allocator as the rest of the IR substrate; pass
// nil to fall back to ordinary Go string slicing (still safe, just not
// arena-owned).
func New(l *lexer.Lexer, arena *mem.Arena) *Parser {
	p := &Parser{l: l, arena: arena}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) intern(s string) string {
	if p.arena == nil {
		return s
	}
	return p.arena.Strdup(s)
}

func (p *Parser) pos() token.Position {
	return token.Position{Line: p.curToken.Line, Column: p.curToken.Column}
}

func (p *Parser) addDiag(sev Severity, cat Category, msg string) {
	d := Diagnostic{Severity: sev, Category: cat, Line: p.curToken.Line, Column: p.curToken.Column, Message: msg, Snippet: p.curToken.Literal}
	p.diagnostics = append(p.diagnostics, d)
	if sev >= SeverityError && p.firstErr == nil {
		p.firstErr = &d
	}
}

// Diagnostics returns every diagnostic collected so far.
func (p *Parser) Diagnostics() []Diagnostic { return p.diagnostics }

// HasErrors reports whether any Error or Fatal diagnostic was raised.
func (p *Parser) HasErrors() bool { return p.firstErr != nil }

// FirstError returns the first Error/Fatal diagnostic, or nil.
func (p *Parser) FirstError() *Diagnostic { return p.firstErr }

func (p *Parser) expect(t token.Type, what string) bool {
	if p.curToken.Type == t {
		return true
	}
	p.addDiag(SeverityError, CategorySyntax, "expected "+what+", got "+p.curToken.Type.String())
	return false
}

func (p *Parser) expectAdvance(t token.Type, what string) bool {
	if !p.expect(t, what) {
		return false
	}
	p.next()
	return true
}

// skipToRecoveryPoint advances past tokens until a semicolon, a brace
// boundary, or EOF, so one malformed statement does not cascade into a
// wall of spurious diagnostics (error recovery, spec §4.4).
func (p *Parser) skipToRecoveryPoint() {
	for p.curToken.Type != token.EOF && p.curToken.Type != token.SEMICOLON &&
		p.curToken.Type != token.RBRACE {
		p.next()
	}
	if p.curToken.Type == token.SEMICOLON {
		p.next()
	}
}

// ParseProgram parses an entire KRY source file into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	for p.curToken.Type != token.EOF {
		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		} else {
			p.skipToRecoveryPoint()
		}
	}
	return prog
}

func (p *Parser) parseStatementList(terminator token.Type) []ast.Statement {
	var stmts []ast.Statement
	for p.curToken.Type != terminator && p.curToken.Type != token.EOF {
		stmt := p.parseTopLevelStatement()
		if stmt != nil {
			stmts = append(stmts, stmt)
		} else {
			p.skipToRecoveryPoint()
		}
	}
	return stmts
}

func (p *Parser) parseTopLevelStatement() ast.Statement {
	switch p.curToken.Type {
	case token.IMPORT:
		return p.parseImportDecl()
	case token.CONST, token.LET, token.VAR:
		return p.parseVarDecl()
	case token.STATE:
		return p.parseStateDecl()
	case token.STATIC:
		return p.parseStaticBlock()
	case token.FOR:
		return p.parseForLoop()
	case token.IF:
		return p.parseIfStmt()
	case token.STYLE:
		return p.parseStyleBlockDecl()
	case token.FUNC:
		return p.parseFuncDecl()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.STRUCT:
		return p.parseStructDecl()
	case token.AT:
		return p.parsePlatformCodeBlock()
	case token.IDENT:
		return p.parseIdentLedStatement()
	default:
		p.addDiag(SeverityError, CategorySyntax, "unexpected token "+p.curToken.Type.String())
		return nil
	}
}

// parseIdentLedStatement disambiguates `Name { ... }` (a component
// declaration) from `name = value` (a property assignment) by
// one-token lookahead.
func (p *Parser) parseIdentLedStatement() ast.Statement {
	if p.peekToken.Type == token.LBRACE {
		return p.parseComponentDecl()
	}
	if p.peekToken.Type == token.ASSIGN {
		return p.parsePropertyAssignment()
	}
	p.addDiag(SeverityError, CategorySyntax, "identifier '"+p.curToken.Literal+"' not followed by '=' or '{'")
	return nil
}

func (p *Parser) parseComponentDecl() *ast.ComponentDecl {
	decl := &ast.ComponentDecl{Base: ast.Base{Position: p.pos()}, TypeName: p.intern(p.curToken.Literal)}
	p.next() // consume type name
	p.next() // consume '{'
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		switch {
		case (p.curToken.Type == token.IDENT || p.curToken.Type == token.STYLE) && p.peekToken.Type == token.ASSIGN:
			prop := p.parsePropertyAssignment()
			decl.Properties = append(decl.Properties, prop)
			if prop.Name == "id" {
				if lit, ok := prop.Value.(*ast.StringLit); ok {
					decl.ID = lit.Value
				}
			}
		case p.curToken.Type == token.IDENT && p.peekToken.Type == token.LBRACE:
			decl.Children = append(decl.Children, p.parseComponentDecl())
		case p.curToken.Type == token.FOR:
			decl.Children = append(decl.Children, p.parseForLoop())
		case p.curToken.Type == token.IF:
			decl.Children = append(decl.Children, p.parseIfStmt())
		case p.curToken.Type == token.STATE:
			decl.Children = append(decl.Children, p.parseStateDecl())
		default:
			p.addDiag(SeverityError, CategorySyntax, "unexpected token in component body: "+p.curToken.Type.String())
			p.skipToRecoveryPoint()
		}
	}
	if p.curToken.Type == token.RBRACE {
		p.next()
	} else {
		p.addDiag(SeverityError, CategorySyntax, "unterminated component body for "+decl.TypeName)
	}
	return decl
}

func (p *Parser) parsePropertyAssignment() *ast.PropertyAssignment {
	prop := &ast.PropertyAssignment{Base: ast.Base{Position: p.pos()}, Name: p.intern(p.curToken.Literal)}
	p.next() // name
	p.next() // '='
	prop.Value = p.parseValue()
	if p.curToken.Type == token.SEMICOLON {
		p.next()
	}
	return prop
}

// parseValue parses a single Value expression: string, number, bool,
// null, identifier, array, struct instance, or raw `{ ... }`
// expression body, and then checks for a trailing `..` range operator.
func (p *Parser) parseValue() ast.Expression {
	primary := p.parsePrimaryValue()
	if p.curToken.Type == token.DOT && p.peekToken.Type == token.DOT {
		pos := p.pos()
		p.next() // first '.'
		p.next() // second '.'
		end := p.parsePrimaryValue()
		return &ast.RangeExpr{Base: ast.Base{Position: pos}, Start: primary, End: end}
	}
	return primary
}

func (p *Parser) parsePrimaryValue() ast.Expression {
	pos := p.pos()
	switch p.curToken.Type {
	case token.STRING:
		v := p.intern(p.curToken.Literal)
		p.next()
		return &ast.StringLit{Base: ast.Base{Position: pos}, Value: v}
	case token.NUMBER:
		f, err := strconv.ParseFloat(p.curToken.Literal, 64)
		if err != nil {
			p.addDiag(SeverityError, CategoryConversion, "invalid number literal '"+p.curToken.Literal+"'")
		}
		isPct := p.curToken.IsPercent
		p.next()
		return &ast.NumberLit{Base: ast.Base{Position: pos}, Value: f, IsPercent: isPct}
	case token.TRUE:
		p.next()
		return &ast.BoolLit{Base: ast.Base{Position: pos}, Value: true}
	case token.FALSE:
		p.next()
		return &ast.BoolLit{Base: ast.Base{Position: pos}, Value: false}
	case token.NULL:
		p.next()
		return &ast.NullLit{Base: ast.Base{Position: pos}}
	case token.LBRACKET:
		return p.parseArrayLit()
	case token.LBRACE:
		return p.parseRawExpression()
	case token.IDENT:
		name := p.intern(p.curToken.Literal)
		if p.peekToken.Type == token.LBRACE {
			p.next() // consume name
			return p.parseStructInstanceExpr(pos, name)
		}
		p.next()
		return &ast.Ident{Base: ast.Base{Position: pos}, Name: name}
	default:
		p.addDiag(SeverityError, CategorySyntax, "unexpected token in value position: "+p.curToken.Type.String())
		p.next()
		return &ast.NullLit{Base: ast.Base{Position: pos}}
	}
}

// parseGuardValue parses a value in a position followed by a `{` block
// (if conditions, for iterables). An identifier here is always a plain
// reference — never a struct instantiation — since the brace that
// follows opens the statement body.
func (p *Parser) parseGuardValue() ast.Expression {
	pos := p.pos()
	var primary ast.Expression
	switch p.curToken.Type {
	case token.IDENT:
		name := p.intern(p.curToken.Literal)
		p.next()
		primary = &ast.Ident{Base: ast.Base{Position: pos}, Name: name}
	default:
		primary = p.parsePrimaryValue()
	}
	if p.curToken.Type == token.DOT && p.peekToken.Type == token.DOT {
		p.next()
		p.next()
		var end ast.Expression
		if p.curToken.Type == token.IDENT {
			endPos := p.pos()
			name := p.intern(p.curToken.Literal)
			p.next()
			end = &ast.Ident{Base: ast.Base{Position: endPos}, Name: name}
		} else {
			end = p.parsePrimaryValue()
		}
		return &ast.RangeExpr{Base: ast.Base{Position: pos}, Start: primary, End: end}
	}
	return primary
}

func (p *Parser) parseArrayLit() *ast.ArrayLit {
	pos := p.pos()
	arr := &ast.ArrayLit{Base: ast.Base{Position: pos}}
	p.next() // '['
	for p.curToken.Type != token.RBRACKET && p.curToken.Type != token.EOF {
		arr.Elements = append(arr.Elements, p.parseValue())
		if p.curToken.Type == token.COMMA {
			p.next()
		}
	}
	if p.curToken.Type == token.RBRACKET {
		p.next()
	} else {
		p.addDiag(SeverityError, CategorySyntax, "unterminated array literal")
	}
	return arr
}

// parseRawExpression captures the bracket-balanced `{ ... }` body
// verbatim, to be resolved later against the expression evaluator
// during lowering; KRY does not parse expression bodies itself (spec
// §4.4, §6).
func (p *Parser) parseRawExpression() *ast.RawExpression {
	pos := p.pos()
	// The lexer has scanned one token (peekToken) past the '{' the parser
	// is holding; rewind to it so the balanced capture starts there.
	p.l.RewindTo(p.curToken)
	text, ok := p.l.SkipBalanced()
	if !ok {
		p.addDiag(SeverityFatal, CategoryBufferOverflow, "unbalanced expression body")
	}
	// Resync the parser's lookahead buffer: SkipBalanced moved the
	// underlying lexer past the region curToken/peekToken already
	// straddled.
	p.resyncAfterRawSkip()
	inner := text
	if len(inner) >= 2 {
		inner = inner[1 : len(inner)-1]
	}
	return &ast.RawExpression{Base: ast.Base{Position: pos}, Text: p.intern(inner)}
}

// resyncAfterRawSkip re-primes curToken/peekToken from the lexer after
// a raw, token-bypassing scan (SkipBalanced or platform code capture).
func (p *Parser) resyncAfterRawSkip() {
	p.curToken = p.l.NextToken()
	p.peekToken = p.l.NextToken()
}

func (p *Parser) parseStructInstanceExpr(pos token.Position, typeName string) *ast.StructInstanceExpr {
	s := &ast.StructInstanceExpr{Base: ast.Base{Position: pos}, TypeName: typeName}
	p.next() // '{'
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		if p.curToken.Type != token.IDENT || p.peekToken.Type != token.ASSIGN {
			p.addDiag(SeverityError, CategorySyntax, "expected field = value in struct instance")
			p.skipToRecoveryPoint()
			continue
		}
		key := p.intern(p.curToken.Literal)
		p.next()
		p.next() // '='
		val := p.parseValue()
		s.Fields = append(s.Fields, ast.ObjectField{Key: key, Value: val})
		if p.curToken.Type == token.SEMICOLON || p.curToken.Type == token.COMMA {
			p.next()
		}
	}
	if p.curToken.Type == token.RBRACE {
		p.next()
	} else {
		p.addDiag(SeverityError, CategorySyntax, "unterminated struct instance for "+typeName)
	}
	return s
}

func (p *Parser) parseImportDecl() *ast.ImportDecl {
	pos := p.pos()
	decl := &ast.ImportDecl{Base: ast.Base{Position: pos}}
	p.next() // 'import'
	if p.curToken.Type == token.LBRACE {
		p.next()
		for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
			if p.curToken.Type == token.IDENT {
				decl.Names = append(decl.Names, p.intern(p.curToken.Literal))
				p.next()
			}
			if p.curToken.Type == token.COMMA {
				p.next()
			}
		}
		if p.curToken.Type == token.RBRACE {
			p.next()
		}
	} else if p.expect(token.IDENT, "import alias") {
		decl.Alias = p.intern(p.curToken.Literal)
		p.next()
	}
	if !p.expectAdvance(token.FROM, "'from'") {
		return decl
	}
	if p.expect(token.STRING, "import path string") {
		decl.Path = p.intern(p.curToken.Literal)
		p.next()
	}
	if p.curToken.Type == token.SEMICOLON {
		p.next()
	}
	return decl
}

func (p *Parser) parseVarDecl() *ast.VarDecl {
	pos := p.pos()
	kind := map[token.Type]ast.VarKind{token.CONST: ast.VarConst, token.LET: ast.VarLet, token.VAR: ast.VarVar}[p.curToken.Type]
	p.next()
	decl := &ast.VarDecl{Base: ast.Base{Position: pos}, Kind: kind}
	if p.expect(token.IDENT, "variable name") {
		decl.Name = p.intern(p.curToken.Literal)
		p.next()
	}
	if p.expectAdvance(token.ASSIGN, "'='") {
		decl.Value = p.parseValue()
	}
	if p.curToken.Type == token.SEMICOLON {
		p.next()
	}
	return decl
}

func (p *Parser) parseStateDecl() *ast.StateDecl {
	pos := p.pos()
	p.next() // 'state'
	decl := &ast.StateDecl{Base: ast.Base{Position: pos}}
	if p.expect(token.IDENT, "state name") {
		decl.Name = p.intern(p.curToken.Literal)
		p.next()
	}
	if p.expectAdvance(token.COLON, "':'") && p.expect(token.IDENT, "state type") {
		decl.Type = p.intern(p.curToken.Literal)
		p.next()
	}
	if p.expectAdvance(token.ASSIGN, "'='") {
		decl.DefaultValue = p.parseValue()
	}
	if p.curToken.Type == token.SEMICOLON {
		p.next()
	}
	return decl
}

func (p *Parser) parseStaticBlock() *ast.StaticBlock {
	pos := p.pos()
	p.next() // 'static'
	blk := &ast.StaticBlock{Base: ast.Base{Position: pos}, ID: p.staticID}
	p.staticID++
	if !p.expectAdvance(token.LBRACE, "'{'") {
		return blk
	}
	blk.Statements = p.parseStatementList(token.RBRACE)
	if p.curToken.Type == token.RBRACE {
		p.next()
	}
	return blk
}

func (p *Parser) parseForLoop() *ast.ForLoop {
	pos := p.pos()
	p.next() // 'for'
	loop := &ast.ForLoop{Base: ast.Base{Position: pos}}
	if p.curToken.Type == token.EACH {
		loop.IsForEach = true
		p.next()
	}
	if p.expect(token.IDENT, "loop variable") {
		loop.Var = p.intern(p.curToken.Literal)
		p.next()
	}
	if p.expectAdvance(token.IN, "'in'") {
		loop.Iterable = p.parseGuardValue()
	}
	if !p.expectAdvance(token.LBRACE, "'{'") {
		return loop
	}
	loop.Body = p.parseStatementList(token.RBRACE)
	if p.curToken.Type == token.RBRACE {
		p.next()
	}
	return loop
}

func (p *Parser) parseIfStmt() *ast.IfStmt {
	pos := p.pos()
	p.next() // 'if'
	stmt := &ast.IfStmt{Base: ast.Base{Position: pos}}
	stmt.Condition = p.parseGuardValue()
	if !p.expectAdvance(token.LBRACE, "'{'") {
		return stmt
	}
	stmt.Then = p.parseStatementList(token.RBRACE)
	if p.curToken.Type == token.RBRACE {
		p.next()
	}
	if p.curToken.Type == token.ELSE {
		p.next()
		if p.curToken.Type == token.IF {
			stmt.Else = []ast.Statement{p.parseIfStmt()}
			return stmt
		}
		if p.expectAdvance(token.LBRACE, "'{'") {
			stmt.Else = p.parseStatementList(token.RBRACE)
			if p.curToken.Type == token.RBRACE {
				p.next()
			}
		}
	}
	return stmt
}

func (p *Parser) parseStyleBlockDecl() *ast.StyleBlockDecl {
	pos := p.pos()
	p.next() // 'style'
	decl := &ast.StyleBlockDecl{Base: ast.Base{Position: pos}}
	if p.expect(token.IDENT, "style name") {
		decl.Name = p.intern(p.curToken.Literal)
		p.next()
	}
	if !p.expectAdvance(token.LBRACE, "'{'") {
		return decl
	}
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		if p.curToken.Type == token.IDENT && p.peekToken.Type == token.ASSIGN {
			decl.Properties = append(decl.Properties, p.parsePropertyAssignment())
			continue
		}
		p.addDiag(SeverityError, CategorySyntax, "expected property assignment in style block")
		p.skipToRecoveryPoint()
	}
	if p.curToken.Type == token.RBRACE {
		p.next()
	}
	return decl
}

func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	pos := p.pos()
	p.next() // 'func'
	fn := &ast.FuncDecl{Base: ast.Base{Position: pos}}
	if p.expect(token.IDENT, "function name") {
		fn.Name = p.intern(p.curToken.Literal)
		p.next()
	}
	if p.expectAdvance(token.LPAREN, "'('") {
		for p.curToken.Type != token.RPAREN && p.curToken.Type != token.EOF {
			if p.expect(token.IDENT, "parameter name") {
				param := ast.FuncParam{Name: p.intern(p.curToken.Literal)}
				p.next()
				if p.expectAdvance(token.COLON, "':'") && p.expect(token.IDENT, "parameter type") {
					param.Type = p.intern(p.curToken.Literal)
					p.next()
				}
				if len(fn.Params) >= 16 {
					p.addDiag(SeverityError, CategoryLimitExceeded, "function '"+fn.Name+"' exceeds 16 parameters")
				} else {
					fn.Params = append(fn.Params, param)
				}
			}
			if p.curToken.Type == token.COMMA {
				p.next()
			}
		}
		if p.curToken.Type == token.RPAREN {
			p.next()
		}
	}
	if p.curToken.Type == token.COLON {
		p.next()
		if p.expect(token.IDENT, "return type") {
			fn.ReturnType = p.intern(p.curToken.Literal)
			p.next()
		}
	}
	if !p.expectAdvance(token.LBRACE, "'{'") {
		return fn
	}
	fn.Body = p.parseStatementList(token.RBRACE)
	if p.curToken.Type == token.RBRACE {
		p.next()
	}
	return fn
}

func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	pos := p.pos()
	p.next() // 'return'
	stmt := &ast.ReturnStmt{Base: ast.Base{Position: pos}}
	if p.curToken.Type == token.LBRACE {
		p.next()
		for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
			if p.curToken.Type == token.IDENT {
				stmt.Exports = append(stmt.Exports, p.intern(p.curToken.Literal))
				p.next()
			}
			if p.curToken.Type == token.COMMA {
				p.next()
			}
		}
		if p.curToken.Type == token.RBRACE {
			p.next()
		}
	} else if p.curToken.Type != token.SEMICOLON && p.curToken.Type != token.EOF {
		stmt.Value = p.parseValue()
	}
	if p.curToken.Type == token.SEMICOLON {
		p.next()
	}
	return stmt
}

func (p *Parser) parseStructDecl() *ast.StructDecl {
	pos := p.pos()
	p.next() // 'struct'
	decl := &ast.StructDecl{Base: ast.Base{Position: pos}}
	if p.expect(token.IDENT, "struct name") {
		decl.Name = p.intern(p.curToken.Literal)
		p.next()
	}
	if !p.expectAdvance(token.LBRACE, "'{'") {
		return decl
	}
	for p.curToken.Type != token.RBRACE && p.curToken.Type != token.EOF {
		if !p.expect(token.IDENT, "field name") {
			p.skipToRecoveryPoint()
			continue
		}
		field := ast.StructField{Name: p.intern(p.curToken.Literal)}
		p.next()
		if p.expectAdvance(token.COLON, "':'") && p.expect(token.IDENT, "field type") {
			field.Type = p.intern(p.curToken.Literal)
			p.next()
		}
		if p.curToken.Type == token.ASSIGN {
			p.next()
			field.Default = p.parseValue()
		}
		decl.Fields = append(decl.Fields, field)
		if p.curToken.Type == token.SEMICOLON || p.curToken.Type == token.COMMA {
			p.next()
		}
	}
	if p.curToken.Type == token.RBRACE {
		p.next()
	}
	return decl
}

// parsePlatformCodeBlock parses `@lua { ... }` / `@js { ... }`. The
// body is not KRY syntax, so it is captured verbatim as a balanced
// region rather than tokenized.
func (p *Parser) parsePlatformCodeBlock() *ast.PlatformCodeBlock {
	pos := p.pos()
	p.next() // '@'
	blk := &ast.PlatformCodeBlock{Base: ast.Base{Position: pos}}
	if p.expect(token.IDENT, "platform name (lua, js)") {
		blk.Platform = p.curToken.Literal
		p.next()
	}
	if !p.expect(token.LBRACE, "'{'") {
		return blk
	}
	p.l.RewindTo(p.curToken)
	text, ok := p.l.SkipBalanced()
	if !ok {
		p.addDiag(SeverityFatal, CategoryBufferOverflow, "unterminated platform code block")
	}
	p.resyncAfterRawSkip()
	if len(text) >= 2 {
		text = text[1 : len(text)-1]
	}
	blk.Code = p.intern(text)
	return blk
}

