package lower

import (
	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/kry/lexer"
	"github.com/kryonlabs/kryon-ir/internal/kry/parser"
	"github.com/kryonlabs/kryon-ir/internal/mem"
)

// Compile is the front-to-back convenience: lex and parse source, then
// lower the program into a fresh IRContext. The returned Converter
// carries conversion diagnostics; parser diagnostics live on the
// returned Parser.
func Compile(source string, cc *ConversionContext) (*kirtree.IRContext, *Converter, *parser.Parser) {
	if cc == nil {
		cc = &ConversionContext{}
	}
	arena := mem.NewArena(mem.DefaultChunkSize)
	p := parser.New(lexer.New(source), arena)
	cc.Program = p.ParseProgram()
	cc.Parser = p

	ir := kirtree.NewIRContext(0)
	conv := NewConverter(ir, cc)
	conv.Convert()
	return ir, conv, p
}
