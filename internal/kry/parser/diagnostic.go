package parser

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Severity ranks a Diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Category classifies the kind of problem a Diagnostic reports.
type Category int

const (
	CategorySyntax Category = iota
	CategorySemantic
	CategoryLimitExceeded
	CategoryBufferOverflow
	CategoryConversion
	CategoryValidation
)

func (c Category) String() string {
	switch c {
	case CategorySyntax:
		return "syntax"
	case CategorySemantic:
		return "semantic"
	case CategoryLimitExceeded:
		return "limit_exceeded"
	case CategoryBufferOverflow:
		return "buffer_overflow"
	case CategoryConversion:
		return "conversion"
	case CategoryValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Diagnostic is one parse-time or lowering-time problem report. The
// parser keeps accumulating these rather than aborting on the first
// error, so a single pass can report every syntax mistake in a file
// (spec §4.4).
type Diagnostic struct {
	Severity Severity
	Category Category
	Line     int
	Column   int
	Message  string
	Snippet  string // source text near the problem, when available
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Severity, d.Line, d.Column, d.Category, d.Message)
}

func (d Diagnostic) Error() string { return d.String() }

// Fold collapses Error-and-above diagnostics into a single error for
// callers that want one value instead of the raw list, or nil when
// parsing succeeded.
func Fold(diags []Diagnostic) error {
	var result *multierror.Error
	for _, d := range diags {
		if d.Severity >= SeverityError {
			result = multierror.Append(result, d)
		}
	}
	return result.ErrorOrNil()
}

// Err folds this parser's diagnostics; see Fold.
func (p *Parser) Err() error { return Fold(p.diagnostics) }
