package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kryonlabs/kryon-ir/internal/kry/parser"
	"github.com/kryonlabs/kryon-ir/internal/lower"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file.kry>",
	Short: L("Validate a KRY source file"),
	Args:  cobra.ExactArgs(1),
	Run:   runValidate,
}

func runValidate(cmd *cobra.Command, args []string) {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s cannot read %s: %v\n", color.RedString("Error:"), path, err)
		os.Exit(1)
	}

	_, conv, p := lower.Compile(string(src), &lower.ConversionContext{SourcePath: path})

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Validation Report: %s\n", path)
	fmt.Println(strings.Repeat("-", 70))

	total := reportDiagnostics(path, p, conv)
	if p.HasErrors() || conv.Err() != nil {
		fmt.Printf("\n%s %s\n", color.RedString("✗"), "validation failed")
		os.Exit(1)
	}
	if total > 0 {
		fmt.Printf("\n%s valid with %d warning(s)\n", color.YellowString("⚠"), total)
		return
	}
	fmt.Printf("\n%s %s is valid\n", color.GreenString("✓"), path)
}

// reportDiagnostics prints parser and conversion diagnostics, returning
// how many were printed.
func reportDiagnostics(path string, p *parser.Parser, conv *lower.Converter) int {
	diags := append(append([]parser.Diagnostic(nil), p.Diagnostics()...), conv.Diagnostics()...)
	for _, d := range diags {
		prefix := color.YellowString("warning")
		if d.Severity >= parser.SeverityError {
			prefix = color.RedString(d.Severity.String())
		}
		fmt.Fprintf(os.Stderr, "%s:%d:%d: %s: %s\n", path, d.Line, d.Column, prefix, d.Message)
	}
	return len(diags)
}
