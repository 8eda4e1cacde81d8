package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/yaoapp/kun/log"

	"github.com/kryonlabs/kryon-ir/internal/lower"
	"github.com/kryonlabs/kryon-ir/internal/serialize"
)

var compileOutput string
var compileMode string

var compileCmd = &cobra.Command{
	Use:   "compile <file.kry>",
	Short: L("Compile a KRY source file to KIR"),
	Args:  cobra.ExactArgs(1),
	Run:   runCompile,
}

func init() {
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", L("Output file path"))
	compileCmd.Flags().StringVar(&compileMode, "mode", "runtime", L("Compile mode: runtime, codegen, or hybrid"))
}

func parseMode(s string) (lower.CompileMode, error) {
	switch s {
	case "runtime":
		return lower.ModeRuntime, nil
	case "codegen":
		return lower.ModeCodegen, nil
	case "hybrid":
		return lower.ModeHybrid, nil
	default:
		return 0, fmt.Errorf("unknown compile mode %q", s)
	}
}

func runCompile(cmd *cobra.Command, args []string) {
	path := args[0]
	mode, err := parseMode(compileMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s cannot read %s: %v\n", color.RedString("Error:"), path, err)
		os.Exit(1)
	}

	ctx, conv, p := lower.Compile(string(src), &lower.ConversionContext{
		Mode:       mode,
		SourcePath: path,
	})
	reportDiagnostics(path, p, conv)
	if p.HasErrors() || conv.Err() != nil {
		os.Exit(1)
	}

	doc := serialize.Serialize(ctx)
	data, err := serialize.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s serialize: %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	out := compileOutput
	if out == "" {
		out = strings.TrimSuffix(path, ".kry") + ".kir"
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "%s write %s: %v\n", color.RedString("Error:"), out, err)
		os.Exit(1)
	}
	log.Info("compiled %s -> %s", path, out)
	fmt.Printf("%s %s\n", color.GreenString("Compiled:"), out)
}
