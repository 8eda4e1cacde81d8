// Package cmd implements the kryonc command-line interface: compile,
// run, inspect, validate, and dump over KRY and KIR files.
package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kryonc",
	Short: L("Kryon IR toolchain"),
	Long:  L("Compile, inspect, and run declarative UI trees in the Kryon intermediate representation"),
}

// Execute runs the CLI.
func Execute() {
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %s", err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(dumpCmd)
}

var langs = map[string]string{
	"Kryon IR toolchain": "Kryon IR 工具链",
	"Compile, inspect, and run declarative UI trees in the Kryon intermediate representation": "编译、检查并运行 Kryon 中间表示中的声明式 UI 树",
	"Compile a KRY source file to KIR":           "将 KRY 源文件编译为 KIR",
	"Run a KRY or KIR file in a demo executor":   "在演示执行器中运行 KRY 或 KIR 文件",
	"Inspect a compiled tree":                    "检查编译后的组件树",
	"Validate a KRY source file":                 "验证 KRY 源文件",
	"Dump the KIR JSON for a KRY source file":    "导出 KRY 源文件的 KIR JSON",
	"Watch the file and hot-reload on change":    "监视文件并在更改时热重载",
	"Output file path":                           "输出文件路径",
	"Compile mode: runtime, codegen, or hybrid":  "编译模式: runtime、codegen 或 hybrid",
}

// L 多语言切换
func L(words string) string {
	var lang = os.Getenv("KRYON_LANG")
	if lang == "" {
		return words
	}
	if trans, has := langs[words]; has {
		return trans
	}
	return words
}
