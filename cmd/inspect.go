package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
	"github.com/kryonlabs/kryon-ir/internal/lower"
	"github.com/kryonlabs/kryon-ir/internal/serialize"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.kry|file.kir>",
	Short: L("Inspect a compiled tree"),
	Args:  cobra.ExactArgs(1),
	Run:   runInspect,
}

func runInspect(cmd *cobra.Command, args []string) {
	path := args[0]
	ctx, err := loadTree(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}

	fmt.Println(strings.Repeat("=", 70))
	fmt.Printf("Tree: %s\n", path)
	fmt.Println(strings.Repeat("-", 70))

	counts := make(map[kirtree.ComponentType]int)
	depth := 0
	var walk func(c *kirtree.Component, d int)
	walk = func(c *kirtree.Component, d int) {
		if c == nil {
			return
		}
		counts[c.Type]++
		if d > depth {
			depth = d
		}
		fmt.Printf("%s%s #%d", strings.Repeat("  ", d), c.Type, c.ID)
		if c.Tag != nil {
			fmt.Printf(" (%s)", *c.Tag)
		}
		if c.TextContent != nil {
			fmt.Printf(" %q", *c.TextContent)
		}
		fmt.Println()
		for _, child := range c.Children {
			walk(child, d+1)
		}
	}
	walk(ctx.Root, 0)

	total := 0
	for _, n := range counts {
		total += n
	}
	fmt.Println(strings.Repeat("-", 70))
	fmt.Printf("Components: %d   Depth: %d\n", total, depth)
	for t, n := range counts {
		fmt.Printf("  %-16s %d\n", t.String(), n)
	}
	stats := ctx.PoolStats()
	fmt.Printf("Pool: allocated=%d freed=%d in-use=%d blocks=%d\n",
		stats.Allocated, stats.Freed, stats.InUse, stats.Blocks)
}

// loadTree builds an IRContext from either a .kry source file or a .kir
// document.
func loadTree(path string) (*kirtree.IRContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".kir") || strings.HasSuffix(path, ".json") {
		doc, err := serialize.Unmarshal(data)
		if err != nil {
			return nil, err
		}
		ctx := kirtree.NewIRContext(0)
		serialize.Deserialize(doc, ctx)
		return ctx, nil
	}
	ctx, conv, p := lower.Compile(string(data), &lower.ConversionContext{SourcePath: path})
	if err := p.Err(); err != nil {
		return nil, err
	}
	if err := conv.Err(); err != nil {
		return nil, err
	}
	return ctx, nil
}
