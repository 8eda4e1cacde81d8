package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kryonlabs/kryon-ir/internal/serialize"
)

var dumpCmd = &cobra.Command{
	Use:   "dump <file.kry|file.kir>",
	Short: L("Dump the KIR JSON for a KRY source file"),
	Args:  cobra.ExactArgs(1),
	Run:   runDump,
}

func runDump(cmd *cobra.Command, args []string) {
	ctx, err := loadTree(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
	data, err := serialize.Marshal(serialize.Serialize(ctx))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s serialize: %v\n", color.RedString("Error:"), err)
		os.Exit(1)
	}
	fmt.Println(string(data))
}
