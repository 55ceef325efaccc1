package cmd

import (
	"fmt"
	"os"

	"github.com/minidyn/minidyn/internal/diag"
	"github.com/minidyn/minidyn/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a MiniDyn source file and print its AST",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		file := args[0]
		data, err := os.ReadFile(file)
		if err != nil {
			exitWithError("reading %s: %v", file, err)
		}

		prog, parseErrs := parser.ParseProgram(string(data), file)
		if len(parseErrs) > 0 {
			sourceErrs := make([]*diag.SourceError, len(parseErrs))
			for i, e := range parseErrs {
				sourceErrs[i] = diag.New("ParseError", e.Message, e.Pos, string(data))
			}
			fmt.Fprintln(os.Stderr, diag.FormatAll(sourceErrs, false))
			os.Exit(1)
		}

		fmt.Println(prog.String())
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
}
