package cmd

import (
	"fmt"
	"os"

	"github.com/minidyn/minidyn/internal/diag"
	"github.com/minidyn/minidyn/internal/parser"
	"github.com/spf13/cobra"
)

var (
	fmtWrite bool
	fmtList  bool
)

var fmtCmd = &cobra.Command{
	Use:   "fmt [file]",
	Short: "Reformat a MiniDyn source file",
	Long: `fmt parses a source file and re-renders it from the AST via each
node's canonical String() form. There is no separate layout-preserving
printer here, so this normalizes whitespace rather than minimally
reflowing it.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		file := args[0]
		formatted, err := formatFile(file)
		if err != nil {
			exitWithError("%v", err)
		}

		switch {
		case fmtWrite:
			data, readErr := os.ReadFile(file)
			if readErr == nil && string(data) == formatted {
				return
			}
			if err := os.WriteFile(file, []byte(formatted), 0o644); err != nil {
				exitWithError("writing %s: %v", file, err)
			}
		case fmtList:
			data, _ := os.ReadFile(file)
			if string(data) != formatted {
				fmt.Println(file)
			}
		default:
			fmt.Print(formatted)
		}
	},
}

func init() {
	fmtCmd.Flags().BoolVarP(&fmtWrite, "write", "w", false, "write result back to the source file")
	fmtCmd.Flags().BoolVarP(&fmtList, "list", "l", false, "list files whose formatting differs, without writing them")
	rootCmd.AddCommand(fmtCmd)
}

func formatFile(file string) (string, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", file, err)
	}

	prog, parseErrs := parser.ParseProgram(string(data), file)
	if len(parseErrs) > 0 {
		sourceErrs := make([]*diag.SourceError, len(parseErrs))
		for i, e := range parseErrs {
			sourceErrs[i] = diag.New("ParseError", e.Message, e.Pos, string(data))
		}
		return "", fmt.Errorf("%s", diag.FormatAll(sourceErrs, false))
	}

	return prog.String(), nil
}
