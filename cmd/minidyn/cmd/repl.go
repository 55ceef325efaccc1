package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/minidyn/minidyn/internal/parser"
	"github.com/minidyn/minidyn/internal/runtime"
	"github.com/minidyn/minidyn/internal/value"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive MiniDyn read-eval-print loop",
	Run:   runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

// runRepl reads one line at a time, evaluating it against a single
// persistent runtime so declarations made at one prompt are visible at
// the next — the same top-level environment `run` would use for a whole
// file, just fed one line per EvalProgram call.
func runRepl(_ *cobra.Command, _ []string) {
	rt := runtime.New(os.Stdout, os.Stdin)
	if err := rt.Prepare("<repl>"); err != nil {
		exitWithError("preparing runtime: %v", err)
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Println("minidyn REPL. Ctrl-D to exit.")
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		prog, parseErrs := parser.ParseProgram(line, "<repl>")
		if len(parseErrs) > 0 {
			fmt.Println(formatParseErrors(parseErrs, line))
			continue
		}

		result, err := rt.Eval.EvalProgram(prog, rt.Global)
		if err != nil {
			fmt.Println(formatRuntimeError(err, line))
			continue
		}
		if result != nil && result != value.NilValue {
			fmt.Println(value.Inspect(result))
		}
	}
}
