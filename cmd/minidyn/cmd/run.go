package cmd

import (
	"fmt"
	"os"

	"github.com/minidyn/minidyn/internal/ast"
	"github.com/minidyn/minidyn/internal/bytecode"
	"github.com/minidyn/minidyn/internal/diag"
	"github.com/minidyn/minidyn/internal/evaluator"
	"github.com/minidyn/minidyn/internal/parser"
	"github.com/minidyn/minidyn/internal/runtime"
	"github.com/minidyn/minidyn/internal/value"
	"github.com/spf13/cobra"
)

var (
	runEval         string
	runDumpBytecode bool
	runTrace        bool
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a MiniDyn script",
	Long:  `run executes a MiniDyn source file, or inline code given via --eval. With no file and no --eval, it starts a REPL.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(c *cobra.Command, args []string) {
		if runEval == "" && len(args) == 0 {
			runRepl(c, args)
			return
		}

		var source, file string
		if runEval != "" {
			source, file = runEval, "<eval>"
		} else {
			file = args[0]
			data, err := os.ReadFile(file)
			if err != nil {
				exitWithError("reading %s: %v", file, err)
			}
			source = string(data)
		}

		if err := runSource(os.Stdout, os.Stdin, source, file); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().StringVarP(&runEval, "eval", "e", "", "evaluate inline code instead of a file")
	runCmd.Flags().BoolVar(&runDumpBytecode, "dump-bytecode", false, "disassemble each top-level function's compiled chunk before running")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "trace every function call/return to stderr")
	rootCmd.AddCommand(runCmd)
}

// dumpTopLevelBytecode disassembles every top-level function declaration
// and every function literal bound by a top-level `var`/`let`/`const`
// declaration that compiles to a bytecode chunk, in the teacher's
// --dump-bytecode style (parse, then print disassembly, then run).
func dumpTopLevelBytecode(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		var fns []*ast.FunctionLiteral
		switch s := stmt.(type) {
		case *ast.FunctionDeclaration:
			fns = append(fns, s.Function)
		case *ast.DeclarationStatement:
			for _, d := range s.Declarators {
				if fn, ok := d.Value.(*ast.FunctionLiteral); ok {
					fns = append(fns, fn)
				}
			}
		}

		for _, fn := range fns {
			name := fn.Name
			if name == "" {
				name = "<anonymous>"
			}
			chunk, _, ok := bytecode.Compile(fn)
			if !ok {
				fmt.Printf("-- %s: not bytecode-eligible, runs on the tree-walker --\n", name)
				continue
			}
			fmt.Println(bytecode.Disassemble(name, chunk))
		}
	}
}

// runSource parses and evaluates one program against a fresh runtime,
// writing diagnostics (lex, parse, or runtime errors) in the teacher's
// line/caret style via internal/diag.
func runSource(out *os.File, in *os.File, source, file string) error {
	prog, parseErrs := parser.ParseProgram(source, file)
	if len(parseErrs) > 0 {
		return formatParseErrors(parseErrs, source)
	}

	if runDumpBytecode {
		dumpTopLevelBytecode(prog)
	}

	rt := runtime.New(out, in)
	if runTrace {
		rt.SetTrace(os.Stderr)
	}
	if err := rt.Prepare(file); err != nil {
		return err
	}

	if _, err := rt.Eval.EvalProgram(prog, rt.Global); err != nil {
		return formatRuntimeError(err, source)
	}
	return nil
}

func formatParseErrors(errs []parser.ParseError, source string) error {
	sourceErrs := make([]*diag.SourceError, len(errs))
	for i, e := range errs {
		sourceErrs[i] = diag.New("ParseError", e.Message, e.Pos, source)
	}
	return fmt.Errorf("%s", diag.FormatAll(sourceErrs, false))
}

func formatRuntimeError(err error, source string) error {
	switch e := err.(type) {
	case *evaluator.RuntimeError:
		return fmt.Errorf("%s", diag.New("RuntimeError", e.Message, e.Pos, source).Format(false))
	case *evaluator.ThrownValue:
		return fmt.Errorf("%s", diag.New("RuntimeError", "uncaught: "+value.Inspect(e.Value), e.Pos, source).Format(false))
	default:
		return err
	}
}
