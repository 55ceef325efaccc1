// Package cmd implements the minidyn CLI: run/repl/lex/parse/fmt
// subcommands over github.com/spf13/cobra, following the teacher's own
// command layout (one file per subcommand, a shared root with a
// persistent --verbose flag and a custom version template).
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "minidyn",
	Short: "MiniDyn interpreter",
	Long: `minidyn is a dynamically-typed, expression-oriented scripting
language: a tree-walking evaluator backed by a bytecode compiler and VM
for plain function bodies, a module loader with require(), and a fixed
built-in registry covering I/O, collections, JSON, regex, crypto and more.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
