// Command minidyn is the MiniDyn language CLI: run/repl/lex/parse/fmt.
package main

import (
	"fmt"
	"os"

	"github.com/minidyn/minidyn/cmd/minidyn/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
