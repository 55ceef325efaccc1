package cmd

import (
	"fmt"
	"os"

	"github.com/minidyn/minidyn/internal/lexer"
	"github.com/minidyn/minidyn/internal/token"
	"github.com/spf13/cobra"
)

var lexShowPos bool

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a MiniDyn source file and print its tokens",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		data, err := os.ReadFile(args[0])
		if err != nil {
			exitWithError("reading %s: %v", args[0], err)
		}

		l := lexer.New(string(data), lexer.WithFile(args[0]))
		for {
			tok := l.NextToken()
			if lexShowPos {
				fmt.Printf("%-14s %-20q %d:%d\n", tok.Type, tok.Literal, tok.Pos.Line, tok.Pos.Column)
			} else {
				fmt.Printf("%-14s %q\n", tok.Type, tok.Literal)
			}
			if tok.Type == token.EOF {
				break
			}
		}

		for _, e := range l.Errors() {
			fmt.Fprintf(os.Stderr, "lex error at %d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Message)
		}
	},
}

func init() {
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
	rootCmd.AddCommand(lexCmd)
}
