package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aledsdavies/lox/pkgs/diag"
	"github.com/aledsdavies/lox/pkgs/lexer"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <script>",
		Short: "Scan a script and print its token stream, one token per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			reporter := diag.New(os.Stderr, diag.ShouldUseColor(false))
			l := lexer.New(string(source), reporter)
			for _, t := range l.ScanTokens() {
				fmt.Printf("%d %s %q\n", t.Line, t.Type, t.Lexeme)
			}
			return nil
		},
	}
}
