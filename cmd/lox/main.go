// Command lox is the driver for the language: it wires the scanner,
// parser, and interpreter together for one-shot file execution and for
// an interactive REPL, and owns the process exit code.
package main

import (
	"os"
)

// Exit codes from spec.md §6.
const (
	exitOK           = 0
	exitCompileError = 65
	exitRuntimeError = 70
	exitUsageError   = 1
)

func main() {
	exitCode := exitOK

	root := newRunCmd(&exitCode)
	root.AddCommand(newTokensCmd())

	if err := root.Execute(); err != nil {
		if exitCode == exitOK {
			exitCode = exitUsageError
		}
	}

	os.Exit(exitCode)
}
