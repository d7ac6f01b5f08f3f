package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/aledsdavies/lox/pkgs/cache"
	"github.com/aledsdavies/lox/pkgs/diag"
	"github.com/aledsdavies/lox/pkgs/fingerprint"
	"github.com/aledsdavies/lox/pkgs/interpreter"
	"github.com/aledsdavies/lox/pkgs/lexer"
	"github.com/aledsdavies/lox/pkgs/parser"
)

// watchDebounce collapses bursts of filesystem events from a single save
// (editors often emit a rename+write pair) into one re-run.
const watchDebounce = 200 * time.Millisecond

func newRunCmd(exitCode *int) *cobra.Command {
	var watch, fingerprintOnly, noColor bool

	cmd := &cobra.Command{
		Use:           "lox [script]",
		Short:         "Run a lox script, or start an interactive prompt with no arguments",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor := diag.ShouldUseColor(noColor)

			if len(args) == 0 {
				if fingerprintOnly {
					return fmt.Errorf("--fingerprint requires a script argument")
				}
				runPrompt(useColor)
				return nil
			}

			if fingerprintOnly {
				*exitCode = runFingerprintOnly(args[0])
				return nil
			}
			if watch {
				return runWatch(args[0], useColor, exitCode)
			}
			*exitCode = runFile(args[0], useColor)
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "re-run the script whenever it changes on disk")
	cmd.Flags().BoolVar(&fingerprintOnly, "fingerprint", false, "print the script's token fingerprint instead of running it")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable ANSI color in diagnostic output")

	return cmd
}

// runSource scans, parses, and interprets source against reporter/interp,
// stopping early at the first phase that reports an error — a runtime
// error is never attempted against a program that failed to parse.
func runSource(source string, reporter *diag.Reporter, interp *interpreter.Interpreter) {
	l := lexer.New(source, reporter)
	tokens := l.ScanTokens()
	if reporter.HadError {
		return
	}

	p := parser.New(tokens, reporter)
	statements := p.Parse()
	if reporter.HadError {
		return
	}

	interp.Interpret(statements)
}

func runFile(path string, useColor bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}

	reporter := diag.New(os.Stderr, useColor)
	interp := interpreter.New(reporter, os.Stdout)
	runSource(string(source), reporter, interp)

	switch {
	case reporter.HadError:
		return exitCompileError
	case reporter.HadRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

// runPrompt drives a REPL: one persistent Interpreter (so declarations on
// one line are visible to later lines), one fresh Reporter.Reset() per
// line (so a bad line never poisons the rest of the session).
func runPrompt(useColor bool) {
	reporter := diag.New(os.Stderr, useColor)
	interp := interpreter.New(reporter, os.Stdout)

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Print("> ")
	for scanner.Scan() {
		reporter.Reset()
		runSource(scanner.Text(), reporter, interp)
		fmt.Print("> ")
	}
}

func runFingerprintOnly(path string) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}

	reporter := diag.New(os.Stderr, false)
	l := lexer.New(string(source), reporter)
	tokens := l.ScanTokens()
	if reporter.HadError {
		return exitCompileError
	}

	fp, err := fingerprint.Of(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsageError
	}
	fmt.Println(fp)
	return exitOK
}

// runWatch runs path once, then re-runs it on every filesystem change to
// its containing directory, skipping re-runs whose token fingerprint is
// unchanged from the last run (editors commonly emit duplicate events for
// one save). Only the initial run's result sets *exitCode; subsequent
// watched re-runs report to stderr and keep watching.
func runWatch(path string, useColor bool, exitCode *int) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	cachePath, err := cache.DefaultPath()
	if err != nil {
		return err
	}
	store := cache.Open(cachePath)

	// runLock serializes runs, so a debounced re-run never overlaps one
	// that is still executing.
	runLock := make(chan struct{}, 1)

	run := func() int {
		runLock <- struct{}{}
		defer func() { <-runLock }()

		source, err := os.ReadFile(absPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitUsageError
		}

		reporter := diag.New(os.Stderr, useColor)
		l := lexer.New(string(source), reporter)
		tokens := l.ScanTokens()

		fp, ferr := fingerprint.Of(tokens)
		if ferr == nil {
			if prev, ok := store.Fingerprint(absPath); ok && prev == fp {
				fmt.Println("unchanged")
				return exitOK
			}
			_ = store.Set(absPath, fp)
		}

		interp := interpreter.New(reporter, os.Stdout)
		if !reporter.HadError {
			p := parser.New(tokens, reporter)
			statements := p.Parse()
			if !reporter.HadError {
				interp.Interpret(statements)
			}
		}

		switch {
		case reporter.HadError:
			return exitCompileError
		case reporter.HadRuntimeError:
			return exitRuntimeError
		default:
			return exitOK
		}
	}

	*exitCode = run()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}

	var debounce *time.Timer
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			changed, err := filepath.Abs(event.Name)
			if err != nil || changed != absPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() { run() })

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
