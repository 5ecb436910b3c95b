package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// Exit codes per spec.md §6: 0 success, 1 validation/runtime failure, 2
// usage error.
const (
	exitOK         = 0
	exitFailure    = 1
	exitUsageError = 2
)

// usageError marks a cobra RunE failure as a usage problem (bad flags,
// unreadable file) rather than a validation/runtime failure, so main can
// pick the right exit code without cobra's own exit-code handling (cobra
// always exits 1 on RunE error).
type usageError struct{ err error }

func (u *usageError) Error() string { return u.err.Error() }
func (u *usageError) Unwrap() error { return u.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

func exitCodeFor(err error) int {
	if err == nil {
		return exitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsageError
	}
	return exitFailure
}

var (
	schemaPath string
	inputPath  string
	repairOnly bool
	verbose    bool
	configPath string
	runID      string
)

var rootCmd = &cobra.Command{
	Use:   "llm_structured_cli",
	Short: "Extract, repair, parse, and validate structured data recovered from free-form LLM text",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyConfigDefaults(configPath); err != nil {
			return err
		}
		runID = uuid.NewString()
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		slog.Debug("starting run", "run_id", runID, "command", cmd.Name())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&schemaPath, "schema", "", "path to a JSON Schema file to validate against")
	rootCmd.PersistentFlags().StringVar(&inputPath, "input", "", "path to the input file (default: stdin)")
	rootCmd.PersistentFlags().BoolVar(&repairOnly, "repair-only", false, "stop after the repair step and print the repaired text instead of parsing/validating")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML file of default flag values (schema, repairOnly, verbose)")

	rootCmd.AddCommand(jsonCmd)
	rootCmd.AddCommand(markdownCmd)
	rootCmd.AddCommand(kvCmd)
	rootCmd.AddCommand(sqlCmd)
}

// Execute runs the root command and returns its RunE error (if any)
// unwrapped, so main can classify it into an exit code itself.
func Execute() error {
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	return rootCmd.Execute()
}

func readInput() (string, error) {
	if inputPath == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", usageErrorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", usageErrorf("read %s: %w", inputPath, err)
	}
	return string(data), nil
}
