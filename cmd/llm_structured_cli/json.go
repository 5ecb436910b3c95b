package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"llmstructured/pkg/extract"
	"llmstructured/pkg/value"
)

var jsonCmd = &cobra.Command{
	Use:   "json",
	Short: "Extract, repair, parse, and (if --schema is set) validate a JSON candidate",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput()
		if err != nil {
			return err
		}
		result, err := runJSONPipeline(text, extract.DefaultTags)
		if err != nil {
			return err
		}
		fmt.Println(value.DumpsJSONPretty(result))
		return exitErrIfInvalid(result)
	},
}

// exitErrIfInvalid turns a pipeline summary whose "status" is "not_found",
// "incomplete" or "parse_error" (or whose "valid" is explicitly false) into a non-nil, non-usage error
// so main exits 1 per spec.md §6, while the summary itself has already
// been printed to stdout.
func exitErrIfInvalid(summary value.Value) error {
	if summary.Kind != value.KindObject {
		return nil
	}
	status, _ := summary.Obj.Get("status")
	switch status.Str {
	case "not_found", "incomplete", "parse_error":
		return fmt.Errorf("%s", status.Str)
	}
	if valid, ok := summary.Obj.Get("valid"); ok && !valid.Bool {
		return fmt.Errorf("schema validation failed")
	}
	return nil
}
