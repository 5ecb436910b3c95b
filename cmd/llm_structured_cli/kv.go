package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"llmstructured/pkg/formats/kv"
	"llmstructured/pkg/schema"
	"llmstructured/pkg/value"
)

var kvCmd = &cobra.Command{
	Use:   "kv",
	Short: "Decode flat KEY=VALUE text and (if --schema is set) validate it",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput()
		if err != nil {
			return err
		}
		out := value.NewObject()
		out.Set("runId", value.String(runID))

		v, err := kv.Decode(text)
		if err != nil {
			out.Set("status", value.String("decode_error"))
			out.Set("error", value.String(err.Error()))
			fmt.Println(value.DumpsJSONPretty(value.FromObject(out)))
			return fmt.Errorf("decode_error")
		}
		out.Set("status", value.String("decoded"))
		out.Set("value", v)

		s, hasSchema, err := loadSchema()
		if err != nil {
			return err
		}
		if hasSchema {
			diags := schema.ValidateAll(v, s)
			out.Set("valid", value.Bool(len(diags) == 0))
			out.Set("diagnostics", diagnosticArray(diags))
		}

		fmt.Println(value.DumpsJSONPretty(value.FromObject(out)))
		if hasSchema {
			if valid, _ := out.Get("valid"); !valid.Bool {
				return fmt.Errorf("schema validation failed")
			}
		}
		return nil
	},
}
