package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"llmstructured/pkg/formats/markdown"
	"llmstructured/pkg/value"
)

var markdownCmd = &cobra.Command{
	Use:   "markdown",
	Short: "Run the JSON pipeline over every JSON-ish fenced code block in a Markdown document",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput()
		if err != nil {
			return err
		}
		blocks, err := markdown.JSONBlocks(text)
		if err != nil {
			return usageErrorf("parse markdown: %w", err)
		}

		results := make([]value.Value, 0, len(blocks))
		anyInvalid := false
		for _, block := range blocks {
			r, err := runJSONPipeline(block.Body, []string{"json"})
			if err != nil {
				return err
			}
			if exitErrIfInvalid(r) != nil {
				anyInvalid = true
			}
			results = append(results, r)
		}

		out := value.NewObject()
		out.Set("runId", value.String(runID))
		out.Set("blockCount", value.Number(float64(len(blocks))))
		out.Set("blocks", value.Array(results))
		fmt.Println(value.DumpsJSONPretty(value.FromObject(out)))

		if anyInvalid {
			return fmt.Errorf("one or more fenced blocks failed")
		}
		return nil
	},
}
