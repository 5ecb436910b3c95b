package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"llmstructured/pkg/sqlsafety"
	"llmstructured/pkg/value"
)

var sqlCmd = &cobra.Command{
	Use:   "sql",
	Short: "Analyze a SQL candidate and evaluate it against a policy",
	Long: "Analyze a SQL candidate extracted from free-form text and, if --schema\n" +
		"points at a JSON-encoded sqlsafety.Policy document, evaluate it against\n" +
		"that policy. Reuses --schema rather than adding a separate --policy flag\n" +
		"since both are \"a JSON document describing what's acceptable\".",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput()
		if err != nil {
			return err
		}
		candidate := sqlsafety.ExtractCandidate(text)

		out := value.NewObject()
		out.Set("runId", value.String(runID))
		if candidate == "" {
			out.Set("status", value.String("not_found"))
			fmt.Println(value.DumpsJSONPretty(value.FromObject(out)))
			return fmt.Errorf("not_found")
		}
		out.Set("status", value.String("found"))
		out.Set("candidate", value.String(candidate))

		analysis := sqlsafety.Analyze(candidate)
		out.Set("statementType", value.String(analysis.StatementType))
		out.Set("tables", stringArray(analysis.Tables))

		policy, hasPolicy, err := loadPolicy()
		if err != nil {
			return err
		}
		if !hasPolicy {
			fmt.Println(value.DumpsJSONPretty(value.FromObject(out)))
			return nil
		}

		diags := sqlsafety.Evaluate(candidate, policy)
		out.Set("allowed", value.Bool(len(diags) == 0))
		out.Set("diagnostics", diagnosticArray(diags))
		fmt.Println(value.DumpsJSONPretty(value.FromObject(out)))
		if len(diags) > 0 {
			return fmt.Errorf("policy violated")
		}
		return nil
	},
}

func loadPolicy() (sqlsafety.Policy, bool, error) {
	if schemaPath == "" {
		return sqlsafety.Policy{}, false, nil
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return sqlsafety.Policy{}, false, usageErrorf("read policy %s: %w", schemaPath, err)
	}
	var p sqlsafety.Policy
	if err := json.Unmarshal(data, &p); err != nil {
		return sqlsafety.Policy{}, false, usageErrorf("policy %s is not valid JSON: %w", schemaPath, err)
	}
	return p, true, nil
}
