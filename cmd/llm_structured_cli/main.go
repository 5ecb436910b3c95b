// Command llm_structured_cli is the front end spec.md §6 asks for: it reads
// free-form text (stdin or --input), runs it through one of the format
// pipelines (json, markdown, kv, sql), and prints a JSON summary of what
// was found. Cobra subcommand layout and the godotenv-before-Execute
// sequencing are grounded on the teacher's cmd/api/main.go and on
// _examples/Azure-containerization-assist/cmd/cmd.go's rootCmd/Execute
// split, which is the pack's clearest example of a cobra-based CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Best-effort: a missing .env is normal outside development, matching
	// the teacher's main.go which also ignores godotenv.Load's error.
	godotenv.Load()

	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}
