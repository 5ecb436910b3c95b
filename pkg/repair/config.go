// Package repair implements spec.md §4.2's ordered, configurable text-level
// repair pipeline that runs on an extracted JSON candidate before it
// reaches pkg/jsonparse. Each step is a single pass over the text that
// tracks whether it is inside a string literal so it never mutates string
// contents, mirroring the style (if not the regex implementation) of
// other_examples/abdd9609_steveyegge-vc__internal-ai-json_parser.go.go's
// cleanupJSON and the teacher's pkg/core/utils/json_validator.go wrappers
// around RealAlexandreAI/json-repair and hjson-go.
package repair

// DuplicateKeyPolicy controls how the tolerant parser (pkg/jsonparse)
// resolves repeated object keys.
type DuplicateKeyPolicy int

const (
	// FirstWins keeps the first occurrence of a duplicated key (default).
	FirstWins DuplicateKeyPolicy = iota
	// LastWins overwrites with each later occurrence.
	LastWins
	// ErrorOnDuplicate fails parsing with a parse-kind diagnostic at the
	// key's path.
	ErrorOnDuplicate
)

// Config toggles each repair step. All boolean fields default to true
// (enabled) except that the zero value of DuplicateKeyPolicy is
// FirstWins — construct with Default() to get spec.md §3's stated
// defaults rather than relying on Go zero values for booleans.
type Config struct {
	FixSmartQuotes        bool
	StripJSONComments     bool
	ReplacePythonLiterals bool
	ConvertKVObjectToJSON bool
	QuoteUnquotedKeys     bool
	DropTrailingCommas    bool
	AllowSingleQuotes     bool

	DuplicateKeyPolicy DuplicateKeyPolicy
}

// Default returns the spec.md §3 default configuration: every repair step
// enabled, single quotes allowed, duplicate keys resolved FirstWins.
func Default() Config {
	return Config{
		FixSmartQuotes:        true,
		StripJSONComments:     true,
		ReplacePythonLiterals: true,
		ConvertKVObjectToJSON: true,
		QuoteUnquotedKeys:     true,
		DropTrailingCommas:    true,
		AllowSingleQuotes:     true,
		DuplicateKeyPolicy:    FirstWins,
	}
}

// Metadata records which repair steps actually mutated the text, plus
// duplicate-key accounting. One boolean per applied step, per spec.md §3.
// Repair sets DuplicateKeyPolicy but leaves DuplicateKeyCount at zero;
// callers copy it from jsonparse.Result after parsing.
type Metadata struct {
	ExtractedFromFence    bool
	FixedSmartQuotes      bool
	DroppedJSONComments   bool
	ReplacedPythonLiteral bool
	ConvertedKvToJson     bool
	QuotedUnquotedKeys    bool
	DroppedTrailingCommas bool
	FellBackToLibRepair   bool

	DuplicateKeyCount  int
	DuplicateKeyPolicy DuplicateKeyPolicy
}

// StepsApplied lists the names of repair steps that mutated the text, in
// pipeline order. A convenience surfaced by the CLI summary; grounded on original_source's CLI debug output
// (see SPEC_FULL.md §3).
func (m Metadata) StepsApplied() []string {
	var steps []string
	add := func(applied bool, name string) {
		if applied {
			steps = append(steps, name)
		}
	}
	add(m.ExtractedFromFence, "extractedFromFence")
	add(m.FixedSmartQuotes, "fixSmartQuotes")
	add(m.DroppedJSONComments, "stripJsonComments")
	add(m.ReplacedPythonLiteral, "replacePythonLiterals")
	add(m.ConvertedKvToJson, "convertKvObjectToJson")
	add(m.QuotedUnquotedKeys, "quoteUnquotedKeys")
	add(m.DroppedTrailingCommas, "dropTrailingCommas")
	add(m.FellBackToLibRepair, "fellBackToLibRepair")
	return steps
}
