// Package extract finds candidate structured-data fragments (fenced code
// blocks, balanced braces/brackets) inside free-form LLM text. It is the
// first stage of the extract -> repair -> parse -> validate pipeline
// described in spec.md §4.1, and doubles as the incomplete-fragment
// detector the streaming engine (pkg/jsonstream) polls against growing
// buffers.
//
// The scanning approach is hand-rolled rather than regex-based: unlike
// other_examples/abdd9609_steveyegge-vc__internal-ai-json_parser.go.go's
// regex extractor, this one tracks string-literal state so braces inside
// string values never confuse the balance count, and it can report
// "incomplete" (fence opened but not yet closed, container opened but not
// yet balanced) instead of only "found" or "not found" — the distinction
// that makes streaming possible.
package extract

import (
	"strings"
)

// DefaultTags is the language-tag set spec.md §4.1 lists for the JSON
// candidate extractor. Other format wrappers (pkg/formats/*) pass their own
// single-tag slice to reuse the same fence scanner.
var DefaultTags = []string{"json", "sql", "yaml", "yml", "toml", "xml", "html"}

// Status is the outcome of a single-candidate extraction attempt.
type Status int

const (
	// NotFound means nothing resembling structured data was seen at all.
	NotFound Status = iota
	// Incomplete means a fence or container was opened but not yet closed
	// — the caller should wait for more input (this is what makes
	// streaming work over the same extractor, per spec.md §4.1).
	Incomplete
	// Found means Candidate is populated with a complete fragment.
	Found
)

// Candidate is a substring of the input identified as a plausible
// structured payload.
type Candidate struct {
	Text   string // the candidate body (fence body, or the balanced span)
	Start  int    // byte offset of Text's first byte in the original input
	End    int    // byte offset one past the candidate in the original input; for a fenced candidate, the start of the closing fence line
	Fenced bool   // true if extracted from a fenced code block
	Tag    string // the fence's language tag, lowercase; empty if not fenced
}

// ExtractCandidate implements spec.md §4.1's single-candidate extraction:
// first fenced block matching tags, else first balanced {...}, else first
// balanced [...], else (last resort) the whole trimmed input if it begins
// with a JSON-value-initiating character.
func ExtractCandidate(text string, tags []string) (Candidate, Status) {
	fences, fenceIncomplete := findFences(text, tags, 1)
	if len(fences) > 0 {
		return fences[0], Found
	}

	if c, st := firstBalanced(text, '{', '}', nil); st == Found {
		return c, Found
	} else if st == Incomplete {
		return Candidate{}, Incomplete
	}

	if c, st := firstBalanced(text, '[', ']', nil); st == Found {
		return c, Found
	} else if st == Incomplete {
		return Candidate{}, Incomplete
	}

	if fenceIncomplete {
		return Candidate{}, Incomplete
	}

	trimmed := strings.TrimSpace(text)
	if trimmed != "" && looksLikeJSONStart(trimmed[0]) {
		start := strings.Index(text, trimmed[:1]) // best-effort: offset of first non-space byte
		if start < 0 {
			start = 0
		}
		return Candidate{Text: trimmed, Start: start, End: start + len(trimmed)}, Found
	}

	return Candidate{}, NotFound
}

// ExtractCandidates implements spec.md §4.1's multi-candidate extraction:
// every fenced block matching tags, then every balanced container whose
// opening character lies outside any fenced region, sorted by (start
// offset, fenced-first, length).
func ExtractCandidates(text string, tags []string) ([]Candidate, bool) {
	fences, _ := findFences(text, tags, -1)

	excluded := make([]span, 0, len(fences))
	for _, f := range fences {
		excluded = append(excluded, span{f.Start, f.End})
	}

	braces := allBalanced(text, '{', '}', excluded)
	brackets := allBalanced(text, '[', ']', excluded)

	all := make([]Candidate, 0, len(fences)+len(braces)+len(brackets))
	all = append(all, fences...)
	all = append(all, braces...)
	all = append(all, brackets...)

	sortCandidates(all)

	return all, len(all) > 0
}

func looksLikeJSONStart(b byte) bool {
	switch b {
	case '{', '[', '"', 't', 'f', 'n', '-':
		return true
	default:
		return b >= '0' && b <= '9'
	}
}

func sortCandidates(c []Candidate) {
	// Stable insertion sort by (Start, fenced-first, length) — the set is
	// small (a handful of candidates per LLM response), so simplicity over
	// asymptotic complexity.
	for i := 1; i < len(c); i++ {
		j := i
		for j > 0 && less(c[j], c[j-1]) {
			c[j], c[j-1] = c[j-1], c[j]
			j--
		}
	}
}

func less(a, b Candidate) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	if a.Fenced != b.Fenced {
		return a.Fenced // fenced-first on a tie
	}
	return len(a.Text) < len(b.Text)
}
