package jsonstream

import (
	"llmstructured/pkg/extract"
	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/repair"
	"llmstructured/pkg/value"
)

// Single implements spec.md §4.5 variant 1: a single-value parser. It
// extracts one candidate from the growing buffer; once a complete
// candidate parses and validates, it emits {done:true, ok:true, value}.
// finish() on an incomplete buffer emits the $.stream.incomplete error.
type Single struct {
	buffer
	tags      []string
	validator func(value.Value) *jsonparse.Diagnostic
}

// NewSingle constructs a single-value stream. validator may be nil to
// skip schema validation (parse-only mode).
func NewSingle(limits Limits, cfg repair.Config, validator func(value.Value) *jsonparse.Diagnostic) *Single {
	return &Single{buffer: newBuffer(limits, cfg), tags: extract.DefaultTags, validator: validator}
}

// Append adds bytes to the stream's buffer.
func (s *Single) Append(chunk string) { s.buffer.Append(chunk) }

// Finish signals no more bytes are coming; the next Poll resolves the
// stream one way or the other.
func (s *Single) Finish() { s.buffer.Finish() }

// Poll attempts to extract+parse+validate a candidate from the buffer so
// far. Returns {done:false} if not enough input has arrived yet.
func (s *Single) Poll() Outcome {
	if s.terminal != nil {
		return *s.terminal
	}

	cand, status := extract.ExtractCandidate(s.live(), s.tags)
	switch status {
	case extract.Found:
		v, derr := parseAndMaybeValidate(cand.Text, s.cfg, s.validator)
		if derr != nil {
			s.fail(*derr)
			return *s.terminal
		}
		s.succeedTerminal(v)
		return *s.terminal
	case extract.Incomplete:
		if s.finished {
			s.fail(incompleteErr())
			return *s.terminal
		}
		return Outcome{}
	default: // NotFound
		if s.finished {
			s.fail(incompleteErr())
			return *s.terminal
		}
		return Outcome{}
	}
}

// Location reports the current offset/line/col within the live buffer.
func (s *Single) Location() Location { return s.buffer.Location() }

// Reset returns the stream to its initial Accepting state, discarding all
// buffered bytes and any prior outcome.
func (s *Single) Reset() { *s = *NewSingle(s.limits, s.cfg, s.validator) }
