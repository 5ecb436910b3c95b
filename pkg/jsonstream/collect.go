package jsonstream

import (
	"llmstructured/pkg/extract"
	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/repair"
	"llmstructured/pkg/value"
)

// Collector implements spec.md §4.5 variant 2: collect-all
// (close-to-emit). It repeatedly pops the next candidate from the buffer
// head, parsing+validating each; once Close() is called and no error has
// occurred, the next Poll emits the full accumulated array.
type Collector struct {
	buffer
	tags      []string
	validator func(value.Value) *jsonparse.Diagnostic
	items     []value.Value
	closed    bool
}

// NewCollector constructs a collect-all stream.
func NewCollector(limits Limits, cfg repair.Config, validator func(value.Value) *jsonparse.Diagnostic) *Collector {
	return &Collector{buffer: newBuffer(limits, cfg), tags: extract.DefaultTags, validator: validator}
}

func (c *Collector) Append(chunk string) { c.buffer.Append(chunk) }

// Close arms the terminal behavior: once the buffer drains of complete
// candidates, the next Poll emits the accumulated array.
func (c *Collector) Close() { c.closed = true }

// Poll drains as many complete candidates as are currently available,
// parsing+validating each. Any failure is terminal. Once Close() has been
// called and the buffer has no more complete candidates, emits the full
// array with {done:true, ok:true}.
func (c *Collector) Poll() Outcome {
	if c.terminal != nil {
		return *c.terminal
	}

	for {
		text, ok := popNext(&c.buffer, c.tags)
		if !ok {
			break
		}
		v, derr := parseAndMaybeValidate(text, c.cfg, c.validator)
		if derr != nil {
			c.fail(*derr)
			return *c.terminal
		}
		c.items = append(c.items, v)
		c.emitted++
		if c.checkMaxItems() {
			return *c.terminal
		}
	}

	if c.closed {
		c.succeedTerminal(value.Array(c.items))
		return *c.terminal
	}
	return Outcome{}
}

func (c *Collector) Location() Location { return c.buffer.Location() }

func (c *Collector) Reset() { *c = *NewCollector(c.limits, c.cfg, c.validator) }
