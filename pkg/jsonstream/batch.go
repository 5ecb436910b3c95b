package jsonstream

import (
	"llmstructured/pkg/extract"
	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/repair"
	"llmstructured/pkg/schema"
	"llmstructured/pkg/value"
)

// Batch implements spec.md §4.5 variant 3: a batch collector. Each Poll
// emits only the items newly parsed since the last poll, as
// {done:false, ok:true, value:[...]}; after Close() and the buffer fully
// drains, it emits the terminal {done:true, ok:true, value:[]}.
type Batch struct {
	buffer
	tags      []string
	validator func(value.Value) *jsonparse.Diagnostic
	closed    bool
}

// NewBatch constructs a batch-collector stream.
func NewBatch(limits Limits, cfg repair.Config, validator func(value.Value) *jsonparse.Diagnostic) *Batch {
	return &Batch{buffer: newBuffer(limits, cfg), tags: extract.DefaultTags, validator: validator}
}

func (b *Batch) Append(chunk string) { b.buffer.Append(chunk) }

func (b *Batch) Close() { b.closed = true }

// Poll drains whatever complete candidates are currently available and
// returns them as a non-terminal batch. Once Close() has been called and
// nothing more can be popped, it returns the terminal empty-batch outcome.
func (b *Batch) Poll() Outcome {
	if b.terminal != nil {
		return *b.terminal
	}

	var newItems []value.Value
	for {
		text, ok := popNext(&b.buffer, b.tags)
		if !ok {
			break
		}
		v, derr := parseAndMaybeValidate(text, b.cfg, b.validator)
		if derr != nil {
			b.fail(*derr)
			return *b.terminal
		}
		newItems = append(newItems, v)
		b.emitted++
		if b.checkMaxItems() {
			return *b.terminal
		}
	}

	if len(newItems) > 0 {
		return Outcome{Done: false, OK: true, Value: value.Array(newItems)}
	}
	if b.closed {
		b.succeedTerminal(value.Array(nil))
		return *b.terminal
	}
	return Outcome{}
}

func (b *Batch) Location() Location { return b.buffer.Location() }

func (b *Batch) Reset() { *b = *NewBatch(b.limits, b.cfg, b.validator) }

// ValidatedBatch implements spec.md §4.5 variant 4: like Batch, but each
// item has schema defaults applied (pkg/schema.ApplyDefaults) before
// validation.
type ValidatedBatch struct {
	Batch
	s schema.Schema
}

// NewValidatedBatch constructs a batch collector that fills schema
// defaults into each item before running the mode-selected validator
// against it.
func NewValidatedBatch(limits Limits, cfg repair.Config, s schema.Schema, mode schema.Mode) *ValidatedBatch {
	vb := &ValidatedBatch{s: s}
	validator := func(v value.Value) *jsonparse.Diagnostic {
		if mode == schema.CollectAll {
			if errs := schema.ValidateAll(v, s); len(errs) > 0 {
				return &errs[0]
			}
			return nil
		}
		return schema.Validate(v, s)
	}
	vb.Batch = *NewBatch(limits, cfg, validator)
	return vb
}

// Poll defaults-fills each candidate before handing it to the validator
// inherited from Batch. It reimplements the drain loop rather than
// delegating to Batch.Poll because defaults must be applied between parse
// and validate, a step Batch's validator hook runs too late to influence.
func (vb *ValidatedBatch) Poll() Outcome {
	if vb.terminal != nil {
		return *vb.terminal
	}

	var newItems []value.Value
	for {
		text, ok := popNext(&vb.buffer, vb.tags)
		if !ok {
			break
		}
		repaired, _ := repair.Repair(text, vb.cfg)
		result := jsonparse.Parse(repaired, vb.cfg.AllowSingleQuotes, vb.cfg.DuplicateKeyPolicy)
		if result.Err != nil {
			d := toDiagnostic(result.Err)
			vb.fail(d)
			return *vb.terminal
		}
		filled := schema.ApplyDefaults(result.Value, vb.s)
		if d := vb.validator(filled); d != nil {
			vb.fail(*d)
			return *vb.terminal
		}
		newItems = append(newItems, filled)
		vb.emitted++
		if vb.checkMaxItems() {
			return *vb.terminal
		}
	}

	if len(newItems) > 0 {
		return Outcome{Done: false, OK: true, Value: value.Array(newItems)}
	}
	if vb.closed {
		vb.succeedTerminal(value.Array(nil))
		return *vb.terminal
	}
	return Outcome{}
}

func toDiagnostic(err error) jsonparse.Diagnostic {
	if d, ok := err.(jsonparse.Diagnostic); ok {
		return d
	}
	return jsonparse.Diagnostic{Message: err.Error(), Path: jsonparse.RootPath, Kind: jsonparse.KindParse, JSONPointer: jsonparse.Pointer(jsonparse.RootPath)}
}
