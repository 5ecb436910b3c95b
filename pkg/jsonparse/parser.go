package jsonparse

import (
	"llmstructured/pkg/repair"
	"llmstructured/pkg/value"
)

// Result is the outcome of a top-level Parse call: the parsed Value
// (meaningful only if Err is nil) plus however many duplicate keys were
// observed across the whole document.
type Result struct {
	Value             value.Value
	DuplicateKeyCount int
	Err               error
}

// Parse runs the tolerant recursive-descent parser from spec.md §4.3 over
// already-repaired text. allowSingleQuotes and policy come from the same
// repair.Config used to produce text, so a caller typically does:
//
//	repaired, _ := repair.Repair(candidateText, cfg)
//	result := jsonparse.Parse(repaired, cfg.AllowSingleQuotes, cfg.DuplicateKeyPolicy)
func Parse(text string, allowSingleQuotes bool, policy repair.DuplicateKeyPolicy) Result {
	p := &parser{
		sc:     newJSONScanner(text, allowSingleQuotes),
		policy: policy,
		input:  text,
	}
	p.advance()
	v, err := p.parseValue(RootPath)
	if err != nil {
		return Result{Err: err, DuplicateKeyCount: p.dupCount}
	}
	p.skipToEnd()
	if p.cur.typ != tokEOF {
		return Result{Err: parseErr("trailing data after top-level value", RootPath), DuplicateKeyCount: p.dupCount}
	}
	return Result{Value: v, DuplicateKeyCount: p.dupCount}
}

type parser struct {
	sc       *scanner
	cur      token
	policy   repair.DuplicateKeyPolicy
	input    string
	dupCount int
}

func (p *parser) advance() {
	p.cur = p.sc.next()
}

func (p *parser) skipToEnd() {
	// next() already skips whitespace; nothing else to do, kept as a named
	// step so Parse's intent ("confirm no trailing data") reads clearly.
}

func (p *parser) parseValue(path string) (value.Value, error) {
	switch p.cur.typ {
	case tokLBrace:
		return p.parseObject(path)
	case tokLBracket:
		return p.parseArray(path)
	case tokString:
		v := value.String(p.cur.text)
		p.advance()
		return v, nil
	case tokNumber:
		v := value.Number(p.cur.num)
		p.advance()
		return v, nil
	case tokTrue:
		p.advance()
		return value.Bool(true), nil
	case tokFalse:
		p.advance()
		return value.Bool(false), nil
	case tokNull:
		p.advance()
		return value.Null(), nil
	case tokEOF:
		return value.Value{}, parseErr("unexpected end of input", path)
	default:
		return value.Value{}, parseErr("unexpected token", path)
	}
}

func (p *parser) parseObject(path string) (value.Value, error) {
	obj := value.NewObject()
	p.advance() // consume '{'

	if p.cur.typ == tokRBrace {
		p.advance()
		return value.FromObject(obj), nil
	}

	for {
		if p.cur.typ != tokString {
			return value.Value{}, parseErr("expected object key", path)
		}
		key := p.cur.text
		keyPath := AppendKey(path, key)
		p.advance()

		if p.cur.typ != tokColon {
			return value.Value{}, parseErr("expected ':' after object key", keyPath)
		}
		p.advance()

		v, err := p.parseValue(keyPath)
		if err != nil {
			return value.Value{}, err
		}

		if obj.Has(key) {
			p.dupCount++
			switch p.policy {
			case repair.ErrorOnDuplicate:
				return value.Value{}, Diagnostic{
					Message:     "duplicate object key",
					Path:        keyPath,
					Kind:        KindParse,
					JSONPointer: jsonPointer(keyPath),
				}
			case repair.LastWins:
				obj.Set(key, v)
			case repair.FirstWins:
				// keep first: do nothing.
			}
		} else {
			obj.Set(key, v)
		}

		switch p.cur.typ {
		case tokComma:
			p.advance()
			if p.cur.typ == tokRBrace {
				// tolerant: accept a trailing comma that slipped past repair.
				p.advance()
				return value.FromObject(obj), nil
			}
			continue
		case tokRBrace:
			p.advance()
			return value.FromObject(obj), nil
		default:
			return value.Value{}, parseErr("expected ',' or '}' in object", path)
		}
	}
}

func (p *parser) parseArray(path string) (value.Value, error) {
	var items []value.Value
	p.advance() // consume '['

	if p.cur.typ == tokRBracket {
		p.advance()
		return value.Array(items), nil
	}

	i := 0
	for {
		elemPath := AppendIndex(path, i)
		v, err := p.parseValue(elemPath)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
		i++

		switch p.cur.typ {
		case tokComma:
			p.advance()
			if p.cur.typ == tokRBracket {
				p.advance()
				return value.Array(items), nil
			}
			continue
		case tokRBracket:
			p.advance()
			return value.Array(items), nil
		default:
			return value.Value{}, parseErr("expected ',' or ']' in array", path)
		}
	}
}
