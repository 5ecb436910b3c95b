package repair

import "strings"

// looksLikeKVBlock reports whether text resembles a flat list of
// "KEY=VALUE" lines rather than JSON — the precondition spec.md §4.2
// step 4 states: no `{`/`[` anywhere in the text, but at least one `=`.
// Guarding on the total absence of brackets keeps the conversion from
// misfiring on text that is already JSON-shaped, or embeds an `=` inside
// an otherwise structured fragment.
func looksLikeKVBlock(text string) bool {
	if strings.ContainsAny(text, "{}[]") {
		return false
	}
	return strings.Contains(text, "=")
}

// convertKVObjectToJSON turns a flat "KEY=VALUE" block into a JSON
// object. Keys are identifiers; values may be quoted (kept as-is minus
// the surrounding quotes) or bare, with bare true/false/null/number
// tokens coerced to their JSON literal form and everything else quoted
// as a string.
func convertKVObjectToJSON(text string) (string, bool) {
	if !looksLikeKVBlock(text) {
		return text, false
	}
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var parts []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		idx := strings.Index(line, "=")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" || !isIdentifier(key) {
			continue
		}
		value := strings.TrimSpace(line[idx+1:])
		parts = append(parts, `"`+escapeForJSONString(key)+`": `+jsonizeValue(value))
	}
	if len(parts) == 0 {
		return text, false
	}
	return "{" + strings.Join(parts, ", ") + "}", true
}

func isIdentifier(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return false
		}
	}
	return len(s) > 0
}

func jsonizeValue(v string) string {
	switch v {
	case "true", "false", "null":
		return v
	}
	if v == "" {
		return `""`
	}
	if (v[0] == '"' || v[0] == '\'') && len(v) >= 2 && v[len(v)-1] == v[0] {
		return `"` + escapeForJSONString(v[1:len(v)-1]) + `"`
	}
	if isJSONNumber(v) {
		return v
	}
	return `"` + escapeForJSONString(v) + `"`
}

func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		i++
	}
	if i == len(s) {
		return false
	}
	sawDigit, sawDot := false, false
	for ; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			sawDigit = true
		case s[i] == '.' && !sawDot:
			sawDot = true
		default:
			return false
		}
	}
	return sawDigit
}

func escapeForJSONString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
