package repair

import "strings"

// scanner walks text byte by byte, tracking whether the current position
// is inside a string literal (honoring backslash escapes and the
// AllowSingleQuotes toggle), so every repair step can skip mutating
// anything that lies inside a string value. Grounded structurally on
// pkg/extract's scanContainer string-tracking but kept separate since
// repair steps rewrite text rather than just measure it.
type scanner struct {
	text          string
	allowSingle   bool
	inString      bool
	quote         byte
	escaped       bool
}

func newScanner(text string, allowSingle bool) *scanner {
	return &scanner{text: text, allowSingle: allowSingle}
}

// step advances one byte and reports whether the byte at i is inside a
// string literal *before* this call (i.e. the state the caller should use
// to decide whether to treat text[i] literally).
func (s *scanner) step(i int) (wasInString bool) {
	wasInString = s.inString
	c := s.text[i]
	if s.inString {
		switch {
		case s.escaped:
			s.escaped = false
		case c == '\\':
			s.escaped = true
		case c == s.quote:
			s.inString = false
		}
		return wasInString
	}
	if c == '"' || (s.allowSingle && c == '\'') {
		s.inString = true
		s.quote = c
	}
	return wasInString
}

// fixSmartQuotes replaces curly/smart quote characters with their ASCII
// equivalents. It runs first and with no string-awareness, since smart
// quotes are themselves standing in for the real string delimiters that
// later steps need to recognize.
func fixSmartQuotes(text string) (string, bool) {
	replacer := strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
	)
	out := replacer.Replace(text)
	return out, out != text
}

// stripJSONComments removes // line comments and /* */ block comments
// that lie outside string literals.
func stripJSONComments(text string, allowSingle bool) (string, bool) {
	var b strings.Builder
	b.Grow(len(text))
	sc := newScanner(text, allowSingle)
	changed := false
	n := len(text)
	for i := 0; i < n; {
		inStr := sc.step(i)
		c := text[i]
		if !inStr && c == '/' && i+1 < n {
			if text[i+1] == '/' {
				end := strings.IndexByte(text[i:], '\n')
				if end < 0 {
					changed = true
					break
				}
				i += end
				changed = true
				continue
			}
			if text[i+1] == '*' {
				end := strings.Index(text[i+2:], "*/")
				if end < 0 {
					changed = true
					break
				}
				i += 2 + end + 2
				changed = true
				continue
			}
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), changed
}

// pythonLiteralReplacements maps bare Python/other-language literal tokens
// to their JSON equivalents when they appear outside string literals as
// whole identifiers (not as a substring of a longer identifier).
var pythonLiteralReplacements = map[string]string{
	"None":  "null",
	"True":  "true",
	"False": "false",
	"NaN":   "null",
	"nan":   "null",
	"Infinity":  "null",
	"-Infinity": "null",
}

func isIdentByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// replacePythonLiterals swaps bare None/True/False/NaN/Infinity tokens for
// their JSON equivalents when found outside string literals.
func replacePythonLiterals(text string, allowSingle bool) (string, bool) {
	var b strings.Builder
	b.Grow(len(text))
	sc := newScanner(text, allowSingle)
	changed := false
	n := len(text)
	for i := 0; i < n; {
		inStr := sc.step(i)
		if !inStr && isIdentStart(text[i]) && (i == 0 || !isIdentByte(text[i-1])) {
			matched := false
			for lit, repl := range pythonLiteralReplacements {
				if strings.HasPrefix(text[i:], lit) {
					end := i + len(lit)
					if end >= n || !isIdentByte(text[end]) {
						b.WriteString(repl)
						i = end
						changed = true
						matched = true
						break
					}
				}
			}
			if matched {
				continue
			}
		}
		b.WriteByte(text[i])
		i++
	}
	return b.String(), changed
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '-'
}

// quoteUnquotedKeys wraps bare identifier object keys (key: value) in
// double quotes when they appear right after { or , (modulo whitespace)
// and are followed by a colon, outside string literals.
func quoteUnquotedKeys(text string, allowSingle bool) (string, bool) {
	var b strings.Builder
	b.Grow(len(text) + 8)
	sc := newScanner(text, allowSingle)
	changed := false
	n := len(text)
	i := 0
	atKeyPosition := true // start-of-object-like position
	for i < n {
		inStr := sc.step(i)
		c := text[i]
		if inStr {
			b.WriteByte(c)
			i++
			continue
		}
		switch c {
		case '{', ',':
			b.WriteByte(c)
			i++
			atKeyPosition = true
			continue
		case ' ', '\t', '\n', '\r':
			b.WriteByte(c)
			i++
			continue
		}
		if atKeyPosition && isIdentStart(c) && c != '"' && c != '\'' {
			j := i
			for j < n && isIdentByte(text[j]) {
				j++
			}
			k := j
			for k < n && (text[k] == ' ' || text[k] == '\t') {
				k++
			}
			if j > i && k < n && text[k] == ':' {
				b.WriteByte('"')
				b.WriteString(text[i:j])
				b.WriteByte('"')
				i = j
				changed = true
				atKeyPosition = false
				continue
			}
		}
		atKeyPosition = false
		b.WriteByte(c)
		i++
	}
	return b.String(), changed
}

// dropTrailingCommas removes commas that precede a closing } or ] once
// whitespace between them is skipped, outside string literals. Comments
// are not skipped here; stripJSONComments removes them earlier.
func dropTrailingCommas(text string, allowSingle bool) (string, bool) {
	var b strings.Builder
	b.Grow(len(text))
	sc := newScanner(text, allowSingle)
	changed := false
	n := len(text)
	for i := 0; i < n; i++ {
		inStr := sc.step(i)
		c := text[i]
		if !inStr && c == ',' {
			j := i + 1
			for j < n && (text[j] == ' ' || text[j] == '\t' || text[j] == '\n' || text[j] == '\r') {
				j++
			}
			if j < n && (text[j] == '}' || text[j] == ']') {
				changed = true
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String(), changed
}
