package sqlsafety

import "strings"

// ExtractCandidate implements spec.md §4.6 step 1: a fenced ```sql```
// block, else the input up to the first `;` outside strings/comments.
func ExtractCandidate(text string) string {
	if body, ok := extractFencedSQL(text); ok {
		return body
	}
	return upToTopLevelSemicolon(text)
}

func extractFencedSQL(text string) (string, bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if !strings.HasPrefix(trimmed, "```") {
			continue
		}
		tag := strings.ToLower(strings.TrimSpace(trimmed[3:]))
		if tag != "sql" {
			continue
		}
		var body []string
		for j := i + 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == "```" {
				return strings.Join(body, "\n"), true
			}
			body = append(body, lines[j])
		}
		return strings.Join(body, "\n"), true
	}
	return "", false
}

// upToTopLevelSemicolon returns text up to (not including) the first `;`
// that lies outside a string literal or comment.
func upToTopLevelSemicolon(text string) string {
	inSingle, inDouble := false, false
	i := 0
	for i < len(text) {
		c := text[i]
		switch {
		case inSingle:
			if c == '\'' {
				if i+1 < len(text) && text[i+1] == '\'' {
					i += 2
					continue
				}
				inSingle = false
			}
		case inDouble:
			if c == '"' {
				inDouble = false
			}
		case c == '\'':
			inSingle = true
		case c == '"':
			inDouble = true
		case c == '-' && i+1 < len(text) && text[i+1] == '-':
			if nl := strings.IndexByte(text[i:], '\n'); nl >= 0 {
				i += nl
				continue
			}
			return text
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			if end := strings.Index(text[i+2:], "*/"); end >= 0 {
				i += 2 + end + 2
				continue
			}
			return text
		case c == ';':
			return text[:i]
		}
		i++
	}
	return text
}
