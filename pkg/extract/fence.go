package extract

import "strings"

// findFences scans text for fenced code blocks whose opening line (after
// leading whitespace) begins with ``` followed by a language tag in tags.
// limit<0 means "find all"; limit>0 stops after that many closed fences.
// The second return value reports whether an opening fence was seen with
// no matching closer before EOF (reaching limit returns false, since the
// limit only counts closed fences) — the "not yet" signal spec.md §4.1 requires so
// streaming can distinguish incomplete from absent.
func findFences(text string, tags []string, limit int) ([]Candidate, bool) {
	tagSet := make(map[string]bool, len(tags))
	for _, t := range tags {
		tagSet[strings.ToLower(t)] = true
	}

	var out []Candidate
	n := len(text)
	i := 0

	for i <= n {
		lineEnd, next := lineBounds(text, i)
		line := text[i:lineEnd]
		trimmedLeft := strings.TrimLeft(line, " \t")
		if strings.HasPrefix(trimmedLeft, "```") {
			tag := strings.ToLower(strings.TrimSpace(trimmedLeft[3:]))
			if tagSet[tag] {
				bodyStart := next
				bodyEnd, afterClose, found := findClosingFence(text, bodyStart)
				if !found {
					return out, true
				}
				body := trimOneTrailingNewline(text[bodyStart:bodyEnd])
				out = append(out, Candidate{
					Text:   body,
					Start:  bodyStart,
					End:    bodyEnd,
					Fenced: true,
					Tag:    tag,
				})
				if limit > 0 && len(out) >= limit {
					return out, false
				}
				i = afterClose
				continue
			}
		}
		if next > n {
			break
		}
		i = next
	}
	return out, false
}

// findClosingFence looks for the first line whose trimmed content is
// exactly ``` at or after byte offset from.
func findClosingFence(text string, from int) (bodyEnd, afterClose int, found bool) {
	n := len(text)
	i := from
	for i <= n {
		lineEnd, next := lineBounds(text, i)
		line := text[i:lineEnd]
		if strings.TrimSpace(line) == "```" {
			return i, next, true
		}
		if next > n {
			break
		}
		i = next
	}
	return 0, 0, false
}

// lineBounds returns the exclusive end of the line starting at i (not
// including its newline) and the start of the following line (one past the
// newline, or len(text)+1 if there is no trailing newline, signalling the
// caller that this was the last line).
func lineBounds(text string, i int) (lineEnd, next int) {
	n := len(text)
	nl := strings.IndexByte(text[i:], '\n')
	if nl < 0 {
		return n, n + 1
	}
	lineEnd = i + nl
	return lineEnd, lineEnd + 1
}

func trimOneTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1]
	}
	return s
}
