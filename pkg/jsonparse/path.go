package jsonparse

import "strings"

// RootPath is the JSONPath-ish root segment every diagnostic path starts
// from.
const RootPath = "$"

// AppendKey extends path with an object property segment: `$.a` + "b" ->
// `$.a.b`. Keys that aren't valid bare identifiers still use dot-segment
// form per spec.md's example `$.headings[Intro]` for non-standard
// segments — callers needing bracket form use AppendBracket directly.
func AppendKey(path, key string) string {
	return path + "." + key
}

// AppendBracket extends path with a bracketed segment, used for array
// indices (`$[0]`) and the spec's non-standard named-bracket segments
// (`$.headings[Intro]`).
func AppendBracket(path, segment string) string {
	return path + "[" + segment + "]"
}

// AppendIndex extends path with an array index segment.
func AppendIndex(path string, i int) string {
	return AppendBracket(path, itoa(i))
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Pointer derives an RFC 6901 JSON Pointer from a JSONPath-ish path; it is
// the exported form of jsonPointer for callers outside this package (the
// validator in pkg/schema, the streaming engine in pkg/jsonstream).
func Pointer(path string) string { return jsonPointer(path) }

// jsonPointer derives an RFC 6901 JSON Pointer from a JSONPath-ish path by
// splitting on `.` and `[`, escaping `~` as `~0` and `/` as `~1` in each
// segment. Non-array bracket segments (named, non-numeric) are treated as
// plain pointer segments, matching spec.md §4.4's path construction rule.
func jsonPointer(path string) string {
	if path == "" || path == RootPath {
		return ""
	}
	rest := strings.TrimPrefix(path, RootPath)
	var b strings.Builder
	i := 0
	for i < len(rest) {
		switch rest[i] {
		case '.':
			i++
		case '[':
			end := strings.IndexByte(rest[i:], ']')
			if end < 0 {
				b.WriteByte('/')
				b.WriteString(escapePointerSegment(rest[i+1:]))
				i = len(rest)
				continue
			}
			seg := rest[i+1 : i+end]
			b.WriteByte('/')
			b.WriteString(escapePointerSegment(seg))
			i += end + 1
		default:
			end := i
			for end < len(rest) && rest[end] != '.' && rest[end] != '[' {
				end++
			}
			b.WriteByte('/')
			b.WriteString(escapePointerSegment(rest[i:end]))
			i = end
		}
	}
	return b.String()
}

func escapePointerSegment(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}
