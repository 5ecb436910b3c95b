package sqlsafety

import (
	"regexp"
	"strconv"
	"strings"
)

// tokenize implements spec.md §4.6 step 3: identifier-like runs over
// `[a-zA-Z0-9_.]+`, using xid's Unicode identifier tables for the
// continuation test (grounded on the vippsas-sqlcode scanner).
func tokenize(lowered string) []string {
	var tokens []string
	runes := []rune(lowered)
	i := 0
	for i < len(runes) {
		if isIdentStart(runes[i]) || (runes[i] >= '0' && runes[i] <= '9') {
			start := i
			for i < len(runes) && (isIdentCont(runes[i]) || (runes[i] >= '0' && runes[i] <= '9')) {
				i++
			}
			tokens = append(tokens, string(runes[start:i]))
			continue
		}
		i++
	}
	return tokens
}

var (
	limitRe     = regexp.MustCompile(`\blimit\s+(\d+)`)
	funcCallRe  = regexp.MustCompile(`[a-z_][a-z0-9_]*\s*\(`)
	qualColRe   = regexp.MustCompile(`\b([a-z_][a-z0-9_]*)\.([a-z_][a-z0-9_]*)\b`)
	orTrueRe    = regexp.MustCompile(`\bor\s+1\s*=\s*1\b|\bor\s+true\b`)
	joinTableRe = regexp.MustCompile(`\b(?:(inner|left|right|full|cross)\s+(?:outer\s+)?)?join\s+([a-z_][a-z0-9_.]*)\s*(?:(?:as\s+)?([a-z_][a-z0-9_]*))?`)
	fromTableRe = regexp.MustCompile(`\bfrom\s+([a-z_][a-z0-9_.]*)\s*(?:(?:as\s+)?([a-z_][a-z0-9_]*))?`)
	whereLikeColRe = regexp.MustCompile(`\b([a-z_][a-z0-9_]*)\s*(?:=|<|>|<=|>=|<>|!=|like|in|is)\b`)
)

// Analyze implements spec.md §4.6 steps 2-5: strip strings/comments,
// tokenize, and derive every fact the policy evaluator (policy.go) needs.
func Analyze(text string) Analysis {
	candidate := ExtractCandidate(text)
	lowered, hadComments := stripStringsAndComments(candidate)
	tokens := tokenize(lowered)

	a := Analysis{
		Candidate:   candidate,
		Lowered:     lowered,
		HadComments: hadComments,
		Aliases:     map[string]string{},
	}

	if len(tokens) > 0 {
		switch tokens[0] {
		case "select", "insert", "update", "delete":
			a.StatementType = tokens[0]
		}
	}

	a.HasFrom = containsWord(tokens, "from")
	a.HasWhere = containsWord(tokens, "where")
	a.HasLimit = containsWord(tokens, "limit")
	a.HasUnion = containsWord(tokens, "union")
	a.HasSemicolon = strings.Contains(candidate, ";")
	a.HasSubquery = regexp.MustCompile(`\(\s*select\b`).MatchString(lowered)
	a.HasSelectStar = regexp.MustCompile(`\bselect\s+\*`).MatchString(lowered)
	a.HasOrTrue = orTrueRe.MatchString(lowered)

	if m := limitRe.FindStringSubmatch(lowered); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			a.LimitValue = n
			a.HasLimitValue = true
		}
	}

	if strings.Contains(lowered, "?") {
		a.PlaceholderQmark = true
	}
	if regexp.MustCompile(`\$\d+`).MatchString(lowered) {
		a.PlaceholderDollar = true
	}

	collectTablesAndJoins(lowered, &a)
	a.FunctionCalls = dedupe(funcCallRe.FindAllString(lowered, -1))

	for _, m := range qualColRe.FindAllStringSubmatch(lowered, -1) {
		alias, col := m[1], m[2]
		if reservedWords[alias] || reservedWords[col] {
			continue
		}
		ref := ColumnRef{Alias: alias, Column: col}
		if table, ok := a.Aliases[alias]; ok {
			ref.Table = table
		} else {
			ref.Table = alias
		}
		a.QualifiedCols = append(a.QualifiedCols, ref)
	}

	a.UnqualifiedCols = collectUnqualifiedColumns(lowered)

	return a
}

func collectTablesAndJoins(lowered string, a *Analysis) {
	seen := map[string]bool{}
	if m := fromTableRe.FindStringSubmatch(lowered); m != nil {
		addTable(a, seen, m[1])
		if m[2] != "" && !reservedWords[m[2]] {
			a.Aliases[m[2]] = firstSeg(m[1])
		}
	}
	for _, m := range joinTableRe.FindAllStringSubmatch(lowered, -1) {
		joinType, table, alias := m[1], m[2], m[3]
		addTable(a, seen, table)
		a.Joins = append(a.Joins, Join{Type: joinType, Table: table})
		if alias != "" && !reservedWords[alias] {
			a.Aliases[alias] = firstSeg(table)
		}
	}
}

func addTable(a *Analysis, seen map[string]bool, table string) {
	if table == "" || seen[table] {
		return
	}
	seen[table] = true
	a.Tables = append(a.Tables, table)
}

func firstSeg(qualified string) string {
	if i := strings.LastIndexByte(qualified, '.'); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}

// collectUnqualifiedColumns finds bare identifiers immediately adjacent to
// a comparator or like/in/is anywhere in the stripped statement text, per
// spec.md §4.6 step 5.
func collectUnqualifiedColumns(lowered string) []string {
	var out []string
	for _, m := range whereLikeColRe.FindAllStringSubmatch(lowered, -1) {
		col := m[1]
		if reservedWords[col] {
			continue
		}
		out = append(out, col)
	}
	return dedupe(out)
}

func containsWord(tokens []string, word string) bool {
	for _, t := range tokens {
		if t == word {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
