package sqlsafety

import (
	"fmt"
	"strings"

	"llmstructured/pkg/jsonparse"
)

// PlaceholderStyle restricts which bind-parameter syntax a query may use.
type PlaceholderStyle int

const (
	PlaceholderEither PlaceholderStyle = iota
	PlaceholderQmarkOnly
	PlaceholderDollarOnly
)

// Policy is spec.md §4.6's schema-like rule set. All fields are optional
// (zero value means "no constraint") except where noted.
type Policy struct {
	AllowedStatements []string
	ForbidKeywords    []string

	RequireFrom    bool
	RequireWhere   bool
	RequireLimit   bool
	RequireOrderBy bool

	ForbidUnion       bool
	ForbidSubqueries  bool
	ForbidSelectStar  bool
	ForbidSemicolon   bool
	ForbidComments    bool
	ForbidCrossJoin   bool
	ForbidOrTrue      bool

	MaxLimit         int
	HasMaxLimit      bool
	MaxJoins         int
	HasMaxJoins      bool
	AllowedJoinTypes []string

	PlaceholderStyle PlaceholderStyle

	ForbidFunctions     bool
	ForbidFunctionNames []string

	AllowedTables []string
	ForbidTables  []string
	ForbidSchemas []string

	AllowedColumns map[string][]string // table -> allowed column names
	AllowUnqualifiedColumns bool

	RequireWhereColumns  []string
	RequireWherePatterns []string
}

// Evaluate runs Analyze(text) then checks every Policy rule, returning one
// Diagnostic per violated rule (empty slice means the query is allowed).
func Evaluate(text string, p Policy) []jsonparse.Diagnostic {
	a := Analyze(text)
	var diags []jsonparse.Diagnostic
	add := func(path, message string) {
		diags = append(diags, jsonparse.Diagnostic{
			Message: message, Path: path, Kind: jsonparse.KindSchema, JSONPointer: jsonparse.Pointer(path),
		})
	}

	if len(p.AllowedStatements) > 0 && !containsFold(p.AllowedStatements, a.StatementType) {
		add("$.statementType", "statement type not allowed: "+a.StatementType)
	}
	for _, kw := range p.ForbidKeywords {
		if strings.Contains(a.Lowered, strings.ToLower(kw)) {
			add("$.keywords["+kw+"]", "forbidden keyword present: "+kw)
		}
	}

	if p.RequireFrom && !a.HasFrom {
		add("$.from", "query is missing a required FROM clause")
	}
	if p.RequireWhere && !a.HasWhere {
		add("$.where", "query is missing a required WHERE clause")
	}
	if p.RequireLimit && !a.HasLimit {
		add("$.limit", "query is missing a required LIMIT clause")
	}
	if p.RequireOrderBy && !strings.Contains(a.Lowered, "order by") {
		add("$.orderBy", "query is missing a required ORDER BY clause")
	}

	if p.ForbidUnion && a.HasUnion {
		add("$.union", "UNION is forbidden by policy")
	}
	if p.ForbidSubqueries && a.HasSubquery {
		add("$.subquery", "subqueries are forbidden by policy")
	}
	if p.ForbidSelectStar && a.HasSelectStar {
		add("$.selectStar", "SELECT * is forbidden by policy")
	}
	if p.ForbidSemicolon && a.HasSemicolon {
		add("$.semicolon", "semicolons are forbidden by policy")
	}
	if p.ForbidComments && a.HadComments {
		add("$.comments", "comments are forbidden by policy")
	}
	if p.ForbidOrTrue && a.HasOrTrue {
		add("$.where.orTrue", "OR-true tautology pattern detected")
	}

	if p.HasMaxLimit && a.HasLimitValue && a.LimitValue > p.MaxLimit {
		add("$.limit.max", fmt.Sprintf("LIMIT %d exceeds maxLimit=%d", a.LimitValue, p.MaxLimit))
	}

	if p.HasMaxJoins && len(a.Joins) > p.MaxJoins {
		add("$.joins.count", fmt.Sprintf("query has %d joins, exceeds maxJoins=%d", len(a.Joins), p.MaxJoins))
	}
	if p.ForbidCrossJoin {
		for _, j := range a.Joins {
			if j.Type == "cross" {
				add("$.joins.crossJoin", "CROSS JOIN is forbidden by policy")
				break
			}
		}
	}
	if len(p.AllowedJoinTypes) > 0 {
		for _, j := range a.Joins {
			jt := j.Type
			if jt == "" {
				jt = "inner"
			}
			if !containsFold(p.AllowedJoinTypes, jt) {
				add("$.joins.type["+j.Table+"]", "join type not allowed: "+jt)
			}
		}
	}

	switch p.PlaceholderStyle {
	case PlaceholderQmarkOnly:
		if a.PlaceholderDollar {
			add("$.placeholders", "dollar-style placeholders not allowed; expected '?'")
		}
	case PlaceholderDollarOnly:
		if a.PlaceholderQmark {
			add("$.placeholders", "'?' placeholders not allowed; expected dollar-style")
		}
	}

	if p.ForbidFunctions || len(p.ForbidFunctionNames) > 0 {
		for _, call := range a.FunctionCalls {
			name := strings.TrimRight(strings.TrimSpace(call), "(")
			name = strings.TrimSpace(name)
			if p.ForbidFunctions || containsFold(p.ForbidFunctionNames, name) {
				add("$.functions["+name+"]", "function call not allowed: "+name)
			}
		}
	}

	if len(p.AllowedTables) > 0 {
		for _, t := range a.Tables {
			if !containsFold(p.AllowedTables, firstSeg(t)) {
				add("$.tables["+t+"]", "table not allowed: "+t)
			}
		}
	}
	for _, t := range a.Tables {
		if containsFold(p.ForbidTables, firstSeg(t)) {
			add("$.tables["+t+"]", "table forbidden by policy: "+t)
		}
		if schema, ok := splitSchema(t); ok && containsFold(p.ForbidSchemas, schema) {
			add("$.schemas["+schema+"]", "schema forbidden by policy: "+schema)
		}
	}

	if len(p.AllowedColumns) > 0 {
		for _, ref := range a.QualifiedCols {
			allowed, ok := p.AllowedColumns[ref.Table]
			if !ok {
				continue
			}
			if !containsFold(allowed, ref.Column) {
				add("$.columns["+ref.Table+"."+ref.Column+"]", "column not allowed: "+ref.Table+"."+ref.Column)
			}
		}
	}
	if !p.AllowUnqualifiedColumns && len(p.AllowedColumns) > 0 {
		for _, col := range a.UnqualifiedCols {
			add("$.columns[unqualified."+col+"]", "unqualified column not permitted by policy: "+col)
		}
	}

	for _, req := range p.RequireWhereColumns {
		if !columnReferenced(a, req) {
			add("$.where.columns["+req+"]", "WHERE clause must reference column: "+req)
		}
	}
	for _, pat := range p.RequireWherePatterns {
		if !strings.Contains(a.Lowered, strings.ToLower(pat)) {
			add("$.where.patterns["+pat+"]", "WHERE clause must match required pattern: "+pat)
		}
	}

	return diags
}

func columnReferenced(a Analysis, col string) bool {
	col = strings.ToLower(col)
	for _, c := range a.UnqualifiedCols {
		if c == col {
			return true
		}
	}
	for _, ref := range a.QualifiedCols {
		if ref.Column == col {
			return true
		}
	}
	return strings.Contains(a.Lowered, col)
}

func splitSchema(qualified string) (string, bool) {
	i := strings.IndexByte(qualified, '.')
	if i < 0 {
		return "", false
	}
	return qualified[:i], true
}

func containsFold(list []string, s string) bool {
	for _, item := range list {
		if strings.EqualFold(item, s) {
			return true
		}
	}
	return false
}
