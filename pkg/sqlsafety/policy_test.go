package sqlsafety

import "testing"

func TestEvaluate_AllowedQueryPasses(t *testing.T) {
	q := "SELECT id FROM users WHERE id = 1 ORDER BY id DESC LIMIT 1"
	p := Policy{
		AllowedStatements: []string{"select"},
		RequireWhere:      true,
		RequireLimit:      true,
		MaxLimit:          10,
		HasMaxLimit:       true,
		ForbidUnion:       true,
		RequireOrderBy:    true,
		ForbidSelectStar:  true,
		AllowedTables:     []string{"users"},
	}
	diags := Evaluate(q, p)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %+v", diags)
	}
}

func TestEvaluate_OrTrueWithDollarPlaceholder(t *testing.T) {
	q := "SELECT id FROM users WHERE id = $1 OR 1=1 LIMIT 1"
	p := Policy{
		PlaceholderStyle: PlaceholderDollarOnly,
		ForbidOrTrue:     true,
	}
	diags := Evaluate(q, p)
	found := false
	for _, d := range diags {
		if d.Path == "$.where.orTrue" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected $.where.orTrue diagnostic, got %+v", diags)
	}
}

func TestAnalyze_TablesAndJoins(t *testing.T) {
	q := "SELECT u.name FROM users u JOIN orders o ON u.id = o.user_id"
	a := Analyze(q)
	if len(a.Tables) != 2 {
		t.Fatalf("expected 2 tables, got %+v", a.Tables)
	}
	if a.Aliases["u"] != "users" || a.Aliases["o"] != "orders" {
		t.Fatalf("alias map wrong: %+v", a.Aliases)
	}
}

func TestEvaluate_MaxJoinsAndCrossJoin(t *testing.T) {
	q := "SELECT * FROM a CROSS JOIN b"
	p := Policy{ForbidCrossJoin: true, MaxJoins: 0, HasMaxJoins: true}
	diags := Evaluate(q, p)
	if len(diags) < 2 {
		t.Fatalf("expected crossJoin + maxJoins diagnostics, got %+v", diags)
	}
}
