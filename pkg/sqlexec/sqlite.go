package sqlexec

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"llmstructured/pkg/sqlsafety"
)

// SQLiteExecutor is the same policy-gated executor as Executor, backed by
// an embedded modernc.org/sqlite database/sql connection instead of pgx.
// It exists so the analyzer's policy gate can be exercised end-to-end in
// tests without a live Postgres instance.
type SQLiteExecutor struct {
	db     *sql.DB
	policy sqlsafety.Policy
}

// OpenSQLite opens an embedded sqlite database (":memory:" for a
// throwaway test database) gated by policy.
func OpenSQLite(dsn string, policy sqlsafety.Policy) (*SQLiteExecutor, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlexec: open sqlite: %w", err)
	}
	return &SQLiteExecutor{db: db, policy: policy}, nil
}

// Close releases the underlying connection.
func (e *SQLiteExecutor) Close() error { return e.db.Close() }

// Query runs query only if it passes the Executor's Policy.
func (e *SQLiteExecutor) Query(query string, args ...any) (*sql.Rows, error) {
	if diags := sqlsafety.Evaluate(query, e.policy); len(diags) > 0 {
		return nil, &ErrPolicyViolation{Diagnostics: diags}
	}
	return e.db.Query(query, args...)
}

// Exec runs a non-SELECT statement only if it passes the Executor's
// Policy.
func (e *SQLiteExecutor) Exec(query string, args ...any) (sql.Result, error) {
	if diags := sqlsafety.Evaluate(query, e.policy); len(diags) > 0 {
		return nil, &ErrPolicyViolation{Diagnostics: diags}
	}
	return e.db.Exec(query, args...)
}
