// Package sqlexec is a safe query executor gating every query through
// pkg/sqlsafety.Evaluate before it reaches a real database connection.
// The pgx pool lifecycle (sync.Once init from an env-var DSN, package-
// level getter/closer) is adapted directly from the teacher's
// pkg/core/store/db.go, generalized from an unconditional pool into one
// whose Query/Exec methods refuse to run a statement the policy rejects.
package sqlexec

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"llmstructured/pkg/jsonparse"
	"llmstructured/pkg/sqlsafety"
)

// Executor gates queries against a Policy before running them against a
// pgx pool.
type Executor struct {
	pool   *pgxpool.Pool
	policy sqlsafety.Policy
}

var (
	defaultPool *pgxpool.Pool
	poolOnce    sync.Once
	poolErr     error
)

// initPool mirrors the teacher's store.InitDB: a sync.Once pool built
// from the DATABASE_URL environment variable, since this is the CLI/
// executor's own connection concern, not the tolerant-parsing core
// (which per spec.md §6 never reads environment variables).
func initPool(ctx context.Context) (*pgxpool.Pool, error) {
	poolOnce.Do(func() {
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			poolErr = fmt.Errorf("sqlexec: DATABASE_URL environment variable not set")
			return
		}
		cfg, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			poolErr = fmt.Errorf("sqlexec: parse DSN: %w", err)
			return
		}
		defaultPool, poolErr = pgxpool.NewWithConfig(ctx, cfg)
	})
	return defaultPool, poolErr
}

// New builds an Executor against the process-wide pgx pool (initialized
// lazily from DATABASE_URL) gated by policy.
func New(ctx context.Context, policy sqlsafety.Policy) (*Executor, error) {
	pool, err := initPool(ctx)
	if err != nil {
		return nil, err
	}
	return &Executor{pool: pool, policy: policy}, nil
}

// NewWithPool builds an Executor against a caller-supplied pool. The test
// suite does not use it: it exercises the policy gate through
// SQLiteExecutor (sqlite.go) rather than a live Postgres instance.
func NewWithPool(pool *pgxpool.Pool, policy sqlsafety.Policy) *Executor {
	return &Executor{pool: pool, policy: policy}
}

// Close releases the underlying pool.
func Close() {
	if defaultPool != nil {
		defaultPool.Close()
	}
}

// ErrPolicyViolation carries the diagnostics that blocked a query; Error
// reports the first.
type ErrPolicyViolation struct {
	Diagnostics []jsonparse.Diagnostic
}

func (e *ErrPolicyViolation) Error() string {
	if len(e.Diagnostics) == 0 {
		return "sqlexec: query rejected by policy"
	}
	return fmt.Sprintf("sqlexec: query rejected by policy: %s", e.Diagnostics[0].Error())
}

// Query runs query against the pool only if it passes the Executor's
// Policy; args are passed through to pgx unmodified (the policy gate
// guards the query text, not bound parameter values).
func (e *Executor) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	if diags := sqlsafety.Evaluate(query, e.policy); len(diags) > 0 {
		return nil, &ErrPolicyViolation{Diagnostics: diags}
	}
	return e.pool.Query(ctx, query, args...)
}

// Exec runs a non-SELECT statement against the pool only if it passes
// the Executor's Policy.
func (e *Executor) Exec(ctx context.Context, query string, args ...any) (pgx.CommandTag, error) {
	if diags := sqlsafety.Evaluate(query, e.policy); len(diags) > 0 {
		return pgx.CommandTag{}, &ErrPolicyViolation{Diagnostics: diags}
	}
	return e.pool.Exec(ctx, query, args...)
}
