// Package executor runs query sources against the read/write pools and
// returns raw rows or row counts.
//
// Every operation follows the same path: select the pool by the caller's
// read-only flag, resolve the source to SQL text, obtain a cached prepared
// statement, bind parameters positionally and execute. Nothing is retried;
// failures surface as typed errors and retry policy belongs to the caller.
package executor

import (
	"context"
	"iter"

	"github.com/pgq-dev/pgq/internal/debug"
	"github.com/pgq-dev/pgq/runtime/pool"
	"github.com/pgq-dev/pgq/runtime/types"
)

// Executor executes statements over a pool pair.
type Executor struct {
	pools *pool.Pools
}

// New returns an executor over the given pools.
func New(pools *pool.Pools) *Executor {
	return &Executor{pools: pools}
}

// Pools returns the pool pair the executor runs on.
func (e *Executor) Pools() *pool.Pools { return e.pools }

// Execute runs a statement and returns the number of rows it modified.
// Statements that return rows instead of modifying them report 0.
func (e *Executor) Execute(ctx context.Context, src types.Source, args []any, readOnly bool) (int64, error) {
	db := e.pools.Selector(readOnly)
	text, err := Resolve(src, e.pools)
	if err != nil {
		return 0, err
	}
	stmt, err := db.PrepareCached(ctx, text)
	if err != nil {
		return 0, err
	}
	debug.Query("execute", text, len(args))
	res, err := stmt.ExecContext(ctx, args...)
	if err != nil {
		return 0, types.FromDriver("execute statement", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, types.FromDriver("rows affected", err)
	}
	return n, nil
}

// Query runs a statement and returns all result rows.
func (e *Executor) Query(ctx context.Context, src types.Source, args []any, readOnly bool) ([]*Row, error) {
	db := e.pools.Selector(readOnly)
	text, err := Resolve(src, e.pools)
	if err != nil {
		return nil, err
	}
	stmt, err := db.PrepareCached(ctx, text)
	if err != nil {
		return nil, err
	}
	debug.Query("query", text, len(args))
	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, types.FromDriver("execute query", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, types.FromDriver("read columns", err)
	}
	var result []*Row
	for rows.Next() {
		row, err := scanRow(rows, columns)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, types.FromDriver("iterate rows", err)
	}
	return result, nil
}

// QueryOne runs a statement that must return exactly one row. Any other
// cardinality is a validation error, never coerced to the first row.
func (e *Executor) QueryOne(ctx context.Context, src types.Source, args []any, readOnly bool) (*Row, error) {
	rows, err := e.Query(ctx, src, args, readOnly)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, types.Validation("expected exactly one row, got %d", len(rows))
	}
	return rows[0], nil
}

// QueryOptional runs a statement that must return zero or one rows. Zero
// rows yields nil; more than one is a validation error.
func (e *Executor) QueryOptional(ctx context.Context, src types.Source, args []any, readOnly bool) (*Row, error) {
	rows, err := e.Query(ctx, src, args, readOnly)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, nil
	case 1:
		return rows[0], nil
	default:
		return nil, types.Validation("expected at most one row, got %d", len(rows))
	}
}

// QueryStream runs a statement and yields rows as the driver delivers them.
// The sequence is finite and single-pass: it ends when the store signals
// end-of-results and cannot be restarted. A stalled consumer stalls further
// row delivery, so backpressure reaches the transport. Stopping early
// releases the underlying rows.
func (e *Executor) QueryStream(ctx context.Context, src types.Source, args []any, readOnly bool) iter.Seq2[*Row, error] {
	return func(yield func(*Row, error) bool) {
		db := e.pools.Selector(readOnly)
		text, err := Resolve(src, e.pools)
		if err != nil {
			yield(nil, err)
			return
		}
		stmt, err := db.PrepareCached(ctx, text)
		if err != nil {
			yield(nil, err)
			return
		}
		debug.Query("query stream", text, len(args))
		rows, err := stmt.QueryContext(ctx, args...)
		if err != nil {
			yield(nil, types.FromDriver("execute query", err))
			return
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			yield(nil, types.FromDriver("read columns", err))
			return
		}
		for rows.Next() {
			row, err := scanRow(rows, columns)
			if err != nil {
				yield(nil, err)
				return
			}
			if !yield(row, nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, types.FromDriver("iterate rows", err))
		}
	}
}
