// Package client exposes the queryable capability: any entity type gets
// select, insert, update, delete, count, exists and aggregate operations by
// supplying only its default table name and a row projection.
//
// Read operations always run on the read pool, write operations on the
// write pool; the routing is fixed per operation and independent of the
// query text.
package client

import (
	"context"
	"iter"

	"github.com/pgq-dev/pgq/query/executor"
	"github.com/pgq-dev/pgq/query/sqlgen"
	"github.com/pgq-dev/pgq/runtime/types"
)

// RowScanner converts one raw row into a T. It must fail when a required
// column is missing or has an incompatible representation, never default.
type RowScanner[T any] func(*executor.Row) (T, error)

// Model binds an entity type to its default table and projection. Build one
// per entity and share it; Model is read-only after construction.
type Model[T any] struct {
	exec  *executor.Executor
	table string
	scan  RowScanner[T]
}

// NewModel returns a model for entity type T over the given executor.
func NewModel[T any](exec *executor.Executor, table string, scan RowScanner[T]) *Model[T] {
	return &Model[T]{exec: exec, table: table, scan: scan}
}

// Table returns the model's default table name.
func (m *Model[T]) Table() string { return m.table }

// Executor returns the underlying executor, for queries the capability
// cannot express; pass it a Raw, File or Lib source directly.
func (m *Model[T]) Executor() *executor.Executor { return m.exec }

func (m *Model[T]) tableOr(table string) string {
	if table != "" {
		return table
	}
	return m.table
}

// SelectOptions parameterizes the select operations. Zero values mean "all":
// empty Table uses the model default, empty Fields selects every column,
// empty Filters emits no WHERE clause, empty OrderBy no ORDER BY. Values
// are bound to the filter placeholders in order.
type SelectOptions struct {
	Table   string
	Fields  []string
	Filters []sqlgen.Condition
	Values  []any
	OrderBy []string
	Order   *sqlgen.SortDirection
}

// FilterOptions parameterizes operations that take only a filter.
type FilterOptions struct {
	Table   string
	Filters []sqlgen.Condition
	Values  []any
}

// Select returns the raw rows matching the options.
func (m *Model[T]) Select(ctx context.Context, opts SelectOptions) ([]*executor.Row, error) {
	q := sqlgen.SelectQuery(m.tableOr(opts.Table), opts.Fields, opts.Filters, opts.OrderBy, opts.Order)
	return m.exec.Query(ctx, types.Raw(q), opts.Values, true)
}

// SelectOne is Select constrained to exactly one result row.
func (m *Model[T]) SelectOne(ctx context.Context, opts SelectOptions) (*executor.Row, error) {
	q := sqlgen.SelectQuery(m.tableOr(opts.Table), opts.Fields, opts.Filters, opts.OrderBy, opts.Order)
	return m.exec.QueryOne(ctx, types.Raw(q), opts.Values, true)
}

// SelectOptional is Select constrained to at most one result row; nil means
// no match.
func (m *Model[T]) SelectOptional(ctx context.Context, opts SelectOptions) (*executor.Row, error) {
	q := sqlgen.SelectQuery(m.tableOr(opts.Table), opts.Fields, opts.Filters, opts.OrderBy, opts.Order)
	return m.exec.QueryOptional(ctx, types.Raw(q), opts.Values, true)
}

// SelectTyped projects the matching rows through the model's scanner. The
// projection is all-or-nothing: the first row that fails aborts the batch.
func (m *Model[T]) SelectTyped(ctx context.Context, opts SelectOptions) ([]T, error) {
	rows, err := m.Select(ctx, opts)
	if err != nil {
		return nil, err
	}
	return ProjectMany(m.scan, rows)
}

// SelectOneTyped projects the single matching row.
func (m *Model[T]) SelectOneTyped(ctx context.Context, opts SelectOptions) (T, error) {
	var zero T
	row, err := m.SelectOne(ctx, opts)
	if err != nil {
		return zero, err
	}
	return m.scan(row)
}

// SelectOptionalTyped projects the optional matching row; nil means no
// match.
func (m *Model[T]) SelectOptionalTyped(ctx context.Context, opts SelectOptions) (*T, error) {
	row, err := m.SelectOptional(ctx, opts)
	if err != nil || row == nil {
		return nil, err
	}
	v, err := m.scan(row)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Stream yields projected rows lazily as the store delivers them. The
// sequence is finite and single-pass; stopping early releases the
// underlying rows.
func (m *Model[T]) Stream(ctx context.Context, opts SelectOptions) iter.Seq2[T, error] {
	q := sqlgen.SelectQuery(m.tableOr(opts.Table), opts.Fields, opts.Filters, opts.OrderBy, opts.Order)
	rows := m.exec.QueryStream(ctx, types.Raw(q), opts.Values, true)
	return func(yield func(T, error) bool) {
		var zero T
		for row, err := range rows {
			if err != nil {
				yield(zero, err)
				return
			}
			v, err := m.scan(row)
			if !yield(v, err) || err != nil {
				return
			}
		}
	}
}

// ProjectOne converts one raw row through a scanner.
func ProjectOne[T any](scan RowScanner[T], row *executor.Row) (T, error) {
	return scan(row)
}

// ProjectMany converts raw rows through a scanner, aborting on the first
// failure so callers never see partial results.
func ProjectMany[T any](scan RowScanner[T], rows []*executor.Row) ([]T, error) {
	result := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := scan(row)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}
