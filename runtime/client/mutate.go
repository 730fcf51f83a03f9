package client

import (
	"context"

	"github.com/pgq-dev/pgq/query/sqlgen"
	"github.com/pgq-dev/pgq/runtime/types"
)

// InsertOptions parameterizes Insert. An empty field list omits the column
// list and relies on the table's column order; Values supplies one bound
// parameter per placeholder.
type InsertOptions struct {
	Table  string
	Fields []string
	Values []any
}

// UpdateOptions parameterizes Update. Set names the columns to assign, with
// SetValues bound in the same order; Filters and FilterValues scope the
// update. Filter placeholders continue numbering after the SET clause, so
// the bound parameters are SetValues followed by FilterValues.
type UpdateOptions struct {
	Table        string
	Set          []string
	SetValues    []any
	Filters      []sqlgen.Condition
	FilterValues []any
}

// Insert inserts one row and returns the affected-row count. Routed to the
// write pool.
func (m *Model[T]) Insert(ctx context.Context, opts InsertOptions) (int64, error) {
	q := sqlgen.InsertQuery(m.tableOr(opts.Table), opts.Fields, len(opts.Values))
	return m.exec.Execute(ctx, types.Raw(q), opts.Values, false)
}

// Delete deletes the rows matching the filter and returns the affected-row
// count. Routed to the write pool.
func (m *Model[T]) Delete(ctx context.Context, opts FilterOptions) (int64, error) {
	q := sqlgen.DeleteQuery(m.tableOr(opts.Table), opts.Filters)
	return m.exec.Execute(ctx, types.Raw(q), opts.Values, false)
}

// Update updates the rows matching the filter and returns the affected-row
// count. An empty set list is rejected before any I/O happens. Routed to
// the write pool.
func (m *Model[T]) Update(ctx context.Context, opts UpdateOptions) (int64, error) {
	if len(opts.Set) == 0 {
		return 0, types.Validation("update requires at least one set column")
	}
	q := sqlgen.UpdateQuery(m.tableOr(opts.Table), opts.Set, opts.Filters)
	args := make([]any, 0, len(opts.SetValues)+len(opts.FilterValues))
	args = append(args, opts.SetValues...)
	args = append(args, opts.FilterValues...)
	return m.exec.Execute(ctx, types.Raw(q), args, false)
}
