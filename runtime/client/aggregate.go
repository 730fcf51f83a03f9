package client

import (
	"context"
	"fmt"

	"github.com/pgq-dev/pgq/query/executor"
	"github.com/pgq-dev/pgq/query/sqlgen"
	"github.com/pgq-dev/pgq/runtime/types"
)

// Count returns the number of rows matching the filter, via a COUNT(*)
// aggregate on the read pool.
func (m *Model[T]) Count(ctx context.Context, opts FilterOptions) (int64, error) {
	q := sqlgen.SelectQuery(m.tableOr(opts.Table), []string{"COUNT(*) AS count"}, opts.Filters, nil, nil)
	row, err := m.exec.QueryOne(ctx, types.Raw(q), opts.Values, true)
	if err != nil {
		return 0, err
	}
	return executor.Value[int64](row, "count")
}

// Exists reports whether any row matches the filter.
func (m *Model[T]) Exists(ctx context.Context, opts FilterOptions) (bool, error) {
	n, err := m.Count(ctx, opts)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// ExistsOne reports whether exactly one row matches the filter.
func (m *Model[T]) ExistsOne(ctx context.Context, opts FilterOptions) (bool, error) {
	n, err := m.Count(ctx, opts)
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Min returns the smallest value of the column among rows matching the
// filter. A NULL aggregate (no matching rows) fails the conversion unless N
// is a pointer type.
func Min[N any, T any](ctx context.Context, m *Model[T], column string, opts FilterOptions) (N, error) {
	return aggregate[N](ctx, m, "MIN", "min", column, opts)
}

// Max returns the largest value of the column among rows matching the
// filter. NULL handling matches Min.
func Max[N any, T any](ctx context.Context, m *Model[T], column string, opts FilterOptions) (N, error) {
	return aggregate[N](ctx, m, "MAX", "max", column, opts)
}

func aggregate[N any, T any](ctx context.Context, m *Model[T], fn, alias, column string, opts FilterOptions) (N, error) {
	var zero N
	row, err := m.SelectOne(ctx, SelectOptions{
		Table:   opts.Table,
		Fields:  []string{fmt.Sprintf("%s(%s) AS %s", fn, column, alias)},
		Filters: opts.Filters,
		Values:  opts.Values,
	})
	if err != nil {
		return zero, err
	}
	return executor.Value[N](row, alias)
}

// Integer constrains Next to column types with a defined successor.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Next returns Max of the column plus one, for manual sequence emulation.
// It considers the whole table; on an empty table the MAX aggregate is NULL
// and Next fails like Max does.
func Next[N Integer, T any](ctx context.Context, m *Model[T], column string) (N, error) {
	current, err := Max[N](ctx, m, column, FilterOptions{})
	if err != nil {
		return 0, err
	}
	return current + 1, nil
}
