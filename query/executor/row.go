package executor

import (
	"database/sql"
	"reflect"

	"github.com/pgq-dev/pgq/runtime/types"
)

// Row is one result row: ordered column names and driver values. Lookups
// fail with a typed error when a column is missing or its representation is
// incompatible with the requested type; nothing is silently defaulted.
type Row struct {
	columns []string
	values  []any
}

// Columns returns the column names in result order.
func (r *Row) Columns() []string { return r.columns }

// Value returns the raw driver value of the named column.
func (r *Row) Value(name string) (any, error) {
	for i, col := range r.columns {
		if col == name {
			return r.values[i], nil
		}
	}
	return nil, types.Validation("row has no column %q", name)
}

// Index returns the raw driver value at position i.
func (r *Row) Index(i int) (any, error) {
	if i < 0 || i >= len(r.values) {
		return nil, types.Validation("row has no column %d", i)
	}
	return r.values[i], nil
}

// Value returns the named column converted to T. Drivers deliver a small
// set of representations (int64, float64, bool, string, []byte, time.Time);
// Value accepts exact matches, numeric conversions that T can hold, and
// []byte to string. SQL NULL is an error unless T is a pointer or interface
// type, which makes absence explicit at the call site.
func Value[T any](r *Row, name string) (T, error) {
	var zero T
	raw, err := r.Value(name)
	if err != nil {
		return zero, err
	}
	if raw == nil {
		t := reflect.TypeOf(&zero).Elem()
		if t.Kind() == reflect.Pointer || t.Kind() == reflect.Interface {
			return zero, nil
		}
		return zero, types.Validation("column %q is NULL, cannot convert to %s", name, t)
	}
	if v, ok := raw.(T); ok {
		return v, nil
	}
	return convertValue[T](name, raw)
}

func convertValue[T any](name string, raw any) (T, error) {
	var zero T
	target := reflect.TypeOf(&zero).Elem()

	if b, ok := raw.([]byte); ok && target.Kind() == reflect.String {
		return reflect.ValueOf(string(b)).Convert(target).Interface().(T), nil
	}

	rv := reflect.ValueOf(raw)
	if isNumeric(rv.Kind()) && isNumeric(target.Kind()) && rv.Type().ConvertibleTo(target) {
		return rv.Convert(target).Interface().(T), nil
	}

	return zero, types.Validation("column %q has type %T, cannot convert to %s", name, raw, target)
}

func isNumeric(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// scanRow reads the current row of rows into a Row. []byte values are
// cloned; the driver may reuse its buffers on the next call to Next.
func scanRow(rows *sql.Rows, columns []string) (*Row, error) {
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return nil, types.FromDriver("scan row", err)
	}
	for i, v := range values {
		if b, ok := v.([]byte); ok {
			values[i] = append([]byte(nil), b...)
		}
	}
	return &Row{columns: columns, values: values}, nil
}
