package sqlgen

import (
	"fmt"
	"strings"
)

// FieldList joins column names for a SELECT list. A nil or empty list means
// every column.
func FieldList(columns []string) string {
	if len(columns) == 0 {
		return "*"
	}
	return strings.Join(columns, ", ")
}

// FilterClause renders a WHERE clause from conditions in caller order.
// Comparison conditions receive placeholder indices start+1, start+2, ...
// in emission order; connectives pass through without consuming an index.
// An empty condition list yields an empty string without the WHERE keyword.
//
// The start offset exists so a clause can continue numbering begun by an
// UPDATE SET clause: pass UpdateClause's returned next index.
func FilterClause(conditions []Condition, start int) string {
	if len(conditions) == 0 {
		return ""
	}
	index := start
	parts := make([]string, 0, len(conditions))
	for _, cond := range conditions {
		if cond.IsConnective() {
			parts = append(parts, cond.String())
			continue
		}
		index++
		parts = append(parts, strings.Replace(cond.String(), placeholderToken, fmt.Sprintf("$%d", index), 1))
	}
	return " WHERE " + strings.Join(parts, "") + " "
}

// SortClause renders an ORDER BY clause, defaulting to ascending when no
// direction is given. An empty column list yields an empty string.
func SortClause(columns []string, direction *SortDirection) string {
	if len(columns) == 0 {
		return ""
	}
	dir := Asc
	if direction != nil {
		dir = *direction
	}
	return fmt.Sprintf(" ORDER BY %s %s ", strings.Join(columns, ", "), dir)
}

// UpdateClause renders the column assignments of an UPDATE SET clause,
// numbering placeholders from start+1, and returns the last index it
// consumed so a following FilterClause can continue without a collision.
// An empty column list yields (start, "").
func UpdateClause(columns []string, start int) (int, string) {
	if len(columns) == 0 {
		return start, ""
	}
	index := start
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		index++
		parts = append(parts, fmt.Sprintf("%s = $%d", col, index))
	}
	return index, strings.Join(parts, ", ")
}

// SelectQuery composes a full SELECT statement from the fragment builders.
func SelectQuery(table string, fields []string, conditions []Condition, sortColumns []string, direction *SortDirection) string {
	return fmt.Sprintf("SELECT %s FROM %s %s %s",
		FieldList(fields),
		table,
		FilterClause(conditions, 0),
		SortClause(sortColumns, direction),
	)
}

// InsertQuery composes an INSERT statement with n value placeholders. A nil
// field list omits the column list and relies on table column order.
func InsertQuery(table string, fields []string, n int) string {
	params := make([]string, n)
	for i := range params {
		params[i] = fmt.Sprintf("$%d", i+1)
	}
	values := strings.Join(params, ", ")
	if len(fields) == 0 {
		return fmt.Sprintf("INSERT INTO %s  VALUES (%s);", table, values)
	}
	return fmt.Sprintf("INSERT INTO %s  (%s) VALUES (%s);", table, strings.Join(fields, ", "), values)
}

// DeleteQuery composes a DELETE statement with an optional filter.
func DeleteQuery(table string, conditions []Condition) string {
	return fmt.Sprintf("DELETE FROM %s %s", table, FilterClause(conditions, 0))
}

// UpdateQuery composes a full UPDATE statement: SET assignments first, then
// a filter clause that continues the SET clause's placeholder numbering.
func UpdateQuery(table string, setColumns []string, conditions []Condition) string {
	next, set := UpdateClause(setColumns, 0)
	return fmt.Sprintf("UPDATE %s SET %s %s", table, set, FilterClause(conditions, next))
}
