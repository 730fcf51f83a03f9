// Package sqlgen builds parameterized PostgreSQL query fragments.
//
// All builders are pure string assembly: no I/O, no pool access, and they
// never fail. Column and table names are emitted verbatim; identifiers are
// never taken from untrusted input, and values always travel through `$n`
// placeholders. A malformed identifier produces malformed SQL that the
// database rejects at execution time.
package sqlgen

import "fmt"

// placeholderToken stands in for a parameter index that has not been
// assigned yet. FilterClause replaces it with `$n` once the position of the
// condition inside the composed clause is known.
const placeholderToken = "##ID##"

// Op is a comparison operator or boolean connective in a WHERE clause.
type Op int

const (
	OpEqual Op = iota
	OpNotEqual
	OpLess
	OpLessOrEqual
	OpGreater
	OpGreaterOrEqual
	OpAnd
	OpOr
)

// Condition is one element of a WHERE clause: either a comparison on a
// column, or an And/Or connective joining the neighbouring comparisons.
// Conditions render in exactly the order the caller supplies them; no
// separators are inserted between adjacent comparisons, mirroring how the
// clause would be written by hand.
type Condition struct {
	op     Op
	column string
}

// Equal renders ` col = $n `.
func Equal(column string) Condition { return Condition{op: OpEqual, column: column} }

// NotEqual renders ` col <> $n `.
func NotEqual(column string) Condition { return Condition{op: OpNotEqual, column: column} }

// Less renders ` col < $n `.
func Less(column string) Condition { return Condition{op: OpLess, column: column} }

// LessOrEqual renders ` col <= $n `.
func LessOrEqual(column string) Condition { return Condition{op: OpLessOrEqual, column: column} }

// Greater renders ` col > $n `.
func Greater(column string) Condition { return Condition{op: OpGreater, column: column} }

// GreaterOrEqual renders ` col >= $n `.
func GreaterOrEqual(column string) Condition { return Condition{op: OpGreaterOrEqual, column: column} }

// And renders ` AND `. Connectives do not consume a placeholder index.
func And() Condition { return Condition{op: OpAnd} }

// Or renders ` OR `.
func Or() Condition { return Condition{op: OpOr} }

// IsConnective reports whether the condition is And/Or rather than a
// comparison.
func (c Condition) IsConnective() bool {
	return c.op == OpAnd || c.op == OpOr
}

// String renders the condition with the placeholder token still in place of
// the parameter index.
func (c Condition) String() string {
	switch c.op {
	case OpEqual:
		return fmt.Sprintf(" %s = %s ", c.column, placeholderToken)
	case OpNotEqual:
		return fmt.Sprintf(" %s <> %s ", c.column, placeholderToken)
	case OpLess:
		return fmt.Sprintf(" %s < %s ", c.column, placeholderToken)
	case OpLessOrEqual:
		return fmt.Sprintf(" %s <= %s ", c.column, placeholderToken)
	case OpGreater:
		return fmt.Sprintf(" %s > %s ", c.column, placeholderToken)
	case OpGreaterOrEqual:
		return fmt.Sprintf(" %s >= %s ", c.column, placeholderToken)
	case OpAnd:
		return " AND "
	case OpOr:
		return " OR "
	default:
		return ""
	}
}

// SortDirection is the ORDER BY direction.
type SortDirection int

const (
	// Asc is the default direction when none is specified.
	Asc SortDirection = iota
	Desc
)

// String returns the SQL keyword.
func (d SortDirection) String() string {
	if d == Desc {
		return "DESC"
	}
	return "ASC"
}
