package sqlgen

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConditionRendering(t *testing.T) {
	assert.Equal(t, " id = ##ID## ", Equal("id").String())
	assert.Equal(t, " id <> ##ID## ", NotEqual("id").String())
	assert.Equal(t, " age < ##ID## ", Less("age").String())
	assert.Equal(t, " age <= ##ID## ", LessOrEqual("age").String())
	assert.Equal(t, " age > ##ID## ", Greater("age").String())
	assert.Equal(t, " age >= ##ID## ", GreaterOrEqual("age").String())
	assert.Equal(t, " AND ", And().String())
	assert.Equal(t, " OR ", Or().String())
}

func TestFieldList(t *testing.T) {
	assert.Equal(t, "*", FieldList(nil))
	assert.Equal(t, "*", FieldList([]string{}))
	assert.Equal(t, "id", FieldList([]string{"id"}))
	assert.Equal(t, "id, name, age", FieldList([]string{"id", "name", "age"}))
}

func TestFilterClause(t *testing.T) {
	assert.Equal(t, "", FilterClause(nil, 0))
	assert.Equal(t, "", FilterClause([]Condition{}, 5))

	got := FilterClause([]Condition{Equal("id")}, 0)
	assert.Equal(t, " WHERE  id = $1  ", got)

	got = FilterClause([]Condition{Equal("id"), And(), Greater("age")}, 0)
	assert.Equal(t, " WHERE  id = $1  AND  age > $2  ", got)
}

// Placeholder indices go to exactly the comparison conditions, left to
// right, starting at start+1; connectives never consume an index.
func TestFilterClausePlaceholderAssignment(t *testing.T) {
	conds := []Condition{
		Equal("a"), Or(), NotEqual("b"), And(), LessOrEqual("c"), And(), GreaterOrEqual("d"),
	}
	got := FilterClause(conds, 3)
	assert.Equal(t, " WHERE  a = $4  OR  b <> $5  AND  c <= $6  AND  d >= $7  ", got)

	for i := 4; i <= 7; i++ {
		assert.Contains(t, got, fmt.Sprintf("$%d", i))
	}
	assert.NotContains(t, got, "$3")
	assert.NotContains(t, got, "$8")
	assert.NotContains(t, got, "##ID##")
}

func TestSortClause(t *testing.T) {
	assert.Equal(t, "", SortClause(nil, nil))
	assert.Equal(t, "", SortClause([]string{}, nil))

	assert.Equal(t, " ORDER BY name ASC ", SortClause([]string{"name"}, nil))

	desc := Desc
	assert.Equal(t, " ORDER BY name, age DESC ", SortClause([]string{"name", "age"}, &desc))

	asc := Asc
	assert.Equal(t, " ORDER BY id ASC ", SortClause([]string{"id"}, &asc))
}

func TestUpdateClause(t *testing.T) {
	next, clause := UpdateClause(nil, 0)
	assert.Equal(t, 0, next)
	assert.Equal(t, "", clause)

	next, clause = UpdateClause([]string{"name"}, 0)
	assert.Equal(t, 1, next)
	assert.Equal(t, "name = $1", clause)

	next, clause = UpdateClause([]string{"name", "age"}, 2)
	assert.Equal(t, 4, next)
	assert.Equal(t, "name = $3, age = $4", clause)
}

// Two update columns followed by two filter conditions never reuse an
// index: $1,$2 for SET, $3,$4 for WHERE.
func TestUpdateThenFilterContinuesNumbering(t *testing.T) {
	next, set := UpdateClause([]string{"name", "age"}, 0)
	require.Equal(t, 2, next)
	assert.Equal(t, "name = $1, age = $2", set)

	filter := FilterClause([]Condition{Equal("id"), And(), Equal("tenant")}, next)
	assert.Equal(t, " WHERE  id = $3  AND  tenant = $4  ", filter)
}

func TestSelectQuery(t *testing.T) {
	got := SelectQuery("public.users", nil, nil, nil, nil)
	assert.Equal(t, "SELECT * FROM public.users  ", got)

	desc := Desc
	got = SelectQuery("public.users",
		[]string{"id", "name"},
		[]Condition{Greater("age")},
		[]string{"name"}, &desc,
	)
	assert.Equal(t, "SELECT id, name FROM public.users  WHERE  age > $1   ORDER BY name DESC ", got)
}

func TestInsertQuery(t *testing.T) {
	got := InsertQuery("public.users", nil, 2)
	assert.Equal(t, "INSERT INTO public.users  VALUES ($1, $2);", got)

	got = InsertQuery("public.users", []string{"id", "name"}, 2)
	assert.Equal(t, "INSERT INTO public.users  (id, name) VALUES ($1, $2);", got)
}

func TestDeleteQuery(t *testing.T) {
	assert.Equal(t, "DELETE FROM public.users ", DeleteQuery("public.users", nil))
	assert.Equal(t,
		"DELETE FROM public.users  WHERE  id = $1  ",
		DeleteQuery("public.users", []Condition{Equal("id")}),
	)
}

func TestUpdateQuery(t *testing.T) {
	got := UpdateQuery("public.users", []string{"name"}, []Condition{Equal("id")})
	assert.Equal(t, "UPDATE public.users SET name = $1  WHERE  id = $2  ", got)
}
