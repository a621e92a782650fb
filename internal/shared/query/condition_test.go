package query_test

import (
	"testing"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/query"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestAnd_AllAbsentIsAbsent(t *testing.T) {
	// Given: only absent conditions
	conds := []query.Condition{
		query.EqText("member.username", ""),
		query.Gte("member.age", (*int)(nil)),
		query.Absent,
	}

	// When: folding them
	where := query.And(conds...)

	// Then: nothing constrains the result
	assert.False(t, where.IsPresent())
	assert.Empty(t, where.Terms())
	assert.Equal(t, "<absent>", where.String())
	assert.False(t, query.And().IsPresent())
}

func TestAnd_SingleTermIsReturnedAsIs(t *testing.T) {
	age := query.Gte("member.age", 25)

	where := query.And(query.Absent, age, query.Absent)

	assert.Equal(t, age, where)
	assert.Equal(t, "member.age >= 25", where.String())
}

func TestAnd_FlattensNestedTerms(t *testing.T) {
	inner := query.And(query.EqText("member.username", "member1"), query.Gte("member.age", 10))

	where := inner.And(query.Lte("member.age", 40), query.Absent)

	terms := where.Terms()
	require.Len(t, terms, 3)
	assert.Equal(t, "member.username = member1 AND member.age >= 10 AND member.age <= 40", where.String())
}

func TestConstructors_AbsentWhenValueMissing(t *testing.T) {
	testCases := []struct {
		name string
		cond query.Condition
	}{
		{name: "nil value", cond: query.Eq("member.age", nil)},
		{name: "nil pointer", cond: query.Gte("member.age", (*int)(nil))},
		{name: "blank text", cond: query.EqText("team.name", "   ")},
		{name: "blank pattern", cond: query.Like("team.name", "")},
		{name: "empty list", cond: query.In("member.age")},
		{name: "list of nils", cond: query.In("member.age", nil, (*int)(nil))},
		{name: "no bounds", cond: query.Between("member.age", nil, (*int)(nil))},
		{name: "blank string through Eq", cond: query.Eq("member.username", "  ")},
		{name: "pointer to empty string", cond: query.Ne("team.name", strPtr(""))},
		{name: "blank string bound", cond: query.Gte("member.username", "")},
		{name: "list of blank strings", cond: query.In("team.name", "", strPtr(" "))},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.False(t, tc.cond.IsPresent())
		})
	}
}

func TestConstructors_KeepNonBlankText(t *testing.T) {
	cond := query.Eq("team.name", strPtr(" teamA "))

	require.True(t, cond.IsPresent())
	assert.Equal(t, " teamA ", cond.Value)
}

func TestConstructors_DereferencePointers(t *testing.T) {
	cond := query.Gte("member.age", intPtr(25))

	require.True(t, cond.IsPresent())
	assert.Equal(t, "member.age", cond.Field)
	assert.Equal(t, query.OpGte, cond.Op)
	assert.Equal(t, 25, cond.Value)
}

func TestBetween_DegradesToSingleBound(t *testing.T) {
	both := query.Between("member.age", intPtr(10), intPtr(20))
	assert.Equal(t, query.OpBetween, both.Op)
	assert.Equal(t, "member.age BETWEEN 10 AND 20", both.String())

	lower := query.Between("member.age", intPtr(10), nil)
	assert.Equal(t, query.OpGte, lower.Op)
	assert.Equal(t, 10, lower.Value)

	upper := query.Between("member.age", nil, 20)
	assert.Equal(t, query.OpLte, upper.Op)
	assert.Equal(t, 20, upper.Value)
}

func TestIn_SkipsMissingValues(t *testing.T) {
	cond := query.In("member.age", 10, nil, intPtr(30))

	require.True(t, cond.IsPresent())
	assert.Equal(t, []any{10, 30}, cond.Value)
}

func TestString_RendersColumnsAndNullChecks(t *testing.T) {
	assert.Equal(t, "member.username = team.name", query.EqField("member.username", "team.name").String())
	assert.Equal(t, "member.team_id IS NULL", query.IsNull("member.team_id").String())
	assert.Equal(t, "member.team_id IS NOT NULL", query.IsNotNull("member.team_id").String())
}

func TestCompare_FunctionExpressions(t *testing.T) {
	lower := query.Func("lower", query.Col("member.username"))

	cond := query.Compare(query.Col("member.username"), query.OpEq, lower)
	require.True(t, cond.IsPresent())
	assert.Equal(t, "member.username = LOWER(member.username)", cond.String())

	replaced := query.Func("replace", query.Col("member.username"), "member", "m").As("name")
	assert.Equal(t, "REPLACE(member.username, 'member', 'm') = m1",
		query.Compare(replaced, query.OpEq, "m1").String())

	assert.False(t, query.Compare(lower, query.OpEq, nil).IsPresent())
	assert.False(t, query.Compare(lower, query.OpEq, " ").IsPresent())
}

func TestInvalidField_Panics(t *testing.T) {
	assert.Panics(t, func() { query.Eq("age; DROP TABLE member", 1) })
	assert.Panics(t, func() { query.EqText("", "x") })
	assert.Panics(t, func() { query.Asc("member.age desc") })
	assert.Panics(t, func() { query.Col("member.age").As("bad alias") })
	assert.Panics(t, func() { query.Func("lower(x)", query.Col("member.age")) })
}
