package query_test

import (
	"context"
	"errors"
	"testing"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/query"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memberRow struct {
	MemberID uint32  `gorm:"column:member_id"`
	Username *string `gorm:"column:username"`
	Age      int     `gorm:"column:age"`
	TeamName *string `gorm:"column:team_name"`
}

func setupMembers(t *testing.T) (*gorm.DB, *testutil.MemberFixture) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})
	return db, testutil.SeedMembers(t, db)
}

func memberTeamQuery(where query.Condition) query.Query {
	return query.Query{
		From: "member",
		Joins: []query.Join{{
			Type:  query.LeftJoin,
			Table: "team",
			On:    query.EqField("team.id", "member.team_id"),
		}},
		Select: []query.Field{
			query.Col("member.id").As("member_id"),
			query.Col("member.username").As("username"),
			query.Col("member.age").As("age"),
			query.Col("team.name").As("team_name"),
		},
		Where:   where,
		OrderBy: []query.Order{query.Asc("member.id")},
	}
}

func usernames(rows []memberRow) []string {
	names := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Username == nil {
			names = append(names, "<nil>")
			continue
		}
		names = append(names, *r.Username)
	}
	return names
}

func memberNames(members []model.Member) []string {
	names := make([]string, 0, len(members))
	for i := range members {
		names = append(names, members[i].Name())
	}
	return names
}

func TestFind_AbsentFilterSelectsAll(t *testing.T) {
	// Given
	db, _ := setupMembers(t)

	// When
	rows, err := query.Find[memberRow](context.Background(), db, memberTeamQuery(query.Absent))

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"member1", "member2", "member3", "member4"}, usernames(rows))
}

func TestFind_SingleFieldFilters(t *testing.T) {
	db, _ := setupMembers(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		where    query.Condition
		expected []string
	}{
		{name: "username", where: query.EqText("member.username", "member2"), expected: []string{"member2"}},
		{name: "team name", where: query.EqText("team.name", "teamA"), expected: []string{"member1", "member2"}},
		{name: "age goe", where: query.Gte("member.age", 25), expected: []string{"member3", "member4"}},
		{name: "age loe", where: query.Lte("member.age", 20), expected: []string{"member1", "member2"}},
		{name: "between", where: query.Between("member.age", 20, 30), expected: []string{"member2", "member3"}},
		{name: "in", where: query.In("member.age", 10, 40), expected: []string{"member1", "member4"}},
		{name: "like", where: query.Like("member.username", "%3"), expected: []string{"member3"}},
		{name: "ne", where: query.Ne("member.age", 10), expected: []string{"member2", "member3", "member4"}},
		{name: "no match", where: query.EqText("team.name", "teamC"), expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rows, err := query.Find[memberRow](ctx, db, memberTeamQuery(tc.where))

			require.NoError(t, err)
			require.NotNil(t, rows)
			assert.Equal(t, tc.expected, usernames(rows))
		})
	}
}

func TestFind_ConditionOrderDoesNotMatter(t *testing.T) {
	db, _ := setupMembers(t)
	ctx := context.Background()

	team := query.EqText("team.name", "teamB")
	age := query.Gte("member.age", 35)

	forward, err := query.Find[memberRow](ctx, db, memberTeamQuery(query.And(team, age)))
	require.NoError(t, err)
	backward, err := query.Find[memberRow](ctx, db, memberTeamQuery(query.And(age, team)))
	require.NoError(t, err)

	assert.Equal(t, []string{"member4"}, usernames(forward))
	assert.Equal(t, forward, backward)
}

func TestFindPage_WindowAndTotal(t *testing.T) {
	// Given: four members
	db, _ := setupMembers(t)

	// When: offset 1, limit 2
	q := memberTeamQuery(query.Absent).Paged(1, 2)
	page, err := query.FindPage[memberRow](context.Background(), db, q)

	// Then: second and third row, total counts the whole match
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, 1, page.Offset)
	assert.Equal(t, 2, page.Limit)
	assert.Equal(t, []string{"member2", "member3"}, usernames(page.Items))
}

func TestFindPage_OffsetBeyondTotal(t *testing.T) {
	db, _ := setupMembers(t)

	page, err := query.FindPage[memberRow](context.Background(), db, memberTeamQuery(query.Absent).Paged(10, 2))

	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Empty(t, page.Items)
	assert.NotNil(t, page.Items)
}

func TestFind_OrderDescWithNullsLast(t *testing.T) {
	// Given: an extra member without username, as old as member4
	db, _ := setupMembers(t)
	require.NoError(t, db.Omit("Team").Create(&model.Member{Age: 40}).Error)
	testutil.SeedMember(t, db, model.NewMember("member5", 40, nil))

	// When: age desc, username asc nulls last
	q := memberTeamQuery(query.Absent)
	q.OrderBy = []query.Order{query.Desc("member.age"), query.Asc("member.username").NullsLast()}
	rows, err := query.Find[memberRow](context.Background(), db, q)

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"member4", "member5", "<nil>", "member3", "member2", "member1"}, usernames(rows))
}

func TestFind_OrderNullsFirst(t *testing.T) {
	db, _ := setupMembers(t)
	require.NoError(t, db.Omit("Team").Create(&model.Member{Age: 40}).Error)

	q := memberTeamQuery(query.Absent)
	q.OrderBy = []query.Order{query.Asc("member.username").NullsFirst()}
	rows, err := query.Find[memberRow](context.Background(), db, q)

	require.NoError(t, err)
	assert.Equal(t, []string{"<nil>", "member1", "member2", "member3", "member4"}, usernames(rows))
}

func TestFind_GroupByTeam(t *testing.T) {
	db, _ := setupMembers(t)

	type teamAvg struct {
		TeamName string  `gorm:"column:team_name"`
		Members  int64   `gorm:"column:cnt"`
		AvgAge   float64 `gorm:"column:avg_age"`
	}

	rows, err := query.Find[teamAvg](context.Background(), db, query.Query{
		From: "member",
		Joins: []query.Join{{
			Type:  query.InnerJoin,
			Table: "team",
			On:    query.EqField("team.id", "member.team_id"),
		}},
		Select: []query.Field{
			query.Col("team.name").As("team_name"),
			query.CountAll().As("cnt"),
			query.Avg("member.age").As("avg_age"),
		},
		GroupBy: []string{"team.name"},
		Having:  query.IsNotNull("team.name"),
		OrderBy: []query.Order{query.Asc("team.name")},
	})

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "teamA", rows[0].TeamName)
	assert.EqualValues(t, 2, rows[0].Members)
	assert.InDelta(t, 15, rows[0].AvgAge, 0.001)
	assert.Equal(t, "teamB", rows[1].TeamName)
	assert.InDelta(t, 35, rows[1].AvgAge, 0.001)
}

func TestFindOne_NotFoundAndNonUnique(t *testing.T) {
	db, _ := setupMembers(t)
	ctx := context.Background()

	one, err := query.FindOne[model.Member](ctx, db, query.Query{
		From:  "member",
		Where: query.EqText("member.username", "member3"),
	})
	require.NoError(t, err)
	assert.Equal(t, 30, one.Age)

	_, err = query.FindOne[model.Member](ctx, db, query.Query{
		From:  "member",
		Where: query.EqText("member.username", "nobody"),
	})
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	_, err = query.FindOne[model.Member](ctx, db, query.Query{
		From:  "member",
		Where: query.Gte("member.age", 20),
	})
	assert.True(t, errors.Is(err, query.ErrNonUniqueResult))
}

func TestCount_IgnoresPaging(t *testing.T) {
	db, _ := setupMembers(t)

	total, err := query.Count(context.Background(), db, memberTeamQuery(query.EqText("team.name", "teamA")).Paged(1, 1))

	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestSubquery_ComparesAgainstSubquery(t *testing.T) {
	db, _ := setupMembers(t)
	ctx := context.Background()

	maxAge := query.Subquery(db, query.Query{
		From:   "member",
		As:     "member_sub",
		Select: []query.Field{query.Max("member_sub.age")},
	})
	oldest, err := query.Find[model.Member](ctx, db, query.Query{
		From:  "member",
		Where: query.Eq("member.age", maxAge),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"member4"}, memberNames(oldest))

	ages := query.Subquery(db, query.Query{
		From:   "member",
		As:     "member_sub",
		Select: []query.Field{query.Col("member_sub.age")},
		Where:  query.Gt("member_sub.age", 10),
	})
	older, err := query.Find[model.Member](ctx, db, query.Query{
		From:    "member",
		Where:   query.InSub("member.age", ages),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"member2", "member3", "member4"}, memberNames(older))
}

func TestFind_ProjectionExpressions(t *testing.T) {
	db, _ := setupMembers(t)

	type labelled struct {
		Label   string `gorm:"column:label"`
		Bracket string `gorm:"column:bracket"`
		MaxAge  int    `gorm:"column:max_age"`
	}

	maxAge := query.Subquery(db, query.Query{
		From:   "member",
		As:     "member_sub",
		Select: []query.Field{query.Max("member_sub.age")},
	})

	rows, err := query.Find[labelled](context.Background(), db, query.Query{
		From: "member",
		Select: []query.Field{
			query.Concat(query.Col("member.username"), query.Lit("_"), query.Col("member.age")).As("label"),
			query.Case().
				When(query.Between("member.age", 0, 20), "young").
				When(query.Absent, "ignored").
				Else("old").As("bracket"),
			query.Scalar(maxAge).As("max_age"),
		},
		OrderBy: []query.Order{query.Asc("member.id")},
	})

	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, labelled{Label: "member1_10", Bracket: "young", MaxAge: 40}, rows[0])
	assert.Equal(t, labelled{Label: "member3_30", Bracket: "old", MaxAge: 40}, rows[2])
}

func TestUpdate_AffectsOnlyMatchingRows(t *testing.T) {
	// Given
	db, _ := setupMembers(t)
	ctx := context.Background()

	// When: rename everyone younger than 28
	affected, err := query.Update(ctx, db, &model.Member{}, query.Lt("age", 28), query.Assignments{
		"username": "비회원",
	})

	// Then: exactly two rows, and a re-query sees the new values
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	rows, err := query.Find[memberRow](ctx, db, memberTeamQuery(query.Absent))
	require.NoError(t, err)
	assert.Equal(t, []string{"비회원", "비회원", "member3", "member4"}, usernames(rows))
}

func TestUpdate_IncrementWithoutFilter(t *testing.T) {
	db, _ := setupMembers(t)
	ctx := context.Background()

	affected, err := query.Update(ctx, db, &model.Member{}, query.Absent, query.Assignments{
		"age": query.Increment("age", 1),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), affected)

	rows, err := query.Find[memberRow](ctx, db, memberTeamQuery(query.Absent))
	require.NoError(t, err)
	ages := []int{rows[0].Age, rows[1].Age, rows[2].Age, rows[3].Age}
	assert.Equal(t, []int{11, 21, 31, 41}, ages)
}

func TestUpdate_NoMatchAndEmptyAssignments(t *testing.T) {
	db, _ := setupMembers(t)
	ctx := context.Background()

	affected, err := query.Update(ctx, db, &model.Member{}, query.Gt("age", 100), query.Assignments{"age": 1})
	require.NoError(t, err)
	assert.Equal(t, int64(0), affected)

	_, err = query.Update(ctx, db, &model.Member{}, query.Absent, query.Assignments{})
	assert.Error(t, err)
}

func TestDelete_RemovesMatchingRows(t *testing.T) {
	db, _ := setupMembers(t)
	ctx := context.Background()

	affected, err := query.Delete(ctx, db, &model.Member{}, query.Gt("age", 18))
	require.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	rows, err := query.Find[memberRow](ctx, db, memberTeamQuery(query.Absent))
	require.NoError(t, err)
	assert.Equal(t, []string{"member1"}, usernames(rows))
}

func TestFind_FunctionProjectionAndComparison(t *testing.T) {
	db, _ := setupMembers(t)
	ctx := context.Background()

	type replaced struct {
		Label string `gorm:"column:label"`
	}

	// REPLACE(username, 'member', 'M'), filtered on username = LOWER(username)
	rows, err := query.Find[replaced](ctx, db, query.Query{
		From:    "member",
		Select:  []query.Field{query.Func("replace", query.Col("member.username"), "member", "M").As("label")},
		Where:   query.Compare(query.Col("member.username"), query.OpEq, query.Func("lower", query.Col("member.username"))),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
	require.NoError(t, err)
	assert.Equal(t, []replaced{{"M1"}, {"M2"}, {"M3"}, {"M4"}}, rows)

	// a function on the left-hand side
	upper, err := query.Find[memberRow](ctx, db, memberTeamQuery(
		query.Compare(query.Func("upper", query.Col("member.username")), query.OpEq, "MEMBER2"),
	))
	require.NoError(t, err)
	assert.Equal(t, []string{"member2"}, usernames(upper))
}
