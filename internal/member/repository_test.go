package member_test

import (
	"context"
	"errors"
	"testing"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/member"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(v int) *int { return &v }

func setupRepository(t *testing.T) (*gorm.DB, *member.MemberRepository, *testutil.MemberFixture) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})
	return db, member.NewMemberRepository(), testutil.SeedMembers(t, db)
}

func dtoNames(rows []member.MemberTeamDto) []string {
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

func entityNames(members []model.Member) []string {
	names := make([]string, 0, len(members))
	for i := range members {
		names = append(names, members[i].Name())
	}
	return names
}

func TestSearch_ByTeamName(t *testing.T) {
	// Given
	db, repo, fixture := setupRepository(t)

	// When
	rows, err := repo.Search(context.Background(), db, member.SearchCondition{TeamName: "teamA"})

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"member1", "member2"}, dtoNames(rows))
	require.NotNil(t, rows[0].TeamID)
	assert.Equal(t, fixture.TeamA.ID, *rows[0].TeamID)
	assert.Equal(t, "teamA", *rows[0].TeamName)
}

func TestSearch_ByMinimumAge(t *testing.T) {
	db, repo, _ := setupRepository(t)

	rows, err := repo.Search(context.Background(), db, member.SearchCondition{AgeGoe: intPtr(25)})

	require.NoError(t, err)
	assert.Equal(t, []string{"member3", "member4"}, dtoNames(rows))
}

func TestSearch_AllCriteria(t *testing.T) {
	db, repo, _ := setupRepository(t)

	rows, err := repo.Search(context.Background(), db, member.SearchCondition{
		Username: "member4",
		TeamName: "teamB",
		AgeGoe:   intPtr(35),
		AgeLoe:   intPtr(40),
	})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "member4", *rows[0].Username)
	assert.Equal(t, 40, rows[0].Age)
}

func TestSearch_EmptyConditionReturnsAll(t *testing.T) {
	db, repo, _ := setupRepository(t)

	rows, err := repo.Search(context.Background(), db, member.SearchCondition{Username: "   "})

	require.NoError(t, err)
	assert.Equal(t, []string{"member1", "member2", "member3", "member4"}, dtoNames(rows))
}

func TestSearch_MemberWithoutTeamIsKept(t *testing.T) {
	db, repo, _ := setupRepository(t)
	testutil.SeedMember(t, db, model.NewMember("loner", 50, nil))

	rows, err := repo.Search(context.Background(), db, member.SearchCondition{AgeGoe: intPtr(45)})

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].TeamID)
	assert.Nil(t, rows[0].TeamName)
}

func TestSearchMembers_LoadsEntities(t *testing.T) {
	db, repo, fixture := setupRepository(t)

	members, err := repo.SearchMembers(context.Background(), db, member.SearchCondition{TeamName: "teamB"})

	require.NoError(t, err)
	assert.Equal(t, []string{"member3", "member4"}, entityNames(members))
	require.NotNil(t, members[0].TeamID)
	assert.Equal(t, fixture.TeamB.ID, *members[0].TeamID)
}

func TestSearchPage_OffsetAndLimit(t *testing.T) {
	db, repo, _ := setupRepository(t)

	page, err := repo.SearchPage(context.Background(), db, member.SearchCondition{}, 1, 2, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
	assert.Equal(t, []string{"member2", "member3"}, dtoNames(page.Items))
}

func TestSearchPage_SortByTeamThenAgeDesc(t *testing.T) {
	db, repo, _ := setupRepository(t)

	keys := []member.SortKey{
		{Property: "teamName", Desc: true},
		{Property: "age", Desc: true},
	}
	page, err := repo.SearchPage(context.Background(), db, member.SearchCondition{}, 0, 10, keys)

	require.NoError(t, err)
	assert.Equal(t, []string{"member4", "member3", "member2", "member1"}, dtoNames(page.Items))
}

func TestSearchPage_NullUsernamesLast(t *testing.T) {
	db, repo, _ := setupRepository(t)
	require.NoError(t, db.Omit("Team").Create(&model.Member{Age: 100}).Error)
	testutil.SeedMember(t, db, model.NewMember("member5", 100, nil))
	testutil.SeedMember(t, db, model.NewMember("member6", 100, nil))

	keys := []member.SortKey{
		{Property: "age", Desc: true},
		{Property: "username", NullsLast: true},
	}
	page, err := repo.SearchPage(context.Background(), db, member.SearchCondition{AgeGoe: intPtr(100)}, 0, 10, keys)

	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, []string{"member5", "member6", "<nil>"}, dtoNames(page.Items))
}

func TestSearchPage_UnknownSortProperty(t *testing.T) {
	db, repo, _ := setupRepository(t)

	_, err := repo.SearchPage(context.Background(), db, member.SearchCondition{}, 0, 10, []member.SortKey{{Property: "password"}})

	assert.True(t, errors.Is(err, member.ErrInvalidSort))
}

func TestFindByID_FetchesTeam(t *testing.T) {
	db, repo, fixture := setupRepository(t)

	found, err := repo.FindByID(context.Background(), db, fixture.Members[2].ID)

	require.NoError(t, err)
	assert.Equal(t, "member3", found.Name())
	require.NotNil(t, found.Team)
	assert.Equal(t, "teamB", found.Team.Name)
}

func TestFindByID_NotFound(t *testing.T) {
	db, repo, _ := setupRepository(t)

	_, err := repo.FindByID(context.Background(), db, 9999)

	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestFindAllAndFindByUsername(t *testing.T) {
	db, repo, _ := setupRepository(t)
	ctx := context.Background()

	all, err := repo.FindAll(ctx, db)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	named, err := repo.FindByUsername(ctx, db, "member2")
	require.NoError(t, err)
	require.Len(t, named, 1)
	assert.Equal(t, 20, named[0].Age)
}

func TestAgeStatistics(t *testing.T) {
	db, repo, _ := setupRepository(t)

	stats, err := repo.AgeStatistics(context.Background(), db)

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Count)
	assert.Equal(t, int64(100), stats.Sum)
	assert.InDelta(t, 25, stats.Avg, 0.001)
	assert.Equal(t, 40, stats.Max)
	assert.Equal(t, 10, stats.Min)
}

func TestAgeStatistics_EmptyTable(t *testing.T) {
	db := testutil.SetupTestDB(t)
	t.Cleanup(func() {
		testutil.CleanupTestDB(t, db)
	})

	stats, err := member.NewMemberRepository().AgeStatistics(context.Background(), db)

	require.NoError(t, err)
	assert.Equal(t, member.AgeStats{}, *stats)
}

func TestTeamAverageAges(t *testing.T) {
	// Given: teamA(10, 20), teamB(30, 40)
	db, repo, _ := setupRepository(t)

	// When
	stats, err := repo.TeamAverageAges(context.Background(), db)

	// Then
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "teamA", stats[0].TeamName)
	assert.InDelta(t, 15, stats[0].AvgAge, 0.001)
	assert.Equal(t, "teamB", stats[1].TeamName)
	assert.InDelta(t, 35, stats[1].AvgAge, 0.001)
}

func TestSubqueries(t *testing.T) {
	db, repo, _ := setupRepository(t)
	ctx := context.Background()

	oldest, err := repo.FindOldest(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"member4"}, entityNames(oldest))

	aboveAverage, err := repo.FindAtLeastAverageAge(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"member3", "member4"}, entityNames(aboveAverage))

	agesIn, err := repo.FindAgeIn(ctx, db, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"member2", "member3", "member4"}, entityNames(agesIn))
}

func TestFindWithTeamNamedAsMember(t *testing.T) {
	db, repo, _ := setupRepository(t)
	testutil.SeedMember(t, db, model.NewMember("teamA", 0, nil))
	testutil.SeedMember(t, db, model.NewMember("teamB", 0, nil))
	testutil.SeedMember(t, db, model.NewMember("teamC", 0, nil))

	members, err := repo.FindWithTeamNamedAsMember(context.Background(), db)

	require.NoError(t, err)
	assert.Equal(t, []string{"teamA", "teamB"}, entityNames(members))
}

func TestFindWithTeamFiltered(t *testing.T) {
	db, repo, _ := setupRepository(t)

	rows, err := repo.FindWithTeamFiltered(context.Background(), db, "teamA")

	// every member is kept; only teamA is joined
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "teamA", *rows[0].TeamName)
	assert.Equal(t, "teamA", *rows[1].TeamName)
	assert.Nil(t, rows[2].TeamName)
	assert.Nil(t, rows[3].TeamName)
}

func TestAgeBracketsAndUsernameAges(t *testing.T) {
	db, repo, _ := setupRepository(t)
	ctx := context.Background()

	brackets, err := repo.AgeBrackets(ctx, db)
	require.NoError(t, err)
	require.Len(t, brackets, 4)
	assert.Equal(t, "0~20살", brackets[0].Bracket)
	assert.Equal(t, "0~20살", brackets[1].Bracket)
	assert.Equal(t, "21~30살", brackets[2].Bracket)
	assert.Equal(t, "기타", brackets[3].Bracket)

	labels, err := repo.UsernameAges(ctx, db, "member1")
	require.NoError(t, err)
	require.Len(t, labels, 1)
	assert.Equal(t, "member1_10", labels[0].Label)
}

func TestSQLFunctions_ReplaceAndLower(t *testing.T) {
	// Given: the standard set plus a capitalised username
	db, repo, _ := setupRepository(t)
	ctx := context.Background()
	testutil.SeedMember(t, db, model.NewMember("Member5", 50, nil))

	// When
	short, err := repo.ShortUsernames(ctx, db)
	require.NoError(t, err)
	lower, err := repo.FindLowercaseUsernames(ctx, db)
	require.NoError(t, err)

	// Then: REPLACE is case sensitive, so Member5 is kept as is
	assert.Equal(t, []member.ShortUsername{{"M1"}, {"M2"}, {"M3"}, {"M4"}, {"Member5"}}, short)
	assert.Equal(t, []string{"member1", "member2", "member3", "member4"}, entityNames(lower))
}

func TestBulkRename_ReQuerySeesNewValues(t *testing.T) {
	// Given
	db, repo, _ := setupRepository(t)
	ctx := context.Background()

	// When: rename everyone younger than 28
	affected, err := repo.RenameYoungerThan(ctx, db, 28, "비회원", 7)

	// Then
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)

	all, err := repo.FindAll(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []string{"비회원", "비회원", "member3", "member4"}, entityNames(all))
	require.NotNil(t, all[0].UpdatedBy)
	assert.Equal(t, int64(7), *all[0].UpdatedBy)
	assert.Nil(t, all[2].UpdatedBy)
}

func TestBulkAddAgeAndDelete(t *testing.T) {
	db, repo, _ := setupRepository(t)
	ctx := context.Background()

	affected, err := repo.AddAge(ctx, db, -1, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), affected)

	deleted, err := repo.DeleteByAge(ctx, db, 18)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	remaining, err := repo.FindAll(ctx, db)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, 9, remaining[0].Age)

	none, err := repo.DeleteByAge(ctx, db, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(0), none)
}
