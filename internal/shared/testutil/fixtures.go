package testutil

import (
	"testing"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"gorm.io/gorm"
)

// MemberFixture is the standard search data set:
//
//	teamA: member1(10), member2(20)
//	teamB: member3(30), member4(40)
type MemberFixture struct {
	TeamA   *model.Team
	TeamB   *model.Team
	Members []*model.Member
}

// SeedMembers inserts the standard teams and members
func SeedMembers(t *testing.T, db *gorm.DB) *MemberFixture {
	t.Helper()

	teamA := SeedTeam(t, db, "teamA")
	teamB := SeedTeam(t, db, "teamB")

	fixture := &MemberFixture{TeamA: teamA, TeamB: teamB}
	for _, m := range []*model.Member{
		model.NewMember("member1", 10, teamA),
		model.NewMember("member2", 20, teamA),
		model.NewMember("member3", 30, teamB),
		model.NewMember("member4", 40, teamB),
	} {
		fixture.Members = append(fixture.Members, SeedMember(t, db, m))
	}
	return fixture
}

// SeedTeam inserts a team
func SeedTeam(t *testing.T, db *gorm.DB, name string) *model.Team {
	t.Helper()

	team := model.NewTeam(name)
	if err := db.Create(team).Error; err != nil {
		t.Fatalf("Failed to seed team %s: %v", name, err)
	}
	return team
}

// SeedMember inserts a member without touching its team
func SeedMember(t *testing.T, db *gorm.DB, member *model.Member) *model.Member {
	t.Helper()

	if err := db.Omit("Team").Create(member).Error; err != nil {
		t.Fatalf("Failed to seed member %s: %v", member.Name(), err)
	}
	return member
}
