package member

import (
	"context"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/query"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	memberTable = "member"
	teamTable   = "team"
)

// sortable maps API sort properties to columns
var sortable = map[string]string{
	"id":       "member.id",
	"username": "member.username",
	"age":      "member.age",
	"teamName": "team.name",
}

type MemberRepository struct{}

func NewMemberRepository() *MemberRepository {
	return &MemberRepository{}
}

// member LEFT JOIN team, shared by every search
func teamJoin(extra ...query.Condition) query.Join {
	return query.Join{
		Type:  query.LeftJoin,
		Table: teamTable,
		On:    query.EqField("team.id", "member.team_id").And(extra...),
	}
}

func memberTeamProjection() []query.Field {
	return []query.Field{
		query.Col("member.id").As("member_id"),
		query.Col("member.username").As("username"),
		query.Col("member.age").As("age"),
		query.Col("team.id").As("team_id"),
		query.Col("team.name").As("team_name"),
	}
}

func usernameEq(username string) query.Condition {
	return query.EqText("member.username", username)
}

func teamNameEq(teamName string) query.Condition {
	return query.EqText("team.name", teamName)
}

func ageGoe(age *int) query.Condition {
	return query.Gte("member.age", age)
}

func ageLoe(age *int) query.Condition {
	return query.Lte("member.age", age)
}

// searchWhere turns the criteria into one filter; unset fields drop out
func searchWhere(cond SearchCondition) query.Condition {
	return query.And(
		usernameEq(cond.Username),
		teamNameEq(cond.TeamName),
		ageGoe(cond.AgeGoe),
		ageLoe(cond.AgeLoe),
	)
}

func (r *MemberRepository) Create(ctx context.Context, db *gorm.DB, member *model.Member) error {
	return db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

// FindByID loads the member together with its team (association join)
func (r *MemberRepository) FindByID(ctx context.Context, db *gorm.DB, id uint32) (*model.Member, error) {
	var member model.Member
	err := db.WithContext(ctx).
		Joins("Team").
		Where(query.Eq("member.id", id)).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *MemberRepository) FindAll(ctx context.Context, db *gorm.DB) ([]model.Member, error) {
	return query.Find[model.Member](ctx, db, query.Query{
		From:    memberTable,
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

func (r *MemberRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) ([]model.Member, error) {
	return query.Find[model.Member](ctx, db, query.Query{
		From:    memberTable,
		Where:   usernameEq(username),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// Search returns the member/team projection matching cond
func (r *MemberRepository) Search(ctx context.Context, db *gorm.DB, cond SearchCondition) ([]MemberTeamDto, error) {
	return query.Find[MemberTeamDto](ctx, db, query.Query{
		From:    memberTable,
		Joins:   []query.Join{teamJoin()},
		Select:  memberTeamProjection(),
		Where:   searchWhere(cond),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// SearchMembers applies the same filter but loads entities
func (r *MemberRepository) SearchMembers(ctx context.Context, db *gorm.DB, cond SearchCondition) ([]model.Member, error) {
	return query.Find[model.Member](ctx, db, query.Query{
		From:    memberTable,
		Joins:   []query.Join{teamJoin()},
		Select:  []query.Field{query.AllOf(memberTable)},
		Where:   searchWhere(cond),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// SearchPage returns one window of Search plus the total match count.
// member.id is always the last sort key so windows are stable.
func (r *MemberRepository) SearchPage(ctx context.Context, db *gorm.DB, cond SearchCondition, offset, limit int, keys []SortKey) (*query.Page[MemberTeamDto], error) {
	orders, err := toOrders(keys)
	if err != nil {
		return nil, err
	}

	q := query.Query{
		From:    memberTable,
		Joins:   []query.Join{teamJoin()},
		Select:  memberTeamProjection(),
		Where:   searchWhere(cond),
		OrderBy: orders,
	}
	return query.FindPage[MemberTeamDto](ctx, db, q.Paged(offset, limit))
}

func toOrders(keys []SortKey) ([]query.Order, error) {
	orders := make([]query.Order, 0, len(keys)+1)
	byID := false
	for _, key := range keys {
		col, ok := sortable[key.Property]
		if !ok {
			return nil, ErrInvalidSort
		}
		byID = byID || col == "member.id"

		order := query.Asc(col)
		if key.Desc {
			order = query.Desc(col)
		}
		switch {
		case key.NullsFirst:
			order = order.NullsFirst()
		case key.NullsLast:
			order = order.NullsLast()
		}
		orders = append(orders, order)
	}
	if !byID {
		orders = append(orders, query.Asc("member.id"))
	}
	return orders, nil
}

// AgeStatistics aggregates over every member
func (r *MemberRepository) AgeStatistics(ctx context.Context, db *gorm.DB) (*AgeStats, error) {
	return query.FindOne[AgeStats](ctx, db, query.Query{
		From: memberTable,
		Select: []query.Field{
			query.CountAll().As("cnt"),
			query.Coalesce(query.Sum("member.age"), 0).As("total_age"),
			query.Coalesce(query.Avg("member.age"), 0).As("avg_age"),
			query.Coalesce(query.Max("member.age"), 0).As("max_age"),
			query.Coalesce(query.Min("member.age"), 0).As("min_age"),
		},
	})
}

// TeamAverageAges groups members by team name; members without a team are skipped
func (r *MemberRepository) TeamAverageAges(ctx context.Context, db *gorm.DB) ([]TeamAgeStat, error) {
	return query.Find[TeamAgeStat](ctx, db, query.Query{
		From: memberTable,
		Joins: []query.Join{{
			Type:  query.InnerJoin,
			Table: teamTable,
			On:    query.EqField("team.id", "member.team_id"),
		}},
		Select: []query.Field{
			query.Col("team.name").As("team_name"),
			query.Avg("member.age").As("avg_age"),
		},
		GroupBy: []string{"team.name"},
		OrderBy: []query.Order{query.Asc("team.name")},
	})
}

// ageSubquery selects from member under a separate alias
func ageSubquery(db *gorm.DB, field query.Field, where query.Condition) *gorm.DB {
	return query.Subquery(db, query.Query{
		From:   memberTable,
		As:     "member_sub",
		Select: []query.Field{field},
		Where:  where,
	})
}

// FindOldest returns every member whose age equals the maximum age
func (r *MemberRepository) FindOldest(ctx context.Context, db *gorm.DB) ([]model.Member, error) {
	maxAge := ageSubquery(db.WithContext(ctx), query.Max("member_sub.age"), query.Absent)
	return query.Find[model.Member](ctx, db, query.Query{
		From:    memberTable,
		Where:   query.Eq("member.age", maxAge),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// FindAtLeastAverageAge returns members at or above the average age
func (r *MemberRepository) FindAtLeastAverageAge(ctx context.Context, db *gorm.DB) ([]model.Member, error) {
	avgAge := ageSubquery(db.WithContext(ctx), query.Avg("member_sub.age"), query.Absent)
	return query.Find[model.Member](ctx, db, query.Query{
		From:    memberTable,
		Where:   query.Gte("member.age", avgAge),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// FindAgeIn returns members whose age is among the ages above minAge
func (r *MemberRepository) FindAgeIn(ctx context.Context, db *gorm.DB, minAge int) ([]model.Member, error) {
	ages := ageSubquery(db.WithContext(ctx), query.Col("member_sub.age"), query.Gt("member_sub.age", minAge))
	return query.Find[model.Member](ctx, db, query.Query{
		From:    memberTable,
		Where:   query.InSub("member.age", ages),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// FindWithTeamNamedAsMember is a theta join: members whose username equals some team name
func (r *MemberRepository) FindWithTeamNamedAsMember(ctx context.Context, db *gorm.DB) ([]model.Member, error) {
	return query.Find[model.Member](ctx, db, query.Query{
		From:    memberTable,
		Joins:   []query.Join{{Type: query.CrossJoin, Table: teamTable}},
		Select:  []query.Field{query.AllOf(memberTable)},
		Where:   query.EqField("member.username", "team.name"),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// FindWithTeamFiltered keeps every member but only joins teams named teamName
func (r *MemberRepository) FindWithTeamFiltered(ctx context.Context, db *gorm.DB, teamName string) ([]MemberTeamDto, error) {
	return query.Find[MemberTeamDto](ctx, db, query.Query{
		From:    memberTable,
		Joins:   []query.Join{teamJoin(teamNameEq(teamName))},
		Select:  memberTeamProjection(),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// AgeBrackets labels each member with an age range
func (r *MemberRepository) AgeBrackets(ctx context.Context, db *gorm.DB) ([]AgeBracket, error) {
	bracket := query.Case().
		When(query.Between("member.age", 0, 20), "0~20살").
		When(query.Between("member.age", 21, 30), "21~30살").
		Else("기타")

	return query.Find[AgeBracket](ctx, db, query.Query{
		From: memberTable,
		Select: []query.Field{
			query.Col("member.username").As("username"),
			bracket.As("bracket"),
		},
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// UsernameAges renders "username_age" for members called username
func (r *MemberRepository) UsernameAges(ctx context.Context, db *gorm.DB, username string) ([]UsernameAge, error) {
	label := query.Concat(query.Col("member.username"), query.Lit("_"), query.Col("member.age"))

	return query.Find[UsernameAge](ctx, db, query.Query{
		From:    memberTable,
		Select:  []query.Field{label.As("label")},
		Where:   usernameEq(username),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// ShortUsernames abbreviates "member" to "M" in every username
func (r *MemberRepository) ShortUsernames(ctx context.Context, db *gorm.DB) ([]ShortUsername, error) {
	short := query.Func("replace", query.Col("member.username"), "member", "M")

	return query.Find[ShortUsername](ctx, db, query.Query{
		From:    memberTable,
		Select:  []query.Field{short.As("username")},
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// FindLowercaseUsernames loads members whose username is already lower case
func (r *MemberRepository) FindLowercaseUsernames(ctx context.Context, db *gorm.DB) ([]model.Member, error) {
	username := query.Col("member.username")

	return query.Find[model.Member](ctx, db, query.Query{
		From:    memberTable,
		Where:   query.Compare(username, query.OpEq, query.Func("lower", username)),
		OrderBy: []query.Order{query.Asc("member.id")},
	})
}

// Bulk mutations use bare column names: UPDATE/DELETE target a single table.

// RenameYoungerThan sets username on every member younger than age
func (r *MemberRepository) RenameYoungerThan(ctx context.Context, db *gorm.DB, age int, username string, accountID uint32) (int64, error) {
	return query.Update(ctx, db, &model.Member{}, query.Lt("age", age), query.Assignments{
		"username":   username,
		"updated_by": int64(accountID),
	})
}

// AddAge adds delta to every member's age
func (r *MemberRepository) AddAge(ctx context.Context, db *gorm.DB, delta int, accountID uint32) (int64, error) {
	return query.Update(ctx, db, &model.Member{}, query.Absent, query.Assignments{
		"age":        query.Increment("age", delta),
		"updated_by": int64(accountID),
	})
}

// DeleteByAge removes every member older than age
func (r *MemberRepository) DeleteByAge(ctx context.Context, db *gorm.DB, age int) (int64, error) {
	return query.Delete(ctx, db, &model.Member{}, query.Gt("age", age))
}
