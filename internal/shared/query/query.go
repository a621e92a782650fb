package query

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	LeftJoin  = clause.LeftJoin
	InnerJoin = clause.InnerJoin
	CrossJoin = clause.CrossJoin
)

// Join attaches a secondary table. On may mix the association key with extra
// filters ("join on filtering"); CROSS joins leave it Absent.
type Join struct {
	Type  clause.JoinType
	Table string
	As    string
	On    Condition
}

// Query describes one read against the store: source, joins, projection,
// filter, grouping, ordering and paging. A zero Limit means "no limit".
type Query struct {
	From    string
	As      string
	Joins   []Join
	Select  []Field
	Where   Condition
	GroupBy []string
	Having  Condition
	OrderBy []Order
	Offset  int
	Limit   int
}

// Paged returns a copy of q restricted to the given window.
func (q Query) Paged(offset, limit int) Query {
	q.Offset = offset
	q.Limit = limit
	return q
}

// Subquery builds q on db without executing it, for use with InSub, Gte and
// friends or as a projected Scalar field. Paging and ordering are ignored.
func Subquery(db *gorm.DB, q Query) *gorm.DB {
	q.Offset, q.Limit, q.OrderBy = 0, 0, nil
	return q.filtered(db.Session(&gorm.Session{NewDB: true}), true)
}

// filtered applies everything that narrows the row set (source, joins, filter,
// grouping) and, when project is set, the select list.
func (q Query) filtered(db *gorm.DB, project bool) *gorm.DB {
	if q.As != "" {
		mustField(q.As)
		db = db.Table(fmt.Sprintf("%s %s", q.From, q.As))
	} else {
		db = db.Table(q.From)
	}

	if len(q.Joins) > 0 {
		joins := make([]clause.Join, 0, len(q.Joins))
		for _, j := range q.Joins {
			join := clause.Join{Type: j.Type, Table: clause.Table{Name: j.Table, Alias: j.As}}
			if j.On.IsPresent() {
				join.ON = clause.Where{Exprs: []clause.Expression{j.On}}
			}
			joins = append(joins, join)
		}
		db = db.Clauses(clause.From{Joins: joins})
	}

	if project && len(q.Select) > 0 {
		db = db.Clauses(clause.Select{Expression: selection(q.Select)})
	}

	if q.Where.IsPresent() {
		db = db.Where(q.Where)
	}

	if len(q.GroupBy) > 0 {
		group := clause.GroupBy{Columns: make([]clause.Column, len(q.GroupBy))}
		for i, field := range q.GroupBy {
			group.Columns[i] = column(field)
		}
		if q.Having.IsPresent() {
			group.Having = []clause.Expression{q.Having}
		}
		db = db.Clauses(group)
	}

	return db
}

// windowed applies ordering and paging on top of filtered.
func (q Query) windowed(db *gorm.DB) *gorm.DB {
	if len(q.OrderBy) > 0 {
		db = db.Order(clause.OrderBy{Expression: ordering(q.OrderBy)})
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	return db
}
