package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNonUniqueResult is returned by FindOne when more than one row matches.
var ErrNonUniqueResult = errors.New("query: non unique result")

// Page is one window of a result set plus the total number of matching rows.
type Page[T any] struct {
	Items  []T
	Total  int64
	Offset int
	Limit  int
}

// Find executes q and scans every row into T. No match yields an empty slice.
func Find[T any](ctx context.Context, db *gorm.DB, q Query) ([]T, error) {
	rows := make([]T, 0)
	if err := q.windowed(q.filtered(db.WithContext(ctx), true)).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query %s: %w", q.From, err)
	}

	logger.FromContext(ctx).Debug("query executed",
		"from", q.From,
		"where", q.Where.String(),
		"rows", len(rows),
	)
	return rows, nil
}

// FindOne expects at most one row: gorm.ErrRecordNotFound when nothing
// matches, ErrNonUniqueResult when several rows do.
func FindOne[T any](ctx context.Context, db *gorm.DB, q Query) (*T, error) {
	q.Limit = 2
	rows, err := Find[T](ctx, db, q)
	if err != nil {
		return nil, err
	}

	switch len(rows) {
	case 0:
		return nil, gorm.ErrRecordNotFound
	case 1:
		return &rows[0], nil
	}
	return nil, ErrNonUniqueResult
}

// Count returns the number of rows matching q, ignoring ordering and paging.
func Count(ctx context.Context, db *gorm.DB, q Query) (int64, error) {
	var total int64
	if err := q.filtered(db.WithContext(ctx), false).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count %s: %w", q.From, err)
	}
	return total, nil
}

// FindPage runs the windowed query and a separate count of the whole match.
// Not meant for grouped queries.
func FindPage[T any](ctx context.Context, db *gorm.DB, q Query) (*Page[T], error) {
	total, err := Count(ctx, db, q)
	if err != nil {
		return nil, err
	}

	items := make([]T, 0)
	if total > int64(q.Offset) {
		if items, err = Find[T](ctx, db, q); err != nil {
			return nil, err
		}
	}

	return &Page[T]{
		Items:  items,
		Total:  total,
		Offset: q.Offset,
		Limit:  q.Limit,
	}, nil
}

// Assignments maps column names to new values for a bulk update.
type Assignments map[string]any

// Increment expresses "field = field + delta".
func Increment(field string, delta any) clause.Expr {
	return gorm.Expr("? + ?", column(field), delta)
}

// Update applies set to every row of model's table matching where and returns
// the number of affected rows. An Absent filter updates the whole table.
//
// Rows already loaded by the caller are not refreshed; re-query after a bulk
// update instead of reusing earlier results.
func Update(ctx context.Context, db *gorm.DB, model any, where Condition, set Assignments) (int64, error) {
	if len(set) == 0 {
		return 0, errors.New("query: empty assignments")
	}

	tx := scopedMutation(db.WithContext(ctx).Model(model), where)
	result := tx.Updates(map[string]any(set))
	if result.Error != nil {
		return 0, fmt.Errorf("bulk update: %w", result.Error)
	}

	logger.FromContext(ctx).Debug("bulk update executed",
		"where", where.String(),
		"rows_affected", result.RowsAffected,
	)
	return result.RowsAffected, nil
}

// Delete removes every row of model's table matching where. An Absent filter
// empties the table. Same staleness rule as Update.
func Delete(ctx context.Context, db *gorm.DB, model any, where Condition) (int64, error) {
	tx := scopedMutation(db.WithContext(ctx), where)
	result := tx.Delete(model)
	if result.Error != nil {
		return 0, fmt.Errorf("bulk delete: %w", result.Error)
	}

	logger.FromContext(ctx).Debug("bulk delete executed",
		"where", where.String(),
		"rows_affected", result.RowsAffected,
	)
	return result.RowsAffected, nil
}

func scopedMutation(tx *gorm.DB, where Condition) *gorm.DB {
	if !where.IsPresent() {
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true})
	}
	return tx.Where(where)
}
