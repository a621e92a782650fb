package database

import (
	"context"
	"errors"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/logger"

	"gorm.io/gorm"
)

// WithTransaction runs fn in one transaction bound to ctx. Returning an error
// rolls back; the error is passed through unchanged so domain errors still
// resolve in handlers.
//
//	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
//	    page, err := s.memberRepository.SearchPage(ctx, tx, cond, offset, limit, keys)
//	    ...
//	})
//
// Bulk updates inside fn are visible to later reads in the same fn; entities
// loaded before the update are not refreshed.
func WithTransaction(ctx context.Context, db *gorm.DB, fn func(*gorm.DB) error) error {
	if fn == nil {
		return errors.New("database: transaction function is nil")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	err := db.WithContext(ctx).Transaction(fn)
	if err != nil {
		logger.FromContext(ctx).Debug("transaction rolled back", "error", err)
	}
	return err
}
