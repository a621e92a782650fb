package auth

import (
	"context"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/query"

	"gorm.io/gorm"
)

type AccountRepository struct{}

func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

func (r *AccountRepository) IsExist(ctx context.Context, db *gorm.DB, email string) (bool, error) {
	count, err := query.Count(ctx, db, query.Query{
		From:  "account",
		Where: query.EqText("account.email", email),
	})
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *AccountRepository) Create(ctx context.Context, db *gorm.DB, account *model.Account) error {
	return db.WithContext(ctx).Create(account).Error
}

func (r *AccountRepository) FindByEmail(ctx context.Context, db *gorm.DB, email string) (*model.Account, error) {
	return query.FindOne[model.Account](ctx, db, query.Query{
		From:  "account",
		Where: query.EqText("account.email", email),
	})
}
