package team

import (
	"context"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/query"

	"gorm.io/gorm"
)

type TeamRepository struct{}

func NewTeamRepository() *TeamRepository {
	return &TeamRepository{}
}

func (r *TeamRepository) IsExist(ctx context.Context, db *gorm.DB, name string) (bool, error) {
	count, err := query.Count(ctx, db, query.Query{
		From:  "team",
		Where: query.EqText("team.name", name),
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *TeamRepository) Create(ctx context.Context, db *gorm.DB, team *model.Team) error {
	return db.WithContext(ctx).Create(team).Error
}

// FindByName returns gorm.ErrRecordNotFound when no team has that name
func (r *TeamRepository) FindByName(ctx context.Context, db *gorm.DB, name string) (*model.Team, error) {
	return query.FindOne[model.Team](ctx, db, query.Query{
		From:  "team",
		Where: query.EqText("team.name", name),
	})
}

func (r *TeamRepository) FindAll(ctx context.Context, db *gorm.DB) ([]model.Team, error) {
	return query.Find[model.Team](ctx, db, query.Query{
		From:    "team",
		OrderBy: []query.Order{query.Asc("team.name")},
	})
}
