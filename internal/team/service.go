package team

import (
	"context"
	"fmt"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/logger"

	"gorm.io/gorm"
)

type TeamService struct {
	db             *gorm.DB
	teamRepository *TeamRepository
}

func NewTeamService(db *gorm.DB, teamRepository *TeamRepository) *TeamService {
	return &TeamService{
		db:             db,
		teamRepository: teamRepository,
	}
}

func (s *TeamService) Create(ctx context.Context, accountID uint32, request *CreateTeamRequest) (*TeamResponse, error) {
	log := logger.FromContext(ctx)
	var response TeamResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		exists, err := s.teamRepository.IsExist(ctx, tx, request.Name)
		if err != nil {
			return fmt.Errorf("check team existence: %w", err)
		}
		if exists {
			log.Warn("Team already exists", "name", request.Name)
			return fmt.Errorf("team name=%s %w", request.Name, ErrTeamAlreadyExists)
		}

		team := model.NewTeam(request.Name)
		team.CreatedByAccount(accountID)
		if err := s.teamRepository.Create(ctx, tx, team); err != nil {
			return fmt.Errorf("create team: %w", err)
		}

		log.Info("Team created", "team_id", team.ID, "name", team.Name)
		response = NewTeamResponse(team)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

func (s *TeamService) FindAll(ctx context.Context) ([]TeamResponse, error) {
	var response []TeamResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		teams, err := s.teamRepository.FindAll(ctx, tx)
		if err != nil {
			return fmt.Errorf("팀 목록 조회 실패: %w", err)
		}

		response = make([]TeamResponse, 0, len(teams))
		for i := range teams {
			response = append(response, NewTeamResponse(&teams[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}
