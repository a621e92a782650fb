package member

import (
	"context"
	"errors"
	"fmt"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/config"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/database"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/logger"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/team"

	"gorm.io/gorm"
)

type MemberService struct {
	db               *gorm.DB
	memberRepository *MemberRepository
	teamRepository   *team.TeamRepository
	searchConfig     config.SearchConfig
}

func NewMemberService(db *gorm.DB, memberRepository *MemberRepository, teamRepository *team.TeamRepository, searchConfig config.SearchConfig) *MemberService {
	return &MemberService{
		db:               db,
		memberRepository: memberRepository,
		teamRepository:   teamRepository,
		searchConfig:     searchConfig,
	}
}

// Search validates cond and returns every matching member. No match is an empty slice.
func (s *MemberService) Search(ctx context.Context, cond SearchCondition) ([]MemberTeamDto, error) {
	if err := cond.Validate(); err != nil {
		return nil, fmt.Errorf("ageGoe=%v ageLoe=%v %w", deref(cond.AgeGoe), deref(cond.AgeLoe), err)
	}

	var result []MemberTeamDto
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		rows, err := s.memberRepository.Search(ctx, tx, cond)
		if err != nil {
			return fmt.Errorf("회원 검색 실패: %w", err)
		}
		result = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Debug("member search",
		"username", cond.Username,
		"team_name", cond.TeamName,
		"rows", len(result),
	)
	return result, nil
}

// SearchPage is Search with sorting and an offset/limit window
func (s *MemberService) SearchPage(ctx context.Context, request SearchPageRequest) (*PageResponse, error) {
	if err := request.SearchCondition.Validate(); err != nil {
		return nil, fmt.Errorf("ageGoe=%v ageLoe=%v %w", deref(request.AgeGoe), deref(request.AgeLoe), err)
	}

	limit := request.Limit
	if limit <= 0 {
		limit = s.searchConfig.DefaultPageSize
	}
	if limit > s.searchConfig.MaxPageSize {
		limit = s.searchConfig.MaxPageSize
	}

	var response *PageResponse
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		page, err := s.memberRepository.SearchPage(ctx, tx, request.SearchCondition, request.Offset, limit, request.SortKeys())
		if err != nil {
			if errors.Is(err, ErrInvalidSort) {
				return fmt.Errorf("sort=%v %w", request.Sort, err)
			}
			return fmt.Errorf("회원 페이지 검색 실패: %w", err)
		}

		response = &PageResponse{
			Content: page.Items,
			Total:   page.Total,
			Offset:  page.Offset,
			Limit:   page.Limit,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *MemberService) GetMember(ctx context.Context, memberID uint32) (*MemberResponse, error) {
	var response MemberResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepository.FindByID(ctx, tx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("회원을 찾을 수 없습니다 memberID=%d %w", memberID, ErrMemberNotFound)
			}
			return fmt.Errorf("회원 조회 실패: %w", err)
		}

		response = NewMemberResponse(member)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Create stores a new member; teamName, when given, must name an existing team
func (s *MemberService) Create(ctx context.Context, accountID uint32, request *CreateMemberRequest) (*MemberResponse, error) {
	log := logger.FromContext(ctx)
	var response MemberResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var memberTeam *model.Team
		if request.TeamName != nil {
			found, err := s.teamRepository.FindByName(ctx, tx, *request.TeamName)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					log.Warn("Team not found", "team_name", *request.TeamName)
					return fmt.Errorf("teamName=%s %w", *request.TeamName, ErrTeamNotFound)
				}
				return fmt.Errorf("팀 조회 실패: %w", err)
			}
			memberTeam = found
		}

		member := model.NewMember(request.Username, request.Age, memberTeam)
		member.CreatedByAccount(accountID)
		if err := s.memberRepository.Create(ctx, tx, member); err != nil {
			return fmt.Errorf("create member: %w", err)
		}

		log.Info("Member created", "member_id", member.ID)
		response = NewMemberResponse(member)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

// Stats returns overall age aggregates and the average age per team
func (s *MemberService) Stats(ctx context.Context) (*StatsResponse, error) {
	var response StatsResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		ages, err := s.memberRepository.AgeStatistics(ctx, tx)
		if err != nil {
			return fmt.Errorf("나이 통계 조회 실패: %w", err)
		}

		teams, err := s.memberRepository.TeamAverageAges(ctx, tx)
		if err != nil {
			return fmt.Errorf("팀별 평균 나이 조회 실패: %w", err)
		}

		response = StatsResponse{Ages: *ages, Teams: teams}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &response, nil
}

func (s *MemberService) Oldest(ctx context.Context) ([]MemberResponse, error) {
	return s.findMembers(ctx, "최고령 회원 조회 실패", s.memberRepository.FindOldest)
}

func (s *MemberService) AtLeastAverageAge(ctx context.Context) ([]MemberResponse, error) {
	return s.findMembers(ctx, "평균 이상 회원 조회 실패", s.memberRepository.FindAtLeastAverageAge)
}

func (s *MemberService) findMembers(ctx context.Context, failure string, find func(context.Context, *gorm.DB) ([]model.Member, error)) ([]MemberResponse, error) {
	var response []MemberResponse

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		members, err := find(ctx, tx)
		if err != nil {
			return fmt.Errorf("%s: %w", failure, err)
		}

		response = make([]MemberResponse, 0, len(members))
		for i := range members {
			response = append(response, NewMemberResponse(&members[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return response, nil
}

func (s *MemberService) AgeBrackets(ctx context.Context) ([]AgeBracket, error) {
	var result []AgeBracket

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		rows, err := s.memberRepository.AgeBrackets(ctx, tx)
		if err != nil {
			return fmt.Errorf("나이 구간 조회 실패: %w", err)
		}
		result = rows
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// RenameYoungerThan renames every member younger than request.BelowAge
func (s *MemberService) RenameYoungerThan(ctx context.Context, accountID uint32, request *BulkRenameRequest) (*BulkResponse, error) {
	return s.bulk(ctx, "rename", func(tx *gorm.DB) (int64, error) {
		return s.memberRepository.RenameYoungerThan(ctx, tx, request.BelowAge, request.Username, accountID)
	})
}

// AddAge shifts every member's age by request.Delta
func (s *MemberService) AddAge(ctx context.Context, accountID uint32, request *BulkAddAgeRequest) (*BulkResponse, error) {
	return s.bulk(ctx, "add_age", func(tx *gorm.DB) (int64, error) {
		return s.memberRepository.AddAge(ctx, tx, request.Delta, accountID)
	})
}

// DeleteByAge removes every member older than request.AboveAge
func (s *MemberService) DeleteByAge(ctx context.Context, request *BulkDeleteRequest) (*BulkResponse, error) {
	return s.bulk(ctx, "delete", func(tx *gorm.DB) (int64, error) {
		return s.memberRepository.DeleteByAge(ctx, tx, *request.AboveAge)
	})
}

func (s *MemberService) bulk(ctx context.Context, operation string, fn func(*gorm.DB) (int64, error)) (*BulkResponse, error) {
	var affected int64

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		n, err := fn(tx)
		if err != nil {
			return fmt.Errorf("bulk %s: %w", operation, err)
		}
		affected = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Bulk member operation",
		"operation", operation,
		"affected", affected,
	)
	return &BulkResponse{Affected: affected}, nil
}

func deref(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}
