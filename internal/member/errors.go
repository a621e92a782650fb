package member

import (
	"net/http"

	sharedError "github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/error"
)

const (
	memberNotFound  = "MEMBER_NOT_FOUND"  // errInfo
	invalidAgeRange = "INVALID_AGE_RANGE" // errInfo
	invalidSort     = "INVALID_SORT"      // errInfo
	teamNotFound    = "MEMBER_TEAM_NOT_FOUND"
)

var (
	ErrMemberNotFound  = sharedError.NewDomainError(memberNotFound)
	ErrInvalidAgeRange = sharedError.NewDomainError(invalidAgeRange)
	ErrInvalidSort     = sharedError.NewDomainError(invalidSort)
	ErrTeamNotFound    = sharedError.NewDomainError(teamNotFound)
)

func init() {
	sharedError.RegisterDomainErrorResponse(memberNotFound, sharedError.ErrorResponse{
		Status:  http.StatusNotFound,
		Code:    "MEMBER-001",
		Message: "회원 정보를 찾을 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(teamNotFound, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-002",
		Message: "존재하지 않는 팀입니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidAgeRange, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-003",
		Message: "최소 나이는 최대 나이보다 클 수 없습니다.",
	})

	sharedError.RegisterDomainErrorResponse(invalidSort, sharedError.ErrorResponse{
		Status:  http.StatusBadRequest,
		Code:    "MEMBER-004",
		Message: "지원하지 않는 정렬 기준입니다.",
	})
}
