package team

import (
	"net/http"

	sharedError "github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/error"
)

const (
	teamAlreadyExists = "TEAM_ALREADY_EXISTS" // errInfo
)

var (
	ErrTeamAlreadyExists = sharedError.NewDomainError(teamAlreadyExists)
)

func init() {
	sharedError.RegisterDomainErrorResponse(teamAlreadyExists, sharedError.ErrorResponse{
		Status:  http.StatusConflict,
		Code:    "TEAM-002",
		Message: "이미 존재하는 팀 이름입니다.",
	})
}
