package team

import "github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

type TeamResponse struct {
	ID   uint32 `json:"id"`
	Name string `json:"name"`
}

func NewTeamResponse(t *model.Team) TeamResponse {
	return TeamResponse{ID: t.ID, Name: t.Name}
}
