package team

import (
	"net/http"

	sharedContext "github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type TeamHandler struct {
	teamService *TeamService
}

func NewTeamHandler(teamService *TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

func (h *TeamHandler) Create(c *gin.Context) {
	accountID, ok := sharedContext.RequireAccountID(c)
	if !ok {
		return
	}

	var request CreateTeamRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.teamService.Create(c.Request.Context(), accountID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *TeamHandler) FindAll(c *gin.Context) {
	response, err := h.teamService.FindAll(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
