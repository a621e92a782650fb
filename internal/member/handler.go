package member

import (
	"net/http"

	sharedContext "github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/context"
	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/handler"
	"github.com/gin-gonic/gin"
)

type MemberHandler struct {
	memberService *MemberService
}

func NewMemberHandler(memberService *MemberService) *MemberHandler {
	return &MemberHandler{
		memberService: memberService,
	}
}

// Search handles GET /api/v1/members?username=&teamName=&ageGoe=&ageLoe=
func (h *MemberHandler) Search(c *gin.Context) {
	var cond SearchCondition
	if !handler.BindQuery(c, &cond) {
		return
	}

	response, err := h.memberService.Search(c.Request.Context(), cond)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// SearchPage handles GET /api/v2/members with offset, limit and sort
func (h *MemberHandler) SearchPage(c *gin.Context) {
	var request SearchPageRequest
	if !handler.BindQuery(c, &request) {
		return
	}

	response, err := h.memberService.SearchPage(c.Request.Context(), request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) GetMember(c *gin.Context) {
	var uri MemberIDUri
	if !handler.BindURI(c, &uri) {
		return
	}

	response, err := h.memberService.GetMember(c.Request.Context(), uri.ID)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Stats(c *gin.Context) {
	response, err := h.memberService.Stats(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Oldest(c *gin.Context) {
	response, err := h.memberService.Oldest(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) AtLeastAverageAge(c *gin.Context) {
	response, err := h.memberService.AtLeastAverageAge(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) AgeBrackets(c *gin.Context) {
	response, err := h.memberService.AgeBrackets(c.Request.Context())
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) Create(c *gin.Context) {
	accountID, ok := sharedContext.RequireAccountID(c)
	if !ok {
		return
	}

	var request CreateMemberRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.Create(c.Request.Context(), accountID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *MemberHandler) BulkRename(c *gin.Context) {
	accountID, ok := sharedContext.RequireAccountID(c)
	if !ok {
		return
	}

	var request BulkRenameRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.RenameYoungerThan(c.Request.Context(), accountID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) BulkAddAge(c *gin.Context) {
	accountID, ok := sharedContext.RequireAccountID(c)
	if !ok {
		return
	}

	var request BulkAddAgeRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.AddAge(c.Request.Context(), accountID, &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *MemberHandler) BulkDelete(c *gin.Context) {
	var request BulkDeleteRequest
	if !handler.BindJSON(c, &request) {
		return
	}

	response, err := h.memberService.DeleteByAge(c.Request.Context(), &request)
	if err != nil {
		handler.RespondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
