package member

import (
	"strings"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/model"
)

// SearchCondition holds the optional search criteria. Blank text and nil
// numbers mean "no filter on this field".
type SearchCondition struct {
	Username string `form:"username"`
	TeamName string `form:"teamName"`
	AgeGoe   *int   `form:"ageGoe" binding:"omitempty,gte=0"`
	AgeLoe   *int   `form:"ageLoe" binding:"omitempty,gte=0"`
}

// Validate rejects an inverted age range before anything reaches the database
func (c SearchCondition) Validate() error {
	if c.AgeGoe != nil && c.AgeLoe != nil && *c.AgeGoe > *c.AgeLoe {
		return ErrInvalidAgeRange
	}
	return nil
}

// PageRequest selects a window of the search result.
// Sort entries look like "age,desc" or "username,asc,nullslast".
type PageRequest struct {
	Offset int      `form:"offset" binding:"omitempty,gte=0"`
	Limit  int      `form:"limit" binding:"omitempty,gte=1"`
	Sort   []string `form:"sort" binding:"omitempty,dive,sortspec"`
}

// SortKey is one parsed sort entry
type SortKey struct {
	Property   string
	Desc       bool
	NullsFirst bool
	NullsLast  bool
}

// SortKeys parses Sort. Format errors are caught by binding, so this only
// splits and normalizes.
func (p PageRequest) SortKeys() []SortKey {
	keys := make([]SortKey, 0, len(p.Sort))
	for _, raw := range p.Sort {
		parts := strings.Split(raw, ",")
		key := SortKey{Property: parts[0]}
		if len(parts) > 1 {
			key.Desc = strings.EqualFold(parts[1], "desc")
		}
		if len(parts) > 2 {
			key.NullsFirst = strings.EqualFold(parts[2], "nullsfirst")
			key.NullsLast = strings.EqualFold(parts[2], "nullslast")
		}
		keys = append(keys, key)
	}
	return keys
}

type SearchPageRequest struct {
	SearchCondition
	PageRequest
}

// MemberTeamDto is the flat member + team projection returned by searches
type MemberTeamDto struct {
	MemberID uint32  `json:"memberId" gorm:"column:member_id"`
	Username *string `json:"username" gorm:"column:username"`
	Age      int     `json:"age" gorm:"column:age"`
	TeamID   *uint32 `json:"teamId" gorm:"column:team_id"`
	TeamName *string `json:"teamName" gorm:"column:team_name"`
}

type PageResponse struct {
	Content []MemberTeamDto `json:"content"`
	Total   int64           `json:"total"`
	Offset  int             `json:"offset"`
	Limit   int             `json:"limit"`
}

type AgeStats struct {
	Count int64   `json:"count" gorm:"column:cnt"`
	Sum   int64   `json:"sum" gorm:"column:total_age"`
	Avg   float64 `json:"avg" gorm:"column:avg_age"`
	Max   int     `json:"max" gorm:"column:max_age"`
	Min   int     `json:"min" gorm:"column:min_age"`
}

type TeamAgeStat struct {
	TeamName string  `json:"teamName" gorm:"column:team_name"`
	AvgAge   float64 `json:"avgAge" gorm:"column:avg_age"`
}

type StatsResponse struct {
	Ages  AgeStats      `json:"ages"`
	Teams []TeamAgeStat `json:"teams"`
}

type AgeBracket struct {
	Username *string `json:"username" gorm:"column:username"`
	Bracket  string  `json:"bracket" gorm:"column:bracket"`
}

type UsernameAge struct {
	Label string `json:"label" gorm:"column:label"`
}

type ShortUsername struct {
	Username string `json:"username" gorm:"column:username"`
}

type MemberResponse struct {
	ID       uint32  `json:"id"`
	Username *string `json:"username"`
	Age      int     `json:"age"`
	TeamID   *uint32 `json:"teamId"`
	TeamName *string `json:"teamName"`
}

func NewMemberResponse(m *model.Member) MemberResponse {
	resp := MemberResponse{
		ID:       m.ID,
		Username: m.Username,
		Age:      m.Age,
		TeamID:   m.TeamID,
	}
	if m.Team != nil {
		name := m.Team.Name
		resp.TeamName = &name
	}
	return resp
}

type MemberIDUri struct {
	ID uint32 `uri:"id" binding:"required,gte=1"`
}

type CreateMemberRequest struct {
	Username string  `json:"username" binding:"required,min=1,max=100"`
	Age      int     `json:"age" binding:"gte=0,lte=200"`
	TeamName *string `json:"teamName" binding:"omitempty,min=1,max=100"`
}

type BulkRenameRequest struct {
	BelowAge int    `json:"belowAge" binding:"required,gte=1"`
	Username string `json:"username" binding:"required,min=1,max=100"`
}

type BulkAddAgeRequest struct {
	Delta int `json:"delta" binding:"required"`
}

// BulkDeleteRequest deletes members older than AboveAge. 0 is a valid
// threshold, so a missing field must be told apart from zero.
type BulkDeleteRequest struct {
	AboveAge *int `json:"aboveAge" binding:"required,gte=0"`
}

type BulkResponse struct {
	Affected int64 `json:"affected"`
}
