package context

import (
	"net/http"
	"strconv"

	"github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/logger"

	sharedError "github.com/changhyeonkim/querydsl-study/go-api-server/internal/shared/error"
	"github.com/gin-gonic/gin"
)

// Context keys for storing user authentication information
const (
	AccountIDKey    = "account_id"
	AccountEmailKey = "account_email"
)

func GetAccountID(c *gin.Context) (uint32, bool) {
	accountID, exists := c.Get(AccountIDKey)
	if !exists {
		return 0, false
	}

	idStr, ok := accountID.(string)
	if !ok {
		return 0, false
	}

	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, false
	}

	return uint32(id), true
}

// RequireAccountID retrieves the authenticated operator's account ID from the Gin context.
// If it is not found, automatically sends an authentication error response.
// Returns the ID and true if found, 0 and false if not found (error already sent).
func RequireAccountID(c *gin.Context) (uint32, bool) {
	accountID, ok := GetAccountID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, sharedError.ErrorResponse{
			Status:  http.StatusUnauthorized,
			Code:    "AUTH-000",
			Message: "로그인을 해주세요.",
		})
		c.Abort()
		logger.FromContext(c.Request.Context()).Error("[API] context에 계정 ID가 존재하지 않습니다.")
		return 0, false
	}
	return accountID, true
}
