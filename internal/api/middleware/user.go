package middleware

import (
	"net/http"
	"strings"

	"recipe-grocery/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

const (
	// UserIDHeader 呼叫者身分標頭，由前置的閘道驗證後填入
	UserIDHeader = "X-User-ID"

	userIDKey = "user_id"
)

// RequireUser 要求請求帶有使用者 ID
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.ErrorResponse{
				Code:    common.ErrCodeUnauthorized,
				Message: common.ErrUnauthorized.Message,
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID 取得 RequireUser 設定的使用者 ID
func UserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
