package handlers

import (
	"errors"
	"net/http"

	"recipe-grocery/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError 依錯誤類型回應對應的狀態碼，5xx 不回傳內部細節
func RespondError(c *gin.Context, err error) {
	status, code := common.StatusOf(err)

	message := err.Error()
	var ce *common.CustomError
	if errors.As(err, &ce) {
		message = ce.Message
	}
	if status >= http.StatusInternalServerError {
		common.LogError("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", requestid.Get(c)),
			zap.Error(err),
		)
		message = http.StatusText(status)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, common.ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// BindJSON 解析請求體，失敗時回應 400 並返回 false
func BindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		common.LogDebug("Invalid request body",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "invalid request body",
			Details: err.Error(),
		})
		return false
	}
	return true
}
