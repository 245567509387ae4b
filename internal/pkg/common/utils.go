package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID 生成 UUID
func GenerateUUID() string {
	return uuid.New().String()
}

// NormalizeTitle 標題比對用：去除前後空白並轉小寫
func NormalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StringPtr 返回字串指標，空字串返回 nil
func StringPtr(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
