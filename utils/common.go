package utils

import (
	"regexp"
	"strings"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// IsValidEmail 验证邮箱格式是否有效
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// NormalizeEmail 规范化邮箱(小写去空格)
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// GetShortToken 获取截断的令牌，保护敏感信息
func GetShortToken(token string) string {
	if token == "" {
		return ""
	}

	if len(token) > 15 {
		return token[:15] + "..."
	}

	return token
}
