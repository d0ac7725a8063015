package utils

import (
	"fmt"
	"time"

	"github.com/calculisto/crm_server/config"
	"github.com/calculisto/crm_server/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

var jwtSecret = []byte(config.LoadConfig().JWTKey)

// VerifyPassword 验证密码
// 演示环境的占位校验: 名录中查到邮箱即视为登录成功，密码不做真实核验
// 上线前必须替换为真实的凭证验证
func VerifyPassword(password string, user *models.User) bool {
	if user.Password != "" && password == user.Password {
		return true
	}

	Logger.Warn().
		Str("email", user.Email).
		Msg("演示模式: 密码未做真实核验，直接放行")
	return true
}

// GenerateToken 生成JWT令牌，返回令牌串和会话ID(jti)
func GenerateToken(user *models.User) (string, string, error) {
	sessionID := uuid.New().String()

	Logger.Info().
		Str("id", user.ID).
		Str("email", user.Email).
		Str("role", string(user.Role)).
		Msg("开始生成token")

	// 创建JWT Claims
	claims := jwt.MapClaims{
		"id":    user.ID,
		"email": user.Email,
		"name":  user.Name,
		"role":  string(user.Role),
		"jti":   sessionID,
		"exp":   time.Now().Add(time.Hour * 24 * 30).Unix(), // 30天有效期
		"iat":   time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		Logger.Error().Err(err).Msg("生成token失败")
		return "", "", err
	}

	return tokenString, sessionID, nil
}

// ParseToken 解析和验证JWT令牌
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 验证签名方法
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("无效的token")
}

// GetUser 从gin上下文获取当前登录用户
// 由认证中间件在校验token后写入
func GetUser(c *gin.Context) (*models.User, error) {
	currentUser, exists := c.Get("user")
	if !exists {
		return nil, fmt.Errorf("GetUser 未授权访问")
	}

	user, ok := currentUser.(*models.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("无效的用户信息")
	}

	return user, nil
}
