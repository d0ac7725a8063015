package middleware

import (
	"net/http"
	"strings"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 认证中间件
// 解析Bearer令牌，校验会话未被登出撤销，并把名录中的用户对象写入上下文
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		utils.Logger.Info().
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("authorization", utils.GetShortToken(authHeader)).
			Msg("验证请求")

		// 检查Authorization头
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.Logger.Info().Msg("缺少Authorization头或格式错误")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "未授权访问",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "未授权访问",
				"code":    "MISSING_TOKEN",
			})
			return
		}

		// 解析token
		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Logger.Error().Err(err).Msg("Token验证失败")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "无效的token: " + err.Error(),
				"code":    "INVALID_TOKEN",
			})
			return
		}

		// 检查必要字段
		userID, _ := claims["id"].(string)
		sessionID, _ := claims["jti"].(string)
		if userID == "" || sessionID == "" {
			utils.Logger.Warn().Interface("claims", claims).Msg("Token负载缺少必要字段")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Token缺少必要字段",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		// 登出过的会话直接拒绝
		if !repository.Sessions.Exists(sessionID) {
			utils.Logger.Info().Str("sessionId", sessionID).Msg("会话已撤销")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "会话已失效，请重新登录",
				"code":    "SESSION_REVOKED",
			})
			return
		}

		// 以名录为准解析用户，区域信息不信任token负载
		user, ok := repository.Users.FindByID(userID)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "用户不存在",
				"code":    "INVALID_TOKEN",
			})
			return
		}

		c.Set("user", user)
		c.Set("sessionId", sessionID)

		utils.Logger.Info().
			Str("email", user.Email).
			Str("role", string(user.Role)).
			Msg("验证成功")

		c.Next()
	}
}

// AdminOnly 仅管理员可访问
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := utils.GetUser(c)
		if err != nil {
			utils.HandleError(c, utils.CreateUnauthorizedError())
			c.Abort()
			return
		}

		if user.Role != models.UserRoleADMIN {
			utils.Logger.Info().
				Str("email", user.Email).
				Str("role", string(user.Role)).
				Msg("权限不足")
			utils.HandleError(c, utils.CreateForbiddenError())
			c.Abort()
			return
		}

		c.Next()
	}
}
