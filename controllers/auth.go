package controllers

import (
	"net/http"
	"strings"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// Login 用户登录
// 按邮箱在固定名录中查找，查不到即认证失败；密码为演示用占位校验
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.LogApiRequest("POST", "/api/auth/login", nil, gin.H{
		"email":    req.Email,
		"password": "******",
	}, nil)

	utils.Logger.Info().Str("email", req.Email).Msg("登录尝试")

	user, found := repository.Users.FindByEmail(req.Email)
	if !found {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 邮箱不在名录中")
		utils.HandleError(c, utils.CreateAuthenticationError())
		return
	}

	if !utils.VerifyPassword(req.Password, user) {
		utils.Logger.Info().Str("email", req.Email).Msg("登录失败: 密码错误")
		utils.HandleError(c, utils.CreateAuthenticationError())
		return
	}

	// 生成JWT令牌并注册会话
	token, sessionID, err := utils.GenerateToken(user)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("生成token失败")
		utils.ErrorResponse(c, "生成登录令牌失败，请重试", http.StatusInternalServerError)
		return
	}
	repository.Sessions.Create(sessionID, user.ID)

	// 构造用户对象(不包含密码)
	userWithoutPassword := *user
	userWithoutPassword.Password = ""

	utils.Logger.Info().Str("email", user.Email).Str("role", string(user.Role)).Msg("用户登录成功")
	utils.SuccessResponse(c, gin.H{
		"token": token,
		"user":  userWithoutPassword,
	}, "")
}

// Logout 用户登出
// 幂等操作: 无有效会话时也返回成功
func Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if token != "" && token != authHeader {
		claims, err := utils.ParseToken(token)
		if err == nil {
			if sessionID, ok := claims["jti"].(string); ok {
				repository.Sessions.Revoke(sessionID)
			}
		}
	}

	utils.SuccessResponse(c, nil, "已退出登录")
}

// CurrentUser 获取当前登录用户
func CurrentUser(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	userWithoutPassword := *user
	userWithoutPassword.Password = ""

	utils.SuccessResponse(c, gin.H{"user": userWithoutPassword}, "")
}
