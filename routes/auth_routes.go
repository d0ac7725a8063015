package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/calculisto/crm_server/controllers"
	"github.com/calculisto/crm_server/middleware"
)

// RegisterAuthRoutes 注册认证相关路由
func RegisterAuthRoutes(router *gin.Engine) {
	authRoutes := router.Group("/api/auth")

	authRoutes.POST("/login", controllers.Login)
	// 登出是幂等的，无有效会话时也直接成功，所以不走认证中间件
	authRoutes.POST("/logout", controllers.Logout)
	authRoutes.GET("/me", middleware.AuthMiddleware(), controllers.CurrentUser)
}
