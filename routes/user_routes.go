package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/calculisto/crm_server/controllers"
	"github.com/calculisto/crm_server/middleware"
)

// RegisterUserRoutes 注册用户管理路由
func RegisterUserRoutes(router *gin.Engine) {
	userRoutes := router.Group("/api/users")
	userRoutes.Use(middleware.AuthMiddleware())
	userRoutes.Use(middleware.AdminOnly())

	userRoutes.GET("/", controllers.GetUserList)
}
