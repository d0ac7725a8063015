package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/calculisto/crm_server/controllers"
	"github.com/calculisto/crm_server/middleware"
)

// RegisterDashboardStatsRoutes 注册数据看板路由
func RegisterDashboardStatsRoutes(router *gin.Engine) {
	statsRoutes := router.Group("/api/dashboard-stats")
	statsRoutes.Use(middleware.AuthMiddleware())

	statsRoutes.GET("/", controllers.GetDashboardStats)
}
