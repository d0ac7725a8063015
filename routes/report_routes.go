package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/calculisto/crm_server/controllers"
	"github.com/calculisto/crm_server/middleware"
)

// RegisterReportRoutes 注册报表路由
func RegisterReportRoutes(router *gin.Engine) {
	reportRoutes := router.Group("/api/reports")
	reportRoutes.Use(middleware.AuthMiddleware())

	reportRoutes.POST("/run", controllers.RunReport)
}
