package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/calculisto/crm_server/controllers"
	"github.com/calculisto/crm_server/middleware"
)

// RegisterFinancialRoutes 注册财务概览路由
func RegisterFinancialRoutes(router *gin.Engine) {
	financialRoutes := router.Group("/api/financial-stats")
	financialRoutes.Use(middleware.AuthMiddleware())

	financialRoutes.GET("/", controllers.GetFinancialStats)
}
