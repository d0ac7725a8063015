package routes

import (
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(router *gin.Engine) {
	// 注册认证路由
	RegisterAuthRoutes(router)

	// 注册业务路由
	RegisterLeadRoutes(router)
	RegisterUserRoutes(router)
	RegisterStageRoutes(router)
	RegisterDashboardStatsRoutes(router)
	RegisterFinancialRoutes(router)
	RegisterReportRoutes(router)

	// 健康检查路由
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// 存储状态检查路由
	router.GET("/api/store-status", func(c *gin.Context) {
		utils.SuccessResponse(c, repository.GetStoreStatus(), "")
	})
}
