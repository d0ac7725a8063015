package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/calculisto/crm_server/controllers"
	"github.com/calculisto/crm_server/middleware"
)

// RegisterLeadRoutes 注册线索相关路由
// 没有删除接口: 设计上线索只增改不删
func RegisterLeadRoutes(router *gin.Engine) {
	leadRoutes := router.Group("/api/leads")
	leadRoutes.Use(middleware.AuthMiddleware())

	leadRoutes.GET("/", controllers.GetLeadList)
	leadRoutes.POST("/", controllers.CreateLead)
	leadRoutes.POST("/bulk-import", controllers.BulkImportLeads)
	leadRoutes.GET("/kanban", controllers.GetKanbanBoard)
	leadRoutes.GET("/:id", controllers.GetLeadDetail)
	leadRoutes.PUT("/:id", controllers.UpdateLead)
	leadRoutes.PUT("/:id/status", controllers.UpdateLeadStatus)
	leadRoutes.PUT("/:id/assign", controllers.AssignLead)
}
