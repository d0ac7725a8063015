package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/calculisto/crm_server/controllers"
	"github.com/calculisto/crm_server/middleware"
)

// RegisterStageRoutes 注册看板阶段配置路由
func RegisterStageRoutes(router *gin.Engine) {
	stageRoutes := router.Group("/api/stages")
	stageRoutes.Use(middleware.AuthMiddleware())

	stageRoutes.GET("/", controllers.GetStages)
	stageRoutes.PUT("/", middleware.AdminOnly(), controllers.UpsertStage)
}
