package controllers

import (
	"net/http"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// GetStages 获取看板阶段配置列表
func GetStages(c *gin.Context) {
	utils.Logger.Info().Msg("[阶段配置] 获取阶段列表")

	stages := repository.Stages.All()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"stages": stages,
			"total":  len(stages),
		},
	})
}

// UpsertStage 新增或更新阶段配置(仅管理员)
// 阶段键是开放集合: 未注册过的键会作为新阶段追加到看板末尾
func UpsertStage(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.StageUpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	utils.Logger.Info().
		Str("user", user.Email).
		Str("key", string(req.Key)).
		Msg("[阶段配置] 更新阶段")

	stage := repository.Stages.Upsert(req)

	utils.SuccessResponse(c, stage, "阶段配置已保存")
}
