package controllers

import (
	"net/http"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/service"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// RunReport 运行自定义报表
// 筛选条件作用在当前用户的可见集上，无法借助报表越出区域范围
func RunReport(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.ReportRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Name == "" {
		req.Name = "未命名报表"
	}

	utils.LogInfo(map[string]interface{}{
		"user":   user.Email,
		"report": req.Name,
	}, "运行报表")

	visible := service.VisibleLeads(user, repository.Leads.All())
	result := service.RunReport(req.Name, visible, req.Filters)

	utils.SuccessResponse(c, result, "")
}
