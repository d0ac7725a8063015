package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/service"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// parseLeadFilter 从查询参数解析筛选条件
// 日期按天给出，结束日期取当天23:59:59保证闭区间
func parseLeadFilter(c *gin.Context) (models.LeadFilter, error) {
	filter := models.LeadFilter{
		Search:     c.Query("search"),
		Status:     models.LeadStatus(c.Query("status")),
		Campaign:   c.Query("campaign"),
		AssignedTo: c.Query("assignedTo"),
	}

	if startParam := c.Query("startDate"); startParam != "" {
		start, err := time.Parse(time.RFC3339, startParam+"T00:00:00Z")
		if err != nil {
			return filter, fmt.Errorf("解析开始日期失败: %w", err)
		}
		filter.StartDate = &start
	}
	if endParam := c.Query("endDate"); endParam != "" {
		end, err := time.Parse(time.RFC3339, endParam+"T23:59:59Z")
		if err != nil {
			return filter, fmt.Errorf("解析结束日期失败: %w", err)
		}
		filter.EndDate = &end
	}

	return filter, nil
}

// visibleLead 取单条线索并校验当前用户的可见性
// 越权访问与不存在一样返回not found，不暴露越权线索是否存在
func visibleLead(user *models.User, id string) (models.Lead, error) {
	lead, err := repository.Leads.Get(id)
	if err != nil {
		return models.Lead{}, err
	}
	if !user.CanSeeRegion(lead.Country) {
		return models.Lead{}, repository.ErrLeadNotFound
	}
	return lead, nil
}

// GetLeadList 获取线索列表
// 先按角色计算可见集，再在其上应用筛选，筛选永远无法越出可见范围
func GetLeadList(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	filter, err := parseLeadFilter(c)
	if err != nil {
		utils.HandleError(c, utils.CreateBadRequestError(err.Error()))
		return
	}

	utils.LogInfo(map[string]interface{}{
		"user":     user.Email,
		"search":   filter.Search,
		"status":   filter.Status,
		"campaign": filter.Campaign,
	}, "获取线索列表")

	visible := service.VisibleLeads(user, repository.Leads.All())
	filtered := service.FilterLeads(visible, filter)

	utils.SuccessResponse(c, gin.H{
		"leads":    filtered,
		"total":    len(filtered),
		"revision": repository.Leads.Revision(),
	}, "")
}

// GetLeadDetail 获取线索详情
func GetLeadDetail(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	lead, err := visibleLead(user, c.Param("id"))
	if err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	utils.SuccessResponse(c, lead, "")
}

// CreateLead 创建线索(人工录入表单)
// 字段校验在此边界完成，存储层不做任何校验也不查重
func CreateLead(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.LeadCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Source == "" {
		req.Source = models.LeadSourceMANUAL
	}

	lead := repository.Leads.Add(req)

	utils.LogInfo(map[string]interface{}{
		"user":    user.Email,
		"leadId":  lead.ID,
		"country": lead.Country,
	}, "创建线索成功")

	utils.SuccessResponse(c, lead, "线索创建成功", http.StatusCreated)
}

// BulkImportLeads 批量导入线索(Meta投放回传)
// 逐条录入，字段不全的跳过并计数
func BulkImportLeads(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	var req models.LeadBulkImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	imported := 0
	skipped := 0
	for _, item := range req.Leads {
		if item.FullName == "" || item.Email == "" || item.PhoneNumber == "" || item.Country == "" {
			skipped++
			continue
		}
		if !utils.IsValidEmail(item.Email) {
			skipped++
			continue
		}
		repository.Leads.Add(models.LeadCreateRequest{
			CampaignName: item.CampaignName,
			FullName:     item.FullName,
			Email:        item.Email,
			PhoneNumber:  item.PhoneNumber,
			Area:         item.Area,
			Semester:     item.Semester,
			Difficulties: item.Difficulties,
			University:   item.University,
			Notes:        item.Notes,
			Source:       models.LeadSourceMETA,
			Country:      item.Country,
			Subscription: item.Subscription,
		})
		imported++
	}

	utils.LogInfo(map[string]interface{}{
		"user":     user.Email,
		"imported": imported,
		"skipped":  skipped,
	}, "批量导入线索完成")

	utils.SuccessResponse(c, gin.H{
		"imported": imported,
		"skipped":  skipped,
	}, "批量导入完成", http.StatusCreated)
}

// UpdateLead 更新线索
func UpdateLead(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, err := visibleLead(user, id); err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	var req models.LeadUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := repository.Leads.Update(id, req)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, lead, "线索更新成功")
}

// UpdateLeadStatus 更新线索阶段
// 阶段图不受限: 任意阶段可迁移到任意其他阶段，won/lost也可回退
func UpdateLeadStatus(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, err := visibleLead(user, id); err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	var req models.LeadStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := repository.Leads.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, lead, "阶段更新成功")
}

// AssignLead 分配线索给销售
// 仅保存用户ID弱引用，不校验目标用户是否存在
func AssignLead(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	id := c.Param("id")
	if _, err := visibleLead(user, id); err != nil {
		utils.HandleError(c, utils.CreateNotFoundError("线索"))
		return
	}

	var req models.LeadAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "无效的请求参数: "+err.Error(), http.StatusBadRequest)
		return
	}

	lead, err := repository.Leads.Assign(id, req.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrLeadNotFound) {
			utils.HandleError(c, utils.CreateNotFoundError("线索"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, lead, "线索分配成功")
}

// GetKanbanBoard 获取看板视图
// 按阶段配置的注册顺序输出各列，每列是可见集上的阶段分区
func GetKanbanBoard(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	visible := service.VisibleLeads(user, repository.Leads.All())

	type kanbanColumn struct {
		Stage models.StageConfig `json:"stage"`
		Leads []models.Lead      `json:"leads"`
		Total int                `json:"total"`
	}

	stages := repository.Stages.All()
	columns := make([]kanbanColumn, 0, len(stages))
	for _, stage := range stages {
		leads := service.LeadsByStatus(visible, stage.Key)
		columns = append(columns, kanbanColumn{
			Stage: stage,
			Leads: leads,
			Total: len(leads),
		})
	}

	utils.SuccessResponse(c, gin.H{
		"columns":  columns,
		"revision": repository.Leads.Revision(),
	}, "")
}
