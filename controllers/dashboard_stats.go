package controllers

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/service"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats 获取数据看板统计信息
// 所有指标都在当前用户的可见集上计算
func GetDashboardStats(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	timeRange := c.Query("timeRange")
	if timeRange == "" {
		timeRange = "all"
	}
	startDateParam := c.Query("startDate")
	endDateParam := c.Query("endDate")

	utils.LogInfo(map[string]interface{}{
		"user":      user.Email,
		"timeRange": timeRange,
	}, "获取数据看板统计信息")

	// 根据时间范围参数设置日期筛选
	filter := models.LeadFilter{}
	today := time.Now()

	switch timeRange {
	case "custom":
		if startDateParam == "" || endDateParam == "" {
			utils.HandleError(c, utils.CreateBadRequestError("自定义时间范围必须提供startDate和endDate"))
			return
		}
		startDate, err := time.Parse(time.RFC3339, startDateParam+"T00:00:00Z")
		if err != nil {
			utils.HandleError(c, fmt.Errorf("解析开始日期失败: %w", err))
			return
		}
		endDate, err := time.Parse(time.RFC3339, endDateParam+"T23:59:59Z")
		if err != nil {
			utils.HandleError(c, fmt.Errorf("解析结束日期失败: %w", err))
			return
		}
		filter.StartDate = &startDate
		filter.EndDate = &endDate
	case "week":
		// 近7天
		sevenDaysAgo := today.AddDate(0, 0, -7)
		filter.StartDate = &sevenDaysAgo
	case "month":
		// 近30天
		thirtyDaysAgo := today.AddDate(0, 0, -30)
		filter.StartDate = &thirtyDaysAgo
	case "all":
		// 不限时间
	default:
		utils.HandleError(c, utils.CreateBadRequestError("无效的timeRange: "+timeRange))
		return
	}

	visible := service.VisibleLeads(user, repository.Leads.All())
	scoped := service.FilterLeads(visible, filter)

	stats := buildDashboardStats(scoped)

	utils.SuccessResponse(c, stats, "")
}

// buildDashboardStats 在已限定的线索集上汇总看板指标
func buildDashboardStats(leads []models.Lead) models.DashboardStatsResponse {
	stats := models.DashboardStatsResponse{
		TotalLeads: len(leads),
	}

	statusCounts := make(map[models.LeadStatus]int)
	var responseSum float64
	var responseCount int

	for _, lead := range leads {
		statusCounts[lead.Status]++
		if lead.ResponseTime > 0 {
			responseSum += lead.ResponseTime
			responseCount++
		}
	}

	stats.NewLeads = statusCounts[models.LeadStatusNEW]
	stats.BookedLeads = statusCounts[models.LeadStatusBOOKED]
	stats.WonLeads = statusCounts[models.LeadStatusWON]
	stats.LostLeads = statusCounts[models.LeadStatusLOST]

	if stats.TotalLeads > 0 {
		stats.ConversionRate = float64(stats.WonLeads) / float64(stats.TotalLeads) * 100
	}
	if responseCount > 0 {
		stats.AvgResponseTime = responseSum / float64(responseCount)
	}

	// 按看板阶段注册顺序输出分布
	for _, stage := range repository.Stages.All() {
		stats.StatusDistribution = append(stats.StatusDistribution, models.ChartDataItem{
			Name:  string(stage.Key),
			Value: statusCounts[stage.Key],
		})
	}

	// 最近5条线索，按创建时间倒序
	recent := make([]models.Lead, len(leads))
	copy(recent, leads)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > 5 {
		recent = recent[:5]
	}
	stats.RecentLeads = recent

	return stats
}
