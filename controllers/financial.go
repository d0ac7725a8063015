package controllers

import (
	"net/http"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/repository"
	"github.com/calculisto/crm_server/service"
	"github.com/calculisto/crm_server/utils"

	"github.com/gin-gonic/gin"
)

// GetFinancialStats 获取财务概览
// 统计对象为可见集中已成交且带订阅的线索
// timeframe按订阅开始日期限定: all/year/month/week
func GetFinancialStats(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	timeframe := c.Query("timeframe")
	if timeframe == "" {
		timeframe = "all"
	}

	var since time.Time
	now := time.Now()
	switch timeframe {
	case "all":
		// 不限时间
	case "year":
		since = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
	case "month":
		since = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	case "week":
		since = now.AddDate(0, 0, -7)
	default:
		utils.HandleError(c, utils.CreateBadRequestError("无效的timeframe: "+timeframe))
		return
	}

	utils.LogInfo(map[string]interface{}{
		"user":      user.Email,
		"timeframe": timeframe,
	}, "获取财务概览")

	visible := service.VisibleLeads(user, repository.Leads.All())

	stats := models.FinancialStatsResponse{
		RevenueByType: make(map[string]float64),
		Deals:         []models.Lead{},
	}
	seenEmails := make(map[string]bool)

	for _, lead := range visible {
		if lead.Status != models.LeadStatusWON || lead.Subscription == nil {
			continue
		}
		if !since.IsZero() && lead.Subscription.StartDate.Before(since) {
			continue
		}

		stats.DealCount++
		stats.TotalRevenue += lead.Subscription.Price
		stats.RevenueByType[string(lead.Subscription.Type)] += lead.Subscription.Price
		seenEmails[lead.Email] = true
		stats.Deals = append(stats.Deals, lead)
	}

	stats.UniqueCustomers = len(seenEmails)
	if stats.DealCount > 0 {
		stats.AvgDealValue = stats.TotalRevenue / float64(stats.DealCount)
	}

	utils.SuccessResponse(c, stats, "")
}
