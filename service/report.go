package service

import (
	"time"

	"github.com/calculisto/crm_server/models"
)

// 报表的纯计算部分，在调用方给定的可见集上运行

// MatchesReportFilter 判断线索是否命中报表筛选
// 多值维度内部为OR，维度之间为AND，空维度放行
func MatchesReportFilter(lead models.Lead, f models.ReportFilter) bool {
	if f.StartDate != nil && lead.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && lead.CreatedAt.After(*f.EndDate) {
		return false
	}
	if len(f.Status) > 0 && !containsStatus(f.Status, lead.Status) {
		return false
	}
	if len(f.AssignedTo) > 0 && !containsString(f.AssignedTo, lead.AssignedTo) {
		return false
	}
	if len(f.Campaigns) > 0 && !containsString(f.Campaigns, lead.CampaignName) {
		return false
	}
	if len(f.Countries) > 0 && !containsString(f.Countries, lead.Country) {
		return false
	}
	if len(f.Source) > 0 && !containsSource(f.Source, lead.Source) {
		return false
	}
	if len(f.SubscriptionTypes) > 0 {
		if lead.Subscription == nil {
			return false
		}
		if !containsSubType(f.SubscriptionTypes, lead.Subscription.Type) {
			return false
		}
	}
	return true
}

// RunReport 在可见集上运行报表，返回命中切片的聚合指标
func RunReport(name string, visible []models.Lead, f models.ReportFilter) models.ReportResult {
	result := models.ReportResult{
		Name:        name,
		GeneratedAt: time.Now(),
	}

	byStatus := newCounter()
	byCountry := newCounter()
	byCampaign := newCounter()

	var wonCount int
	var responseSum float64
	var responseCount int

	for _, lead := range visible {
		if !MatchesReportFilter(lead, f) {
			continue
		}
		result.MatchedLeads++

		byStatus.add(string(lead.Status))
		byCountry.add(lead.Country)
		if lead.CampaignName != "" {
			byCampaign.add(lead.CampaignName)
		}

		if lead.Status == models.LeadStatusWON {
			wonCount++
			if lead.Subscription != nil {
				result.TotalRevenue += lead.Subscription.Price
			}
		}
		if lead.ResponseTime > 0 {
			responseSum += lead.ResponseTime
			responseCount++
		}
	}

	if result.MatchedLeads > 0 {
		result.ConversionRate = float64(wonCount) / float64(result.MatchedLeads) * 100
	}
	if responseCount > 0 {
		result.AvgResponseTime = responseSum / float64(responseCount)
	}

	result.ByStatus = byStatus.items()
	result.ByCountry = byCountry.items()
	result.ByCampaign = byCampaign.items()
	return result
}

// counter 计数器，按首次出现顺序输出
type counter struct {
	order  []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(name string) {
	if _, ok := c.counts[name]; !ok {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

func (c *counter) items() []models.ChartDataItem {
	out := make([]models.ChartDataItem, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, models.ChartDataItem{Name: name, Value: c.counts[name]})
	}
	return out
}

func containsStatus(list []models.LeadStatus, v models.LeadStatus) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsSource(list []models.LeadSource, v models.LeadSource) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsSubType(list []models.SubscriptionType, v models.SubscriptionType) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func containsString(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
