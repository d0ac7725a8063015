package models

import "time"

// 图表数据项
type ChartDataItem struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// 数据看板响应结构
type DashboardStatsResponse struct {
	TotalLeads      int     `json:"totalLeads"`      // 可见线索总数
	NewLeads        int     `json:"newLeads"`        // 新线索数
	BookedLeads     int     `json:"bookedLeads"`     // 已预约数
	WonLeads        int     `json:"wonLeads"`        // 成交数
	LostLeads       int     `json:"lostLeads"`       // 流失数
	ConversionRate  float64 `json:"conversionRate"`  // 转化率(%)
	AvgResponseTime float64 `json:"avgResponseTime"` // 平均响应时间(小时)

	StatusDistribution []ChartDataItem `json:"statusDistribution"` // 各阶段分布
	RecentLeads        []Lead          `json:"recentLeads"`        // 最近5条线索
}

// 财务概览响应结构
type FinancialStatsResponse struct {
	TotalRevenue    float64            `json:"totalRevenue"`    // 总收入
	AvgDealValue    float64            `json:"avgDealValue"`    // 平均客单价
	UniqueCustomers int                `json:"uniqueCustomers"` // 去重客户数(按邮箱)
	DealCount       int                `json:"dealCount"`       // 成交订阅数
	RevenueByType   map[string]float64 `json:"revenueByType"`   // 按订阅类型的收入
	Deals           []Lead             `json:"deals"`           // 成交明细
}

// ReportFilter 报表筛选条件，多值维度内部为OR，维度之间为AND
type ReportFilter struct {
	StartDate         *time.Time         `json:"startDate"`
	EndDate           *time.Time         `json:"endDate"`
	Status            []LeadStatus       `json:"status"`
	AssignedTo        []string           `json:"assignedTo"`
	Campaigns         []string           `json:"campaigns"`
	Countries         []string           `json:"countries"`
	Source            []LeadSource       `json:"source"`
	SubscriptionTypes []SubscriptionType `json:"subscriptionTypes"`
}

// ReportRunRequest 运行报表请求
type ReportRunRequest struct {
	Name    string       `json:"name"`
	Filters ReportFilter `json:"filters"`
}

// ReportResult 报表运行结果
type ReportResult struct {
	Name            string          `json:"name"`
	MatchedLeads    int             `json:"matchedLeads"`
	ConversionRate  float64         `json:"conversionRate"`
	TotalRevenue    float64         `json:"totalRevenue"`
	AvgResponseTime float64         `json:"avgResponseTime"`
	ByStatus        []ChartDataItem `json:"byStatus"`
	ByCountry       []ChartDataItem `json:"byCountry"`
	ByCampaign      []ChartDataItem `json:"byCampaign"`
	GeneratedAt     time.Time       `json:"generatedAt"`
}
