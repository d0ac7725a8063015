package service

import (
	"strings"

	"github.com/calculisto/crm_server/models"
)

// 线索可见性与筛选的派生逻辑
// 全部为纯函数: 输入线索序列，输出子序列，不修改输入且保持相对顺序

// VisibleLeads 计算指定用户的可见线索集
// 管理员可见全部；销售仅可见国家落在其绑定区域内的线索，
// 区域含"all"哨兵值时等同于管理员视角
// 该函数是访问控制边界，任何进一步筛选必须在其结果之上进行
func VisibleLeads(user *models.User, leads []models.Lead) []models.Lead {
	if user == nil {
		return nil
	}
	if user.HasAllRegions() {
		out := make([]models.Lead, len(leads))
		copy(out, leads)
		return out
	}

	out := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if user.CanSeeRegion(lead.Country) {
			out = append(out, lead)
		}
	}
	return out
}

// FilterLeads 在可见集上应用筛选条件
// 各维度之间为逻辑AND，未设置的维度直接放行；结果保持输入顺序
func FilterLeads(visible []models.Lead, filter models.LeadFilter) []models.Lead {
	out := make([]models.Lead, 0, len(visible))
	for _, lead := range visible {
		if MatchesFilter(lead, filter) {
			out = append(out, lead)
		}
	}
	return out
}

// MatchesFilter 判断单条线索是否命中筛选条件
func MatchesFilter(lead models.Lead, filter models.LeadFilter) bool {
	if filter.Search != "" && !matchesSearch(lead, filter.Search) {
		return false
	}
	if filter.Status != "" && lead.Status != filter.Status {
		return false
	}
	if filter.Campaign != "" && lead.CampaignName != filter.Campaign {
		return false
	}
	if filter.AssignedTo != "" && lead.AssignedTo != filter.AssignedTo {
		return false
	}
	if filter.StartDate != nil && lead.CreatedAt.Before(*filter.StartDate) {
		return false
	}
	if filter.EndDate != nil && lead.CreatedAt.After(*filter.EndDate) {
		return false
	}
	return true
}

// matchesSearch 搜索匹配
// 姓名/邮箱/大学做大小写无关的子串匹配；电话号码无大小写概念，按原文匹配
func matchesSearch(lead models.Lead, search string) bool {
	lower := strings.ToLower(search)
	if strings.Contains(strings.ToLower(lead.FullName), lower) {
		return true
	}
	if strings.Contains(strings.ToLower(lead.Email), lower) {
		return true
	}
	if strings.Contains(strings.ToLower(lead.University), lower) {
		return true
	}
	return strings.Contains(lead.PhoneNumber, search)
}

// LeadsByStatus 按阶段取可见线索子集，看板列使用
// 等价于仅设置status维度的FilterLeads
func LeadsByStatus(visible []models.Lead, status models.LeadStatus) []models.Lead {
	return FilterLeads(visible, models.LeadFilter{Status: status})
}
