package models

import (
	"time"
)

// UserRole 用户角色枚举
type UserRole string

const (
	UserRoleADMIN UserRole = "admin" // 管理员
	UserRoleSALES UserRole = "sales" // 销售
)

// RegionAll 区域哨兵值，表示不限区域
const RegionAll = "all"

// User 用户类型
type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Password        string    `json:"-"` // 不返回密码
	Role            UserRole  `json:"role"`
	AssignedRegions []string  `json:"assignedRegions"`
	CreatedAt       time.Time `json:"createdAt"`
}

// HasAllRegions 判断用户是否可见全部区域
// 管理员始终不受区域限制，销售取决于是否包含 "all" 哨兵值
func (u *User) HasAllRegions() bool {
	if u.Role == UserRoleADMIN {
		return true
	}
	for _, r := range u.AssignedRegions {
		if r == RegionAll {
			return true
		}
	}
	return false
}

// CanSeeRegion 判断用户能否看到指定区域的线索
func (u *User) CanSeeRegion(country string) bool {
	if u.HasAllRegions() {
		return true
	}
	for _, r := range u.AssignedRegions {
		if r == country {
			return true
		}
	}
	return false
}

// LeadStatus 线索阶段枚举
// 默认为以下六个阶段，阶段集合可通过阶段配置扩展
type LeadStatus string

const (
	LeadStatusNEW       LeadStatus = "new"
	LeadStatusBOOKED    LeadStatus = "booked"
	LeadStatusNOANSWER  LeadStatus = "no-answer"
	LeadStatusCALLLATER LeadStatus = "call-later"
	LeadStatusWON       LeadStatus = "won"
	LeadStatusLOST      LeadStatus = "lost"
)

// LeadSource 线索来源
type LeadSource string

const (
	LeadSourceMETA   LeadSource = "meta"   // Meta广告投放
	LeadSourceMANUAL LeadSource = "manual" // 人工录入
)

// SubscriptionType 订阅类型
type SubscriptionType string

const (
	SubscriptionMONTHLY    SubscriptionType = "monthly"
	SubscriptionSEMESTRIAL SubscriptionType = "semestrial"
	SubscriptionANNUAL     SubscriptionType = "annual"
)

// Subscription 订阅信息，仅在线索成交后存在
type Subscription struct {
	Type                        SubscriptionType `json:"type"`
	Price                       float64          `json:"price"`
	StartDate                   time.Time        `json:"startDate"`
	EndDate                     time.Time        `json:"endDate"`
	RenewalNotificationSent     bool             `json:"renewalNotificationSent,omitempty"`
	LastRenewalNotificationDate *time.Time       `json:"lastRenewalNotificationDate,omitempty"`
}

// Lead 线索模型
type Lead struct {
	ID              string        `json:"id"`
	CampaignName    string        `json:"campaignName"`
	FullName        string        `json:"fullName"`
	Email           string        `json:"email"`
	PhoneNumber     string        `json:"phoneNumber"`
	Area            string        `json:"area"`
	Semester        string        `json:"semester"`
	Difficulties    string        `json:"difficulties"`
	University      string        `json:"university"`
	Status          LeadStatus    `json:"status"`
	AssignedTo      string        `json:"assignedTo,omitempty"` // 弱引用用户ID，可为空
	CreatedAt       time.Time     `json:"createdAt"`
	LastContactedAt *time.Time    `json:"lastContactedAt,omitempty"`
	ResponseTime    float64       `json:"responseTime,omitempty"` // 首次响应耗时(小时)
	Notes           string        `json:"notes"`
	Source          LeadSource    `json:"source"`
	Country         string        `json:"country"`
	Subscription    *Subscription `json:"subscription,omitempty"`
}

// StageConfig 看板阶段配置
type StageConfig struct {
	Key       LeadStatus `json:"key"`
	Label     string     `json:"label"`
	Color     string     `json:"color"`
	CreatedAt time.Time  `json:"createdAt"`
}

// 各种请求和响应结构
type (
	// LoginRequest 登录请求
	LoginRequest struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	// LoginResponse 登录响应
	LoginResponse struct {
		Token string `json:"token"`
		User  User   `json:"user"`
	}

	// LeadCreateRequest 创建线索请求
	LeadCreateRequest struct {
		CampaignName string        `json:"campaignName"`
		FullName     string        `json:"fullName" binding:"required"`
		Email        string        `json:"email" binding:"required,email"`
		PhoneNumber  string        `json:"phoneNumber" binding:"required"`
		Area         string        `json:"area"`
		Semester     string        `json:"semester"`
		Difficulties string        `json:"difficulties"`
		University   string        `json:"university"`
		Status       LeadStatus    `json:"status"`
		AssignedTo   string        `json:"assignedTo"`
		Notes        string        `json:"notes"`
		Source       LeadSource    `json:"source"`
		Country      string        `json:"country" binding:"required"`
		Subscription *Subscription `json:"subscription"`
	}

	// LeadUpdateRequest 更新线索请求，nil字段不参与合并
	LeadUpdateRequest struct {
		CampaignName *string       `json:"campaignName"`
		FullName     *string       `json:"fullName"`
		Email        *string       `json:"email"`
		PhoneNumber  *string       `json:"phoneNumber"`
		Area         *string       `json:"area"`
		Semester     *string       `json:"semester"`
		Difficulties *string       `json:"difficulties"`
		University   *string       `json:"university"`
		AssignedTo   *string       `json:"assignedTo"`
		Notes        *string       `json:"notes"`
		Country      *string       `json:"country"`
		ResponseTime *float64      `json:"responseTime"`
		Subscription *Subscription `json:"subscription"`
	}

	// LeadStatusUpdateRequest 更新线索阶段请求
	LeadStatusUpdateRequest struct {
		Status LeadStatus `json:"status" binding:"required"`
	}

	// LeadAssignRequest 分配线索请求
	LeadAssignRequest struct {
		UserID string `json:"userId" binding:"required"`
	}

	// LeadImportItem 批量导入的单条线索
	// 不带binding标签: 整批不因个别脏数据被拒，脏行在控制器里逐条跳过
	LeadImportItem struct {
		CampaignName string        `json:"campaignName"`
		FullName     string        `json:"fullName"`
		Email        string        `json:"email"`
		PhoneNumber  string        `json:"phoneNumber"`
		Area         string        `json:"area"`
		Semester     string        `json:"semester"`
		Difficulties string        `json:"difficulties"`
		University   string        `json:"university"`
		Notes        string        `json:"notes"`
		Country      string        `json:"country"`
		Subscription *Subscription `json:"subscription"`
	}

	// LeadBulkImportRequest Meta投放批量导入请求
	LeadBulkImportRequest struct {
		Leads []LeadImportItem `json:"leads" binding:"required"`
	}

	// StageUpsertRequest 阶段配置更新请求
	StageUpsertRequest struct {
		Key   LeadStatus `json:"key" binding:"required"`
		Label string     `json:"label" binding:"required"`
		Color string     `json:"color"`
	}
)

// LeadFilter 线索筛选条件，未设置的维度直接放行
// 查询参数在控制器里手工解析，日期参数按天补齐成闭区间
type LeadFilter struct {
	Search     string
	Status     LeadStatus
	Campaign   string
	AssignedTo string
	StartDate  *time.Time
	EndDate    *time.Time
}
