package repository

import (
	"errors"
	"sync"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/utils"

	"github.com/google/uuid"
)

// ErrLeadNotFound 线索不存在
// 按ID更新/分配时未命中即返回该错误，由调用方决定如何上报
var ErrLeadNotFound = errors.New("线索不存在")

// LeadStore 线索存储
// 权威线索集合保存在进程内存中，按录入顺序排列，不支持删除
// 每次变更递增revision，视图消费方据此感知数据已变化并重新派生
type LeadStore struct {
	mu       sync.RWMutex
	leads    []models.Lead
	index    map[string]int // 线索ID -> 切片下标
	revision uint64
}

// NewLeadStore 创建空的线索存储
func NewLeadStore() *LeadStore {
	return &LeadStore{
		index: make(map[string]int),
	}
}

// All 返回全量线索副本，保持录入顺序
func (s *LeadStore) All() []models.Lead {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Lead, len(s.leads))
	copy(out, s.leads)
	return out
}

// Get 按ID查找线索
func (s *LeadStore) Get(id string) (models.Lead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.index[id]
	if !ok {
		return models.Lead{}, ErrLeadNotFound
	}
	return s.leads[i], nil
}

// Count 返回线索总数
func (s *LeadStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.leads)
}

// Revision 返回当前版本号，任何变更操作都会使其递增
func (s *LeadStore) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Add 新建线索并追加到集合末尾
// ID由服务端生成，createdAt取当前时间，阶段缺省为new
// 不做邮箱/手机号查重，允许重复录入
func (s *LeadStore) Add(req models.LeadCreateRequest) models.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := req.Status
	if status == "" {
		status = models.LeadStatusNEW
	}
	source := req.Source
	if source == "" {
		source = models.LeadSourceMANUAL
	}

	lead := models.Lead{
		ID:           uuid.New().String(),
		CampaignName: req.CampaignName,
		FullName:     req.FullName,
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
		Area:         req.Area,
		Semester:     req.Semester,
		Difficulties: req.Difficulties,
		University:   req.University,
		Status:       status,
		AssignedTo:   req.AssignedTo,
		CreatedAt:    time.Now(),
		Notes:        req.Notes,
		Source:       source,
		Country:      req.Country,
		Subscription: req.Subscription,
	}

	s.index[lead.ID] = len(s.leads)
	s.leads = append(s.leads, lead)
	s.revision++

	utils.Logger.Info().
		Str("id", lead.ID).
		Str("fullName", lead.FullName).
		Str("country", lead.Country).
		Str("source", string(lead.Source)).
		Msg("新建线索")

	return lead
}

// Update 合并部分字段到指定线索，nil字段保持原值
func (s *LeadStore) Update(id string, req models.LeadUpdateRequest) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.Lead{}, ErrLeadNotFound
	}

	lead := &s.leads[i]
	if req.CampaignName != nil {
		lead.CampaignName = *req.CampaignName
	}
	if req.FullName != nil {
		lead.FullName = *req.FullName
	}
	if req.Email != nil {
		lead.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		lead.PhoneNumber = *req.PhoneNumber
	}
	if req.Area != nil {
		lead.Area = *req.Area
	}
	if req.Semester != nil {
		lead.Semester = *req.Semester
	}
	if req.Difficulties != nil {
		lead.Difficulties = *req.Difficulties
	}
	if req.University != nil {
		lead.University = *req.University
	}
	if req.AssignedTo != nil {
		lead.AssignedTo = *req.AssignedTo
	}
	if req.Notes != nil {
		lead.Notes = *req.Notes
	}
	if req.Country != nil {
		lead.Country = *req.Country
	}
	if req.ResponseTime != nil {
		lead.ResponseTime = *req.ResponseTime
	}
	if req.Subscription != nil {
		lead.Subscription = req.Subscription
	}
	s.revision++

	return *lead, nil
}

// UpdateStatus 更新线索阶段
// 仅当阶段发生真实变化时刷新lastContactedAt，原阶段重复赋值不刷新
func (s *LeadStore) UpdateStatus(id string, status models.LeadStatus) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.Lead{}, ErrLeadNotFound
	}

	lead := &s.leads[i]
	if lead.Status != status {
		now := time.Now()
		lead.Status = status
		lead.LastContactedAt = &now
	}
	s.revision++

	utils.Logger.Info().
		Str("id", id).
		Str("status", string(status)).
		Msg("更新线索阶段")

	return *lead, nil
}

// Assign 设置线索的负责销售，仅保存用户ID弱引用
func (s *LeadStore) Assign(id string, userID string) (models.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.Lead{}, ErrLeadNotFound
	}

	lead := &s.leads[i]
	lead.AssignedTo = userID
	s.revision++

	return *lead, nil
}

// Replace 整体替换指定线索，供后台任务回写使用
func (s *LeadStore) Replace(lead models.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[lead.ID]
	if !ok {
		return ErrLeadNotFound
	}

	s.leads[i] = lead
	s.revision++
	return nil
}

// Load 批量装入线索(外部投放源/测试数据)，保持入参顺序
func (s *LeadStore) Load(leads []models.Lead) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, lead := range leads {
		if _, exists := s.index[lead.ID]; exists {
			continue
		}
		s.index[lead.ID] = len(s.leads)
		s.leads = append(s.leads, lead)
	}
	s.revision++
}
