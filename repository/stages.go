package repository

import (
	"sync"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/utils"
)

// StageRegistry 看板阶段配置
// 阶段集合是开放的: 除六个默认阶段外允许注册新的阶段键
// 注册仅用于看板列与标签展示，不限制线索阶段的取值
type StageRegistry struct {
	mu     sync.RWMutex
	order  []models.LeadStatus
	stages map[models.LeadStatus]models.StageConfig
}

// NewStageRegistry 创建空的阶段配置
func NewStageRegistry() *StageRegistry {
	return &StageRegistry{
		stages: make(map[models.LeadStatus]models.StageConfig),
	}
}

// All 按注册顺序返回全部阶段
func (r *StageRegistry) All() []models.StageConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.StageConfig, 0, len(r.order))
	for _, key := range r.order {
		out = append(out, r.stages[key])
	}
	return out
}

// Get 按键查找阶段配置
func (r *StageRegistry) Get(key models.LeadStatus) (models.StageConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stage, ok := r.stages[key]
	return stage, ok
}

// Upsert 新增或更新阶段配置，新键追加到末尾
func (r *StageRegistry) Upsert(req models.StageUpsertRequest) models.StageConfig {
	r.mu.Lock()
	defer r.mu.Unlock()

	stage, exists := r.stages[req.Key]
	if !exists {
		stage = models.StageConfig{
			Key:       req.Key,
			CreatedAt: time.Now(),
		}
		r.order = append(r.order, req.Key)
	}
	stage.Label = req.Label
	if req.Color != "" {
		stage.Color = req.Color
	}
	r.stages[req.Key] = stage

	utils.Logger.Info().
		Str("key", string(req.Key)).
		Str("label", req.Label).
		Bool("created", !exists).
		Msg("更新阶段配置")

	return stage
}

// InitializeStages 注册默认的六个销售阶段
func InitializeStages(r *StageRegistry) {
	defaults := []models.StageUpsertRequest{
		{Key: models.LeadStatusNEW, Label: "New Lead", Color: "#3b82f6"},
		{Key: models.LeadStatusBOOKED, Label: "Booked", Color: "#6366f1"},
		{Key: models.LeadStatusNOANSWER, Label: "No Answer", Color: "#f97316"},
		{Key: models.LeadStatusCALLLATER, Label: "Call Later", Color: "#f59e0b"},
		{Key: models.LeadStatusWON, Label: "Won", Color: "#10b981"},
		{Key: models.LeadStatusLOST, Label: "Lost", Color: "#f43f5e"},
	}

	for _, stage := range defaults {
		if _, exists := r.Get(stage.Key); !exists {
			r.Upsert(stage)
		}
	}
	utils.Logger.Info().Int("count", len(r.All())).Msg("已初始化看板阶段配置")
}
