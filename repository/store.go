package repository

import (
	"github.com/calculisto/crm_server/utils"
)

// 各存储的全局实例，服务启动时初始化一次
var (
	Leads    *LeadStore
	Users    *UserDirectory
	Sessions *SessionStore
	Stages   *StageRegistry
)

// InitStores 初始化全部内存存储
// 单租户设计: 进程内只有一份线索集合和一份用户名录，无持久化
func InitStores() {
	Leads = NewLeadStore()
	Users = NewUserDirectory()
	Sessions = NewSessionStore()
	Stages = NewStageRegistry()

	InitializeDirectory(Users)
	InitializeStages(Stages)

	utils.Logger.Info().Msg("内存存储初始化完成")
}

// GetStoreStatus 获取存储状态，供健康检查路由使用
func GetStoreStatus() map[string]interface{} {
	return map[string]interface{}{
		"leads": map[string]interface{}{
			"count":    Leads.Count(),
			"revision": Leads.Revision(),
		},
		"users": map[string]interface{}{
			"count": len(Users.All()),
		},
		"sessions": map[string]interface{}{
			"count": Sessions.Count(),
		},
		"stages": map[string]interface{}{
			"count": len(Stages.All()),
		},
	}
}
