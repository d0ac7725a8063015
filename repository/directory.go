package repository

import (
	"sync"
	"time"

	"github.com/calculisto/crm_server/models"
	"github.com/calculisto/crm_server/utils"
)

// UserDirectory 用户名录
// 固定名录，登录时按邮箱查找；会话期间只读
type UserDirectory struct {
	mu    sync.RWMutex
	users []models.User
}

// NewUserDirectory 创建空名录
func NewUserDirectory() *UserDirectory {
	return &UserDirectory{}
}

// Seed 写入初始名录
func (d *UserDirectory) Seed(users []models.User) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users = append(d.users, users...)
}

// FindByEmail 按邮箱查找用户(忽略大小写)
func (d *UserDirectory) FindByEmail(email string) (*models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	email = utils.NormalizeEmail(email)
	for i := range d.users {
		if utils.NormalizeEmail(d.users[i].Email) == email {
			u := d.users[i]
			return &u, true
		}
	}
	return nil, false
}

// FindByID 按ID查找用户
func (d *UserDirectory) FindByID(id string) (*models.User, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := range d.users {
		if d.users[i].ID == id {
			u := d.users[i]
			return &u, true
		}
	}
	return nil, false
}

// All 返回全部用户
func (d *UserDirectory) All() []models.User {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]models.User, len(d.users))
	copy(out, d.users)
	return out
}

// defaultDirectory 默认用户名录
// 管理员不限区域，销售各自绑定一组国家
func defaultDirectory() []models.User {
	now := time.Now()
	return []models.User{
		{
			ID:              "1",
			Name:            "Admin User",
			Email:           "admin@calculisto.com",
			Password:        "admin123",
			Role:            models.UserRoleADMIN,
			AssignedRegions: []string{models.RegionAll},
			CreatedAt:       now,
		},
		{
			ID:              "2",
			Name:            "Sales Agent 1",
			Email:           "sales1@calculisto.com",
			Password:        "sales123",
			Role:            models.UserRoleSALES,
			AssignedRegions: []string{"Brazil", "Portugal"},
			CreatedAt:       now,
		},
		{
			ID:              "3",
			Name:            "Sales Agent 2",
			Email:           "sales2@calculisto.com",
			Password:        "sales123",
			Role:            models.UserRoleSALES,
			AssignedRegions: []string{"Spain", "Mexico"},
			CreatedAt:       now,
		},
	}
}

// InitializeDirectory 初始化用户名录
func InitializeDirectory(d *UserDirectory) {
	if len(d.All()) > 0 {
		utils.Logger.Info().Msg("用户名录已存在，跳过初始化")
		return
	}

	d.Seed(defaultDirectory())
	utils.Logger.Info().Int("count", len(d.All())).Msg("已初始化默认用户名录")
}
