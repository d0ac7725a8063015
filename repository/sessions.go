package repository

import (
	"sync"
	"time"

	"github.com/calculisto/crm_server/utils"
)

// Session 登录会话
// 登录时创建，登出时销毁，生命周期显式管理
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// SessionStore 会话存储，按会话ID(jti)索引
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

// NewSessionStore 创建会话存储
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]Session),
	}
}

// Create 登录成功后注册会话
func (s *SessionStore) Create(sessionID, userID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	session := Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	s.sessions[sessionID] = session

	utils.Logger.Info().
		Str("sessionId", sessionID).
		Str("userId", userID).
		Msg("创建会话")

	return session
}

// Exists 会话是否有效(未被登出撤销)
func (s *SessionStore) Exists(sessionID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.sessions[sessionID]
	return ok
}

// Revoke 撤销会话，幂等: 不存在的会话直接返回
func (s *SessionStore) Revoke(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)

	utils.Logger.Info().Str("sessionId", sessionID).Msg("撤销会话")
}

// Count 当前有效会话数
func (s *SessionStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
