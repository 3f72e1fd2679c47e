package service

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"foodshop/internal/model"
)

// DefaultSessionTTL 会话有效期，从创建时刻开始计算
const DefaultSessionTTL = 24 * time.Hour

// Session 服务端会话
type Session struct {
	ID        string     `json:"-"`
	UserID    string     `json:"id"`
	Username  string     `json:"username"`
	Role      model.Role `json:"role"`
	Email     string     `json:"email"`
	CreatedAt time.Time  `json:"-"`
	ExpiresAt time.Time  `json:"-"`
}

// ==================== SessionStore 会话存储 ====================

// SessionStore 进程内会话表
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore 创建会话存储，ttl <= 0 时使用默认 24 小时
func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// SetClock 替换时钟，测试用
func (s *SessionStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create 为账号建立新会话
func (s *SessionStore) Create(account *model.Account) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    account.ID,
		Username:  account.Username,
		Role:      account.Role,
		Email:     account.Email,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	s.sessions[sess.ID] = sess

	out := *sess
	return &out
}

// Get 获取有效会话；已过期的会话被移除并视为不存在
func (s *SessionStore) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}

	s.mu.RLock()
	sess, ok := s.sessions[id]
	now := s.now()
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !now.Before(sess.ExpiresAt) {
		s.Delete(id)
		return nil, false
	}

	out := *sess
	return &out, true
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// DeleteByUser 吊销某账号的全部会话，返回删除数量
func (s *SessionStore) DeleteByUser(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.UserID == userID {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// Sweep 清理过期会话，返回清理数量
func (s *SessionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	n := 0
	for id, sess := range s.sessions {
		if !now.Before(sess.ExpiresAt) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
