package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"foodshop/internal/model"
	"foodshop/internal/repository"
)

// ==================== AuthService 认证服务 ====================

// AuthService 登录、登出与角色校验
type AuthService struct {
	accountRepo repository.AccountRepository
	sessions    *SessionStore
	log         *zap.Logger
}

// NewAuthService 工厂方法
func NewAuthService(accountRepo repository.AccountRepository, sessions *SessionStore, log *zap.Logger) *AuthService {
	return &AuthService{
		accountRepo: accountRepo,
		sessions:    sessions,
		log:         log,
	}
}

// Login 用户名与密码都匹配时建立会话
// 用户不存在与密码错误返回同一个错误
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	sess := s.sessions.Create(account)
	s.log.Info("用户登录",
		zap.String("username", account.Username),
		zap.String("role", string(account.Role)))
	return sess, nil
}

// Logout 提前使会话失效，会话不存在时无操作
func (s *AuthService) Logout(sessionID string) {
	s.sessions.Delete(sessionID)
}

// Current 当前会话，未登录返回 false
func (s *AuthService) Current(sessionID string) (*Session, bool) {
	return s.sessions.Get(sessionID)
}

// Authorize 校验会话存在且角色一致
// admin 与 seller 互不包含
func (s *AuthService) Authorize(sessionID string, role model.Role) (*Session, error) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrUnauthenticated
	}
	if sess.Role != role {
		return nil, ErrForbidden
	}
	return sess, nil
}
