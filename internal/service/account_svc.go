package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"foodshop/internal/model"
	"foodshop/internal/repository"
)

// ==================== AccountService 账号服务 ====================

type AccountService struct {
	accountRepo repository.AccountRepository
	sessions    *SessionStore
	log         *zap.Logger
	now         func() time.Time
}

func NewAccountService(accountRepo repository.AccountRepository, sessions *SessionStore, log *zap.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		sessions:    sessions,
		log:         log,
		now:         time.Now,
	}
}

// ListSellers 仅返回卖家账号
func (s *AccountService) ListSellers(ctx context.Context) []model.Account {
	return s.accountRepo.ListByRole(ctx, model.RoleSeller)
}

// CreateSeller 管理员创建卖家
func (s *AccountService) CreateSeller(ctx context.Context, username, password, email string) (*model.Account, error) {
	return s.CreateAccount(ctx, model.RoleSeller, username, password, email)
}

// CreateAccount 创建任意角色账号，启动引导与命令行工具也走这里
func (s *AccountService) CreateAccount(ctx context.Context, role model.Role, username, password, email string) (*model.Account, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return nil, ErrMissingFields
	}
	if !role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:        model.NewID(),
		Username:  username,
		Password:  string(hash),
		Email:     email,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create account: %w", err)
	}

	s.log.Info("账号已创建",
		zap.String("username", account.Username),
		zap.String("role", string(account.Role)))
	return account, nil
}

// DeleteSeller 幂等删除卖家，未找到也视为成功
// 管理员账号不会被删除；被删卖家的在线会话同时吊销
func (s *AccountService) DeleteSeller(ctx context.Context, id string) error {
	deleted, err := s.accountRepo.DeleteByRole(ctx, id, model.RoleSeller)
	if err != nil {
		return fmt.Errorf("delete seller: %w", err)
	}
	if !deleted {
		return nil
	}

	revoked := s.sessions.DeleteByUser(id)
	s.log.Info("卖家已删除",
		zap.String("seller_id", id),
		zap.Int("revoked_sessions", revoked))
	return nil
}

// EnsureDefaultAdmin 账号集合为空时创建默认管理员，返回是否创建
func (s *AccountService) EnsureDefaultAdmin(ctx context.Context, username, password, email string) (bool, error) {
	if s.accountRepo.Count(ctx) > 0 {
		return false, nil
	}
	if _, err := s.CreateAccount(ctx, model.RoleAdmin, username, password, email); err != nil {
		return false, err
	}
	return true, nil
}
