package repository

import (
	"context"

	"go.uber.org/zap"

	"foodshop/internal/model"
)

// ==================== AccountRepository 账号仓库 ====================

// AccountRepository 账号仓库接口
type AccountRepository interface {
	List(ctx context.Context) []model.Account
	ListByRole(ctx context.Context, role model.Role) []model.Account
	GetByID(ctx context.Context, id string) (*model.Account, error)
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	// Create 用户名重复时返回 ErrDuplicateKey
	Create(ctx context.Context, account *model.Account) error
	// DeleteByRole 仅删除 id 与角色都匹配的账号，返回是否删除
	DeleteByRole(ctx context.Context, id string, role model.Role) (bool, error)
	Count(ctx context.Context) int
}

type accountRepository struct {
	accounts collection[model.Account]
}

// NewAccountRepository 创建账号仓库
func NewAccountRepository(store RecordStore, log *zap.Logger) AccountRepository {
	return &accountRepository{
		accounts: newCollection[model.Account](store, CollectionAccounts, log),
	}
}

func (r *accountRepository) List(ctx context.Context) []model.Account {
	return r.accounts.all(ctx)
}

func (r *accountRepository) ListByRole(ctx context.Context, role model.Role) []model.Account {
	return r.accounts.filter(ctx, func(a *model.Account) bool {
		return a.Role == role
	})
}

// GetByID 未找到时返回 nil, nil
func (r *accountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	account, _ := r.accounts.find(ctx, func(a *model.Account) bool {
		return a.ID == id
	})
	return account, nil
}

// GetByUsername 未找到时返回 nil, nil
func (r *accountRepository) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	account, _ := r.accounts.find(ctx, func(a *model.Account) bool {
		return a.Username == username
	})
	return account, nil
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.accounts.update(ctx, func(items []model.Account) ([]model.Account, error) {
		for _, a := range items {
			if a.Username == account.Username {
				return nil, ErrDuplicateKey
			}
		}
		return append(items, *account), nil
	})
}

func (r *accountRepository) DeleteByRole(ctx context.Context, id string, role model.Role) (bool, error) {
	deleted := false
	err := r.accounts.update(ctx, func(items []model.Account) ([]model.Account, error) {
		kept := items[:0]
		for _, a := range items {
			if a.ID == id && a.Role == role {
				deleted = true
				continue
			}
			kept = append(kept, a)
		}
		return kept, nil
	})
	return deleted, err
}

func (r *accountRepository) Count(ctx context.Context) int {
	return len(r.accounts.all(ctx))
}
