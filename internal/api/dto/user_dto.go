package dto

import (
	"time"

	"foodshop/internal/model"
)

// ==================== 登录 ====================

// LoginRequest 登录请求
// 字段缺失按账号密码错误处理，不在绑定阶段拦截
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse 登录响应
type LoginResponse struct {
	Success  bool       `json:"success"`
	Role     model.Role `json:"role"`
	Username string     `json:"username"`
}

// SessionUser 会话中的用户信息
type SessionUser struct {
	ID       string     `json:"id"`
	Username string     `json:"username"`
	Role     model.Role `json:"role"`
	Email    string     `json:"email"`
}

// CheckAuthResponse 会话检查
type CheckAuthResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *SessionUser `json:"user,omitempty"`
}

// ==================== 卖家管理（管理员） ====================

// CreateSellerRequest 创建卖家请求
type CreateSellerRequest struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
}

// AccountInfo 账号信息，不含密码
type AccountInfo struct {
	ID        string     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateSellerResponse 创建卖家响应
type CreateSellerResponse struct {
	Success bool         `json:"success"`
	Seller  *AccountInfo `json:"seller"`
}

func NewAccountInfo(a *model.Account) *AccountInfo {
	return &AccountInfo{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

func NewAccountList(accounts []model.Account) []*AccountInfo {
	list := make([]*AccountInfo, 0, len(accounts))
	for i := range accounts {
		list = append(list, NewAccountInfo(&accounts[i]))
	}
	return list
}

// ==================== 通用 ====================

// SuccessResponse 仅表示成功
type SuccessResponse struct {
	Success bool `json:"success"`
}

// ErrorResponse 错误响应
type ErrorResponse struct {
	Error string `json:"error"`
}
