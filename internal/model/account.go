package model

import "time"

// Role 系统角色
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSeller
}

// Account 后台账号 (管理员 / 卖家)
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"password"` // bcrypt 哈希
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
