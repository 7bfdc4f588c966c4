package service

import "github.com/storefront-next/internal/constants"

// Actor 请求级调用方身份，由鉴权中间件解析后显式传入各业务操作
type Actor struct {
	UserID uint
	Role   string
}

// IsAdmin 是否管理员
func (a Actor) IsAdmin() bool {
	return a.Role == constants.RoleAdmin
}

func (a Actor) valid() bool {
	return a.UserID != 0
}
