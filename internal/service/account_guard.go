package service

import (
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/repository"
)

// AccountGuard 账号封禁校验。
// 每次写操作都从数据库读取 is_blocked，不信任 Token 或缓存中的旧状态。
type AccountGuard struct {
	userRepo repository.UserRepository
}

// NewAccountGuard 创建封禁校验器
func NewAccountGuard(userRepo repository.UserRepository) *AccountGuard {
	return &AccountGuard{userRepo: userRepo}
}

// Check 校验账号存在且未被封禁
func (g *AccountGuard) Check(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrUnauthorized
	}
	user, err := g.userRepo.GetByID(userID)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsBlocked {
		logger.Infow("account_guard_blocked", "user_id", userID)
		return nil, ErrBlockedAccount
	}
	return user, nil
}
