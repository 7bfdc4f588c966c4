package authz

import (
	"fmt"

	"github.com/storefront-next/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleBuyer,
			Policies: []Policy{
				{Object: "/me", Action: "GET"},
				{Object: "/carts", Action: "GET"},
				{Object: "/carts/merge", Action: "POST"},
				{Object: "/carts/:product_id", Action: "POST"},
				{Object: "/carts/:product_id", Action: "PUT"},
				{Object: "/carts/:product_id", Action: "DELETE"},
				{Object: "/orders", Action: "POST"},
				{Object: "/orders/user", Action: "GET"},
				{Object: "/orders/:id/status", Action: "PUT"},
				{Object: OrderStatusObject(constants.OrderStatusCancelled), Action: ActionSetStatus},
			},
		},
		{
			Role: constants.RoleAdmin,
			Policies: []Policy{
				{Object: "/me", Action: "GET"},
				{Object: "/orders", Action: "GET"},
				{Object: "/carts/all", Action: "GET"},
				{Object: "/users/:id/block", Action: "PUT"},
				{Object: "/orders/:id/status", Action: "PUT"},
				{Object: orderStatusObjectPrefix + "*", Action: ActionSetStatus},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略，重复执行不会产生重复策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, policy := range seed.Policies {
			action := NormalizeAction(policy.Action)
			if action == "" {
				return fmt.Errorf("builtin policy action is required")
			}
			if _, err := s.enforcer.AddPolicy(role, NormalizeObject(policy.Object), action); err != nil {
				return fmt.Errorf("add builtin policy failed: %w", err)
			}
		}
	}
	return nil
}
