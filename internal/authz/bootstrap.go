package authz

import (
	"fmt"

	"github.com/bonus-office/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵。
// viewer 只读，manager 可操作全部奖金域资源，super 不受限。
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.AdminRoleViewer,
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
				{Object: "/admin/password", Action: "PUT"},
			},
		},
		{
			Role:     constants.AdminRoleManager,
			Inherits: []string{constants.AdminRoleViewer},
			Policies: []Policy{
				{Object: "/admin/bonuses", Action: "*"},
				{Object: "/admin/bonuses/:id", Action: "*"},
				{Object: "/admin/bonuses/:id/activate", Action: "*"},
				{Object: "/admin/bonuses/:id/deactivate", Action: "*"},
				{Object: "/admin/bonuses/:id/expire", Action: "*"},
				{Object: "/admin/bonuses/:id/rewards", Action: "*"},
				{Object: "/admin/bonuses/:id/apply-template", Action: "*"},
				{Object: "/admin/bonuses/bulk", Action: "*"},
				{Object: "/admin/bonuses/expire-sweep", Action: "*"},
				{Object: "/admin/bonuses/from-template", Action: "*"},
				{Object: "/admin/rewards/:type/:id", Action: "*"},
				{Object: "/admin/bonus-templates", Action: "*"},
				{Object: "/admin/bonus-templates/:id", Action: "*"},
				{Object: "/admin/marketing-requests", Action: "*"},
				{Object: "/admin/marketing-requests/:id", Action: "*"},
				{Object: "/admin/marketing-requests/:id/activate", Action: "*"},
				{Object: "/admin/marketing-requests/:id/reject", Action: "*"},
				{Object: "/admin/marketing-requests/:id/reset", Action: "*"},
				{Object: "/admin/dsl-tags", Action: "*"},
				{Object: "/admin/dsl-tags/:id", Action: "*"},
				{Object: "/admin/projects", Action: "*"},
				{Object: "/admin/projects/:id", Action: "*"},
				{Object: "/admin/permanent-bonuses", Action: "*"},
				{Object: "/admin/permanent-bonuses/:id", Action: "*"},
			},
		},
		{
			Role: constants.AdminRoleSuper,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}

	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return err
		}

		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
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
