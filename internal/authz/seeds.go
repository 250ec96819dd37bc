package authz

import "fmt"

// RoleSeed 内置角色
type RoleSeed struct {
	Role     string
	Inherits []string
	Grants   []Policy
}

// BuiltinRoles admin 与 user 对应账号角色字段，其余角色按需授予
var BuiltinRoles = []RoleSeed{
	{
		Role:   "readonly_auditor",
		Grants: []Policy{{Object: "/admin/*", Action: "GET"}},
	},
	{
		Role:     "catalog_manager",
		Inherits: []string{"readonly_auditor"},
		Grants: []Policy{
			{Object: "/admin/books", Action: anyAction},
			{Object: "/admin/books/:id", Action: anyAction},
			{Object: "/admin/categories", Action: anyAction},
			{Object: "/admin/categories/:id", Action: anyAction},
		},
	},
	{
		Role:     "order_manager",
		Inherits: []string{"readonly_auditor"},
		Grants: []Policy{
			{Object: "/admin/orders", Action: "GET"},
			{Object: "/admin/orders/:id", Action: "GET"},
			{Object: "/admin/orders/:id", Action: "PUT"},
		},
	},
	{
		Role:   "admin",
		Grants: []Policy{{Object: "/admin/*", Action: anyAction}},
	},
	{Role: "user"},
}

// SeedRoles 写入内置角色，可重复执行
func (s *Service) SeedRoles() error {
	for _, seed := range BuiltinRoles {
		role, err := s.RegisterRole(seed.Role)
		if err != nil {
			return fmt.Errorf("seed %s: %w", seed.Role, err)
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.RegisterRole(parent)
			if err != nil {
				return fmt.Errorf("seed %s parent: %w", seed.Role, err)
			}
			if _, err := s.enforcer.AddNamedGroupingPolicy(groupingRules, role, parentRole); err != nil {
				return fmt.Errorf("seed %s inherit %s: %w", seed.Role, parentRole, err)
			}
		}
		for _, grant := range seed.Grants {
			if err := s.Grant(role, grant.Object, grant.Action); err != nil {
				return fmt.Errorf("seed %s: %w", seed.Role, err)
			}
		}
	}
	return nil
}
