package authz

import (
	"fmt"
	"sort"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// Service 基于 casbin 的后台授权
// 角色登记为 (role, roleRegistry) 分组，附加角色登记为 (user:N, role) 分组
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 使用 gorm 适配器持久化策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz: %w", ErrUnavailable)
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTable)
	if err != nil {
		return nil, fmt.Errorf("authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("authz load policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	return nil
}

// Allow 账号角色（User/Admin）映射到同名内置角色，未通过时再检查单独授予的角色
func (s *Service) Allow(req Request) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	path, method := ResourcePath(req.Path), Method(req.Method)
	subjects := make([]string, 0, 2)
	if role, err := RoleName(req.AccountRole); err == nil {
		subjects = append(subjects, role)
	}
	if req.UserID != 0 {
		subjects = append(subjects, UserSubject(req.UserID))
	}
	for _, subject := range subjects {
		ok, err := s.enforcer.Enforce(subject, path, method)
		if err != nil {
			return false, fmt.Errorf("authz enforce %s: %w", subject, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// Roles 已登记的全部角色，按名称排序
func (s *Service) Roles() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredNamedGroupingPolicy(groupingRules, 1, roleRegistry)
	if err != nil {
		return nil, fmt.Errorf("authz list roles: %w", err)
	}
	roles := make([]string, 0, len(rules))
	for _, rule := range rules {
		if len(rule) > 0 && isNamedRole(rule[0]) {
			roles = append(roles, rule[0])
		}
	}
	sort.Strings(roles)
	return roles, nil
}

// RegisterRole 登记角色，已存在时直接返回规范名
func (s *Service) RegisterRole(raw string) (string, error) {
	role, err := RoleName(raw)
	if err != nil {
		return "", err
	}
	if err := s.ready(); err != nil {
		return "", err
	}
	if _, err := s.enforcer.AddNamedGroupingPolicy(groupingRules, role, roleRegistry); err != nil {
		return "", fmt.Errorf("authz register role %s: %w", role, err)
	}
	return role, nil
}

// Grant 为角色授予资源上的动作
func (s *Service) Grant(rawRole, object, action string) error {
	role, err := s.RegisterRole(rawRole)
	if err != nil {
		return err
	}
	act := Method(action)
	if act == "" {
		return ErrActionRequired
	}
	if _, err := s.enforcer.AddPolicy(role, ResourcePath(object), act); err != nil {
		return fmt.Errorf("authz grant %s: %w", role, err)
	}
	return nil
}

// RolePolicies 角色直接拥有的策略，不含继承
func (s *Service) RolePolicies(rawRole string) ([]Policy, error) {
	role, err := RoleName(rawRole)
	if err != nil {
		return nil, err
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, role)
	if err != nil {
		return nil, fmt.Errorf("authz role policies: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) >= 3 {
			policies = append(policies, Policy{Subject: rule[0], Object: rule[1], Action: rule[2]})
		}
	}
	return policies, nil
}

// AssignUserRoles 覆盖用户的附加角色
func (s *Service) AssignUserRoles(userID uint, rawRoles []string) error {
	if userID == 0 {
		return ErrUserRequired
	}
	if err := s.ready(); err != nil {
		return err
	}
	roles := make([]string, 0, len(rawRoles))
	for _, raw := range rawRoles {
		role, err := s.RegisterRole(raw)
		if err != nil {
			return err
		}
		roles = append(roles, role)
	}

	subject := UserSubject(userID)
	if _, err := s.enforcer.RemoveFilteredNamedGroupingPolicy(groupingRules, 0, subject); err != nil {
		return fmt.Errorf("authz clear user roles: %w", err)
	}
	for _, role := range roles {
		if _, err := s.enforcer.AddNamedGroupingPolicy(groupingRules, subject, role); err != nil {
			return fmt.Errorf("authz assign %s: %w", role, err)
		}
	}
	return nil
}

// UserRoles 用户直接持有的附加角色
func (s *Service) UserRoles(userID uint) ([]string, error) {
	if userID == 0 {
		return nil, ErrUserRequired
	}
	if err := s.ready(); err != nil {
		return nil, err
	}
	held, err := s.enforcer.GetRolesForUser(UserSubject(userID))
	if err != nil {
		return nil, fmt.Errorf("authz user roles: %w", err)
	}
	roles := make([]string, 0, len(held))
	for _, role := range held {
		if isNamedRole(role) {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)
	return roles, nil
}
