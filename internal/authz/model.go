package authz

import (
	"errors"
	"fmt"
	"strings"
)

const (
	casbinTable   = "casbin_rule"
	apiPrefix     = "/api/v1"
	rolePrefix    = "role:"
	userPrefix    = "user:"
	roleRegistry  = "role:__registry__"
	anyAction     = "*"
	groupingRules = "g"
)

// rbacModel 主体可以是角色或用户，资源按 keyMatch2 匹配 gin 路由模板
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	// ErrUnavailable 授权服务未初始化
	ErrUnavailable = errors.New("authz service unavailable")
	// ErrRoleInvalid 角色名为空或为保留名
	ErrRoleInvalid = errors.New("invalid role")
	// ErrUserRequired 缺少用户 ID
	ErrUserRequired = errors.New("user id is required")
	// ErrActionRequired 缺少授权动作
	ErrActionRequired = errors.New("action is required")
)

// Policy 一条角色授权策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Request 一次授权判定
type Request struct {
	UserID      uint
	AccountRole string
	Path        string
	Method      string
}

// UserSubject 用户在策略中的主体名
func UserSubject(userID uint) string {
	return fmt.Sprintf("%s%d", userPrefix, userID)
}

// RoleName 规范化角色名，例如 "Catalog Manager" -> "role:catalog_manager"
func RoleName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	name = strings.TrimPrefix(name, rolePrefix)
	name = strings.Join(strings.Fields(name), "_")
	if name == "" {
		return "", ErrRoleInvalid
	}
	role := rolePrefix + name
	if role == roleRegistry {
		return "", ErrRoleInvalid
	}
	return role, nil
}

// ResourcePath 去掉 API 前缀后的资源路径
func ResourcePath(raw string) string {
	path := strings.TrimSpace(raw)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	switch {
	case path == apiPrefix:
		return "/"
	case strings.HasPrefix(path, apiPrefix+"/"):
		return path[len(apiPrefix):]
	}
	return path
}

// Method 规范化 HTTP 方法
func Method(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func isNamedRole(subject string) bool {
	return strings.HasPrefix(subject, rolePrefix) && subject != roleRegistry
}
