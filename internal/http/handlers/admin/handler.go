package admin

import "github.com/ebookstore-next/internal/provider"

// Handler 后台管理接口处理器入口
// 说明：路由层已完成 JWT 与 RBAC 校验，这里不再区分角色。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
