package public

import "github.com/ebookstore-next/internal/provider"

// Handler 公开与用户侧 API 处理器
// 图书、分类浏览无需登录；收藏与订单需要用户 JWT。
type Handler struct {
	*provider.Container
}

// New 创建公开接口处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
