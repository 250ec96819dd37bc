package admin

import (
	"strings"

	"github.com/ebookstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetDashboardOverview 获取后台仪表盘总览，refresh=1 时跳过缓存
func (h *Handler) GetDashboardOverview(c *gin.Context) {
	refresh := strings.TrimSpace(c.Query("refresh"))
	forceRefresh := refresh == "1" || strings.EqualFold(refresh, "true")

	data, err := h.DashboardService.GetOverview(forceRefresh)
	if err != nil {
		respondError(c, response.CodeInternal, "error.dashboard_failed", err)
		return
	}
	response.Success(c, data)
}
