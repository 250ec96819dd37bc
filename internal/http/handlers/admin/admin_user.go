package admin

import (
	"strings"

	"github.com/ebookstore-next/internal/http/response"
	"github.com/ebookstore-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers 管理端用户列表，支持关键词（邮箱/姓名）与角色过滤
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	users, total, err := h.UserAuthService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  strings.TrimSpace(c.Query("keyword")),
		Role:     strings.TrimSpace(c.Query("role")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, users, buildPagination(page, pageSize, total))
}
