package admin

import (
	"net/url"
	"strings"

	"github.com/ebookstore-next/internal/authz"
	"github.com/ebookstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

var authzErrorRules = []errorRule{
	{Target: authz.ErrRoleInvalid, Code: response.CodeBadRequest, Key: "error.role_invalid"},
}

type authzSetUserRolesPayload struct {
	Roles []string `json:"roles"`
}

// GetAuthzMe 当前用户的账号角色与附加角色
func (h *Handler) GetAuthzMe(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	roles, err := h.AuthzService.UserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, gin.H{
		"user_id":      userID,
		"account_role": c.GetString("user_role"),
		"roles":        roles,
	})
}

// ListAuthzRoles 角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.Roles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	policies, err := h.AuthzService.RolePolicies(role)
	if err != nil {
		respondMapped(c, err, authzErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, policies)
}

// GetAuthzUserRoles 查询用户附加角色
func (h *Handler) GetAuthzUserRoles(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "error.user_id_invalid")
	if !ok {
		return
	}
	roles, err := h.AuthzService.UserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, roles)
}

// SetAuthzUserRoles 覆盖设置用户附加角色
func (h *Handler) SetAuthzUserRoles(c *gin.Context) {
	userID, ok := parseIDParam(c, "id", "error.user_id_invalid")
	if !ok {
		return
	}
	var payload authzSetUserRolesPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	if err := h.AuthzService.AssignUserRoles(userID, payload.Roles); err != nil {
		respondMapped(c, err, authzErrorRules, response.CodeInternal, "error.authz_failed")
		return
	}
	roles, err := h.AuthzService.UserRoles(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	operatorID, _ := c.Get("user_id")
	requestLog(c).Infow("admin_authz_user_roles_updated",
		"operator_id", operatorID,
		"user_id", userID,
		"roles", roles,
	)
	response.Success(c, roles)
}

func decodeRoleParam(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
