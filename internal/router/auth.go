package router

import (
	"strings"

	"github.com/ebookstore-next/internal/authz"
	"github.com/ebookstore-next/internal/http/response"
	"github.com/ebookstore-next/internal/i18n"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/repository"
	"github.com/ebookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// 鉴权通过后写入 gin.Context 的身份字段
const (
	ContextUserID    = "user_id"
	ContextUserEmail = "user_email"
	ContextUserRole  = "user_role"
)

func abortUnauthorized(c *gin.Context, key string) {
	response.Unauthorized(c, i18n.T(i18n.ResolveLocale(c), key))
	c.Abort()
}

// bearerToken 解析 "Bearer <token>"，第二个返回值表示头部是否存在
func bearerToken(header string) (string, bool, bool) {
	if header == "" {
		return "", false, false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" || strings.TrimSpace(token) == "" {
		return "", true, false
	}
	return strings.TrimSpace(token), true, true
}

// UserJWTAuthMiddleware 校验 JWT 后按用户 ID 回查数据库
// 角色取自数据库，签发后的角色变更立即生效
func UserJWTAuthMiddleware(authService *service.UserAuthService, userRepo repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authService == nil || userRepo == nil {
			logger.Errorw("user_jwt_middleware_unavailable")
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		token, present, ok := bearerToken(c.GetHeader("Authorization"))
		switch {
		case !present:
			abortUnauthorized(c, "error.unauthorized")
			return
		case !ok:
			abortUnauthorized(c, "error.auth_header_invalid")
			return
		}

		claims, err := authService.ParseUserJWT(token)
		if err != nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}
		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			logger.Warnw("user_jwt_lookup_failed", "user_id", claims.UserID, "error", err)
		}
		if user == nil {
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Set(ContextUserEmail, user.Email)
		c.Set(ContextUserRole, user.Role)
		c.Next()
	}
}

// AdminRBACMiddleware 按路由模板与方法判定后台权限，需挂在 UserJWTAuthMiddleware 之后
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := authz.Request{
			UserID:      c.GetUint(ContextUserID),
			AccountRole: c.GetString(ContextUserRole),
			Path:        c.FullPath(),
			Method:      c.Request.Method,
		}
		if strings.TrimSpace(req.Path) == "" {
			req.Path = c.Request.URL.Path
		}
		if req.UserID == 0 {
			abortUnauthorized(c, "error.unauthorized")
			return
		}

		allowed, err := authzService.Allow(req)
		if err != nil {
			logger.Errorw("admin_rbac_enforce_failed",
				"user_id", req.UserID,
				"method", req.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			abortUnauthorized(c, "error.unauthorized")
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"user_id", req.UserID,
				"role", req.AccountRole,
				"method", req.Method,
				"resource", authz.ResourcePath(req.Path),
			)
			response.Forbidden(c, i18n.T(i18n.ResolveLocale(c), "error.forbidden"))
			c.Abort()
			return
		}
		c.Next()
	}
}
