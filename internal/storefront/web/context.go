package web

import (
	"strconv"
	"strings"

	"github.com/ebookstore-next/internal/i18n"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/router"
	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/cart"
	"github.com/ebookstore-next/internal/storefront/session"

	"github.com/gin-gonic/gin"
)

const (
	ctxSessionID = "storefront_session_id"
	ctxPrincipal = "storefront_principal"

	flashSuccess = "success"
	flashInfo    = "info"
	flashWarning = "warning"
	flashDanger  = "danger"
)

func sessionID(c *gin.Context) string {
	return c.GetString(ctxSessionID)
}

func currentPrincipal(c *gin.Context) *storefront.Principal {
	value, ok := c.Get(ctxPrincipal)
	if !ok {
		return nil
	}
	principal, _ := value.(*storefront.Principal)
	return principal
}

func locale(c *gin.Context) string {
	return i18n.ResolveLocale(c)
}

func (h *Handler) t(c *gin.Context, key string, args ...interface{}) string {
	if len(args) == 0 {
		return i18n.T(locale(c), key)
	}
	return i18n.Sprintf(locale(c), key, args...)
}

// flash 写入一次性提示，失败只记录日志
func (h *Handler) flash(c *gin.Context, level, key string, args ...interface{}) {
	msg := h.t(c, key, args...)
	if err := h.sessions.PushFlash(c.Request.Context(), sessionID(c), session.Flash{Level: level, Message: msg}); err != nil {
		logger.Warnw("storefront_flash_push_failed",
			"request_id", router.RequestID(c),
			"key", key,
			"error", err,
		)
	}
}

func parseUintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func parseUintForm(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(strings.TrimSpace(c.PostForm(name)), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// parseQuantityForm 超出单行上限的数量视为无效
func parseQuantityForm(c *gin.Context, name string, fallback int) (int, bool) {
	raw := strings.TrimSpace(c.PostForm(name))
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value > cart.MaxQuantity {
		return 0, false
	}
	return value, true
}

// wantsJSON 异步请求返回 JSON
func wantsJSON(c *gin.Context) bool {
	if strings.EqualFold(c.GetHeader("X-Requested-With"), "XMLHttpRequest") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func logError(c *gin.Context, event string, err error, kv ...interface{}) {
	fields := append([]interface{}{
		"request_id", router.RequestID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"error", err,
	}, kv...)
	logger.Warnw(event, fields...)
}
