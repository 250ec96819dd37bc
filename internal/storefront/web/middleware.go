package web

import (
	"net/http"
	"strings"

	"github.com/ebookstore-next/internal/router"
	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/apiclient"
	"github.com/ebookstore-next/internal/storefront/cart"
	"github.com/ebookstore-next/internal/storefront/guard"
	"github.com/ebookstore-next/internal/storefront/session"

	"github.com/gin-gonic/gin"
)

const defaultSessionCookie = "ebook_session"

func (h *Handler) cookieName() string {
	if name := strings.TrimSpace(h.cfg.SessionCookie); name != "" {
		return name
	}
	return defaultSessionCookie
}

func (h *Handler) setSessionCookie(c *gin.Context, sid string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName(), sid, int(h.cfg.SessionTTL().Seconds()), "/", "", h.cfg.CookieSecure, true)
}

// SessionMiddleware 读取或签发会话 cookie，并加载登录身份
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(h.cookieName())
		if err != nil || !session.ValidID(sid) {
			sid = session.NewID()
		}
		// 每次请求续期 cookie
		h.setSessionCookie(c, sid)
		c.Set(ctxSessionID, sid)

		ctx := apiclient.WithRequestID(c.Request.Context(), router.RequestID(c))
		c.Request = c.Request.WithContext(ctx)

		principal, err := h.sessions.LoadPrincipal(ctx, sid)
		if err != nil {
			logError(c, "storefront_session_load_failed", err)
		}
		if principal != nil {
			c.Set(ctxPrincipal, principal)
		}
		c.Next()
	}
}

// rotateSession 登录后更换会话 ID，购物车迁移到新会话，旧会话的购物车清空
func (h *Handler) rotateSession(c *gin.Context, principal *storefront.Principal) error {
	ctx := c.Request.Context()
	oldSID := sessionID(c)
	current, err := h.sessions.Load(ctx, oldSID)
	if err != nil {
		return err
	}
	newSID := session.NewID()
	if err := h.sessions.Save(ctx, newSID, current); err != nil {
		return err
	}
	if err := h.sessions.SavePrincipal(ctx, newSID, principal); err != nil {
		return err
	}
	if err := h.sessions.Save(ctx, oldSID, cart.New()); err != nil {
		logError(c, "storefront_session_rotate_cleanup_failed", err, "step", "cart")
	}
	if err := h.sessions.ClearPrincipal(ctx, oldSID); err != nil {
		logError(c, "storefront_session_rotate_cleanup_failed", err, "step", "principal")
	}
	h.setSessionCookie(c, newSID)
	c.Set(ctxSessionID, newSID)
	c.Set(ctxPrincipal, principal)
	return nil
}

// enforce 执行鉴权结果，拒绝时重定向
func (h *Handler) enforce(c *gin.Context, decision guard.Decision) {
	switch d := decision.(type) {
	case guard.Authorized:
		c.Next()
	case guard.Denied:
		if d.RedirectTarget != guard.AccessDeniedPath {
			h.flash(c, flashInfo, "store.login_required")
		}
		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "redirect": d.RedirectTarget})
			return
		}
		c.Redirect(http.StatusFound, d.RedirectTarget)
		c.Abort()
	}
}

// RequireUser 需要登录
func (h *Handler) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.enforce(c, guard.RequireUser(currentPrincipal(c), returnURL(c)))
	}
}

// RequireAdmin 需要管理员
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		h.enforce(c, guard.RequireAdmin(currentPrincipal(c), returnURL(c)))
	}
}

// returnURL POST 请求回到其页面而不是表单地址
func returnURL(c *gin.Context) string {
	if c.Request.Method == http.MethodGet {
		return c.Request.URL.RequestURI()
	}
	if ref := c.PostForm("return_url"); guard.SafeReturnURL(ref) != "" {
		return ref
	}
	return ""
}

// expireLogin API 拒绝令牌时清除本地登录状态
func (h *Handler) expireLogin(c *gin.Context) {
	if err := h.sessions.ClearPrincipal(c.Request.Context(), sessionID(c)); err != nil {
		logError(c, "storefront_session_clear_failed", err)
	}
	c.Set(ctxPrincipal, (*storefront.Principal)(nil))
}
