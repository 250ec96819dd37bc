package web

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/apiclient"
	"github.com/ebookstore-next/internal/storefront/guard"

	"github.com/gin-gonic/gin"
)

type loginView struct {
	Email     string
	ReturnURL string
}

type loginForm struct {
	Email     string `form:"email"`
	Password  string `form:"password"`
	ReturnURL string `form:"return_url"`
}

// LoginPage 登录页面
func (h *Handler) LoginPage(c *gin.Context) {
	returnURL := guard.SafeReturnURL(c.Query("returnUrl"))
	if currentPrincipal(c).IsAuthenticated() {
		c.Redirect(http.StatusFound, orHome(returnURL))
		return
	}
	h.render(c, http.StatusOK, "login", pageData{
		Title: h.t(c, "store.title_login"),
		Data:  loginView{ReturnURL: returnURL},
	})
}

// Login 通过 API 登录并写入会话
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	_ = c.ShouldBind(&form)
	form.Email = strings.TrimSpace(form.Email)
	returnURL := guard.SafeReturnURL(form.ReturnURL)

	fail := func(status int, key string) {
		h.render(c, status, "login", pageData{
			Title: h.t(c, "store.title_login"),
			Error: h.t(c, key),
			Data:  loginView{Email: form.Email, ReturnURL: returnURL},
		})
	}
	if form.Email == "" || form.Password == "" {
		fail(http.StatusUnprocessableEntity, "store.login_failed")
		return
	}

	principal, err := h.api.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if errors.Is(err, storefront.ErrUnauthorized) || errors.Is(err, storefront.ErrValidationFailure) {
			fail(http.StatusUnauthorized, "store.login_failed")
			return
		}
		logError(c, "storefront_login_failed", err)
		fail(http.StatusServiceUnavailable, "store.service_unavailable")
		return
	}
	if err := h.rotateSession(c, principal); err != nil {
		logError(c, "storefront_session_rotate_failed", err, "user_id", principal.UserID)
		fail(http.StatusServiceUnavailable, "store.service_unavailable")
		return
	}
	h.flash(c, flashSuccess, "store.login_success")
	c.Redirect(http.StatusFound, orHome(returnURL))
}

// Logout 退出登录，购物车保留
func (h *Handler) Logout(c *gin.Context) {
	h.expireLogin(c)
	h.flash(c, flashInfo, "store.logout_success")
	c.Redirect(http.StatusFound, "/")
}

// AccessDenied 无权限页面
func (h *Handler) AccessDenied(c *gin.Context) {
	h.renderAccessDenied(c)
}

func (h *Handler) renderAccessDenied(c *gin.Context) {
	h.render(c, http.StatusForbidden, "access_denied", pageData{
		Title: h.t(c, "store.title_access_denied"),
		Error: h.t(c, "store.access_denied"),
	})
}

// AddFavorite 收藏图书
func (h *Handler) AddFavorite(c *gin.Context) {
	bookID, ok := parseUintParam(c, "id")
	if !ok {
		h.renderNotFound(c)
		return
	}
	target := guard.SafeReturnURL(c.PostForm("return_url"))
	if target == "" {
		target = "/books"
	}
	ctx := c.Request.Context()
	book, err := h.api.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			h.flash(c, flashDanger, "store.book_not_found")
		} else {
			logError(c, "storefront_favorite_book_lookup_failed", err, "book_id", bookID)
			h.flash(c, flashDanger, "store.favorite_failed")
		}
		c.Redirect(http.StatusFound, target)
		return
	}

	principal := currentPrincipal(c)
	if err := h.api.AddFavorite(ctx, principal.Token, principal.UserID, bookID); err != nil {
		switch {
		case errors.Is(err, apiclient.ErrConflict):
			h.flash(c, flashInfo, "store.favorite_exists")
		case errors.Is(err, storefront.ErrUnauthorized):
			h.expireLogin(c)
			h.flash(c, flashInfo, "store.login_required")
			c.Redirect(http.StatusFound, guard.LoginRedirect(target))
			return
		default:
			logError(c, "storefront_favorite_failed", err, "book_id", bookID)
			h.flash(c, flashDanger, "store.favorite_failed")
		}
		c.Redirect(http.StatusFound, target)
		return
	}
	h.flash(c, flashSuccess, "store.favorite_added", book.Title)
	c.Redirect(http.StatusFound, target)
}

// AdminDashboard 后台总览
func (h *Handler) AdminDashboard(c *gin.Context) {
	principal := currentPrincipal(c)
	dashboard, err := h.api.GetDashboard(c.Request.Context(), principal.Token)
	if err != nil {
		if errors.Is(err, storefront.ErrUnauthorized) {
			h.renderAccessDenied(c)
			return
		}
		h.renderUnavailable(c, err)
		return
	}
	h.render(c, http.StatusOK, "admin", pageData{
		Title: h.t(c, "store.title_admin"),
		Data:  dashboard,
	})
}

// NotFound 未匹配路由
func (h *Handler) NotFound(c *gin.Context) {
	h.renderNotFound(c)
}

func orHome(target string) string {
	if target == "" {
		return "/"
	}
	return target
}
