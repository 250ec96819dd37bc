// Package guard 前台访问控制
package guard

import (
	"net/url"
	"strings"

	"github.com/ebookstore-next/internal/storefront"
)

const (
	LoginPath        = "/account/login"
	AccessDeniedPath = "/account/access-denied"
)

// Decision 鉴权结果，只有 Authorized 与 Denied 两种
type Decision interface {
	decision()
}

// Authorized 允许访问
type Authorized struct {
	Principal *storefront.Principal
}

// Denied 拒绝访问并重定向
type Denied struct {
	RedirectTarget string
}

func (Authorized) decision() {}
func (Denied) decision() {}

// RequireUser 需要已登录用户
func RequireUser(principal *storefront.Principal, returnURL string) Decision {
	if !principal.IsAuthenticated() {
		return Denied{RedirectTarget: LoginRedirect(returnURL)}
	}
	return Authorized{Principal: principal}
}

// RequireAdmin 需要管理员，已登录的普通用户跳转到无权限页
func RequireAdmin(principal *storefront.Principal, returnURL string) Decision {
	if !principal.IsAuthenticated() {
		return Denied{RedirectTarget: LoginRedirect(returnURL)}
	}
	if !principal.IsAdmin() {
		return Denied{RedirectTarget: AccessDeniedPath}
	}
	return Authorized{Principal: principal}
}

// LoginRedirect 登录页地址，携带回跳地址
func LoginRedirect(returnURL string) string {
	returnURL = SafeReturnURL(returnURL)
	if returnURL == "" {
		return LoginPath
	}
	return LoginPath + "?returnUrl=" + url.QueryEscape(returnURL)
}

// SafeReturnURL 只接受站内相对路径
func SafeReturnURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") {
		return ""
	}
	return raw
}
