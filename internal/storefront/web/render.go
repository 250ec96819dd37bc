package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/i18n"
	"github.com/ebookstore-next/internal/router"
	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/session"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var templateFS embed.FS

const layoutFile = "templates/layout.html"

// pageData 页面公共数据
type pageData struct {
	Title     string
	Locale    string
	Principal *storefront.Principal
	CartCount int
	Flashes   []session.Flash
	Error     string
	Fields    map[string]string
	RequestID string
	Data      interface{}
}

var templateFuncs = template.FuncMap{
	"T": i18n.T,
	"money": func(value decimal.Decimal) string {
		return value.StringFixed(2) + " TL"
	},
	"date": func(value time.Time) string {
		if value.IsZero() {
			return ""
		}
		return value.Format("02.01.2006")
	},
	"datetime": func(value time.Time) string {
		if value.IsZero() {
			return ""
		}
		return value.Format("02.01.2006 15:04")
	},
	"truncate": func(value string, n int) string {
		runes := []rune(value)
		if len(runes) <= n {
			return value
		}
		return string(runes[:n]) + "…"
	},
	"selected": func(current, option string) bool {
		return current == option
	},
}

// loadTemplates 每个页面与布局单独组合，避免 content 块互相覆盖
func loadTemplates() (map[string]*template.Template, error) {
	pages, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	result := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		if page == layoutFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(page), ".html")
		tpl, err := template.New(name).Funcs(templateFuncs).ParseFS(templateFS, layoutFile, page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		result[name] = tpl
	}
	return result, nil
}

func (h *Handler) render(c *gin.Context, status int, page string, data pageData) {
	tpl, ok := h.templates[page]
	if !ok {
		logError(c, "storefront_template_missing", fmt.Errorf("template %s not found", page))
		c.String(http.StatusInternalServerError, "template not found")
		return
	}
	ctx := c.Request.Context()
	sid := sessionID(c)

	data.Locale = locale(c)
	data.Principal = currentPrincipal(c)
	data.RequestID = router.RequestID(c)
	if count, err := h.carts.Count(ctx, sid); err == nil {
		data.CartCount = count
	}
	flashes, err := h.sessions.PopFlashes(ctx, sid)
	if err != nil {
		logError(c, "storefront_flash_pop_failed", err)
	}
	data.Flashes = flashes

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logError(c, "storefront_template_render_failed", err, "template", page)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

// renderNotFound 404 页面
func (h *Handler) renderNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "not_found", pageData{
		Title: h.t(c, "store.title_not_found"),
		Error: h.t(c, "store.book_not_found"),
	})
}

// renderUnavailable API 不可用时的错误页
func (h *Handler) renderUnavailable(c *gin.Context, err error) {
	logError(c, "storefront_api_unavailable", err)
	h.render(c, http.StatusServiceUnavailable, "error", pageData{
		Title: "503",
		Error: h.t(c, "store.load_failed"),
	})
}
