package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// LocaleEnUS 英文
	LocaleEnUS = "en-US"
	// LocaleTrTR 土耳其语
	LocaleTrTR = "tr-TR"
	// DefaultLocale 默认语言
	DefaultLocale = LocaleEnUS
)

var catalogs = map[string]map[string]string{
	LocaleEnUS: enUS,
	LocaleTrTR: trTR,
}

// T 翻译消息键，缺失时回退默认语言，仍缺失则返回键本身
func T(locale, key string) string {
	if messages, ok := catalogs[NormalizeLocale(locale)]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 翻译并格式化消息
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// NormalizeLocale 归一化语言标识，不支持的语言返回默认语言
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "":
		return DefaultLocale
	case strings.HasPrefix(value, "tr"):
		return LocaleTrTR
	case strings.HasPrefix(value, "en"):
		return LocaleEnUS
	default:
		return DefaultLocale
	}
}

// ResolveLocale 按 ?lang、X-Locale、Accept-Language 的顺序解析请求语言
func ResolveLocale(c *gin.Context) string {
	if c == nil || c.Request == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	if header := strings.TrimSpace(c.GetHeader("X-Locale")); header != "" {
		return NormalizeLocale(header)
	}
	if accept := strings.TrimSpace(c.GetHeader("Accept-Language")); accept != "" {
		first := strings.Split(accept, ",")[0]
		return NormalizeLocale(strings.Split(first, ";")[0])
	}
	return DefaultLocale
}
