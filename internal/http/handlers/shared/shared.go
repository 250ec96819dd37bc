// Package shared 公开与后台处理器共用的响应与参数工具
package shared

import (
	"errors"
	"strconv"

	"github.com/ebookstore-next/internal/http/response"
	"github.com/ebookstore-next/internal/i18n"
	"github.com/ebookstore-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorRule 业务错误到响应码与文案 key 的映射
type ErrorRule struct {
	Target error
	Code   int
	Key    string
}

// Rules 合并多组映射，靠前的优先匹配
func Rules(groups ...[]ErrorRule) []ErrorRule {
	var result []ErrorRule
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

// RequestLog 带 request_id 的日志
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := c.GetString("request_id"); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 返回本地化错误，err 非空时记录日志
func RespondError(c *gin.Context, code int, key string, err error) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	if err != nil {
		appErr := response.WrapError(code, msg, err)
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", appErr.Err,
		)
	}
	response.Error(c, code, msg)
}

// RespondMapped 按映射返回错误，未命中时使用兜底码并记录原始错误
func RespondMapped(c *gin.Context, err error, rules []ErrorRule, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.Target) {
			RespondError(c, rule.Code, rule.Key, nil)
			return
		}
	}
	RespondError(c, fallbackCode, fallbackKey, err)
}

// UserID 读取鉴权中间件写入的用户 ID
func UserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	id, ok := value.(uint)
	if !ok || id == 0 {
		RespondError(c, response.CodeInternal, "error.user_id_type_invalid", nil)
		return 0, false
	}
	return id, true
}

// NormalizePagination 页码至少为 1，每页条数限制在 1 到 MaxPageSize 之间
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = response.DefaultPageSize
	}
	if pageSize > response.MaxPageSize {
		pageSize = response.MaxPageSize
	}
	return page, pageSize
}

// PageParams 读取 page 与 page_size 查询参数
func PageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.Query("page"))
	pageSize, _ := strconv.Atoi(c.Query("page_size"))
	return NormalizePagination(page, pageSize)
}
