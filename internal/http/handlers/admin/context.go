package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/ebookstore-next/internal/http/handlers/shared"
	"github.com/ebookstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type errorRule = handlershared.ErrorRule

var (
	getUserID     = handlershared.UserID
	pageParams    = handlershared.PageParams
	respondError  = handlershared.RespondError
	respondMapped = handlershared.RespondMapped
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func parseIDParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(id), true
}

func parseUintQuery(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(parsed), nil
}

// parseTimeNullable 支持 RFC3339 与 2006-01-02 两种格式
func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	return response.NewPagination(page, pageSize, total)
}
