package public

import (
	"strconv"

	handlershared "github.com/ebookstore-next/internal/http/handlers/shared"
	"github.com/ebookstore-next/internal/http/response"
	"github.com/ebookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

type errorRule = handlershared.ErrorRule

var (
	getUserID           = handlershared.UserID
	joinRules           = handlershared.Rules
	normalizePagination = handlershared.NormalizePagination
	respondError        = handlershared.RespondError
	respondMapped       = handlershared.RespondMapped
)

// getActor 读取 JWT 中间件写入的用户身份
func getActor(c *gin.Context) (service.Actor, bool) {
	userID, ok := getUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{UserID: userID, Role: c.GetString("user_role")}, true
}

// parseIDParam 解析路径中的正整数 ID，失败时直接返回错误响应
func parseIDParam(c *gin.Context, name, invalidKey string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return uint(id), true
}

func buildPagination(page, pageSize int, total int64) response.Pagination {
	return response.NewPagination(page, pageSize, total)
}
