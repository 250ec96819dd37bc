package public

import (
	"github.com/ebookstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// FavoriteCreateRequest 收藏请求
type FavoriteCreateRequest struct {
	UserID uint `json:"user_id" binding:"required"`
	BookID uint `json:"book_id" binding:"required"`
}

// ListUserFavorites 用户收藏列表
func (h *Handler) ListUserFavorites(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id", "error.user_id_invalid")
	if !ok {
		return
	}
	favorites, err := h.FavoriteService.ListByUser(actor, userID)
	if err != nil {
		respondMapped(c, err, ownershipErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, favorites)
}

// CreateFavorite 收藏图书，重复收藏返回 409
func (h *Handler) CreateFavorite(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req FavoriteCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	favorite, err := h.FavoriteService.Add(actor, req.UserID, req.BookID)
	if err != nil {
		respondMapped(c, err, favoriteAddErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, favorite)
}

// DeleteFavorite 按收藏 ID 取消收藏
func (h *Handler) DeleteFavorite(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "error.favorite_id_invalid")
	if !ok {
		return
	}
	if err := h.FavoriteService.Remove(actor, id); err != nil {
		respondMapped(c, err, favoriteRemoveErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, nil)
}

// DeleteUserBookFavorite 按用户与图书取消收藏
func (h *Handler) DeleteUserBookFavorite(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id", "error.user_id_invalid")
	if !ok {
		return
	}
	bookID, ok := parseIDParam(c, "book_id", "error.book_id_invalid")
	if !ok {
		return
	}
	if err := h.FavoriteService.RemoveByUserAndBook(actor, userID, bookID); err != nil {
		respondMapped(c, err, favoriteRemoveErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, nil)
}
