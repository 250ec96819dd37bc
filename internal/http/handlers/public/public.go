package public

import (
	"strconv"
	"strings"

	"github.com/ebookstore-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetBooks 上架图书列表，支持分类、关键词（书名/作者）与排序
func (h *Handler) GetBooks(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	var categoryID uint
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.category_id_invalid", nil)
			return
		}
		categoryID = uint(parsed)
	}
	search := strings.TrimSpace(c.Query("search"))
	sortBy := strings.TrimSpace(c.Query("sort"))

	books, total, err := h.BookService.ListPublic(categoryID, search, sortBy, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, books, buildPagination(page, pageSize, total))
}

// GetBook 图书详情（下架图书同样可查，供历史订单展示）
func (h *Handler) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.book_id_invalid")
	if !ok {
		return
	}
	book, err := h.BookService.GetByID(id)
	if err != nil {
		respondMapped(c, err, bookLookupErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, book)
}

// GetBooksByCategory 分类下的上架图书
func (h *Handler) GetBooksByCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.category_id_invalid")
	if !ok {
		return
	}
	books, err := h.BookService.ListByCategory(id)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, books)
}

// GetCategories 分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 分类详情及其上架图书
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.category_id_invalid")
	if !ok {
		return
	}
	category, err := h.CategoryService.GetWithBooks(id)
	if err != nil {
		respondMapped(c, err, categoryLookupErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, category)
}
