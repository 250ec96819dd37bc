package admin

import (
	"strings"
	"time"

	"github.com/ebookstore-next/internal/http/response"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// BookRequest 图书创建/更新请求
type BookRequest struct {
	Title         string       `json:"title" binding:"required,max=200"`
	Author        string       `json:"author" binding:"required,max=100"`
	Description   string       `json:"description"`
	ISBN          string       `json:"isbn" binding:"max=20"`
	Price         models.Money `json:"price"`
	Stock         int          `json:"stock" binding:"min=0"`
	ImageURL      string       `json:"image_url" binding:"max=500"`
	PageCount     int          `json:"page_count" binding:"min=0"`
	Publisher     string       `json:"publisher" binding:"max=100"`
	PublishedDate string       `json:"published_date"`
	CategoryID    uint         `json:"category_id" binding:"required"`
	IsActive      *bool        `json:"is_active"`
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	Description string `json:"description" binding:"max=500"`
}

var bookWriteErrorRules = []errorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.book_not_found"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeBadRequest, Key: "error.category_not_found"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.book_invalid"},
}

var categoryWriteErrorRules = []errorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrInvalidInput, Code: response.CodeBadRequest, Key: "error.category_invalid"},
	{Target: service.ErrCategoryExists, Code: response.CodeConflict, Key: "error.category_exists"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
}

func (req BookRequest) toInput() (service.BookInput, error) {
	input := service.BookInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		ISBN:        req.ISBN,
		Price:       req.Price,
		Stock:       req.Stock,
		ImageURL:    req.ImageURL,
		PageCount:   req.PageCount,
		Publisher:   req.Publisher,
		CategoryID:  req.CategoryID,
		IsActive:    req.IsActive,
	}
	if raw := strings.TrimSpace(req.PublishedDate); raw != "" {
		published, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return input, err
		}
		input.PublishedDate = &published
	}
	return input, nil
}

// GetAdminBooks 管理端图书列表（含下架）
func (h *Handler) GetAdminBooks(c *gin.Context) {
	page, pageSize := pageParams(c)
	categoryID, err := parseUintQuery(c, "category_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.category_id_invalid", nil)
		return
	}
	search := strings.TrimSpace(c.Query("search"))

	books, total, err := h.BookService.ListAdmin(categoryID, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, books, buildPagination(page, pageSize, total))
}

// GetAdminBook 管理端图书详情
func (h *Handler) GetAdminBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.book_id_invalid")
	if !ok {
		return
	}
	book, err := h.BookService.GetByID(id)
	if err != nil {
		respondMapped(c, err, bookWriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, book)
}

// CreateBook 创建图书
func (h *Handler) CreateBook(c *gin.Context) {
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	book, err := h.BookService.Create(input)
	if err != nil {
		respondMapped(c, err, bookWriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_book_created", "book_id", book.ID)
	response.Success(c, book)
}

// UpdateBook 更新图书
func (h *Handler) UpdateBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.book_id_invalid")
	if !ok {
		return
	}
	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	book, err := h.BookService.Update(id, input)
	if err != nil {
		respondMapped(c, err, bookWriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, book)
}

// DeleteBook 下架图书（软删除）
func (h *Handler) DeleteBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.book_id_invalid")
	if !ok {
		return
	}
	if err := h.BookService.Delete(id); err != nil {
		respondMapped(c, err, bookWriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_book_deactivated", "book_id", id)
	response.Success(c, nil)
}

// GetAdminCategories 管理端分类列表
func (h *Handler) GetAdminCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, categories)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondMapped(c, err, categoryWriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.category_id_invalid")
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondMapped(c, err, categoryWriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类，仍有图书时返回 409
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.category_id_invalid")
	if !ok {
		return
	}
	if err := h.CategoryService.Delete(id); err != nil {
		respondMapped(c, err, categoryWriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, nil)
}
