package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/catalog"

	"github.com/gin-gonic/gin"
)

type homeView struct {
	Featured   []storefront.Book
	NewBooks   []storefront.Book
	Categories []storefront.Category
}

type booksView struct {
	Books      []storefront.Book
	Count      int
	Categories []storefront.Category
	CategoryID uint
	Search     string
	Sort       string
	SortKeys   []string
}

type bookView struct {
	Book    storefront.Book
	Related []storefront.Book
}

type categoryView struct {
	Category storefront.Category
	Books    []storefront.Book
}

var sortKeys = []string{
	constants.SortNewest,
	constants.SortPriceAsc,
	constants.SortPriceDesc,
	constants.SortNameAsc,
	constants.SortNameDesc,
}

func sizeOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}

// Home 首页：推荐、新书与分类
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	books, err := h.api.ListBooks(ctx, storefront.BookFilter{})
	if err != nil {
		h.renderUnavailable(c, err)
		return
	}
	categories, err := h.api.ListCategories(ctx)
	if err != nil {
		h.renderUnavailable(c, err)
		return
	}
	if n := sizeOr(h.cfg.FeaturedCategories, 4); len(categories) > n {
		categories = categories[:n]
	}
	h.render(c, http.StatusOK, "home", pageData{
		Title: h.t(c, "store.title_home"),
		Data: homeView{
			Featured:   catalog.Featured(books, sizeOr(h.cfg.FeaturedBooks, 8)),
			NewBooks:   catalog.Featured(books, sizeOr(h.cfg.NewBooks, 4)),
			Categories: categories,
		},
	})
}

// Books 图书列表，支持分类、搜索与排序
func (h *Handler) Books(c *gin.Context) {
	ctx := c.Request.Context()
	params := catalog.Params{
		Search: strings.TrimSpace(c.Query("search")),
		SortBy: catalog.NormalizeSort(c.Query("sort")),
	}
	if raw := strings.TrimSpace(c.Query("category_id")); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 64); err == nil {
			params.CategoryID = uint(id)
		}
	}

	books, err := h.api.ListBooks(ctx, storefront.BookFilter{})
	if err != nil {
		h.renderUnavailable(c, err)
		return
	}
	categories, err := h.api.ListCategories(ctx)
	if err != nil {
		h.renderUnavailable(c, err)
		return
	}
	result := catalog.Query(books, params)
	h.render(c, http.StatusOK, "books", pageData{
		Title: h.t(c, "store.title_books"),
		Data: booksView{
			Books:      result.Books,
			Count:      result.Count,
			Categories: categories,
			CategoryID: params.CategoryID,
			Search:     params.Search,
			Sort:       params.SortBy,
			SortKeys:   sortKeys,
		},
	})
}

// BookDetail 图书详情与同类推荐
func (h *Handler) BookDetail(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		h.renderNotFound(c)
		return
	}
	ctx := c.Request.Context()
	book, err := h.api.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderUnavailable(c, err)
		return
	}
	if !book.IsActive {
		h.renderNotFound(c)
		return
	}

	var related []storefront.Book
	if book.CategoryID != 0 {
		siblings, err := h.api.ListBooksByCategory(ctx, book.CategoryID)
		if err != nil {
			// 推荐失败不影响详情页
			logError(c, "storefront_related_books_failed", err, "book_id", book.ID)
		} else {
			related = catalog.Related(siblings, *book, sizeOr(h.cfg.RelatedBooks, 4))
		}
	}
	h.render(c, http.StatusOK, "book", pageData{
		Title: book.Title,
		Data:  bookView{Book: *book, Related: related},
	})
}

// Categories 分类列表
func (h *Handler) Categories(c *gin.Context) {
	categories, err := h.api.ListCategories(c.Request.Context())
	if err != nil {
		h.renderUnavailable(c, err)
		return
	}
	h.render(c, http.StatusOK, "categories", pageData{
		Title: h.t(c, "store.title_categories"),
		Data:  categories,
	})
}

// CategoryDetail 分类下的上架图书
func (h *Handler) CategoryDetail(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		h.renderNotFound(c)
		return
	}
	ctx := c.Request.Context()
	category, err := h.api.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, storefront.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderUnavailable(c, err)
		return
	}
	books, err := h.api.ListBooksByCategory(ctx, id)
	if err != nil {
		h.renderUnavailable(c, err)
		return
	}
	h.render(c, http.StatusOK, "category", pageData{
		Title: category.Name,
		Data: categoryView{
			Category: *category,
			Books:    catalog.Query(books, catalog.Params{}).Books,
		},
	})
}
