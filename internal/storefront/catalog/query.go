// Package catalog 图书目录的过滤、搜索与排序
package catalog

import (
	"sort"
	"strings"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/storefront"
)

// Params 查询参数，零值表示不过滤
type Params struct {
	CategoryID uint
	Search     string
	SortBy     string
}

// Result 查询结果
type Result struct {
	Books []storefront.Book
	Count int
}

// Query 过滤未上架图书，按分类与关键字筛选后排序
func Query(books []storefront.Book, params Params) Result {
	search := strings.ToLower(strings.TrimSpace(params.Search))
	filtered := make([]storefront.Book, 0, len(books))
	for _, book := range books {
		if !book.IsActive {
			continue
		}
		if params.CategoryID != 0 && book.CategoryID != params.CategoryID {
			continue
		}
		if search != "" && !matches(book, search) {
			continue
		}
		filtered = append(filtered, book)
	}
	sortBooks(filtered, NormalizeSort(params.SortBy))
	return Result{Books: filtered, Count: len(filtered)}
}

// NormalizeSort 未知排序方式回退为最新
func NormalizeSort(raw string) string {
	switch key := strings.ToLower(strings.TrimSpace(raw)); key {
	case constants.SortPriceAsc, constants.SortPriceDesc, constants.SortNameAsc, constants.SortNameDesc:
		return key
	default:
		return constants.SortNewest
	}
}

// Featured 最新的 n 本上架图书
func Featured(books []storefront.Book, n int) []storefront.Book {
	return limit(Query(books, Params{}).Books, n)
}

// Related 同分类的其他图书，最新优先
func Related(books []storefront.Book, current storefront.Book, n int) []storefront.Book {
	candidates := Query(books, Params{CategoryID: current.CategoryID}).Books
	result := make([]storefront.Book, 0, len(candidates))
	for _, book := range candidates {
		if book.ID == current.ID {
			continue
		}
		result = append(result, book)
	}
	return limit(result, n)
}

func matches(book storefront.Book, search string) bool {
	return strings.Contains(strings.ToLower(book.Title), search) ||
		strings.Contains(strings.ToLower(book.Author), search)
}

func sortBooks(books []storefront.Book, sortBy string) {
	var less func(a, b storefront.Book) int
	switch sortBy {
	case constants.SortPriceAsc:
		less = func(a, b storefront.Book) int { return a.Price.Cmp(b.Price) }
	case constants.SortPriceDesc:
		less = func(a, b storefront.Book) int { return b.Price.Cmp(a.Price) }
	case constants.SortNameAsc:
		less = func(a, b storefront.Book) int { return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title)) }
	case constants.SortNameDesc:
		less = func(a, b storefront.Book) int { return strings.Compare(strings.ToLower(b.Title), strings.ToLower(a.Title)) }
	default:
		less = func(a, b storefront.Book) int { return b.CreatedAt.Compare(a.CreatedAt) }
	}
	sort.SliceStable(books, func(i, j int) bool {
		if c := less(books[i], books[j]); c != 0 {
			return c < 0
		}
		return books[i].ID < books[j].ID
	})
}

func limit(books []storefront.Book, n int) []storefront.Book {
	if n <= 0 || len(books) <= n {
		return books
	}
	return books[:n]
}
