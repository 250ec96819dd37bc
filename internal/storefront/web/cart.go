package web

import (
	"errors"
	"net/http"

	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/cart"
	"github.com/ebookstore-next/internal/storefront/guard"

	"github.com/gin-gonic/gin"
)

// Cart 购物车页面
func (h *Handler) Cart(c *gin.Context) {
	snapshot, err := h.carts.Snapshot(c.Request.Context(), sessionID(c))
	if err != nil {
		h.renderUnavailable(c, err)
		return
	}
	h.render(c, http.StatusOK, "cart", pageData{
		Title: h.t(c, "store.title_cart"),
		Data:  snapshot,
	})
}

// AddToCart 加入购物车后回到来源页面
func (h *Handler) AddToCart(c *gin.Context) {
	bookID, ok := parseUintParam(c, "id")
	if !ok {
		h.renderNotFound(c)
		return
	}
	target := guard.SafeReturnURL(c.PostForm("return_url"))
	if target == "" {
		target = "/books"
	}
	quantity, ok := parseQuantityForm(c, "quantity", 1)
	if !ok {
		h.flash(c, flashDanger, "store.quantity_invalid")
		c.Redirect(http.StatusFound, target)
		return
	}

	ctx := c.Request.Context()
	updated, err := h.carts.AddItem(ctx, sessionID(c), bookID, quantity)
	if err != nil {
		key := h.cartErrorKey(c, err)
		if wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": h.t(c, key)})
			return
		}
		h.flash(c, flashDanger, key)
		c.Redirect(http.StatusFound, target)
		return
	}

	title := ""
	for _, item := range updated.Items {
		if item.BookID == bookID {
			title = item.Title
			break
		}
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   h.t(c, "store.cart_added", title),
			"cartCount": updated.TotalItems,
		})
		return
	}
	h.flash(c, flashSuccess, "store.cart_added", title)
	c.Redirect(http.StatusFound, target)
}

// UpdateCart 修改数量，小于 1 时移除
func (h *Handler) UpdateCart(c *gin.Context) {
	bookID, ok := parseUintForm(c, "book_id")
	if !ok {
		h.respondCart(c, nil, storefront.NewValidationError(map[string]string{"book_id": "required"}), "")
		return
	}
	quantity, ok := parseQuantityForm(c, "quantity", 0)
	if !ok {
		h.respondCart(c, nil, storefront.NewValidationError(map[string]string{"quantity": "invalid"}), "")
		return
	}
	updated, err := h.carts.UpdateQuantity(c.Request.Context(), sessionID(c), bookID, quantity)
	h.respondCart(c, updated, err, "store.cart_updated")
}

// RemoveFromCart 移除一行
func (h *Handler) RemoveFromCart(c *gin.Context) {
	bookID, ok := parseUintForm(c, "book_id")
	if !ok {
		h.respondCart(c, nil, storefront.NewValidationError(map[string]string{"book_id": "required"}), "")
		return
	}
	updated, err := h.carts.RemoveItem(c.Request.Context(), sessionID(c), bookID)
	h.respondCart(c, updated, err, "store.cart_removed")
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	if err := h.carts.Clear(c.Request.Context(), sessionID(c)); err != nil {
		h.respondCart(c, nil, err, "")
		return
	}
	h.respondCart(c, cart.New(), nil, "store.cart_cleared")
}

// CartCount 顶栏购物车数量
func (h *Handler) CartCount(c *gin.Context) {
	count, err := h.carts.Count(c.Request.Context(), sessionID(c))
	if err != nil {
		logError(c, "storefront_cart_count_failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"message": h.t(c, "store.service_unavailable"),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// respondCart 异步请求返回 JSON，否则提示后回到购物车
func (h *Handler) respondCart(c *gin.Context, updated *cart.Cart, err error, successKey string) {
	if err != nil {
		key := h.cartErrorKey(c, err)
		if wantsJSON(c) {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": h.t(c, key)})
			return
		}
		h.flash(c, flashDanger, key)
		c.Redirect(http.StatusFound, "/cart")
		return
	}
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"message":     h.t(c, successKey),
			"cartCount":   updated.TotalItems,
			"totalAmount": updated.TotalAmount.StringFixed(2),
		})
		return
	}
	h.flash(c, flashSuccess, successKey)
	c.Redirect(http.StatusFound, "/cart")
}

func (h *Handler) cartErrorKey(c *gin.Context, err error) string {
	switch {
	case errors.Is(err, storefront.ErrNotFound):
		return "store.book_not_found"
	case errors.Is(err, storefront.ErrValidationFailure):
		return "store.quantity_invalid"
	default:
		logError(c, "storefront_cart_failed", err)
		return "store.service_unavailable"
	}
}
