package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/apiclient"
	"github.com/ebookstore-next/internal/storefront/cart"
	"github.com/ebookstore-next/internal/storefront/checkout"
	"github.com/ebookstore-next/internal/storefront/guard"

	"github.com/gin-gonic/gin"
)

type checkoutView struct {
	Cart *cart.Cart
	Form checkout.AddressForm
}

// Checkout 结算页面
func (h *Handler) Checkout(c *gin.Context) {
	snapshot, err := h.checkout.Review(c.Request.Context(), sessionID(c))
	if err != nil {
		if errors.Is(err, storefront.ErrEmptyCart) {
			h.flash(c, flashInfo, "store.cart_empty")
			c.Redirect(http.StatusFound, "/books")
			return
		}
		h.renderUnavailable(c, err)
		return
	}
	h.renderCheckout(c, http.StatusOK, snapshot, checkout.AddressForm{}, "", nil)
}

// SubmitCheckout 提交订单
func (h *Handler) SubmitCheckout(c *gin.Context) {
	var form checkout.AddressForm
	_ = c.ShouldBind(&form)
	principal := currentPrincipal(c)
	ctx := c.Request.Context()
	sid := sessionID(c)

	order, err := h.checkout.Submit(ctx, checkout.Request{
		SessionID: sid,
		UserID:    principal.UserID,
		Token:     principal.Token,
		Form:      form,
	})
	switch {
	case err == nil:
		h.flash(c, flashSuccess, "store.checkout_success", order.ID)
		c.Redirect(http.StatusFound, confirmedPath(order.ID))
	case order != nil:
		// 订单已保存但购物车未清空
		h.flash(c, flashWarning, "store.checkout_cleanup", order.ID)
		c.Redirect(http.StatusFound, confirmedPath(order.ID))
	case errors.Is(err, storefront.ErrEmptyCart):
		h.flash(c, flashInfo, "store.cart_empty")
		c.Redirect(http.StatusFound, "/books")
	case errors.Is(err, storefront.ErrUnauthorized):
		h.expireLogin(c)
		h.flash(c, flashInfo, "store.login_required")
		c.Redirect(http.StatusFound, guard.LoginRedirect("/checkout"))
	case errors.Is(err, storefront.ErrValidationFailure):
		snapshot, reviewErr := h.carts.Snapshot(ctx, sid)
		if reviewErr != nil {
			h.renderUnavailable(c, reviewErr)
			return
		}
		h.renderCheckout(c, http.StatusUnprocessableEntity, snapshot, form, h.t(c, "store.validation_failed"), storefront.FieldErrors(err))
	default:
		logError(c, "storefront_checkout_failed", err, "user_id", principal.UserID)
		snapshot, reviewErr := h.carts.Snapshot(ctx, sid)
		if reviewErr != nil {
			h.renderUnavailable(c, reviewErr)
			return
		}
		h.renderCheckout(c, http.StatusOK, snapshot, form, h.t(c, "store.checkout_failed"), nil)
	}
}

// Confirmed 下单成功页面
func (h *Handler) Confirmed(c *gin.Context) {
	id, ok := parseUintParam(c, "id")
	if !ok {
		h.renderNotFound(c)
		return
	}
	principal := currentPrincipal(c)
	order, err := h.api.GetOrder(c.Request.Context(), principal.Token, id)
	if err != nil {
		switch {
		case errors.Is(err, storefront.ErrNotFound):
			h.renderNotFound(c)
		case errors.Is(err, storefront.ErrUnauthorized):
			// 他人的订单同样按 403 处理
			var apiErr *apiclient.APIError
			if errors.As(err, &apiErr) && apiErr.Code == 401 {
				h.expireLogin(c)
				c.Redirect(http.StatusFound, guard.LoginRedirect(c.Request.URL.RequestURI()))
				return
			}
			h.renderAccessDenied(c)
		default:
			h.renderUnavailable(c, err)
		}
		return
	}
	h.render(c, http.StatusOK, "confirmed", pageData{
		Title: h.t(c, "store.title_confirmed"),
		Data:  order,
	})
}

func (h *Handler) renderCheckout(c *gin.Context, status int, snapshot *cart.Cart, form checkout.AddressForm, message string, fields map[string]string) {
	h.render(c, status, "checkout", pageData{
		Title:  h.t(c, "store.title_checkout"),
		Error:  message,
		Fields: fields,
		Data:   checkoutView{Cart: snapshot, Form: form},
	})
}

func confirmedPath(id uint) string {
	return fmt.Sprintf("/checkout/confirmed/%d", id)
}
