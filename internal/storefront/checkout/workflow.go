// Package checkout 购物车到订单的结算流程
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/metrics"
	"github.com/ebookstore-next/internal/storefront"
	"github.com/ebookstore-next/internal/storefront/cart"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// AddressForm 收货信息表单
type AddressForm struct {
	DeliveryAddress string `form:"delivery_address" validate:"required,min=10,max=500"`
	Notes           string `form:"notes" validate:"max=500"`
}

// Normalize 去除首尾空白
func (f AddressForm) Normalize() AddressForm {
	return AddressForm{
		DeliveryAddress: strings.TrimSpace(f.DeliveryAddress),
		Notes:           strings.TrimSpace(f.Notes),
	}
}

// Request 一次结算提交
type Request struct {
	SessionID string
	UserID    uint
	Token     string
	Form      AddressForm
}

// Recorder 结算结果计数
type Recorder interface {
	IncCheckout(outcome string)
}

// Workflow 结算流程
type Workflow struct {
	carts    *cart.Service
	orders   storefront.OrderStore
	validate *validator.Validate
	recorder Recorder
	now      func() time.Time
}

// NewWorkflow 创建结算流程，recorder 可为 nil
func NewWorkflow(carts *cart.Service, orders storefront.OrderStore, recorder Recorder) *Workflow {
	return &Workflow{
		carts:    carts,
		orders:   orders,
		validate: validator.New(),
		recorder: recorder,
		now:      time.Now,
	}
}

// Review 读取待结算的购物车，空购物车返回 ErrEmptyCart
func (w *Workflow) Review(ctx context.Context, sid string) (*cart.Cart, error) {
	c, err := w.carts.Snapshot(ctx, sid)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return c, storefront.ErrEmptyCart
	}
	return c, nil
}

// Submit 先检查购物车，再校验表单、生成订单并持久化，成功后清空购物车
func (w *Workflow) Submit(ctx context.Context, req Request) (*storefront.Order, error) {
	c, err := w.Review(ctx, req.SessionID)
	if err != nil {
		if errors.Is(err, storefront.ErrEmptyCart) {
			w.record(metrics.CheckoutEmptyCart)
		} else {
			w.record(metrics.CheckoutStore)
		}
		return nil, err
	}

	form := req.Form.Normalize()
	if err := w.ValidateForm(form); err != nil {
		w.record(metrics.CheckoutValidation)
		return nil, err
	}
	if req.UserID == 0 {
		w.record(metrics.CheckoutValidation)
		return nil, storefront.NewValidationError(map[string]string{"user_id": "required"})
	}

	order, err := BuildOrder(req.UserID, form, c, w.now())
	if err != nil {
		w.record(metrics.CheckoutValidation)
		return nil, err
	}

	created, err := w.Persist(ctx, req.Token, order)
	if err != nil {
		w.record(metrics.CheckoutStore)
		logger.Warnw("checkout_persist_failed", "session_id", req.SessionID, "user_id", req.UserID, "error", err)
		return nil, err
	}

	if err := w.carts.Clear(ctx, req.SessionID); err != nil {
		w.record(metrics.CheckoutStore)
		logger.Errorw("checkout_cart_clear_failed", "session_id", req.SessionID, "order_id", created.ID, "error", err)
		return created, err
	}
	w.record(metrics.CheckoutSuccess)
	logger.Infow("checkout_completed", "order_id", created.ID, "user_id", req.UserID, "total_amount", created.TotalAmount.StringFixed(2))
	return created, nil
}

// ValidateForm 校验收货信息
func (w *Workflow) ValidateForm(form AddressForm) error {
	err := w.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", storefront.ErrValidationFailure, err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fieldName(fe.Field())] = describe(fe)
	}
	return storefront.NewValidationError(fields)
}

// Persist 写入订单，失败或未返回 ID 视为存储失败
func (w *Workflow) Persist(ctx context.Context, token string, order storefront.Order) (*storefront.Order, error) {
	created, err := w.orders.CreateOrder(ctx, token, order)
	if err != nil {
		if errors.Is(err, storefront.ErrStoreFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("create order: %w: %w", storefront.ErrStoreFailure, err)
	}
	if created == nil || created.ID == 0 {
		return nil, fmt.Errorf("create order returned no id: %w", storefront.ErrStoreFailure)
	}
	return created, nil
}

// BuildOrder 按购物车快照生成订单，单价取自购物车
func BuildOrder(userID uint, form AddressForm, c *cart.Cart, now time.Time) (storefront.Order, error) {
	if c.IsEmpty() {
		return storefront.Order{}, storefront.ErrEmptyCart
	}
	lines := make([]storefront.OrderLine, 0, len(c.Items))
	total := decimal.Zero
	for _, item := range c.Items {
		lineTotal := item.Subtotal()
		lines = append(lines, storefront.OrderLine{
			BookID:     item.BookID,
			Title:      item.Title,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}

	snapshot := c.Clone()
	snapshot.Recalculate()
	if !total.Equal(snapshot.TotalAmount) {
		return storefront.Order{}, fmt.Errorf("order total %s != cart total %s: %w",
			total.StringFixed(2), snapshot.TotalAmount.StringFixed(2), storefront.ErrValidationFailure)
	}

	return storefront.Order{
		UserID:          userID,
		TotalAmount:     total,
		Status:          constants.OrderStatusPending,
		DeliveryAddress: form.DeliveryAddress,
		Notes:           form.Notes,
		OrderDate:       now,
		Lines:           lines,
	}, nil
}

func (w *Workflow) record(outcome string) {
	if w.recorder != nil {
		w.recorder.IncCheckout(outcome)
	}
}

func fieldName(field string) string {
	switch field {
	case "DeliveryAddress":
		return "delivery_address"
	case "Notes":
		return "notes"
	default:
		return strings.ToLower(field)
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	default:
		return "invalid"
	}
}
