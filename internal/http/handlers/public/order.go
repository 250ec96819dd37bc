package public

import (
	"strconv"

	"github.com/ebookstore-next/internal/http/response"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest 创建订单请求，明细单价为下单时快照
type CreateOrderRequest struct {
	UserID          uint                     `json:"user_id" binding:"required"`
	DeliveryAddress string                   `json:"delivery_address" binding:"required,min=10,max=500"`
	Notes           string                   `json:"notes" binding:"max=500"`
	TotalAmount     models.Money             `json:"total_amount"`
	Details         []CreateOrderLineRequest `json:"details" binding:"required,min=1,dive"`
}

// CreateOrderLineRequest 订单明细请求
type CreateOrderLineRequest struct {
	BookID     uint         `json:"book_id" binding:"required"`
	Quantity   int          `json:"quantity" binding:"required,min=1"`
	UnitPrice  models.Money `json:"unit_price"`
	TotalPrice models.Money `json:"total_price"`
}

// CreateOrder 创建订单
func (h *Handler) CreateOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	lines := make([]service.CreateOrderLine, 0, len(req.Details))
	for _, detail := range req.Details {
		lines = append(lines, service.CreateOrderLine{
			BookID:     detail.BookID,
			Quantity:   detail.Quantity,
			UnitPrice:  detail.UnitPrice,
			TotalPrice: detail.TotalPrice,
		})
	}
	order, err := h.OrderService.Create(actor, service.CreateOrderInput{
		UserID:          req.UserID,
		DeliveryAddress: req.DeliveryAddress,
		Notes:           req.Notes,
		TotalAmount:     req.TotalAmount,
		Lines:           lines,
	})
	if err != nil {
		respondMapped(c, err, orderCreateErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// GetOrder 订单详情（本人或管理员）
func (h *Handler) GetOrder(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	order, err := h.OrderService.GetByID(actor, id)
	if err != nil {
		respondMapped(c, err, orderLookupErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// ListUserOrders 用户订单列表
func (h *Handler) ListUserOrders(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "user_id", "error.user_id_invalid")
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	orders, total, err := h.OrderService.ListByUser(actor, userID, page, pageSize)
	if err != nil {
		respondMapped(c, err, ownershipErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}
