package admin

import (
	"strings"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/http/response"
	"github.com/ebookstore-next/internal/repository"
	"github.com/ebookstore-next/internal/service"

	"github.com/gin-gonic/gin"
)

// OrderStatusRequest 订单状态更新请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var adminOrderErrorRules = []errorRule{
	{Target: service.ErrNotFound, Code: response.CodeNotFound, Key: "error.order_not_found"},
	{Target: service.ErrInvalidOrderStatus, Code: response.CodeBadRequest, Key: "error.order_status_invalid"},
}

// AdminListOrders 管理端订单列表
func (h *Handler) AdminListOrders(c *gin.Context) {
	page, pageSize := pageParams(c)

	userID, err := parseUintQuery(c, "user_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	orders, total, err := h.OrderService.ListAdmin(repository.OrderListFilter{
		Page:        page,
		PageSize:    pageSize,
		UserID:      userID,
		Status:      strings.TrimSpace(c.Query("status")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondMapped(c, err, adminOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithPage(c, orders, buildPagination(page, pageSize, total))
}

// AdminGetOrder 管理端订单详情
func (h *Handler) AdminGetOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	// RBAC 已放行，按管理员身份读取
	order, err := h.OrderService.GetByID(service.Actor{Role: constants.RoleAdmin}, id)
	if err != nil {
		respondMapped(c, err, adminOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, order)
}

// AdminUpdateOrderStatus 更新订单状态
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	var req OrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	order, err := h.OrderService.UpdateStatus(id, req.Status)
	if err != nil {
		respondMapped(c, err, adminOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_order_status_updated", "order_id", id, "status", order.Status)
	response.Success(c, order)
}

// AdminDeleteOrder 物理删除订单
func (h *Handler) AdminDeleteOrder(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	if err := h.OrderService.Delete(id); err != nil {
		respondMapped(c, err, adminOrderErrorRules, response.CodeInternal, "error.internal")
		return
	}
	requestLog(c).Infow("admin_order_deleted", "order_id", id)
	response.Success(c, nil)
}
