package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/queue"
	"github.com/ebookstore-next/internal/repository"

	"gorm.io/gorm"
)

// OrderService 订单服务
type OrderService struct {
	db            *gorm.DB
	orderRepo     repository.OrderRepository
	bookRepo      repository.BookRepository
	userRepo      repository.UserRepository
	queueClient   *queue.Client
	expireMinutes int
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, bookRepo repository.BookRepository, userRepo repository.UserRepository, queueClient *queue.Client, expireMinutes int) *OrderService {
	return &OrderService{
		db:            db,
		orderRepo:     orderRepo,
		bookRepo:      bookRepo,
		userRepo:      userRepo,
		queueClient:   queueClient,
		expireMinutes: expireMinutes,
	}
}

// CreateOrderInput 创建订单输入
// 明细单价为下单时快照，服务端只校验金额一致性，不按当前图书价格重算
type CreateOrderInput struct {
	UserID          uint
	DeliveryAddress string
	Notes           string
	TotalAmount     models.Money
	Lines           []CreateOrderLine
}

// CreateOrderLine 订单明细输入
type CreateOrderLine struct {
	BookID     uint
	Quantity   int
	UnitPrice  models.Money
	TotalPrice models.Money
}

// Create 创建订单
func (s *OrderService) Create(actor Actor, input CreateOrderInput) (*models.Order, error) {
	if err := authorize(actor, input.UserID); err != nil {
		return nil, err
	}
	details, err := buildOrderDetails(input)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := s.ensureBooksExist(details); err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID:          input.UserID,
		TotalAmount:     input.TotalAmount,
		Status:          constants.OrderStatusPending,
		DeliveryAddress: strings.TrimSpace(input.DeliveryAddress),
		Notes:           strings.TrimSpace(input.Notes),
		OrderDate:       time.Now(),
	}
	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.orderRepo.WithTx(tx).Create(order, details)
	}); err != nil {
		return nil, err
	}
	logger.Infow("order_created",
		"order_id", order.ID,
		"user_id", order.UserID,
		"total_amount", order.TotalAmount.String(),
		"lines", len(details),
	)

	s.enqueueAfterCreate(order, details)
	return order, nil
}

// buildOrderDetails 校验并生成订单明细
func buildOrderDetails(input CreateOrderInput) ([]models.OrderDetail, error) {
	if len(input.Lines) == 0 {
		return nil, fmt.Errorf("%w: no lines", ErrInvalidOrder)
	}
	details := make([]models.OrderDetail, 0, len(input.Lines))
	sum := models.Money{}
	for _, line := range input.Lines {
		if line.BookID == 0 || line.Quantity < 1 || line.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: invalid line for book %d", ErrInvalidOrder, line.BookID)
		}
		expected := line.UnitPrice.Times(line.Quantity)
		if !line.TotalPrice.EqualAmount(expected) {
			return nil, fmt.Errorf("%w: line total %s != %s for book %d", ErrInvalidOrder, line.TotalPrice, expected, line.BookID)
		}
		sum = sum.Plus(expected)
		details = append(details, models.OrderDetail{
			BookID:     line.BookID,
			Quantity:   line.Quantity,
			UnitPrice:  models.NewMoneyFromDecimal(line.UnitPrice.Decimal),
			TotalPrice: expected,
		})
	}
	if !sum.EqualAmount(input.TotalAmount) {
		return nil, fmt.Errorf("%w: total %s != %s", ErrInvalidOrder, input.TotalAmount, sum)
	}
	return details, nil
}

func (s *OrderService) ensureBooksExist(details []models.OrderDetail) error {
	ids := make([]uint, 0, len(details))
	seen := make(map[uint]struct{}, len(details))
	for _, detail := range details {
		if _, ok := seen[detail.BookID]; ok {
			continue
		}
		seen[detail.BookID] = struct{}{}
		ids = append(ids, detail.BookID)
	}
	books, err := s.bookRepo.ListByIDs(ids)
	if err != nil {
		return err
	}
	if len(books) != len(ids) {
		return fmt.Errorf("%w: unknown book", ErrInvalidOrder)
	}
	return nil
}

func (s *OrderService) enqueueAfterCreate(order *models.Order, details []models.OrderDetail) {
	if s.queueClient == nil || !s.queueClient.Enabled() {
		return
	}
	bookIDs := make([]uint, 0, len(details))
	for _, detail := range details {
		bookIDs = append(bookIDs, detail.BookID)
	}
	if err := s.queueClient.EnqueueOrderCreated(queue.OrderCreatedPayload{
		OrderID: order.ID,
		UserID:  order.UserID,
		BookIDs: bookIDs,
	}); err != nil {
		logger.Errorw("order_enqueue_created_failed", "order_id", order.ID, "error", err)
	}
	if s.expireMinutes > 0 {
		if err := s.queueClient.EnqueueOrderPendingExpire(queue.OrderPendingExpirePayload{
			OrderID: order.ID,
		}, time.Duration(s.expireMinutes)*time.Minute); err != nil {
			logger.Errorw("order_enqueue_pending_expire_failed", "order_id", order.ID, "error", err)
		}
	}
}

// GetByID 获取订单详情
func (s *OrderService) GetByID(actor Actor, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrNotFound
	}
	if err := authorize(actor, order.UserID); err != nil {
		return nil, err
	}
	return order, nil
}

// ListByUser 用户订单列表
func (s *OrderService) ListByUser(actor Actor, userID uint, page, pageSize int) ([]models.Order, int64, error) {
	if err := authorize(actor, userID); err != nil {
		return nil, 0, err
	}
	return s.orderRepo.ListByUser(repository.OrderListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListAdmin 管理端订单列表
func (s *OrderService) ListAdmin(filter repository.OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" && !IsValidOrderStatus(filter.Status) {
		return nil, 0, ErrInvalidOrderStatus
	}
	return s.orderRepo.ListAdmin(filter)
}

// UpdateStatus 管理端更新订单状态
func (s *OrderService) UpdateStatus(id uint, status string) (*models.Order, error) {
	status = strings.TrimSpace(status)
	if !IsValidOrderStatus(status) {
		return nil, ErrInvalidOrderStatus
	}
	affected, err := s.orderRepo.UpdateStatus(id, status)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	invalidateDashboard()
	return s.GetByID(Actor{Role: constants.RoleAdmin}, id)
}

// Delete 物理删除订单及明细
func (s *OrderService) Delete(id uint) error {
	var affected int64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		affected, err = s.orderRepo.WithTx(tx).Delete(id)
		return err
	})
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	invalidateDashboard()
	return nil
}

// CancelIfPending 待处理订单超时取消，返回是否实际取消
func (s *OrderService) CancelIfPending(id uint) (bool, error) {
	affected, err := s.orderRepo.UpdateStatusIf(id, constants.OrderStatusPending, constants.OrderStatusCancelled)
	if err != nil {
		return false, err
	}
	if affected > 0 {
		invalidateDashboard()
	}
	return affected > 0, nil
}

// IsValidOrderStatus 校验订单状态
func IsValidOrderStatus(status string) bool {
	switch status {
	case constants.OrderStatusPending, constants.OrderStatusCompleted, constants.OrderStatusCancelled:
		return true
	default:
		return false
	}
}
