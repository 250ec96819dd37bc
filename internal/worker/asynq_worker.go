package worker

import (
	"context"
	"time"

	"github.com/ebookstore-next/internal/cache"
	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/provider"
	"github.com/ebookstore-next/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderCreated, c.observe(queue.TaskOrderCreated, c.handleOrderCreated))
	mux.HandleFunc(queue.TaskOrderPendingExpire, c.observe(queue.TaskOrderPendingExpire, c.handleOrderPendingExpire))
}

// observe 记录任务耗时与结果
func (c *Consumer) observe(name string, fn func(context.Context, *asynq.Task) error) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, task *asynq.Task) error {
		start := time.Now()
		err := fn(ctx, task)
		if c.Container != nil {
			c.Metrics.ObserveTask(name, time.Since(start), err)
		}
		return err
	}
}

// handleOrderCreated 下单后检查库存预警并刷新仪表盘缓存
func (c *Consumer) handleOrderCreated(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_created_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderCreatedPayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_created_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_created_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}

	if len(payload.BookIDs) > 0 && c.BookRepo != nil {
		books, err := c.BookRepo.ListByIDs(payload.BookIDs)
		if err != nil {
			logger.Warnw("worker_order_created_fetch_books_failed", "order_id", payload.OrderID, "error", err)
			return err
		}
		for _, book := range books {
			if book.Stock < constants.LowStockThreshold {
				logger.Warnw("worker_book_low_stock",
					"order_id", payload.OrderID,
					"book_id", book.ID,
					"title", book.Title,
					"stock", book.Stock,
					"threshold", constants.LowStockThreshold,
				)
			}
		}
	}

	if err := cache.Dashboard.Invalidate(ctx); err != nil {
		logger.Warnw("worker_order_created_invalidate_dashboard_failed", "order_id", payload.OrderID, "error", err)
	}
	logger.Infow("worker_order_created_processed", "order_id", payload.OrderID, "user_id", payload.UserID)
	return nil
}

// handleOrderPendingExpire 取消超时仍待处理的订单
func (c *Consumer) handleOrderPendingExpire(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_pending_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderPendingExpirePayload
	if err := queue.DecodePayload(task, &payload); err != nil {
		logger.Warnw("worker_order_pending_expire_unmarshal_failed", "error", err)
		return err
	}
	if payload.OrderID == 0 {
		logger.Debugw("worker_order_pending_expire_skip_invalid_payload", "order_id", payload.OrderID)
		return nil
	}
	if c.OrderService == nil {
		logger.Warnw("worker_order_pending_expire_skip_order_service_nil", "order_id", payload.OrderID)
		return nil
	}
	cancelled, err := c.OrderService.CancelIfPending(payload.OrderID)
	if err != nil {
		logger.Warnw("worker_order_pending_expire_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	if cancelled {
		logger.Infow("worker_order_pending_expired", "order_id", payload.OrderID)
	} else {
		logger.Debugw("worker_order_pending_expire_skip_not_pending", "order_id", payload.OrderID)
	}
	return nil
}
