package queue

import (
	"encoding/json"
	"fmt"

	"github.com/ebookstore-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskOrderCreated 下单后处理任务（库存预警、仪表盘缓存失效）
	TaskOrderCreated = constants.TaskOrderCreated
	// TaskOrderPendingExpire 待处理订单超时取消任务
	TaskOrderPendingExpire = constants.TaskOrderPendingExpire
)

// OrderCreatedPayload 下单后处理任务载荷
type OrderCreatedPayload struct {
	OrderID uint   `json:"order_id"`
	UserID  uint   `json:"user_id"`
	BookIDs []uint `json:"book_ids"`
}

// OrderPendingExpirePayload 超时取消任务载荷
type OrderPendingExpirePayload struct {
	OrderID uint `json:"order_id"`
}

// NewOrderCreatedTask 创建下单后处理任务
func NewOrderCreatedTask(payload OrderCreatedPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderCreated, body), nil
}

// NewOrderPendingExpireTask 创建超时取消任务
func NewOrderPendingExpireTask(payload OrderPendingExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderPendingExpire, body), nil
}

// DecodePayload 解析任务载荷
func DecodePayload(task *asynq.Task, target interface{}) error {
	if task == nil {
		return fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), target); err != nil {
		return fmt.Errorf("decode %s payload: %w", task.Type(), err)
	}
	return nil
}
