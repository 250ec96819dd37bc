package queue

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/constants"

	"github.com/hibiken/asynq"
)

// DefaultQueue 普通任务队列
const DefaultQueue = constants.QueueDefault

// Client asynq 客户端，队列未启用时所有投递均为 no-op
type Client struct {
	inner *asynq.Client
}

// NewClient 按配置创建客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{}, nil
	}
	return &Client{inner: asynq.NewClient(RedisOpt(cfg))}, nil
}

// Enabled 是否会真正投递
func (c *Client) Enabled() bool {
	return c != nil && c.inner != nil
}

// Close 关闭连接
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.inner.Close()
}

func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	if _, err := c.inner.Enqueue(task, opts...); err != nil {
		return fmt.Errorf("enqueue %s: %w", task.Type(), err)
	}
	return nil
}

// EnqueueOrderCreated 投递下单后处理任务，失败最多重试 3 次
func (c *Client) EnqueueOrderCreated(payload OrderCreatedPayload, opts ...asynq.Option) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderCreatedTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, append([]asynq.Option{asynq.Queue(DefaultQueue), asynq.MaxRetry(3)}, opts...)...)
}

// EnqueueOrderPendingExpire 延迟投递超时取消任务，同一订单只保留一个
func (c *Client) EnqueueOrderPendingExpire(payload OrderPendingExpirePayload, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewOrderPendingExpireTask(payload)
	if err != nil {
		return err
	}
	err = c.enqueue(task,
		asynq.Queue(constants.QueueCritical),
		asynq.ProcessIn(max(delay, 0)),
		asynq.TaskID(TaskOrderPendingExpire+":"+strconv.FormatUint(uint64(payload.OrderID), 10)),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// RedisOpt 队列 Redis 连接参数
func RedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host, port := strings.TrimSpace(cfg.Host), cfg.Port
	if host == "" {
		host = "127.0.0.1"
	}
	if port <= 0 {
		port = 6379
	}
	opt.Addr = net.JoinHostPort(host, strconv.Itoa(port))
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}

// ServerConfig 消费端并发与队列权重
func ServerConfig(cfg *config.QueueConfig) asynq.Config {
	serverCfg := asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{DefaultQueue: 1, constants.QueueCritical: 1},
	}
	if cfg == nil {
		return serverCfg
	}
	if cfg.Concurrency > 0 {
		serverCfg.Concurrency = cfg.Concurrency
	}
	if len(cfg.Queues) > 0 {
		serverCfg.Queues = cfg.Queues
	}
	return serverCfg
}
