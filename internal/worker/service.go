package worker

import (
	"context"
	"errors"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/queue"

	"github.com/hibiken/asynq"
)

var (
	// ErrQueueDisabled 队列未启用时无法启动消费端
	ErrQueueDisabled = errors.New("worker: queue disabled")
	// ErrNoConsumer 缺少任务消费者
	ErrNoConsumer = errors.New("worker: consumer is nil")
)

// Service 把 asynq 消费端包装为可由 app.Runner 管理的服务
type Service struct {
	server *asynq.Server
	mux    *asynq.ServeMux
}

// NewService 注册全部任务处理器
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	switch {
	case cfg == nil || !cfg.Enabled:
		return nil, ErrQueueDisabled
	case consumer == nil:
		return nil, ErrNoConsumer
	}
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		server: asynq.NewServer(queue.RedisOpt(cfg), queue.ServerConfig(cfg)),
		mux:    mux,
	}, nil
}

// Name 服务名
func (s *Service) Name() string { return "worker" }

// Start 启动消费端并阻塞到 ctx 取消，信号由 app.Runner 统一处理
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("worker: not initialized")
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop 等待进行中的任务结束
func (s *Service) Stop(context.Context) error {
	if s != nil && s.server != nil {
		s.server.Shutdown()
	}
	return nil
}
