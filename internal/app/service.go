package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrNoServices 运行器中没有可启动的服务
var ErrNoServices = errors.New("app: no services to run")

// Service 由 Runner 统一启动与停止的组件
type Service interface {
	Name() string
	// Start 阻塞运行，ctx 取消或 Stop 后返回
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 并发运行多个服务，任一服务退出即全部停止
type Runner struct {
	services []Service
	closers  []func() error
}

// NewRunner 忽略 nil 服务
func NewRunner(services ...Service) *Runner {
	r := &Runner{}
	for _, svc := range services {
		if svc != nil {
			r.services = append(r.services, svc)
		}
	}
	return r
}

// OnShutdown 注册在全部服务停止后执行的清理函数
func (r *Runner) OnShutdown(fn func() error) {
	if r != nil && fn != nil {
		r.closers = append(r.closers, fn)
	}
}

// Services 已注册的服务
func (r *Runner) Services() []Service {
	if r == nil {
		return nil
	}
	return r.services
}

// RunWithOptions 收到 opts.Signals 中的信号时优雅退出
func RunWithOptions(runner *Runner, opts Options) error {
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(ctx, opts.Signals...)
		defer stop()
	}
	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 返回首个服务错误与停止阶段错误的合并结果，ctx 取消视为正常退出
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, log *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return ErrNoServices
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range r.services {
		g.Go(func() error {
			defer cancel()
			log.Infow("service_start", "service", svc.Name())
			err := svc.Start(gctx)
			log.Infow("service_exit", "service", svc.Name(), "error", err)
			return err
		})
	}

	<-gctx.Done()
	stopErr := r.shutdown(stopTimeout, log)
	runErr := g.Wait()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}
	return multierr.Combine(runErr, stopErr)
}

func (r *Runner) shutdown(timeout time.Duration, log *zap.SugaredLogger) error {
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var err error
	for _, svc := range r.services {
		if stopErr := svc.Stop(ctx); stopErr != nil {
			log.Errorw("service_stop_failed", "service", svc.Name(), "error", stopErr)
			err = multierr.Append(err, stopErr)
		}
	}
	for _, closeFn := range r.closers {
		err = multierr.Append(err, closeFn())
	}
	return err
}
