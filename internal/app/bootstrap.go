package app

import (
	"errors"
	"fmt"

	"github.com/ebookstore-next/internal/cache"
	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/provider"
	"github.com/ebookstore-next/internal/router"
	"github.com/ebookstore-next/internal/storefront/apiclient"
	"github.com/ebookstore-next/internal/storefront/session"
	"github.com/ebookstore-next/internal/storefront/web"
	"github.com/ebookstore-next/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if !ValidMode(mode) {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
	opts := Options{Config: cfg, Mode: mode}

	container := provider.NewContainer(cfg)

	var services []Service

	if opts.runsAPI() {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService("api", cfg.Server.Addr(), engine))
	}

	if opts.runsWeb() {
		handler, err := web.New(web.Deps{
			Config:   cfg.Storefront,
			API:      apiclient.New(cfg.Storefront.APIBaseURL, cfg.Storefront.APITimeout()),
			Sessions: newSessionStore(cfg),
			Metrics:  container.Metrics,
		})
		if err != nil {
			_ = container.Close()
			return nil, err
		}
		engine := web.SetupRouter(cfg, handler, container.Metrics)
		services = append(services, NewHTTPService("storefront", cfg.Storefront.Addr(), engine))
	}

	if opts.runsWorker() {
		workerService, err := worker.NewService(&cfg.Queue, worker.NewConsumer(container))
		if err != nil {
			_ = container.Close()
			return nil, err
		}
		services = append(services, workerService)
	}

	if len(services) == 0 {
		_ = container.Close()
		return nil, ErrNoServices
	}

	runner := NewRunner(services...)
	runner.OnShutdown(container.Close)
	return runner, nil
}

// newSessionStore Redis 可用时会话存入 Redis，否则使用进程内存
func newSessionStore(cfg *config.Config) session.Store {
	ttl := cfg.Storefront.SessionTTL()
	if cache.Enabled() {
		store, err := session.NewRedisStore(cache.Client(), cfg.Redis.Prefix, ttl)
		if err == nil {
			return store
		}
		logger.Warnw("storefront_session_redis_unavailable", "error", err)
	}
	return session.NewMemoryStore(ttl)
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start",
		"mode", opts.Mode,
		"api_addr", opts.Config.Server.Addr(),
		"storefront_addr", opts.Config.Storefront.Addr(),
	)
	return RunWithOptions(runner, opts)
}
