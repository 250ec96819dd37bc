package app

import (
	"os"
	"time"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/logger"

	"go.uber.org/zap"
)

// 启动模式，all 同时运行 API、前台与 worker
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWeb    = "web"
	ModeWorker = "worker"
)

const defaultShutdownTimeout = 10 * time.Second

// Options 进程级启动参数
type Options struct {
	Config          *config.Config
	Mode            string
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
}

// ValidMode 是否为已知启动模式
func ValidMode(mode string) bool {
	return mode == ModeAll || mode == ModeAPI || mode == ModeWeb || mode == ModeWorker
}

func (o Options) runsAPI() bool { return o.Mode == ModeAll || o.Mode == ModeAPI }

func (o Options) runsWeb() bool { return o.Mode == ModeAll || o.Mode == ModeWeb }

// runsWorker all 模式下队列未启用时不启动 worker
func (o Options) runsWorker() bool {
	if o.Mode == ModeWorker {
		return true
	}
	return o.Mode == ModeAll && o.Config != nil && o.Config.Queue.Enabled
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = defaultShutdownTimeout
	}
	if opts.Mode == "" {
		opts.Mode = ModeAll
	}
	return opts
}
