package logger

import (
	"log"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志输出配置，零值表示使用默认滚动策略
type Options struct {
	Dir        string
	Filename   string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	// Level 覆盖运行模式决定的级别（debug/info/warn/error）
	Level string
	// Service 写入每条日志的 service 字段
	Service string
}

// L 全局日志，Init 之前为 nil
var L *zap.Logger

// stdout 未初始化时使用的控制台日志
var stdout = sync.OnceValue(func() *zap.Logger {
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), zapcore.Lock(os.Stdout), zap.InfoLevel)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))
})

// Init 创建并替换全局日志
func Init(mode string, options Options) *zap.Logger {
	L = New(mode, options)
	zap.ReplaceGlobals(L)
	return L
}

// New debug 模式输出彩色控制台，其余模式写 JSON 到滚动文件
func New(mode string, options Options) *zap.Logger {
	debug := strings.EqualFold(strings.TrimSpace(mode), "debug")
	zl := zap.New(buildCore(debug, options), zap.AddCaller(), zap.AddCallerSkip(1))
	if service := strings.TrimSpace(options.Service); service != "" {
		zl = zl.With(zap.String("service", service))
	}
	return zl
}

// Z 全局日志，未初始化时回落到控制台
func Z() *zap.Logger {
	if L == nil {
		return stdout()
	}
	return L
}

// S SugaredLogger 形式的 Z
func S() *zap.SugaredLogger { return Z().Sugar() }

// SW 附带固定字段
func SW(kv ...interface{}) *zap.SugaredLogger { return S().With(kv...) }

// StdLogger 供 asynq 等只接受标准库 logger 的组件使用
func StdLogger() *log.Logger { return zap.NewStdLog(Z()) }

// Sync 退出前刷盘
func Sync() { _ = Z().Sync() }

func Debugw(message string, kv ...interface{}) { S().Debugw(message, kv...) }

func Infow(message string, kv ...interface{}) { S().Infow(message, kv...) }

func Warnw(message string, kv ...interface{}) { S().Warnw(message, kv...) }

func Errorw(message string, kv ...interface{}) { S().Errorw(message, kv...) }
