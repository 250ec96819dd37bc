package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/ebookstore-next/internal/app"
	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/models"

	"github.com/gin-gonic/gin"
)

var weakSecretMarkers = []string{"change-me", "change-in-production", "your-secret-key"}

func main() {
	mode := flag.String("mode", app.ModeAll, "启动模式: all (默认), api, web, worker")
	flag.Parse()
	if !app.ValidMode(*mode) {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", *mode)
		os.Exit(2)
	}
	fmt.Printf("\033[36m\033[1m📚 E-Book Store\033[0m \033[2mmode=%s\033[0m\n", *mode)

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	defer logger.Sync()

	if err := run(cfg, *mode); err != nil {
		logger.Errorw("server_exit", "mode", *mode, "error", err)
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, mode string) error {
	release := cfg.Server.Mode == "release"
	if isWeakSecret(cfg.JWT.SecretKey) {
		if release {
			return fmt.Errorf("jwt secret is weak or still the default")
		}
		logger.Warnw("jwt_secret_weak", "hint", "configure a random secret of at least 32 characters")
	}
	if release {
		gin.SetMode(gin.ReleaseMode)
	}

	// 前台只通过 API 访问数据，不需要数据库
	if mode != app.ModeWeb {
		if err := prepareDatabase(cfg, release); err != nil {
			return err
		}
	}

	return app.Run(app.Options{
		Config:  cfg,
		Mode:    mode,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	})
}

func prepareDatabase(cfg *config.Config, release bool) error {
	pool := cfg.Database.Pool
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           pool.MaxOpenConns,
		MaxIdleConns:           pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	if err := models.AutoMigrate(); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	password := os.Getenv("EB_DEFAULT_ADMIN_PASSWORD")
	if release && password == "" {
		logger.Warnw("default_admin_skipped", "reason", "EB_DEFAULT_ADMIN_PASSWORD not set")
		return nil
	}
	if err := models.InitDefaultAdmin(models.DB, os.Getenv("EB_DEFAULT_ADMIN_EMAIL"), password); err != nil {
		logger.Warnw("default_admin_init_failed", "error", err)
	}
	return nil
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	lower := strings.ToLower(secret)
	for _, marker := range weakSecretMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
