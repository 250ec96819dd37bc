package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAppDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.MigrateDB(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	prev := models.DB
	models.DB = db
	t.Cleanup(func() { models.DB = prev })
}

func testConfig() *config.Config {
	return &config.Config{
		Server:     config.ServerConfig{Host: "127.0.0.1", Port: "0", Mode: "debug"},
		Storefront: config.StorefrontConfig{Host: "127.0.0.1", Port: "0", APIBaseURL: "http://127.0.0.1:1/api/v1"},
		JWT:        config.JWTConfig{SecretKey: "app-test-secret", ExpireHours: 1},
	}
}

func serviceNames(r *Runner) []string {
	names := make([]string, 0, len(r.Services()))
	for _, svc := range r.Services() {
		names = append(names, svc.Name())
	}
	return names
}

func TestBuildRunnerModes(t *testing.T) {
	setupAppDB(t)
	cases := map[string][]string{
		ModeAll: {"api", "storefront"},
		ModeAPI: {"api"},
		ModeWeb: {"storefront"},
	}
	for mode, want := range cases {
		runner, err := BuildRunner(testConfig(), mode)
		if err != nil {
			t.Fatalf("mode %s build failed: %v", mode, err)
		}
		got := serviceNames(runner)
		if strings.Join(got, ",") != strings.Join(want, ",") {
			t.Fatalf("mode %s services want %v got %v", mode, want, got)
		}
	}
}

func TestBuildRunnerRejectsInvalidInput(t *testing.T) {
	setupAppDB(t)
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
	if _, err := BuildRunner(testConfig(), "batch"); err == nil {
		t.Fatalf("unknown mode should fail")
	}
	// 单独 worker 模式要求启用队列
	if _, err := BuildRunner(testConfig(), ModeWorker); err == nil {
		t.Fatalf("worker mode without queue should fail")
	}
}

type stubService struct {
	name    string
	startFn func(ctx context.Context) error
	stopErr error
	stopped bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Start(ctx context.Context) error {
	if s.startFn != nil {
		return s.startFn(ctx)
	}
	<-ctx.Done()
	return nil
}

func (s *stubService) Stop(context.Context) error {
	s.stopped = true
	return s.stopErr
}

func TestRunnerStopsAllServicesWhenOneExits(t *testing.T) {
	failing := &stubService{name: "failing", startFn: func(context.Context) error {
		return errors.New("bind failed")
	}}
	idle := &stubService{name: "idle", stopErr: errors.New("stop timeout")}
	closed := false

	runner := NewRunner(failing, idle)
	runner.OnShutdown(func() error {
		closed = true
		return nil
	})
	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || !strings.Contains(err.Error(), "bind failed") || !strings.Contains(err.Error(), "stop timeout") {
		t.Fatalf("expected combined error, got %v", err)
	}
	if !failing.stopped || !idle.stopped || !closed {
		t.Fatalf("all services should be stopped and closers run")
	}
}

func TestRunnerCancelIsClean(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	svc := &stubService{name: "idle"}
	done := make(chan error, 1)
	go func() { done <- NewRunner(svc).Run(ctx, time.Second, nil) }()
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("cancel should stop cleanly, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("runner did not stop")
	}
}
