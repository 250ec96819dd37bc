package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// HTTPService 以 Service 形式运行的 http.Server
type HTTPService struct {
	name string
	srv  *http.Server
}

// NewHTTPService name 用于日志
func NewHTTPService(name, addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		name: name,
		srv:  &http.Server{Addr: addr, Handler: handler, ReadHeaderTimeout: 10 * time.Second},
	}
}

func (s *HTTPService) Name() string { return s.name }

// Addr 监听地址
func (s *HTTPService) Addr() string { return s.srv.Addr }

// Start 正常关闭时返回 nil
func (s *HTTPService) Start(context.Context) error {
	err := s.srv.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop 等待进行中的请求处理完毕
func (s *HTTPService) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
