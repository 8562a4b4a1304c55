package app

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// 慢客户端发请求头的宽限时间，上传走 multipart body，不受此限制
const readHeaderTimeout = 10 * time.Second

// HTTPService 把 http.Server 适配成受编排管理的 Service
type HTTPService struct {
	server *http.Server
}

// NewHTTPService 创建监听 addr 的 HTTP 服务
func NewHTTPService(addr string, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
	}
}

func (s *HTTPService) Name() string { return "http" }

// Start 阻塞监听直到 Stop 触发优雅关闭
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	err := s.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop 优雅关闭，等待存量连接在 ctx 截止前收尾
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
