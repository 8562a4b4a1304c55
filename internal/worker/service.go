package worker

import (
	"context"
	"errors"
	"time"

	"github.com/shupin-market/internal/config"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/queue"

	"github.com/hibiken/asynq"
)

const defaultReindexInterval = 24 * time.Hour

// Service 异步队列服务
type Service struct {
	name            string
	server          *asynq.Server
	mux             *asynq.ServeMux
	consumer        *Consumer
	reindexInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	interval := defaultReindexInterval
	if cfg.ReindexIntervalHours > 0 {
		interval = time.Duration(cfg.ReindexIntervalHours) * time.Hour
	}
	return &Service{
		name:            "worker",
		server:          server,
		mux:             mux,
		consumer:        consumer,
		reindexInterval: interval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.ProductService != nil {
		go s.runReindexLoop(ctx)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runReindexLoop 周期性全量重建索引，兜底修复漏同步的商品
func (s *Service) runReindexLoop(ctx context.Context) {
	if s == nil || s.consumer == nil || s.consumer.ProductService == nil {
		return
	}
	runOnce := func() {
		count, err := s.consumer.ProductService.Reindex(ctx)
		if err != nil {
			logger.Warnw("worker_periodic_reindex_failed", "error", err)
			return
		}
		logger.Infow("worker_periodic_reindex_done", "count", count)
	}
	runOnce()

	ticker := time.NewTicker(s.reindexInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
