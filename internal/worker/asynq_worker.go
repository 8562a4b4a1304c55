package worker

import (
	"context"
	"encoding/json"

	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/provider"
	"github.com/shupin-market/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskSearchRepair, c.handleSearchRepair)
	mux.HandleFunc(queue.TaskSearchReindex, c.handleSearchReindex)
}

func (c *Consumer) handleSearchRepair(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_search_repair_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.SearchRepairPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_search_repair_unmarshal_failed", "error", err)
		return err
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_search_repair_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if c.ProductService == nil {
		logger.Warnw("worker_search_repair_skip_service_nil", "product_id", payload.ProductID)
		return nil
	}
	if err := c.ProductService.SyncOne(ctx, payload.ProductID); err != nil {
		logger.Warnw("worker_search_repair_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	logger.Infow("worker_search_repair_done", "product_id", payload.ProductID)
	return nil
}

func (c *Consumer) handleSearchReindex(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_search_reindex_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	if c.ProductService == nil {
		logger.Warnw("worker_search_reindex_skip_service_nil")
		return nil
	}
	count, err := c.ProductService.Reindex(ctx)
	if err != nil {
		logger.Warnw("worker_search_reindex_failed", "error", err)
		return err
	}
	logger.Infow("worker_search_reindex_done", "count", count)
	return nil
}
