package queue

import (
	"encoding/json"

	"github.com/shupin-market/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskSearchRepair 单商品索引修复任务
	TaskSearchRepair = constants.TaskSearchRepair
	// TaskSearchReindex 全量索引重建任务
	TaskSearchReindex = constants.TaskSearchReindex
)

// SearchRepairPayload 索引修复任务载荷
type SearchRepairPayload struct {
	ProductID uint `json:"product_id"`
}

// SearchReindexPayload 全量重建任务载荷
type SearchReindexPayload struct{}

// NewSearchRepairTask 创建索引修复任务
func NewSearchRepairTask(payload SearchRepairPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSearchRepair, body), nil
}

// NewSearchReindexTask 创建全量重建任务
func NewSearchReindexTask() (*asynq.Task, error) {
	body, err := json.Marshal(SearchReindexPayload{})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSearchReindex, body), nil
}
