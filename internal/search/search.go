package search

import (
	"context"
	"errors"
)

// 搜索索引错误
var (
	ErrConfigInvalid   = errors.New("search config invalid")
	ErrRequestFailed   = errors.New("search request failed")
	ErrResponseInvalid = errors.New("search response invalid")
)

// Record 商品索引记录
type Record struct {
	ObjectID    string   `json:"objectID"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Images      []string `json:"images"`
	Slug        string   `json:"slug"`
}

// Index 搜索索引抽象
type Index interface {
	// Upsert 写入或覆盖一条索引记录
	Upsert(ctx context.Context, record Record) error
	// Delete 按 objectID 删除索引记录
	Delete(ctx context.Context, objectID string) error
}
