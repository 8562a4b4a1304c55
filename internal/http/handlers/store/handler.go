// Package store 商家与管理端接口处理器
package store

import (
	"github.com/shupin-market/internal/provider"
)

// Handler 商家端处理器
type Handler struct {
	*provider.Container
}

// New 创建商家端处理器
func New(container *provider.Container) *Handler {
	return &Handler{Container: container}
}
