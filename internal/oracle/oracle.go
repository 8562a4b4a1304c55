package oracle

import (
	"context"
	"errors"
)

// 推断服务错误
var (
	ErrConfigInvalid   = errors.New("oracle config invalid")
	ErrRequestFailed   = errors.New("oracle request failed")
	ErrResponseInvalid = errors.New("oracle response invalid")
)

// Completer 对话补全抽象
type Completer interface {
	// Complete 发送用户消息与系统提示，返回模型回复文本
	Complete(ctx context.Context, userMessage, systemMessage string) (string, error)
}
