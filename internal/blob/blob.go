package blob

import (
	"context"
	"errors"
)

// 对象存储错误
var (
	ErrConfigInvalid = errors.New("blob config invalid")
	ErrPutFailed     = errors.New("blob put failed")
	ErrDeleteFailed  = errors.New("blob delete failed")
)

// File 待上传的文件内容
type File struct {
	Name        string // 原始文件名（用于保留扩展名）
	ContentType string
	Size        int64
	Data        []byte
}

// Gateway 对象存储抽象
type Gateway interface {
	// PutImage 上传公开图片，返回对外访问 URL
	PutImage(ctx context.Context, file File) (string, error)
	// PutFile 上传私有文件，返回对外访问 URL
	PutFile(ctx context.Context, file File) (string, error)
	// Delete 按存储键删除对象
	Delete(ctx context.Context, key string) error
	// Key 从对外 URL 还原存储键
	Key(url string) string
}
