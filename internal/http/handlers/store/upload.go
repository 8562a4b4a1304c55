package store

import (
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/shupin-market/internal/blob"
)

// readMultipartFiles 将表单文件读入内存，供上传网关使用
func readMultipartFiles(headers []*multipart.FileHeader) ([]blob.File, error) {
	if len(headers) == 0 {
		return nil, nil
	}
	files := make([]blob.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		closeErr := f.Close()
		if err != nil {
			return nil, err
		}
		if closeErr != nil {
			return nil, closeErr
		}
		files = append(files, blob.File{
			Name:        header.Filename,
			ContentType: detectContentType(header, data),
			Size:        header.Size,
			Data:        data,
		})
	}
	return files, nil
}

// detectContentType 优先取表单声明的类型，缺失时按内容嗅探
func detectContentType(header *multipart.FileHeader, data []byte) string {
	if ct := strings.TrimSpace(header.Header.Get("Content-Type")); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	if ct := sniffByExtension(header.Filename); ct != "" {
		return ct
	}
	if len(data) > 0 {
		return http.DetectContentType(data)
	}
	return "application/octet-stream"
}

func sniffByExtension(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".pdf":
		return "application/pdf"
	case ".zip":
		return "application/zip"
	default:
		return ""
	}
}
