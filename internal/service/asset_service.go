package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/shupin-market/internal/blob"
	"github.com/shupin-market/internal/config"
	"github.com/shupin-market/internal/constants"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"

	"golang.org/x/sync/errgroup"
)

// AssetService 商品附件上传服务
type AssetService struct {
	gateway           blob.Gateway
	allowedImageTypes []string
	maxImageSize      int64
	maxFileSize       int64
}

// NewAssetService 创建附件服务
func NewAssetService(gateway blob.Gateway, cfg *config.UploadConfig) *AssetService {
	allowed := []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	maxImageSize := int64(10) << 20
	maxFileSize := constants.MaxDigitalPayloadBytes
	if cfg != nil {
		if len(cfg.AllowedImageTypes) > 0 {
			allowed = cfg.AllowedImageTypes
		}
		if cfg.MaxImageSize > 0 {
			maxImageSize = cfg.MaxImageSize
		}
		if cfg.MaxFileSize > 0 {
			maxFileSize = cfg.MaxFileSize
		}
	}
	return &AssetService{
		gateway:           gateway,
		allowedImageTypes: allowed,
		maxImageSize:      maxImageSize,
		maxFileSize:       maxFileSize,
	}
}

// ValidateImages 上传前校验图片类型与大小
func (s *AssetService) ValidateImages(files []blob.File) error {
	if len(files) > constants.MaxProductImages {
		return fmt.Errorf("%w: at most %d images", ErrPayloadTooLarge, constants.MaxProductImages)
	}
	for _, file := range files {
		if !s.isAllowedImageType(file.ContentType) {
			return fmt.Errorf("%w: %s", ErrInvalidFileType, file.ContentType)
		}
		if file.Size > s.maxImageSize {
			return fmt.Errorf("%w: image %s exceeds %d bytes", ErrPayloadTooLarge, file.Name, s.maxImageSize)
		}
	}
	return nil
}

// ValidateDigitalFiles 上传前校验数字文件总载荷
func (s *AssetService) ValidateDigitalFiles(files []blob.File) error {
	var total int64
	for _, file := range files {
		total += file.Size
	}
	if total > s.maxFileSize {
		return fmt.Errorf("%w: digital files total %d bytes exceeds %d", ErrPayloadTooLarge, total, s.maxFileSize)
	}
	return nil
}

// UploadImages 并发上传商品图片，返回与入参同序的 URL 列表
func (s *AssetService) UploadImages(ctx context.Context, files []blob.File) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if err := s.ValidateImages(files); err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: storage not configured", ErrImageUploadFailed)
	}

	urls := make([]string, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			url, err := s.gateway.PutImage(groupCtx, file)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrImageUploadFailed, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return urls, nil
}

// UploadDigitalFiles 并发上传数字文件，返回与入参同序的文件记录
func (s *AssetService) UploadDigitalFiles(ctx context.Context, files []blob.File) ([]models.DigitalFile, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if err := s.ValidateDigitalFiles(files); err != nil {
		return nil, err
	}
	if s.gateway == nil {
		return nil, fmt.Errorf("%w: storage not configured", ErrFileUploadFailed)
	}

	records := make([]models.DigitalFile, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	for i, file := range files {
		i, file := i, file
		group.Go(func() error {
			url, err := s.gateway.PutFile(groupCtx, file)
			if err != nil {
				return fmt.Errorf("%w: %v", ErrFileUploadFailed, err)
			}
			records[i] = models.DigitalFile{
				FileName: file.Name,
				FileSize: file.Size,
				FileURL:  url,
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteByURLs 按 URL 删除远端对象，失败仅记录日志
func (s *AssetService) DeleteByURLs(ctx context.Context, urls []string) {
	if s.gateway == nil {
		return
	}
	for _, url := range urls {
		key := s.gateway.Key(url)
		if strings.TrimSpace(key) == "" {
			continue
		}
		if err := s.gateway.Delete(ctx, key); err != nil {
			logger.Warnw("blob_delete_failed", "key", key, "error", err)
		}
	}
}

func (s *AssetService) isAllowedImageType(contentType string) bool {
	for _, allowed := range s.allowedImageTypes {
		if strings.EqualFold(strings.TrimSpace(contentType), allowed) {
			return true
		}
	}
	return false
}
