package blob

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shupin-market/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"
)

const (
	imagePrefix = "images/"
	filePrefix  = "files/"
)

// S3Gateway 基于 AWS S3 的对象存储实现
type S3Gateway struct {
	client  *s3.S3
	bucket  string
	baseURL string
}

// NewS3Gateway 创建 S3 存储网关
func NewS3Gateway(cfg *config.StorageConfig) (*S3Gateway, error) {
	if cfg == nil || strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.AccessKeyID) == "" || strings.TrimSpace(cfg.SecretAccessKey) == "" {
		return nil, fmt.Errorf("%w: credentials are required", ErrConfigInvalid)
	}

	awsCfg := &aws.Config{
		Region: aws.String(cfg.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		),
	}
	// 兼容 MinIO 等自建服务
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		awsCfg.Endpoint = aws.String(endpoint)
	}
	if cfg.ForcePathStyle {
		awsCfg.S3ForcePathStyle = aws.Bool(true)
	}

	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.PublicBaseURL), "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Gateway{
		client:  s3.New(sess),
		bucket:  cfg.Bucket,
		baseURL: baseURL,
	}, nil
}

// PutImage 上传公开图片
func (g *S3Gateway) PutImage(ctx context.Context, file File) (string, error) {
	return g.put(ctx, imagePrefix, file, true)
}

// PutFile 上传私有文件
func (g *S3Gateway) PutFile(ctx context.Context, file File) (string, error) {
	return g.put(ctx, filePrefix, file, false)
}

func (g *S3Gateway) put(ctx context.Context, prefix string, file File, public bool) (string, error) {
	key := prefix + uuid.NewString() + strings.ToLower(filepath.Ext(file.Name))

	input := &s3.PutObjectInput{
		Bucket:        aws.String(g.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(file.Data),
		ContentType:   aws.String(file.ContentType),
		ContentLength: aws.Int64(int64(len(file.Data))),
	}
	if public {
		input.ACL = aws.String("public-read")
	}

	if _, err := g.client.PutObjectWithContext(ctx, input); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPutFailed, err)
	}
	return g.url(key), nil
}

// Delete 按存储键删除对象
func (g *S3Gateway) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	_, err := g.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// Key 从对外 URL 还原存储键
func (g *S3Gateway) Key(url string) string {
	return strings.TrimPrefix(strings.TrimPrefix(url, g.baseURL), "/")
}

func (g *S3Gateway) url(key string) string {
	return g.baseURL + "/" + key
}
