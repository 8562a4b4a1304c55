package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shupin-market/internal/config"
)

const defaultSearchTimeoutMS = 5000

// AlgoliaIndex 基于 Algolia REST 接口的索引实现
type AlgoliaIndex struct {
	baseURL    string
	appID      string
	apiKey     string
	indexName  string
	httpClient *http.Client
}

// NewAlgoliaIndex 创建 Algolia 索引客户端
func NewAlgoliaIndex(cfg *config.SearchConfig) (*AlgoliaIndex, error) {
	if cfg == nil || strings.TrimSpace(cfg.AppID) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: app_id and api_key are required", ErrConfigInvalid)
	}
	indexName := strings.TrimSpace(cfg.IndexName)
	if indexName == "" {
		return nil, fmt.Errorf("%w: index_name is required", ErrConfigInvalid)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.algolia.net", cfg.AppID)
	}
	timeoutMS := cfg.TimeoutMS
	if timeoutMS <= 0 {
		timeoutMS = defaultSearchTimeoutMS
	}
	return &AlgoliaIndex{
		baseURL:    baseURL,
		appID:      strings.TrimSpace(cfg.AppID),
		apiKey:     strings.TrimSpace(cfg.APIKey),
		indexName:  indexName,
		httpClient: &http.Client{Timeout: time.Duration(timeoutMS) * time.Millisecond},
	}, nil
}

// Upsert 写入或覆盖一条索引记录
func (a *AlgoliaIndex) Upsert(ctx context.Context, record Record) error {
	if strings.TrimSpace(record.ObjectID) == "" {
		return fmt.Errorf("%w: objectID is required", ErrRequestFailed)
	}
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	return a.do(ctx, http.MethodPut, a.objectEndpoint(record.ObjectID), body)
}

// Delete 按 objectID 删除索引记录
func (a *AlgoliaIndex) Delete(ctx context.Context, objectID string) error {
	if strings.TrimSpace(objectID) == "" {
		return fmt.Errorf("%w: objectID is required", ErrRequestFailed)
	}
	return a.do(ctx, http.MethodDelete, a.objectEndpoint(objectID), nil)
}

func (a *AlgoliaIndex) objectEndpoint(objectID string) string {
	return fmt.Sprintf("%s/1/indexes/%s/%s",
		a.baseURL, url.PathEscape(a.indexName), url.PathEscape(objectID))
}

func (a *AlgoliaIndex) do(ctx context.Context, method, endpoint string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = strings.NewReader(string(body))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Algolia-Application-Id", a.appID)
	req.Header.Set("X-Algolia-API-Key", a.apiKey)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: http status %d", ErrResponseInvalid, resp.StatusCode)
	}
	return nil
}
