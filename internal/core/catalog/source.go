package catalog

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cocktail-recommender/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

//go:embed data/*.json
var embeddedData embed.FS

const (
	// SourceEmbedded 使用編譯時內嵌的資料
	SourceEmbedded = "embedded"

	// MaxFileSize 單一資料檔上限 (10MB)
	MaxFileSize = 10 << 20
)

// Source 資料來源
type Source interface {
	ReadFile(ctx context.Context, name string) ([]byte, error)
	Describe() string
}

// SourceOptions 遠端來源設定
type SourceOptions struct {
	Timeout time.Duration
	Retries int
}

// NewSource 依位置選擇來源：空字串或 "embedded"、http(s) URL、本機目錄
func NewSource(location string, opts SourceOptions) Source {
	location = strings.TrimSpace(location)
	switch {
	case location == "" || location == SourceEmbedded:
		return EmbeddedSource{}
	case strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://"):
		return NewRemoteSource(location, opts)
	default:
		return DirSource{Dir: location}
	}
}

// EmbeddedSource 內嵌資料
type EmbeddedSource struct{}

// ReadFile 讀取內嵌檔案
func (EmbeddedSource) ReadFile(_ context.Context, name string) ([]byte, error) {
	return fs.ReadFile(embeddedData, "data/"+name)
}

// Describe 來源描述
func (EmbeddedSource) Describe() string {
	return SourceEmbedded
}

// DirSource 本機目錄
type DirSource struct {
	Dir string
}

// ReadFile 讀取目錄下的檔案，拒絕跳出目錄的路徑與過大的檔案
func (s DirSource) ReadFile(_ context.Context, name string) ([]byte, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	full := filepath.Join(s.Dir, filepath.FromSlash(name))

	info, err := os.Stat(full)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", full)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", full, MaxFileSize)
	}
	return os.ReadFile(full)
}

// Describe 來源描述
func (s DirSource) Describe() string {
	return "dir:" + s.Dir
}

// RemoteSource 透過 HTTP 取得資料
type RemoteSource struct {
	baseURL string
	client  *resty.Client
}

// NewRemoteSource 建立遠端來源
func NewRemoteSource(baseURL string, opts SourceOptions) *RemoteSource {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Accept", "application/json, application/yaml")

	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// ReadFile 下載 baseURL/name
func (s *RemoteSource) ReadFile(ctx context.Context, name string) ([]byte, error) {
	url := s.baseURL + "/" + strings.TrimLeft(name, "/")
	start := time.Now()

	resp, err := s.client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode())
	}
	body := resp.Body()
	if len(body) > MaxFileSize {
		return nil, fmt.Errorf("%s exceeds %d bytes", url, MaxFileSize)
	}

	common.LogDebug("Catalog file fetched",
		zap.String("url", url),
		zap.Int("bytes", len(body)),
		zap.Duration("latency", time.Since(start)),
	)
	return body, nil
}

// Describe 來源描述
func (s *RemoteSource) Describe() string {
	return "remote:" + s.baseURL
}
